// Package monitor orchestrates one full observation-and-alert cycle per
// monitored event: observe, normalize, detect, alert, persist.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/platea/sector-monitor/internal/diff"
	"github.com/platea/sector-monitor/internal/models"
	"github.com/platea/sector-monitor/internal/parser"
	"github.com/platea/sector-monitor/internal/repository"
	"github.com/platea/sector-monitor/internal/repository/sqlite"
	"github.com/platea/sector-monitor/internal/scraper"
)

// ErrEventNotConfigured is returned by CheckOne for an unknown event id.
var ErrEventNotConfigured = errors.New("event not found in configuration")

// Alerter dispatches one notification batch for newly available sectors.
type Alerter interface {
	SendChangeAlert(ctx context.Context, eventID string, newSectors []string, dryRun bool) models.BatchResult
}

// Monitor is an orchestrator that performs full monitoring cycles over
// the configured events, strictly one event at a time.
type Monitor struct {
	log        *slog.Logger
	observer   scraper.Observer
	normalizer *parser.Normalizer
	repo       sqlite.MonitorRepository
	alerter    Alerter
	events     []models.Event
	delayMin   time.Duration
	delayMax   time.Duration
	dryRun     bool
}

// NewMonitor creates a new Monitor instance. delayMin/delayMax bound the
// randomized pause between events within one cycle.
func NewMonitor(
	log *slog.Logger,
	observer scraper.Observer,
	normalizer *parser.Normalizer,
	repo sqlite.MonitorRepository,
	alerter Alerter,
	events []models.Event,
	delayMin, delayMax time.Duration,
	dryRun bool,
) *Monitor {
	return &Monitor{
		log:        log,
		observer:   observer,
		normalizer: normalizer,
		repo:       repo,
		alerter:    alerter,
		events:     events,
		delayMin:   delayMin,
		delayMax:   delayMax,
		dryRun:     dryRun,
	}
}

// InitEvents registers the configured events in storage. Called once at
// process startup.
func (m *Monitor) InitEvents(ctx context.Context) error {
	const opn = "monitor.InitEvents"

	for _, event := range m.events {
		if err := m.repo.UpsertEvent(ctx, event); err != nil {
			return fmt.Errorf("%s: failed to register event %s: %w", opn, event.ID, err)
		}
	}

	m.log.InfoContext(ctx, "Events initialized in storage", "count", len(m.events))

	return nil
}

// CheckAll runs one monitoring cycle over every configured event,
// sequentially, with a randomized pause between events. A single event's
// failure is recorded in its result and does not stop the cycle.
func (m *Monitor) CheckAll(ctx context.Context) []models.CycleResult {
	const opn = "monitor.CheckAll"
	log := m.log.With("op", opn)

	log.InfoContext(ctx, "Starting monitoring cycle for all events", "events", len(m.events))

	results := make([]models.CycleResult, 0, len(m.events))
	for i, event := range m.events {
		results = append(results, m.CheckTarget(ctx, event))

		if i == len(m.events)-1 {
			break
		}

		delay := randomDuration(m.delayMin, m.delayMax)
		log.DebugContext(ctx, "Waiting before next event", "delay", delay)
		if err := sleepCtx(ctx, delay); err != nil {
			log.InfoContext(ctx, "Cycle interrupted during inter-event delay", "error", err)
			break
		}
	}

	var succeeded, changed, alerted int
	for _, res := range results {
		if res.Success {
			succeeded++
		}
		if res.ChangesDetected {
			changed++
		}
		if res.SMSSent {
			alerted++
		}
	}

	log.InfoContext(ctx, "Monitoring cycle completed",
		"successful", succeeded, "total", len(results), "changes", changed, "alerts", alerted)

	return results
}

// CheckOne runs one cycle for a single configured event id.
func (m *Monitor) CheckOne(ctx context.Context, eventID string) (models.CycleResult, error) {
	for _, event := range m.events {
		if event.ID == eventID {
			return m.CheckTarget(ctx, event), nil
		}
	}

	return models.CycleResult{}, fmt.Errorf("monitor.CheckOne: %s: %w", eventID, ErrEventNotConfigured)
}

// CheckTarget performs the full cycle for one event: observe, normalize,
// diff against the latest stored snapshot, conditionally alert, then
// persist the new snapshot. An observation failure aborts only this
// event's cycle and leaves the previous snapshot current.
func (m *Monitor) CheckTarget(ctx context.Context, event models.Event) models.CycleResult {
	const opn = "monitor.CheckTarget"
	log := m.log.With("op", opn, "event_id", event.ID)

	result := models.CycleResult{EventID: event.ID}

	log.InfoContext(ctx, "Starting monitoring cycle", "url", event.URL)

	// 1. Observe the remote resource.
	rawSectors, err := m.observer.FetchSectors(ctx, event.URL)
	if err != nil {
		result.Err = fmt.Errorf("%s: failed to observe event: %w", opn, err)
		log.ErrorContext(ctx, "Failed to observe event", "error", err)
		return result
	}

	// 2. Normalize into the canonical availability set.
	currentSectors := m.normalizer.Normalize(ctx, rawSectors)
	result.SectorsFound = len(currentSectors)

	// 3. Read the previous snapshot before anything is written. Falling
	// back to an empty set on a read failure would make every sector look
	// new and fire a spurious alert, so a failed read fails the cycle.
	previousSectors, err := m.previousSnapshot(ctx, event.ID)
	if err != nil {
		result.Err = fmt.Errorf("%s: failed to load previous snapshot: %w", opn, err)
		log.ErrorContext(ctx, "Failed to load previous snapshot", "error", err)
		return result
	}

	// 4. Diff.
	changeInfo := diff.Detect(previousSectors, currentSectors)
	result.ChangesDetected = changeInfo.HasChanges
	result.NewSectors = changeInfo.NewSectors

	// 5. Alert on newly available sectors.
	if diff.ShouldAlert(changeInfo) {
		log.InfoContext(ctx, "New sectors detected", "new_sectors", changeInfo.NewSectors)

		change := models.ChangeRecord{
			EventID:    event.ID,
			NewSectors: changeInfo.NewSectors,
			Timestamp:  time.Now().UTC(),
			SMSSent:    !m.dryRun,
		}
		if err = m.repo.RecordChange(ctx, change); err != nil {
			// Best-effort bookkeeping: the alert still goes out.
			log.ErrorContext(ctx, "Failed to record change", "error", err)
		}

		batch := m.alerter.SendChangeAlert(ctx, event.ID, changeInfo.NewSectors, m.dryRun)
		result.SMSSent = batch.Success && !batch.Skipped
		if !batch.Success {
			log.ErrorContext(ctx, "Failed to send SMS alerts", "error", batch.Err)
		}
	}

	// 6. Persist the new snapshot. A failed write must not be reported as
	// a successful cycle: the previous snapshot stays current.
	snapshot := models.Snapshot{
		EventID:   event.ID,
		Sectors:   currentSectors.List(),
		Timestamp: time.Now().UTC(),
	}
	if err = m.repo.SaveSnapshot(ctx, snapshot); err != nil {
		result.Err = fmt.Errorf("%s: failed to save snapshot: %w", opn, err)
		log.ErrorContext(ctx, "Failed to save snapshot", "error", err)
		return result
	}

	// 7. Update the event's last-checked timestamp, best-effort.
	if err = m.repo.TouchEvent(ctx, event.ID, time.Now().UTC()); err != nil {
		log.ErrorContext(ctx, "Failed to update event timestamp", "error", err)
	}

	result.Success = true
	log.InfoContext(ctx, "Monitoring cycle completed",
		"sectors", result.SectorsFound, "changes", result.ChangesDetected)

	return result
}

// SimulateDelta dispatches an alert batch for a fabricated set of new
// sectors. Used for operational verification of the alert pipeline.
func (m *Monitor) SimulateDelta(ctx context.Context, eventID string) models.BatchResult {
	fakeSectors := []string{"sector_a1", "sector_b2", "sector_c3"}
	m.log.InfoContext(ctx, "Simulating delta changes", "event_id", eventID, "sectors", fakeSectors)

	return m.alerter.SendChangeAlert(ctx, eventID, fakeSectors, m.dryRun)
}

// previousSnapshot loads the latest stored availability set for an
// event. A missing snapshot (first observation) is an empty set.
func (m *Monitor) previousSnapshot(ctx context.Context, eventID string) (models.SectorSet, error) {
	snapshot, err := m.repo.LatestSnapshot(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrSnapshotNotFound) {
			m.log.DebugContext(ctx, "No previous snapshot found", "event_id", eventID)
			return models.SectorSet{}, nil
		}
		return nil, err
	}

	return models.NewSectorSet(snapshot.Sectors...), nil
}

// randomDuration draws uniformly from [min, max].
func randomDuration(minDur, maxDur time.Duration) time.Duration {
	if maxDur <= minDur {
		return minDur
	}

	return minDur + rand.N(maxDur-minDur)
}

// sleepCtx sleeps for the given duration or until the context is done.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
