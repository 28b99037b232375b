// Package diff compares successive sector availability snapshots.
// It is pure: no I/O, no shared state, deterministic given its inputs.
package diff

import (
	"sort"
	"time"

	"github.com/platea/sector-monitor/internal/models"
)

// Detect compares two availability sets and classifies the result.
// NewSectors holds current minus previous, RemovedSectors the reverse, and
// UnchangedSectors the intersection.
func Detect(previous, current models.SectorSet) models.ChangeInfo {
	info := models.ChangeInfo{
		TotalPrevious: len(previous),
		TotalCurrent:  len(current),
		Timestamp:     time.Now().UTC(),
	}

	for id := range current {
		if previous.Contains(id) {
			info.UnchangedSectors = append(info.UnchangedSectors, id)
		} else {
			info.NewSectors = append(info.NewSectors, id)
		}
	}

	for id := range previous {
		if !current.Contains(id) {
			info.RemovedSectors = append(info.RemovedSectors, id)
		}
	}

	// Stable ordering keeps logs and alert payloads deterministic.
	sort.Strings(info.NewSectors)
	sort.Strings(info.RemovedSectors)
	sort.Strings(info.UnchangedSectors)

	info.HasChanges = len(info.NewSectors) > 0 || len(info.RemovedSectors) > 0

	return info
}

// ShouldAlert reports whether a diff warrants notification. Only newly
// available sectors count: removals alone never trigger an alert.
func ShouldAlert(info models.ChangeInfo) bool {
	return len(info.NewSectors) > 0
}
