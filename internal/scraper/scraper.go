// Package scraper fetches event pages and extracts raw sector data from
// the seat map DOM.
package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/codeGROOVE-dev/retry"
	"golang.org/x/time/rate"

	"github.com/platea/sector-monitor/internal/models"
)

// Observer is the observation collaborator consumed by the monitor: one
// call per target, returning the raw sector attribute bags or an error.
type Observer interface {
	FetchSectors(ctx context.Context, eventURL string) ([]models.RawSector, error)
}

// sectorSelectors are candidate patterns for seat-map sector elements,
// tried in order. The first selector that yields elements wins.
var sectorSelectors = []string{
	"svg path[data-section]",
	"svg path[aria-label]",
	"svg g[data-section] path",
	"svg g[aria-label] path",
	`[class*="sector"]`,
	`[class*="section"]`,
	`[data-testid*="section"]`,
	`[data-testid*="sector"]`,
}

// Scraper retrieves event pages over plain HTTP and extracts sector
// elements with goquery.
type Scraper struct {
	log         *slog.Logger
	client      *http.Client
	limiter     *rate.Limiter
	userAgent   string
	pageTimeout time.Duration
}

// NewScraper creates a Scraper. Requests are rate limited to one page
// fetch per second with a small burst, and bounded by pageTimeout each.
func NewScraper(log *slog.Logger, userAgent string, pageTimeout time.Duration) *Scraper {
	return &Scraper{
		log:         log,
		client:      &http.Client{Timeout: pageTimeout},
		limiter:     rate.NewLimiter(rate.Every(time.Second), 2),
		userAgent:   userAgent,
		pageTimeout: pageTimeout,
	}
}

// FetchSectors downloads the event page and returns the raw sector
// attribute bags found on the seat map. Missing attributes come back as
// empty strings.
func (s *Scraper) FetchSectors(ctx context.Context, eventURL string) ([]models.RawSector, error) {
	const opn = "scraper.FetchSectors"

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%s: rate limiter wait: %w", opn, err)
	}

	doc, err := s.fetchDocument(ctx, eventURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}

	sectors := extractSectors(doc)
	s.log.InfoContext(ctx, "Extracted sector elements", "url", eventURL, "count", len(sectors))

	return sectors, nil
}

// fetchDocument retrieves and parses the page, retrying transient
// failures with backoff. 4xx responses are not retried.
func (s *Scraper) fetchDocument(ctx context.Context, eventURL string) (*goquery.Document, error) {
	reqURL, err := url.Parse(eventURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse event URL %s: %w", eventURL, err)
	}

	var doc *goquery.Document

	err = retry.Do(
		func() error {
			req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
			if reqErr != nil {
				return retry.Unrecoverable(fmt.Errorf("failed to create request: %w", reqErr))
			}
			req.Header.Set("User-Agent", s.userAgent)
			req.Header.Set("Accept-Language", "es-CO,es;q=0.9")

			s.log.DebugContext(ctx, "Send request", "method", req.Method, "URL", req.URL)

			res, doErr := s.client.Do(req)
			if doErr != nil {
				return fmt.Errorf("failed to request %s: %w", eventURL, doErr)
			}
			defer res.Body.Close()

			if res.StatusCode != http.StatusOK {
				statusErr := fmt.Errorf("status code error: [%d] %s", res.StatusCode, res.Status)
				if res.StatusCode >= 400 && res.StatusCode < 500 {
					return retry.Unrecoverable(statusErr)
				}
				return statusErr
			}

			doc, doErr = goquery.NewDocumentFromReader(res.Body)
			if doErr != nil {
				return retry.Unrecoverable(fmt.Errorf("data cannot be parsed as HTML: %w", doErr))
			}

			return nil
		},
		retry.Attempts(3),
		retry.Delay(time.Second),
		retry.MaxDelay(10*time.Second),
		retry.MaxJitter(2*time.Second),
		retry.Context(ctx),
		retry.OnRetry(func(n uint, err error) {
			s.log.WarnContext(ctx, "Retrying page fetch", "attempt", n+1, "url", eventURL, "error", err)
		}),
	)
	if err != nil {
		return nil, err
	}

	return doc, nil
}

// extractSectors walks the candidate selectors and builds attribute bags
// for the first selector that matches anything. Elements without any
// identifying information are skipped.
func extractSectors(doc *goquery.Document) []models.RawSector {
	var sectors []models.RawSector

	for _, selector := range sectorSelectors {
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			sector := models.RawSector{
				ID:          sel.AttrOr("id", ""),
				SectorID:    sel.AttrOr("data-sector-id", ""),
				Section:     sel.AttrOr("data-section", ""),
				AriaLabel:   sel.AttrOr("aria-label", ""),
				ClassNames:  sel.AttrOr("class", ""),
				DataStatus:  sel.AttrOr("data-status", ""),
				Style:       sel.AttrOr("style", ""),
				Fill:        sel.AttrOr("fill", ""),
				Title:       sel.AttrOr("title", ""),
				TextContent: strings.TrimSpace(sel.Text()),
			}

			if sector.ID != "" || sector.AriaLabel != "" || sector.Section != "" || sector.TextContent != "" {
				sectors = append(sectors, sector)
			}
		})

		if len(sectors) > 0 {
			break
		}
	}

	return sectors
}
