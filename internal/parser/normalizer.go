// Package parser normalizes raw sector data scraped from an event page
// into a canonical set of available sector identifiers.
package parser

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/platea/sector-monitor/internal/models"
)

// verdict is the outcome of one classification rule.
type verdict int

const (
	verdictUnknown verdict = iota
	verdictAvailable
	verdictUnavailable
)

// rule classifies a raw sector from one signal. Rules are evaluated in
// order; the first rule that returns a non-unknown verdict wins.
type rule struct {
	name  string
	apply func(models.RawSector) verdict
}

var (
	availableLabels   = []string{"disponible", "available", "selectable", "enabled"}
	unavailableLabels = []string{"no disponible", "unavailable", "disabled", "sold out", "agotado"}

	availableStatuses   = []string{"available", "enabled", "selectable"}
	unavailableStatuses = []string{"unavailable", "disabled", "sold-out"}

	availableColors   = []string{"blue", "#0066cc", "#007bff"}
	unavailableColors = []string{"gray", "grey", "#cccccc", "#999999"}
)

var (
	idStripRe    = regexp.MustCompile(`[^\w\s-]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Normalizer classifies raw sectors and derives canonical identifiers.
type Normalizer struct {
	log   *slog.Logger
	rules []rule
}

// NewNormalizer creates a Normalizer with the default classification rules.
func NewNormalizer(log *slog.Logger) *Normalizer {
	return &Normalizer{log: log, rules: defaultRules()}
}

// defaultRules returns the classification precedence: descriptive label,
// class tokens, discrete status, color hints. Ambiguous sectors fall
// through every rule and default to unavailable.
func defaultRules() []rule {
	return []rule{
		{
			name: "aria_label",
			apply: func(s models.RawSector) verdict {
				label := strings.ToLower(s.AriaLabel)
				if label == "" {
					return verdictUnknown
				}
				if containsAny(label, availableLabels) {
					return verdictAvailable
				}
				if containsAny(label, unavailableLabels) {
					return verdictUnavailable
				}
				return verdictUnknown
			},
		},
		{
			name: "class_names",
			apply: func(s models.RawSector) verdict {
				classes := strings.ToLower(s.ClassNames)
				if strings.Contains(classes, "available") || strings.Contains(classes, "selectable") {
					return verdictAvailable
				}
				if strings.Contains(classes, "disabled") || strings.Contains(classes, "unavailable") {
					return verdictUnavailable
				}
				return verdictUnknown
			},
		},
		{
			name: "data_status",
			apply: func(s models.RawSector) verdict {
				status := strings.ToLower(s.DataStatus)
				if equalsAny(status, availableStatuses) {
					return verdictAvailable
				}
				if equalsAny(status, unavailableStatuses) {
					return verdictUnavailable
				}
				return verdictUnknown
			},
		},
		{
			name: "color",
			apply: func(s models.RawSector) verdict {
				style := strings.ToLower(s.Style)
				fill := strings.ToLower(s.Fill)
				for _, color := range availableColors {
					if strings.Contains(style, color) || strings.Contains(fill, color) {
						return verdictAvailable
					}
				}
				for _, color := range unavailableColors {
					if strings.Contains(style, color) || strings.Contains(fill, color) {
						return verdictUnavailable
					}
				}
				return verdictUnknown
			},
		},
	}
}

// Normalize reduces raw sector data to the set of available canonical
// identifiers. Duplicate identifiers collapse; sectors that yield no
// identifier after cleanup are dropped.
func (n *Normalizer) Normalize(ctx context.Context, rawSectors []models.RawSector) models.SectorSet {
	available := make(models.SectorSet)

	for _, sector := range rawSectors {
		if !n.isAvailable(sector) {
			continue
		}

		sectorID := extractSectorID(sector)
		if sectorID == "" {
			n.log.DebugContext(ctx, "Dropping available sector without usable identifier",
				"aria_label", sector.AriaLabel, "classes", sector.ClassNames)
			continue
		}
		available[sectorID] = struct{}{}
	}

	n.log.InfoContext(ctx, "Normalized sectors",
		"raw_count", len(rawSectors), "available_count", len(available))

	return available
}

// isAvailable evaluates the classification rules in precedence order.
func (n *Normalizer) isAvailable(sector models.RawSector) bool {
	for _, r := range n.rules {
		switch r.apply(sector) {
		case verdictAvailable:
			return true
		case verdictUnavailable:
			return false
		case verdictUnknown:
			continue
		}
	}

	// Fail closed: an ambiguous sector is never surfaced as available.
	return false
}

// extractSectorID derives the canonical identifier for a sector. Sources
// are tried in order of preference; the first non-empty one wins.
func extractSectorID(sector models.RawSector) string {
	sources := []string{
		sector.ID,
		sector.SectorID,
		sector.Section,
		sector.AriaLabel,
		sector.Title,
		strings.TrimSpace(sector.TextContent),
	}

	for _, src := range sources {
		if src != "" {
			return cleanSectorID(src)
		}
	}

	return ""
}

// cleanSectorID strips punctuation, collapses whitespace runs to a single
// underscore and lower-cases the result.
func cleanSectorID(raw string) string {
	cleaned := idStripRe.ReplaceAllString(raw, "")
	cleaned = strings.TrimSpace(cleaned)
	cleaned = whitespaceRe.ReplaceAllString(cleaned, "_")

	return strings.ToLower(cleaned)
}

func containsAny(s string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(s, needle) {
			return true
		}
	}
	return false
}

func equalsAny(s string, values []string) bool {
	for _, v := range values {
		if s == v {
			return true
		}
	}
	return false
}
