package models

// RawSector is the attribute bag extracted for one sector element on the
// seat map. Missing attributes are empty strings.
type RawSector struct {
	ID          string // element id
	SectorID    string // data-sector-id
	Section     string // data-section
	AriaLabel   string
	ClassNames  string
	DataStatus  string
	Style       string
	Fill        string
	Title       string
	TextContent string
}

// SectorSet is a set of canonical sector identifiers.
type SectorSet map[string]struct{}

// NewSectorSet builds a SectorSet from a list of identifiers.
func NewSectorSet(ids ...string) SectorSet {
	set := make(SectorSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// List returns the set members as a slice. Order is unspecified.
func (s SectorSet) List() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	return out
}

// Contains reports whether id is a member of the set.
func (s SectorSet) Contains(id string) bool {
	_, ok := s[id]
	return ok
}
