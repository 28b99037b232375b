package diff_test

import (
	"testing"

	"github.com/platea/sector-monitor/internal/diff"
	"github.com/platea/sector-monitor/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name              string
		previous          models.SectorSet
		current           models.SectorSet
		expectedNew       []string
		expectedRemoved   []string
		expectedUnchanged []string
		expectChanges     bool
	}{
		{
			name:              "no changes",
			previous:          models.NewSectorSet("a", "b", "c"),
			current:           models.NewSectorSet("a", "b", "c"),
			expectedUnchanged: []string{"a", "b", "c"},
			expectChanges:     false,
		},
		{
			name:          "first run: everything is new",
			previous:      models.NewSectorSet(),
			current:       models.NewSectorSet("x", "y"),
			expectedNew:   []string{"x", "y"},
			expectChanges: true,
		},
		{
			name:              "new sectors appeared",
			previous:          models.NewSectorSet("a", "b"),
			current:           models.NewSectorSet("a", "b", "c", "d"),
			expectedNew:       []string{"c", "d"},
			expectedUnchanged: []string{"a", "b"},
			expectChanges:     true,
		},
		{
			name:              "sectors disappeared",
			previous:          models.NewSectorSet("a", "b", "c"),
			current:           models.NewSectorSet("a"),
			expectedRemoved:   []string{"b", "c"},
			expectedUnchanged: []string{"a"},
			expectChanges:     true,
		},
		{
			name:              "mixed additions and removals",
			previous:          models.NewSectorSet("a", "b"),
			current:           models.NewSectorSet("b", "c"),
			expectedNew:       []string{"c"},
			expectedRemoved:   []string{"a"},
			expectedUnchanged: []string{"b"},
			expectChanges:     true,
		},
		{
			name:          "both empty",
			previous:      models.NewSectorSet(),
			current:       models.NewSectorSet(),
			expectChanges: false,
		},
		{
			name:            "everything sold out",
			previous:        models.NewSectorSet("a", "b"),
			current:         models.NewSectorSet(),
			expectedRemoved: []string{"a", "b"},
			expectChanges:   true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			info := diff.Detect(tc.previous, tc.current)

			assert.ElementsMatch(t, tc.expectedNew, info.NewSectors)
			assert.ElementsMatch(t, tc.expectedRemoved, info.RemovedSectors)
			assert.ElementsMatch(t, tc.expectedUnchanged, info.UnchangedSectors)
			assert.Equal(t, tc.expectChanges, info.HasChanges)
			assert.Equal(t, len(tc.previous), info.TotalPrevious)
			assert.Equal(t, len(tc.current), info.TotalCurrent)
			require.False(t, info.Timestamp.IsZero())
		})
	}
}

func TestDetect_Idempotence(t *testing.T) {
	t.Parallel()

	set := models.NewSectorSet("a", "b", "c")
	info := diff.Detect(set, set)

	assert.Empty(t, info.NewSectors)
	assert.Empty(t, info.RemovedSectors)
	assert.ElementsMatch(t, []string{"a", "b", "c"}, info.UnchangedSectors)
	assert.False(t, info.HasChanges)
}

func TestShouldAlert(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		previous models.SectorSet
		current  models.SectorSet
		expected bool
	}{
		{
			name:     "new sectors trigger an alert",
			previous: models.NewSectorSet("a", "b"),
			current:  models.NewSectorSet("a", "b", "c", "d"),
			expected: true,
		},
		{
			name:     "removals alone never alert",
			previous: models.NewSectorSet("a", "b", "c"),
			current:  models.NewSectorSet("a"),
			expected: false,
		},
		{
			name:     "no changes, no alert",
			previous: models.NewSectorSet("a"),
			current:  models.NewSectorSet("a"),
			expected: false,
		},
		{
			name:     "first observation with availability alerts",
			previous: models.NewSectorSet(),
			current:  models.NewSectorSet("x"),
			expected: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			info := diff.Detect(tc.previous, tc.current)
			assert.Equal(t, tc.expected, diff.ShouldAlert(info))
		})
	}
}
