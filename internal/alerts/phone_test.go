package alerts_test

import (
	"testing"

	"github.com/platea/sector-monitor/internal/alerts"
	"github.com/stretchr/testify/assert"
)

func TestValidatePhone(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		input      string
		expected   string
		expectedOK bool
	}{
		{
			name:       "full E.164 number",
			input:      "+573001234567",
			expected:   "+573001234567",
			expectedOK: true,
		},
		{
			name:       "E.164 with whitespace",
			input:      "+57 300 123 4567",
			expected:   "+573001234567",
			expectedOK: true,
		},
		{
			name:       "E.164 with dashes and parentheses",
			input:      "+1 (555) 000-1111",
			expected:   "+15550001111",
			expectedOK: true,
		},
		{
			name:       "bare local number gets default country code",
			input:      "3001234567",
			expected:   "+573001234567",
			expectedOK: true,
		},
		{
			name:       "too short",
			input:      "123",
			expected:   "123",
			expectedOK: false,
		},
		{
			name:       "too long",
			input:      "+1234567890123456",
			expected:   "+1234567890123456",
			expectedOK: false,
		},
		{
			name:       "letters are rejected",
			input:      "phone",
			expected:   "phone",
			expectedOK: false,
		},
		{
			name:       "empty string",
			input:      "",
			expected:   "",
			expectedOK: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, ok := alerts.ValidatePhone(tc.input, "+57")

			assert.Equal(t, tc.expectedOK, ok)
			assert.Equal(t, tc.expected, got)
		})
	}
}
