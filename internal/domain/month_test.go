package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMonthKey(t *testing.T) {
	tests := []struct {
		input   string
		want    MonthKey
		wantErr bool
	}{
		{"2024-03", MonthKey{2024, time.March}, false},
		{" 2024-12 ", MonthKey{2024, time.December}, false},
		{"03-2024", MonthKey{2024, time.March}, false},
		{"", MonthKey{}, true},
		{"2024-13", MonthKey{}, true},
		{"2024-3", MonthKey{}, true},
		{"março", MonthKey{}, true},
		{"2024-03-01", MonthKey{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMonthKey(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidMonth))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMonthKey_StringAndOrder(t *testing.T) {
	jan := MonthOf(time.Date(2024, 1, 31, 23, 59, 0, 0, time.UTC))

	assert.Equal(t, "2024-01", jan.String())
	assert.Equal(t, "", MonthKey{}.String())
	assert.True(t, MonthKey{2023, time.December}.Before(jan))
	assert.False(t, jan.Before(jan))

	text, err := jan.MarshalText()
	require.NoError(t, err)

	var parsed MonthKey
	require.NoError(t, parsed.UnmarshalText(text))
	assert.Equal(t, jan, parsed)
}
