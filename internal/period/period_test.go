package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonthStart(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)

	got := MonthStart(time.Date(2025, time.May, 17, 15, 42, 7, 0, loc))
	assert.Equal(t, time.Date(2025, time.May, 1, 0, 0, 0, 0, loc), got)
}

func TestMonthWindow(t *testing.T) {
	tests := []struct {
		name  string
		in    time.Time
		start time.Time
		end   time.Time
	}{
		{
			name:  "mid month",
			in:    time.Date(2025, time.May, 17, 12, 0, 0, 0, time.UTC),
			start: time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "december rolls into next year",
			in:    time.Date(2025, time.December, 31, 23, 59, 59, 0, time.UTC),
			start: time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "first instant of month",
			in:    time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC),
			start: time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := MonthWindow(tt.in)
			assert.Equal(t, tt.start, start)
			assert.Equal(t, tt.end, end)
		})
	}
}
