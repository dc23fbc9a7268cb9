package planning

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolveRange(t *testing.T) {
	tests := []struct {
		name      string
		mode      ViewMode
		anchor    time.Time
		wantStart time.Time
		wantEnd   time.Time
		wantDays  int
	}{
		{"daily", ViewDaily, date(2024, 3, 13), date(2024, 3, 13), date(2024, 3, 13), 1},
		{"weekly from wednesday", ViewWeekly, date(2024, 3, 13), date(2024, 3, 11), date(2024, 3, 17), 7},
		{"weekly from monday", ViewWeekly, date(2024, 3, 11), date(2024, 3, 11), date(2024, 3, 17), 7},
		{"weekly from sunday", ViewWeekly, date(2024, 3, 17), date(2024, 3, 11), date(2024, 3, 17), 7},
		{"weekly across new year", ViewWeekly, date(2025, 1, 1), date(2024, 12, 30), date(2025, 1, 5), 7},
		{"monthly leap february", ViewMonthly, date(2024, 2, 29), date(2024, 2, 1), date(2024, 2, 29), 29},
		{"monthly february", ViewMonthly, date(2023, 2, 14), date(2023, 2, 1), date(2023, 2, 28), 28},
		{"monthly december", ViewMonthly, date(2024, 12, 31), date(2024, 12, 1), date(2024, 12, 31), 31},
		{"monthly april", ViewMonthly, date(2024, 4, 1), date(2024, 4, 1), date(2024, 4, 30), 30},
		{"yearly leap", ViewYearly, date(2024, 7, 4), date(2024, 1, 1), date(2024, 12, 31), 366},
		{"yearly", ViewYearly, date(2023, 1, 1), date(2023, 1, 1), date(2023, 12, 31), 365},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng, err := ResolveRange(tt.mode, tt.anchor)
			require.NoError(t, err)

			assert.Equal(t, tt.wantStart, rng.Start)
			assert.Equal(t, tt.wantEnd, rng.End)
			require.Len(t, rng.Days, tt.wantDays)
			assert.Equal(t, tt.wantStart, rng.Days[0])
			assert.Equal(t, tt.wantEnd, rng.Days[len(rng.Days)-1])
		})
	}
}

func TestResolveRange_DaysAreContiguous(t *testing.T) {
	modes := []ViewMode{ViewDaily, ViewWeekly, ViewMonthly, ViewYearly}

	for anchor := date(2023, 1, 1); anchor.Before(date(2025, 12, 31)); anchor = anchor.AddDate(0, 0, 11) {
		for _, mode := range modes {
			rng, err := ResolveRange(mode, anchor)
			require.NoError(t, err)

			require.False(t, rng.End.Before(rng.Start), "%s %s", mode, anchor)
			span := int(rng.End.Sub(rng.Start).Hours()/24) + 1
			require.Len(t, rng.Days, span, "%s %s", mode, anchor)
			assert.True(t, rng.Contains(anchor))

			for i := 1; i < len(rng.Days); i++ {
				require.Equal(t, rng.Days[i-1].AddDate(0, 0, 1), rng.Days[i], "%s %s", mode, anchor)
			}
		}
	}
}

func TestResolveRange_IgnoresTimeOfDay(t *testing.T) {
	bogota := time.FixedZone("COT", -5*60*60)
	// domingo por la noche en Bogotá, ya lunes en UTC
	anchor := time.Date(2024, 3, 10, 23, 30, 0, 0, bogota)

	rng, err := ResolveRange(ViewWeekly, anchor)
	require.NoError(t, err)

	assert.Equal(t, date(2024, 3, 4), rng.Start)
	assert.Equal(t, date(2024, 3, 10), rng.End)
}

func TestResolveRange_UnknownMode(t *testing.T) {
	_, err := ResolveRange(ViewMode("quarterly"), date(2024, 1, 1))
	assert.ErrorIs(t, err, ErrUnknownViewMode)
}

func TestParseViewMode(t *testing.T) {
	for _, s := range []string{"daily", "weekly", "monthly", "yearly"} {
		mode, err := ParseViewMode(s)
		require.NoError(t, err)
		assert.Equal(t, ViewMode(s), mode)
	}

	_, err := ParseViewMode("Weekly")
	assert.ErrorIs(t, err, ErrUnknownViewMode)
}

func TestDaysBetween(t *testing.T) {
	days := DaysBetween(date(2024, 2, 27), date(2024, 3, 2))
	assert.Equal(t, []time.Time{
		date(2024, 2, 27),
		date(2024, 2, 28),
		date(2024, 2, 29),
		date(2024, 3, 1),
		date(2024, 3, 2),
	}, days)

	assert.Nil(t, DaysBetween(date(2024, 3, 2), date(2024, 3, 1)))
}
