package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func TestValidateAbsenceDates(t *testing.T) {
	assert.NoError(t, ValidateAbsenceDates(d(2024, 3, 1), d(2024, 3, 5)))
	assert.NoError(t, ValidateAbsenceDates(d(2024, 3, 1), d(2024, 3, 1)))
	// misma fecha con horas distintas
	assert.NoError(t, ValidateAbsenceDates(d(2024, 3, 1).Add(10*time.Hour), d(2024, 3, 1)))
	assert.ErrorIs(t, ValidateAbsenceDates(d(2024, 3, 5), d(2024, 3, 1)), ErrAbsenceDates)
}

func TestValidateRegisterRange(t *testing.T) {
	tests := []struct {
		name    string
		from    time.Time
		to      time.Time
		maxDays int
		wantErr bool
	}{
		{"un día", d(2024, 3, 1), d(2024, 3, 1), 366, false},
		{"año bisiesto completo", d(2024, 1, 1), d(2024, 12, 31), 366, false},
		{"demasiados días", d(2024, 1, 1), d(2025, 1, 1), 366, true},
		{"rango invertido", d(2024, 3, 2), d(2024, 3, 1), 366, true},
		{"sin límite", d(2020, 1, 1), d(2025, 1, 1), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRegisterRange(tt.from, tt.to, tt.maxDays)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestExpandRegisterDates_EveryDay(t *testing.T) {
	dates, err := ExpandRegisterDates(d(2024, 2, 28), d(2024, 3, 1), "")
	require.NoError(t, err)
	assert.Equal(t, []time.Time{d(2024, 2, 28), d(2024, 2, 29), d(2024, 3, 1)}, dates)
}

func TestExpandRegisterDates_Recurrence(t *testing.T) {
	// 2024-03-11 es lunes
	dates, err := ExpandRegisterDates(d(2024, 3, 11), d(2024, 3, 24), "FREQ=WEEKLY;BYDAY=MO,WE")
	require.NoError(t, err)
	assert.Equal(t, []time.Time{
		d(2024, 3, 11),
		d(2024, 3, 13),
		d(2024, 3, 18),
		d(2024, 3, 20),
	}, dates)
}

func TestExpandRegisterDates_RecurrenceIncludesLastDay(t *testing.T) {
	dates, err := ExpandRegisterDates(d(2024, 3, 1), d(2024, 3, 3), "FREQ=DAILY")
	require.NoError(t, err)
	assert.Len(t, dates, 3)
	assert.Equal(t, d(2024, 3, 3), dates[2])
}

func TestExpandRegisterDates_Errors(t *testing.T) {
	_, err := ExpandRegisterDates(d(2024, 3, 1), d(2024, 3, 10), "FREQ=NUNCA")
	assert.ErrorIs(t, err, ErrRecurrence)

	_, err = ExpandRegisterDates(d(2024, 3, 10), d(2024, 3, 1), "")
	assert.ErrorIs(t, err, ErrRegisterRange)
}

func TestExpandRegisterDates_RejectsSubDailyFrequency(t *testing.T) {
	for _, rule := range []string{"FREQ=HOURLY", "FREQ=MINUTELY", "FREQ=SECONDLY", "FREQ=HOURLY;INTERVAL=24", "FREQ=DAILY;BYMINUTE=0,30"} {
		t.Run(rule, func(t *testing.T) {
			dates, err := ExpandRegisterDates(d(2024, 3, 11), d(2024, 3, 12), rule)
			assert.ErrorIs(t, err, ErrRecurrence)
			assert.Nil(t, dates)
		})
	}
}

func TestExpandRegisterDates_OneDatePerDay(t *testing.T) {
	// BYHOUR genera dos ocurrencias por día con frecuencia diaria
	dates, err := ExpandRegisterDates(d(2024, 3, 11), d(2024, 3, 13), "FREQ=DAILY;BYHOUR=8,15")
	require.NoError(t, err)
	assert.Equal(t, []time.Time{d(2024, 3, 11), d(2024, 3, 12), d(2024, 3, 13)}, dates)
}
