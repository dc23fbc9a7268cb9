package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/da-hostinger/planning-admin/backend/internal/planning"
	"github.com/teambition/rrule-go"
)

var (
	ErrAbsenceDates  = errors.New("la fecha de fin no puede ser anterior a la fecha de inicio")
	ErrRegisterRange = errors.New("la fecha hasta no puede ser anterior a la fecha desde")
	ErrRecurrence    = errors.New("la regla de recurrencia no es válida")
)

func ValidateAbsenceDates(start, end time.Time) error {
	if planning.DateOf(end).Before(planning.DateOf(start)) {
		return ErrAbsenceDates
	}
	return nil
}

// ValidateRegisterRange comprueba que [from, to] es un intervalo válido de como mucho maxDays días.
func ValidateRegisterRange(from, to time.Time, maxDays int) error {
	from, to = planning.DateOf(from), planning.DateOf(to)
	if to.Before(from) {
		return ErrRegisterRange
	}

	days := int(to.Sub(from).Hours()/24) + 1
	if maxDays > 0 && days > maxDays {
		return fmt.Errorf("no se pueden registrar más de %d días de una vez", maxDays)
	}

	return nil
}

// ExpandRegisterDates devuelve las fechas de [from, to] en las que hay que crear un registro.
// Sin regla se devuelven todas; con regla (RRULE de RFC 5545, sin DTSTART) solo las que cumple.
// Las reglas con frecuencia inferior a un día no se aceptan.
func ExpandRegisterDates(from, to time.Time, recurrence string) ([]time.Time, error) {
	from, to = planning.DateOf(from), planning.DateOf(to)
	if to.Before(from) {
		return nil, ErrRegisterRange
	}

	if recurrence == "" {
		return planning.DaysBetween(from, to), nil
	}

	rule, err := rrule.StrToRRule(recurrence)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRecurrence, err)
	}
	opts := rule.OrigOptions
	if opts.Freq > rrule.DAILY || len(opts.Byminute) > 0 || len(opts.Bysecond) > 0 {
		return nil, fmt.Errorf("%w: la frecuencia mínima es diaria", ErrRecurrence)
	}
	rule.DTStart(from)

	// cualquier hora del día to cuenta
	end := to.AddDate(0, 0, 1)
	occurrences := rule.Between(from, end, true)
	dates := make([]time.Time, 0, len(occurrences))
	for _, o := range occurrences {
		if !o.Before(end) {
			continue
		}
		day := planning.DateOf(o)
		// Between devuelve las ocurrencias en orden
		if n := len(dates); n > 0 && dates[n-1].Equal(day) {
			continue
		}
		dates = append(dates, day)
	}
	return dates, nil
}
