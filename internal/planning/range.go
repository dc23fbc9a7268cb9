package planning

import (
	"errors"
	"fmt"
	"time"
)

type ViewMode string

const (
	ViewDaily   ViewMode = "daily"
	ViewWeekly  ViewMode = "weekly"
	ViewMonthly ViewMode = "monthly"
	ViewYearly  ViewMode = "yearly"
)

var ErrUnknownViewMode = errors.New("planning: modo de vista desconocido")

func ParseViewMode(s string) (ViewMode, error) {
	switch mode := ViewMode(s); mode {
	case ViewDaily, ViewWeekly, ViewMonthly, ViewYearly:
		return mode, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownViewMode, s)
	}
}

// Range es el intervalo cerrado [Start, End] de una vista junto con cada día que contiene.
type Range struct {
	Start time.Time   `json:"start"`
	End   time.Time   `json:"end"`
	Days  []time.Time `json:"days"`
}

func (r Range) Contains(t time.Time) bool {
	day := DateOf(t)
	return !day.Before(r.Start) && !day.After(r.End)
}

// DateOf devuelve la fecha de calendario de t (en su propia zona) como medianoche UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ResolveRange calcula los límites de la vista que contiene a anchor.
// Las semanas empiezan en lunes.
func ResolveRange(mode ViewMode, anchor time.Time) (Range, error) {
	day := DateOf(anchor)

	var start, end time.Time
	switch mode {
	case ViewDaily:
		start, end = day, day
	case ViewWeekly:
		weekday := int(day.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		start = day.AddDate(0, 0, -(weekday - 1))
		end = start.AddDate(0, 0, 6)
	case ViewMonthly:
		start = time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
		// día 0 del mes siguiente = último día de este mes
		end = time.Date(day.Year(), day.Month()+1, 0, 0, 0, 0, 0, time.UTC)
	case ViewYearly:
		start = time.Date(day.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		end = time.Date(day.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)
	default:
		return Range{}, fmt.Errorf("%w: %q", ErrUnknownViewMode, mode)
	}

	return Range{
		Start: start,
		End:   end,
		Days:  DaysBetween(start, end),
	}, nil
}

// DaysBetween lista cada fecha de start a end, ambos incluidos. Devuelve nil si end < start.
func DaysBetween(start, end time.Time) []time.Time {
	start, end = DateOf(start), DateOf(end)
	if end.Before(start) {
		return nil
	}

	days := make([]time.Time, 0, int(end.Sub(start).Hours()/24)+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
