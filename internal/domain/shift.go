package domain

type Shift string

const (
	ShiftMorning   Shift = "morning"
	ShiftAfternoon Shift = "afternoon"
)

// Shifts es el orden en que se muestran los turnos en el planning.
var Shifts = []Shift{ShiftMorning, ShiftAfternoon}

func (s Shift) Valid() bool {
	return s == ShiftMorning || s == ShiftAfternoon
}
