package domain

import (
	"time"

	"github.com/google/uuid"
)

// PlanningRecord asigna un profesional a una actividad (y opcionalmente a una consulta)
// en una fecha y turno concretos.
type PlanningRecord struct {
	ID             uuid.UUID  `json:"id"`
	UserID         uuid.UUID  `json:"userID"`
	SpecialtyID    uuid.UUID  `json:"specialtyID"`
	ActivityID     uuid.UUID  `json:"activityID"`
	CenterID       uuid.UUID  `json:"centerID"`
	ConsultationID *uuid.UUID `json:"consultationID"`
	RecordDate     time.Time  `json:"recordDate"`
	Shift          Shift      `json:"shift"`
	Notes          string     `json:"notes"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`

	User         *User         `json:"user,omitempty"`
	Specialty    *Specialty    `json:"specialty,omitempty"`
	Activity     *Activity     `json:"activity,omitempty"`
	Center       *Center       `json:"center,omitempty"`
	Consultation *Consultation `json:"consultation,omitempty"`
}
