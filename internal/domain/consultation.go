package domain

import (
	"time"

	"github.com/google/uuid"
)

type Consultation struct {
	ID                 uuid.UUID  `json:"id"`
	ConsultationNumber string     `json:"consultationNumber"`
	Extension          string     `json:"extension"`
	SpecialtyID        *uuid.UUID `json:"specialtyID"`
	CenterID           uuid.UUID  `json:"centerID"`
	IsActive           bool       `json:"isActive"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`

	Specialty *Specialty `json:"specialty,omitempty"`
	Center    *Center    `json:"center,omitempty"`
}
