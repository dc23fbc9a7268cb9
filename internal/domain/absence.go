package domain

import (
	"time"

	"github.com/google/uuid"
)

// Absence es un intervalo cerrado de fechas [StartDate, EndDate] en el que el usuario no está disponible.
type Absence struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userID"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	User *User `json:"user,omitempty"`
}
