package domain

import (
	"time"

	"github.com/google/uuid"
)

// OtherSpecialtyCode agrupa en el planning los registros sin especialidad resoluble.
const OtherSpecialtyCode = "OTHER"

type Specialty struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
