package domain

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleReadonly Role = "readonly"
)

type User struct {
	ID             uuid.UUID  `json:"id"`
	Email          string     `json:"email"`
	FullName       string     `json:"fullName"`
	SpecialtyID    *uuid.UUID `json:"specialtyID"`
	ConsultationID *uuid.UUID `json:"consultationID"`
	Role           Role       `json:"role"`
	IsActive       bool       `json:"isActive"`
	PasswordHash   string     `json:"-"` // vacío cuando el usuario no tiene acceso
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`

	Specialty *Specialty `json:"specialty,omitempty"`
}

func (u *User) HasAccess() bool {
	return u.PasswordHash != ""
}
