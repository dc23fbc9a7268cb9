package handler

import (
	"net/http"
	"strings"

	"github.com/da-hostinger/planning-admin/backend/internal/domain"
	"github.com/da-hostinger/planning-admin/backend/internal/repository"
	"github.com/google/uuid"
)

func (h *Handler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	specialtyID, err := queryUUID(q, "specialtyID")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	active, err := queryBool(q, "active")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	users, err := h.repository.GetAllUsers(r.Context(), repository.UserFilter{
		SpecialtyID: specialtyID,
		Active:      active,
	})
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "usuarios obtenidos", users)
}

func (h *Handler) GetUserInfo(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserInfoCtx).(*domain.User)
	h.successResponse(w, r, "usuario obtenido", user)
}

// CreateUser da de alta personal sin credenciales; el acceso se concede en /access.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email          string     `json:"email" validate:"required,email"`
		FullName       string     `json:"fullName" validate:"required,max=200"`
		SpecialtyID    *uuid.UUID `json:"specialtyID"`
		ConsultationID *uuid.UUID `json:"consultationID"`
		Role           string     `json:"role" validate:"omitempty,oneof=admin readonly"`
		IsActive       *bool      `json:"isActive"`
	}
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	user := &domain.User{
		Email:          strings.TrimSpace(req.Email),
		FullName:       strings.TrimSpace(req.FullName),
		SpecialtyID:    req.SpecialtyID,
		ConsultationID: req.ConsultationID,
		Role:           domain.RoleReadonly,
		IsActive:       req.IsActive == nil || *req.IsActive,
	}
	if req.Role != "" {
		user.Role = domain.Role(req.Role)
	}

	if err := h.repository.CreateUser(r.Context(), user); err != nil {
		h.writeError(w, r, err, "no se pudo crear el usuario")
		return
	}

	h.successResponse(w, r, "usuario creado", user)
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email             *string    `json:"email" validate:"omitempty,email"`
		FullName          *string    `json:"fullName" validate:"omitempty,min=1,max=200"`
		SpecialtyID       *uuid.UUID `json:"specialtyID"`
		ClearSpecialty    bool       `json:"clearSpecialty"`
		ConsultationID    *uuid.UUID `json:"consultationID"`
		ClearConsultation bool       `json:"clearConsultation"`
		Role              *string    `json:"role" validate:"omitempty,oneof=admin readonly"`
		IsActive          *bool      `json:"isActive"`
	}
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	user := r.Context().Value(UserInfoCtx).(*domain.User)

	if req.Email != nil {
		user.Email = strings.TrimSpace(*req.Email)
	}
	if req.FullName != nil {
		user.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.SpecialtyID != nil {
		user.SpecialtyID = req.SpecialtyID
	}
	if req.ClearSpecialty {
		user.SpecialtyID = nil
	}
	if req.ConsultationID != nil {
		user.ConsultationID = req.ConsultationID
	}
	if req.ClearConsultation {
		user.ConsultationID = nil
	}
	if req.Role != nil {
		user.Role = domain.Role(*req.Role)
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := h.repository.UpdateUser(r.Context(), user); err != nil {
		h.writeError(w, r, err, "el usuario ya no existe")
		return
	}

	updated, err := h.repository.GetUserByID(r.Context(), user.ID)
	if err != nil {
		h.writeError(w, r, err, "el usuario ya no existe")
		return
	}

	h.successResponse(w, r, "usuario actualizado", updated)
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserInfoCtx).(*domain.User)

	if err := h.repository.DeleteUser(r.Context(), user.ID); err != nil {
		h.writeError(w, r, err, "el usuario ya no existe")
		return
	}

	h.successResponse(w, r, "usuario eliminado", nil)
}
