package handler

import (
	"net/http"
	"strings"

	"github.com/da-hostinger/planning-admin/backend/internal/domain"
	"github.com/da-hostinger/planning-admin/backend/internal/repository"
	"github.com/google/uuid"
)

func (h *Handler) GetAllConsultations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	specialtyID, err := queryUUID(q, "specialtyID")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	centerID, err := queryUUID(q, "centerID")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	consultations, err := h.repository.GetAllConsultations(r.Context(), repository.ConsultationFilter{
		SpecialtyID: specialtyID,
		CenterID:    centerID,
	})
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "consultas obtenidas", consultations)
}

func (h *Handler) GetConsultation(w http.ResponseWriter, r *http.Request) {
	consultation := r.Context().Value(ConsultationCtx).(*domain.Consultation)
	h.successResponse(w, r, "consulta obtenida", consultation)
}

func (h *Handler) CreateConsultation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ConsultationNumber string     `json:"consultationNumber" validate:"required,max=50"`
		Extension          string     `json:"extension" validate:"max=20"`
		SpecialtyID        *uuid.UUID `json:"specialtyID"`
		CenterID           uuid.UUID  `json:"centerID" validate:"required"`
		IsActive           *bool      `json:"isActive"`
	}
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	consultation := &domain.Consultation{
		ConsultationNumber: strings.TrimSpace(req.ConsultationNumber),
		Extension:          strings.TrimSpace(req.Extension),
		SpecialtyID:        req.SpecialtyID,
		CenterID:           req.CenterID,
		IsActive:           req.IsActive == nil || *req.IsActive,
	}
	if err := h.repository.CreateConsultation(r.Context(), consultation); err != nil {
		h.writeError(w, r, err, "no se pudo crear la consulta")
		return
	}

	h.successResponse(w, r, "consulta creada", consultation)
}

func (h *Handler) UpdateConsultation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ConsultationNumber *string    `json:"consultationNumber" validate:"omitempty,min=1,max=50"`
		Extension          *string    `json:"extension" validate:"omitempty,max=20"`
		SpecialtyID        *uuid.UUID `json:"specialtyID"`
		ClearSpecialty     bool       `json:"clearSpecialty"`
		CenterID           *uuid.UUID `json:"centerID"`
		IsActive           *bool      `json:"isActive"`
	}
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	consultation := r.Context().Value(ConsultationCtx).(*domain.Consultation)
	if req.ConsultationNumber != nil {
		consultation.ConsultationNumber = strings.TrimSpace(*req.ConsultationNumber)
	}
	if req.Extension != nil {
		consultation.Extension = strings.TrimSpace(*req.Extension)
	}
	if req.SpecialtyID != nil {
		consultation.SpecialtyID = req.SpecialtyID
	}
	if req.ClearSpecialty {
		consultation.SpecialtyID = nil
	}
	if req.CenterID != nil {
		consultation.CenterID = *req.CenterID
	}
	if req.IsActive != nil {
		consultation.IsActive = *req.IsActive
	}

	if err := h.repository.UpdateConsultation(r.Context(), consultation); err != nil {
		h.writeError(w, r, err, "la consulta ya no existe")
		return
	}

	updated, err := h.repository.GetConsultationByID(r.Context(), consultation.ID)
	if err != nil {
		h.writeError(w, r, err, "la consulta ya no existe")
		return
	}

	h.successResponse(w, r, "consulta actualizada", updated)
}

func (h *Handler) SetConsultationActive(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IsActive *bool `json:"isActive" validate:"required"`
	}
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	consultation := r.Context().Value(ConsultationCtx).(*domain.Consultation)

	if err := h.repository.SetConsultationActive(r.Context(), consultation.ID, *req.IsActive); err != nil {
		h.writeError(w, r, err, "la consulta ya no existe")
		return
	}
	consultation.IsActive = *req.IsActive

	h.successResponse(w, r, "contador de visitas actualizado", consultation)
}

func (h *Handler) DeleteConsultation(w http.ResponseWriter, r *http.Request) {
	consultation := r.Context().Value(ConsultationCtx).(*domain.Consultation)

	if err := h.repository.DeleteConsultation(r.Context(), consultation.ID); err != nil {
		h.writeError(w, r, err, "la consulta ya no existe")
		return
	}

	h.successResponse(w, r, "consulta eliminada", nil)
}
