package handler

import (
	"net/http"
	"strings"

	"github.com/da-hostinger/planning-admin/backend/internal/domain"
)

func (h *Handler) GetAllActivities(w http.ResponseWriter, r *http.Request) {
	activities, err := h.repository.GetAllActivities(r.Context())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "actividades obtenidas", activities)
}

func (h *Handler) GetActivity(w http.ResponseWriter, r *http.Request) {
	activity := r.Context().Value(ActivityCtx).(*domain.Activity)
	h.successResponse(w, r, "actividad obtenida", activity)
}

func (h *Handler) CreateActivity(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name" validate:"required,max=200"`
		Description string `json:"description" validate:"max=1000"`
	}
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	activity := &domain.Activity{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
	}
	if err := h.repository.CreateActivity(r.Context(), activity); err != nil {
		h.writeError(w, r, err, "no se pudo crear la actividad")
		return
	}

	h.successResponse(w, r, "actividad creada", activity)
}

func (h *Handler) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
		Description *string `json:"description" validate:"omitempty,max=1000"`
	}
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	activity := r.Context().Value(ActivityCtx).(*domain.Activity)
	if req.Name != nil {
		activity.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		activity.Description = strings.TrimSpace(*req.Description)
	}

	if err := h.repository.UpdateActivity(r.Context(), activity); err != nil {
		h.writeError(w, r, err, "la actividad ya no existe")
		return
	}

	h.successResponse(w, r, "actividad actualizada", activity)
}

func (h *Handler) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	activity := r.Context().Value(ActivityCtx).(*domain.Activity)

	if err := h.repository.DeleteActivity(r.Context(), activity.ID); err != nil {
		h.writeError(w, r, err, "la actividad ya no existe")
		return
	}

	h.successResponse(w, r, "actividad eliminada", nil)
}
