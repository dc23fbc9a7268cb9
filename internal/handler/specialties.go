package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/da-hostinger/planning-admin/backend/internal/domain"
	"github.com/google/uuid"
)

func normalizeSpecialtyCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (h *Handler) invalidateSpecialties(r *http.Request) {
	// si falla, la caché caduca sola con su TTL
	if err := h.cache.InvalidateSpecialties(r.Context()); err != nil {
		slog.Warn("no se pudo invalidar la caché de especialidades", "error", err)
	}
}

func (h *Handler) GetAllSpecialties(w http.ResponseWriter, r *http.Request) {
	specialties, err := h.store.ListSpecialties(r.Context())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "especialidades obtenidas", specialties)
}

func (h *Handler) GetSpecialty(w http.ResponseWriter, r *http.Request) {
	specialty := r.Context().Value(SpecialtyCtx).(*domain.Specialty)
	h.successResponse(w, r, "especialidad obtenida", specialty)
}

func (h *Handler) CreateSpecialty(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name" validate:"required,max=200"`
		Code string `json:"code" validate:"required,max=20"`
	}
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	specialty := &domain.Specialty{
		Name: strings.TrimSpace(req.Name),
		Code: normalizeSpecialtyCode(req.Code),
	}
	if specialty.Code == domain.OtherSpecialtyCode {
		h.errorResponse(w, r, "el código OTHER está reservado")
		return
	}

	if err := h.repository.CreateSpecialty(r.Context(), specialty); err != nil {
		h.writeError(w, r, err, "no se pudo crear la especialidad")
		return
	}
	h.invalidateSpecialties(r)

	h.successResponse(w, r, "especialidad creada", specialty)
}

func (h *Handler) UpdateSpecialty(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name *string `json:"name" validate:"omitempty,min=1,max=200"`
		Code *string `json:"code" validate:"omitempty,min=1,max=20"`
	}
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	specialty := r.Context().Value(SpecialtyCtx).(*domain.Specialty)
	if req.Name != nil {
		specialty.Name = strings.TrimSpace(*req.Name)
	}
	if req.Code != nil {
		specialty.Code = normalizeSpecialtyCode(*req.Code)
		if specialty.Code == domain.OtherSpecialtyCode {
			h.errorResponse(w, r, "el código OTHER está reservado")
			return
		}
	}

	if err := h.repository.UpdateSpecialty(r.Context(), specialty); err != nil {
		h.writeError(w, r, err, "la especialidad ya no existe")
		return
	}
	h.invalidateSpecialties(r)

	h.successResponse(w, r, "especialidad actualizada", specialty)
}

func (h *Handler) DeleteSpecialty(w http.ResponseWriter, r *http.Request) {
	specialty := r.Context().Value(SpecialtyCtx).(*domain.Specialty)

	if err := h.repository.DeleteSpecialty(r.Context(), specialty.ID); err != nil {
		h.writeError(w, r, err, "la especialidad ya no existe")
		return
	}
	h.invalidateSpecialties(r)

	h.successResponse(w, r, "especialidad eliminada", nil)
}

func (h *Handler) GetSpecialtyActivities(w http.ResponseWriter, r *http.Request) {
	specialty := r.Context().Value(SpecialtyCtx).(*domain.Specialty)

	activities, err := h.repository.GetSpecialtyActivities(r.Context(), specialty.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "actividades de la especialidad obtenidas", activities)
}

func (h *Handler) ReplaceSpecialtyActivities(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ActivityIDs []uuid.UUID `json:"activityIDs" validate:"required,dive,required"`
	}
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	specialty := r.Context().Value(SpecialtyCtx).(*domain.Specialty)

	if err := h.repository.ReplaceSpecialtyActivities(r.Context(), specialty.ID, req.ActivityIDs); err != nil {
		h.writeError(w, r, err, "la especialidad ya no existe")
		return
	}

	activities, err := h.repository.GetSpecialtyActivities(r.Context(), specialty.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "actividades de la especialidad actualizadas", activities)
}

func (h *Handler) SetSpecialtyConsultationsActive(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IsActive *bool `json:"isActive" validate:"required"`
	}
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	specialty := r.Context().Value(SpecialtyCtx).(*domain.Specialty)

	n, err := h.repository.SetSpecialtyConsultationsActive(r.Context(), specialty.ID, *req.IsActive)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "contadores de visitas actualizados", map[string]int64{"updated": n})
}
