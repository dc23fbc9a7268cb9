package handler

import (
	"net/http"
	"strings"

	"github.com/da-hostinger/planning-admin/backend/internal/domain"
)

func (h *Handler) GetAllCenters(w http.ResponseWriter, r *http.Request) {
	centers, err := h.repository.GetAllCenters(r.Context())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "centros obtenidos", centers)
}

func (h *Handler) GetCenter(w http.ResponseWriter, r *http.Request) {
	center := r.Context().Value(CenterCtx).(*domain.Center)
	h.successResponse(w, r, "centro obtenido", center)
}

func (h *Handler) CreateCenter(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name" validate:"required,max=200"`
		Address string `json:"address" validate:"max=500"`
	}
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	center := &domain.Center{
		Name:    strings.TrimSpace(req.Name),
		Address: strings.TrimSpace(req.Address),
	}
	if err := h.repository.CreateCenter(r.Context(), center); err != nil {
		h.writeError(w, r, err, "no se pudo crear el centro")
		return
	}

	h.successResponse(w, r, "centro creado", center)
}

func (h *Handler) UpdateCenter(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    *string `json:"name" validate:"omitempty,min=1,max=200"`
		Address *string `json:"address" validate:"omitempty,max=500"`
	}
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	center := r.Context().Value(CenterCtx).(*domain.Center)
	if req.Name != nil {
		center.Name = strings.TrimSpace(*req.Name)
	}
	if req.Address != nil {
		center.Address = strings.TrimSpace(*req.Address)
	}

	if err := h.repository.UpdateCenter(r.Context(), center); err != nil {
		h.writeError(w, r, err, "el centro ya no existe")
		return
	}

	h.successResponse(w, r, "centro actualizado", center)
}

func (h *Handler) DeleteCenter(w http.ResponseWriter, r *http.Request) {
	center := r.Context().Value(CenterCtx).(*domain.Center)

	if err := h.repository.DeleteCenter(r.Context(), center.ID); err != nil {
		h.writeError(w, r, err, "el centro ya no existe")
		return
	}

	h.successResponse(w, r, "centro eliminado", nil)
}
