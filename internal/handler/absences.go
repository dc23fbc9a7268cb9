package handler

import (
	"net/http"
	"strings"

	"github.com/da-hostinger/planning-admin/backend/internal/domain"
	"github.com/da-hostinger/planning-admin/backend/internal/repository"
	"github.com/da-hostinger/planning-admin/backend/internal/utils"
	"github.com/google/uuid"
)

func (h *Handler) GetAbsences(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	from, err := queryDate(q, "from")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	to, err := queryDate(q, "to")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	userID, err := queryUUID(q, "userID")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	absences, err := h.repository.GetAbsences(r.Context(), repository.AbsenceFilter{
		From:   from,
		To:     to,
		UserID: userID,
	})
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "ausencias obtenidas", absences)
}

func (h *Handler) GetAbsence(w http.ResponseWriter, r *http.Request) {
	absence := r.Context().Value(AbsenceCtx).(*domain.Absence)
	h.successResponse(w, r, "ausencia obtenida", absence)
}

func (h *Handler) CreateAbsence(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID    uuid.UUID `json:"userID" validate:"required"`
		StartDate string    `json:"startDate" validate:"required,datetime=2006-01-02"`
		EndDate   string    `json:"endDate" validate:"required,datetime=2006-01-02"`
		Reason    string    `json:"reason" validate:"max=500"`
	}
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	start, _ := parseDate(req.StartDate)
	end, _ := parseDate(req.EndDate)
	if err := utils.ValidateAbsenceDates(start, end); err != nil {
		h.badRequest(w, r, err)
		return
	}

	absence := &domain.Absence{
		UserID:    req.UserID,
		StartDate: start,
		EndDate:   end,
		Reason:    strings.TrimSpace(req.Reason),
	}
	if err := h.repository.CreateAbsence(r.Context(), absence); err != nil {
		h.writeError(w, r, err, "no se pudo crear la ausencia")
		return
	}

	h.successResponse(w, r, "ausencia creada", absence)
}

func (h *Handler) UpdateAbsence(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StartDate *string `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
		EndDate   *string `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
		Reason    *string `json:"reason" validate:"omitempty,max=500"`
	}
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	absence := r.Context().Value(AbsenceCtx).(*domain.Absence)

	if req.StartDate != nil {
		absence.StartDate, _ = parseDate(*req.StartDate)
	}
	if req.EndDate != nil {
		absence.EndDate, _ = parseDate(*req.EndDate)
	}
	if req.Reason != nil {
		absence.Reason = strings.TrimSpace(*req.Reason)
	}

	if err := utils.ValidateAbsenceDates(absence.StartDate, absence.EndDate); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.UpdateAbsence(r.Context(), absence); err != nil {
		h.writeError(w, r, err, "la ausencia ya no existe")
		return
	}

	h.successResponse(w, r, "ausencia actualizada", absence)
}

func (h *Handler) DeleteAbsence(w http.ResponseWriter, r *http.Request) {
	absence := r.Context().Value(AbsenceCtx).(*domain.Absence)

	if err := h.repository.DeleteAbsence(r.Context(), absence.ID); err != nil {
		h.writeError(w, r, err, "la ausencia ya no existe")
		return
	}

	h.successResponse(w, r, "ausencia eliminada", nil)
}
