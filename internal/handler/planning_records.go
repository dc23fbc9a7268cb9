package handler

import (
	"net/http"
	"strings"

	"github.com/da-hostinger/planning-admin/backend/internal/domain"
	"github.com/da-hostinger/planning-admin/backend/internal/planning"
	"github.com/da-hostinger/planning-admin/backend/internal/repository"
	"github.com/da-hostinger/planning-admin/backend/internal/utils"
	"github.com/google/uuid"
)

func (h *Handler) GetPlanningRecords(w http.ResponseWriter, r *http.Request) {
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
	if from == nil || to == nil {
		h.errorResponse(w, r, "los parámetros from y to son obligatorios")
		return
	}
	if err := utils.ValidateRegisterRange(*from, *to, h.config.Planning.MaxRegisterDays); err != nil {
		h.badRequest(w, r, err)
		return
	}

	specialtyID, err := queryUUID(q, "specialtyID")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	userID, err := queryUUID(q, "userID")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	records, err := h.repository.GetPlanningRecords(r.Context(), *from, *to, repository.PlanningRecordFilter{
		SpecialtyID: specialtyID,
		UserID:      userID,
	})
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "registros obtenidos", records)
}

func (h *Handler) GetPlanningRecord(w http.ResponseWriter, r *http.Request) {
	record := r.Context().Value(PlanningRecordCtx).(*domain.PlanningRecord)
	h.successResponse(w, r, "registro obtenido", record)
}

type registerRequest struct {
	UserID         uuid.UUID  `json:"userID" validate:"required"`
	SpecialtyID    uuid.UUID  `json:"specialtyID" validate:"required"`
	ActivityID     uuid.UUID  `json:"activityID" validate:"required"`
	CenterID       uuid.UUID  `json:"centerID" validate:"required"`
	ConsultationID *uuid.UUID `json:"consultationID"`
	From           string     `json:"from" validate:"required,datetime=2006-01-02"`
	To             string     `json:"to" validate:"required,datetime=2006-01-02"`
	Shift          string     `json:"shift" validate:"required,oneof=morning afternoon"`
	Notes          string     `json:"notes" validate:"max=1000"`
	Recurrence     string     `json:"recurrence" validate:"max=500"`
}

// buildRecords expande la petición en un registro por fecha.
func (h *Handler) buildRecords(req *registerRequest) ([]*domain.PlanningRecord, error) {
	from, err := parseDate(req.From)
	if err != nil {
		return nil, err
	}
	to, err := parseDate(req.To)
	if err != nil {
		return nil, err
	}
	if err := utils.ValidateRegisterRange(from, to, h.config.Planning.MaxRegisterDays); err != nil {
		return nil, err
	}

	dates, err := utils.ExpandRegisterDates(from, to, strings.TrimSpace(req.Recurrence))
	if err != nil {
		return nil, err
	}

	records := make([]*domain.PlanningRecord, 0, len(dates))
	for _, date := range dates {
		records = append(records, &domain.PlanningRecord{
			UserID:         req.UserID,
			SpecialtyID:    req.SpecialtyID,
			ActivityID:     req.ActivityID,
			CenterID:       req.CenterID,
			ConsultationID: req.ConsultationID,
			RecordDate:     planning.DateOf(date),
			Shift:          domain.Shift(req.Shift),
			Notes:          strings.TrimSpace(req.Notes),
		})
	}

	return records, nil
}

func (h *Handler) RegisterPlanningRecords(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	records, err := h.buildRecords(&req)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	if len(records) == 0 {
		h.errorResponse(w, r, "la recurrencia no coincide con ninguna fecha del intervalo")
		return
	}

	if err := h.repository.CreatePlanningRecords(r.Context(), records); err != nil {
		h.writeError(w, r, err, "no se pudieron crear los registros")
		return
	}

	h.successResponse(w, r, "registros creados", records)
}

func (h *Handler) UpdatePlanningRecord(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ActivityID        *uuid.UUID `json:"activityID"`
		ConsultationID    *uuid.UUID `json:"consultationID"`
		ClearConsultation bool       `json:"clearConsultation"`
		Shift             *string    `json:"shift" validate:"omitempty,oneof=morning afternoon"`
		Notes             *string    `json:"notes" validate:"omitempty,max=1000"`
	}
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	record := r.Context().Value(PlanningRecordCtx).(*domain.PlanningRecord)

	if req.ActivityID != nil {
		record.ActivityID = *req.ActivityID
	}
	if req.ConsultationID != nil {
		record.ConsultationID = req.ConsultationID
	}
	if req.ClearConsultation {
		record.ConsultationID = nil
	}
	if req.Shift != nil {
		record.Shift = domain.Shift(*req.Shift)
	}
	if req.Notes != nil {
		record.Notes = strings.TrimSpace(*req.Notes)
	}

	if err := h.repository.UpdatePlanningRecord(r.Context(), record); err != nil {
		h.writeError(w, r, err, "el registro ya no existe")
		return
	}

	updated, err := h.repository.GetPlanningRecordByID(r.Context(), record.ID)
	if err != nil {
		h.writeError(w, r, err, "el registro ya no existe")
		return
	}

	h.successResponse(w, r, "registro actualizado", updated)
}

func (h *Handler) DeletePlanningRecord(w http.ResponseWriter, r *http.Request) {
	record := r.Context().Value(PlanningRecordCtx).(*domain.PlanningRecord)

	if err := h.repository.DeletePlanningRecord(r.Context(), record.ID); err != nil {
		h.writeError(w, r, err, "el registro ya no existe")
		return
	}

	h.successResponse(w, r, "registro eliminado", nil)
}
