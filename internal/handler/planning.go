package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/da-hostinger/planning-admin/backend/internal/planning"
)

// parsePlanningQuery interpreta ?view=&date=&specialtyID=&userID=&showAbsences=.
// Sin view se usa la vista por defecto de la configuración, sin date el día de hoy y
// showAbsences vale true salvo que se indique lo contrario.
func (h *Handler) parsePlanningQuery(q url.Values) (planning.Query, error) {
	query := planning.Query{ShowAbsences: true}

	view := q.Get("view")
	if view == "" {
		view = h.config.Planning.DefaultView
	}
	mode, err := planning.ParseViewMode(view)
	if err != nil {
		return query, fmt.Errorf("la vista %q no es válida", view)
	}
	query.ViewMode = mode

	date, err := queryDate(q, "date")
	if err != nil {
		return query, err
	}
	if date != nil {
		query.Date = *date
	} else {
		query.Date = planning.DateOf(h.now())
	}

	if query.SpecialtyID, err = queryUUID(q, "specialtyID"); err != nil {
		return query, err
	}
	if query.UserID, err = queryUUID(q, "userID"); err != nil {
		return query, err
	}

	show, err := queryBool(q, "showAbsences")
	if err != nil {
		return query, err
	}
	if show != nil {
		query.ShowAbsences = *show
	}

	return query, nil
}

func (h *Handler) GetPlanning(w http.ResponseWriter, r *http.Request) {
	query, err := h.parsePlanningQuery(r.URL.Query())
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	view, err := h.planning.Render(r.Context(), query)
	if err != nil {
		switch {
		case errors.Is(err, planning.ErrUnknownViewMode):
			h.badRequest(w, r, err)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "planning obtenido", view)
}
