package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
)

var constraintMessages = map[string]string{
	"centers_name_key":                       "ya existe un centro con ese nombre",
	"specialties_code_key":                   "ya existe una especialidad con ese código",
	"activities_name_key":                    "ya existe una actividad con ese nombre",
	"consultations_center_number_key":        "ya existe una consulta con ese número en el centro",
	"consultations_specialty_id_fkey":        "la especialidad no existe",
	"consultations_center_id_fkey":           "el centro no existe o tiene consultas asociadas",
	"users_email_key":                        "ya existe un usuario con ese correo",
	"users_specialty_id_fkey":                "la especialidad no existe",
	"users_consultation_id_fkey":             "la consulta no existe",
	"specialty_activities_specialty_id_fkey": "la especialidad no existe",
	"specialty_activities_activity_id_fkey":  "alguna de las actividades no existe",
	"planning_records_user_id_fkey":          "el usuario no existe",
	"planning_records_specialty_id_fkey":     "la especialidad no existe o tiene registros en el planning",
	"planning_records_activity_id_fkey":      "la actividad no existe o tiene registros en el planning",
	"planning_records_center_id_fkey":        "el centro no existe o tiene registros en el planning",
	"planning_records_consultation_id_fkey":  "la consulta no existe",
	"planning_records_shift_check":           "el turno no es válido",
	"user_absences_user_id_fkey":             "el usuario no existe",
	"user_absences_dates_check":              "la fecha de fin no puede ser anterior a la fecha de inicio",
}

// constraintMessage traduce una violación de restricción de PostgreSQL a un mensaje para el usuario.
func constraintMessage(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return "", false
	}

	msg, ok := constraintMessages[pgErr.ConstraintName]
	return msg, ok
}

// writeError responde a un error de escritura: notFound si no había fila, el mensaje de la
// restricción violada si se conoce y error interno en otro caso.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	if errors.Is(err, sql.ErrNoRows) {
		h.errorResponse(w, r, notFound)
		return
	}
	if msg, ok := constraintMessage(err); ok {
		h.errorResponse(w, r, msg)
		return
	}
	h.internalServerError(w, r, err)
}
