package seed

import (
	"errors"
	"math/rand"
	"time"

	"github.com/da-hostinger/planning-admin/backend/internal/domain"
	"github.com/da-hostinger/planning-admin/backend/internal/planning"
	"github.com/google/uuid"
)

var ErrEmptyCatalog = errors.New("no hay datos de referencia suficientes para generar el planning")

// Catalog son las entidades existentes entre las que se reparten los registros aleatorios.
type Catalog struct {
	Users       []*domain.User
	Specialties []*domain.Specialty
	Activities  []*domain.Activity
	Centers     []*domain.Center
	// SpecialtyActivities restringe las actividades de cada especialidad; si falta, vale cualquiera.
	SpecialtyActivities map[uuid.UUID][]*domain.Activity
	// Consultations por centro; un registro sin consulta disponible se queda sin ella.
	Consultations map[uuid.UUID][]*domain.Consultation
}

// RandomPlanningRecords genera hasta perShift registros por día y turno entre from y to.
// Un mismo usuario no aparece dos veces en el mismo día y turno.
func RandomPlanningRecords(r *rand.Rand, c Catalog, from, to time.Time, perShift int) ([]*domain.PlanningRecord, error) {
	if len(c.Users) == 0 || len(c.Specialties) == 0 || len(c.Activities) == 0 || len(c.Centers) == 0 {
		return nil, ErrEmptyCatalog
	}

	specialtyByID := make(map[uuid.UUID]*domain.Specialty, len(c.Specialties))
	for _, s := range c.Specialties {
		specialtyByID[s.ID] = s
	}

	k := min(perShift, len(c.Users))
	records := make([]*domain.PlanningRecord, 0)

	for _, day := range planning.DaysBetween(from, to) {
		for _, shift := range domain.Shifts {
			for _, i := range r.Perm(len(c.Users))[:k] {
				user := c.Users[i]

				specialty := c.Specialties[r.Intn(len(c.Specialties))]
				if user.SpecialtyID != nil && specialtyByID[*user.SpecialtyID] != nil {
					specialty = specialtyByID[*user.SpecialtyID]
				}

				activities := c.Activities
				if linked := c.SpecialtyActivities[specialty.ID]; len(linked) > 0 {
					activities = linked
				}
				activity := activities[r.Intn(len(activities))]

				center := c.Centers[r.Intn(len(c.Centers))]

				record := &domain.PlanningRecord{
					UserID:      user.ID,
					SpecialtyID: specialty.ID,
					ActivityID:  activity.ID,
					CenterID:    center.ID,
					RecordDate:  day,
					Shift:       shift,
				}
				if consultations := c.Consultations[center.ID]; len(consultations) > 0 {
					id := consultations[r.Intn(len(consultations))].ID
					record.ConsultationID = &id
				}

				records = append(records, record)
			}
		}
	}

	return records, nil
}
