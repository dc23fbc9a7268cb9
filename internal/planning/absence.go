package planning

import (
	"time"

	"github.com/da-hostinger/planning-admin/backend/internal/domain"
	"github.com/google/uuid"
)

type interval struct {
	start time.Time
	end   time.Time
}

// AbsenceIndex agrupa las ausencias por usuario para consultar si alguien falta un día concreto.
type AbsenceIndex struct {
	byUser map[uuid.UUID][]interval
}

func NewAbsenceIndex(absences []*domain.Absence) *AbsenceIndex {
	idx := &AbsenceIndex{
		byUser: make(map[uuid.UUID][]interval),
	}

	for _, a := range absences {
		if a == nil {
			continue
		}
		// solo cuenta la fecha; la hora se descarta para no desplazar los bordes por la zona horaria
		idx.byUser[a.UserID] = append(idx.byUser[a.UserID], interval{
			start: DateOf(a.StartDate),
			end:   DateOf(a.EndDate),
		})
	}

	return idx
}

// IsAbsent indica si userID tiene alguna ausencia con start <= day <= end.
func (idx *AbsenceIndex) IsAbsent(userID uuid.UUID, day time.Time) bool {
	d := DateOf(day)
	for _, iv := range idx.byUser[userID] {
		if !d.Before(iv.start) && !d.After(iv.end) {
			return true
		}
	}
	return false
}
