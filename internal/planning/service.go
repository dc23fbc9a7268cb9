package planning

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/da-hostinger/planning-admin/backend/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

var ErrRenderFailed = errors.New("planning: no se pudo cargar el planning")

type UserFilter struct {
	SpecialtyID *uuid.UUID
}

type RecordFilter struct {
	SpecialtyID *uuid.UUID
	UserID      *uuid.UUID
}

// Store son las lecturas que necesita una pasada de render.
type Store interface {
	ListSpecialties(ctx context.Context) ([]*domain.Specialty, error)
	ListActiveUsers(ctx context.Context, filter UserFilter) ([]*domain.User, error)
	ListPlanningRecords(ctx context.Context, from, to time.Time, filter RecordFilter) ([]*domain.PlanningRecord, error)
	ListAbsences(ctx context.Context, from, to time.Time) ([]*domain.Absence, error)
}

type Query struct {
	ViewMode     ViewMode
	Date         time.Time
	SpecialtyID  *uuid.UUID
	UserID       *uuid.UUID
	ShowAbsences bool
}

type View struct {
	ViewMode     ViewMode            `json:"viewMode"`
	ShowAbsences bool                `json:"showAbsences"`
	Range        Range               `json:"range"`
	Specialties  []*domain.Specialty `json:"specialties"`
	Users        []*domain.User      `json:"users"`
	Grid         *Grid               `json:"grid"`
}

type Service struct {
	store  Store
	shifts []domain.Shift
}

func NewService(store Store) *Service {
	return &Service{
		store:  store,
		shifts: domain.Shifts,
	}
}

// Render ejecuta una pasada completa: resuelve el rango, lanza las cuatro lecturas en paralelo
// y agrupa el resultado. Si falla cualquier lectura no se devuelve ninguna parrilla parcial.
func (s *Service) Render(ctx context.Context, q Query) (*View, error) {
	rng, err := ResolveRange(q.ViewMode, q.Date)
	if err != nil {
		return nil, err
	}

	var (
		specialties []*domain.Specialty
		users       []*domain.User
		records     []*domain.PlanningRecord
		absences    []*domain.Absence
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		v, err := s.store.ListSpecialties(gctx)
		if err != nil {
			return fmt.Errorf("especialidades: %w", err)
		}
		specialties = v
		return nil
	})

	g.Go(func() error {
		v, err := s.store.ListActiveUsers(gctx, UserFilter{SpecialtyID: q.SpecialtyID})
		if err != nil {
			return fmt.Errorf("usuarios: %w", err)
		}
		users = v
		return nil
	})

	g.Go(func() error {
		v, err := s.store.ListPlanningRecords(gctx, rng.Start, rng.End, RecordFilter{
			SpecialtyID: q.SpecialtyID,
			UserID:      q.UserID,
		})
		if err != nil {
			return fmt.Errorf("registros: %w", err)
		}
		records = v
		return nil
	})

	// las ausencias se cargan aunque no se muestren: hacen falta para ocultar esos registros
	g.Go(func() error {
		v, err := s.store.ListAbsences(gctx, rng.Start, rng.End)
		if err != nil {
			return fmt.Errorf("ausencias: %w", err)
		}
		absences = v
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRenderFailed, err)
	}

	rows := filterSpecialties(specialties, q.SpecialtyID)

	return &View{
		ViewMode:     q.ViewMode,
		ShowAbsences: q.ShowAbsences,
		Range:        rng,
		Specialties:  rows,
		Users:        users,
		Grid:         BuildGrid(records, absences, rng.Days, rows, s.shifts, Options{ShowAbsences: q.ShowAbsences}),
	}, nil
}

func filterSpecialties(specialties []*domain.Specialty, id *uuid.UUID) []*domain.Specialty {
	if id == nil {
		return specialties
	}

	filtered := make([]*domain.Specialty, 0, 1)
	for _, s := range specialties {
		if s.ID == *id {
			filtered = append(filtered, s)
		}
	}
	return filtered
}
