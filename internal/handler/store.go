package handler

import (
	"context"
	"log/slog"
	"time"

	"github.com/da-hostinger/planning-admin/backend/internal/cache"
	"github.com/da-hostinger/planning-admin/backend/internal/domain"
	"github.com/da-hostinger/planning-admin/backend/internal/planning"
	"github.com/da-hostinger/planning-admin/backend/internal/repository"
)

// planningStore sirve las lecturas del planning desde PostgreSQL, con las especialidades
// cacheadas en Redis.
type planningStore struct {
	repo  *repository.Repository
	cache *cache.Cache
}

func (s *planningStore) ListSpecialties(ctx context.Context) ([]*domain.Specialty, error) {
	specialties, ok, err := s.cache.GetSpecialties(ctx)
	if err != nil {
		slog.Warn("no se pudo leer la caché de especialidades", "error", err)
	}
	if ok {
		return specialties, nil
	}

	specialties, err = s.repo.GetAllSpecialties(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetSpecialties(ctx, specialties); err != nil {
		slog.Warn("no se pudo guardar la caché de especialidades", "error", err)
	}

	return specialties, nil
}

func (s *planningStore) ListActiveUsers(ctx context.Context, filter planning.UserFilter) ([]*domain.User, error) {
	active := true
	return s.repo.GetAllUsers(ctx, repository.UserFilter{
		SpecialtyID: filter.SpecialtyID,
		Active:      &active,
	})
}

func (s *planningStore) ListPlanningRecords(ctx context.Context, from, to time.Time, filter planning.RecordFilter) ([]*domain.PlanningRecord, error) {
	return s.repo.GetPlanningRecords(ctx, from, to, repository.PlanningRecordFilter{
		SpecialtyID: filter.SpecialtyID,
		UserID:      filter.UserID,
	})
}

func (s *planningStore) ListAbsences(ctx context.Context, from, to time.Time) ([]*domain.Absence, error) {
	return s.repo.GetAbsences(ctx, repository.AbsenceFilter{From: &from, To: &to})
}
