package repository

import (
	"context"

	"github.com/da-hostinger/planning-admin/backend/internal/domain"
	"github.com/google/uuid"
)

func (r *Repository) GetAllSpecialties(ctx context.Context) ([]*domain.Specialty, error) {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout())
	defer cancel()

	query := `
		SELECT id, name, code, created_at, updated_at
		FROM specialties
		ORDER BY name
	`

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	specialties := make([]*domain.Specialty, 0)
	for rows.Next() {
		s := &domain.Specialty{}
		if err := rows.Scan(&s.ID, &s.Name, &s.Code, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		specialties = append(specialties, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return specialties, nil
}

func (r *Repository) GetSpecialtyByID(ctx context.Context, id uuid.UUID) (*domain.Specialty, error) {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout())
	defer cancel()

	query := `
		SELECT name, code, created_at, updated_at
		FROM specialties WHERE id = $1
	`

	s := &domain.Specialty{ID: id}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(&s.Name, &s.Code, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}

	return s, nil
}

func (r *Repository) CreateSpecialty(ctx context.Context, s *domain.Specialty) error {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout())
	defer cancel()

	query := `
		INSERT INTO specialties (name, code)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`

	return r.dbpool.QueryRowContext(ctx, query, s.Name, s.Code).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

func (r *Repository) UpdateSpecialty(ctx context.Context, s *domain.Specialty) error {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout())
	defer cancel()

	query := `
		UPDATE specialties
		SET name = $1, code = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING created_at, updated_at
	`

	return r.dbpool.QueryRowContext(ctx, query, s.Name, s.Code, s.ID).Scan(&s.CreatedAt, &s.UpdatedAt)
}

func (r *Repository) DeleteSpecialty(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout())
	defer cancel()

	res, err := r.dbpool.ExecContext(ctx, `DELETE FROM specialties WHERE id = $1`, id)
	if err != nil {
		return err
	}

	return checkAffected(res)
}

func (r *Repository) GetSpecialtyActivities(ctx context.Context, specialtyID uuid.UUID) ([]*domain.Activity, error) {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout())
	defer cancel()

	query := `
		SELECT a.id, a.name, a.description, a.created_at, a.updated_at
		FROM specialty_activities sa
		JOIN activities a ON a.id = sa.activity_id
		WHERE sa.specialty_id = $1
		ORDER BY a.name
	`

	rows, err := r.dbpool.QueryContext(ctx, query, specialtyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activities := make([]*domain.Activity, 0)
	for rows.Next() {
		a := &domain.Activity{}
		if err := rows.Scan(&a.ID, &a.Name, &a.Description, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return activities, nil
}

// ReplaceSpecialtyActivities deja como actividades de la especialidad exactamente activityIDs.
func (r *Repository) ReplaceSpecialtyActivities(ctx context.Context, specialtyID uuid.UUID, activityIDs []uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, r.transactionTimeout())
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM specialty_activities WHERE specialty_id = $1`, specialtyID); err != nil {
		return err
	}

	query := `
		INSERT INTO specialty_activities (specialty_id, activity_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`
	for _, activityID := range activityIDs {
		if _, err := tx.ExecContext(ctx, query, specialtyID, activityID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// SetSpecialtyConsultationsActive activa o desactiva el contador de visitas de todas las
// consultas de una especialidad y devuelve cuántas se han modificado.
func (r *Repository) SetSpecialtyConsultationsActive(ctx context.Context, specialtyID uuid.UUID, active bool) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout())
	defer cancel()

	query := `
		UPDATE consultations
		SET is_active = $1, updated_at = NOW()
		WHERE specialty_id = $2
	`

	res, err := r.dbpool.ExecContext(ctx, query, active, specialtyID)
	if err != nil {
		return 0, err
	}

	return res.RowsAffected()
}
