package repository

import (
	"context"

	"github.com/da-hostinger/planning-admin/backend/internal/domain"
	"github.com/google/uuid"
)

func (r *Repository) GetAllActivities(ctx context.Context) ([]*domain.Activity, error) {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout())
	defer cancel()

	query := `
		SELECT id, name, description, created_at, updated_at
		FROM activities
		ORDER BY name
	`

	rows, err := r.dbpool.QueryContext(ctx, query)
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

func (r *Repository) GetActivityByID(ctx context.Context, id uuid.UUID) (*domain.Activity, error) {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout())
	defer cancel()

	query := `
		SELECT name, description, created_at, updated_at
		FROM activities WHERE id = $1
	`

	a := &domain.Activity{ID: id}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(&a.Name, &a.Description, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}

	return a, nil
}

func (r *Repository) CreateActivity(ctx context.Context, a *domain.Activity) error {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout())
	defer cancel()

	query := `
		INSERT INTO activities (name, description)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`

	return r.dbpool.QueryRowContext(ctx, query, a.Name, a.Description).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func (r *Repository) UpdateActivity(ctx context.Context, a *domain.Activity) error {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout())
	defer cancel()

	query := `
		UPDATE activities
		SET name = $1, description = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING created_at, updated_at
	`

	return r.dbpool.QueryRowContext(ctx, query, a.Name, a.Description, a.ID).Scan(&a.CreatedAt, &a.UpdatedAt)
}

func (r *Repository) DeleteActivity(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout())
	defer cancel()

	res, err := r.dbpool.ExecContext(ctx, `DELETE FROM activities WHERE id = $1`, id)
	if err != nil {
		return err
	}

	return checkAffected(res)
}
