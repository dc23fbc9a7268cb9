package repository

import (
	"context"

	"github.com/da-hostinger/planning-admin/backend/internal/domain"
	"github.com/google/uuid"
)

func (r *Repository) GetAllCenters(ctx context.Context) ([]*domain.Center, error) {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout())
	defer cancel()

	query := `
		SELECT id, name, address, created_at, updated_at
		FROM centers
		ORDER BY name
	`

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	centers := make([]*domain.Center, 0)
	for rows.Next() {
		c := &domain.Center{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Address, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		centers = append(centers, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return centers, nil
}

func (r *Repository) GetCenterByID(ctx context.Context, id uuid.UUID) (*domain.Center, error) {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout())
	defer cancel()

	query := `
		SELECT name, address, created_at, updated_at
		FROM centers WHERE id = $1
	`

	c := &domain.Center{ID: id}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(&c.Name, &c.Address, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}

	return c, nil
}

func (r *Repository) CreateCenter(ctx context.Context, c *domain.Center) error {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout())
	defer cancel()

	query := `
		INSERT INTO centers (name, address)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`

	return r.dbpool.QueryRowContext(ctx, query, c.Name, c.Address).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *Repository) UpdateCenter(ctx context.Context, c *domain.Center) error {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout())
	defer cancel()

	query := `
		UPDATE centers
		SET name = $1, address = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING created_at, updated_at
	`

	return r.dbpool.QueryRowContext(ctx, query, c.Name, c.Address, c.ID).Scan(&c.CreatedAt, &c.UpdatedAt)
}

func (r *Repository) DeleteCenter(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout())
	defer cancel()

	res, err := r.dbpool.ExecContext(ctx, `DELETE FROM centers WHERE id = $1`, id)
	if err != nil {
		return err
	}

	return checkAffected(res)
}
