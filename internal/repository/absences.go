package repository

import (
	"context"
	"time"

	"github.com/da-hostinger/planning-admin/backend/internal/domain"
	"github.com/google/uuid"
)

type AbsenceFilter struct {
	From   *time.Time
	To     *time.Time
	UserID *uuid.UUID
}

func normalizeAbsence(a *domain.Absence) {
	a.StartDate = time.Date(a.StartDate.Year(), a.StartDate.Month(), a.StartDate.Day(), 0, 0, 0, 0, time.UTC)
	a.EndDate = time.Date(a.EndDate.Year(), a.EndDate.Month(), a.EndDate.Day(), 0, 0, 0, 0, time.UTC)
}

// GetAbsences devuelve las ausencias que se solapan con [From, To]; un extremo nil no limita.
func (r *Repository) GetAbsences(ctx context.Context, filter AbsenceFilter) ([]*domain.Absence, error) {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout())
	defer cancel()

	query := `
		SELECT ua.id, ua.user_id, ua.start_date, ua.end_date, ua.reason, ua.created_at, ua.updated_at,
			u.email, u.full_name
		FROM user_absences ua
		JOIN users u ON u.id = ua.user_id
		WHERE ($1::date IS NULL OR ua.end_date >= $1)
		  AND ($2::date IS NULL OR ua.start_date <= $2)
		  AND ($3::uuid IS NULL OR ua.user_id = $3)
		ORDER BY ua.start_date, u.full_name
	`

	rows, err := r.dbpool.QueryContext(ctx, query, filter.From, filter.To, filter.UserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	absences := make([]*domain.Absence, 0)
	for rows.Next() {
		a := &domain.Absence{User: &domain.User{}}
		dst := []any{&a.ID, &a.UserID, &a.StartDate, &a.EndDate, &a.Reason, &a.CreatedAt, &a.UpdatedAt, &a.User.Email, &a.User.FullName}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		a.User.ID = a.UserID
		normalizeAbsence(a)
		absences = append(absences, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return absences, nil
}

func (r *Repository) GetAbsenceByID(ctx context.Context, id uuid.UUID) (*domain.Absence, error) {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout())
	defer cancel()

	query := `
		SELECT user_id, start_date, end_date, reason, created_at, updated_at
		FROM user_absences WHERE id = $1
	`

	a := &domain.Absence{ID: id}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(&a.UserID, &a.StartDate, &a.EndDate, &a.Reason, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	normalizeAbsence(a)

	return a, nil
}

func (r *Repository) CreateAbsence(ctx context.Context, a *domain.Absence) error {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout())
	defer cancel()

	query := `
		INSERT INTO user_absences (user_id, start_date, end_date, reason)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	return r.dbpool.QueryRowContext(ctx, query, a.UserID, a.StartDate, a.EndDate, a.Reason).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func (r *Repository) UpdateAbsence(ctx context.Context, a *domain.Absence) error {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout())
	defer cancel()

	query := `
		UPDATE user_absences
		SET start_date = $1, end_date = $2, reason = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING created_at, updated_at
	`

	return r.dbpool.QueryRowContext(ctx, query, a.StartDate, a.EndDate, a.Reason, a.ID).Scan(&a.CreatedAt, &a.UpdatedAt)
}

func (r *Repository) DeleteAbsence(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout())
	defer cancel()

	res, err := r.dbpool.ExecContext(ctx, `DELETE FROM user_absences WHERE id = $1`, id)
	if err != nil {
		return err
	}

	return checkAffected(res)
}
