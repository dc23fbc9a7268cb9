package repository

import (
	"context"
	"database/sql"

	"github.com/da-hostinger/planning-admin/backend/internal/domain"
	"github.com/google/uuid"
)

type ConsultationFilter struct {
	SpecialtyID *uuid.UUID
	CenterID    *uuid.UUID
}

const consultationColumns = `
	co.id, co.consultation_number, co.extension, co.specialty_id, co.center_id, co.is_active,
	co.created_at, co.updated_at,
	s.id, s.name, s.code,
	c.name, c.address
`

const consultationJoins = `
	FROM consultations co
	LEFT JOIN specialties s ON s.id = co.specialty_id
	JOIN centers c ON c.id = co.center_id
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanConsultation(row rowScanner) (*domain.Consultation, error) {
	co := &domain.Consultation{}
	var (
		specialtyID   uuid.NullUUID
		specialtyName sql.NullString
		specialtyCode sql.NullString
		centerName    string
		centerAddress string
	)

	dst := []any{
		&co.ID, &co.ConsultationNumber, &co.Extension, &co.SpecialtyID, &co.CenterID, &co.IsActive,
		&co.CreatedAt, &co.UpdatedAt,
		&specialtyID, &specialtyName, &specialtyCode,
		&centerName, &centerAddress,
	}
	if err := row.Scan(dst...); err != nil {
		return nil, err
	}

	if specialtyID.Valid {
		co.Specialty = &domain.Specialty{ID: specialtyID.UUID, Name: specialtyName.String, Code: specialtyCode.String}
	}
	co.Center = &domain.Center{ID: co.CenterID, Name: centerName, Address: centerAddress}

	return co, nil
}

func (r *Repository) GetAllConsultations(ctx context.Context, filter ConsultationFilter) ([]*domain.Consultation, error) {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout())
	defer cancel()

	query := `SELECT` + consultationColumns + consultationJoins + `
		WHERE ($1::uuid IS NULL OR co.specialty_id = $1)
		  AND ($2::uuid IS NULL OR co.center_id = $2)
		ORDER BY co.consultation_number
	`

	rows, err := r.dbpool.QueryContext(ctx, query, filter.SpecialtyID, filter.CenterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	consultations := make([]*domain.Consultation, 0)
	for rows.Next() {
		co, err := scanConsultation(rows)
		if err != nil {
			return nil, err
		}
		consultations = append(consultations, co)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return consultations, nil
}

func (r *Repository) GetConsultationByID(ctx context.Context, id uuid.UUID) (*domain.Consultation, error) {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout())
	defer cancel()

	query := `SELECT` + consultationColumns + consultationJoins + `WHERE co.id = $1`

	return scanConsultation(r.dbpool.QueryRowContext(ctx, query, id))
}

func (r *Repository) CreateConsultation(ctx context.Context, co *domain.Consultation) error {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout())
	defer cancel()

	query := `
		INSERT INTO consultations (consultation_number, extension, specialty_id, center_id, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	args := []any{co.ConsultationNumber, co.Extension, co.SpecialtyID, co.CenterID, co.IsActive}
	return r.dbpool.QueryRowContext(ctx, query, args...).Scan(&co.ID, &co.CreatedAt, &co.UpdatedAt)
}

func (r *Repository) UpdateConsultation(ctx context.Context, co *domain.Consultation) error {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout())
	defer cancel()

	query := `
		UPDATE consultations
		SET consultation_number = $1, extension = $2, specialty_id = $3, center_id = $4, is_active = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING created_at, updated_at
	`

	args := []any{co.ConsultationNumber, co.Extension, co.SpecialtyID, co.CenterID, co.IsActive, co.ID}
	return r.dbpool.QueryRowContext(ctx, query, args...).Scan(&co.CreatedAt, &co.UpdatedAt)
}

func (r *Repository) SetConsultationActive(ctx context.Context, id uuid.UUID, active bool) error {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout())
	defer cancel()

	res, err := r.dbpool.ExecContext(ctx, `UPDATE consultations SET is_active = $1, updated_at = NOW() WHERE id = $2`, active, id)
	if err != nil {
		return err
	}

	return checkAffected(res)
}

func (r *Repository) DeleteConsultation(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout())
	defer cancel()

	res, err := r.dbpool.ExecContext(ctx, `DELETE FROM consultations WHERE id = $1`, id)
	if err != nil {
		return err
	}

	return checkAffected(res)
}
