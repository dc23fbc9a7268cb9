package repository

import (
	"context"
	"database/sql"

	"github.com/da-hostinger/planning-admin/backend/internal/domain"
	"github.com/google/uuid"
)

type UserFilter struct {
	SpecialtyID *uuid.UUID
	Active      *bool
	// WithAccess limita el listado a usuarios con contraseña
	WithAccess bool
}

const userColumns = `
	u.id, u.email, u.full_name, u.specialty_id, u.consultation_id, u.role, u.is_active,
	u.password_hash, u.created_at, u.updated_at,
	s.id, s.name, s.code
`

const userJoins = `
	FROM users u
	LEFT JOIN specialties s ON s.id = u.specialty_id
`

func scanUser(row rowScanner) (*domain.User, error) {
	user := &domain.User{}
	var (
		specialtyID   uuid.NullUUID
		specialtyName sql.NullString
		specialtyCode sql.NullString
	)

	dst := []any{
		&user.ID, &user.Email, &user.FullName, &user.SpecialtyID, &user.ConsultationID, &user.Role, &user.IsActive,
		&user.PasswordHash, &user.CreatedAt, &user.UpdatedAt,
		&specialtyID, &specialtyName, &specialtyCode,
	}
	if err := row.Scan(dst...); err != nil {
		return nil, err
	}

	if specialtyID.Valid {
		user.Specialty = &domain.Specialty{ID: specialtyID.UUID, Name: specialtyName.String, Code: specialtyCode.String}
	}

	return user, nil
}

func (r *Repository) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout())
	defer cancel()

	query := `SELECT` + userColumns + userJoins + `WHERE u.id = $1`

	return scanUser(r.dbpool.QueryRowContext(ctx, query, id))
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout())
	defer cancel()

	query := `SELECT` + userColumns + userJoins + `WHERE u.email = $1`

	return scanUser(r.dbpool.QueryRowContext(ctx, query, email))
}

func (r *Repository) GetAllUsers(ctx context.Context, filter UserFilter) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout())
	defer cancel()

	query := `SELECT` + userColumns + userJoins + `
		WHERE ($1::uuid IS NULL OR u.specialty_id = $1)
		  AND ($2::boolean IS NULL OR u.is_active = $2)
		  AND (NOT $3::boolean OR u.password_hash <> '')
		ORDER BY u.full_name
	`

	rows, err := r.dbpool.QueryContext(ctx, query, filter.SpecialtyID, filter.Active, filter.WithAccess)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

func (r *Repository) CreateUser(ctx context.Context, user *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout())
	defer cancel()

	query := `
		INSERT INTO users (email, full_name, specialty_id, consultation_id, role, is_active, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	args := []any{user.Email, user.FullName, user.SpecialtyID, user.ConsultationID, user.Role, user.IsActive, user.PasswordHash}
	return r.dbpool.QueryRowContext(ctx, query, args...).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *Repository) UpdateUser(ctx context.Context, user *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout())
	defer cancel()

	query := `
		UPDATE users
		SET
			email = $1,
			full_name = $2,
			specialty_id = $3,
			consultation_id = $4,
			role = $5,
			is_active = $6,
			password_hash = $7,
			updated_at = NOW()
		WHERE id = $8
		RETURNING created_at, updated_at
	`

	args := []any{user.Email, user.FullName, user.SpecialtyID, user.ConsultationID, user.Role, user.IsActive, user.PasswordHash, user.ID}
	return r.dbpool.QueryRowContext(ctx, query, args...).Scan(&user.CreatedAt, &user.UpdatedAt)
}

func (r *Repository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout())
	defer cancel()

	res, err := r.dbpool.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}

	return checkAffected(res)
}

func (r *Repository) CheckEmailIfExists(ctx context.Context, email string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout())
	defer cancel()

	isExists := false
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`
	if err := r.dbpool.QueryRowContext(ctx, query, email).Scan(&isExists); err != nil {
		return false, err
	}

	return isExists, nil
}
