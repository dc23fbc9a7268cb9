package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/da-hostinger/planning-admin/backend/internal/domain"
	"github.com/google/uuid"
)

type PlanningRecordFilter struct {
	SpecialtyID *uuid.UUID
	UserID      *uuid.UUID
}

const planningRecordColumns = `
	pr.id, pr.user_id, pr.specialty_id, pr.activity_id, pr.center_id, pr.consultation_id,
	pr.record_date, pr.shift, pr.notes, pr.created_at, pr.updated_at,
	u.email, u.full_name, u.role, u.is_active,
	s.id, s.name, s.code,
	a.id, a.name,
	c.id, c.name,
	co.id, co.consultation_number, co.extension
`

const planningRecordJoins = `
	FROM planning_records pr
	JOIN users u ON u.id = pr.user_id
	LEFT JOIN specialties s ON s.id = pr.specialty_id
	LEFT JOIN activities a ON a.id = pr.activity_id
	LEFT JOIN centers c ON c.id = pr.center_id
	LEFT JOIN consultations co ON co.id = pr.consultation_id
`

func scanPlanningRecord(row rowScanner) (*domain.PlanningRecord, error) {
	pr := &domain.PlanningRecord{User: &domain.User{}}
	var (
		specialtyID        uuid.NullUUID
		specialtyName      sql.NullString
		specialtyCode      sql.NullString
		activityID         uuid.NullUUID
		activityName       sql.NullString
		centerID           uuid.NullUUID
		centerName         sql.NullString
		consultationID     uuid.NullUUID
		consultationNumber sql.NullString
		extension          sql.NullString
	)

	dst := []any{
		&pr.ID, &pr.UserID, &pr.SpecialtyID, &pr.ActivityID, &pr.CenterID, &pr.ConsultationID,
		&pr.RecordDate, &pr.Shift, &pr.Notes, &pr.CreatedAt, &pr.UpdatedAt,
		&pr.User.Email, &pr.User.FullName, &pr.User.Role, &pr.User.IsActive,
		&specialtyID, &specialtyName, &specialtyCode,
		&activityID, &activityName,
		&centerID, &centerName,
		&consultationID, &consultationNumber, &extension,
	}
	if err := row.Scan(dst...); err != nil {
		return nil, err
	}

	pr.User.ID = pr.UserID
	pr.RecordDate = time.Date(pr.RecordDate.Year(), pr.RecordDate.Month(), pr.RecordDate.Day(), 0, 0, 0, 0, time.UTC)
	if specialtyID.Valid {
		pr.Specialty = &domain.Specialty{ID: specialtyID.UUID, Name: specialtyName.String, Code: specialtyCode.String}
	}
	if activityID.Valid {
		pr.Activity = &domain.Activity{ID: activityID.UUID, Name: activityName.String}
	}
	if centerID.Valid {
		pr.Center = &domain.Center{ID: centerID.UUID, Name: centerName.String}
	}
	if consultationID.Valid {
		pr.Consultation = &domain.Consultation{
			ID:                 consultationID.UUID,
			ConsultationNumber: consultationNumber.String,
			Extension:          extension.String,
		}
	}

	return pr, nil
}

// GetPlanningRecords devuelve los registros con fecha en [from, to] ordenados por fecha, turno y profesional.
func (r *Repository) GetPlanningRecords(ctx context.Context, from, to time.Time, filter PlanningRecordFilter) ([]*domain.PlanningRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout())
	defer cancel()

	query := `SELECT` + planningRecordColumns + planningRecordJoins + `
		WHERE pr.record_date BETWEEN $1 AND $2
		  AND ($3::uuid IS NULL OR pr.specialty_id = $3)
		  AND ($4::uuid IS NULL OR pr.user_id = $4)
		ORDER BY pr.record_date, pr.shift DESC, u.full_name, pr.created_at
	`

	rows, err := r.dbpool.QueryContext(ctx, query, from, to, filter.SpecialtyID, filter.UserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*domain.PlanningRecord, 0)
	for rows.Next() {
		pr, err := scanPlanningRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, pr)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

func (r *Repository) GetPlanningRecordByID(ctx context.Context, id uuid.UUID) (*domain.PlanningRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout())
	defer cancel()

	query := `SELECT` + planningRecordColumns + planningRecordJoins + `WHERE pr.id = $1`

	return scanPlanningRecord(r.dbpool.QueryRowContext(ctx, query, id))
}

// CreatePlanningRecords inserta todos los registros en una única transacción.
func (r *Repository) CreatePlanningRecords(ctx context.Context, records []*domain.PlanningRecord) error {
	ctx, cancel := context.WithTimeout(ctx, r.transactionTimeout())
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO planning_records (user_id, specialty_id, activity_id, center_id, consultation_id, record_date, shift, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, pr := range records {
		args := []any{pr.UserID, pr.SpecialtyID, pr.ActivityID, pr.CenterID, pr.ConsultationID, pr.RecordDate, pr.Shift, pr.Notes}
		if err := stmt.QueryRowContext(ctx, args...).Scan(&pr.ID, &pr.CreatedAt, &pr.UpdatedAt); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *Repository) UpdatePlanningRecord(ctx context.Context, pr *domain.PlanningRecord) error {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout())
	defer cancel()

	query := `
		UPDATE planning_records
		SET activity_id = $1, consultation_id = $2, shift = $3, notes = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at
	`

	args := []any{pr.ActivityID, pr.ConsultationID, pr.Shift, pr.Notes, pr.ID}
	return r.dbpool.QueryRowContext(ctx, query, args...).Scan(&pr.UpdatedAt)
}

func (r *Repository) DeletePlanningRecord(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout())
	defer cancel()

	res, err := r.dbpool.ExecContext(ctx, `DELETE FROM planning_records WHERE id = $1`, id)
	if err != nil {
		return err
	}

	return checkAffected(res)
}
