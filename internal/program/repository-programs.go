package program

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/okorolev/fitcoach/internal/contexthelpers"
)

// sqliteProgramRepository persists program records.
type sqliteProgramRepository struct {
	baseRepository
}

// Create inserts a new active program and returns its id.
func (r *sqliteProgramRepository) Create(ctx context.Context, p Program) (int64, error) {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	createdBy := p.CreatedBy
	if createdBy == 0 {
		createdBy = userID
	}

	result, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO programs (user_id, created_by, name, description, start_date, end_date, split, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		userID, createdBy, p.Name, p.Description,
		formatDate(p.StartDate), formatDate(p.EndDate),
		string(p.Split), string(StatusActive), formatTimestamp(time.Now()))
	if err != nil {
		return 0, fmt.Errorf("insert program: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert ID: %w", err)
	}
	return id, nil
}

// MostRecent returns the most recently created program of the authenticated
// user, regardless of status.
func (r *sqliteProgramRepository) MostRecent(ctx context.Context) (Program, error) {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	row := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT id, user_id, created_by, name, description, start_date, end_date, split, status, created_at
		FROM programs
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT 1`, userID)

	return r.scanProgram(row)
}

// Get returns a program by id when it belongs to the authenticated user.
func (r *sqliteProgramRepository) Get(ctx context.Context, id int64) (Program, error) {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	row := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT id, user_id, created_by, name, description, start_date, end_date, split, status, created_at
		FROM programs
		WHERE id = ? AND user_id = ?`, id, userID)

	return r.scanProgram(row)
}

// Retire soft-closes a program: its end date moves to the given date and its
// status flips to retired. History is preserved, never deleted.
func (r *sqliteProgramRepository) Retire(ctx context.Context, id int64, endDate time.Time) error {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	result, err := r.db.ReadWrite.ExecContext(ctx, `
		UPDATE programs
		SET end_date = ?, status = ?
		WHERE id = ? AND user_id = ?`,
		formatDate(endDate), string(StatusRetired), id, userID)
	if err != nil {
		return fmt.Errorf("retire program: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *sqliteProgramRepository) scanProgram(row *sql.Row) (Program, error) {
	var (
		p            Program
		split        string
		status       string
		createdBy    sql.NullInt64
		startDateStr string
		endDateStr   string
		createdAtStr string
	)
	err := row.Scan(&p.ID, &p.UserID, &createdBy, &p.Name, &p.Description,
		&startDateStr, &endDateStr, &split, &status, &createdAtStr)
	if errors.Is(err, sql.ErrNoRows) {
		return Program{}, ErrNotFound
	}
	if err != nil {
		return Program{}, fmt.Errorf("scan program: %w", err)
	}

	p.Split = Split(split)
	p.Status = Status(status)
	p.CreatedBy = createdBy.Int64

	if p.StartDate, err = time.Parse(dateFormat, startDateStr); err != nil {
		return Program{}, fmt.Errorf("parse start_date: %w", err)
	}
	if p.EndDate, err = time.Parse(dateFormat, endDateStr); err != nil {
		return Program{}, fmt.Errorf("parse end_date: %w", err)
	}
	if p.CreatedAt, err = time.Parse(timestampFormat, createdAtStr); err != nil {
		return Program{}, fmt.Errorf("parse created_at: %w", err)
	}

	return p, nil
}
