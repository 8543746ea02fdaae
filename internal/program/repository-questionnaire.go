package program

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/okorolev/fitcoach/internal/contexthelpers"
)

// sqliteQuestionnaireRepository persists the per-user questionnaire singleton.
type sqliteQuestionnaireRepository struct {
	baseRepository
}

// Get retrieves the questionnaire for the authenticated user.
func (r *sqliteQuestionnaireRepository) Get(ctx context.Context) (Questionnaire, error) {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	var (
		q              Questionnaire
		completedAtStr string
	)
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT goal, level, age_range, equipment, body_type, limitations, completed_at
		FROM questionnaires
		WHERE user_id = ?`, userID).Scan(
		&q.Goal, &q.Level, &q.AgeRange, &q.Equipment, &q.BodyType, &q.Limitations, &completedAtStr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Questionnaire{}, ErrNotFound
	}
	if err != nil {
		return Questionnaire{}, fmt.Errorf("query questionnaire: %w", err)
	}

	if q.CompletedAt, err = time.Parse(timestampFormat, completedAtStr); err != nil {
		return Questionnaire{}, fmt.Errorf("parse completed_at: %w", err)
	}

	return q, nil
}

// Set upserts the questionnaire for the authenticated user. The table is
// keyed by user id so re-submissions overwrite the previous answers.
func (r *sqliteQuestionnaireRepository) Set(ctx context.Context, q Questionnaire) error {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	_, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO questionnaires (
			user_id, goal, level, age_range, equipment, body_type, limitations, completed_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			goal = excluded.goal,
			level = excluded.level,
			age_range = excluded.age_range,
			equipment = excluded.equipment,
			body_type = excluded.body_type,
			limitations = excluded.limitations,
			completed_at = excluded.completed_at`,
		userID, q.Goal, q.Level, q.AgeRange, q.Equipment, q.BodyType, q.Limitations,
		formatTimestamp(q.CompletedAt),
	)
	if err != nil {
		return fmt.Errorf("save questionnaire: %w", err)
	}
	return nil
}
