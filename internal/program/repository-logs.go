package program

import (
	"context"
	"fmt"
	"time"

	"github.com/okorolev/fitcoach/internal/contexthelpers"
)

// sqliteLogRepository appends to the training diary. Rows are never updated
// or deleted.
type sqliteLogRepository struct {
	baseRepository
}

// Append writes one diary entry for the authenticated user.
func (r *sqliteLogRepository) Append(ctx context.Context, entry LogEntry) error {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	_, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO workout_logs (user_id, session_id, exercise_id, set_number, reps, weight_kg, notes, logged_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		userID, entry.SessionID, entry.ExerciseID, entry.SetNumber,
		entry.Reps, entry.WeightKg, entry.Notes, formatTimestamp(time.Now()))
	if err != nil {
		return fmt.Errorf("insert workout log: %w", err)
	}
	return nil
}
