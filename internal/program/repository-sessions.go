package program

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/okorolev/fitcoach/internal/contexthelpers"
)

// sqliteSessionRepository persists workout sessions with their exercises and
// prescribed sets.
type sqliteSessionRepository struct {
	baseRepository
	exerciseRepo *sqliteExerciseRepository
}

// CreatePlanned writes one planned session with all its exercises and sets in
// a single transaction. Either the whole session lands or none of it does.
func (r *sqliteSessionRepository) CreatePlanned(
	ctx context.Context,
	programID int64,
	planned plannedSession,
) (_ int64, err error) {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	tx, err := r.db.ReadWrite.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer r.rollback(tx, &err)

	result, err := tx.ExecContext(ctx, `
		INSERT INTO workout_sessions (program_id, user_id, scheduled_date, name, day_type, completed)
		VALUES (?, ?, ?, ?, ?, 0)`,
		programID, userID, formatDate(planned.Date),
		string(planned.DayType), string(planned.DayType))
	if err != nil {
		return 0, fmt.Errorf("insert session: %w", err)
	}

	sessionID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert ID: %w", err)
	}

	for order, pe := range planned.Exercises {
		exerciseResult, err := tx.ExecContext(ctx, `
			INSERT INTO session_exercises (session_id, exercise_id, order_number)
			VALUES (?, ?, ?)`,
			sessionID, pe.Exercise.ID, order+1)
		if err != nil {
			return 0, fmt.Errorf("insert session exercise %d: %w", pe.Exercise.ID, err)
		}

		sessionExerciseID, err := exerciseResult.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("get last insert ID: %w", err)
		}

		for _, set := range pe.Sets {
			_, err = tx.ExecContext(ctx, `
				INSERT INTO exercise_sets (session_exercise_id, set_number, target_reps, weight_kg, percent_of_max)
				VALUES (?, ?, ?, ?, ?)`,
				sessionExerciseID, set.SetNumber, set.TargetReps, set.WeightKg, set.PercentOfMax)
			if err != nil {
				return 0, fmt.Errorf("insert exercise set %d: %w", set.SetNumber, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}
	return sessionID, nil
}

// Get loads a session by id, including its exercises and sets. Sessions of
// other users are invisible.
func (r *sqliteSessionRepository) Get(ctx context.Context, id int64) (Session, error) {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	var (
		s       Session
		dateStr string
		dayType string
	)
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT id, program_id, scheduled_date, name, day_type, completed
		FROM workout_sessions
		WHERE id = ? AND user_id = ?`, id, userID).Scan(
		&s.ID, &s.ProgramID, &dateStr, &s.Name, &dayType, &s.Completed,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, ErrNotFound
	}
	if err != nil {
		return Session{}, fmt.Errorf("query session: %w", err)
	}

	s.DayType = DayType(dayType)
	if s.Date, err = time.Parse(dateFormat, dateStr); err != nil {
		return Session{}, fmt.Errorf("parse scheduled_date: %w", err)
	}

	if s.Exercises, err = r.sessionExercises(ctx, s.ID); err != nil {
		return Session{}, err
	}

	return s, nil
}

// ListByProgram returns the program's sessions in schedule order, without the
// nested exercises. Callers needing the full prescription use Get.
func (r *sqliteSessionRepository) ListByProgram(ctx context.Context, programID int64) (_ []Session, err error) {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT id, program_id, scheduled_date, name, day_type, completed
		FROM workout_sessions
		WHERE program_id = ? AND user_id = ?
		ORDER BY scheduled_date, id`, programID, userID)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var sessions []Session
	for rows.Next() {
		var (
			s       Session
			dateStr string
			dayType string
		)
		if err = rows.Scan(&s.ID, &s.ProgramID, &dateStr, &s.Name, &dayType, &s.Completed); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		s.DayType = DayType(dayType)
		if s.Date, err = time.Parse(dateFormat, dateStr); err != nil {
			return nil, fmt.Errorf("parse scheduled_date: %w", err)
		}
		sessions = append(sessions, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return sessions, nil
}

// SetCompleted marks a session complete or reopens it.
func (r *sqliteSessionRepository) SetCompleted(ctx context.Context, id int64, completed bool) error {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	result, err := r.db.ReadWrite.ExecContext(ctx, `
		UPDATE workout_sessions
		SET completed = ?
		WHERE id = ? AND user_id = ?`, completed, id, userID)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
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

// ExerciseAnchor resolves the anchor key of an exercise within a session of
// the authenticated user. Used by set logging to decide whether a completed
// heavy set feeds the test-max store.
func (r *sqliteSessionRepository) ExerciseAnchor(
	ctx context.Context,
	sessionID, exerciseID int64,
) (*AnchorKey, error) {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	var anchor sql.NullString
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT e.anchor_key
		FROM session_exercises se
		JOIN workout_sessions ws ON ws.id = se.session_id
		JOIN exercises e ON e.id = se.exercise_id
		WHERE se.session_id = ? AND se.exercise_id = ? AND ws.user_id = ?`,
		sessionID, exerciseID, userID).Scan(&anchor)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query exercise anchor: %w", err)
	}

	if !anchor.Valid {
		return nil, nil
	}
	key := AnchorKey(anchor.String)
	return &key, nil
}

func (r *sqliteSessionRepository) sessionExercises(ctx context.Context, sessionID int64) (_ []SessionExercise, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT se.id, se.order_number,
			e.id, e.name, e.anchor_key, e.muscle_group_id, mg.name, e.description_markdown
		FROM session_exercises se
		JOIN exercises e ON e.id = se.exercise_id
		JOIN muscle_groups mg ON mg.id = e.muscle_group_id
		WHERE se.session_id = ?
		ORDER BY se.order_number`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query session exercises: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var exercises []SessionExercise
	for rows.Next() {
		var (
			se     SessionExercise
			anchor sql.NullString
		)
		err = rows.Scan(&se.ID, &se.OrderNumber,
			&se.Exercise.ID, &se.Exercise.Name, &anchor,
			&se.Exercise.MuscleGroupID, &se.Exercise.MuscleGroup,
			&se.Exercise.DescriptionMarkdown)
		if err != nil {
			return nil, fmt.Errorf("scan session exercise: %w", err)
		}
		if anchor.Valid {
			key := AnchorKey(anchor.String)
			se.Exercise.AnchorKey = &key
		}
		exercises = append(exercises, se)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	for i := range exercises {
		if exercises[i].Sets, err = r.exerciseSets(ctx, exercises[i].ID); err != nil {
			return nil, err
		}
	}

	return exercises, nil
}

func (r *sqliteSessionRepository) exerciseSets(ctx context.Context, sessionExerciseID int64) (_ []TargetSet, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT set_number, target_reps, weight_kg, percent_of_max
		FROM exercise_sets
		WHERE session_exercise_id = ?
		ORDER BY set_number`, sessionExerciseID)
	if err != nil {
		return nil, fmt.Errorf("query exercise sets: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var sets []TargetSet
	for rows.Next() {
		var set TargetSet
		if err = rows.Scan(&set.SetNumber, &set.TargetReps, &set.WeightKg, &set.PercentOfMax); err != nil {
			return nil, fmt.Errorf("scan exercise set: %w", err)
		}
		sets = append(sets, set)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return sets, nil
}
