package program

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// sqliteExerciseRepository reads the seeded exercise catalog.
type sqliteExerciseRepository struct {
	baseRepository
}

// MuscleGroupIDs resolves catalog muscle-group names to their ids. Unknown
// names are skipped rather than failing the lookup.
func (r *sqliteExerciseRepository) MuscleGroupIDs(ctx context.Context, names []string) (_ []int64, err error) {
	if len(names) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(names)), ", ")
	args := make([]any, 0, len(names))
	for _, name := range names {
		args = append(args, name)
	}

	rows, err := r.db.ReadOnly.QueryContext(ctx,
		`SELECT id FROM muscle_groups WHERE name IN (`+placeholders+`) ORDER BY id`, args...)
	if err != nil {
		return nil, fmt.Errorf("query muscle groups: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var ids []int64
	for rows.Next() {
		var id int64
		if err = rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan muscle group: %w", err)
		}
		ids = append(ids, id)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return ids, nil
}

// ByMuscleGroups returns all catalog exercises belonging to the given muscle
// groups.
func (r *sqliteExerciseRepository) ByMuscleGroups(ctx context.Context, muscleGroupIDs []int64) (_ []Exercise, err error) {
	if len(muscleGroupIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(muscleGroupIDs)), ", ")
	args := make([]any, 0, len(muscleGroupIDs))
	for _, id := range muscleGroupIDs {
		args = append(args, id)
	}

	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT e.id, e.name, e.anchor_key, e.muscle_group_id, mg.name, e.description_markdown
		FROM exercises e
		JOIN muscle_groups mg ON mg.id = e.muscle_group_id
		WHERE e.muscle_group_id IN (`+placeholders+`)
		ORDER BY e.id`, args...)
	if err != nil {
		return nil, fmt.Errorf("query exercises: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	return scanExercises(rows)
}

// Get returns one catalog exercise by id.
func (r *sqliteExerciseRepository) Get(ctx context.Context, id int64) (Exercise, error) {
	var (
		e      Exercise
		anchor sql.NullString
	)
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT e.id, e.name, e.anchor_key, e.muscle_group_id, mg.name, e.description_markdown
		FROM exercises e
		JOIN muscle_groups mg ON mg.id = e.muscle_group_id
		WHERE e.id = ?`, id).Scan(
		&e.ID, &e.Name, &anchor, &e.MuscleGroupID, &e.MuscleGroup, &e.DescriptionMarkdown,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Exercise{}, ErrNotFound
	}
	if err != nil {
		return Exercise{}, fmt.Errorf("query exercise: %w", err)
	}

	if anchor.Valid {
		key := AnchorKey(anchor.String)
		e.AnchorKey = &key
	}
	return e, nil
}

// List returns the whole catalog ordered by muscle group and name.
func (r *sqliteExerciseRepository) List(ctx context.Context) (_ []Exercise, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT e.id, e.name, e.anchor_key, e.muscle_group_id, mg.name, e.description_markdown
		FROM exercises e
		JOIN muscle_groups mg ON mg.id = e.muscle_group_id
		ORDER BY e.muscle_group_id, e.name`)
	if err != nil {
		return nil, fmt.Errorf("query exercises: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	return scanExercises(rows)
}

func scanExercises(rows *sql.Rows) ([]Exercise, error) {
	var exercises []Exercise
	for rows.Next() {
		var (
			e      Exercise
			anchor sql.NullString
		)
		err := rows.Scan(&e.ID, &e.Name, &anchor, &e.MuscleGroupID, &e.MuscleGroup, &e.DescriptionMarkdown)
		if err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}
		if anchor.Valid {
			key := AnchorKey(anchor.String)
			e.AnchorKey = &key
		}
		exercises = append(exercises, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return exercises, nil
}
