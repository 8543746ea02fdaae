package program

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/okorolev/fitcoach/internal/contexthelpers"
)

// sqliteTestMaxRepository persists the rolling five-rep maxes.
type sqliteTestMaxRepository struct {
	baseRepository
}

// Map bulk-loads all test maxes of the authenticated user. The generator
// reads the whole map once instead of querying per exercise.
func (r *sqliteTestMaxRepository) Map(ctx context.Context) (_ map[AnchorKey]float64, err error) {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT anchor_key, weight_kg
		FROM test_maxes
		WHERE user_id = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("query test maxes: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	maxes := make(map[AnchorKey]float64)
	for rows.Next() {
		var (
			anchor   string
			weightKg float64
		)
		if err = rows.Scan(&anchor, &weightKg); err != nil {
			return nil, fmt.Errorf("scan test max: %w", err)
		}
		maxes[AnchorKey(anchor)] = weightKg
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return maxes, nil
}

// UpsertHighest records a new five-rep max only when it exceeds the stored
// value. The conditional upsert runs as one atomic statement, so concurrent
// writers for the same anchor resolve to the highest value regardless of
// write order.
func (r *sqliteTestMaxRepository) UpsertHighest(
	ctx context.Context,
	anchor AnchorKey,
	weightKg float64,
	measuredAt time.Time,
) error {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	_, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO test_maxes (user_id, anchor_key, weight_kg, measured_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id, anchor_key) DO UPDATE SET
			weight_kg = excluded.weight_kg,
			measured_at = excluded.measured_at
		WHERE excluded.weight_kg > test_maxes.weight_kg`,
		userID, string(anchor), weightKg, formatTimestamp(measuredAt))
	if err != nil {
		return fmt.Errorf("upsert test max %s: %w", anchor, err)
	}
	return nil
}
