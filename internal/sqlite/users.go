package sqlite

import (
	"context"
	"fmt"
)

// EnsureUser makes sure a user row exists for the given id and returns the
// user's role. Identity comes from the upstream auth proxy, so first contact
// with an unknown id provisions the row with the default client role.
func (db *Database) EnsureUser(ctx context.Context, id int64, displayName string) (string, error) {
	_, err := db.ReadWrite.ExecContext(ctx, `
		INSERT INTO users (id, display_name) VALUES (?, ?)
		ON CONFLICT (id) DO NOTHING`, id, displayName)
	if err != nil {
		return "", fmt.Errorf("ensure user: %w", err)
	}

	var role string
	err = db.ReadOnly.QueryRowContext(ctx, `SELECT role FROM users WHERE id = ?`, id).Scan(&role)
	if err != nil {
		return "", fmt.Errorf("query user role: %w", err)
	}
	return role, nil
}
