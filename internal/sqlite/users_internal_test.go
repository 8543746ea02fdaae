package sqlite

import (
	"testing"

	"github.com/okorolev/fitcoach/internal/testhelpers"
)

func Test_EnsureUser(t *testing.T) {
	ctx := t.Context()
	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))

	db, err := NewDatabase(ctx, ":memory:", logger)
	if err != nil {
		t.Fatalf("create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	role, err := db.EnsureUser(ctx, 1, "Олег")
	if err != nil {
		t.Fatalf("ensure new user: %v", err)
	}
	if role != "client" {
		t.Errorf("new user role %q, want the client default", role)
	}

	// Promote the user and check that re-ensuring does not reset the row.
	if _, err = db.ReadWrite.ExecContext(ctx, "UPDATE users SET role = 'trainer' WHERE id = 1"); err != nil {
		t.Fatalf("promote user: %v", err)
	}

	role, err = db.EnsureUser(ctx, 1, "Олег")
	if err != nil {
		t.Fatalf("ensure existing user: %v", err)
	}
	if role != "trainer" {
		t.Errorf("existing user role %q, want trainer preserved", role)
	}
}
