package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/thenoetrevino/boardsync/internal/database"
)

// NewTestDB creates an in-memory database with the full schema.
// The connection is closed when the test ends.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.InitDB(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

// NewTestRepository returns a sqlite-backed store over a fresh in-memory database
func NewTestRepository(t *testing.T) *database.Repository {
	t.Helper()
	return database.NewRepository(NewTestDB(t))
}
