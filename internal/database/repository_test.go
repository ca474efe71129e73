package database

import (
	"context"
	"testing"
)

func TestRepository_Health(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewRepository(db)

	if err := repo.Health(context.Background()); err != nil {
		t.Fatalf("Expected healthy database, got %v", err)
	}

	_ = db.Close()
	if err := repo.Health(context.Background()); err == nil {
		t.Error("Expected health check to fail on a closed database")
	}
}

func TestSeedDefaultColumns(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()

	seeded, err := SeedDefaultColumns(ctx, db)
	if err != nil {
		t.Fatalf("Failed to seed: %v", err)
	}
	if !seeded {
		t.Fatal("Expected columns to be seeded on an empty board")
	}

	seeded, err = SeedDefaultColumns(ctx, db)
	if err != nil {
		t.Fatalf("Failed to seed twice: %v", err)
	}
	if seeded {
		t.Error("Seeding a non-empty board should be a no-op")
	}

	columns, err := NewRepository(db).ListColumns(ctx)
	if err != nil {
		t.Fatalf("Failed to list columns: %v", err)
	}
	if len(columns) != len(DefaultColumns) {
		t.Fatalf("Expected %d columns, got %d", len(DefaultColumns), len(columns))
	}
	for i, col := range columns {
		if col.Order != i || col.Title != DefaultColumns[i] {
			t.Errorf("Column %d: expected %s(%d), got %s(%d)", i, DefaultColumns[i], i, col.Title, col.Order)
		}
	}
}

func TestSeedSampleCards(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()

	if _, err := SeedDefaultColumns(ctx, db); err != nil {
		t.Fatalf("Failed to seed columns: %v", err)
	}

	added, err := SeedSampleCards(ctx, db)
	if err != nil {
		t.Fatalf("Failed to seed cards: %v", err)
	}
	if added != 4 {
		t.Errorf("Expected 4 sample cards, got %d", added)
	}

	added, err = SeedSampleCards(ctx, db)
	if err != nil {
		t.Fatalf("Failed to seed cards twice: %v", err)
	}
	if added != 0 {
		t.Errorf("Expected no cards on second seed, got %d", added)
	}
}
