package database

import (
	"context"
	"errors"
	"testing"

	"github.com/thenoetrevino/boardsync/internal/models"
	"github.com/thenoetrevino/boardsync/internal/remote"
)

func TestCreateAndListColumns(t *testing.T) {
	t.Parallel()
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()

	for i, title := range []string{"Todo", "In Progress", "Done"} {
		if _, err := repo.CreateColumn(ctx, remote.CreateColumnRequest{Title: title, Order: i}); err != nil {
			t.Fatalf("Failed to create column %q: %v", title, err)
		}
	}

	columns, err := repo.ListColumns(ctx)
	if err != nil {
		t.Fatalf("Failed to list columns: %v", err)
	}
	if len(columns) != 3 {
		t.Fatalf("Expected 3 columns, got %d", len(columns))
	}
	for i, want := range []string{"Todo", "In Progress", "Done"} {
		if columns[i].Title != want || columns[i].Order != i {
			t.Errorf("Column %d: expected %s(%d), got %s(%d)", i, want, i, columns[i].Title, columns[i].Order)
		}
	}
}

func TestCreateColumn_Validation(t *testing.T) {
	t.Parallel()
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()

	if _, err := repo.CreateColumn(ctx, remote.CreateColumnRequest{Title: "   "}); !errors.Is(err, models.ErrEmptyTitle) {
		t.Errorf("Expected ErrEmptyTitle, got %v", err)
	}
	if _, err := repo.CreateColumn(ctx, remote.CreateColumnRequest{Title: "x", Order: -1}); !errors.Is(err, models.ErrValidation) {
		t.Errorf("Expected ErrValidation for negative order, got %v", err)
	}

	col, err := repo.CreateColumn(ctx, remote.CreateColumnRequest{Title: "  Review  "})
	if err != nil {
		t.Fatalf("Failed to create column: %v", err)
	}
	if col.Title != "Review" {
		t.Errorf("Expected trimmed title, got %q", col.Title)
	}
	if col.ID == "" {
		t.Error("Expected store-assigned id")
	}
}

func TestUpdateColumn_PartialFields(t *testing.T) {
	t.Parallel()
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()

	col, err := repo.CreateColumn(ctx, remote.CreateColumnRequest{Title: "Todo", Order: 0})
	if err != nil {
		t.Fatalf("Failed to create column: %v", err)
	}

	updated, err := repo.UpdateColumn(ctx, col.ID, remote.ColumnPatch{Order: remote.Order(4)})
	if err != nil {
		t.Fatalf("Failed to update order: %v", err)
	}
	if updated.Order != 4 || updated.Title != "Todo" {
		t.Errorf("Expected Todo(4), got %s(%d)", updated.Title, updated.Order)
	}

	updated, err = repo.UpdateColumn(ctx, col.ID, remote.ColumnPatch{Title: remote.Title("Backlog")})
	if err != nil {
		t.Fatalf("Failed to update title: %v", err)
	}
	if updated.Order != 4 || updated.Title != "Backlog" {
		t.Errorf("Expected Backlog(4), got %s(%d)", updated.Title, updated.Order)
	}
}

func TestColumn_NotFound(t *testing.T) {
	t.Parallel()
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()

	if _, err := repo.GetColumn(ctx, "missing"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("GetColumn: expected ErrNotFound, got %v", err)
	}
	if _, err := repo.UpdateColumn(ctx, "missing", remote.ColumnPatch{Order: remote.Order(1)}); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("UpdateColumn: expected ErrNotFound, got %v", err)
	}
	if err := repo.DeleteColumn(ctx, "missing"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("DeleteColumn: expected ErrNotFound, got %v", err)
	}
}

func TestDeleteColumn_CascadesToCards(t *testing.T) {
	t.Parallel()
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()

	col, err := repo.CreateColumn(ctx, remote.CreateColumnRequest{Title: "Todo"})
	if err != nil {
		t.Fatalf("Failed to create column: %v", err)
	}
	if _, err := repo.CreateCard(ctx, remote.CreateCardRequest{Title: "a", ColumnID: col.ID}); err != nil {
		t.Fatalf("Failed to create card: %v", err)
	}

	if err := repo.DeleteColumn(ctx, col.ID); err != nil {
		t.Fatalf("Failed to delete column: %v", err)
	}

	cards, err := repo.ListCards(ctx)
	if err != nil {
		t.Fatalf("Failed to list cards: %v", err)
	}
	if len(cards) != 0 {
		t.Errorf("Expected cascade to remove cards, got %d", len(cards))
	}
}
