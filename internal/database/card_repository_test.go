package database

import (
	"context"
	"errors"
	"testing"

	"github.com/thenoetrevino/boardsync/internal/models"
	"github.com/thenoetrevino/boardsync/internal/remote"
)

// twoColumns creates columns X and Y and returns their ids
func twoColumns(t *testing.T, repo *Repository) (string, string) {
	t.Helper()
	ctx := context.Background()
	x, err := repo.CreateColumn(ctx, remote.CreateColumnRequest{Title: "X", Order: 0})
	if err != nil {
		t.Fatalf("Failed to create column X: %v", err)
	}
	y, err := repo.CreateColumn(ctx, remote.CreateColumnRequest{Title: "Y", Order: 1})
	if err != nil {
		t.Fatalf("Failed to create column Y: %v", err)
	}
	return x.ID, y.ID
}

func TestCardCRUD(t *testing.T) {
	t.Parallel()
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()
	x, y := twoColumns(t, repo)

	card, err := repo.CreateCard(ctx, remote.CreateCardRequest{Title: "Write tests", ColumnID: x, Order: 0})
	if err != nil {
		t.Fatalf("Failed to create card: %v", err)
	}

	got, err := repo.GetCard(ctx, card.ID)
	if err != nil {
		t.Fatalf("Failed to get card: %v", err)
	}
	if got.Title != "Write tests" || got.ColumnID != x {
		t.Errorf("Unexpected card %+v", got)
	}

	moved, err := repo.UpdateCard(ctx, card.ID, remote.CardPatch{ColumnID: remote.ColumnID(y), Order: remote.Order(0)})
	if err != nil {
		t.Fatalf("Failed to move card: %v", err)
	}
	if moved.ColumnID != y || moved.Title != "Write tests" {
		t.Errorf("Expected card in Y with title intact, got %+v", moved)
	}

	inY, err := repo.ListCardsByColumn(ctx, y)
	if err != nil {
		t.Fatalf("Failed to list by column: %v", err)
	}
	if len(inY) != 1 {
		t.Fatalf("Expected 1 card in Y, got %d", len(inY))
	}

	if err := repo.DeleteCard(ctx, card.ID); err != nil {
		t.Fatalf("Failed to delete card: %v", err)
	}
	if _, err := repo.GetCard(ctx, card.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
	if err := repo.DeleteCard(ctx, card.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second delete, got %v", err)
	}
}

func TestCreateCard_MissingColumn(t *testing.T) {
	t.Parallel()
	repo := NewRepository(setupTestDB(t))

	_, err := repo.CreateCard(context.Background(), remote.CreateCardRequest{Title: "orphan", ColumnID: "gone"})
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for missing column, got %v", err)
	}
}

func TestUpdateCard_MoveToMissingColumn(t *testing.T) {
	t.Parallel()
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()
	x, _ := twoColumns(t, repo)

	card, err := repo.CreateCard(ctx, remote.CreateCardRequest{Title: "a", ColumnID: x})
	if err != nil {
		t.Fatalf("Failed to create card: %v", err)
	}

	_, err = repo.UpdateCard(ctx, card.ID, remote.CardPatch{ColumnID: remote.ColumnID("gone")})
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	got, _ := repo.GetCard(ctx, card.ID)
	if got.ColumnID != x {
		t.Errorf("Card should stay in its column after a failed move, got %s", got.ColumnID)
	}
}

func TestListCards_OrderedByPosition(t *testing.T) {
	t.Parallel()
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()
	x, _ := twoColumns(t, repo)

	for _, tc := range []struct {
		title string
		order int
	}{{"third", 2}, {"first", 0}, {"second", 1}} {
		if _, err := repo.CreateCard(ctx, remote.CreateCardRequest{Title: tc.title, ColumnID: x, Order: tc.order}); err != nil {
			t.Fatalf("Failed to create card: %v", err)
		}
	}

	cards, err := repo.ListCardsByColumn(ctx, x)
	if err != nil {
		t.Fatalf("Failed to list cards: %v", err)
	}
	for i, want := range []string{"first", "second", "third"} {
		if cards[i].Title != want {
			t.Errorf("Position %d: expected %s, got %s", i, want, cards[i].Title)
		}
	}
}
