package board

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/boardsync/internal/models"
	"github.com/thenoetrevino/boardsync/internal/reorder"
)

func seededStore() *Store {
	s := NewStore()
	s.ReplaceAll(
		[]models.Column{
			{ID: "Y", Title: "Doing", Order: 1},
			{ID: "X", Title: "Todo", Order: 0},
		},
		[]models.Card{
			{ID: "B", Title: "b", ColumnID: "X", Order: 1},
			{ID: "A", Title: "a", ColumnID: "X", Order: 0},
			{ID: "C", Title: "c", ColumnID: "Y", Order: 0},
		},
	)
	return s
}

// ============================================================================
// LIFECYCLE
// ============================================================================

func TestStore_Lifecycle(t *testing.T) {
	s := NewStore()
	assert.False(t, s.Loaded())
	assert.Empty(t, s.Columns())

	s.ReplaceAll([]models.Column{{ID: "X"}}, nil)
	assert.True(t, s.Loaded())
	assert.Equal(t, 1, s.CountColumns())

	s.Teardown()
	assert.False(t, s.Loaded())
	assert.Empty(t, s.Snapshot().Columns)
}

func TestStore_ReplaceAllCopiesInput(t *testing.T) {
	cols := []models.Column{{ID: "X", Title: "Todo"}}
	s := NewStore()
	s.ReplaceAll(cols, nil)

	cols[0].Title = "mutated"
	got, ok := s.Column("X")
	require.True(t, ok)
	assert.Equal(t, "Todo", got.Title)
}

// ============================================================================
// READ ACCESSORS
// ============================================================================

func TestStore_ReadsAreSorted(t *testing.T) {
	s := seededStore()

	cols := s.Columns()
	require.Len(t, cols, 2)
	assert.Equal(t, "X", cols[0].ID)

	grouped := s.CardsByColumn()
	require.Len(t, grouped["X"], 2)
	assert.Equal(t, "A", grouped["X"][0].ID)
	assert.Equal(t, "B", grouped["X"][1].ID)
	assert.Len(t, grouped["Y"], 1)

	assert.Equal(t, 2, s.CountCards("X"))
	assert.Equal(t, 0, s.CountCards("nope"))
}

// ============================================================================
// REASSIGNMENT
// ============================================================================

func TestStore_ApplyReassignmentReturnsOnlyChanges(t *testing.T) {
	s := seededStore()
	hover := models.CardRef("B")
	r := reorder.Compute(models.CardRef("A"), &hover, s.Snapshot())

	changes := s.ApplyReassignment(r)

	assert.Len(t, changes, 2)
	assert.Equal(t, []string{"B", "A"}, ids(s.Cards("X")))
	require.NoError(t, s.Snapshot().Validate())

	// re-applying the same reassignment changes nothing
	assert.Empty(t, s.ApplyReassignment(r))
}

func TestStore_ApplyReassignmentCrossColumn(t *testing.T) {
	s := seededStore()
	hover := models.ColumnRef("Y")
	changes := s.ApplyReassignment(reorder.Compute(models.CardRef("A"), &hover, s.Snapshot()))

	// A moves to Y, B shifts up in X, C is untouched
	require.Len(t, changes, 2)
	moved, _ := s.Card("A")
	assert.Equal(t, "Y", moved.ColumnID)
	assert.Equal(t, 1, moved.Order)
	assert.Equal(t, []string{"C", "A"}, ids(s.Cards("Y")))
	require.NoError(t, s.Snapshot().Validate())
}

func TestStore_ApplyReassignmentSkipsUnknownIDs(t *testing.T) {
	s := seededStore()
	changes := s.ApplyReassignment(models.Reassignment{
		Columns: []models.ColumnPlacement{{ID: "ghost", Order: 4}},
		Cards:   []models.CardPlacement{{ID: "ghost", ColumnID: "X", Order: 9}},
	})
	assert.Empty(t, changes)
}

// ============================================================================
// SINGLE ENTITY MUTATIONS
// ============================================================================

func TestStore_TitleRevertIsConditional(t *testing.T) {
	s := seededStore()

	prev, ok := s.SetColumnTitle("X", "Backlog")
	require.True(t, ok)
	assert.Equal(t, "Todo", prev)

	// a newer rename landed in between, the stale revert must not apply
	_, _ = s.SetColumnTitle("X", "Icebox")
	assert.False(t, s.RevertColumnTitle("X", "Backlog", prev))
	col, _ := s.Column("X")
	assert.Equal(t, "Icebox", col.Title)

	assert.True(t, s.RevertColumnTitle("X", "Icebox", prev))
	col, _ = s.Column("X")
	assert.Equal(t, "Todo", col.Title)

	_, ok = s.SetCardTitle("ghost", "x")
	assert.False(t, ok)
}

func TestStore_RemoveAndRestoreCard(t *testing.T) {
	s := seededStore()

	card, ok := s.RemoveCard("A")
	require.True(t, ok)
	assert.Equal(t, 1, s.CountCards("X"))

	s.RestoreCard(card)
	s.RestoreCard(card)
	assert.Equal(t, 2, s.CountCards("X"))
	require.NoError(t, s.Snapshot().Validate())
}

func TestStore_RemoveColumnTakesItsCards(t *testing.T) {
	s := seededStore()

	col, cards, ok := s.RemoveColumn("X")
	require.True(t, ok)
	assert.Equal(t, "X", col.ID)
	assert.Equal(t, []string{"B", "A"}, ids(cards))
	assert.Empty(t, s.Cards("X"))
	assert.Equal(t, 1, s.CountColumns())

	_, _, ok = s.RemoveColumn("X")
	assert.False(t, ok)
}

// ============================================================================
// CONCURRENCY
// ============================================================================

// TestStore_ReadersNeverSeePartialRenumbering hammers the store with
// reassignments while readers validate every snapshot.
func TestStore_ReadersNeverSeePartialRenumbering(t *testing.T) {
	s := seededStore()
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := range 200 {
			hover := models.CardRef("B")
			if i%2 == 1 {
				hover = models.CardRef("A")
			}
			dragged := models.CardRef("A")
			if i%2 == 1 {
				dragged = models.CardRef("B")
			}
			s.ApplyReassignment(reorder.Compute(dragged, &hover, s.Snapshot()))
		}
	}()

	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 200 {
				if err := s.Snapshot().Validate(); err != nil {
					t.Errorf("reader observed invalid board: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func ids(cards []models.Card) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.ID)
	}
	return out
}
