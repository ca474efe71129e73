package drag

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thenoetrevino/boardsync/internal/models"
)

func testBoard() models.Board {
	return models.Board{
		Columns: []models.Column{{ID: "X", Order: 0}, {ID: "Y", Order: 1}},
		Cards: []models.Card{
			{ID: "A", ColumnID: "X", Order: 0},
			{ID: "C", ColumnID: "Y", Order: 0},
		},
	}
}

func refPtr(r models.Ref) *models.Ref {
	return &r
}

// ============================================================================
// START
// ============================================================================

func TestReduce_StartIdentifiesKind(t *testing.T) {
	b := testBoard()

	s, eff := Reduce(Session{}, Start{ID: "X"}, b)
	assert.Equal(t, DraggingColumn, s.State())
	assert.Equal(t, models.ColumnRef("X"), s.Active())
	assert.Equal(t, EffectNone, eff.Kind)

	s, _ = Reduce(Session{}, Start{ID: "A"}, b)
	assert.Equal(t, DraggingCard, s.State())
	assert.Equal(t, models.CardRef("A"), s.Active())
}

func TestReduce_StartUnknownStaysIdle(t *testing.T) {
	s, _ := Reduce(Session{}, Start{ID: "nope"}, testBoard())
	assert.Equal(t, Idle, s.State())
	assert.False(t, s.Dragging())
}

func TestReduce_SecondStartIsIgnored(t *testing.T) {
	b := testBoard()
	s, _ := Reduce(Session{}, Start{ID: "A"}, b)
	s, _ = Reduce(s, Start{ID: "X"}, b)
	assert.Equal(t, models.CardRef("A"), s.Active())
}

// ============================================================================
// HOVER
// ============================================================================

func TestReduce_OverTracksHoverWithoutChangingState(t *testing.T) {
	b := testBoard()
	s, _ := Reduce(Session{}, Start{ID: "X"}, b)

	s, eff := Reduce(s, Over{Target: refPtr(models.ColumnRef("Y"))}, b)
	assert.Equal(t, DraggingColumn, s.State())
	hover, ok := s.Hover()
	assert.True(t, ok)
	assert.Equal(t, models.ColumnRef("Y"), hover)
	assert.Equal(t, EffectNone, eff.Kind, "columns have no live preview")

	s, _ = Reduce(s, Over{}, b)
	_, ok = s.Hover()
	assert.False(t, ok)
}

func TestReduce_OverPreviewsCardColumn(t *testing.T) {
	b := testBoard()
	s, _ := Reduce(Session{}, Start{ID: "A"}, b)

	s, eff := Reduce(s, Over{Target: refPtr(models.CardRef("C"))}, b)
	assert.Equal(t, EffectPreview, eff.Kind)
	col, ok := s.PreviewColumn()
	assert.True(t, ok)
	assert.Equal(t, "Y", col)

	// hovering the same column again is not a new preview
	_, eff = Reduce(s, Over{Target: refPtr(models.ColumnRef("Y"))}, b)
	assert.Equal(t, EffectNone, eff.Kind)

	// back over the home column clears the preview
	s, eff = Reduce(s, Over{Target: refPtr(models.ColumnRef("X"))}, b)
	assert.Equal(t, EffectPreview, eff.Kind)
	_, ok = s.PreviewColumn()
	assert.False(t, ok)
}

func TestReduce_OverWhileIdleIsIgnored(t *testing.T) {
	s, eff := Reduce(Session{}, Over{Target: refPtr(models.CardRef("A"))}, testBoard())
	_, ok := s.Hover()
	assert.False(t, ok)
	assert.Equal(t, EffectNone, eff.Kind)
}

// ============================================================================
// END OF GESTURE
// ============================================================================

func TestReduce_DropCommitsAndReturnsToIdle(t *testing.T) {
	b := testBoard()
	s, _ := Reduce(Session{}, Start{ID: "A"}, b)
	s, _ = Reduce(s, Over{Target: refPtr(models.ColumnRef("Y"))}, b)

	s, eff := Reduce(s, Drop{}, b)
	assert.Equal(t, Idle, s.State())
	assert.Equal(t, EffectCommit, eff.Kind)
	assert.Equal(t, models.CardRef("A"), eff.Dragged)
	if assert.NotNil(t, eff.Hover) {
		assert.Equal(t, models.ColumnRef("Y"), *eff.Hover)
	}
	_, ok := s.PreviewColumn()
	assert.False(t, ok)
}

func TestReduce_DropWithoutHoverCommitsNilHover(t *testing.T) {
	b := testBoard()
	s, _ := Reduce(Session{}, Start{ID: "A"}, b)

	_, eff := Reduce(s, Drop{}, b)
	assert.Equal(t, EffectCommit, eff.Kind)
	assert.Nil(t, eff.Hover)
}

func TestReduce_CancelNeverCommits(t *testing.T) {
	b := testBoard()
	s, _ := Reduce(Session{}, Start{ID: "A"}, b)
	s, _ = Reduce(s, Over{Target: refPtr(models.CardRef("C"))}, b)

	s, eff := Reduce(s, Cancel{}, b)
	assert.Equal(t, Idle, s.State())
	assert.Equal(t, EffectNone, eff.Kind)
	_, ok := s.Hover()
	assert.False(t, ok)
}

func TestReduce_DropWhileIdle(t *testing.T) {
	s, eff := Reduce(Session{}, Drop{}, testBoard())
	assert.Equal(t, Idle, s.State())
	assert.Equal(t, EffectNone, eff.Kind)
}
