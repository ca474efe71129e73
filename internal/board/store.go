// Package board holds the in-memory copy of the board that the UI renders
// between syncs.
package board

import (
	"slices"
	"sync"

	"github.com/thenoetrevino/boardsync/internal/models"
)

// Store is the ordered entity store. Slices keep fetch order, which is the
// tiebreak when two entities share an order value.
type Store struct {
	mu      sync.RWMutex
	columns []models.Column
	cards   []models.Card
	loaded  bool
}

// NewStore returns an empty store
func NewStore() *Store {
	return &Store{}
}

// ReplaceAll swaps in a freshly fetched board
func (s *Store) ReplaceAll(columns []models.Column, cards []models.Card) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.columns = slices.Clone(columns)
	s.cards = slices.Clone(cards)
	s.loaded = true
}

// Teardown discards all state, e.g. when the board is closed
func (s *Store) Teardown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.columns = nil
	s.cards = nil
	s.loaded = false
}

// Loaded reports whether a fetch has populated the store
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// ApplyReassignment applies a reorder result in one step and returns the
// entities whose order or column actually changed. Placements for unknown
// ids are skipped.
func (s *Store) ApplyReassignment(r models.Reassignment) []models.Change {
	s.mu.Lock()
	defer s.mu.Unlock()

	var changes []models.Change
	for _, p := range r.Columns {
		i := slices.IndexFunc(s.columns, func(c models.Column) bool { return c.ID == p.ID })
		if i < 0 || s.columns[i].Order == p.Order {
			continue
		}
		s.columns[i].Order = p.Order
		changes = append(changes, models.Change{Ref: models.ColumnRef(p.ID), Order: p.Order})
	}
	for _, p := range r.Cards {
		i := slices.IndexFunc(s.cards, func(c models.Card) bool { return c.ID == p.ID })
		if i < 0 {
			continue
		}
		card := &s.cards[i]
		if card.Order == p.Order && card.ColumnID == p.ColumnID {
			continue
		}
		card.Order = p.Order
		card.ColumnID = p.ColumnID
		changes = append(changes, models.Change{Ref: models.CardRef(p.ID), Order: p.Order, ColumnID: p.ColumnID})
	}
	return changes
}

// Snapshot returns a copy of the whole board
func (s *Store) Snapshot() models.Board {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.Board{
		Columns: slices.Clone(s.columns),
		Cards:   slices.Clone(s.cards),
	}
}

// Columns returns the columns sorted by order
func (s *Store) Columns() []models.Column {
	return s.Snapshot().SortedColumns()
}

// Cards returns the cards of one column sorted by order
func (s *Store) Cards(columnID string) []models.Card {
	return s.Snapshot().CardsIn(columnID)
}

// CardsByColumn groups every card by column, each group sorted by order
func (s *Store) CardsByColumn() map[string][]models.Card {
	b := s.Snapshot()
	grouped := make(map[string][]models.Card, len(b.Columns))
	for _, col := range b.Columns {
		grouped[col.ID] = b.CardsIn(col.ID)
	}
	return grouped
}

// Column looks up one column
func (s *Store) Column(id string) (models.Column, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := slices.IndexFunc(s.columns, func(c models.Column) bool { return c.ID == id })
	if i < 0 {
		return models.Column{}, false
	}
	return s.columns[i], true
}

// Card looks up one card
func (s *Store) Card(id string) (models.Card, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := slices.IndexFunc(s.cards, func(c models.Card) bool { return c.ID == id })
	if i < 0 {
		return models.Card{}, false
	}
	return s.cards[i], true
}

// CountColumns returns the number of columns
func (s *Store) CountColumns() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.columns)
}

// CountCards returns the number of cards in one column
func (s *Store) CountCards(columnID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, c := range s.cards {
		if c.ColumnID == columnID {
			n++
		}
	}
	return n
}
