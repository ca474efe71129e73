package board

import (
	"slices"

	"github.com/thenoetrevino/boardsync/internal/models"
)

// Single-entity mutations. The coordinator uses these for creates, renames,
// deletes and their reverts; reorders go through ApplyReassignment.

// AddColumn appends a column confirmed by the store
func (s *Store) AddColumn(col models.Column) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.columns = append(s.columns, col)
}

// AddCard appends a card confirmed by the store
func (s *Store) AddCard(card models.Card) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cards = append(s.cards, card)
}

// SetColumnTitle renames a column and returns the previous title
func (s *Store) SetColumnTitle(id, title string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.columns, func(c models.Column) bool { return c.ID == id })
	if i < 0 {
		return "", false
	}
	prev := s.columns[i].Title
	s.columns[i].Title = title
	return prev, true
}

// SetCardTitle renames a card and returns the previous title
func (s *Store) SetCardTitle(id, title string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.cards, func(c models.Card) bool { return c.ID == id })
	if i < 0 {
		return "", false
	}
	prev := s.cards[i].Title
	s.cards[i].Title = title
	return prev, true
}

// RevertColumnTitle restores prev only if the title still equals expected,
// so a newer rename is never clobbered by an older failure.
func (s *Store) RevertColumnTitle(id, expected, prev string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.columns, func(c models.Column) bool { return c.ID == id })
	if i < 0 || s.columns[i].Title != expected {
		return false
	}
	s.columns[i].Title = prev
	return true
}

// RevertCardTitle is the card counterpart of RevertColumnTitle
func (s *Store) RevertCardTitle(id, expected, prev string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.cards, func(c models.Card) bool { return c.ID == id })
	if i < 0 || s.cards[i].Title != expected {
		return false
	}
	s.cards[i].Title = prev
	return true
}

// RemoveCard deletes a card locally and returns it
func (s *Store) RemoveCard(id string) (models.Card, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.cards, func(c models.Card) bool { return c.ID == id })
	if i < 0 {
		return models.Card{}, false
	}
	card := s.cards[i]
	s.cards = slices.Delete(s.cards, i, i+1)
	return card, true
}

// RemoveColumn deletes a column and all of its cards locally
func (s *Store) RemoveColumn(id string) (models.Column, []models.Card, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.columns, func(c models.Column) bool { return c.ID == id })
	if i < 0 {
		return models.Column{}, nil, false
	}
	col := s.columns[i]
	s.columns = slices.Delete(s.columns, i, i+1)

	var removed []models.Card
	s.cards = slices.DeleteFunc(s.cards, func(c models.Card) bool {
		if c.ColumnID == id {
			removed = append(removed, c)
			return true
		}
		return false
	})
	return col, removed, true
}

// RestoreCard puts back a card removed by RemoveCard. Sibling orders are
// restored separately through ApplyReassignment.
func (s *Store) RestoreCard(card models.Card) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if slices.ContainsFunc(s.cards, func(c models.Card) bool { return c.ID == card.ID }) {
		return
	}
	s.cards = append(s.cards, card)
}
