package models

import "slices"

// ColumnScope is the serialization key for the column list itself
const ColumnScope = "columns"

// CardScope returns the serialization key for the card list of one column
func CardScope(columnID string) string {
	return "column:" + columnID
}

// ColumnPlacement is the new rank of one column
type ColumnPlacement struct {
	ID    string
	Order int
}

// CardPlacement is the new column and rank of one card
type CardPlacement struct {
	ID       string
	ColumnID string
	Order    int

	// FromColumnID is the column the card lived in before the move
	FromColumnID string
}

// Reassignment is the full new ordering of every collection touched by a move.
// Each affected collection is listed in full, already densely re-sequenced.
type Reassignment struct {
	Columns []ColumnPlacement
	Cards   []CardPlacement
}

// Empty reports whether the reassignment changes nothing
func (r Reassignment) Empty() bool {
	return len(r.Columns) == 0 && len(r.Cards) == 0
}

// CrossColumn reports whether any card changes its owning column
func (r Reassignment) CrossColumn() bool {
	for _, p := range r.Cards {
		if p.FromColumnID != "" && p.FromColumnID != p.ColumnID {
			return true
		}
	}
	return false
}

// Scopes returns the sorted, de-duplicated serialization keys the
// reassignment touches.
func (r Reassignment) Scopes() []string {
	var scopes []string
	if len(r.Columns) > 0 {
		scopes = append(scopes, ColumnScope)
	}
	for _, p := range r.Cards {
		scopes = append(scopes, CardScope(p.ColumnID))
		if p.FromColumnID != "" {
			scopes = append(scopes, CardScope(p.FromColumnID))
		}
	}
	slices.Sort(scopes)
	return slices.Compact(scopes)
}

// Change records one entity whose order or column actually changed when a
// reassignment was applied.
type Change struct {
	Ref      Ref
	Order    int
	ColumnID string // cards only
}
