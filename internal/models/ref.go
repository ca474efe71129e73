package models

// EntityKind distinguishes the two draggable entity types
type EntityKind int

const (
	KindColumn EntityKind = iota + 1
	KindCard
)

func (k EntityKind) String() string {
	switch k {
	case KindColumn:
		return "column"
	case KindCard:
		return "card"
	default:
		return "unknown"
	}
}

// Ref names a column or a card, either as the dragged entity or as a hover target
type Ref struct {
	Kind EntityKind
	ID   string
}

// ColumnRef returns a reference to a column
func ColumnRef(id string) Ref {
	return Ref{Kind: KindColumn, ID: id}
}

// CardRef returns a reference to a card
func CardRef(id string) Ref {
	return Ref{Kind: KindCard, ID: id}
}

// IsZero reports whether the reference is unset
func (r Ref) IsZero() bool {
	return r.Kind == 0 && r.ID == ""
}

func (r Ref) String() string {
	return r.Kind.String() + ":" + r.ID
}
