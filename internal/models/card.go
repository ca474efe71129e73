package models

// Card represents a single item on the board.
// Order is a dense zero-based rank among the cards sharing ColumnID.
type Card struct {
	ID       string `json:"id" yaml:"id"`
	Title    string `json:"title" yaml:"title"`
	ColumnID string `json:"column_id" yaml:"column_id"`
	Order    int    `json:"order" yaml:"order"`
}

// GetID returns the card identifier
func (c Card) GetID() string {
	return c.ID
}
