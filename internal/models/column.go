package models

// Column represents a board column (e.g., "To Do", "In Progress", "Done").
// Order is a dense zero-based rank across the whole column set.
type Column struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	Order int    `json:"order" yaml:"order"`
}

// GetID returns the column identifier
func (c Column) GetID() string {
	return c.ID
}
