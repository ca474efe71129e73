package testutil

import (
	"strconv"

	"github.com/thenoetrevino/boardsync/internal/models"
)

// Board builds a board from column titles and, per column index, card titles.
// Ids are "c0", "c1", ... for columns and "c0-k0", "c0-k1", ... for cards.
func Board(columns []string, cards map[int][]string) models.Board {
	var b models.Board
	for i, title := range columns {
		colID := columnID(i)
		b.Columns = append(b.Columns, models.Column{ID: colID, Title: title, Order: i})
		for j, cardTitle := range cards[i] {
			b.Cards = append(b.Cards, models.Card{
				ID:       colID + "-k" + strconv.Itoa(j),
				Title:    cardTitle,
				ColumnID: colID,
				Order:    j,
			})
		}
	}
	return b
}

func columnID(i int) string {
	return "c" + strconv.Itoa(i)
}
