package seed

import (
	_ "embed"
	"fmt"
	"time"

	"github.com/dukerupert/sabzi/internal/model"
)

// DefaultData is the seed list loaded into an empty store on first run.
//
//go:embed default.txt
var DefaultData string

// Import parses every non-blank line of text into a ShoppingItem. Items are
// stamped now plus one millisecond per position, so ids and timestamps never
// collide within a batch and sorting by CreatedAt restores line order.
func Import(text string, now time.Time) []model.ShoppingItem {
	return FromRecords(ParseLines(text), now)
}

// FromRecords stamps already parsed records with ids and timestamps the same
// way Import does.
func FromRecords(records []Record, now time.Time) []model.ShoppingItem {
	items := make([]model.ShoppingItem, 0, len(records))
	for i, rec := range records {
		at := now.Add(time.Duration(i) * time.Millisecond)
		items = append(items, model.ShoppingItem{
			ID:        fmt.Sprintf("item-%d-%d", now.UnixMilli(), i),
			Name:      rec.Name,
			Quantity:  rec.Quantity,
			Note:      rec.Note,
			Status:    rec.Status,
			CreatedAt: at,
			UpdatedAt: at,
		})
	}
	return items
}
