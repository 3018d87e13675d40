package shopping

import (
	"errors"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/dukerupert/sabzi/internal/model"
)

var ErrInvalidStatus = errors.New("invalid status")

// Buckets holds the items of each status bucket, sorted by name.
type Buckets struct {
	ToBuy     []model.ShoppingItem `json:"to_buy"`
	NotNeeded []model.ShoppingItem `json:"not_needed"`
	Purchased []model.ShoppingItem `json:"purchased"`
}

// Len returns the total number of items across all buckets.
func (b Buckets) Len() int {
	return len(b.ToBuy) + len(b.NotNeeded) + len(b.Purchased)
}

// ParseStatus validates a status string from a request.
func ParseStatus(s string) (model.ItemStatus, error) {
	status := model.ItemStatus(strings.ToLower(strings.TrimSpace(s)))
	if !status.Valid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// Search returns the items whose name, quantity or note contains query,
// case-insensitively. A blank query returns items as is.
func Search(items []model.ShoppingItem, query string) []model.ShoppingItem {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return items
	}

	var matched []model.ShoppingItem
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Name), q) ||
			strings.Contains(strings.ToLower(item.Quantity), q) ||
			(item.Note != nil && strings.Contains(strings.ToLower(*item.Note), q)) {
			matched = append(matched, item)
		}
	}
	return matched
}

// Group partitions items by status. Items with an unknown status land in ToBuy.
func Group(items []model.ShoppingItem) Buckets {
	b := Buckets{
		ToBuy:     []model.ShoppingItem{},
		NotNeeded: []model.ShoppingItem{},
		Purchased: []model.ShoppingItem{},
	}
	for _, item := range items {
		switch item.Status {
		case model.StatusNotNeeded:
			b.NotNeeded = append(b.NotNeeded, item)
		case model.StatusPurchased:
			b.Purchased = append(b.Purchased, item)
		default:
			b.ToBuy = append(b.ToBuy, item)
		}
	}

	c := collate.New(language.Und, collate.IgnoreCase)
	for _, bucket := range [][]model.ShoppingItem{b.ToBuy, b.NotNeeded, b.Purchased} {
		slices.SortStableFunc(bucket, func(x, y model.ShoppingItem) int {
			return c.CompareString(x.Name, y.Name)
		})
	}
	return b
}
