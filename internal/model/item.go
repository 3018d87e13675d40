package model

import "time"

type ItemStatus string

const (
	StatusToBuy     ItemStatus = "to-buy"
	StatusNotNeeded ItemStatus = "not-needed"
	StatusPurchased ItemStatus = "purchased"
)

// Statuses lists every status bucket in display order.
var Statuses = []ItemStatus{StatusToBuy, StatusNotNeeded, StatusPurchased}

// Valid reports whether s is one of the known status buckets.
func (s ItemStatus) Valid() bool {
	switch s {
	case StatusToBuy, StatusNotNeeded, StatusPurchased:
		return true
	}
	return false
}

type ShoppingItem struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Quantity  string     `json:"quantity"`
	Note      *string    `json:"note,omitempty"`
	Status    ItemStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
