package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Trade is an immutable record of one match. Bid and Ask are snapshots of the
// two orders as they stood at match time, not live handles into the book.
type Trade struct {
	ID        uuid.UUID       `json:"id"`
	Bid       Order           `json:"bid"`
	Ask       Order           `json:"ask"`
	Price     decimal.Decimal `json:"price"`
	Size      decimal.Decimal `json:"size"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewTrade creates a new trade between a bid and an ask snapshot.
func NewTrade(bid, ask Order, price, size decimal.Decimal) Trade {
	return Trade{
		ID:        uuid.New(),
		Bid:       bid,
		Ask:       ask,
		Price:     price,
		Size:      size,
		CreatedAt: time.Now(),
	}
}
