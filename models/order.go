package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Side represents the side of an order (bid or ask)
type Side string

const (
	SideBid Side = "bid"
	SideAsk Side = "ask"
)

// Opposite returns the other side of the book.
func (s Side) Opposite() Side {
	if s == SideBid {
		return SideAsk
	}
	return SideBid
}

// OrderTag classifies an order. The tag is carried on the order but has no
// matching-time semantics; all orders match on plain price/size.
type OrderTag string

const (
	TagMarket OrderTag = "market"
	TagStop   OrderTag = "stop"
	TagLimit  OrderTag = "limit"
	TagGTC    OrderTag = "gtc"
	TagDay    OrderTag = "day"
)

// Order represents one resting or incoming order. Orders are value types:
// every change (price, size, fill) produces a new Order value rather than
// mutating a shared one, so index sort keys never change under an iterator.
type Order struct {
	ID         int64           `json:"id"`
	ClientID   int64           `json:"client_id"`
	Side       Side            `json:"side"`
	Price      decimal.Decimal `json:"price"`
	Size       decimal.Decimal `json:"size"`
	Filled     decimal.Decimal `json:"filled"`
	Tag        OrderTag        `json:"tag"`
	CreatedAt  time.Time       `json:"created_at"`
	ModifiedAt time.Time       `json:"modified_at"`
}

// NewOrder creates a new Order with zero fill and both timestamps set to now.
func NewOrder(id, clientID int64, side Side, price, size decimal.Decimal, tag OrderTag) Order {
	now := time.Now()
	return Order{
		ID:         id,
		ClientID:   clientID,
		Side:       side,
		Price:      price,
		Size:       size,
		Filled:     decimal.Zero,
		Tag:        tag,
		CreatedAt:  now,
		ModifiedAt: now,
	}
}

// Remaining returns the unfilled quantity of the order.
func (o Order) Remaining() decimal.Decimal {
	return o.Size.Sub(o.Filled)
}

// IsFilled checks if the order is completely filled.
func (o Order) IsFilled() bool {
	return o.Filled.Equal(o.Size)
}

// IsPartiallyFilled checks if the order is partially filled.
func (o Order) IsPartiallyFilled() bool {
	return o.Filled.GreaterThan(decimal.Zero) && o.Filled.LessThan(o.Size)
}

// IsValid validates the order fields.
func (o Order) IsValid() bool {
	if o.Side != SideBid && o.Side != SideAsk {
		return false
	}
	if o.Price.LessThanOrEqual(decimal.Zero) {
		return false
	}
	if o.Size.LessThanOrEqual(decimal.Zero) {
		return false
	}
	// Filled cannot exceed Size
	if o.Filled.GreaterThan(o.Size) {
		return false
	}
	return true
}

// WithPrice returns a copy of the order with the given price and a refreshed
// modification timestamp.
func (o Order) WithPrice(price decimal.Decimal) Order {
	o.Price = price
	o.ModifiedAt = time.Now()
	return o
}

// WithSize returns a copy of the order with the given size and a refreshed
// modification timestamp.
func (o Order) WithSize(size decimal.Decimal) Order {
	o.Size = size
	o.ModifiedAt = time.Now()
	return o
}

// WithFilled returns a copy of the order with the given cumulative fill and a
// refreshed modification timestamp.
func (o Order) WithFilled(filled decimal.Decimal) Order {
	o.Filled = filled
	o.ModifiedAt = time.Now()
	return o
}

// WithModifiedAt returns a copy of the order carrying the given modification
// timestamp.
func (o Order) WithModifiedAt(ts time.Time) Order {
	o.ModifiedAt = ts
	return o
}
