package engine

import (
	"github.com/Sharply-Tech/metch-orderbook/models"
)

// lessFunc is the strict ordering used by one side's priority tree. a "less
// than" b means a has priority over b and is matched first.
type lessFunc func(a, b *models.Order) bool

// lessFor returns the price-time priority ordering for the given side:
//  1. price: highest first for bids, lowest first for asks
//  2. earlier ModifiedAt first (an untouched order outranks a recently
//     modified peer at the same price)
//  3. earlier CreatedAt first
//  4. lower id first
//
// The id fallback makes the ordering total, so two distinct orders never
// compare equal and one can never silently replace the other in the tree.
func lessFor(side models.Side) lessFunc {
	return func(a, b *models.Order) bool {
		if cmp := a.Price.Cmp(b.Price); cmp != 0 {
			if side == models.SideBid {
				return cmp > 0
			}
			return cmp < 0
		}
		if !a.ModifiedAt.Equal(b.ModifiedAt) {
			return a.ModifiedAt.Before(b.ModifiedAt)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	}
}
