package engine

import (
	"github.com/google/btree"
	"github.com/shopspring/decimal"

	"github.com/Sharply-Tech/metch-orderbook/models"
)

const btreeDegree = 32

// OrderBook owns three indices over the same logical set of live orders: an
// id-keyed map for O(1) lookup and two priority trees, one per side, whose
// in-order walk is exactly price-time match priority.
//
// An order is present in the indices if and only if it is live: un-cancelled
// and with remaining quantity. Every mutation keeps all three indices
// consistent before returning.
//
// The OrderBook is not synchronized; MatchingEngine and AsyncOrderBook
// arrange for a single writer.
type OrderBook struct {
	Instrument string

	bids   *btree.BTreeG[*models.Order]
	asks   *btree.BTreeG[*models.Order]
	orders map[int64]*models.Order
}

// NewOrderBook creates an empty order book for an instrument.
func NewOrderBook(instrument string) *OrderBook {
	return &OrderBook{
		Instrument: instrument,
		bids:       btree.NewG(btreeDegree, btree.LessFunc[*models.Order](lessFor(models.SideBid))),
		asks:       btree.NewG(btreeDegree, btree.LessFunc[*models.Order](lessFor(models.SideAsk))),
		orders:     make(map[int64]*models.Order),
	}
}

func (ob *OrderBook) tree(side models.Side) *btree.BTreeG[*models.Order] {
	if side == models.SideBid {
		return ob.bids
	}
	return ob.asks
}

// Insert adds a live order to the id map and its side's priority tree.
func (ob *OrderBook) Insert(order models.Order) {
	o := &order
	ob.orders[o.ID] = o
	ob.tree(o.Side).ReplaceOrInsert(o)
}

// Remove deletes an order from all indices. Returns the removed snapshot, or
// false if the id is unknown.
func (ob *OrderBook) Remove(orderID int64) (models.Order, bool) {
	o, exists := ob.orders[orderID]
	if !exists {
		return models.Order{}, false
	}
	ob.tree(o.Side).Delete(o)
	delete(ob.orders, orderID)
	return *o, true
}

// Replace swaps the stored value of a live order for an updated one, re-seating
// it in its priority tree. Price, ModifiedAt and CreatedAt are sort keys, so
// the old entry is deleted before the new one is inserted; both indices are
// consistent again before Replace returns. Returns false if the id is unknown.
func (ob *OrderBook) Replace(updated models.Order) bool {
	old, exists := ob.orders[updated.ID]
	if !exists {
		return false
	}
	tree := ob.tree(old.Side)
	tree.Delete(old)
	o := &updated
	tree.ReplaceOrInsert(o)
	ob.orders[o.ID] = o
	return true
}

// Get returns a snapshot of the live order with the given id.
func (ob *OrderBook) Get(orderID int64) (models.Order, bool) {
	o, exists := ob.orders[orderID]
	if !exists {
		return models.Order{}, false
	}
	return *o, true
}

// Len returns the number of live orders across both sides.
func (ob *OrderBook) Len() int {
	return len(ob.orders)
}

// SideLen returns the number of live orders on one side.
func (ob *OrderBook) SideLen(side models.Side) int {
	return ob.tree(side).Len()
}

// ScanBest walks one side in priority order, best order first, calling fn with
// a snapshot of each live order until fn returns false or the side is
// exhausted. The walk is lazy and can be restarted at any time.
func (ob *OrderBook) ScanBest(side models.Side, fn func(models.Order) bool) {
	ob.tree(side).Ascend(func(o *models.Order) bool {
		return fn(*o)
	})
}

// BestBids returns up to count bids in priority order.
func (ob *OrderBook) BestBids(count int) []models.Order {
	return ob.best(models.SideBid, count)
}

// BestAsks returns up to count asks in priority order.
func (ob *OrderBook) BestAsks(count int) []models.Order {
	return ob.best(models.SideAsk, count)
}

func (ob *OrderBook) best(side models.Side, count int) []models.Order {
	if count <= 0 {
		return nil
	}
	out := make([]models.Order, 0, count)
	ob.ScanBest(side, func(o models.Order) bool {
		out = append(out, o)
		return len(out) < count
	})
	return out
}

// BestPrice returns the best price on a side: highest bid or lowest ask.
func (ob *OrderBook) BestPrice(side models.Side) (decimal.Decimal, bool) {
	best, ok := ob.tree(side).Min()
	if !ok {
		return decimal.Zero, false
	}
	return best.Price, true
}

// Spread returns the distance between the best ask and the best bid, or zero
// when either side is empty.
func (ob *OrderBook) Spread() decimal.Decimal {
	bid, okBid := ob.BestPrice(models.SideBid)
	ask, okAsk := ob.BestPrice(models.SideAsk)
	if !okBid || !okAsk {
		return decimal.Zero
	}
	return ask.Sub(bid)
}

// Depth returns the total remaining quantity resting on one side.
func (ob *OrderBook) Depth(side models.Side) decimal.Decimal {
	total := decimal.Zero
	ob.ScanBest(side, func(o models.Order) bool {
		total = total.Add(o.Remaining())
		return true
	})
	return total
}
