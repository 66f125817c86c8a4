package engine

import (
	"github.com/shopspring/decimal"

	"github.com/Sharply-Tech/metch-orderbook/logging"
	"github.com/Sharply-Tech/metch-orderbook/metrics"
	"github.com/Sharply-Tech/metch-orderbook/models"
)

// MatchingEngine orchestrates placements, updates and cancellations over an
// OrderBook, forming trades whenever a resting order becomes price-compatible
// with an incoming or modified order.
//
// The engine is not internally synchronized: all mutating calls must come from
// one goroutine. AsyncOrderBook provides that discipline; embedders that
// already have a single writer can use the engine directly.
type MatchingEngine struct {
	book   *OrderBook
	sink   EventSink
	nextID int64
}

// NewMatchingEngine creates an engine for one instrument. A nil sink discards
// all notifications.
func NewMatchingEngine(instrument string, sink EventSink) *MatchingEngine {
	if sink == nil {
		sink = NopSink()
	}
	return &MatchingEngine{
		book:   NewOrderBook(instrument),
		sink:   sink,
		nextID: 1,
	}
}

// Book exposes the underlying store for read access.
func (me *MatchingEngine) Book() *OrderBook {
	return me.book
}

// Place creates a new order, rests it in the book, notifies the sink and then
// attempts to match it. The returned snapshot is the order as placed; fills
// applied during matching are reported through OrderUpdated and TradeClosed
// events.
//
// Price and size must be strictly positive; violations are rejected before any
// state changes.
func (me *MatchingEngine) Place(clientID int64, side models.Side, price, size decimal.Decimal, tag models.OrderTag) (models.Order, error) {
	if price.LessThanOrEqual(decimal.Zero) {
		me.rejectOrder(clientID, "invalid_price")
		return models.Order{}, ErrInvalidPrice
	}
	if size.LessThanOrEqual(decimal.Zero) {
		me.rejectOrder(clientID, "invalid_size")
		return models.Order{}, ErrInvalidSize
	}

	order := models.NewOrder(me.nextID, clientID, side, price, size, tag)
	me.nextID++

	me.book.Insert(order)
	notify(me.sink, orderEvent(EventOrderPlaced, order))
	metrics.IncOrderPlaced(me.book.Instrument, string(side), string(tag))

	err := me.matchFrom(order)
	me.updateBookMetrics()
	return order, err
}

// Update replaces a live order's price and size, preserving its fill, and
// re-attempts matching. The order is re-seated in its priority sequence: a
// modified order loses time priority to untouched peers at the same price.
func (me *MatchingEngine) Update(orderID int64, price, size decimal.Decimal) (models.Order, error) {
	existing, exists := me.book.Get(orderID)
	if !exists {
		return models.Order{}, ErrOrderNotFound
	}
	if price.LessThanOrEqual(decimal.Zero) {
		me.rejectOrder(existing.ClientID, "invalid_price")
		return models.Order{}, ErrInvalidPrice
	}
	if size.LessThanOrEqual(decimal.Zero) {
		me.rejectOrder(existing.ClientID, "invalid_size")
		return models.Order{}, ErrInvalidSize
	}
	if size.LessThan(existing.Filled) {
		me.rejectOrder(existing.ClientID, "size_below_filled")
		return models.Order{}, ErrSizeBelowFilled
	}

	updated := existing.WithPrice(price).WithSize(size)

	// shrinking size to exactly the filled quantity leaves no remainder; the
	// order is fully filled and leaves the book instead of resting at zero
	if updated.IsFilled() {
		me.book.Remove(updated.ID)
		notify(me.sink, orderEvent(EventOrderUpdated, updated))
		metrics.IncOrderUpdated(me.book.Instrument, string(updated.Side))
		me.updateBookMetrics()
		return updated, nil
	}

	me.book.Replace(updated)
	notify(me.sink, orderEvent(EventOrderUpdated, updated))
	metrics.IncOrderUpdated(me.book.Instrument, string(updated.Side))

	err := me.matchFrom(updated)
	me.updateBookMetrics()
	return updated, err
}

// Cancel removes a live order from the book. Cancellation never triggers a
// match attempt.
func (me *MatchingEngine) Cancel(orderID int64) (models.Order, error) {
	cancelled, ok := me.book.Remove(orderID)
	if !ok {
		return models.Order{}, ErrOrderNotFound
	}
	notify(me.sink, orderEvent(EventOrderCancelled, cancelled))
	metrics.IncOrderCancelled(me.book.Instrument, string(cancelled.Side))
	me.updateBookMetrics()
	return cancelled, nil
}

// FindByID returns a snapshot of a live order.
func (me *MatchingEngine) FindByID(orderID int64) (models.Order, bool) {
	return me.book.Get(orderID)
}

// BestBids returns up to count bids in priority order.
func (me *MatchingEngine) BestBids(count int) []models.Order {
	return me.book.BestBids(count)
}

// BestAsks returns up to count asks in priority order.
func (me *MatchingEngine) BestAsks(count int) []models.Order {
	return me.book.BestAsks(count)
}

// ScanBest walks one side in priority order until fn returns false.
func (me *MatchingEngine) ScanBest(side models.Side, fn func(models.Order) bool) {
	me.book.ScanBest(side, fn)
}

// matchFrom drives the match loop for one triggering order. Each iteration
// scans the opposite side for the best compatible counter-order and processes
// at most one trade; when a trade leaves one side partially filled, the loop
// continues with that remainder against the next best candidate. An explicit
// loop, rather than re-entering the public update path, guarantees each fill
// is applied exactly once and all chained trades for one incoming order
// complete before the triggering operation returns.
func (me *MatchingEngine) matchFrom(order models.Order) error {
	current := order
	for {
		counter, found := me.findCounter(current)
		if !found {
			return nil
		}

		bid, ask := current, counter
		if current.Side == models.SideAsk {
			bid, ask = counter, current
		}

		survivor, rematch, err := me.processTrade(bid, ask)
		if err != nil {
			return err
		}
		if !rematch {
			return nil
		}
		current = survivor
	}
}

// findCounter scans the side opposite the triggering order in priority order
// and returns the first candidate that is live, belongs to a different client
// and is price-compatible (bid price >= ask price).
func (me *MatchingEngine) findCounter(order models.Order) (models.Order, bool) {
	var match models.Order
	found := false

	me.book.ScanBest(order.Side.Opposite(), func(candidate models.Order) bool {
		if candidate.IsFilled() {
			return true
		}
		// self-trade prevention: same-client orders never execute against
		// each other
		if candidate.ClientID == order.ClientID {
			return true
		}
		if order.Side == models.SideBid && order.Price.LessThan(candidate.Price) {
			return true
		}
		if order.Side == models.SideAsk && order.Price.GreaterThan(candidate.Price) {
			return true
		}
		match = candidate
		found = true
		return false
	})

	return match, found
}

// processTrade fills the pair by min(bid.Remaining, ask.Remaining), removes
// fully filled sides from the book, re-seats a partially filled side with its
// new cumulative fill, and emits TradeClosed followed by OrderUpdated for the
// partial side. The trade executes at the price of whichever side rested
// longer (earlier ModifiedAt): the passive order's price governs.
//
// The partial side's fill is applied directly instead of going through Update,
// so no fresh match search starts mid-trade; matchFrom resumes the chain once
// the trade has fully committed.
func (me *MatchingEngine) processTrade(bid, ask models.Order) (models.Order, bool, error) {
	if bid.Price.LessThan(ask.Price) {
		return models.Order{}, false, me.invariantViolation("bid price below ask price", bid, ask)
	}
	if bid.ClientID == ask.ClientID {
		return models.Order{}, false, me.invariantViolation("bid and ask share a client", bid, ask)
	}

	tradeSize := decimal.Min(bid.Remaining(), ask.Remaining())

	bidFilled := bid.Remaining().LessThanOrEqual(tradeSize)
	askFilled := ask.Remaining().LessThanOrEqual(tradeSize)

	var survivor models.Order
	rematch := false

	if bidFilled {
		me.book.Remove(bid.ID)
	} else {
		survivor = bid.WithFilled(bid.Filled.Add(tradeSize))
		me.book.Replace(survivor)
		rematch = true
	}
	if askFilled {
		me.book.Remove(ask.ID)
	} else {
		survivor = ask.WithFilled(ask.Filled.Add(tradeSize))
		me.book.Replace(survivor)
		rematch = true
	}

	tradePrice := ask.Price
	if bid.ModifiedAt.Before(ask.ModifiedAt) {
		tradePrice = bid.Price
	}

	trade := models.NewTrade(bid, ask, tradePrice, tradeSize)
	notify(me.sink, tradeEvent(trade))
	volume, _ := tradeSize.Float64()
	metrics.IncTradeExecuted(me.book.Instrument, volume)

	if rematch {
		notify(me.sink, orderEvent(EventOrderUpdated, survivor))
	}

	return survivor, rematch, nil
}

// rejectOrder records one validation rejection in metrics and the log.
func (me *MatchingEngine) rejectOrder(clientID int64, reason string) {
	metrics.IncOrderRejected(me.book.Instrument, reason)
	logging.LogOrderRejected(me.book.Instrument, clientID, reason)
}

// invariantViolation logs an internal matching defect and builds its error.
// The checks guarded by it never fire through findCounter; they exist so a
// future bug in candidate selection surfaces loudly instead of trading.
func (me *MatchingEngine) invariantViolation(reason string, bid, ask models.Order) error {
	logging.LogInvariantViolation(me.book.Instrument, reason, bid.ID, ask.ID)
	return &InvariantViolationError{Reason: reason, Bid: bid, Ask: ask}
}

func (me *MatchingEngine) updateBookMetrics() {
	instrument := me.book.Instrument

	metrics.UpdateOrderbookDepth(instrument, "bid", float64(me.book.SideLen(models.SideBid)))
	metrics.UpdateOrderbookDepth(instrument, "ask", float64(me.book.SideLen(models.SideAsk)))

	bestBid := 0.0
	bestAsk := 0.0
	if price, ok := me.book.BestPrice(models.SideBid); ok {
		bestBid, _ = price.Float64()
	}
	if price, ok := me.book.BestPrice(models.SideAsk); ok {
		bestAsk, _ = price.Float64()
	}
	metrics.UpdateBestPrices(instrument, bestBid, bestAsk)

	spread, _ := me.book.Spread().Float64()
	metrics.UpdateSpread(instrument, spread)
}
