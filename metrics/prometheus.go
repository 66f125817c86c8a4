package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Counter: Total orders placed
	OrdersPlacedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_placed_total",
			Help: "Total number of orders placed into the book",
		},
		[]string{"instrument", "side", "tag"},
	)

	// Counter: Total orders updated
	OrdersUpdatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_updated_total",
			Help: "Total number of order price/size updates",
		},
		[]string{"instrument", "side"},
	)

	// Counter: Total orders cancelled
	OrdersCancelledTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_cancelled_total",
			Help: "Total number of orders cancelled",
		},
		[]string{"instrument", "side"},
	)

	// Counter: Total orders rejected
	OrdersRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_rejected_total",
			Help: "Total number of orders rejected by input validation",
		},
		[]string{"instrument", "reason"},
	)

	// Counter: Total trades executed
	TradesExecutedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trades_executed_total",
			Help: "Total number of trades executed",
		},
		[]string{"instrument"},
	)

	// Counter: Total volume traded
	TradedVolumeTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "traded_volume_total",
			Help: "Total volume traded",
		},
		[]string{"instrument"},
	)

	// Gauge: Current orderbook depth (live orders per side)
	CurrentOrderbookDepth = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "current_orderbook_depth",
			Help: "Current number of live orders in the orderbook",
		},
		[]string{"instrument", "side"},
	)

	// Gauge: Best bid/ask prices
	BestBidPrice = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "best_bid_price",
			Help: "Current best bid price in the orderbook",
		},
		[]string{"instrument"},
	)

	BestAskPrice = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "best_ask_price",
			Help: "Current best ask price in the orderbook",
		},
		[]string{"instrument"},
	)

	// Gauge: Spread (difference between best ask and best bid)
	OrderbookSpread = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "orderbook_spread",
			Help: "Current spread between best bid and best ask",
		},
		[]string{"instrument"},
	)
)

// IncOrderPlaced increments the placed-order counter.
func IncOrderPlaced(instrument, side, tag string) {
	OrdersPlacedTotal.WithLabelValues(instrument, side, tag).Inc()
}

// IncOrderUpdated increments the updated-order counter.
func IncOrderUpdated(instrument, side string) {
	OrdersUpdatedTotal.WithLabelValues(instrument, side).Inc()
}

// IncOrderCancelled increments the cancelled-order counter.
func IncOrderCancelled(instrument, side string) {
	OrdersCancelledTotal.WithLabelValues(instrument, side).Inc()
}

// IncOrderRejected increments the rejected-order counter.
func IncOrderRejected(instrument, reason string) {
	OrdersRejectedTotal.WithLabelValues(instrument, reason).Inc()
}

// IncTradeExecuted records one executed trade and its volume.
func IncTradeExecuted(instrument string, volume float64) {
	TradesExecutedTotal.WithLabelValues(instrument).Inc()
	TradedVolumeTotal.WithLabelValues(instrument).Add(volume)
}

// UpdateOrderbookDepth sets the live-order depth gauge for one side.
func UpdateOrderbookDepth(instrument, side string, depth float64) {
	CurrentOrderbookDepth.WithLabelValues(instrument, side).Set(depth)
}

// UpdateBestPrices sets the best bid and ask gauges.
func UpdateBestPrices(instrument string, bestBid, bestAsk float64) {
	BestBidPrice.WithLabelValues(instrument).Set(bestBid)
	BestAskPrice.WithLabelValues(instrument).Set(bestAsk)
}

// UpdateSpread sets the spread gauge.
func UpdateSpread(instrument string, spread float64) {
	OrderbookSpread.WithLabelValues(instrument).Set(spread)
}
