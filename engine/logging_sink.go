package engine

import (
	"github.com/Sharply-Tech/metch-orderbook/logging"
)

// LoggingSink returns an event sink that writes one structured log line per
// book notification. Wire it into a MatchingEngine (or behind a BufferedSink)
// to get an audit trail of placements, updates, cancellations and trades.
func LoggingSink(instrument string) EventSink {
	return EventSinkFunc(func(event Event) {
		switch event.Type {
		case EventOrderPlaced:
			o := event.Order
			logging.LogOrderPlaced(instrument, o.ID, o.ClientID, string(o.Side), string(o.Tag), o.Price.String(), o.Size.String())
		case EventOrderUpdated:
			o := event.Order
			logging.LogOrderUpdated(instrument, o.ID, o.ClientID, string(o.Side), o.Price.String(), o.Filled.String(), o.Remaining().String())
		case EventOrderCancelled:
			o := event.Order
			logging.LogOrderCancelled(instrument, o.ID, o.ClientID, string(o.Side))
		case EventTradeClosed:
			t := event.Trade
			if t == nil {
				return
			}
			logging.LogTradeClosed(instrument, t.ID.String(), t.Bid.ID, t.Ask.ID, t.Bid.ClientID, t.Ask.ClientID, t.Price.String(), t.Size.String())
		}
	})
}
