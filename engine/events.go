package engine

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Sharply-Tech/metch-orderbook/models"
)

// EventType tags the closed set of book notifications.
type EventType string

const (
	EventOrderPlaced    EventType = "OrderPlaced"
	EventOrderUpdated   EventType = "OrderUpdated"
	EventOrderCancelled EventType = "OrderCancelled"
	EventTradeClosed    EventType = "TradeClosed"
)

// Event is one book notification. Order carries the relevant order snapshot
// for the three order events; Trade is non-nil only for TradeClosed. Consumers
// dispatch by switching on Type.
type Event struct {
	Type      EventType
	Timestamp time.Time
	Order     models.Order
	Trade     *models.Trade
}

// EventSink receives book notifications. The engine calls Handle synchronously
// and in-line with its own mutation, after the mutation has committed; the
// sink cannot reject or alter it. A sink that blocks delays the single writer,
// so per-event observer work should stay cheap; a BufferedSink amortizes it
// into per-batch work.
type EventSink interface {
	Handle(event Event)
}

// EventSinkFunc adapts a function to the EventSink interface.
type EventSinkFunc func(event Event)

// Handle calls f(event).
func (f EventSinkFunc) Handle(event Event) {
	f(event)
}

// NopSink discards all events.
func NopSink() EventSink {
	return EventSinkFunc(func(Event) {})
}

func orderEvent(eventType EventType, order models.Order) Event {
	return Event{
		Type:      eventType,
		Timestamp: time.Now(),
		Order:     order,
	}
}

func tradeEvent(trade models.Trade) Event {
	return Event{
		Type:      EventTradeClosed,
		Timestamp: time.Now(),
		Trade:     &trade,
	}
}

// notify delivers one event to the sink, isolating observer panics: the
// mutation that produced the event has already committed, and a broken
// observer must not corrupt the book or kill the writer.
func notify(sink EventSink, event Event) {
	if sink == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			logrus.WithFields(logrus.Fields{
				"event": "sink_panic",
				"type":  string(event.Type),
				"panic": r,
			}).Error("Event sink panicked")
		}
	}()
	sink.Handle(event)
}
