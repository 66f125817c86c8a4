package engine

import (
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sharply-Tech/metch-orderbook/models"
)

type batchCollector struct {
	mu      sync.Mutex
	batches [][]Event
}

func (bc *batchCollector) collect(batch []Event) {
	bc.mu.Lock()
	defer bc.mu.Unlock()
	bc.batches = append(bc.batches, batch)
}

func (bc *batchCollector) snapshot() [][]Event {
	bc.mu.Lock()
	defer bc.mu.Unlock()
	out := make([][]Event, len(bc.batches))
	copy(out, bc.batches)
	return out
}

func placedEvent(id int64) Event {
	order := models.NewOrder(id, id, models.SideBid, decimal.NewFromInt(id), decimal.NewFromInt(1), models.TagDay)
	return orderEvent(EventOrderPlaced, order)
}

func TestBufferedSinkFlushesOnBatchSize(t *testing.T) {
	collector := &batchCollector{}
	sink := NewBufferedSink(&BufferedSinkConfig{BatchSize: 3, FlushInterval: time.Hour}, collector.collect)
	sink.Start()
	defer sink.Stop()

	sink.Handle(placedEvent(1))
	sink.Handle(placedEvent(2))
	assert.Empty(t, collector.snapshot(), "Partial batch must not flush")

	sink.Handle(placedEvent(3))

	batches := collector.snapshot()
	require.Len(t, batches, 1)
	require.Len(t, batches[0], 3)
	assert.Equal(t, int64(1), batches[0][0].Order.ID)
	assert.Equal(t, int64(3), batches[0][2].Order.ID)
}

func TestBufferedSinkFlushesOnInterval(t *testing.T) {
	collector := &batchCollector{}
	sink := NewBufferedSink(&BufferedSinkConfig{BatchSize: 100, FlushInterval: 10 * time.Millisecond}, collector.collect)
	sink.Start()
	defer sink.Stop()

	sink.Handle(placedEvent(1))

	require.Eventually(t, func() bool {
		return len(collector.snapshot()) == 1
	}, time.Second, 5*time.Millisecond, "Interval flush must deliver a partial batch")
}

func TestBufferedSinkStopFlushesTail(t *testing.T) {
	collector := &batchCollector{}
	sink := NewBufferedSink(&BufferedSinkConfig{BatchSize: 100, FlushInterval: time.Hour}, collector.collect)
	sink.Start()

	sink.Handle(placedEvent(1))
	sink.Handle(placedEvent(2))
	sink.Stop()

	batches := collector.snapshot()
	require.Len(t, batches, 1)
	assert.Len(t, batches[0], 2)

	events, flushed := sink.Stats()
	assert.Equal(t, uint64(2), events)
	assert.Equal(t, uint64(1), flushed)
}

func TestBufferedSinkDefaultConfig(t *testing.T) {
	config := DefaultBufferedSinkConfig()
	assert.Equal(t, 100, config.BatchSize)
	assert.Equal(t, 100*time.Millisecond, config.FlushInterval)

	// nil config falls back to the defaults
	sink := NewBufferedSink(nil, nil)
	assert.Equal(t, 100, sink.size)
}
