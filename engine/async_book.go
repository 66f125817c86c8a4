package engine

import (
	"context"
	"errors"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/Sharply-Tech/metch-orderbook/logging"
	"github.com/Sharply-Tech/metch-orderbook/models"
)

// ErrQueueFull is returned when the command queue cannot accept another
// mutation.
var ErrQueueFull = errors.New("command queue is full")

const defaultCommandBuffer = 1000

// Future is the asynchronous completion handle returned by the book's
// mutating operations. It resolves exactly once, after the operation has run
// on the single writer. Abandoning a Future does not affect the engine.
type Future[T any] struct {
	done chan struct{}
	val  T
	err  error
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

func (f *Future[T]) resolve(val T, err error) {
	f.val = val
	f.err = err
	close(f.done)
}

// Done returns a channel that is closed once the operation has completed.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the operation completes or ctx is cancelled. Cancellation
// abandons the wait only; the enqueued operation still runs to completion.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// AsyncOrderBook wraps a MatchingEngine, which is not internally
// synchronized, and serializes every mutation onto one worker goroutine.
//
// WHY THIS AVOIDS RACE CONDITIONS:
// 1. Single goroutine: only one goroutine ever mutates the book
// 2. Sequential processing: commands run one at a time, in submission order
// 3. Channel synchronization: the command channel is the only entry point
//
// This is the "share memory by communicating" principle: the book's state is
// owned by a single goroutine, so mutations need no locks of their own. The
// RWMutex exists only so that reads, which may run on any goroutine, observe
// a consistent book rather than one mid-mutation. Reads are not linearizable
// with respect to queued writes: only the mutation stream itself is totally
// ordered.
type AsyncOrderBook struct {
	engine   *MatchingEngine
	bookMu   sync.RWMutex // held by the worker around each mutation
	commands chan func()
	stopChan chan struct{} // per-worker; recreated by Start, guarded by mu
	wg       sync.WaitGroup

	isRunning bool
	mu        sync.RWMutex
}

// NewAsyncOrderBook creates a gateway around a fresh MatchingEngine for one
// instrument. A nil sink discards all notifications.
func NewAsyncOrderBook(instrument string, sink EventSink) *AsyncOrderBook {
	return &AsyncOrderBook{
		engine:   NewMatchingEngine(instrument, sink),
		commands: make(chan func(), defaultCommandBuffer),
	}
}

// Start launches the single writer. A stopped book can be started again;
// each start gets its own worker and stop channel.
func (ab *AsyncOrderBook) Start(ctx context.Context) error {
	ab.mu.Lock()
	if ab.isRunning {
		ab.mu.Unlock()
		return errors.New("order book is already running")
	}
	ab.isRunning = true
	ab.stopChan = make(chan struct{})
	stop := ab.stopChan
	ab.mu.Unlock()

	ab.wg.Add(1)
	go ab.worker(ctx, stop)

	logging.LogWithFields(logrus.InfoLevel, "Order book started", logrus.Fields{
		"event":      logging.EventBookStarted,
		"instrument": ab.engine.Book().Instrument,
	})

	return nil
}

// Stop shuts the writer down after draining already-enqueued commands. The
// liveness flag flips before the stop channel closes, and submit enqueues
// under the same lock, so no command can slip in behind the final drain.
func (ab *AsyncOrderBook) Stop() error {
	ab.mu.Lock()
	if !ab.isRunning {
		ab.mu.Unlock()
		return ErrNotRunning
	}
	ab.isRunning = false
	stop := ab.stopChan
	ab.mu.Unlock()

	close(stop)
	ab.wg.Wait()

	logging.LogWithFields(logrus.InfoLevel, "Order book stopped", logrus.Fields{
		"event":      logging.EventBookStopped,
		"instrument": ab.engine.Book().Instrument,
	})

	return nil
}

// IsRunning reports whether the writer is accepting commands.
func (ab *AsyncOrderBook) IsRunning() bool {
	ab.mu.RLock()
	defer ab.mu.RUnlock()
	return ab.isRunning
}

// worker is the only goroutine that ever mutates the book. Both exit paths
// mark the book stopped before the final drain; taking the liveness lock
// waits out any submit caught mid-enqueue, so the drain sees every accepted
// command.
func (ab *AsyncOrderBook) worker(ctx context.Context, stop <-chan struct{}) {
	defer ab.wg.Done()

	for {
		select {
		case <-ctx.Done():
			ab.mu.Lock()
			ab.isRunning = false
			ab.mu.Unlock()
			ab.drainCommands()
			return
		case <-stop:
			ab.mu.Lock()
			ab.isRunning = false
			ab.mu.Unlock()
			ab.drainCommands()
			return
		case cmd := <-ab.commands:
			cmd()
		}
	}
}

// drainCommands runs any remaining commands before the worker exits, so every
// accepted future resolves.
func (ab *AsyncOrderBook) drainCommands() {
	for {
		select {
		case cmd := <-ab.commands:
			cmd()
		default:
			return
		}
	}
}

// submit enqueues one mutation. The returned error is ErrNotRunning or
// ErrQueueFull; the caller resolves the future with it. The liveness check
// and the enqueue happen under one lock hold, so a command accepted here is
// in the queue before any shutdown drain can run.
func (ab *AsyncOrderBook) submit(cmd func()) error {
	ab.mu.RLock()
	defer ab.mu.RUnlock()

	if !ab.isRunning {
		return ErrNotRunning
	}

	select {
	case ab.commands <- cmd:
		return nil
	default:
		return ErrQueueFull
	}
}

// Place submits a new order for the given client and returns a handle that
// resolves with the order as placed.
func (ab *AsyncOrderBook) Place(clientID int64, side models.Side, price, size decimal.Decimal, tag models.OrderTag) *Future[models.Order] {
	f := newFuture[models.Order]()
	err := ab.submit(func() {
		ab.bookMu.Lock()
		order, err := ab.engine.Place(clientID, side, price, size, tag)
		ab.bookMu.Unlock()
		f.resolve(order, err)
	})
	if err != nil {
		f.resolve(models.Order{}, err)
	}
	return f
}

// Update submits a price/size change for a live order.
func (ab *AsyncOrderBook) Update(orderID int64, price, size decimal.Decimal) *Future[models.Order] {
	f := newFuture[models.Order]()
	err := ab.submit(func() {
		ab.bookMu.Lock()
		order, err := ab.engine.Update(orderID, price, size)
		ab.bookMu.Unlock()
		f.resolve(order, err)
	})
	if err != nil {
		f.resolve(models.Order{}, err)
	}
	return f
}

// Cancel submits a cancellation for a live order.
func (ab *AsyncOrderBook) Cancel(orderID int64) *Future[models.Order] {
	f := newFuture[models.Order]()
	err := ab.submit(func() {
		ab.bookMu.Lock()
		order, err := ab.engine.Cancel(orderID)
		ab.bookMu.Unlock()
		f.resolve(order, err)
	})
	if err != nil {
		f.resolve(models.Order{}, err)
	}
	return f
}

// FindByID answers on the calling goroutine against the current book state.
func (ab *AsyncOrderBook) FindByID(orderID int64) (models.Order, bool) {
	ab.bookMu.RLock()
	defer ab.bookMu.RUnlock()
	return ab.engine.FindByID(orderID)
}

// BestBids answers on the calling goroutine against the current book state.
func (ab *AsyncOrderBook) BestBids(count int) []models.Order {
	ab.bookMu.RLock()
	defer ab.bookMu.RUnlock()
	return ab.engine.BestBids(count)
}

// BestAsks answers on the calling goroutine against the current book state.
func (ab *AsyncOrderBook) BestAsks(count int) []models.Order {
	ab.bookMu.RLock()
	defer ab.bookMu.RUnlock()
	return ab.engine.BestAsks(count)
}
