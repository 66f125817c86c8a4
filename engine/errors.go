package engine

import (
	"errors"
	"fmt"

	"github.com/Sharply-Tech/metch-orderbook/models"
)

var (
	// ErrOrderNotFound is returned by Update and Cancel when the order id does
	// not reference a live order. It is a recoverable caller outcome.
	ErrOrderNotFound = errors.New("order not found")

	// ErrInvalidPrice rejects non-positive prices before any state changes.
	ErrInvalidPrice = errors.New("price must be positive")

	// ErrInvalidSize rejects non-positive sizes before any state changes.
	ErrInvalidSize = errors.New("size must be positive")

	// ErrSizeBelowFilled rejects updates that would shrink an order's size
	// below its already-filled quantity.
	ErrSizeBelowFilled = errors.New("size cannot be reduced below filled quantity")

	// ErrNotRunning is returned when commands are submitted to a stopped book.
	ErrNotRunning = errors.New("order book is not running")
)

// InvariantViolationError signals that the matcher proposed an incompatible
// pair. It can only happen if the priority ordering or the scan logic is
// broken, so it is a fatal internal defect, never a caller error.
type InvariantViolationError struct {
	Reason string
	Bid    models.Order
	Ask    models.Order
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf(
		"matching invariant violated: %s (bid id=%d client=%d price=%s, ask id=%d client=%d price=%s)",
		e.Reason,
		e.Bid.ID, e.Bid.ClientID, e.Bid.Price,
		e.Ask.ID, e.Ask.ClientID, e.Ask.Price,
	)
}

// IsInvariantViolation reports whether err wraps an InvariantViolationError.
func IsInvariantViolation(err error) bool {
	var ive *InvariantViolationError
	return errors.As(err, &ive)
}
