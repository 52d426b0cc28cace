package execution

import (
	"context"

	"github.com/Haoran-Jie/ReadyTraderGo-CrazyThursday/internal/domain"
)

// ExecutionClient carries the engine's order actions to the venue. All
// calls are issued from the dispatcher goroutine and must not block on
// confirmations: acknowledgements, fills and errors come back as events.
type ExecutionClient interface {
	// SubmitOrder sends a new limit order.
	SubmitOrder(ctx context.Context, o domain.Order) error

	// SubmitCancel requests cancellation of a resting order. Best effort:
	// the order is not gone until a status reports zero remaining volume.
	SubmitCancel(ctx context.Context, orderID uint64) error

	// SubmitHedge sends an immediate, non-resting offsetting order.
	SubmitHedge(ctx context.Context, o domain.Order) error
}

// BookObserver is implemented by clients that need to track the market to
// simulate matching (the paper venue). The dispatcher feeds it every
// accepted book top.
type BookObserver interface {
	ObserveBook(inst domain.Instrument, top domain.BookTop)
}
