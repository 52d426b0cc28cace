package execution

import (
	"context"

	"github.com/Haoran-Jie/ReadyTraderGo-CrazyThursday/internal/domain"
	"github.com/Haoran-Jie/ReadyTraderGo-CrazyThursday/internal/infra"
)

// LiveExecution writes order frames over the exchange websocket session.
// Confirmations come back through the same session as events.
type LiveExecution struct {
	session *infra.FeedSession
}

func NewLiveExecution(session *infra.FeedSession) *LiveExecution {
	return &LiveExecution{session: session}
}

func (e *LiveExecution) SubmitOrder(ctx context.Context, o domain.Order) error {
	return e.session.SendOrder(o)
}

func (e *LiveExecution) SubmitCancel(ctx context.Context, orderID uint64) error {
	return e.session.SendCancel(orderID)
}

func (e *LiveExecution) SubmitHedge(ctx context.Context, o domain.Order) error {
	return e.session.SendHedge(o)
}
