package execution

import (
	"context"
	"log/slog"

	"github.com/Haoran-Jie/ReadyTraderGo-CrazyThursday/internal/domain"
)

// MockExecution logs and records every request. Safe default mode and the
// test double for dispatcher scenarios.
type MockExecution struct {
	Orders  []domain.Order
	Cancels []uint64
	Hedges  []domain.Order

	// Err, when set, is returned by every call to exercise failure paths.
	Err error
}

func NewMockExecution() *MockExecution {
	return &MockExecution{}
}

func (m *MockExecution) SubmitOrder(ctx context.Context, o domain.Order) error {
	if m.Err != nil {
		return m.Err
	}
	m.Orders = append(m.Orders, o)
	slog.Info("MOCK: submit order",
		slog.Uint64("id", o.ID),
		slog.String("side", o.Side.String()),
		slog.String("instrument", o.Instrument.String()),
		slog.Int64("price", int64(o.Price)),
		slog.Int64("volume", int64(o.Volume)),
		slog.String("tif", o.TIF.String()),
	)
	return nil
}

func (m *MockExecution) SubmitCancel(ctx context.Context, orderID uint64) error {
	if m.Err != nil {
		return m.Err
	}
	m.Cancels = append(m.Cancels, orderID)
	slog.Info("MOCK: cancel order", slog.Uint64("id", orderID))
	return nil
}

func (m *MockExecution) SubmitHedge(ctx context.Context, o domain.Order) error {
	if m.Err != nil {
		return m.Err
	}
	m.Hedges = append(m.Hedges, o)
	slog.Info("MOCK: hedge order",
		slog.Uint64("id", o.ID),
		slog.String("side", o.Side.String()),
		slog.Int64("price", int64(o.Price)),
		slog.Int64("volume", int64(o.Volume)),
	)
	return nil
}
