package strategy

import (
	"testing"

	"github.com/Haoran-Jie/ReadyTraderGo-CrazyThursday/internal/domain"
	"github.com/Haoran-Jie/ReadyTraderGo-CrazyThursday/pkg/quant"
)

func TestHedgerOffsetsBuyFill(t *testing.T) {
	h := NewHedger()
	o := domain.Order{
		ID: 1, Side: domain.Buy, Instrument: domain.ETF, Trigger: domain.ETF,
		Price: 9800, Volume: 30,
	}

	a, ok := h.OnFill(o, 30)
	if !ok {
		t.Fatal("OnFill returned no action for a primary fill")
	}
	if a.Side != domain.Sell || a.Instrument != domain.Future {
		t.Errorf("hedge = %v %v, want SELL FUTURE", a.Side, a.Instrument)
	}
	if a.Price != quant.MinBidNearestTick {
		t.Errorf("hedge price = %d, want %d", a.Price, quant.MinBidNearestTick)
	}
	if a.Volume != 30 || a.TIF != domain.FillAndKill || !a.Hedge {
		t.Errorf("hedge = %+v, want 30 lots FILL_AND_KILL hedge", a)
	}
}

func TestHedgerOffsetsSellFill(t *testing.T) {
	h := NewHedger()
	o := domain.Order{
		ID: 2, Side: domain.Sell, Instrument: domain.ETF, Trigger: domain.Future,
		Price: 10100, Volume: 10,
	}

	a, ok := h.OnFill(o, 4)
	if !ok {
		t.Fatal("OnFill returned no action for a partial primary fill")
	}
	if a.Side != domain.Buy || a.Instrument != domain.Future {
		t.Errorf("hedge = %v %v, want BUY FUTURE", a.Side, a.Instrument)
	}
	if a.Price != quant.MaxAskNearestTick {
		t.Errorf("hedge price = %d, want %d", a.Price, quant.MaxAskNearestTick)
	}
	// Hedge volume follows the fill, not the order.
	if a.Volume != 4 {
		t.Errorf("hedge volume = %d, want 4", a.Volume)
	}
}

func TestHedgerSkipsHedgeFillsAndEmptyFills(t *testing.T) {
	h := NewHedger()

	hedge := domain.Order{ID: 3, Side: domain.Sell, Instrument: domain.Future, Hedge: true, Volume: 10}
	if _, ok := h.OnFill(hedge, 10); ok {
		t.Error("a hedge fill produced another hedge")
	}

	primary := domain.Order{ID: 4, Side: domain.Buy, Instrument: domain.ETF, Volume: 10}
	if _, ok := h.OnFill(primary, 0); ok {
		t.Error("a zero-volume fill produced a hedge")
	}
}
