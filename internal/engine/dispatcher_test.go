package engine

import (
	"testing"
	"time"

	"github.com/Haoran-Jie/ReadyTraderGo-CrazyThursday/internal/domain"
	"github.com/Haoran-Jie/ReadyTraderGo-CrazyThursday/internal/event"
	"github.com/Haoran-Jie/ReadyTraderGo-CrazyThursday/internal/execution"
	"github.com/Haoran-Jie/ReadyTraderGo-CrazyThursday/internal/infra"
	"github.com/Haoran-Jie/ReadyTraderGo-CrazyThursday/internal/strategy"
	"github.com/Haoran-Jie/ReadyTraderGo-CrazyThursday/pkg/quant"
)

func newTestDispatcher(t *testing.T, maxActions int) (*Dispatcher, *execution.MockExecution) {
	t.Helper()
	cfg := infra.DefaultConfig()
	cfg.Trading.Mode = "MOCK"
	cfg.Trading.MaxActionsPerWindow = maxActions

	strat := strategy.NewSpreadQuoter(strategy.SpreadQuoterConfig{
		LotSize:          quant.Lots(cfg.Trading.LotSize),
		TickSize:         quant.Cents(cfg.Trading.TickSizeInCents),
		QuoteOffsetTicks: cfg.Trading.QuoteOffsetTicks,
	})
	mock := execution.NewMockExecution()
	d := NewDispatcher(cfg, strat, mock, make(chan event.Event, 64))
	d.SetClock(func() time.Time {
		return time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	})
	return d, mock
}

// bookEv builds a five-level book event with synthetic depth behind the
// given top. Zero bid or ask leaves that side empty.
func bookEv(inst domain.Instrument, seq uint64, bid, ask quant.Cents, bidVol, askVol quant.Lots) event.OrderBookEvent {
	e := event.OrderBookEvent{
		BaseEvent:  event.BaseEvent{Seq: seq},
		Instrument: inst,
	}
	for i := 0; i < quant.TopLevelCount; i++ {
		step := quant.Cents(i) * 100
		if bid != 0 {
			e.BidPrices[i] = bid - step
			e.BidVolumes[i] = bidVol
		}
		if ask != 0 {
			e.AskPrices[i] = ask + step
			e.AskVolumes[i] = askVol
		}
	}
	return e
}

func TestDispatcherBuysWhenBooksCross(t *testing.T) {
	d, mock := newTestDispatcher(t, 50)

	d.Process(bookEv(domain.Future, 1, 10000, 10100, 50, 50))
	if len(mock.Orders) != 0 {
		t.Fatalf("order submitted before both legs known: %d", len(mock.Orders))
	}

	// ETF ask 9800 undercuts the future bid 10000.
	d.Process(bookEv(domain.ETF, 1, 9700, 9800, 50, 50))

	if len(mock.Orders) != 1 {
		t.Fatalf("submitted orders = %d, want 1", len(mock.Orders))
	}
	o := mock.Orders[0]
	if o.Side != domain.Buy || o.Instrument != domain.ETF {
		t.Errorf("order = %v %v, want BUY ETF", o.Side, o.Instrument)
	}
	if o.TIF != domain.GoodForDay {
		t.Errorf("tif = %v, want GOOD_FOR_DAY", o.TIF)
	}
	// Half the 100-lot capacity is reserved for the hedge leg: 50 lots.
	if o.Volume != 50 {
		t.Errorf("volume = %d, want 50", o.Volume)
	}
	if o.ID != 1 {
		t.Errorf("id = %d, want 1", o.ID)
	}
}

func TestDispatcherNoSignalOnEmptySide(t *testing.T) {
	d, mock := newTestDispatcher(t, 50)

	d.Process(bookEv(domain.Future, 1, 10000, 10100, 50, 50))
	// ETF ask side empty: zero is no liquidity, never a cheap price.
	d.Process(bookEv(domain.ETF, 1, 9700, 0, 50, 0))

	if len(mock.Orders) != 0 {
		t.Errorf("order submitted against an empty ask side: %+v", mock.Orders)
	}
}

func TestDispatcherIgnoresStaleBook(t *testing.T) {
	d, mock := newTestDispatcher(t, 50)

	d.Process(bookEv(domain.Future, 5, 10000, 10100, 50, 50))
	d.Process(bookEv(domain.ETF, 5, 10000, 10100, 50, 50))
	before := len(mock.Orders)

	// Redelivered older ETF book with crossing prices must not trade.
	d.Process(bookEv(domain.ETF, 4, 9700, 9800, 50, 50))
	if len(mock.Orders) != before {
		t.Errorf("stale book produced orders: %d -> %d", before, len(mock.Orders))
	}
}

func TestDispatcherFillHedgesAndTracksPosition(t *testing.T) {
	d, mock := newTestDispatcher(t, 50)

	d.Process(bookEv(domain.Future, 1, 10000, 10100, 50, 50))
	d.Process(bookEv(domain.ETF, 1, 9700, 9800, 50, 50))
	if len(mock.Orders) != 1 {
		t.Fatalf("setup: orders = %d, want 1", len(mock.Orders))
	}
	id := mock.Orders[0].ID

	d.Process(event.OrderFilledEvent{BaseEvent: event.BaseEvent{Seq: 2}, OrderID: id, Price: 9800, Volume: 50})

	if got := d.Position(); got != 50 {
		t.Errorf("position after buy fill = %d, want 50", got)
	}
	if len(mock.Hedges) != 1 {
		t.Fatalf("hedges = %d, want 1", len(mock.Hedges))
	}
	h := mock.Hedges[0]
	if h.Side != domain.Sell || h.Instrument != domain.Future {
		t.Errorf("hedge = %v %v, want SELL FUTURE", h.Side, h.Instrument)
	}
	if h.Volume != 50 {
		t.Errorf("hedge volume = %d, want 50", h.Volume)
	}
	if h.Price != quant.MinBidNearestTick {
		t.Errorf("hedge price = %d, want %d", h.Price, quant.MinBidNearestTick)
	}
	if h.TIF != domain.FillAndKill || !h.Hedge {
		t.Errorf("hedge tif=%v hedge=%v, want FILL_AND_KILL true", h.TIF, h.Hedge)
	}

	// A hedge fill settles cash but never moves the primary position.
	d.Process(event.HedgeFilledEvent{BaseEvent: event.BaseEvent{Seq: 3}, OrderID: h.ID, Price: 9900, Volume: 50})
	if got := d.Position(); got != 50 {
		t.Errorf("position after hedge fill = %d, want 50", got)
	}
}

func TestDispatcherZeroBudgetBlocksInsertsNotEvictions(t *testing.T) {
	d, mock := newTestDispatcher(t, 2)

	d.Process(bookEv(domain.Future, 1, 10000, 10100, 50, 50))
	d.Process(bookEv(domain.ETF, 1, 9700, 9800, 20, 20))
	if len(mock.Orders) != 1 {
		t.Fatalf("setup: orders = %d, want 1", len(mock.Orders))
	}
	id := mock.Orders[0].ID

	// Fill consumes the second and last budget slot on the hedge.
	d.Process(event.OrderFilledEvent{BaseEvent: event.BaseEvent{Seq: 2}, OrderID: id, Price: 9800, Volume: 20})
	if len(mock.Hedges) != 1 {
		t.Fatalf("setup: hedges = %d, want 1", len(mock.Hedges))
	}

	// Window exhausted: a crossing book must not produce a new insert.
	d.Process(bookEv(domain.ETF, 2, 9700, 9800, 20, 20))
	if len(mock.Orders) != 1 {
		t.Errorf("insert issued with zero budget: orders = %d", len(mock.Orders))
	}
}

func TestDispatcherExposureEvictionRunsWithZeroBudget(t *testing.T) {
	d, mock := newTestDispatcher(t, 1)

	d.Process(bookEv(domain.Future, 1, 10000, 10100, 50, 50))
	d.Process(bookEv(domain.ETF, 1, 9700, 9800, 50, 50))
	if len(mock.Orders) != 1 {
		t.Fatalf("setup: orders = %d, want 1", len(mock.Orders))
	}
	id := mock.Orders[0].ID

	// The 50-lot buy rests while fills land elsewhere: position 51 plus
	// the resting 50 projects past the 100 limit.
	d.Process(event.OrderFilledEvent{BaseEvent: event.BaseEvent{Seq: 2}, OrderID: id, Price: 9800, Volume: 51})

	d.Process(bookEv(domain.ETF, 2, 9700, 9800, 50, 50))

	found := false
	for _, c := range mock.Cancels {
		if c == id {
			found = true
		}
	}
	if !found {
		t.Errorf("over-exposed resting buy not cancelled: cancels = %v", mock.Cancels)
	}
	// The eviction must not have been starved by the exhausted window.
	if len(mock.Orders) != 1 {
		t.Errorf("unexpected inserts with zero budget: %d", len(mock.Orders))
	}
}

func TestDispatcherRestingCapEviction(t *testing.T) {
	d, mock := newTestDispatcher(t, 50)

	d.Process(bookEv(domain.Future, 1, 10000, 10100, 50, 50))

	// Each crossing ETF book adds one quote; past eight the oldest goes.
	seq := uint64(1)
	for i := 0; i < 9; i++ {
		d.Process(bookEv(domain.ETF, seq, 9700, 9800, 10, 10))
		seq++
	}

	if d.Registry().ActiveCount() > 8 {
		t.Errorf("active orders = %d, want <= 8", d.Registry().ActiveCount())
	}
	if len(mock.Cancels) == 0 {
		t.Fatal("no cap eviction issued")
	}
	if mock.Cancels[0] != mock.Orders[0].ID {
		t.Errorf("cap eviction cancelled %d, want oldest %d", mock.Cancels[0], mock.Orders[0].ID)
	}
}

func TestDispatcherDuplicateTerminalStatusIdempotent(t *testing.T) {
	d, mock := newTestDispatcher(t, 50)

	d.Process(bookEv(domain.Future, 1, 10000, 10100, 50, 50))
	d.Process(bookEv(domain.ETF, 1, 9700, 9800, 50, 50))
	id := mock.Orders[0].ID

	st := event.OrderStatusEvent{
		BaseEvent: event.BaseEvent{Seq: 2},
		OrderID:   id, FillVolume: 50, RemainingVolume: 0, Fees: 300,
	}
	d.Process(st)
	d.Process(st)

	if got := d.Account().FeesDollars().StringFixed(2); got != "3.00" {
		t.Errorf("fees after duplicate status = %s, want 3.00", got)
	}
	o, _ := d.Registry().Get(id)
	if o.State != domain.Filled {
		t.Errorf("state after duplicate status = %v, want FILLED", o.State)
	}
}

func TestDispatcherStatusForUnknownOrderIsNoop(t *testing.T) {
	d, _ := newTestDispatcher(t, 50)

	d.Process(event.OrderStatusEvent{BaseEvent: event.BaseEvent{Seq: 1}, OrderID: 999, FillVolume: 1, RemainingVolume: 0})
	d.Process(event.OrderFilledEvent{BaseEvent: event.BaseEvent{Seq: 2}, OrderID: 999, Price: 100, Volume: 1})

	if d.Position() != 0 {
		t.Errorf("unknown-order events moved position to %d", d.Position())
	}
}

func TestDispatcherOrderErrorIsTerminal(t *testing.T) {
	d, mock := newTestDispatcher(t, 50)

	d.Process(bookEv(domain.Future, 1, 10000, 10100, 50, 50))
	d.Process(bookEv(domain.ETF, 1, 9700, 9800, 50, 50))
	id := mock.Orders[0].ID

	d.Process(event.OrderErrorEvent{BaseEvent: event.BaseEvent{Seq: 2}, OrderID: id, Message: "invalid volume"})

	o, _ := d.Registry().Get(id)
	if o.State != domain.Errored {
		t.Errorf("state after error = %v, want ERRORED", o.State)
	}
	if d.Registry().ActiveCount() != 0 {
		t.Errorf("errored order still active")
	}

	// Session-level errors touch nothing.
	d.Process(event.OrderErrorEvent{BaseEvent: event.BaseEvent{Seq: 3}, OrderID: 0, Message: "throttled"})
	if d.Position() != 0 {
		t.Errorf("session error moved position")
	}
}

func TestDispatcherSubmitFailureFoldsIntoErrorPath(t *testing.T) {
	d, mock := newTestDispatcher(t, 50)

	d.Process(bookEv(domain.Future, 1, 10000, 10100, 50, 50))

	mock.Err = errSubmit
	d.Process(bookEv(domain.ETF, 1, 9700, 9800, 50, 50))
	mock.Err = nil

	if d.Registry().ActiveCount() != 0 {
		t.Errorf("failed submission left an active order")
	}
	o, ok := d.Registry().Get(1)
	if !ok || o.State != domain.Errored {
		t.Errorf("failed submission state = %v ok=%v, want ERRORED", o.State, ok)
	}
}

var errSubmit = errFixed("submit refused")

type errFixed string

func (e errFixed) Error() string { return string(e) }
