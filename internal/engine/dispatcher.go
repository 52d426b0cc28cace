package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/Haoran-Jie/ReadyTraderGo-CrazyThursday/internal/domain"
	"github.com/Haoran-Jie/ReadyTraderGo-CrazyThursday/internal/event"
	"github.com/Haoran-Jie/ReadyTraderGo-CrazyThursday/internal/execution"
	"github.com/Haoran-Jie/ReadyTraderGo-CrazyThursday/internal/infra"
	"github.com/Haoran-Jie/ReadyTraderGo-CrazyThursday/internal/strategy"
	"github.com/Haoran-Jie/ReadyTraderGo-CrazyThursday/pkg/quant"
)

// Dispatcher is the single entry point for all exchange notifications. It
// owns every piece of mutable engine state (market view, order registry,
// position ledger, rate window, cash account) and processes events one
// at a time, fully, in arrival order. Nothing else may mutate that state;
// all callbacks run to completion without blocking.
type Dispatcher struct {
	inbox chan event.Event

	view     *domain.MarketView
	ledger   *domain.PositionLedger
	registry *OrderRegistry
	limiter  *infra.WindowRateLimiter
	breaker  *infra.CircuitBreaker
	account  *domain.CashAccount

	strat  strategy.Strategy
	hedger *strategy.Hedger
	exec   execution.ExecutionClient

	maxActive int
	nextID    uint64

	ctx context.Context
	now func() time.Time
}

// NewDispatcher wires the engine from configuration. Constants are fixed
// here and never reloaded.
func NewDispatcher(cfg *infra.Config, strat strategy.Strategy, exec execution.ExecutionClient, inbox chan event.Event) *Dispatcher {
	t := &cfg.Trading
	return &Dispatcher{
		inbox:    inbox,
		view:     domain.NewMarketView(),
		ledger:   domain.NewPositionLedger(quant.Lots(t.PositionLimit)),
		registry: NewOrderRegistry(),
		limiter: infra.NewWindowRateLimiter(
			time.Duration(t.IntervalSeconds)*time.Second, t.MaxActionsPerWindow),
		breaker:   infra.NewCircuitBreaker(infra.DefaultCircuitBreakerConfig("order-submit")),
		account:   domain.NewCashAccount(),
		strat:     strat,
		hedger:    strategy.NewHedger(),
		exec:      exec,
		maxActive: t.MaxActiveOrders,
		ctx:       context.Background(),
		now:       time.Now,
	}
}

// Inbox returns the event channel the host delivers notifications on.
func (d *Dispatcher) Inbox() chan<- event.Event {
	return d.inbox
}

// Position returns the current net position in lots.
func (d *Dispatcher) Position() quant.Lots { return d.ledger.Lots() }

// Account returns the cash account for reporting.
func (d *Dispatcher) Account() *domain.CashAccount { return d.account }

// Registry exposes the order registry for inspection.
func (d *Dispatcher) Registry() *OrderRegistry { return d.registry }

// Run starts the event loop. Must run in exactly one goroutine.
func (d *Dispatcher) Run(ctx context.Context) {
	d.ctx = ctx
	slog.Info("dispatcher started")

	defer func() {
		if r := recover(); r != nil {
			slog.Error("dispatcher panic", slog.Any("panic", r))
			d.DumpState("panic_dump.json")
			panic(fmt.Sprintf("HALTED: %v", r))
		}
	}()

	for {
		select {
		case <-ctx.Done():
			slog.Info("dispatcher stopping", slog.String("account", d.account.String()))
			return
		case ev := <-d.inbox:
			d.Process(ev)
		}
	}
}

// Process applies one event. Exported so that tests and replayers drive
// the engine synchronously through the same path as Run.
func (d *Dispatcher) Process(ev event.Event) {
	switch e := ev.(type) {
	case event.OrderBookEvent:
		d.handleOrderBook(e)
	case event.TradeTicksEvent:
		slog.Debug("trade ticks",
			slog.String("instrument", e.Instrument.String()),
			slog.Uint64("seq", e.Seq))
	case event.OrderFilledEvent:
		d.handleFilled(e)
	case event.HedgeFilledEvent:
		d.handleHedgeFilled(e)
	case event.OrderStatusEvent:
		d.handleStatus(e)
	case event.OrderErrorEvent:
		d.handleError(e)
	default:
		slog.Warn("unknown event type", slog.Any("type", ev.GetType()))
	}
}

func (d *Dispatcher) handleOrderBook(e event.OrderBookEvent) {
	top := e.Top()
	if !d.view.Update(e.Instrument, top) {
		slog.Debug("stale book update ignored",
			slog.String("instrument", e.Instrument.String()), slog.Uint64("seq", e.Seq))
		return
	}

	if obs, ok := d.exec.(execution.BookObserver); ok {
		obs.ObserveBook(e.Instrument, top)
	}

	d.runCycle(e.Instrument)
}

// runCycle is one full evaluation: prune the window, ask the strategy,
// apply its actions, then run the mandatory risk passes. The risk passes
// run unconditionally every cycle, even with an exhausted rate budget.
func (d *Dispatcher) runCycle(trigger domain.Instrument) {
	now := d.now()
	d.limiter.Prune(now)

	budget := d.limiter.Budget()
	if !d.breaker.Allow(now) {
		budget = 0
	}

	actions := d.strat.OnOrderBook(strategy.Cycle{
		Trigger:  trigger,
		View:     d.view,
		Position: d.ledger.Lots(),
		Limit:    d.ledger.Limit(),
		Budget:   budget,
	})

	for _, a := range actions {
		switch a.Kind {
		case strategy.ActionInsert:
			// Strategies respect the budget they were given; this guard
			// holds when they do not.
			if d.limiter.Budget() > 0 {
				d.applyInsert(a)
			}
		case strategy.ActionCancel:
			d.applyCancel(a.CancelID)
		}
	}

	d.enforceRestingCap()
	d.enforceExposure()
}

// applyInsert allocates an identity, registers the order, consumes rate
// budget and submits. Submission failures are folded into the normal
// error path so registry and queue stay consistent.
func (d *Dispatcher) applyInsert(a strategy.Action) {
	d.nextID++
	o := &domain.Order{
		ID:         d.nextID,
		Side:       a.Side,
		Instrument: a.Instrument,
		Trigger:    a.Trigger,
		Price:      a.Price,
		Volume:     a.Volume,
		Remaining:  a.Volume,
		TIF:        a.TIF,
		Hedge:      a.Hedge,
		State:      domain.PendingSubmit,
	}
	d.registry.Register(o)
	d.limiter.Record(d.now())
	d.strat.OnOrderUpdate(*o)

	var err error
	if o.Hedge {
		err = d.exec.SubmitHedge(d.ctx, *o)
	} else {
		err = d.exec.SubmitOrder(d.ctx, *o)
	}
	if err != nil {
		slog.Error("order submission failed",
			slog.Uint64("id", o.ID), slog.Any("error", err))
		if failed, changed := d.registry.OnError(o.ID); changed {
			d.breaker.RecordFailure(d.now())
			d.strat.OnOrderUpdate(*failed)
		}
	}
}

// applyCancel evicts the identity from the active queue, consumes rate
// budget and fires the cancel. The order remains tracked until the venue
// confirms zero remaining volume.
func (d *Dispatcher) applyCancel(id uint64) {
	o, ok := d.registry.Get(id)
	if !ok || !o.Live() {
		return
	}
	d.registry.Evict(id)
	d.limiter.Record(d.now())
	if err := d.exec.SubmitCancel(d.ctx, id); err != nil {
		slog.Error("cancel submission failed",
			slog.Uint64("id", id), slog.Any("error", err))
	}
}

// enforceRestingCap trims the active queue to the configured maximum,
// oldest first.
func (d *Dispatcher) enforceRestingCap() {
	for _, id := range d.registry.CapOverflow(d.maxActive) {
		slog.Info("resting cap eviction", slog.Uint64("id", id))
		d.applyCancel(id)
	}
}

// enforceExposure cancels resting orders whose side would push projected
// exposure past the position limit, newest first. Runs every cycle
// regardless of the resting cap pass.
func (d *Dispatcher) enforceExposure() {
	for _, id := range d.registry.ExposureEvictions(d.ledger.Lots(), d.ledger.Limit()) {
		slog.Info("exposure eviction", slog.Uint64("id", id))
		d.applyCancel(id)
	}
}

func (d *Dispatcher) handleFilled(e event.OrderFilledEvent) {
	o, ok := d.registry.Get(e.OrderID)
	if !ok {
		slog.Warn("fill for unknown order ignored", slog.Uint64("id", e.OrderID))
		return
	}

	slog.Info("order filled",
		slog.Uint64("id", e.OrderID),
		slog.String("side", o.Side.String()),
		slog.Int64("price", int64(e.Price)),
		slog.Int64("volume", int64(e.Volume)))

	d.account.OnFill(o.Side, e.Price, e.Volume)
	if o.Hedge {
		return
	}

	d.ledger.OnFill(o.Side, e.Volume)
	d.breaker.RecordSuccess()

	if a, ok := d.hedger.OnFill(*o, e.Volume); ok {
		d.applyInsert(a)
	}
}

func (d *Dispatcher) handleHedgeFilled(e event.HedgeFilledEvent) {
	slog.Info("hedge filled",
		slog.Uint64("id", e.OrderID),
		slog.Int64("avg_price", int64(e.Price)),
		slog.Int64("volume", int64(e.Volume)))

	if o, ok := d.registry.Get(e.OrderID); ok {
		d.account.OnFill(o.Side, e.Price, e.Volume)
	}
}

func (d *Dispatcher) handleStatus(e event.OrderStatusEvent) {
	o, ok := d.registry.Get(e.OrderID)
	if !ok {
		// Status for an identity the engine no longer tracks: already
		// evicted or never ours. Must be a no-op, not a crash.
		return
	}

	prevFees := o.Fees
	changed := false
	o, changed = d.registry.OnStatus(e.OrderID, e.FillVolume, e.RemainingVolume, e.Fees)
	if !changed {
		return
	}

	if delta := e.Fees - prevFees; delta != 0 {
		d.account.AddFees(delta)
	}
	d.strat.OnOrderUpdate(*o)
}

func (d *Dispatcher) handleError(e event.OrderErrorEvent) {
	if e.OrderID == 0 {
		slog.Warn("session error", slog.String("message", e.Message))
		return
	}

	slog.Warn("order error",
		slog.Uint64("id", e.OrderID), slog.String("message", e.Message))

	if o, changed := d.registry.OnError(e.OrderID); changed {
		d.breaker.RecordFailure(d.now())
		d.strat.OnOrderUpdate(*o)
	}
}

// DumpState writes the engine state to a file for post-mortem analysis.
func (d *Dispatcher) DumpState(filename string) {
	slog.Info("dumping engine state", slog.String("file", filename))

	data := struct {
		Position    int64  `json:"position"`
		NextID      uint64 `json:"next_id"`
		ActiveCount int    `json:"active_count"`
		WindowCount int    `json:"window_count"`
		Account     string `json:"account"`
	}{
		Position:    int64(d.ledger.Lots()),
		NextID:      d.nextID,
		ActiveCount: d.registry.ActiveCount(),
		WindowCount: d.limiter.Len(),
		Account:     d.account.String(),
	}

	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		slog.Error("failed to marshal state", slog.Any("error", err))
		return
	}
	if err := os.WriteFile(filename, b, 0644); err != nil {
		slog.Error("failed to write state dump", slog.Any("error", err))
	}
}

// SetClock overrides the time source. Used by tests to drive the rate
// window deterministically.
func (d *Dispatcher) SetClock(now func() time.Time) {
	d.now = now
}
