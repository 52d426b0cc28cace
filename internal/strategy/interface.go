package strategy

import (
	"github.com/Haoran-Jie/ReadyTraderGo-CrazyThursday/internal/domain"
	"github.com/Haoran-Jie/ReadyTraderGo-CrazyThursday/pkg/quant"
)

// Cycle is the read-only view of engine state handed to a strategy for one
// evaluation, run once per order book callback after the market view has
// been updated for the triggering instrument.
type Cycle struct {
	Trigger  domain.Instrument
	View     *domain.MarketView
	Position quant.Lots
	Limit    quant.Lots
	// Budget is the remaining submitted-action budget of the rate window.
	// Strategies must not emit more inserts than Budget admits; cancels
	// are never suppressed by it.
	Budget int
}

// ActionKind discriminates strategy requests.
type ActionKind uint8

const (
	ActionInsert ActionKind = iota
	ActionCancel
)

// Action is one order action requested by a strategy or the hedger. The
// dispatcher allocates identities, registers orders, consumes rate budget
// and performs the actual submission.
type Action struct {
	Kind       ActionKind
	Side       domain.Side
	Instrument domain.Instrument
	Trigger    domain.Instrument
	Price      quant.Cents
	Volume     quant.Lots
	TIF        domain.TimeInForce
	Hedge      bool
	CancelID   uint64 // set for ActionCancel
}

// Strategy is the decision core invoked from the dispatcher goroutine.
// Strategies hold their own state, perform no I/O and never mutate engine
// state directly.
type Strategy interface {
	// OnOrderBook returns the order actions for this evaluation cycle.
	OnOrderBook(c Cycle) []Action

	// OnOrderUpdate is called for every lifecycle change of an engine
	// order, including the initial pending-submit registration.
	OnOrderUpdate(o domain.Order)
}
