package domain

import (
	"github.com/Haoran-Jie/ReadyTraderGo-CrazyThursday/pkg/quant"
)

// TimeInForce controls how long an order remains eligible to match.
type TimeInForce uint8

const (
	GoodForDay TimeInForce = iota
	FillAndKill
)

func (t TimeInForce) String() string {
	if t == GoodForDay {
		return "GOOD_FOR_DAY"
	}
	return "FILL_AND_KILL"
}

// OrderState is the lifecycle state of an engine order.
type OrderState uint8

const (
	PendingSubmit OrderState = iota
	Resting
	PartiallyFilled
	Filled
	Cancelled
	Errored
)

func (s OrderState) String() string {
	switch s {
	case PendingSubmit:
		return "PENDING_SUBMIT"
	case Resting:
		return "RESTING"
	case PartiallyFilled:
		return "PARTIALLY_FILLED"
	case Filled:
		return "FILLED"
	case Cancelled:
		return "CANCELLED"
	case Errored:
		return "ERRORED"
	default:
		return "UNKNOWN"
	}
}

// Terminal reports whether the state can never change again. A terminal
// identity is never reused and never re-enters the active set.
func (s OrderState) Terminal() bool {
	return s == Filled || s == Cancelled || s == Errored
}

// Order is one order owned by the engine. Identities are allocated by the
// dispatcher, monotonically increasing and unique for the engine lifetime.
type Order struct {
	ID         uint64
	Side       Side
	Instrument Instrument // leg the order trades
	Trigger    Instrument // leg whose update produced it
	Price      quant.Cents
	Volume     quant.Lots // submitted volume, always positive
	Remaining  quant.Lots
	Fees       quant.Cents // total fees reported so far, negative = rebate
	TIF        TimeInForce
	Hedge      bool
	State      OrderState
}

// SignedLots returns the submitted volume signed by side, positive for
// buys and negative for sells.
func (o *Order) SignedLots() quant.Lots {
	return quant.Lots(o.Side.Sign() * int64(o.Volume))
}

// Live reports whether the order may still trade.
func (o *Order) Live() bool {
	return !o.State.Terminal()
}
