package strategy

import (
	"github.com/Haoran-Jie/ReadyTraderGo-CrazyThursday/internal/domain"
	"github.com/Haoran-Jie/ReadyTraderGo-CrazyThursday/pkg/quant"
)

// Hedger flattens the exposure created by a primary fill with one
// aggressively priced fill-and-kill order on the correlated leg: a bought
// lot is sold at the lowest valid tick, a sold lot is bought back at the
// highest, so the hedge executes immediately or not at all and never
// rests. Hedge orders are exempt from the resting-order cap but consume
// rate budget at issuance like any other action.
type Hedger struct{}

func NewHedger() *Hedger {
	return &Hedger{}
}

// OnFill returns the offsetting action for a primary fill, or false when
// the filled order is itself a hedge or the fill volume is not positive.
func (h *Hedger) OnFill(o domain.Order, lots quant.Lots) (Action, bool) {
	if o.Hedge || lots <= 0 {
		return Action{}, false
	}

	a := Action{
		Kind:       ActionInsert,
		Instrument: o.Instrument.Other(),
		Trigger:    o.Trigger,
		Volume:     lots,
		TIF:        domain.FillAndKill,
		Hedge:      true,
	}
	if o.Side == domain.Buy {
		a.Side = domain.Sell
		a.Price = quant.MinBidNearestTick
	} else {
		a.Side = domain.Buy
		a.Price = quant.MaxAskNearestTick
	}
	return a, true
}
