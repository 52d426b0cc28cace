package strategy

import (
	"github.com/Haoran-Jie/ReadyTraderGo-CrazyThursday/internal/domain"
	"github.com/Haoran-Jie/ReadyTraderGo-CrazyThursday/pkg/quant"
	"github.com/Haoran-Jie/ReadyTraderGo-CrazyThursday/pkg/safe"
)

// SpreadQuoterConfig fixes the quoting constants at construction.
type SpreadQuoterConfig struct {
	LotSize          quant.Lots
	TickSize         quant.Cents
	QuoteOffsetTicks int64
}

// SpreadQuoter quotes the ETF against the future whenever the two books
// cross: if the ETF best ask is below the future best bid the ETF is
// cheap and worth buying; if the ETF best bid is above the future best
// ask it is rich and worth selling. Orders rest good-for-day and are
// sized by available top-of-book volume, remaining position capacity and
// remaining rate budget.
type SpreadQuoter struct {
	cfg SpreadQuoterConfig

	// pending quote prices, tagged by the trigger that derived them so a
	// future-triggered computation cannot clobber an ETF-triggered one.
	pending pendingQuote
}

// pendingQuote records the bid/ask quote prices derived on the last cycle
// together with the instrument whose update derived them.
type pendingQuote struct {
	trigger domain.Instrument
	bid     quant.Cents
	ask     quant.Cents
	valid   bool
}

// NewSpreadQuoter creates the sized good-for-day quoter.
func NewSpreadQuoter(cfg SpreadQuoterConfig) *SpreadQuoter {
	if cfg.LotSize <= 0 || cfg.TickSize <= 0 {
		panic("SpreadQuoter: lot size and tick size must be positive")
	}
	return &SpreadQuoter{cfg: cfg}
}

// OnOrderBook runs one evaluation cycle.
func (s *SpreadQuoter) OnOrderBook(c Cycle) []Action {
	fut := c.View.Top(domain.Future)
	etf := c.View.Top(domain.ETF)

	// No signal until the other leg has a known tradeable price.
	switch c.Trigger {
	case domain.Future:
		if etf.Bid == 0 {
			return nil
		}
	case domain.ETF:
		if fut.Bid == 0 {
			return nil
		}
	}

	s.deriveQuotes(c)
	if !s.pending.valid {
		return nil
	}

	budget := c.Budget
	var actions []Action

	// Buy ETF when its best ask undercuts the future best bid.
	if s.pending.bid != 0 && c.Position < c.Limit &&
		etf.Ask != 0 && fut.Bid != 0 && etf.Ask < fut.Bid {
		lots := s.sizeOrder(etf.AskVol, c.Limit-c.Position, budget)
		if lots >= 1 {
			actions = append(actions, Action{
				Kind:       ActionInsert,
				Side:       domain.Buy,
				Instrument: domain.ETF,
				Trigger:    c.Trigger,
				Price:      s.pending.bid,
				Volume:     s.cfg.LotSize * lots,
				TIF:        domain.GoodForDay,
			})
			budget--
		}
	}

	// Sell ETF when its best bid exceeds the future best ask.
	if s.pending.ask != 0 && c.Position > -c.Limit &&
		etf.Bid != 0 && fut.Ask != 0 && etf.Bid > fut.Ask {
		lots := s.sizeOrder(etf.BidVol, c.Position+c.Limit, budget)
		if lots >= 1 {
			actions = append(actions, Action{
				Kind:       ActionInsert,
				Side:       domain.Sell,
				Instrument: domain.ETF,
				Trigger:    c.Trigger,
				Price:      s.pending.ask,
				Volume:     s.cfg.LotSize * lots,
				TIF:        domain.GoodForDay,
			})
		}
	}

	return actions
}

// deriveQuotes computes the quote prices for this cycle. Future-triggered
// cycles quote off the future's own best prices shifted by the position
// based tick adjustment; ETF-triggered cycles quote off the ETF book
// widened by a fixed tick offset, a wider margin because the ETF is the
// less liquid leg.
func (s *SpreadQuoter) deriveQuotes(c Cycle) {
	top := c.View.Top(c.Trigger)
	s.pending = pendingQuote{trigger: c.Trigger}

	switch c.Trigger {
	case domain.Future:
		adj := quant.Cents(-safe.FloorDiv(int64(c.Position), int64(s.cfg.LotSize))) * s.cfg.TickSize
		if top.Bid != 0 {
			s.pending.bid = top.Bid + adj
		}
		if top.Ask != 0 {
			s.pending.ask = top.Ask + adj
		}
	case domain.ETF:
		offset := quant.Cents(s.cfg.QuoteOffsetTicks) * s.cfg.TickSize
		if top.Ask != 0 {
			s.pending.bid = top.Ask + offset
		}
		if top.Bid != 0 {
			s.pending.ask = top.Bid - offset
		}
	}
	s.pending.valid = s.pending.bid != 0 || s.pending.ask != 0
}

// sizeOrder returns the lot multiple for a new quote:
// clamp(available/lot, 0, min(capacity/(2*lot), budget)). Half the
// remaining position capacity is held back because the hedge for any
// fill has not landed yet.
func (s *SpreadQuoter) sizeOrder(available, capacity quant.Lots, budget int) quant.Lots {
	if budget < 0 {
		budget = 0
	}
	lot := int64(s.cfg.LotSize)
	cap_ := quant.Lots(safe.FloorDiv(int64(capacity), 2*lot))
	want := quant.Lots(safe.FloorDiv(int64(available), lot))
	return quant.Clamp(want, 0, quant.MinLots(cap_, quant.Lots(budget)))
}

// OnOrderUpdate is unused: the quoter carries no per-order state; resting
// inventory control lives in the engine's risk passes.
func (s *SpreadQuoter) OnOrderUpdate(o domain.Order) {}
