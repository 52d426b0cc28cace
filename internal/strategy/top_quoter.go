package strategy

import (
	"github.com/Haoran-Jie/ReadyTraderGo-CrazyThursday/internal/domain"
	"github.com/Haoran-Jie/ReadyTraderGo-CrazyThursday/pkg/quant"
	"github.com/Haoran-Jie/ReadyTraderGo-CrazyThursday/pkg/safe"
)

// TopQuoterConfig fixes the quoting constants at construction.
type TopQuoterConfig struct {
	LotSize  quant.Lots
	TickSize quant.Cents
}

// TopQuoter is the single-quote fill-and-kill variant: it keeps at most
// one live bid and one live ask, re-quoting whenever the position-adjusted
// top of the triggering book moves away from the working price. The
// spread gate is the same cross-book comparison as SpreadQuoter; sizing
// is a single lot and the position guard keeps a one-lot reserve band.
type TopQuoter struct {
	cfg TopQuoterConfig

	bidID    uint64
	askID    uint64
	bidPrice quant.Cents
	askPrice quant.Cents
}

// NewTopQuoter creates the single-quote fill-and-kill strategy.
func NewTopQuoter(cfg TopQuoterConfig) *TopQuoter {
	if cfg.LotSize <= 0 || cfg.TickSize <= 0 {
		panic("TopQuoter: lot size and tick size must be positive")
	}
	return &TopQuoter{cfg: cfg}
}

func (s *TopQuoter) OnOrderBook(c Cycle) []Action {
	fut := c.View.Top(domain.Future)
	etf := c.View.Top(domain.ETF)

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

	top := c.View.Top(c.Trigger)
	adj := quant.Cents(-safe.FloorDiv(int64(c.Position), int64(s.cfg.LotSize))) * s.cfg.TickSize
	var newBid, newAsk quant.Cents
	if top.Bid != 0 {
		newBid = top.Bid + adj
	}
	if top.Ask != 0 {
		newAsk = top.Ask + adj
	}

	var actions []Action

	// Re-quote: cancel the working order when the derived price moved.
	if s.bidID != 0 && newBid != 0 && newBid != s.bidPrice {
		actions = append(actions, Action{Kind: ActionCancel, CancelID: s.bidID})
		s.bidID = 0
	}
	if s.askID != 0 && newAsk != 0 && newAsk != s.askPrice {
		actions = append(actions, Action{Kind: ActionCancel, CancelID: s.askID})
		s.askID = 0
	}

	budget := c.Budget - len(actions)
	reserve := s.cfg.LotSize

	if s.bidID == 0 && newBid != 0 && budget > 0 &&
		c.Position < c.Limit-reserve &&
		etf.Ask != 0 && fut.Bid != 0 && etf.Ask < fut.Bid {
		actions = append(actions, Action{
			Kind:       ActionInsert,
			Side:       domain.Buy,
			Instrument: domain.ETF,
			Trigger:    c.Trigger,
			Price:      newBid,
			Volume:     s.cfg.LotSize,
			TIF:        domain.FillAndKill,
		})
		budget--
	}

	if s.askID == 0 && newAsk != 0 && budget > 0 &&
		c.Position > -c.Limit+reserve &&
		etf.Bid != 0 && fut.Ask != 0 && etf.Bid > fut.Ask {
		actions = append(actions, Action{
			Kind:       ActionInsert,
			Side:       domain.Sell,
			Instrument: domain.ETF,
			Trigger:    c.Trigger,
			Price:      newAsk,
			Volume:     s.cfg.LotSize,
			TIF:        domain.FillAndKill,
		})
	}

	return actions
}

// OnOrderUpdate tracks the identities the dispatcher assigned to this
// strategy's inserts and clears them on terminal transitions.
func (s *TopQuoter) OnOrderUpdate(o domain.Order) {
	if o.Hedge {
		return
	}
	switch {
	case o.State == domain.PendingSubmit:
		if o.Side == domain.Buy {
			s.bidID = o.ID
			s.bidPrice = o.Price
		} else {
			s.askID = o.ID
			s.askPrice = o.Price
		}
	case o.State.Terminal():
		if o.ID == s.bidID {
			s.bidID = 0
		}
		if o.ID == s.askID {
			s.askID = 0
		}
	}
}
