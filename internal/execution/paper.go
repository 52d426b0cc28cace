package execution

import (
	"context"
	"log/slog"
	"time"

	"github.com/Haoran-Jie/ReadyTraderGo-CrazyThursday/internal/domain"
	"github.com/Haoran-Jie/ReadyTraderGo-CrazyThursday/internal/event"
	"github.com/Haoran-Jie/ReadyTraderGo-CrazyThursday/pkg/quant"
)

// PaperExchange is a minimal simulated venue for dry runs. It acks
// inserts, rests good-for-day orders, matches them against the observed
// top of book and emits the resulting fill/status events back into the
// dispatcher inbox. Matching is all-or-nothing at the order's limit
// price; it is a smoke-test venue, not a backtester.
type PaperExchange struct {
	inbox chan<- event.Event
	seq   uint64

	books   [2]domain.BookTop
	resting map[uint64]*paperOrder
}

type paperOrder struct {
	order  domain.Order
	filled quant.Lots
}

func NewPaperExchange(inbox chan<- event.Event) *PaperExchange {
	return &PaperExchange{
		inbox:   inbox,
		resting: make(map[uint64]*paperOrder),
	}
}

// ObserveBook records the latest top and matches resting orders that now
// cross it.
func (p *PaperExchange) ObserveBook(inst domain.Instrument, top domain.BookTop) {
	p.books[inst] = top

	for id, po := range p.resting {
		if po.order.Instrument != inst {
			continue
		}
		if p.crosses(po.order) {
			delete(p.resting, id)
			p.fill(po.order)
		}
	}
}

func (p *PaperExchange) SubmitOrder(ctx context.Context, o domain.Order) error {
	if o.TIF == domain.FillAndKill {
		if p.crosses(o) {
			p.fill(o)
		} else {
			p.emit(event.OrderStatusEvent{BaseEvent: p.base(), OrderID: o.ID})
		}
		return nil
	}

	// Good-for-day: ack as resting, then match immediately if crossing.
	if p.crosses(o) {
		p.fill(o)
		return nil
	}
	p.resting[o.ID] = &paperOrder{order: o}
	p.emit(event.OrderStatusEvent{BaseEvent: p.base(), OrderID: o.ID,
		RemainingVolume: o.Volume})
	return nil
}

func (p *PaperExchange) SubmitCancel(ctx context.Context, orderID uint64) error {
	po, ok := p.resting[orderID]
	if !ok {
		// Already gone; the venue reports nothing for unknown cancels.
		return nil
	}
	delete(p.resting, orderID)
	p.emit(event.OrderStatusEvent{BaseEvent: p.base(), OrderID: orderID,
		FillVolume: po.filled})
	return nil
}

func (p *PaperExchange) SubmitHedge(ctx context.Context, o domain.Order) error {
	top := p.books[o.Instrument]
	var px quant.Cents
	if o.Side == domain.Buy {
		px = top.Ask
	} else {
		px = top.Bid
	}
	if px == 0 {
		// No liquidity: fill-and-kill dies.
		p.emit(event.OrderStatusEvent{BaseEvent: p.base(), OrderID: o.ID})
		slog.Warn("paper: hedge killed, no liquidity",
			slog.Uint64("id", o.ID), slog.String("instrument", o.Instrument.String()))
		return nil
	}
	p.emit(event.HedgeFilledEvent{BaseEvent: p.base(), OrderID: o.ID,
		Price: px, Volume: o.Volume})
	p.emit(event.OrderStatusEvent{BaseEvent: p.base(), OrderID: o.ID,
		FillVolume: o.Volume})
	return nil
}

// crosses reports whether the order would trade against the stored top of
// its instrument.
func (p *PaperExchange) crosses(o domain.Order) bool {
	top := p.books[o.Instrument]
	if o.Side == domain.Buy {
		return top.Ask != 0 && o.Price >= top.Ask
	}
	return top.Bid != 0 && o.Price <= top.Bid
}

func (p *PaperExchange) fill(o domain.Order) {
	p.emit(event.OrderFilledEvent{BaseEvent: p.base(), OrderID: o.ID,
		Price: o.Price, Volume: o.Volume})
	p.emit(event.OrderStatusEvent{BaseEvent: p.base(), OrderID: o.ID,
		FillVolume: o.Volume})
}

func (p *PaperExchange) base() event.BaseEvent {
	p.seq++
	return event.BaseEvent{Seq: p.seq, Ts: time.Now().UnixMicro()}
}

func (p *PaperExchange) emit(ev event.Event) {
	select {
	case p.inbox <- ev:
	default:
		slog.Error("paper: inbox full, event dropped", slog.Any("type", ev.GetType()))
	}
}
