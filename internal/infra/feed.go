package infra

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Haoran-Jie/ReadyTraderGo-CrazyThursday/internal/domain"
	"github.com/Haoran-Jie/ReadyTraderGo-CrazyThursday/internal/event"
	"github.com/Haoran-Jie/ReadyTraderGo-CrazyThursday/pkg/quant"
)

// feedFrame is the flat JSON envelope of every message on the exchange
// session, inbound and outbound. Unused fields stay zero.
type feedFrame struct {
	Type            string        `json:"type"`
	Instrument      int           `json:"instrument,omitempty"`
	Sequence        uint64        `json:"sequence,omitempty"`
	AskPrices       []int64       `json:"ask_prices,omitempty"`
	AskVolumes      []int64       `json:"ask_volumes,omitempty"`
	BidPrices       []int64       `json:"bid_prices,omitempty"`
	BidVolumes      []int64       `json:"bid_volumes,omitempty"`
	OrderID         uint64        `json:"order_id,omitempty"`
	Side            string        `json:"side,omitempty"`
	Price           int64         `json:"price,omitempty"`
	Volume          int64         `json:"volume,omitempty"`
	FillVolume      int64         `json:"fill_volume,omitempty"`
	RemainingVolume int64         `json:"remaining_volume"`
	Fees            int64         `json:"fees,omitempty"`
	TimeInForce     string        `json:"time_in_force,omitempty"`
	Message         string        `json:"message,omitempty"`
}

// FeedSession decodes exchange frames into dispatcher events and encodes
// engine order actions into outbound frames. One session carries both
// market data and the order channel.
type FeedSession struct {
	url    string
	inbox  chan<- event.Event
	worker *WSWorker
}

// NewFeedSession creates a session delivering events to inbox.
func NewFeedSession(cfg *Config, inbox chan<- event.Event) *FeedSession {
	s := &FeedSession{
		url:   cfg.Feed.URL,
		inbox: inbox,
	}
	s.worker = NewWSWorker(s)
	s.worker.ReadTimeout = time.Duration(cfg.Feed.ReadTimeoutSec) * time.Second
	s.worker.PingInterval = time.Duration(cfg.Feed.PingIntervalSec) * time.Second
	s.worker.HandshakeTimeout = time.Duration(cfg.Feed.HandshakeTimeoutSec) * time.Second
	return s
}

// Start connects the session. Reconnects are handled by the worker.
func (s *FeedSession) Start(ctx context.Context) { s.worker.Start(ctx) }

// Stop closes the session.
func (s *FeedSession) Stop() { s.worker.Stop() }

func (s *FeedSession) URL() string { return s.url }
func (s *FeedSession) ID() string  { return "exchange-feed" }

func (s *FeedSession) OnConnect(ctx context.Context, conn *websocket.Conn) error {
	return nil
}

// OnMessage decodes one inbound frame and forwards the event. Unknown
// frame types are logged and dropped; the engine must keep running.
func (s *FeedSession) OnMessage(ctx context.Context, msg []byte) {
	var f feedFrame
	if err := json.Unmarshal(msg, &f); err != nil {
		slog.Warn("feed frame decode failed", "err", err)
		return
	}

	base := event.BaseEvent{Seq: f.Sequence, Ts: time.Now().UnixMicro()}

	var ev event.Event
	switch f.Type {
	case "order_book":
		e := event.OrderBookEvent{BaseEvent: base, Instrument: instrumentOf(f.Instrument)}
		copyLevels(&e.AskPrices, &e.AskVolumes, f.AskPrices, f.AskVolumes)
		copyLevels(&e.BidPrices, &e.BidVolumes, f.BidPrices, f.BidVolumes)
		ev = e
	case "trade_ticks":
		e := event.TradeTicksEvent{BaseEvent: base, Instrument: instrumentOf(f.Instrument)}
		copyLevels(&e.AskPrices, &e.AskVolumes, f.AskPrices, f.AskVolumes)
		copyLevels(&e.BidPrices, &e.BidVolumes, f.BidPrices, f.BidVolumes)
		ev = e
	case "order_filled":
		ev = event.OrderFilledEvent{BaseEvent: base, OrderID: f.OrderID,
			Price: quant.Cents(f.Price), Volume: quant.Lots(f.Volume)}
	case "hedge_filled":
		ev = event.HedgeFilledEvent{BaseEvent: base, OrderID: f.OrderID,
			Price: quant.Cents(f.Price), Volume: quant.Lots(f.Volume)}
	case "order_status":
		ev = event.OrderStatusEvent{BaseEvent: base, OrderID: f.OrderID,
			FillVolume:      quant.Lots(f.FillVolume),
			RemainingVolume: quant.Lots(f.RemainingVolume),
			Fees:            quant.Cents(f.Fees)}
	case "error":
		ev = event.OrderErrorEvent{BaseEvent: base, OrderID: f.OrderID, Message: f.Message}
	default:
		slog.Warn("unknown feed frame", "type", f.Type)
		return
	}

	select {
	case s.inbox <- ev:
	case <-ctx.Done():
	}
}

// SendOrder encodes an insert request on the session.
func (s *FeedSession) SendOrder(o domain.Order) error {
	return s.send(feedFrame{
		Type:        "insert_order",
		OrderID:     o.ID,
		Side:        o.Side.String(),
		Price:       int64(o.Price),
		Volume:      int64(o.Volume),
		TimeInForce: o.TIF.String(),
	})
}

// SendCancel encodes a cancel request on the session.
func (s *FeedSession) SendCancel(orderID uint64) error {
	return s.send(feedFrame{Type: "cancel_order", OrderID: orderID})
}

// SendHedge encodes a hedge request on the session.
func (s *FeedSession) SendHedge(o domain.Order) error {
	return s.send(feedFrame{
		Type:    "hedge_order",
		OrderID: o.ID,
		Side:    o.Side.String(),
		Price:   int64(o.Price),
		Volume:  int64(o.Volume),
	})
}

func (s *FeedSession) send(f feedFrame) error {
	data, err := json.Marshal(f)
	if err != nil {
		return err
	}
	return s.worker.Write(websocket.TextMessage, data)
}

func instrumentOf(n int) domain.Instrument {
	if n == 0 {
		return domain.Future
	}
	return domain.ETF
}

func copyLevels(prices *[quant.TopLevelCount]quant.Cents, volumes *[quant.TopLevelCount]quant.Lots, ps, vs []int64) {
	for i := 0; i < quant.TopLevelCount && i < len(ps); i++ {
		prices[i] = quant.Cents(ps[i])
	}
	for i := 0; i < quant.TopLevelCount && i < len(vs); i++ {
		volumes[i] = quant.Lots(vs[i])
	}
}
