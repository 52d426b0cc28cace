package event

import (
	"github.com/Haoran-Jie/ReadyTraderGo-CrazyThursday/internal/domain"
	"github.com/Haoran-Jie/ReadyTraderGo-CrazyThursday/pkg/quant"
)

// Type defines the type of event.
type Type uint16

const (
	EvOrderBook Type = iota + 1
	EvTradeTicks
	EvOrderFilled
	EvHedgeFilled
	EvOrderStatus
	EvOrderError
)

// Event is the interface for all dispatcher events.
type Event interface {
	GetSeq() uint64
	GetTs() int64
	GetType() Type
}

// BaseEvent contains common fields for all events.
type BaseEvent struct {
	Seq uint64 `json:"seq"`
	Ts  int64  `json:"ts"` // unix microseconds
}

func (e BaseEvent) GetSeq() uint64 { return e.Seq }
func (e BaseEvent) GetTs() int64   { return e.Ts }

// OrderBookEvent reports the five best levels of one instrument's book.
// Sides with fewer than five levels are padded with zeros.
type OrderBookEvent struct {
	BaseEvent
	Instrument domain.Instrument
	AskPrices  [quant.TopLevelCount]quant.Cents
	AskVolumes [quant.TopLevelCount]quant.Lots
	BidPrices  [quant.TopLevelCount]quant.Cents
	BidVolumes [quant.TopLevelCount]quant.Lots
}

func (e OrderBookEvent) GetType() Type { return EvOrderBook }

// Top extracts the best bid/ask quadruple from the level arrays.
func (e OrderBookEvent) Top() domain.BookTop {
	bid, bidVol := quant.BestBid(e.BidPrices, e.BidVolumes)
	ask, askVol := quant.BestAsk(e.AskPrices, e.AskVolumes)
	return domain.BookTop{Bid: bid, Ask: ask, BidVol: bidVol, AskVol: askVol, Seq: e.Seq}
}

// TradeTicksEvent reports recent trading activity. Observed and logged,
// never decisioned on.
type TradeTicksEvent struct {
	BaseEvent
	Instrument domain.Instrument
	AskPrices  [quant.TopLevelCount]quant.Cents
	AskVolumes [quant.TopLevelCount]quant.Lots
	BidPrices  [quant.TopLevelCount]quant.Cents
	BidVolumes [quant.TopLevelCount]quant.Lots
}

func (e TradeTicksEvent) GetType() Type { return EvTradeTicks }

// OrderFilledEvent reports a partial or full fill of an engine order.
type OrderFilledEvent struct {
	BaseEvent
	OrderID uint64
	Price   quant.Cents
	Volume  quant.Lots
}

func (e OrderFilledEvent) GetType() Type { return EvOrderFilled }

// HedgeFilledEvent reports a fill of a hedge order on the correlated leg.
type HedgeFilledEvent struct {
	BaseEvent
	OrderID uint64
	Price   quant.Cents // average fill price, may improve on the limit
	Volume  quant.Lots
}

func (e HedgeFilledEvent) GetType() Type { return EvHedgeFilled }

// OrderStatusEvent reports the lifecycle state of an engine order.
// RemainingVolume zero means the order is done: filled if FillVolume is
// positive, cancelled otherwise.
type OrderStatusEvent struct {
	BaseEvent
	OrderID         uint64
	FillVolume      quant.Lots
	RemainingVolume quant.Lots
	Fees            quant.Cents
}

func (e OrderStatusEvent) GetType() Type { return EvOrderStatus }

// OrderErrorEvent reports an exchange error. OrderID zero is a session
// level error that touches no order state.
type OrderErrorEvent struct {
	BaseEvent
	OrderID uint64
	Message string
}

func (e OrderErrorEvent) GetType() Type { return EvOrderError }
