package domain

import (
	"github.com/Haoran-Jie/ReadyTraderGo-CrazyThursday/pkg/quant"
)

// BookTop is the latest best bid/ask of one instrument. A zero price on a
// side means no liquidity on that side and must never be quoted against.
type BookTop struct {
	Bid    quant.Cents
	Ask    quant.Cents
	BidVol quant.Lots
	AskVol quant.Lots
	Seq    uint64
}

// MarketView holds the latest BookTop per instrument. No history is kept;
// an update is pure state replacement. It is owned by the dispatcher
// goroutine and needs no locking.
type MarketView struct {
	tops [2]BookTop
	seen [2]bool
}

func NewMarketView() *MarketView {
	return &MarketView{}
}

// Update overwrites the stored top for the instrument. Updates carrying a
// sequence number older than the stored one are ignored: the feed may
// redeliver after a reconnect.
func (m *MarketView) Update(inst Instrument, top BookTop) bool {
	if m.seen[inst] && top.Seq < m.tops[inst].Seq {
		return false
	}
	m.tops[inst] = top
	m.seen[inst] = true
	return true
}

// Top returns the latest stored top; the zero value if never populated.
func (m *MarketView) Top(inst Instrument) BookTop {
	return m.tops[inst]
}

// Seen reports whether the instrument has ever been updated.
func (m *MarketView) Seen(inst Instrument) bool {
	return m.seen[inst]
}

func (m *MarketView) BestBid(inst Instrument) quant.Cents    { return m.tops[inst].Bid }
func (m *MarketView) BestAsk(inst Instrument) quant.Cents    { return m.tops[inst].Ask }
func (m *MarketView) BestBidVolume(inst Instrument) quant.Lots { return m.tops[inst].BidVol }
func (m *MarketView) BestAskVolume(inst Instrument) quant.Lots { return m.tops[inst].AskVol }
