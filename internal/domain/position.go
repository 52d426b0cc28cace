package domain

import (
	"github.com/Haoran-Jie/ReadyTraderGo-CrazyThursday/pkg/quant"
	"github.com/Haoran-Jie/ReadyTraderGo-CrazyThursday/pkg/safe"
)

// PositionLedger tracks the net signed position of the quoted instrument in
// lot units. It mutates only on confirmed fills, never on submission, so
// projected exposure is always derived from the order registry rather than
// cached here.
type PositionLedger struct {
	lots  quant.Lots
	limit quant.Lots
}

// NewPositionLedger creates a flat ledger bounded to [-limit, +limit].
func NewPositionLedger(limit quant.Lots) *PositionLedger {
	if limit <= 0 {
		panic("PositionLedger: limit must be positive")
	}
	return &PositionLedger{limit: limit}
}

// OnFill applies a confirmed fill: buys add, sells subtract.
func (p *PositionLedger) OnFill(side Side, lots quant.Lots) {
	p.lots = quant.Lots(safe.SafeAdd(int64(p.lots), side.Sign()*int64(lots)))
}

// Lots returns the current net position.
func (p *PositionLedger) Lots() quant.Lots {
	return p.lots
}

// Limit returns the configured position limit.
func (p *PositionLedger) Limit() quant.Lots {
	return p.limit
}

// WithinLimit reports whether |position| <= limit.
func (p *PositionLedger) WithinLimit() bool {
	return p.lots >= -p.limit && p.lots <= p.limit
}

// LongCapacity is how many more lots may be bought before the limit.
func (p *PositionLedger) LongCapacity() quant.Lots {
	return p.limit - p.lots
}

// ShortCapacity is how many more lots may be sold before the limit.
func (p *PositionLedger) ShortCapacity() quant.Lots {
	return p.lots + p.limit
}

func (p *PositionLedger) IsLong() bool  { return p.lots > 0 }
func (p *PositionLedger) IsShort() bool { return p.lots < 0 }
