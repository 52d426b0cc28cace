package domain

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Haoran-Jie/ReadyTraderGo-CrazyThursday/pkg/quant"
	"github.com/Haoran-Jie/ReadyTraderGo-CrazyThursday/pkg/safe"
)

// CashAccount accumulates realized cash flow and fees from confirmed fills.
// The hot path stays int64 cents; decimal is used only when rendering
// dollars for logs and reports.
type CashAccount struct {
	cashCents quant.Cents
	feesCents quant.Cents
	fills     int64
}

func NewCashAccount() *CashAccount {
	return &CashAccount{}
}

// OnFill settles one fill: buys pay price*lots, sells receive it.
func (a *CashAccount) OnFill(side Side, price quant.Cents, lots quant.Lots) {
	flow := safe.SafeMul(int64(price), int64(lots))
	a.cashCents = quant.Cents(safe.SafeSub(int64(a.cashCents), side.Sign()*flow))
	a.fills++
}

// AddFees records a fee delta reported by an order status update. Maker
// rebates arrive as negative fees.
func (a *CashAccount) AddFees(delta quant.Cents) {
	a.feesCents = quant.Cents(safe.SafeAdd(int64(a.feesCents), int64(delta)))
}

func (a *CashAccount) Fills() int64 { return a.fills }

// CashDollars returns the realized cash flow in dollars.
func (a *CashAccount) CashDollars() decimal.Decimal {
	return decimal.New(int64(a.cashCents), -2)
}

// FeesDollars returns cumulative fees in dollars.
func (a *CashAccount) FeesDollars() decimal.Decimal {
	return decimal.New(int64(a.feesCents), -2)
}

// NetDollars is cash flow minus fees.
func (a *CashAccount) NetDollars() decimal.Decimal {
	return a.CashDollars().Sub(a.FeesDollars())
}

func (a *CashAccount) String() string {
	return fmt.Sprintf("cash=%s fees=%s fills=%d",
		a.CashDollars().StringFixed(2), a.FeesDollars().StringFixed(2), a.fills)
}
