package domain

import (
	"testing"
)

func TestCashAccountFills(t *testing.T) {
	a := NewCashAccount()

	// Buy 10 lots at $100.00: cash out 100000 cents.
	a.OnFill(Buy, 10000, 10)
	if got := a.CashDollars().StringFixed(2); got != "-1000.00" {
		t.Errorf("cash after buy = %s, want -1000.00", got)
	}

	// Sell 10 lots at $101.00: cash in 101000 cents.
	a.OnFill(Sell, 10100, 10)
	if got := a.CashDollars().StringFixed(2); got != "100.00" {
		t.Errorf("cash after round trip = %s, want 100.00", got)
	}
	if a.Fills() != 2 {
		t.Errorf("fills = %d, want 2", a.Fills())
	}
}

func TestCashAccountFees(t *testing.T) {
	a := NewCashAccount()
	a.OnFill(Sell, 10000, 10)

	a.AddFees(250)
	a.AddFees(-50) // maker rebate
	if got := a.FeesDollars().StringFixed(2); got != "2.00" {
		t.Errorf("fees = %s, want 2.00", got)
	}
	if got := a.NetDollars().StringFixed(2); got != "998.00" {
		t.Errorf("net = %s, want 998.00", got)
	}
}
