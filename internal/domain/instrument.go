package domain

// Instrument identifies one of the two correlated legs.
type Instrument uint8

const (
	Future Instrument = iota
	ETF
)

func (i Instrument) String() string {
	if i == Future {
		return "FUTURE"
	}
	return "ETF"
}

// Other returns the correlated leg, used to route hedge orders.
func (i Instrument) Other() Instrument {
	if i == Future {
		return ETF
	}
	return Future
}

// Side is the direction of an order.
type Side uint8

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	if s == Buy {
		return "BUY"
	}
	return "SELL"
}

// Sign returns +1 for Buy and -1 for Sell, used for exposure netting.
func (s Side) Sign() int64 {
	if s == Buy {
		return 1
	}
	return -1
}

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == Buy {
		return Sell
	}
	return Buy
}
