package quant

import "fmt"

// Cents represents a price in whole cents. All engine arithmetic is int64;
// conversion to display units happens only at the reporting boundary.
type Cents int64

// Lots represents an order or fill volume in whole lots.
type Lots int64

const (
	// TickSizeInCents is the minimum price increment of both instruments.
	TickSizeInCents Cents = 100

	// MinimumBid and MaximumAsk bound the valid price range of the venue.
	MinimumBid Cents = 1
	MaximumAsk Cents = 2147483647

	// TopLevelCount is the number of book levels reported per side.
	TopLevelCount = 5
)

// MinBidNearestTick is the lowest valid bid price rounded up to a tick.
// MaxAskNearestTick is the highest valid ask price rounded down to a tick.
// Hedge orders are priced at these extremes so they execute immediately.
const (
	MinBidNearestTick = (MinimumBid + TickSizeInCents) / TickSizeInCents * TickSizeInCents
	MaxAskNearestTick = MaximumAsk / TickSizeInCents * TickSizeInCents
)

func (c Cents) String() string {
	return fmt.Sprintf("$%d.%02d", c/100, abs64(int64(c))%100)
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// BestBid returns the highest bid price across the reported levels and the
// volume at that level. Empty levels are reported as zero and are skipped
// naturally by the maximum.
func BestBid(prices [TopLevelCount]Cents, volumes [TopLevelCount]Lots) (Cents, Lots) {
	best := 0
	for i := 1; i < TopLevelCount; i++ {
		if prices[i] > prices[best] {
			best = i
		}
	}
	if prices[best] == 0 {
		return 0, 0
	}
	return prices[best], volumes[best]
}

// BestAsk returns the minimum ask price across the reported levels and the
// volume at that level. A book with fewer than TopLevelCount ask levels pads
// with zeros, so the minimum is zero: the side is treated as having no
// tradeable liquidity, which is the conservative reading.
func BestAsk(prices [TopLevelCount]Cents, volumes [TopLevelCount]Lots) (Cents, Lots) {
	best := 0
	for i := 1; i < TopLevelCount; i++ {
		if prices[i] < prices[best] {
			best = i
		}
	}
	if prices[best] == 0 {
		return 0, 0
	}
	return prices[best], volumes[best]
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi Lots) Lots {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// MinLots returns the smaller of two lot counts.
func MinLots(a, b Lots) Lots {
	if a < b {
		return a
	}
	return b
}
