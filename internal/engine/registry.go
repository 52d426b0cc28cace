package engine

import (
	"github.com/Haoran-Jie/ReadyTraderGo-CrazyThursday/internal/domain"
	"github.com/Haoran-Jie/ReadyTraderGo-CrazyThursday/pkg/quant"
	"github.com/Haoran-Jie/ReadyTraderGo-CrazyThursday/pkg/safe"
)

// OrderRegistry is the authoritative set of the engine's own orders, keyed
// by identity, plus the active-order queue: the insertion-ordered
// identities of live primary quotes. Hedge orders never enter the queue
// because they never rest.
//
// Identities moved to a terminal state stay in the map so that duplicate
// terminal notifications are recognized and ignored; an identity is never
// reused and never re-enters the active set.
type OrderRegistry struct {
	orders map[uint64]*domain.Order
	active []uint64
}

func NewOrderRegistry() *OrderRegistry {
	return &OrderRegistry{
		orders: make(map[uint64]*domain.Order),
	}
}

// Register adds a new order in pending-submit state.
func (r *OrderRegistry) Register(o *domain.Order) {
	r.orders[o.ID] = o
	if !o.Hedge {
		r.active = append(r.active, o.ID)
	}
}

// Get returns the order for an identity, if tracked.
func (r *OrderRegistry) Get(id uint64) (*domain.Order, bool) {
	o, ok := r.orders[id]
	return o, ok
}

// OnStatus applies a lifecycle notification. Unknown identities and
// orders already terminal are no-ops, which makes duplicate terminal
// deliveries idempotent. Returns the order and whether anything changed.
func (r *OrderRegistry) OnStatus(id uint64, fill, remaining quant.Lots, fees quant.Cents) (*domain.Order, bool) {
	o, ok := r.orders[id]
	if !ok || o.State.Terminal() {
		return o, false
	}

	o.Fees = fees
	if remaining == 0 {
		if fill > 0 {
			o.State = domain.Filled
		} else {
			o.State = domain.Cancelled
		}
		o.Remaining = 0
		r.removeActive(id)
		return o, true
	}

	o.Remaining = remaining
	if fill > 0 {
		o.State = domain.PartiallyFilled
	} else if o.State == domain.PendingSubmit {
		o.State = domain.Resting
	}
	return o, true
}

// OnError treats an order-specific exchange error as an immediate
// terminal transition. Identity zero is a session-level error and a
// no-op here.
func (r *OrderRegistry) OnError(id uint64) (*domain.Order, bool) {
	if id == 0 {
		return nil, false
	}
	o, ok := r.orders[id]
	if !ok || o.State.Terminal() {
		return o, false
	}
	o.State = domain.Errored
	o.Remaining = 0
	r.removeActive(id)
	return o, true
}

// Evict removes an identity from the active queue once a cancel has been
// requested for it. The order itself stays tracked until the venue
// confirms zero remaining volume: a cancel is best effort only.
func (r *OrderRegistry) Evict(id uint64) {
	r.removeActive(id)
}

// ActiveIDs returns the active queue oldest first. The caller must not
// mutate the returned slice.
func (r *OrderRegistry) ActiveIDs() []uint64 {
	return r.active
}

func (r *OrderRegistry) ActiveCount() int {
	return len(r.active)
}

// CapOverflow returns the oldest identities that must be cancelled for
// the active queue to respect max. First phase of the two-phase eviction;
// the caller applies the cancellations.
func (r *OrderRegistry) CapOverflow(max int) []uint64 {
	over := len(r.active) - max
	if over <= 0 {
		return nil
	}
	out := make([]uint64, over)
	copy(out, r.active[:over])
	return out
}

// ExposureEvictions returns the identities to cancel so that projected
// exposure on both sides stays within the position limit. Projected long
// exposure is the position plus the signed volume sum of active buy
// orders; short is the mirror. Trimming is newest first so the oldest
// quotes, most likely nearest the front of the venue queue, survive.
func (r *OrderRegistry) ExposureEvictions(position, limit quant.Lots) []uint64 {
	var longSum, shortSum int64
	for _, id := range r.active {
		o := r.orders[id]
		signed := int64(o.SignedLots())
		if signed > 0 {
			longSum = safe.SafeAdd(longSum, signed)
		} else {
			shortSum = safe.SafeAdd(shortSum, signed)
		}
	}

	var out []uint64
	for i := len(r.active) - 1; i >= 0; i-- {
		o := r.orders[r.active[i]]
		signed := int64(o.SignedLots())
		if signed > 0 && longSum+int64(position) > int64(limit) {
			out = append(out, o.ID)
			longSum -= signed
		}
		if signed < 0 && shortSum+int64(position) < -int64(limit) {
			out = append(out, o.ID)
			shortSum -= signed
		}
	}
	return out
}

// ProjectedLong returns position plus the signed buy-side volume of the
// active queue; ProjectedShort the sell-side analogue. Always recomputed
// from the registry, never cached, so it cannot drift from the ledger.
func (r *OrderRegistry) ProjectedLong(position quant.Lots) quant.Lots {
	sum := int64(position)
	for _, id := range r.active {
		if o := r.orders[id]; o.Side == domain.Buy {
			sum = safe.SafeAdd(sum, int64(o.SignedLots()))
		}
	}
	return quant.Lots(sum)
}

func (r *OrderRegistry) ProjectedShort(position quant.Lots) quant.Lots {
	sum := int64(position)
	for _, id := range r.active {
		if o := r.orders[id]; o.Side == domain.Sell {
			sum = safe.SafeAdd(sum, int64(o.SignedLots()))
		}
	}
	return quant.Lots(sum)
}

func (r *OrderRegistry) removeActive(id uint64) {
	for i, v := range r.active {
		if v == id {
			r.active = append(r.active[:i], r.active[i+1:]...)
			return
		}
	}
}
