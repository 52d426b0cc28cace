package infra

import (
	"log/slog"
	"time"
)

// BreakerState represents the circuit breaker state.
type BreakerState int

const (
	BreakerClosed   BreakerState = iota // normal operation
	BreakerOpen                         // failing, reject new submissions
	BreakerHalfOpen                     // probing recovery
)

func (s BreakerState) String() string {
	switch s {
	case BreakerClosed:
		return "CLOSED"
	case BreakerOpen:
		return "OPEN"
	case BreakerHalfOpen:
		return "HALF_OPEN"
	default:
		return "UNKNOWN"
	}
}

// CircuitBreaker gates new order submissions after repeated exchange
// errors. Risk-control cancels bypass it: stopping risk reduction because
// the venue is rejecting us would be exactly backwards.
//
// Owned by the dispatcher goroutine; no locking.
type CircuitBreaker struct {
	name string

	state        BreakerState
	failureCount int
	successCount int
	lastFailure  time.Time

	failureThreshold int
	successThreshold int
	cooldown         time.Duration
}

// CircuitBreakerConfig holds construction parameters.
type CircuitBreakerConfig struct {
	Name             string
	FailureThreshold int
	SuccessThreshold int
	Cooldown         time.Duration
}

// DefaultCircuitBreakerConfig returns sensible defaults for the order
// submission path.
func DefaultCircuitBreakerConfig(name string) CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Name:             name,
		FailureThreshold: 5,
		SuccessThreshold: 2,
		Cooldown:         10 * time.Second,
	}
}

// NewCircuitBreaker creates a closed breaker.
func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	return &CircuitBreaker{
		name:             cfg.Name,
		state:            BreakerClosed,
		failureThreshold: cfg.FailureThreshold,
		successThreshold: cfg.SuccessThreshold,
		cooldown:         cfg.Cooldown,
	}
}

// Allow reports whether a new submission may proceed at time now.
func (cb *CircuitBreaker) Allow(now time.Time) bool {
	switch cb.state {
	case BreakerClosed:
		return true
	case BreakerOpen:
		if now.Sub(cb.lastFailure) > cb.cooldown {
			cb.state = BreakerHalfOpen
			cb.successCount = 0
			slog.Info("circuit breaker probing", slog.String("name", cb.name))
			return true
		}
		return false
	case BreakerHalfOpen:
		return true
	default:
		return false
	}
}

// RecordSuccess records a submission that the venue accepted.
func (cb *CircuitBreaker) RecordSuccess() {
	switch cb.state {
	case BreakerClosed:
		cb.failureCount = 0
	case BreakerHalfOpen:
		cb.successCount++
		if cb.successCount >= cb.successThreshold {
			cb.state = BreakerClosed
			cb.failureCount = 0
			cb.successCount = 0
			slog.Info("circuit breaker closed", slog.String("name", cb.name))
		}
	}
}

// RecordFailure records an order-specific exchange error at time now.
func (cb *CircuitBreaker) RecordFailure(now time.Time) {
	cb.lastFailure = now

	switch cb.state {
	case BreakerClosed:
		cb.failureCount++
		if cb.failureCount >= cb.failureThreshold {
			cb.state = BreakerOpen
			slog.Warn("circuit breaker open",
				slog.String("name", cb.name),
				slog.Int("failures", cb.failureCount))
		}
	case BreakerHalfOpen:
		cb.state = BreakerOpen
		cb.successCount = 0
		slog.Warn("circuit breaker reopened", slog.String("name", cb.name))
	}
}

// State returns the current state, for logging and tests.
func (cb *CircuitBreaker) State() BreakerState {
	return cb.state
}
