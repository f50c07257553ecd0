package payment

import (
	"sync"

	"zenpay/internal/popup"
)

// AttemptState tracks a payment attempt through the initiation machine:
//
//	Idle -> Validating -> RateLimited | Invalid | Reserved
//	Reserved -> Submitting -> InvoiceOpen | Redirected | Failed
//	InvoiceOpen | Redirected -> Succeeded | Cancelled | Failed
type AttemptState int

const (
	StateIdle AttemptState = iota
	StateValidating
	StateRateLimited
	StateInvalid
	StateReserved
	StateSubmitting
	StateInvoiceOpen
	StateRedirected
	StateSucceeded
	StateCancelled
	StateFailed
)

func (s AttemptState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateRateLimited:
		return "rate_limited"
	case StateInvalid:
		return "invalid"
	case StateReserved:
		return "reserved"
	case StateSubmitting:
		return "submitting"
	case StateInvoiceOpen:
		return "invoice_open"
	case StateRedirected:
		return "redirected"
	case StateSucceeded:
		return "succeeded"
	case StateCancelled:
		return "cancelled"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transitions can occur.
func (s AttemptState) Terminal() bool {
	switch s {
	case StateRateLimited, StateInvalid, StateSucceeded, StateCancelled, StateFailed:
		return true
	default:
		return false
	}
}

// Attempt is a single payment initiation. The dispatcher owns it
// exclusively, including its reserved popup handle; UI layers read its
// state but never mutate it.
type Attempt struct {
	ID           string
	Method       *PaymentMethod
	OptionID     string
	AmountKopeks int64

	mu          sync.Mutex
	state       AttemptState
	err         *Error
	reservation *popup.Reservation
}

// State returns the attempt's current state.
func (a *Attempt) State() AttemptState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Err returns the normalized error for a failed attempt, nil otherwise.
func (a *Attempt) Err() *Error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.err
}

// transition moves the attempt to the target state. It refuses to leave
// a terminal state, which makes settling callbacks idempotent even when
// a host fires them twice.
func (a *Attempt) transition(to AttemptState) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state.Terminal() {
		return false
	}
	a.state = to
	return true
}

func (a *Attempt) setErr(e *Error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.err = e
}

func (a *Attempt) takeReservation() *popup.Reservation {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.reservation
}

func (a *Attempt) setReservation(r *popup.Reservation) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.reservation = r
}
