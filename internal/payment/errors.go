package payment

import "errors"

// ErrorKind classifies dispatcher failures for user-facing handling.
type ErrorKind int

const (
	// KindValidation covers a bad amount or a missing option; the user
	// corrects the input and retries.
	KindValidation ErrorKind = iota + 1
	// KindRateLimited is recoverable after the disclosed cooldown.
	KindRateLimited
	// KindReservationBlocked is non-fatal; the redirect degrades to
	// direct navigation.
	KindReservationBlocked
	// KindProviderRejected covers network and provider errors; the user
	// may retry with a fresh attempt.
	KindProviderRejected
	// KindCancelled is not an error and is surfaced silently.
	KindCancelled
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindRateLimited:
		return "rate_limited"
	case KindReservationBlocked:
		return "reservation_blocked"
	case KindProviderRejected:
		return "provider_rejected"
	case KindCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Error is the normalized failure the dispatcher reports. Raw transport
// errors never leave the dispatcher verbatim; they ride along as the
// wrapped cause for logs only.
type Error struct {
	Kind    ErrorKind
	Message string
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func newError(kind ErrorKind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

// KindOf extracts the taxonomy kind from err, zero when err is not a
// dispatcher error.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return 0
}
