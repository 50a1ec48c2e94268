package domain

import "errors"

// Sentinel errors returned by services. Wrap them with fmt.Errorf("%w: ...")
// and match with errors.Is; the api package maps each one to an HTTP status.
var (
	// ErrValidation is a missing or malformed field, caught before any
	// state transition.
	ErrValidation = errors.New("validation error")

	ErrNotFound = errors.New("not found")

	// ErrMissingContext is returned when a step is reached without the
	// draft the previous step should have forwarded.
	ErrMissingContext = errors.New("no booking information found")

	// ErrContactRequired is returned when a draft without name and email
	// tries to proceed to payment.
	ErrContactRequired = errors.New("contact details required")

	ErrIllegalTransition  = errors.New("illegal transition")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrPaymentInProgress  = errors.New("payment already in progress")
)
