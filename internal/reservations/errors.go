package reservations

import "errors"

// Input errors reject the request before any state or chain access.
// Conflict errors are recoverable by picking different dates. Verifier
// failures come from the chain package and are propagated unchanged.
var (
	ErrInvalidDate         = errors.New("invalid date")
	ErrMinimumStay         = errors.New("minimum stay is 1 night")
	ErrInvalidAddress      = errors.New("invalid wallet address")
	ErrInvalidTxHash       = errors.New("invalid transaction hash")
	ErrRoomNotAvailable    = errors.New("room not available for the requested dates")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrInvalidTransition   = errors.New("invalid status transition")
)
