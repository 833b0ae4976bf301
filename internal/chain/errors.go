package chain

import "errors"

// Each verification step has its own sentinel so controllers can map the
// exact failure mode onto a response. None of these are retried except by
// the caller resubmitting; the underlying RPC reads are idempotent.
var (
	// ErrTransactionNotFound is returned when the node knows nothing about
	// the submitted hash, or the transaction has no destination address.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrTransactionFailed is returned when the receipt status is not success.
	ErrTransactionFailed = errors.New("transaction failed")

	// ErrWrongContract is returned when the transaction was sent to an
	// address other than the configured payment contract.
	ErrWrongContract = errors.New("transaction not sent to payment contract")

	// ErrNotABookingCall is returned when the input data does not decode
	// against a recognized booking entry point.
	ErrNotABookingCall = errors.New("not a booking call")

	// ErrRoomMismatch is returned when the decoded call booked a different
	// room than the caller claims.
	ErrRoomMismatch = errors.New("on-chain room id does not match requested room")

	// ErrBookingEventMissing is returned when no log in the receipt decodes
	// as a Booked event.
	ErrBookingEventMissing = errors.New("booked event not found in transaction")

	// ErrMinimumStay is returned when the stay is shorter than one night.
	ErrMinimumStay = errors.New("minimum stay is 1 night")

	// ErrInsufficientPayment is returned when paid-amount enforcement is
	// enabled and the transferred value does not cover the stay.
	ErrInsufficientPayment = errors.New("paid amount does not cover the stay")

	// ErrUnknownSelector is returned by the decoder for input data whose
	// 4-byte selector is not in the known set.
	ErrUnknownSelector = errors.New("unknown function selector")
)
