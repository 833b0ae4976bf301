package notifications

import "time"

// EventType classifies reservation lifecycle events on the stream.
type EventType string

const (
	EventReservationCreated   EventType = "RESERVATION_CREATED"
	EventReservationCancelled EventType = "RESERVATION_CANCELLED"
	EventReservationCheckedIn EventType = "RESERVATION_CHECKED_IN"
	EventReservationCompleted EventType = "RESERVATION_COMPLETED"

	// EventMirrorSyncFailed marks a catalog mirror write that failed after
	// the ledger committed. The reconciler consumer replays these.
	EventMirrorSyncFailed EventType = "MIRROR_SYNC_FAILED"
)

// ReservationEvent is the message published for every ledger mutation and
// for every failed mirror write.
type ReservationEvent struct {
	Type          EventType `json:"type"`
	ReservationID string    `json:"reservation_id"`
	RoomID        int       `json:"room_id"`
	HolderAddress string    `json:"holder_address"`
	TxHash        string    `json:"tx_hash"`
	BookingHash   string    `json:"booking_hash,omitempty"`
	Status        string    `json:"status"`
	CheckIn       time.Time `json:"check_in"`
	CheckOut      time.Time `json:"check_out"`
	OccurredAt    time.Time `json:"occurred_at"`
}
