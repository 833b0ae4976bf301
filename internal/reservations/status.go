package reservations

// Status is the reservation lifecycle state. Only active statuses block
// new overlapping reservations on the same room.
type Status string

const (
	StatusBooked    Status = "BOOKED"
	StatusCheckedIn Status = "CHECKED_IN"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

// IsValid checks if the reservation status is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusBooked, StatusCheckedIn, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsActive reports whether the reservation still occupies its stay
// interval. CANCELLED and COMPLETED never block new bookings.
func (s Status) IsActive() bool {
	return s == StatusBooked || s == StatusCheckedIn
}

// IsTerminal reports whether no further transition is allowed.
func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// CanTransitionTo reports whether the move from s to next is legal:
// BOOKED -> CHECKED_IN -> COMPLETED, with cancellation allowed from
// either active state.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusBooked:
		return next == StatusCheckedIn || next == StatusCancelled
	case StatusCheckedIn:
		return next == StatusCompleted || next == StatusCancelled
	default:
		return false
	}
}

// ActiveStatuses lists the statuses that participate in overlap checks.
func ActiveStatuses() []Status {
	return []Status{StatusBooked, StatusCheckedIn}
}
