package reservations

import (
	"time"

	"github.com/google/uuid"
)

// Reservation is the authoritative booking record. The room catalog keeps
// a denormalized summary of it; this row is the source of truth and is
// never deleted, only transitioned.
type Reservation struct {
	ID            uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	RoomID        int       `gorm:"index;not null" json:"room_id"`
	HolderAddress string    `gorm:"type:varchar(42);index;not null" json:"wallet_address"`
	CustomerName  string    `gorm:"size:255" json:"customer_name"`
	PhoneNumber   string    `gorm:"size:32" json:"phone_number"`
	CheckIn       time.Time `gorm:"not null" json:"check_in"`
	CheckOut      time.Time `gorm:"not null" json:"check_out"`
	TxHash        string    `gorm:"type:varchar(66);uniqueIndex;not null" json:"tx_hash"`
	BookingHash   string    `gorm:"type:varchar(66);index" json:"booking_hash"`
	Status        Status    `gorm:"type:varchar(20);check:status IN ('BOOKED', 'CHECKED_IN', 'COMPLETED', 'CANCELLED');default:'BOOKED'" json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName sets the table name for Reservation
func (Reservation) TableName() string {
	return "reservations"
}

// IsActive reports whether this reservation blocks overlapping stays.
func (r *Reservation) IsActive() bool {
	return r.Status.IsActive()
}

// Window returns the reservation's half-open stay interval.
func (r *Reservation) Window() StayWindow {
	return StayWindow{CheckIn: r.CheckIn, CheckOut: r.CheckOut}
}

// Overlaps is the conflict predicate over half-open intervals: a candidate
// [ci, co) conflicts with an existing [eci, eco) iff eci < co && eco > ci.
// Touching boundaries (new check-in exactly at old check-out) do not
// conflict.
func Overlaps(candidate, existing StayWindow) bool {
	return existing.CheckIn.Before(candidate.CheckOut) && existing.CheckOut.After(candidate.CheckIn)
}
