package rooms

import (
	"time"
)

// Room is catalog metadata plus a denormalized mirror of the booking
// summaries for that room. The reservation ledger owns the authoritative
// records; the mirror exists for cheap catalog reads and is kept in sync
// on every ledger mutation.
type Room struct {
	ID            uint      `gorm:"primaryKey" json:"-"`
	RoomID        int       `gorm:"uniqueIndex;not null" json:"room_id"`
	Name          string    `gorm:"not null;size:255" json:"name"`
	Description   string    `gorm:"type:text" json:"description"`
	Images        []string  `gorm:"serializer:json;type:text" json:"images"`
	PricePerNight float64   `gorm:"not null;check:price_per_night > 0" json:"price_per_night"`
	Beds          int       `gorm:"not null;check:beds >= 1" json:"beds"`
	MaxGuests     int       `gorm:"not null" json:"max_guests"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Mirror rows, ordered by stay start.
	Bookings []BookingSummary `gorm:"foreignKey:RoomID;references:RoomID" json:"bookings"`
}

// BookingSummary is the mirror copy of a ledger reservation embedded in
// the catalog. Matched back to the ledger by tx_hash on status changes.
type BookingSummary struct {
	ID           uint      `gorm:"primaryKey" json:"-"`
	RoomID       int       `gorm:"index;not null" json:"room_id"`
	UserID       string    `gorm:"type:varchar(42);not null" json:"user_id"`
	CheckInDate  time.Time `gorm:"not null" json:"check_in_date"`
	CheckOutDate time.Time `gorm:"not null" json:"check_out_date"`
	TxHash       string    `gorm:"type:varchar(66);not null" json:"tx_hash"`
	BookingHash  string    `gorm:"type:varchar(66)" json:"booking_hash"`
	Status       string    `gorm:"type:varchar(20);not null" json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName sets the table name for Room
func (Room) TableName() string {
	return "rooms"
}

// TableName sets the table name for BookingSummary
func (BookingSummary) TableName() string {
	return "booking_summaries"
}
