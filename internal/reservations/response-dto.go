package reservations

import "time"

// AvailabilityResponse answers a pre-payment availability probe with the
// normalized stay window that would be recorded.
type AvailabilityResponse struct {
	RoomID    int       `json:"room_id"`
	Available bool      `json:"available"`
	CheckIn   time.Time `json:"check_in"`
	CheckOut  time.Time `json:"check_out"`
	Nights    int       `json:"nights"`
}

// ReservationResponse is the API view of a ledger reservation.
type ReservationResponse struct {
	ID            string    `json:"id"`
	RoomID        int       `json:"room_id"`
	WalletAddress string    `json:"wallet_address"`
	CustomerName  string    `json:"customer_name,omitempty"`
	PhoneNumber   string    `json:"phone_number,omitempty"`
	CheckIn       time.Time `json:"check_in"`
	CheckOut      time.Time `json:"check_out"`
	Nights        int       `json:"nights"`
	TxHash        string    `json:"tx_hash"`
	BookingHash   string    `json:"booking_hash,omitempty"`
	Status        Status    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// HolderReservationResponse is the guest-facing listing entry. It carries
// the room's display metadata so clients can render a stay card without a
// second lookup.
type HolderReservationResponse struct {
	ReservationResponse
	RoomName      string   `json:"room_name,omitempty"`
	RoomImages    []string `json:"room_images,omitempty"`
	PricePerNight float64  `json:"price_per_night,omitempty"`
}

// ToResponse converts a Reservation to its API representation.
func (r *Reservation) ToResponse() ReservationResponse {
	return ReservationResponse{
		ID:            r.ID.String(),
		RoomID:        r.RoomID,
		WalletAddress: r.HolderAddress,
		CustomerName:  r.CustomerName,
		PhoneNumber:   r.PhoneNumber,
		CheckIn:       r.CheckIn,
		CheckOut:      r.CheckOut,
		Nights:        r.Window().Nights(),
		TxHash:        r.TxHash,
		BookingHash:   r.BookingHash,
		Status:        r.Status,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}
