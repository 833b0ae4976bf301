package rooms

import "time"

// RoomResponse is the public catalog view including mirror summaries.
type RoomResponse struct {
	RoomID        int                      `json:"room_id"`
	Name          string                   `json:"name"`
	Description   string                   `json:"description"`
	Images        []string                 `json:"images"`
	PricePerNight float64                  `json:"price_per_night"`
	Beds          int                      `json:"beds"`
	MaxGuests     int                      `json:"max_guests"`
	Bookings      []BookingSummaryResponse `json:"bookings"`
}

// AdminRoomResponse is the slim admin listing view.
type AdminRoomResponse struct {
	RoomID        int     `json:"room_id"`
	Name          string  `json:"name"`
	PricePerNight float64 `json:"price_per_night"`
	Beds          int     `json:"beds"`
	MaxGuests     int     `json:"max_guests"`
}

// BookingSummaryResponse is the mirror view embedded in catalog reads.
type BookingSummaryResponse struct {
	UserID       string    `json:"user_id"`
	CheckInDate  time.Time `json:"check_in_date"`
	CheckOutDate time.Time `json:"check_out_date"`
	Status       string    `json:"status"`
	TxHash       string    `json:"tx_hash"`
	BookingHash  string    `json:"booking_hash"`
}

// ToResponse converts a Room to its public view.
func (r *Room) ToResponse() RoomResponse {
	summaries := make([]BookingSummaryResponse, 0, len(r.Bookings))
	for _, b := range r.Bookings {
		summaries = append(summaries, BookingSummaryResponse{
			UserID:       b.UserID,
			CheckInDate:  b.CheckInDate,
			CheckOutDate: b.CheckOutDate,
			Status:       b.Status,
			TxHash:       b.TxHash,
			BookingHash:  b.BookingHash,
		})
	}

	images := r.Images
	if images == nil {
		images = []string{}
	}

	return RoomResponse{
		RoomID:        r.RoomID,
		Name:          r.Name,
		Description:   r.Description,
		Images:        images,
		PricePerNight: r.PricePerNight,
		Beds:          r.Beds,
		MaxGuests:     r.MaxGuests,
		Bookings:      summaries,
	}
}

// ToAdminResponse converts a Room to the admin listing view.
func (r *Room) ToAdminResponse() AdminRoomResponse {
	return AdminRoomResponse{
		RoomID:        r.RoomID,
		Name:          r.Name,
		PricePerNight: r.PricePerNight,
		Beds:          r.Beds,
		MaxGuests:     r.MaxGuests,
	}
}
