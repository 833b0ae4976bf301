package rooms

// CreateRoomRequest is the admin payload for adding a room to the catalog.
// The room identifier is assigned by the catalog, never by the caller.
type CreateRoomRequest struct {
	Name          string   `json:"name" binding:"required,min=1,max=255"`
	Description   string   `json:"description" binding:"max=2000"`
	Images        []string `json:"images" binding:"required,min=1,dive,url"`
	PricePerNight float64  `json:"pricePerNight" binding:"required"`
	Beds          int      `json:"beds" binding:"required"`
	MaxGuests     int      `json:"maxGuests" binding:"required"`
}
