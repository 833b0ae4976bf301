package reservations

// CheckAvailabilityRequest asks whether a room is free for a stay. Dates
// accept plain calendar dates or RFC3339 timestamps.
type CheckAvailabilityRequest struct {
	RoomID   int    `json:"roomId" binding:"required,min=1"`
	CheckIn  string `json:"checkIn" binding:"required"`
	CheckOut string `json:"checkOut" binding:"required"`
}

// CommitReservationRequest records a reservation backed by an on-chain
// payment transaction.
type CommitReservationRequest struct {
	RoomID        int    `json:"roomId" binding:"required,min=1"`
	CheckIn       string `json:"checkIn" binding:"required"`
	CheckOut      string `json:"checkOut" binding:"required"`
	WalletAddress string `json:"walletAddress" binding:"required,eth_addr"`
	TxHash        string `json:"txHash" binding:"required,tx_hash"`
	CustomerName  string `json:"customerName" binding:"omitempty,max=255"`
	PhoneNumber   string `json:"phoneNumber" binding:"omitempty,max=32"`
}
