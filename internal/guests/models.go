package guests

import "time"

// GuestProfile is optional off-chain profile data keyed by wallet
// address. Reservations stay valid without one; the profile only enriches
// the guest-facing views.
type GuestProfile struct {
	ID                 uint      `gorm:"primaryKey" json:"-"`
	WalletAddress      string    `gorm:"type:varchar(42);uniqueIndex;not null" json:"wallet_address"`
	Name               string    `gorm:"size:255" json:"name"`
	PhoneNumber        string    `gorm:"size:32" json:"phone_number"`
	IDNumber           string    `gorm:"size:64" json:"id_number"`
	AvatarURL          string    `gorm:"type:text" json:"avatar_url"`
	BackgroundImageURL string    `gorm:"type:text" json:"background_image_url"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// TableName sets the table name for GuestProfile
func (GuestProfile) TableName() string {
	return "guest_profiles"
}
