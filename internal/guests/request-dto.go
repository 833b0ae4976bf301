package guests

// UpsertProfileRequest creates or updates the profile for a wallet.
type UpsertProfileRequest struct {
	WalletAddress      string `json:"walletAddress" binding:"required,eth_addr"`
	Name               string `json:"name" binding:"omitempty,max=255"`
	PhoneNumber        string `json:"phoneNumber" binding:"omitempty,max=32"`
	IDNumber           string `json:"idNumber" binding:"omitempty,max=64"`
	AvatarURL          string `json:"avatarUrl" binding:"omitempty,url"`
	BackgroundImageURL string `json:"backgroundImageUrl" binding:"omitempty,url"`
}
