package guests

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Service interface defines the contract for guest profile business logic
type Service interface {
	UpsertProfile(ctx context.Context, req UpsertProfileRequest) (*GuestProfile, error)
	GetProfile(ctx context.Context, walletAddress string) (*GuestProfile, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// UpsertProfile stores profile data under the lowercased wallet address,
// so lookups are insensitive to checksum casing.
func (s *service) UpsertProfile(ctx context.Context, req UpsertProfileRequest) (*GuestProfile, error) {
	if !common.IsHexAddress(req.WalletAddress) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAddress, req.WalletAddress)
	}

	profile := &GuestProfile{
		WalletAddress:      strings.ToLower(req.WalletAddress),
		Name:               req.Name,
		PhoneNumber:        req.PhoneNumber,
		IDNumber:           req.IDNumber,
		AvatarURL:          req.AvatarURL,
		BackgroundImageURL: req.BackgroundImageURL,
	}

	if err := s.repo.Upsert(ctx, profile); err != nil {
		return nil, err
	}

	return s.repo.GetByWallet(ctx, profile.WalletAddress)
}

func (s *service) GetProfile(ctx context.Context, walletAddress string) (*GuestProfile, error) {
	if !common.IsHexAddress(walletAddress) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAddress, walletAddress)
	}
	return s.repo.GetByWallet(ctx, strings.ToLower(walletAddress))
}
