package guests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	profiles map[string]*GuestProfile
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{profiles: make(map[string]*GuestProfile)}
}

func (f *fakeRepo) Upsert(ctx context.Context, profile *GuestProfile) error {
	f.profiles[profile.WalletAddress] = profile
	return nil
}

func (f *fakeRepo) GetByWallet(ctx context.Context, walletAddress string) (*GuestProfile, error) {
	profile, ok := f.profiles[walletAddress]
	if !ok {
		return nil, ErrProfileNotFound
	}
	return profile, nil
}

func TestUpsertProfileLowercasesWallet(t *testing.T) {
	svc := NewService(newFakeRepo())

	profile, err := svc.UpsertProfile(context.Background(), UpsertProfileRequest{
		WalletAddress: "0xAbCd111111111111111111111111111111111111",
		Name:          "Ada",
	})
	require.NoError(t, err)
	assert.Equal(t, "0xabcd111111111111111111111111111111111111", profile.WalletAddress)

	// Lookup with different checksum casing hits the same profile.
	found, err := svc.GetProfile(context.Background(), "0xABCD111111111111111111111111111111111111")
	require.NoError(t, err)
	assert.Equal(t, "Ada", found.Name)
}

func TestUpsertProfileUpdatesInPlace(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.UpsertProfile(context.Background(), UpsertProfileRequest{
		WalletAddress: "0xabcd111111111111111111111111111111111111",
		Name:          "Ada",
	})
	require.NoError(t, err)

	updated, err := svc.UpsertProfile(context.Background(), UpsertProfileRequest{
		WalletAddress: "0xabcd111111111111111111111111111111111111",
		Name:          "Ada Lovelace",
		PhoneNumber:   "+44 20 7946 0958",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", updated.Name)
	assert.Equal(t, "+44 20 7946 0958", updated.PhoneNumber)
}

func TestProfileInputValidation(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.UpsertProfile(context.Background(), UpsertProfileRequest{WalletAddress: "not-an-address"})
	assert.ErrorIs(t, err, ErrInvalidAddress)

	_, err = svc.GetProfile(context.Background(), "0x123")
	assert.ErrorIs(t, err, ErrInvalidAddress)

	_, err = svc.GetProfile(context.Background(), "0x9999999999999999999999999999999999999999")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}
