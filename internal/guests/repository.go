package guests

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	Upsert(ctx context.Context, profile *GuestProfile) error
	GetByWallet(ctx context.Context, walletAddress string) (*GuestProfile, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Upsert inserts the profile or, on wallet collision, updates the
// editable fields in place.
func (r *repository) Upsert(ctx context.Context, profile *GuestProfile) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "wallet_address"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "phone_number", "id_number", "avatar_url", "background_image_url", "updated_at",
			}),
		}).
		Create(profile).Error
}

func (r *repository) GetByWallet(ctx context.Context, walletAddress string) (*GuestProfile, error) {
	var profile GuestProfile
	err := r.db.WithContext(ctx).Where("wallet_address = ?", walletAddress).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}
