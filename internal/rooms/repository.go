package rooms

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type Repository interface {
	// Catalog operations
	CreateRoom(ctx context.Context, room *Room) error
	GetByRoomID(ctx context.Context, roomID int) (*Room, error)
	GetAllRooms(ctx context.Context) ([]Room, error)

	// Mirror operations (ledger is authoritative; these follow it)
	AppendSummary(ctx context.Context, summary *BookingSummary) error
	UpdateSummaryStatus(ctx context.Context, roomID int, txHash string, status string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// CreateRoom assigns the next sequential room identifier and inserts the
// room in one transaction. The exclusive table lock serializes concurrent
// admin creates so max(room_id)+1 cannot be observed twice.
func (r *repository) CreateRoom(ctx context.Context, room *Room) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`LOCK TABLE rooms IN EXCLUSIVE MODE`).Error; err != nil {
			return fmt.Errorf("failed to lock rooms table: %w", err)
		}

		var maxRoomID int
		err := tx.Model(&Room{}).
			Select("COALESCE(MAX(room_id), 0)").
			Scan(&maxRoomID).Error
		if err != nil {
			return fmt.Errorf("failed to read max room id: %w", err)
		}

		room.RoomID = maxRoomID + 1
		if err := tx.Create(room).Error; err != nil {
			return fmt.Errorf("failed to create room: %w", err)
		}

		return nil
	})
}

func (r *repository) GetByRoomID(ctx context.Context, roomID int) (*Room, error) {
	var room Room
	err := r.db.WithContext(ctx).
		Preload("Bookings", func(db *gorm.DB) *gorm.DB {
			return db.Order("check_in_date ASC")
		}).
		Where("room_id = ?", roomID).
		First(&room).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &room, nil
}

func (r *repository) GetAllRooms(ctx context.Context) ([]Room, error) {
	var result []Room
	err := r.db.WithContext(ctx).
		Preload("Bookings", func(db *gorm.DB) *gorm.DB {
			return db.Order("check_in_date ASC")
		}).
		Order("room_id ASC").
		Find(&result).Error
	return result, err
}

func (r *repository) AppendSummary(ctx context.Context, summary *BookingSummary) error {
	return r.db.WithContext(ctx).Create(summary).Error
}

func (r *repository) UpdateSummaryStatus(ctx context.Context, roomID int, txHash string, status string) error {
	result := r.db.WithContext(ctx).
		Model(&BookingSummary{}).
		Where("room_id = ? AND tx_hash = ?", roomID, txHash).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("no mirror row for room %d tx %s", roomID, txHash)
	}
	return nil
}
