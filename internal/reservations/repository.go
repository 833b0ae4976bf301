package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"staychain/internal/rooms"
)

type Repository interface {
	// HasOverlap reports whether any active reservation on the room
	// intersects the half-open window [checkIn, checkOut).
	HasOverlap(ctx context.Context, roomID int, window StayWindow) (bool, error)

	// CreateWithConflictCheck re-runs the overlap check and inserts the
	// reservation atomically, serialized per room.
	CreateWithConflictCheck(ctx context.Context, reservation *Reservation) error

	GetByID(ctx context.Context, id uuid.UUID) (*Reservation, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error

	ListByRoom(ctx context.Context, roomID int) ([]Reservation, error)
	ListByHolder(ctx context.Context, holderAddress string) ([]Reservation, error)
	ListAll(ctx context.Context) ([]Reservation, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) HasOverlap(ctx context.Context, roomID int, window StayWindow) (bool, error) {
	return hasOverlap(r.db.WithContext(ctx), roomID, window)
}

// hasOverlap is the single source of the conflict predicate on the store:
// existing.check_in < candidate.check_out AND existing.check_out >
// candidate.check_in, restricted to statuses that still occupy the room.
func hasOverlap(tx *gorm.DB, roomID int, window StayWindow) (bool, error) {
	var count int64
	err := tx.Model(&Reservation{}).
		Where("room_id = ? AND status IN ? AND check_in < ? AND check_out > ?",
			roomID, ActiveStatuses(), window.CheckOut, window.CheckIn).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check overlapping reservations: %w", err)
	}
	return count > 0, nil
}

// CreateWithConflictCheck locks the room row, re-checks for overlap under
// the lock, and inserts. Two concurrent commits for the same room
// serialize on the row lock, so at most one of an overlapping pair can
// pass the check.
func (r *repository) CreateWithConflictCheck(ctx context.Context, reservation *Reservation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lockedRoomID int
		err := tx.Raw(`SELECT room_id FROM rooms WHERE room_id = ? FOR UPDATE`, reservation.RoomID).
			Scan(&lockedRoomID).Error
		if err != nil {
			return fmt.Errorf("failed to lock room row: %w", err)
		}
		if lockedRoomID == 0 {
			return rooms.ErrRoomNotFound
		}

		conflict, err := hasOverlap(tx, reservation.RoomID, reservation.Window())
		if err != nil {
			return err
		}
		if conflict {
			return ErrRoomNotAvailable
		}

		if reservation.ID == uuid.Nil {
			reservation.ID = uuid.New()
		}
		if err := tx.Create(reservation).Error; err != nil {
			return fmt.Errorf("failed to create reservation: %w", err)
		}

		return nil
	})
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Reservation, error) {
	var reservation Reservation
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&reservation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return &reservation, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	result := r.db.WithContext(ctx).
		Model(&Reservation{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReservationNotFound
	}
	return nil
}

func (r *repository) ListByRoom(ctx context.Context, roomID int) ([]Reservation, error) {
	var result []Reservation
	err := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("check_in ASC").
		Find(&result).Error
	return result, err
}

func (r *repository) ListByHolder(ctx context.Context, holderAddress string) ([]Reservation, error) {
	var result []Reservation
	err := r.db.WithContext(ctx).
		Where("holder_address = ?", holderAddress).
		Order("check_in ASC").
		Find(&result).Error
	return result, err
}

func (r *repository) ListAll(ctx context.Context) ([]Reservation, error) {
	var result []Reservation
	err := r.db.WithContext(ctx).
		Order("room_id ASC, check_in ASC").
		Find(&result).Error
	return result, err
}
