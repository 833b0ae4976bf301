package database

import (
	"staychain/internal/guests"
	"staychain/internal/reservations"
	"staychain/internal/rooms"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&rooms.Room{},
		&rooms.BookingSummary{},
		&reservations.Reservation{},
		&guests.GuestProfile{},
	)
}
