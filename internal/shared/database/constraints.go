package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds indexes the availability queries depend on.
// The overlap check filters on (room_id, status) and compares the
// interval bounds, so a composite index keeps the conflict re-check
// cheap while the room row is locked.
func MigrateConstraints(db *gorm.DB) error {
	err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_reservations_room_active_interval
		ON reservations (room_id, status, check_in, check_out);
	`).Error
	if err != nil {
		return err
	}

	// Mirror rows are matched by tx_hash when a status transition is
	// propagated from the ledger.
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_booking_summaries_tx_hash
		ON booking_summaries (tx_hash);
	`).Error
	if err != nil {
		return err
	}

	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_reservations_holder
		ON reservations (holder_address, check_in);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
