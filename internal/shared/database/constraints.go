package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds the indexes the occupancy check depends on.
// The booking write path locks the bus row and scans conflicting seats
// inside one transaction; these indexes keep that scan cheap.
func MigrateConstraints(db *gorm.DB) error {
	// Occupancy lookups filter confirmed bookings by bus and journey date.
	err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_occupancy
		ON bookings (bus_id, journey_date, status);
	`).Error
	if err != nil {
		return err
	}

	// Seat conflict scans join booking_seats back to bookings.
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_booking_seats_seat_booking
		ON booking_seats (seat_id, booking_id);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
