package database

import (
	"busly/internal/bookings"
	"busly/internal/buses"
	"busly/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&users.User{},
		&buses.Bus{},
		&bookings.Booking{},
		&bookings.BookingSeat{},
		&bookings.Passenger{},
		&bookings.Payment{},
	)
	if err != nil {
		return err
	}
	return MigrateConstraints(db)
}
