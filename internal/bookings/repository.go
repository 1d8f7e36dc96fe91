package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	CreateWithOccupancyCheck(ctx context.Context, booking *Booking, seatIDs []int) error
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Booking, error)
	GetAll(ctx context.Context, query BookingListQuery) ([]Booking, int64, error)
	Cancel(ctx context.Context, id uuid.UUID, refundPercent int, refundAmount int64) error
	GetBookedSeatIDs(ctx context.Context, busID uuid.UUID, journeyDate string) ([]int, error)
	UpdatePayment(ctx context.Context, payment *Payment) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// CreateWithOccupancyCheck persists a booking after verifying none of its
// seats are already taken for the same bus and journey date. There is no
// reservation hold step; the conflict surfaces here, at write time, inside
// a transaction serialized on the bus row.
func (r *repository) CreateWithOccupancyCheck(ctx context.Context, booking *Booking, seatIDs []int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Serialize concurrent bookings on the same bus.
		if err := tx.Exec("SELECT id FROM buses WHERE id = ? FOR UPDATE", booking.BusID).Error; err != nil {
			return fmt.Errorf("failed to lock bus row: %w", err)
		}

		var taken []int
		err := tx.Table("booking_seats").
			Select("booking_seats.seat_id").
			Joins("JOIN bookings ON bookings.id = booking_seats.booking_id").
			Where("bookings.bus_id = ? AND bookings.journey_date = ? AND bookings.status = ?",
				booking.BusID, booking.JourneyDate, StatusConfirmed).
			Where("booking_seats.seat_id IN ?", seatIDs).
			Scan(&taken).Error
		if err != nil {
			return fmt.Errorf("failed to check seat occupancy: %w", err)
		}
		if len(taken) > 0 {
			return ErrSeatsUnavailable
		}

		if err := tx.Create(booking).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}
		return nil
	})
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).
		Preload("Seats").
		Preload("Passengers").
		Preload("Payments").
		Where("id = ?", id).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *repository) GetByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Booking, error) {
	var list []Booking
	err := r.db.WithContext(ctx).
		Preload("Seats").
		Preload("Passengers").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&list).Error
	return list, err
}

func (r *repository) GetAll(ctx context.Context, query BookingListQuery) ([]Booking, int64, error) {
	var list []Booking
	var totalCount int64

	db := r.db.WithContext(ctx).Model(&Booking{})

	if query.Status != "" {
		db = db.Where("status = ?", query.Status)
	}
	if query.BusID != "" {
		db = db.Where("bus_id = ?", query.BusID)
	}
	if query.Date != "" {
		db = db.Where("journey_date = ?", query.Date)
	}

	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	if query.Page == 0 {
		query.Page = 1
	}
	if query.Limit == 0 {
		query.Limit = 10
	}
	offset := (query.Page - 1) * query.Limit

	err := db.Preload("Seats").
		Order("created_at DESC").
		Offset(offset).
		Limit(query.Limit).
		Find(&list).Error

	return list, totalCount, err
}

func (r *repository) Cancel(ctx context.Context, id uuid.UUID, refundPercent int, refundAmount int64) error {
	result := r.db.WithContext(ctx).Model(&Booking{}).
		Where("id = ? AND status = ?", id, StatusConfirmed).
		Updates(map[string]interface{}{
			"status":         StatusCancelled,
			"refund_percent": refundPercent,
			"refund_amount":  refundAmount,
			"cancelled_at":   gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAlreadyCancelled
	}
	return nil
}

// GetBookedSeatIDs returns the internal seat IDs held by confirmed bookings
// for one bus and journey date. This is the occupancy feed the seat map
// reconciler consumes.
func (r *repository) GetBookedSeatIDs(ctx context.Context, busID uuid.UUID, journeyDate string) ([]int, error) {
	var seatIDs []int
	err := r.db.WithContext(ctx).Table("booking_seats").
		Select("booking_seats.seat_id").
		Joins("JOIN bookings ON bookings.id = booking_seats.booking_id").
		Where("bookings.bus_id = ? AND bookings.journey_date = ? AND bookings.status = ?",
			busID, journeyDate, StatusConfirmed).
		Order("booking_seats.seat_id ASC").
		Scan(&seatIDs).Error
	if err != nil {
		return nil, err
	}
	return seatIDs, nil
}

func (r *repository) UpdatePayment(ctx context.Context, payment *Payment) error {
	return r.db.WithContext(ctx).Save(payment).Error
}
