package bookings

import (
	"errors"
	"time"

	"busly/internal/seatmap"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound  = errors.New("booking not found")
	ErrNotBookingOwner  = errors.New("booking does not belong to user")
	ErrAlreadyCancelled = errors.New("booking is already cancelled")
	ErrSeatsUnavailable = errors.New("one or more seats are no longer available")
	ErrInvalidDate      = errors.New("invalid journey date")
)

// Booking is one confirmed reservation on a bus for a journey date.
// Amounts are whole rupees. JourneyDate is YYYY-MM-DD; the wall-clock
// departure lives on the bus.
type Booking struct {
	ID            uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID        uuid.UUID  `gorm:"type:uuid;index;not null" json:"user_id"`
	BusID         uuid.UUID  `gorm:"type:uuid;index:idx_bookings_bus_date;not null" json:"bus_id"`
	JourneyDate   string     `gorm:"size:10;index:idx_bookings_bus_date;not null" json:"journey_date"`
	BookingRef    string     `gorm:"unique;not null" json:"booking_ref"`
	TotalAmount   int64      `gorm:"not null" json:"total_amount"`
	Status        Status     `gorm:"type:varchar(20);check:status IN ('CONFIRMED', 'CANCELLED');default:'CONFIRMED'" json:"status"`
	BoardingPoint string     `gorm:"size:255" json:"boarding_point"`
	DroppingPoint string     `gorm:"size:255" json:"dropping_point"`
	PaymentMethod string     `gorm:"type:varchar(20)" json:"payment_method"`
	RefundPercent int        `gorm:"default:0" json:"refund_percent"`
	RefundAmount  int64      `gorm:"default:0" json:"refund_amount"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	CancelledAt   *time.Time `json:"cancelled_at,omitempty"`

	// Relationships
	Seats      []BookingSeat `json:"seats,omitempty" gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE;"`
	Passengers []Passenger   `json:"passengers,omitempty" gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE;"`
	Payments   []Payment     `json:"payments,omitempty" gorm:"foreignKey:BookingID;constraint:OnDelete:RESTRICT;"`
}

// BookingSeat pins one seat of the layout. SeatID is the internal layout
// identifier (combo sleepers are 25..36), SeatNumber is what the passenger
// sees on their ticket.
type BookingSeat struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BookingID  uuid.UUID `gorm:"type:uuid;index;not null" json:"booking_id"`
	SeatID     int       `gorm:"not null" json:"seat_id"`
	SeatNumber int       `gorm:"not null" json:"seat_number"`
	Kind       string    `gorm:"type:varchar(10);not null" json:"kind"`
	Price      int64     `gorm:"not null" json:"price"`
	CreatedAt  time.Time `json:"created_at"`
}

// Passenger is one traveller on a booking.
type Passenger struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BookingID uuid.UUID `gorm:"type:uuid;index;not null" json:"booking_id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Age       int       `gorm:"not null" json:"age"`
	Gender    string    `gorm:"type:varchar(10)" json:"gender"`
	Phone     string    `gorm:"size:20" json:"phone"`
	Email     string    `gorm:"size:255" json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Payment tracks the simulated payment attached to a booking.
type Payment struct {
	ID            uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BookingID     uuid.UUID  `gorm:"type:uuid;index;not null" json:"booking_id"`
	Amount        int64      `gorm:"not null" json:"amount"`
	Currency      string     `gorm:"type:varchar(3);default:'INR'" json:"currency"`
	Status        string     `gorm:"type:varchar(20);check:status IN ('PENDING', 'COMPLETED', 'FAILED', 'REFUNDED');default:'PENDING'" json:"status"`
	PaymentMethod string     `gorm:"type:varchar(50)" json:"payment_method"`
	TransactionID string     `gorm:"unique" json:"transaction_id"`
	ProcessedAt   *time.Time `json:"processed_at,omitempty"`
	FailureReason string     `json:"failure_reason,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (Booking) TableName() string     { return "bookings" }
func (BookingSeat) TableName() string { return "booking_seats" }
func (Passenger) TableName() string   { return "passengers" }
func (Payment) TableName() string     { return "payments" }

func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}

func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

func (p *Payment) MarkCompleted() {
	p.Status = "COMPLETED"
	now := time.Now()
	p.ProcessedAt = &now
	p.UpdatedAt = now
}

func (p *Payment) MarkRefunded() {
	p.Status = "REFUNDED"
	now := time.Now()
	p.ProcessedAt = &now
	p.UpdatedAt = now
}

// PassengerInfo is one traveller in the booking request.
type PassengerInfo struct {
	Name   string `json:"name" validate:"required,min=2,max=255"`
	Age    int    `json:"age" validate:"required,min=1,max=120"`
	Gender string `json:"gender" validate:"omitempty,oneof=male female other"`
	Phone  string `json:"phone" validate:"omitempty,max=20"`
	Email  string `json:"email" validate:"omitempty,email"`
}

// CreateBookingRequest is the booking payload. TotalAmount is advisory:
// the fare is always recomputed server side from the bus pricing and the
// seat selection, and a mismatching client total is rejected rather than
// trusted.
type CreateBookingRequest struct {
	BusID         string              `json:"bus_id" validate:"required,uuid"`
	JourneyDate   string              `json:"journey_date" validate:"required"`
	Seats         []seatmap.Selection `json:"seats" validate:"required,min=1,max=6"`
	Passengers    []PassengerInfo     `json:"passengers" validate:"required,min=1,dive"`
	BoardingPoint string              `json:"boarding_point" validate:"omitempty,max=255"`
	DroppingPoint string              `json:"dropping_point" validate:"omitempty,max=255"`
	PaymentMethod string              `json:"payment_method" validate:"required,oneof=card upi netbanking"`
	TotalAmount   int64               `json:"total_amount" validate:"omitempty,min=0"`
}

// BookingListQuery filters the admin booking listing.
type BookingListQuery struct {
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Status string `form:"status" binding:"omitempty,oneof=CONFIRMED CANCELLED"`
	BusID  string `form:"bus_id" binding:"omitempty,uuid"`
	Date   string `form:"date"`
}

// BookingConfirmation is the response to a successful booking.
type BookingConfirmation struct {
	BookingID   string        `json:"booking_id"`
	BookingRef  string        `json:"booking_ref"`
	Status      Status        `json:"status"`
	TotalAmount int64         `json:"total_amount"`
	Seats       []BookingSeat `json:"seats"`
	Payment     PaymentInfo   `json:"payment"`
	CreatedAt   time.Time     `json:"created_at"`
}

// CancellationResult is the response to a successful cancellation.
type CancellationResult struct {
	BookingID     string `json:"booking_id"`
	Status        Status `json:"status"`
	RefundPercent int    `json:"refund_percent"`
	RefundAmount  int64  `json:"refund_amount"`
}

// PaymentInfo is the payment projection used in responses.
type PaymentInfo struct {
	ID            string     `json:"id"`
	Amount        int64      `json:"amount"`
	Currency      string     `json:"currency"`
	Status        string     `json:"status"`
	PaymentMethod string     `json:"payment_method"`
	TransactionID string     `json:"transaction_id"`
	ProcessedAt   *time.Time `json:"processed_at,omitempty"`
}

func (p *Payment) ToPaymentInfo() PaymentInfo {
	return PaymentInfo{
		ID:            p.ID.String(),
		Amount:        p.Amount,
		Currency:      p.Currency,
		Status:        p.Status,
		PaymentMethod: p.PaymentMethod,
		TransactionID: p.TransactionID,
		ProcessedAt:   p.ProcessedAt,
	}
}

// PaginatedBookings wraps an admin listing page.
type PaginatedBookings struct {
	Bookings   []Booking `json:"bookings"`
	TotalCount int64     `json:"total_count"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalPages int       `json:"total_pages"`
}
