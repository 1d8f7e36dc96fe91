package buses

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"busly/internal/seatmap"

	"github.com/google/uuid"
)

// Known fleet labels. Layout behavior keys off substring matching in the
// seatmap package, but admin input is restricted to this set.
const (
	BusTypeACSeater     = "AC Seater"
	BusTypeNonACSeater  = "Non AC Seater"
	BusTypeACSleeper    = "AC Sleeper"
	BusTypeNonACSleeper = "Non AC Sleeper"
	BusTypeDeluxeCombo  = "Deluxe Combo"
)

var validBusTypes = map[string]bool{
	BusTypeACSeater:     true,
	BusTypeNonACSeater:  true,
	BusTypeACSleeper:    true,
	BusTypeNonACSleeper: true,
	BusTypeDeluxeCombo:  true,
}

func IsValidBusType(busType string) bool {
	return validBusTypes[busType]
}

// Stop is a boarding or dropping point with its wall-clock time.
type Stop struct {
	Name string `json:"name"`
	Time string `json:"time"`
}

// StopList is stored as a jsonb column.
type StopList []Stop

func (s StopList) Value() (driver.Value, error) {
	if s == nil {
		return json.Marshal([]Stop{})
	}
	return json.Marshal(s)
}

func (s *StopList) Scan(value interface{}) error {
	if value == nil {
		*s = StopList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("unsupported stop list type %T", value)
	}
}

// Amenities flags mirror what the booking UI advertises per bus.
type Amenities struct {
	HasAC               bool `json:"hasAC"`
	HasCharging         bool `json:"hasCharging"`
	HasWifi             bool `json:"hasWifi"`
	HasWater            bool `json:"hasWater"`
	HasEmergencyContact bool `json:"hasEmergencyContact"`
	HasFirstAid         bool `json:"hasFirstAid"`
}

// Bus is one vehicle on a fixed route. Departure and arrival times are
// wall-clock strings because the same bus runs the route every day; the
// journey date comes from the booking, not the bus.
type Bus struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BusName         string    `json:"bus_name" gorm:"not null;size:255"`
	BusNumber       string    `json:"bus_number" gorm:"uniqueIndex;not null;size:50"`
	BusType         string    `json:"bus_type" gorm:"not null;size:50"`
	TotalSeats      int       `json:"total_seats" gorm:"not null;check:total_seats > 0"`
	Price           int64     `json:"price" gorm:"not null;default:0"`
	SeaterPrice     int64     `json:"seater_price" gorm:"not null;default:0"`
	SleeperPrice    int64     `json:"sleeper_price" gorm:"not null;default:0"`
	Source          string    `json:"source" gorm:"not null;size:255;index:idx_buses_route"`
	Destination     string    `json:"destination" gorm:"not null;size:255;index:idx_buses_route"`
	DepartureTime   string    `json:"departure_time" gorm:"not null;size:50"`
	ArrivalTime     string    `json:"arrival_time" gorm:"not null;size:50"`
	JourneyDuration string    `json:"journey_duration" gorm:"size:50"`
	Description     string    `json:"description" gorm:"type:text"`
	Amenities       Amenities `json:"amenities" gorm:"embedded;embeddedPrefix:amenity_"`
	BoardingPoints  StopList  `json:"boarding_points" gorm:"type:jsonb"`
	DroppingPoints  StopList  `json:"dropping_points" gorm:"type:jsonb"`

	CreatedBy uuid.UUID `json:"created_by" gorm:"type:uuid;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Bus) TableName() string {
	return "buses"
}

// IsCombo reports whether the bus carries a mixed seater/sleeper layout.
func (b *Bus) IsCombo() bool {
	return seatmap.IsCombo(b.BusType)
}

// LayoutSpec bridges the stored bus into the seatmap core.
func (b *Bus) LayoutSpec() seatmap.LayoutSpec {
	return seatmap.LayoutSpec{BusType: b.BusType, TotalSeats: b.TotalSeats}
}

// FareSpec bridges the stored prices into the seatmap core.
func (b *Bus) FareSpec() seatmap.FareSpec {
	return seatmap.FareSpec{
		Combo:        b.IsCombo(),
		UnitPrice:    b.Price,
		SeaterPrice:  b.SeaterPrice,
		SleeperPrice: b.SleeperPrice,
	}
}

// Validate enforces the pricing and capacity invariants before a bus is
// persisted. Combo buses need both kind prices and always seat 36; other
// buses need a unit price and 1..60 seats.
func (b *Bus) Validate() error {
	if !IsValidBusType(b.BusType) {
		return fmt.Errorf("%w: unknown bus type %q", seatmap.ErrInvalidBusMetadata, b.BusType)
	}
	if b.IsCombo() {
		if b.SeaterPrice <= 0 || b.SleeperPrice <= 0 {
			return fmt.Errorf("%w: combo buses need seater and sleeper prices", seatmap.ErrInvalidBusMetadata)
		}
		b.TotalSeats = seatmap.ComboTotalSeats
		return nil
	}
	if b.Price <= 0 {
		return fmt.Errorf("%w: unit price is required", seatmap.ErrInvalidBusMetadata)
	}
	if b.TotalSeats < 1 || b.TotalSeats > 60 {
		return fmt.Errorf("%w: total seats must be between 1 and 60", seatmap.ErrInvalidBusMetadata)
	}
	return nil
}

var (
	ErrBusNotFound        = errors.New("bus not found")
	ErrDuplicateBusNumber = errors.New("bus number already registered")
)

// CreateBusRequest is the admin payload for adding a bus to the fleet.
type CreateBusRequest struct {
	BusName         string    `json:"bus_name" validate:"required,min=2,max=255"`
	BusNumber       string    `json:"bus_number" validate:"required,min=2,max=50"`
	BusType         string    `json:"bus_type" validate:"required"`
	TotalSeats      int       `json:"total_seats" validate:"omitempty,min=1,max=60"`
	Price           int64     `json:"price" validate:"omitempty,min=0"`
	SeaterPrice     int64     `json:"seater_price" validate:"omitempty,min=0"`
	SleeperPrice    int64     `json:"sleeper_price" validate:"omitempty,min=0"`
	Source          string    `json:"source" validate:"required,min=2,max=255"`
	Destination     string    `json:"destination" validate:"required,min=2,max=255"`
	DepartureTime   string    `json:"departure_time" validate:"required"`
	ArrivalTime     string    `json:"arrival_time" validate:"required"`
	JourneyDuration string    `json:"journey_duration"`
	Description     string    `json:"description" validate:"max=2000"`
	Amenities       Amenities `json:"amenities"`
	BoardingPoints  []Stop    `json:"boarding_points"`
	DroppingPoints  []Stop    `json:"dropping_points"`
}

// UpdateBusRequest carries partial updates; nil fields are left untouched.
type UpdateBusRequest struct {
	BusName         *string    `json:"bus_name" validate:"omitempty,min=2,max=255"`
	BusType         *string    `json:"bus_type"`
	TotalSeats      *int       `json:"total_seats" validate:"omitempty,min=1,max=60"`
	Price           *int64     `json:"price" validate:"omitempty,min=0"`
	SeaterPrice     *int64     `json:"seater_price" validate:"omitempty,min=0"`
	SleeperPrice    *int64     `json:"sleeper_price" validate:"omitempty,min=0"`
	Source          *string    `json:"source" validate:"omitempty,min=2,max=255"`
	Destination     *string    `json:"destination" validate:"omitempty,min=2,max=255"`
	DepartureTime   *string    `json:"departure_time"`
	ArrivalTime     *string    `json:"arrival_time"`
	JourneyDuration *string    `json:"journey_duration"`
	Description     *string    `json:"description" validate:"omitempty,max=2000"`
	Amenities       *Amenities `json:"amenities"`
	BoardingPoints  []Stop     `json:"boarding_points"`
	DroppingPoints  []Stop     `json:"dropping_points"`
}

// BusListQuery is the paging query for fleet listing.
type BusListQuery struct {
	Page  int `form:"page" binding:"omitempty,min=1"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// BusSearchQuery is the public route search. Date is optional and only
// forwarded to the seat availability endpoints, the fleet itself runs daily.
type BusSearchQuery struct {
	Source      string `form:"source" binding:"required"`
	Destination string `form:"destination" binding:"required"`
	Date        string `form:"date"`
}

// PaginatedBuses wraps a fleet page.
type PaginatedBuses struct {
	Buses      []Bus `json:"buses"`
	TotalCount int64 `json:"total_count"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}
