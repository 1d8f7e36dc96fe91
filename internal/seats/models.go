package seats

import (
	"busly/internal/seatmap"
)

// SeatMapView is the reconciled seat map served to booking clients.
// Degraded is set when the occupancy feed was unreachable and the map
// was served fail open with every seat shown available.
type SeatMapView struct {
	BusID          string         `json:"bus_id"`
	JourneyDate    string         `json:"journey_date"`
	BusType        string         `json:"bus_type"`
	Combo          bool           `json:"combo"`
	TotalSeats     int            `json:"total_seats"`
	AvailableSeats int            `json:"available_seats"`
	Seats          []seatmap.Seat `json:"seats"`
	Degraded       bool           `json:"degraded"`
}
