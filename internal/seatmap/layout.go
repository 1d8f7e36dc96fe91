// Package seatmap holds the pure seat-inventory core: layout generation,
// occupancy reconciliation, fare calculation and refund quoting. It performs
// no I/O; callers pass everything in, including the clock.
package seatmap

import "strings"

type SeatKind string

const (
	KindSeater  SeatKind = "seater"
	KindSleeper SeatKind = "sleeper"
)

type Deck string

const (
	DeckLower  Deck = "lower"
	DeckUpper  Deck = "upper"
	DeckSingle Deck = "single"
)

// Seat is one position in a bus layout. ID is the internal identifier used
// for occupancy matching; Number is what passengers see. The two differ only
// on combo buses, where upper-deck sleepers are numbered 1..12 but carry
// IDs 25..36 so they never collide with the lower-deck seaters.
type Seat struct {
	ID        int      `json:"id"`
	Number    int      `json:"number"`
	Kind      SeatKind `json:"kind"`
	Deck      Deck     `json:"deck"`
	Available bool     `json:"available"`
}

// LayoutSpec describes a bus well enough to generate its seat layout.
type LayoutSpec struct {
	BusType    string
	TotalSeats int
}

const (
	comboSeaterCount  = 24
	comboSleeperCount = 12
	// ComboTotalSeats is the fixed capacity of a combo bus.
	ComboTotalSeats = comboSeaterCount + comboSleeperCount
)

// IsCombo reports whether a bus type label denotes a mixed
// seater/sleeper layout. Matching is case-insensitive substring,
// so "Deluxe Combo" and "combo" both qualify.
func IsCombo(busType string) bool {
	return strings.Contains(strings.ToLower(busType), "combo")
}

func isSeater(busType string) bool {
	return strings.Contains(strings.ToLower(busType), "seater")
}

// GenerateLayout builds the full seat layout for a bus with every seat
// available. Combo buses always get 24 lower-deck seaters plus 12 upper-deck
// sleepers regardless of TotalSeats. Any other type yields a single-deck run
// of TotalSeats seats; labels containing "seater" produce seater seats and
// everything else falls back to sleeper.
func GenerateLayout(spec LayoutSpec) ([]Seat, error) {
	if strings.TrimSpace(spec.BusType) == "" {
		return nil, ErrInvalidBusMetadata
	}

	if IsCombo(spec.BusType) {
		seats := make([]Seat, 0, ComboTotalSeats)
		for i := 1; i <= comboSeaterCount; i++ {
			seats = append(seats, Seat{ID: i, Number: i, Kind: KindSeater, Deck: DeckLower, Available: true})
		}
		for i := 1; i <= comboSleeperCount; i++ {
			seats = append(seats, Seat{ID: i + comboSeaterCount, Number: i, Kind: KindSleeper, Deck: DeckUpper, Available: true})
		}
		return seats, nil
	}

	if spec.TotalSeats <= 0 {
		return nil, ErrInvalidBusMetadata
	}

	kind := KindSleeper
	if isSeater(spec.BusType) {
		kind = KindSeater
	}

	seats := make([]Seat, 0, spec.TotalSeats)
	for i := 1; i <= spec.TotalSeats; i++ {
		seats = append(seats, Seat{ID: i, Number: i, Kind: kind, Deck: DeckSingle, Available: true})
	}
	return seats, nil
}
