package seatmap

import (
	"errors"
	"testing"
)

func TestGenerateLayoutSeater(t *testing.T) {
	seats, err := GenerateLayout(LayoutSpec{BusType: "AC Seater", TotalSeats: 40})
	if err != nil {
		t.Fatalf("GenerateLayout returned error: %v", err)
	}
	if len(seats) != 40 {
		t.Fatalf("expected 40 seats, got %d", len(seats))
	}
	for i, seat := range seats {
		if seat.ID != i+1 || seat.Number != i+1 {
			t.Errorf("seat %d: got ID=%d Number=%d", i, seat.ID, seat.Number)
		}
		if seat.Kind != KindSeater {
			t.Errorf("seat %d: expected seater, got %s", i, seat.Kind)
		}
		if seat.Deck != DeckSingle {
			t.Errorf("seat %d: expected single deck, got %s", i, seat.Deck)
		}
		if !seat.Available {
			t.Errorf("seat %d: new layout must be fully available", i)
		}
	}
}

func TestGenerateLayoutSleeperFallback(t *testing.T) {
	tests := []struct {
		name    string
		busType string
	}{
		{"explicit sleeper", "Non AC Sleeper"},
		{"unknown label", "Volvo Express"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seats, err := GenerateLayout(LayoutSpec{BusType: tt.busType, TotalSeats: 30})
			if err != nil {
				t.Fatalf("GenerateLayout returned error: %v", err)
			}
			if len(seats) != 30 {
				t.Fatalf("expected 30 seats, got %d", len(seats))
			}
			for _, seat := range seats {
				if seat.Kind != KindSleeper {
					t.Fatalf("seat %d: expected sleeper, got %s", seat.Number, seat.Kind)
				}
			}
		})
	}
}

func TestGenerateLayoutCombo(t *testing.T) {
	// TotalSeats is deliberately wrong: combo capacity is fixed.
	seats, err := GenerateLayout(LayoutSpec{BusType: "Deluxe Combo", TotalSeats: 50})
	if err != nil {
		t.Fatalf("GenerateLayout returned error: %v", err)
	}
	if len(seats) != ComboTotalSeats {
		t.Fatalf("expected %d seats, got %d", ComboTotalSeats, len(seats))
	}
	for i := 0; i < 24; i++ {
		seat := seats[i]
		if seat.Kind != KindSeater || seat.Deck != DeckLower {
			t.Errorf("seat %d: expected lower-deck seater, got %s/%s", i, seat.Kind, seat.Deck)
		}
		if seat.ID != i+1 || seat.Number != i+1 {
			t.Errorf("seat %d: got ID=%d Number=%d", i, seat.ID, seat.Number)
		}
	}
	for i := 0; i < 12; i++ {
		seat := seats[24+i]
		if seat.Kind != KindSleeper || seat.Deck != DeckUpper {
			t.Errorf("sleeper %d: expected upper-deck sleeper, got %s/%s", i, seat.Kind, seat.Deck)
		}
		if seat.Number != i+1 {
			t.Errorf("sleeper %d: expected Number %d, got %d", i, i+1, seat.Number)
		}
		if seat.ID != i+25 {
			t.Errorf("sleeper %d: expected ID %d, got %d", i, i+25, seat.ID)
		}
	}
}

func TestGenerateLayoutCaseInsensitive(t *testing.T) {
	seats, err := GenerateLayout(LayoutSpec{BusType: "deluxe COMBO", TotalSeats: 0})
	if err != nil {
		t.Fatalf("GenerateLayout returned error: %v", err)
	}
	if len(seats) != ComboTotalSeats {
		t.Fatalf("expected combo layout, got %d seats", len(seats))
	}
}

func TestGenerateLayoutInvalidMetadata(t *testing.T) {
	tests := []struct {
		name string
		spec LayoutSpec
	}{
		{"empty bus type", LayoutSpec{BusType: "  ", TotalSeats: 40}},
		{"zero seats", LayoutSpec{BusType: "AC Seater", TotalSeats: 0}},
		{"negative seats", LayoutSpec{BusType: "AC Sleeper", TotalSeats: -3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := GenerateLayout(tt.spec); !errors.Is(err, ErrInvalidBusMetadata) {
				t.Fatalf("expected ErrInvalidBusMetadata, got %v", err)
			}
		})
	}
}
