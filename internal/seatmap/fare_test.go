package seatmap

import (
	"errors"
	"reflect"
	"testing"
)

func seaterLayout(t *testing.T, n int) []Seat {
	t.Helper()
	layout, err := GenerateLayout(LayoutSpec{BusType: "AC Seater", TotalSeats: n})
	if err != nil {
		t.Fatalf("GenerateLayout returned error: %v", err)
	}
	return layout
}

func comboLayout(t *testing.T) []Seat {
	t.Helper()
	layout, err := GenerateLayout(LayoutSpec{BusType: "Deluxe Combo"})
	if err != nil {
		t.Fatalf("GenerateLayout returned error: %v", err)
	}
	return layout
}

func TestComputeFareUnitPrice(t *testing.T) {
	layout := seaterLayout(t, 40)
	fare := FareSpec{UnitPrice: 550}

	tests := []struct {
		name      string
		selection []Selection
		want      int64
	}{
		{"one seat", []Selection{{Number: 1}}, 550},
		{"three seats", []Selection{{Number: 1}, {Number: 12}, {Number: 40}}, 1650},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeFare(layout, fare, tt.selection)
			if err != nil {
				t.Fatalf("ComputeFare returned error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("ComputeFare = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestComputeFareCombo(t *testing.T) {
	layout := comboLayout(t)
	fare := FareSpec{Combo: true, SeaterPrice: 400, SleeperPrice: 700}

	got, err := ComputeFare(layout, fare, []Selection{
		{Number: 3, Kind: KindSeater},
		{Number: 3, Kind: KindSleeper},
		{Number: 10, Kind: KindSleeper},
	})
	if err != nil {
		t.Fatalf("ComputeFare returned error: %v", err)
	}
	if want := int64(400 + 700 + 700); got != want {
		t.Fatalf("ComputeFare = %d, want %d", got, want)
	}
}

func TestComputeFareInvalidSelection(t *testing.T) {
	seater := seaterLayout(t, 10)
	combo := comboLayout(t)

	tests := []struct {
		name      string
		layout    []Seat
		fare      FareSpec
		selection []Selection
	}{
		{"empty selection", seater, FareSpec{UnitPrice: 100}, nil},
		{"duplicate seat", seater, FareSpec{UnitPrice: 100}, []Selection{{Number: 4}, {Number: 4}}},
		{"out of range", seater, FareSpec{UnitPrice: 100}, []Selection{{Number: 11}}},
		{"combo without kind", combo, FareSpec{Combo: true, SeaterPrice: 400, SleeperPrice: 700}, []Selection{{Number: 3}}},
		{"combo sleeper out of range", combo, FareSpec{Combo: true, SeaterPrice: 400, SleeperPrice: 700}, []Selection{{Number: 13, Kind: KindSleeper}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ComputeFare(tt.layout, tt.fare, tt.selection); !errors.Is(err, ErrInvalidSelection) {
				t.Fatalf("expected ErrInvalidSelection, got %v", err)
			}
		})
	}
}

func TestComputeFareMissingPrices(t *testing.T) {
	tests := []struct {
		name   string
		layout []Seat
		fare   FareSpec
	}{
		{"no unit price", seaterLayout(t, 10), FareSpec{}},
		{"combo missing sleeper price", comboLayout(t), FareSpec{Combo: true, SeaterPrice: 400}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ComputeFare(tt.layout, tt.fare, []Selection{{Number: 1, Kind: KindSeater}}); !errors.Is(err, ErrInvalidBusMetadata) {
				t.Fatalf("expected ErrInvalidBusMetadata, got %v", err)
			}
		})
	}
}

func TestSelectionIDs(t *testing.T) {
	combo := comboLayout(t)
	got, err := SelectionIDs(combo, []Selection{
		{Number: 3, Kind: KindSleeper},
		{Number: 3, Kind: KindSeater},
	}, true)
	if err != nil {
		t.Fatalf("SelectionIDs returned error: %v", err)
	}
	if want := []int{27, 3}; !reflect.DeepEqual(got, want) {
		t.Fatalf("SelectionIDs = %v, want %v", got, want)
	}

	if _, err := SelectionIDs(combo, []Selection{{Number: 3}}, true); !errors.Is(err, ErrInvalidSelection) {
		t.Fatalf("expected ErrInvalidSelection for kind-less combo selection, got %v", err)
	}
}
