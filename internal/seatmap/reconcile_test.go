package seatmap

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestReconcileMarksBookedSeats(t *testing.T) {
	layout, err := GenerateLayout(LayoutSpec{BusType: "AC Seater", TotalSeats: 10})
	if err != nil {
		t.Fatalf("GenerateLayout returned error: %v", err)
	}

	got := Reconcile(layout, []int{2, 7})
	for _, seat := range got {
		wantAvailable := seat.ID != 2 && seat.ID != 7
		if seat.Available != wantAvailable {
			t.Errorf("seat %d: available=%v, want %v", seat.ID, seat.Available, wantAvailable)
		}
	}
}

func TestReconcileDoesNotMutateInput(t *testing.T) {
	layout, _ := GenerateLayout(LayoutSpec{BusType: "AC Seater", TotalSeats: 5})
	snapshot := make([]Seat, len(layout))
	copy(snapshot, layout)

	Reconcile(layout, []int{1, 2, 3})
	if !reflect.DeepEqual(layout, snapshot) {
		t.Fatal("Reconcile mutated its input layout")
	}
}

func TestReconcileIgnoresUnknownIDs(t *testing.T) {
	layout, _ := GenerateLayout(LayoutSpec{BusType: "AC Seater", TotalSeats: 4})
	got := Reconcile(layout, []int{99, -1, 0, 3})
	for _, seat := range got {
		wantAvailable := seat.ID != 3
		if seat.Available != wantAvailable {
			t.Errorf("seat %d: available=%v, want %v", seat.ID, seat.Available, wantAvailable)
		}
	}
}

func TestReconcileIdempotent(t *testing.T) {
	layout, _ := GenerateLayout(LayoutSpec{BusType: "Deluxe Combo"})
	booked := []int{1, 25, 36}
	once := Reconcile(layout, booked)
	twice := Reconcile(once, booked)
	if !reflect.DeepEqual(once, twice) {
		t.Fatal("reconciling twice changed the result")
	}
}

func TestReconcileComboUsesInternalIDs(t *testing.T) {
	layout, _ := GenerateLayout(LayoutSpec{BusType: "Deluxe Combo"})

	// ID 25 is upper-deck sleeper number 1; seater number 1 must stay free.
	got := Reconcile(layout, []int{25})
	for _, seat := range got {
		switch {
		case seat.Kind == KindSleeper && seat.Number == 1:
			if seat.Available {
				t.Error("sleeper 1 (ID 25) should be booked")
			}
		case seat.Kind == KindSeater && seat.Number == 1:
			if !seat.Available {
				t.Error("seater 1 should remain available")
			}
		}
	}
}

func TestParseOccupancy(t *testing.T) {
	raw := []any{1, int64(2), float64(3), json.Number("4"), " 5 ", "abc", nil, true}
	got := ParseOccupancy(raw)
	want := []int{1, 2, 3, 4, 5}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseOccupancy = %v, want %v", got, want)
	}
}

func TestParseOccupancyThenReconcile(t *testing.T) {
	layout, _ := GenerateLayout(LayoutSpec{BusType: "Non AC Seater", TotalSeats: 6})

	// Occupancy lists arrive with mixed numeric representations.
	got := Reconcile(layout, ParseOccupancy([]any{"2", float64(4)}))
	for _, seat := range got {
		wantAvailable := seat.ID != 2 && seat.ID != 4
		if seat.Available != wantAvailable {
			t.Errorf("seat %d: available=%v, want %v", seat.ID, seat.Available, wantAvailable)
		}
	}
}
