package seats

import (
	"context"
	"errors"
	"testing"

	"busly/internal/buses"
	"busly/internal/seatmap"

	"github.com/google/uuid"
)

type fakeBusDirectory struct {
	bus *buses.Bus
}

func (f *fakeBusDirectory) GetBusByID(ctx context.Context, id uuid.UUID) (*buses.Bus, error) {
	if f.bus == nil || f.bus.ID != id {
		return nil, buses.ErrBusNotFound
	}
	return f.bus, nil
}

type fakeOccupancy struct {
	booked []int
	err    error
}

func (f *fakeOccupancy) GetBookedSeats(ctx context.Context, busID uuid.UUID, journeyDate string) ([]int, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.booked, nil
}

func TestGetSeatMapReconcilesOccupancy(t *testing.T) {
	bus := &buses.Bus{
		ID:         uuid.New(),
		BusType:    buses.BusTypeACSeater,
		TotalSeats: 40,
		Price:      550,
	}
	svc := NewService(&fakeBusDirectory{bus: bus}, &fakeOccupancy{booked: []int{3, 7}})

	view, err := svc.GetSeatMap(context.Background(), bus.ID, "2026-03-15")
	if err != nil {
		t.Fatalf("GetSeatMap returned error: %v", err)
	}

	if view.TotalSeats != 40 {
		t.Errorf("expected 40 seats, got %d", view.TotalSeats)
	}
	if view.AvailableSeats != 38 {
		t.Errorf("expected 38 available, got %d", view.AvailableSeats)
	}
	if view.Degraded {
		t.Error("map must not be degraded when occupancy succeeds")
	}
	for _, seat := range view.Seats {
		wantAvailable := seat.ID != 3 && seat.ID != 7
		if seat.Available != wantAvailable {
			t.Errorf("seat %d availability = %v, want %v", seat.ID, seat.Available, wantAvailable)
		}
	}
}

func TestGetSeatMapFailsOpenOnOccupancyError(t *testing.T) {
	bus := &buses.Bus{
		ID:         uuid.New(),
		BusType:    buses.BusTypeACSeater,
		TotalSeats: 40,
		Price:      550,
	}
	svc := NewService(&fakeBusDirectory{bus: bus}, &fakeOccupancy{err: errors.New("connection refused")})

	view, err := svc.GetSeatMap(context.Background(), bus.ID, "2026-03-15")
	if err != nil {
		t.Fatalf("GetSeatMap must not fail when occupancy is down, got: %v", err)
	}

	if !view.Degraded {
		t.Error("expected degraded flag on occupancy failure")
	}
	if view.AvailableSeats != 40 {
		t.Errorf("expected all 40 seats available, got %d", view.AvailableSeats)
	}
}

func TestGetSeatMapComboLayout(t *testing.T) {
	bus := &buses.Bus{
		ID:           uuid.New(),
		BusType:      buses.BusTypeDeluxeCombo,
		TotalSeats:   seatmap.ComboTotalSeats,
		SeaterPrice:  400,
		SleeperPrice: 700,
	}
	svc := NewService(&fakeBusDirectory{bus: bus}, &fakeOccupancy{booked: []int{29}})

	view, err := svc.GetSeatMap(context.Background(), bus.ID, "2026-03-15")
	if err != nil {
		t.Fatalf("GetSeatMap returned error: %v", err)
	}

	if !view.Combo {
		t.Error("expected combo flag")
	}
	if view.TotalSeats != seatmap.ComboTotalSeats {
		t.Errorf("expected %d seats, got %d", seatmap.ComboTotalSeats, view.TotalSeats)
	}

	// Internal ID 29 is sleeper number 5 on the upper deck.
	for _, seat := range view.Seats {
		if seat.ID == 29 {
			if seat.Available {
				t.Error("seat 29 should be booked")
			}
			if seat.Kind != seatmap.KindSleeper || seat.Number != 5 {
				t.Errorf("seat 29 = %+v, want sleeper number 5", seat)
			}
		}
	}
}

func TestGetSeatMapRejectsBadDate(t *testing.T) {
	bus := &buses.Bus{ID: uuid.New(), BusType: buses.BusTypeACSeater, TotalSeats: 40, Price: 550}
	svc := NewService(&fakeBusDirectory{bus: bus}, &fakeOccupancy{})

	_, err := svc.GetSeatMap(context.Background(), bus.ID, "15-03-2026")
	if !errors.Is(err, seatmap.ErrInvalidSelection) {
		t.Fatalf("expected ErrInvalidSelection, got %v", err)
	}
}

func TestGetSeatMapUnknownBus(t *testing.T) {
	svc := NewService(&fakeBusDirectory{}, &fakeOccupancy{})

	_, err := svc.GetSeatMap(context.Background(), uuid.New(), "2026-03-15")
	if !errors.Is(err, buses.ErrBusNotFound) {
		t.Fatalf("expected ErrBusNotFound, got %v", err)
	}
}
