package buses

import (
	"errors"
	"testing"

	"busly/internal/seatmap"
)

func TestBusValidate(t *testing.T) {
	tests := []struct {
		name    string
		bus     Bus
		wantErr bool
	}{
		{"valid seater", Bus{BusType: BusTypeACSeater, TotalSeats: 40, Price: 550}, false},
		{"valid sleeper", Bus{BusType: BusTypeNonACSleeper, TotalSeats: 30, Price: 700}, false},
		{"valid combo", Bus{BusType: BusTypeDeluxeCombo, SeaterPrice: 400, SleeperPrice: 700}, false},
		{"unknown type", Bus{BusType: "Minivan", TotalSeats: 10, Price: 100}, true},
		{"seater without price", Bus{BusType: BusTypeACSeater, TotalSeats: 40}, true},
		{"too many seats", Bus{BusType: BusTypeACSeater, TotalSeats: 61, Price: 550}, true},
		{"combo missing sleeper price", Bus{BusType: BusTypeDeluxeCombo, SeaterPrice: 400}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.bus.Validate()
			if tt.wantErr {
				if !errors.Is(err, seatmap.ErrInvalidBusMetadata) {
					t.Fatalf("expected ErrInvalidBusMetadata, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate returned error: %v", err)
			}
		})
	}
}

func TestBusValidatePinsComboSeats(t *testing.T) {
	bus := Bus{BusType: BusTypeDeluxeCombo, TotalSeats: 50, SeaterPrice: 400, SleeperPrice: 700}
	if err := bus.Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if bus.TotalSeats != seatmap.ComboTotalSeats {
		t.Fatalf("expected combo seats pinned to %d, got %d", seatmap.ComboTotalSeats, bus.TotalSeats)
	}
}

func TestBusFareSpec(t *testing.T) {
	combo := Bus{BusType: BusTypeDeluxeCombo, SeaterPrice: 400, SleeperPrice: 700}
	spec := combo.FareSpec()
	if !spec.Combo || spec.SeaterPrice != 400 || spec.SleeperPrice != 700 {
		t.Fatalf("unexpected combo fare spec: %+v", spec)
	}

	seater := Bus{BusType: BusTypeACSeater, Price: 550}
	spec = seater.FareSpec()
	if spec.Combo || spec.UnitPrice != 550 {
		t.Fatalf("unexpected seater fare spec: %+v", spec)
	}
}
