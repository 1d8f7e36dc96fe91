package seatmap

import (
	"errors"
	"testing"
	"time"
)

func TestQuoteRefundBrackets(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		journeyDate string
		departure   string
		wantPercent int
		wantAmount  int64
	}{
		{"25 hours out", "2026-05-02", "13:00", 90, 900},
		{"exactly 24 hours", "2026-05-02", "12:00", 50, 500},
		{"13 hours out", "2026-05-02", "01:00", 50, 500},
		{"exactly 12 hours", "2026-05-02", "00:00", 25, 250},
		{"7 hours out", "2026-05-01", "19:00", 25, 250},
		{"exactly 6 hours", "2026-05-01", "18:00", 0, 0},
		{"1 hour out", "2026-05-01", "13:00", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := QuoteRefund(tt.journeyDate, tt.departure, 1000, now)
			if err != nil {
				t.Fatalf("QuoteRefund returned error: %v", err)
			}
			if got.JourneyCompleted {
				t.Fatal("future journey flagged as completed")
			}
			if got.Percent != tt.wantPercent || got.Amount != tt.wantAmount {
				t.Fatalf("got %d%%/%d, want %d%%/%d", got.Percent, got.Amount, tt.wantPercent, tt.wantAmount)
			}
		})
	}
}

func TestQuoteRefundRoundsHalfUp(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	// 25% of 999 is 249.75 and must round to 250.
	got, err := QuoteRefund("2026-05-01", "19:30", 999, now)
	if err != nil {
		t.Fatalf("QuoteRefund returned error: %v", err)
	}
	if got.Amount != 250 {
		t.Fatalf("expected 250, got %d", got.Amount)
	}
}

func TestQuoteRefundCompletedJourney(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		journeyDate string
		departure   string
	}{
		{"departed yesterday", "2026-04-30", "18:00"},
		{"departed this morning", "2026-05-01", "08:15"},
		{"departing right now", "2026-05-01", "12:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := QuoteRefund(tt.journeyDate, tt.departure, 1500, now)
			if err != nil {
				t.Fatalf("QuoteRefund returned error: %v", err)
			}
			if !got.JourneyCompleted {
				t.Fatal("expected JourneyCompleted")
			}
			if got.Percent != 0 || got.Amount != 0 {
				t.Fatalf("completed journey must quote zero, got %d%%/%d", got.Percent, got.Amount)
			}
		})
	}
}

func TestQuoteRefundNormalizesDepartureForms(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	// Departure time stored as a full timestamp still means 13:00 wall clock.
	forms := []string{"13:00", "13:00:00", "2026-05-02T13:00:00", "2026-05-02T13:00:00Z"}
	for _, form := range forms {
		got, err := QuoteRefund("2026-05-02", form, 1000, now)
		if err != nil {
			t.Fatalf("QuoteRefund(%q) returned error: %v", form, err)
		}
		if got.Percent != 90 {
			t.Fatalf("QuoteRefund(%q) = %d%%, want 90%%", form, got.Percent)
		}
	}
}

func TestQuoteRefundInvalidSchedule(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		journeyDate string
		departure   string
	}{
		{"empty departure", "2026-05-02", ""},
		{"garbage departure", "2026-05-02", "noonish"},
		{"garbage date", "someday", "13:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := QuoteRefund(tt.journeyDate, tt.departure, 1000, now); !errors.Is(err, ErrInvalidBusMetadata) {
				t.Fatalf("expected ErrInvalidBusMetadata, got %v", err)
			}
		})
	}
}
