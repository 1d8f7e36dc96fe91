package seatmap

import (
	"strings"
	"time"
)

// RefundQuote is the outcome of applying the cancellation policy.
// Amount is in whole rupees, rounded half up from the percentage cut.
type RefundQuote struct {
	Percent          int   `json:"percent"`
	Amount           int64 `json:"amount"`
	JourneyCompleted bool  `json:"journey_completed"`
}

const (
	layoutDate     = "2006-01-02"
	layoutClock    = "15:04"
	layoutDateTime = "2006-01-02T15:04"
)

// QuoteRefund applies the time-bracketed refund policy for a journey
// departing at journeyDate+departureTime, evaluated against the supplied
// clock. More than 24 hours out refunds 90%, more than 12 refunds 50%,
// more than 6 refunds 25%, anything closer refunds nothing. A departure
// at or before now yields a zero quote flagged JourneyCompleted; deciding
// whether that is an error belongs to the caller.
func QuoteRefund(journeyDate, departureTime string, totalAmount int64, now time.Time) (RefundQuote, error) {
	clock, err := normalizeClock(departureTime)
	if err != nil {
		return RefundQuote{}, err
	}
	departure, err := time.ParseInLocation(layoutDateTime, journeyDate+"T"+clock, now.Location())
	if err != nil {
		return RefundQuote{}, ErrInvalidBusMetadata
	}

	if !departure.After(now) {
		return RefundQuote{JourneyCompleted: true}, nil
	}

	hours := departure.Sub(now).Hours()
	var percent int
	switch {
	case hours > 24:
		percent = 90
	case hours > 12:
		percent = 50
	case hours > 6:
		percent = 25
	default:
		percent = 0
	}

	return RefundQuote{
		Percent: percent,
		Amount:  (totalAmount*int64(percent) + 50) / 100,
	}, nil
}

// normalizeClock reduces the departure time field to HH:mm. The field has
// been stored both as a bare wall clock and as a full timestamp, so both
// forms must parse.
func normalizeClock(departureTime string) (string, error) {
	v := strings.TrimSpace(departureTime)
	if v == "" {
		return "", ErrInvalidBusMetadata
	}
	for _, layout := range []string{layoutClock, "15:04:05", time.RFC3339, "2006-01-02T15:04:05", layoutDateTime} {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format(layoutClock), nil
		}
	}
	return "", ErrInvalidBusMetadata
}
