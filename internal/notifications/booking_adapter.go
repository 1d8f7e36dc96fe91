package notifications

import (
	"context"
	"fmt"
	"strings"

	"busly/internal/bookings"
	"busly/internal/buses"

	"github.com/google/uuid"
)

// UserDirectory resolves recipient contact details.
type UserDirectory interface {
	GetUserByID(ctx context.Context, userID uuid.UUID) (email, firstName, lastName string, err error)
}

// BusDirectory resolves route details for email content.
type BusDirectory interface {
	GetBusByID(ctx context.Context, id uuid.UUID) (*buses.Bus, error)
}

// BookingPublisherAdapter turns booking lifecycle events into email
// notifications. It satisfies bookings.NotificationPublisher so the
// bookings package never imports Kafka directly.
type BookingPublisherAdapter struct {
	producer NotificationProducer
	users    UserDirectory
	fleet    BusDirectory
}

func NewBookingPublisherAdapter(producer NotificationProducer, users UserDirectory, fleet BusDirectory) *BookingPublisherAdapter {
	return &BookingPublisherAdapter{
		producer: producer,
		users:    users,
		fleet:    fleet,
	}
}

func (a *BookingPublisherAdapter) PublishBookingConfirmed(ctx context.Context, booking *bookings.Booking) error {
	email, firstName, lastName, err := a.users.GetUserByID(ctx, booking.UserID)
	if err != nil {
		return err
	}

	data := map[string]interface{}{
		"booking_ref":  booking.BookingRef,
		"journey_date": booking.JourneyDate,
		"seats":        seatNumbers(booking.Seats),
		"total_amount": booking.TotalAmount,
	}
	if bus, err := a.fleet.GetBusByID(ctx, booking.BusID); err == nil {
		data["source"] = bus.Source
		data["destination"] = bus.Destination
		data["departure_time"] = bus.DepartureTime
	}

	notification := NewNotificationBuilder().
		WithType(NotificationTypeBookingConfirmed).
		WithRecipient(booking.UserID, email, recipientName(firstName, lastName)).
		WithBookingContext(booking.ID).
		WithBusContext(booking.BusID).
		WithTemplateData(data).
		WithSubject(fmt.Sprintf("✅ Booking Confirmed - %s", booking.BookingRef)).
		Build()

	return a.producer.PublishNotification(ctx, notification)
}

func (a *BookingPublisherAdapter) PublishBookingCancelled(ctx context.Context, booking *bookings.Booking) error {
	email, firstName, lastName, err := a.users.GetUserByID(ctx, booking.UserID)
	if err != nil {
		return err
	}

	notification := NewNotificationBuilder().
		WithType(NotificationTypeBookingCancelled).
		WithRecipient(booking.UserID, email, recipientName(firstName, lastName)).
		WithBookingContext(booking.ID).
		WithBusContext(booking.BusID).
		WithTemplateData(map[string]interface{}{
			"booking_ref":    booking.BookingRef,
			"journey_date":   booking.JourneyDate,
			"refund_percent": booking.RefundPercent,
			"refund_amount":  booking.RefundAmount,
		}).
		WithSubject(fmt.Sprintf("❌ Booking Cancelled - %s", booking.BookingRef)).
		Build()

	return a.producer.PublishNotification(ctx, notification)
}

func recipientName(firstName, lastName string) string {
	return strings.TrimSpace(firstName + " " + lastName)
}

func seatNumbers(seats []bookings.BookingSeat) string {
	parts := make([]string, 0, len(seats))
	for _, seat := range seats {
		label := fmt.Sprintf("%d", seat.SeatNumber)
		if seat.Kind != "" {
			label = fmt.Sprintf("%s %d", seat.Kind, seat.SeatNumber)
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, ", ")
}
