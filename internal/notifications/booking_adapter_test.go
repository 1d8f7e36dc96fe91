package notifications

import (
	"context"
	"strings"
	"testing"

	"busly/internal/bookings"
	"busly/internal/buses"

	"github.com/google/uuid"
)

type capturingProducer struct {
	published []*EmailNotification
}

func (p *capturingProducer) PublishNotification(ctx context.Context, n *EmailNotification) error {
	p.published = append(p.published, n)
	return nil
}

func (p *capturingProducer) PublishBatchNotifications(ctx context.Context, ns []*EmailNotification) error {
	p.published = append(p.published, ns...)
	return nil
}

func (p *capturingProducer) Close() error { return nil }

type staticUserDirectory struct{}

func (staticUserDirectory) GetUserByID(ctx context.Context, userID uuid.UUID) (string, string, string, error) {
	return "rider@example.com", "Asha", "Kulkarni", nil
}

type staticFleet struct {
	bus *buses.Bus
}

func (f staticFleet) GetBusByID(ctx context.Context, id uuid.UUID) (*buses.Bus, error) {
	return f.bus, nil
}

func TestPublishBookingConfirmed(t *testing.T) {
	producer := &capturingProducer{}
	bus := &buses.Bus{
		ID:            uuid.New(),
		Source:        "Pune",
		Destination:   "Mumbai",
		DepartureTime: "08:30",
	}
	adapter := NewBookingPublisherAdapter(producer, staticUserDirectory{}, staticFleet{bus: bus})

	booking := &bookings.Booking{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		BusID:       bus.ID,
		JourneyDate: "2026-03-15",
		BookingRef:  "BSL-20260310-K7M2QX",
		TotalAmount: 1100,
		Seats: []bookings.BookingSeat{
			{SeatNumber: 5, Kind: "seater"},
			{SeatNumber: 5, Kind: "sleeper"},
		},
	}

	if err := adapter.PublishBookingConfirmed(context.Background(), booking); err != nil {
		t.Fatalf("PublishBookingConfirmed returned error: %v", err)
	}
	if len(producer.published) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(producer.published))
	}

	n := producer.published[0]
	if n.Type != NotificationTypeBookingConfirmed {
		t.Errorf("unexpected type %s", n.Type)
	}
	if n.RecipientEmail != "rider@example.com" || n.RecipientName != "Asha Kulkarni" {
		t.Errorf("unexpected recipient %s (%s)", n.RecipientEmail, n.RecipientName)
	}
	if !strings.Contains(n.Subject, booking.BookingRef) {
		t.Errorf("subject %q missing booking ref", n.Subject)
	}
	if n.TemplateData["source"] != "Pune" || n.TemplateData["destination"] != "Mumbai" {
		t.Errorf("route missing from template data: %v", n.TemplateData)
	}
	if n.TemplateData["seats"] != "seater 5, sleeper 5" {
		t.Errorf("unexpected seat labels %v", n.TemplateData["seats"])
	}
	if n.GetPartitionKey() != booking.UserID.String() {
		t.Errorf("partition key should be the recipient, got %s", n.GetPartitionKey())
	}
}

func TestPublishBookingCancelledCarriesRefund(t *testing.T) {
	producer := &capturingProducer{}
	adapter := NewBookingPublisherAdapter(producer, staticUserDirectory{}, staticFleet{bus: &buses.Bus{}})

	booking := &bookings.Booking{
		ID:            uuid.New(),
		UserID:        uuid.New(),
		BusID:         uuid.New(),
		BookingRef:    "BSL-20260310-TEST01",
		RefundPercent: 90,
		RefundAmount:  1485,
	}

	if err := adapter.PublishBookingCancelled(context.Background(), booking); err != nil {
		t.Fatalf("PublishBookingCancelled returned error: %v", err)
	}

	n := producer.published[0]
	if n.Type != NotificationTypeBookingCancelled {
		t.Errorf("unexpected type %s", n.Type)
	}
	if n.TemplateData["refund_percent"] != 90 || n.TemplateData["refund_amount"] != int64(1485) {
		t.Errorf("refund data missing: %v", n.TemplateData)
	}
	if n.Priority != NotificationPriorityHigh {
		t.Errorf("cancellations should be high priority, got %s", n.Priority)
	}
}
