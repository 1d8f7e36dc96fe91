package bookings

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"busly/internal/buses"
	"busly/internal/seatmap"
	"busly/pkg/logger"

	"github.com/google/uuid"
)

type fakeRepository struct {
	bookings map[uuid.UUID]*Booking
	occupied map[string][]int

	created         *Booking
	cancelledID     uuid.UUID
	cancelPercent   int
	cancelAmount    int64
	cancelCalled    bool
	updatedPayments []Payment
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		bookings: make(map[uuid.UUID]*Booking),
		occupied: make(map[string][]int),
	}
}

func occupancyKey(busID uuid.UUID, journeyDate string) string {
	return busID.String() + "|" + journeyDate
}

func (f *fakeRepository) CreateWithOccupancyCheck(ctx context.Context, booking *Booking, seatIDs []int) error {
	taken := f.occupied[occupancyKey(booking.BusID, booking.JourneyDate)]
	for _, id := range seatIDs {
		for _, t := range taken {
			if id == t {
				return ErrSeatsUnavailable
			}
		}
	}
	booking.ID = uuid.New()
	booking.CreatedAt = time.Now()
	f.bookings[booking.ID] = booking
	f.created = booking
	f.occupied[occupancyKey(booking.BusID, booking.JourneyDate)] = append(taken, seatIDs...)
	return nil
}

func (f *fakeRepository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	booking, ok := f.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	return booking, nil
}

func (f *fakeRepository) GetByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Booking, error) {
	var list []Booking
	for _, b := range f.bookings {
		if b.UserID == userID {
			list = append(list, *b)
		}
	}
	return list, nil
}

func (f *fakeRepository) GetAll(ctx context.Context, query BookingListQuery) ([]Booking, int64, error) {
	var list []Booking
	for _, b := range f.bookings {
		list = append(list, *b)
	}
	return list, int64(len(list)), nil
}

func (f *fakeRepository) Cancel(ctx context.Context, id uuid.UUID, refundPercent int, refundAmount int64) error {
	booking, ok := f.bookings[id]
	if !ok || booking.Status != StatusConfirmed {
		return ErrAlreadyCancelled
	}
	booking.Status = StatusCancelled
	booking.RefundPercent = refundPercent
	booking.RefundAmount = refundAmount
	f.cancelCalled = true
	f.cancelledID = id
	f.cancelPercent = refundPercent
	f.cancelAmount = refundAmount
	return nil
}

func (f *fakeRepository) GetBookedSeatIDs(ctx context.Context, busID uuid.UUID, journeyDate string) ([]int, error) {
	return f.occupied[occupancyKey(busID, journeyDate)], nil
}

func (f *fakeRepository) UpdatePayment(ctx context.Context, payment *Payment) error {
	f.updatedPayments = append(f.updatedPayments, *payment)
	return nil
}

type fakeBusDirectory struct {
	bus *buses.Bus
}

func (f *fakeBusDirectory) GetBusByID(ctx context.Context, id uuid.UUID) (*buses.Bus, error) {
	if f.bus == nil || f.bus.ID != id {
		return nil, buses.ErrBusNotFound
	}
	return f.bus, nil
}

func seaterBus() *buses.Bus {
	return &buses.Bus{
		ID:            uuid.New(),
		BusName:       "Shivneri Express",
		BusNumber:     "MH-12-AB-1234",
		BusType:       buses.BusTypeACSeater,
		TotalSeats:    40,
		Price:         550,
		Source:        "Pune",
		Destination:   "Mumbai",
		DepartureTime: "08:30",
		ArrivalTime:   "12:00",
	}
}

func comboBus() *buses.Bus {
	return &buses.Bus{
		ID:            uuid.New(),
		BusName:       "Deluxe Night Rider",
		BusNumber:     "MH-14-CD-5678",
		BusType:       buses.BusTypeDeluxeCombo,
		TotalSeats:    seatmap.ComboTotalSeats,
		SeaterPrice:   400,
		SleeperPrice:  700,
		Source:        "Pune",
		Destination:   "Nagpur",
		DepartureTime: "21:00",
		ArrivalTime:   "06:30",
	}
}

func newTestService(repo Repository, dir BusDirectory, now time.Time) *service {
	return &service{
		repo:         repo,
		busDirectory: dir,
		log:          logger.GetDefault(),
		nowFn:        func() time.Time { return now },
	}
}

func passengers(n int) []PassengerInfo {
	list := make([]PassengerInfo, n)
	for i := range list {
		list[i] = PassengerInfo{Name: "Passenger", Age: 30}
	}
	return list
}

func TestCreateBookingRecomputesFare(t *testing.T) {
	repo := newFakeRepository()
	bus := seaterBus()
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	svc := newTestService(repo, &fakeBusDirectory{bus: bus}, now)

	confirmation, err := svc.CreateBooking(context.Background(), uuid.New(), CreateBookingRequest{
		BusID:       bus.ID.String(),
		JourneyDate: "2026-03-15",
		Seats:       []seatmap.Selection{{Number: 3}, {Number: 7}, {Number: 12}},
		Passengers:  passengers(3),
		PaymentMethod: "upi",
	})
	if err != nil {
		t.Fatalf("CreateBooking returned error: %v", err)
	}

	if confirmation.TotalAmount != 1650 {
		t.Errorf("expected fare 1650, got %d", confirmation.TotalAmount)
	}
	if len(confirmation.Seats) != 3 {
		t.Fatalf("expected 3 seat rows, got %d", len(confirmation.Seats))
	}
	if !strings.HasPrefix(confirmation.BookingRef, "BSL-20260310-") {
		t.Errorf("unexpected booking ref %q", confirmation.BookingRef)
	}
	if confirmation.Payment.Status != "COMPLETED" {
		t.Errorf("expected settled payment, got status %s", confirmation.Payment.Status)
	}
	if repo.created == nil {
		t.Fatal("expected booking to be persisted")
	}
}

func TestCreateBookingComboPricing(t *testing.T) {
	repo := newFakeRepository()
	bus := comboBus()
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	svc := newTestService(repo, &fakeBusDirectory{bus: bus}, now)

	confirmation, err := svc.CreateBooking(context.Background(), uuid.New(), CreateBookingRequest{
		BusID:       bus.ID.String(),
		JourneyDate: "2026-03-15",
		Seats: []seatmap.Selection{
			{Number: 5, Kind: seatmap.KindSeater},
			{Number: 5, Kind: seatmap.KindSleeper},
		},
		Passengers:    passengers(2),
		PaymentMethod: "card",
	})
	if err != nil {
		t.Fatalf("CreateBooking returned error: %v", err)
	}

	if confirmation.TotalAmount != 1100 {
		t.Errorf("expected fare 1100, got %d", confirmation.TotalAmount)
	}

	// Sleeper 5 maps to internal seat ID 29 on a combo layout.
	var sleeperID int
	for _, seat := range repo.created.Seats {
		if seat.Kind == string(seatmap.KindSleeper) {
			sleeperID = seat.SeatID
		}
	}
	if sleeperID != 29 {
		t.Errorf("expected sleeper internal ID 29, got %d", sleeperID)
	}
}

func TestCreateBookingRejectsMismatchedTotal(t *testing.T) {
	repo := newFakeRepository()
	bus := seaterBus()
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	svc := newTestService(repo, &fakeBusDirectory{bus: bus}, now)

	_, err := svc.CreateBooking(context.Background(), uuid.New(), CreateBookingRequest{
		BusID:         bus.ID.String(),
		JourneyDate:   "2026-03-15",
		Seats:         []seatmap.Selection{{Number: 3}},
		Passengers:    passengers(1),
		PaymentMethod: "upi",
		TotalAmount:   100,
	})
	if !errors.Is(err, seatmap.ErrInvalidSelection) {
		t.Fatalf("expected ErrInvalidSelection, got %v", err)
	}
	if repo.created != nil {
		t.Fatal("booking must not be persisted on fare mismatch")
	}
}

func TestCreateBookingSeatConflict(t *testing.T) {
	repo := newFakeRepository()
	bus := seaterBus()
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	svc := newTestService(repo, &fakeBusDirectory{bus: bus}, now)
	repo.occupied[occupancyKey(bus.ID, "2026-03-15")] = []int{7}

	_, err := svc.CreateBooking(context.Background(), uuid.New(), CreateBookingRequest{
		BusID:         bus.ID.String(),
		JourneyDate:   "2026-03-15",
		Seats:         []seatmap.Selection{{Number: 7}},
		Passengers:    passengers(1),
		PaymentMethod: "upi",
	})
	if !errors.Is(err, ErrSeatsUnavailable) {
		t.Fatalf("expected ErrSeatsUnavailable, got %v", err)
	}
}

func TestCreateBookingPassengerSeatMismatch(t *testing.T) {
	repo := newFakeRepository()
	bus := seaterBus()
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	svc := newTestService(repo, &fakeBusDirectory{bus: bus}, now)

	_, err := svc.CreateBooking(context.Background(), uuid.New(), CreateBookingRequest{
		BusID:         bus.ID.String(),
		JourneyDate:   "2026-03-15",
		Seats:         []seatmap.Selection{{Number: 3}, {Number: 4}},
		Passengers:    passengers(1),
		PaymentMethod: "upi",
	})
	if !errors.Is(err, seatmap.ErrInvalidSelection) {
		t.Fatalf("expected ErrInvalidSelection, got %v", err)
	}
}

func TestCreateBookingRejectsPastDate(t *testing.T) {
	repo := newFakeRepository()
	bus := seaterBus()
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	svc := newTestService(repo, &fakeBusDirectory{bus: bus}, now)

	_, err := svc.CreateBooking(context.Background(), uuid.New(), CreateBookingRequest{
		BusID:         bus.ID.String(),
		JourneyDate:   "2026-03-09",
		Seats:         []seatmap.Selection{{Number: 3}},
		Passengers:    passengers(1),
		PaymentMethod: "upi",
	})
	if !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func seedConfirmedBooking(repo *fakeRepository, userID uuid.UUID, bus *buses.Bus, journeyDate string, total int64) *Booking {
	booking := &Booking{
		ID:          uuid.New(),
		UserID:      userID,
		BusID:       bus.ID,
		JourneyDate: journeyDate,
		BookingRef:  "BSL-20260310-TEST01",
		TotalAmount: total,
		Status:      StatusConfirmed,
		Payments: []Payment{{
			ID:     uuid.New(),
			Amount: total,
			Status: "COMPLETED",
		}},
	}
	repo.bookings[booking.ID] = booking
	return booking
}

func TestCancelBookingPersistsRefund(t *testing.T) {
	repo := newFakeRepository()
	bus := seaterBus()
	userID := uuid.New()
	booking := seedConfirmedBooking(repo, userID, bus, "2026-03-15", 1650)

	// 08:30 departure on the 15th, cancelled on the 12th: more than 24h out.
	now := time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)
	svc := newTestService(repo, &fakeBusDirectory{bus: bus}, now)

	result, err := svc.CancelBooking(context.Background(), userID, false, booking.ID)
	if err != nil {
		t.Fatalf("CancelBooking returned error: %v", err)
	}

	if result.RefundPercent != 90 {
		t.Errorf("expected 90%% refund, got %d%%", result.RefundPercent)
	}
	if result.RefundAmount != 1485 {
		t.Errorf("expected refund 1485, got %d", result.RefundAmount)
	}
	if !repo.cancelCalled || repo.cancelPercent != 90 || repo.cancelAmount != 1485 {
		t.Errorf("refund not persisted: called=%v percent=%d amount=%d",
			repo.cancelCalled, repo.cancelPercent, repo.cancelAmount)
	}
	if len(repo.updatedPayments) != 1 || repo.updatedPayments[0].Status != "REFUNDED" {
		t.Errorf("expected payment marked refunded, got %+v", repo.updatedPayments)
	}
}

func TestCancelBookingZeroRefundBracket(t *testing.T) {
	repo := newFakeRepository()
	bus := seaterBus()
	userID := uuid.New()
	booking := seedConfirmedBooking(repo, userID, bus, "2026-03-15", 1650)

	// Three and a half hours before departure: 0% bracket, cancel still allowed.
	now := time.Date(2026, 3, 15, 5, 0, 0, 0, time.UTC)
	svc := newTestService(repo, &fakeBusDirectory{bus: bus}, now)

	result, err := svc.CancelBooking(context.Background(), userID, false, booking.ID)
	if err != nil {
		t.Fatalf("CancelBooking returned error: %v", err)
	}
	if result.RefundPercent != 0 || result.RefundAmount != 0 {
		t.Errorf("expected zero refund, got %d%% / %d", result.RefundPercent, result.RefundAmount)
	}
	if !repo.cancelCalled {
		t.Error("expected cancellation to be persisted")
	}
}

func TestCancelBookingAfterDeparture(t *testing.T) {
	repo := newFakeRepository()
	bus := seaterBus()
	userID := uuid.New()
	booking := seedConfirmedBooking(repo, userID, bus, "2026-03-15", 1650)

	now := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	svc := newTestService(repo, &fakeBusDirectory{bus: bus}, now)

	_, err := svc.CancelBooking(context.Background(), userID, false, booking.ID)
	if !errors.Is(err, seatmap.ErrJourneyCompleted) {
		t.Fatalf("expected ErrJourneyCompleted, got %v", err)
	}
	if repo.cancelCalled {
		t.Error("departed booking must not be cancelled")
	}
}

func TestCancelBookingNotOwner(t *testing.T) {
	repo := newFakeRepository()
	bus := seaterBus()
	booking := seedConfirmedBooking(repo, uuid.New(), bus, "2026-03-15", 1650)

	now := time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)
	svc := newTestService(repo, &fakeBusDirectory{bus: bus}, now)

	_, err := svc.CancelBooking(context.Background(), uuid.New(), false, booking.ID)
	if !errors.Is(err, ErrNotBookingOwner) {
		t.Fatalf("expected ErrNotBookingOwner, got %v", err)
	}
}

func TestCancelBookingAlreadyCancelled(t *testing.T) {
	repo := newFakeRepository()
	bus := seaterBus()
	userID := uuid.New()
	booking := seedConfirmedBooking(repo, userID, bus, "2026-03-15", 1650)
	booking.Status = StatusCancelled

	now := time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)
	svc := newTestService(repo, &fakeBusDirectory{bus: bus}, now)

	_, err := svc.CancelBooking(context.Background(), userID, false, booking.ID)
	if !errors.Is(err, ErrAlreadyCancelled) {
		t.Fatalf("expected ErrAlreadyCancelled, got %v", err)
	}
}

func TestGetBookingByIDOwnership(t *testing.T) {
	repo := newFakeRepository()
	bus := seaterBus()
	owner := uuid.New()
	booking := seedConfirmedBooking(repo, owner, bus, "2026-03-15", 1650)

	now := time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)
	svc := newTestService(repo, &fakeBusDirectory{bus: bus}, now)

	if _, err := svc.GetBookingByID(context.Background(), owner, false, booking.ID); err != nil {
		t.Fatalf("owner lookup failed: %v", err)
	}
	if _, err := svc.GetBookingByID(context.Background(), uuid.New(), false, booking.ID); !errors.Is(err, ErrNotBookingOwner) {
		t.Fatalf("expected ErrNotBookingOwner, got %v", err)
	}
	if _, err := svc.GetBookingByID(context.Background(), uuid.New(), true, booking.ID); err != nil {
		t.Fatalf("admin lookup failed: %v", err)
	}
}
