package bookings

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"busly/internal/buses"
	"busly/internal/seatmap"
	"busly/internal/shared/constants"
	"busly/pkg/cache"
	"busly/pkg/logger"

	"github.com/google/uuid"
)

// BusDirectory is the slice of the bus service bookings depend on.
type BusDirectory interface {
	GetBusByID(ctx context.Context, id uuid.UUID) (*buses.Bus, error)
}

// NotificationPublisher pushes booking lifecycle events to the
// notification pipeline. Publishing is best effort and never fails
// the booking itself.
type NotificationPublisher interface {
	PublishBookingConfirmed(ctx context.Context, booking *Booking) error
	PublishBookingCancelled(ctx context.Context, booking *Booking) error
}

type Service interface {
	SetCacheService(cacheService cache.Service)
	SetNotificationPublisher(publisher NotificationPublisher)
	CreateBooking(ctx context.Context, userID uuid.UUID, req CreateBookingRequest) (*BookingConfirmation, error)
	GetBookingByID(ctx context.Context, userID uuid.UUID, isAdmin bool, id uuid.UUID) (*Booking, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID, page, limit int) ([]Booking, error)
	ListBookings(ctx context.Context, query BookingListQuery) (*PaginatedBookings, error)
	CancelBooking(ctx context.Context, userID uuid.UUID, isAdmin bool, id uuid.UUID) (*CancellationResult, error)
	GetBookedSeats(ctx context.Context, busID uuid.UUID, journeyDate string) ([]int, error)
}

type service struct {
	repo         Repository
	busDirectory BusDirectory
	cacheService cache.Service
	publisher    NotificationPublisher
	log          *logger.Logger
	nowFn        func() time.Time
}

func NewService(repo Repository, busDirectory BusDirectory) Service {
	return &service{
		repo:         repo,
		busDirectory: busDirectory,
		log:          logger.GetDefault(),
		nowFn:        time.Now,
	}
}

// SetCacheService injects the cache service dependency
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

// SetNotificationPublisher injects the notification publisher dependency
func (s *service) SetNotificationPublisher(publisher NotificationPublisher) {
	s.publisher = publisher
}

func (s *service) CreateBooking(ctx context.Context, userID uuid.UUID, req CreateBookingRequest) (*BookingConfirmation, error) {
	busID, err := uuid.Parse(req.BusID)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed bus id", ErrBookingNotFound)
	}

	journeyDate, err := normalizeJourneyDate(req.JourneyDate, s.nowFn())
	if err != nil {
		return nil, err
	}

	if len(req.Passengers) != len(req.Seats) {
		return nil, fmt.Errorf("%w: passenger count must match seat count", seatmap.ErrInvalidSelection)
	}

	bus, err := s.busDirectory.GetBusByID(ctx, busID)
	if err != nil {
		return nil, err
	}

	layout, err := seatmap.GenerateLayout(bus.LayoutSpec())
	if err != nil {
		return nil, err
	}

	fare := bus.FareSpec()
	total, err := seatmap.ComputeFare(layout, fare, req.Seats)
	if err != nil {
		return nil, err
	}
	if req.TotalAmount > 0 && req.TotalAmount != total {
		return nil, fmt.Errorf("%w: quoted total %d does not match fare %d",
			seatmap.ErrInvalidSelection, req.TotalAmount, total)
	}

	seatIDs, err := seatmap.SelectionIDs(layout, req.Seats, fare.Combo)
	if err != nil {
		return nil, err
	}

	booking := &Booking{
		UserID:        userID,
		BusID:         busID,
		JourneyDate:   journeyDate,
		BookingRef:    generateBookingRef(s.nowFn()),
		TotalAmount:   total,
		Status:        StatusConfirmed,
		BoardingPoint: req.BoardingPoint,
		DroppingPoint: req.DroppingPoint,
		PaymentMethod: req.PaymentMethod,
		Seats:         buildBookingSeats(layout, seatIDs, fare),
		Passengers:    buildPassengers(req.Passengers),
		Payments: []Payment{{
			Amount:        total,
			Currency:      "INR",
			Status:        "PENDING",
			PaymentMethod: req.PaymentMethod,
			TransactionID: generateTransactionID(s.nowFn()),
		}},
	}

	if err := s.repo.CreateWithOccupancyCheck(ctx, booking, seatIDs); err != nil {
		return nil, err
	}

	// Payments are simulated: every booking settles immediately.
	payment := &booking.Payments[0]
	payment.MarkCompleted()
	if err := s.repo.UpdatePayment(ctx, payment); err != nil {
		s.log.WarnContext(ctx, "payment settlement update failed",
			"booking_id", booking.ID.String(), "error", err.Error())
	}

	s.invalidateBookingCache(ctx, busID.String(), journeyDate, userID.String())
	s.publishConfirmed(ctx, booking)
	s.log.LogBookingCreated(ctx, booking.ID.String(), busID.String(), userID.String())

	return &BookingConfirmation{
		BookingID:   booking.ID.String(),
		BookingRef:  booking.BookingRef,
		Status:      booking.Status,
		TotalAmount: booking.TotalAmount,
		Seats:       booking.Seats,
		Payment:     payment.ToPaymentInfo(),
		CreatedAt:   booking.CreatedAt,
	}, nil
}

func (s *service) GetBookingByID(ctx context.Context, userID uuid.UUID, isAdmin bool, id uuid.UUID) (*Booking, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && booking.UserID != userID {
		return nil, ErrNotBookingOwner
	}
	return booking, nil
}

func (s *service) GetUserBookings(ctx context.Context, userID uuid.UUID, page, limit int) ([]Booking, error) {
	if page == 0 {
		page = 1
	}
	if limit == 0 {
		limit = 10
	}
	offset := (page - 1) * limit

	fetch := func() (interface{}, error) {
		return s.repo.GetByUserID(ctx, userID, limit, offset)
	}

	if s.cacheService != nil {
		var list []Booking
		err := s.cacheService.GetOrSet(ctx, constants.BuildUserBookingsKey(userID.String(), page),
			constants.TTL_USER_BOOKINGS, fetch, &list)
		if err == nil {
			return list, nil
		}
	}

	return s.repo.GetByUserID(ctx, userID, limit, offset)
}

func (s *service) ListBookings(ctx context.Context, query BookingListQuery) (*PaginatedBookings, error) {
	if query.Page == 0 {
		query.Page = 1
	}
	if query.Limit == 0 {
		query.Limit = 10
	}

	list, total, err := s.repo.GetAll(ctx, query)
	if err != nil {
		return nil, err
	}

	totalPages := int(total) / query.Limit
	if int(total)%query.Limit != 0 {
		totalPages++
	}

	return &PaginatedBookings{
		Bookings:   list,
		TotalCount: total,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: totalPages,
	}, nil
}

func (s *service) CancelBooking(ctx context.Context, userID uuid.UUID, isAdmin bool, id uuid.UUID) (*CancellationResult, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && booking.UserID != userID {
		return nil, ErrNotBookingOwner
	}
	if booking.IsCancelled() {
		return nil, ErrAlreadyCancelled
	}

	bus, err := s.busDirectory.GetBusByID(ctx, booking.BusID)
	if err != nil {
		return nil, err
	}

	quote, err := seatmap.QuoteRefund(booking.JourneyDate, bus.DepartureTime, booking.TotalAmount, s.nowFn())
	if err != nil {
		return nil, err
	}
	if quote.JourneyCompleted {
		return nil, seatmap.ErrJourneyCompleted
	}

	if err := s.repo.Cancel(ctx, booking.ID, quote.Percent, quote.Amount); err != nil {
		return nil, err
	}

	for i := range booking.Payments {
		if booking.Payments[i].Status == "COMPLETED" {
			booking.Payments[i].MarkRefunded()
			if err := s.repo.UpdatePayment(ctx, &booking.Payments[i]); err != nil {
				s.log.WarnContext(ctx, "payment refund update failed",
					"booking_id", booking.ID.String(), "error", err.Error())
			}
		}
	}

	booking.Status = StatusCancelled
	booking.RefundPercent = quote.Percent
	booking.RefundAmount = quote.Amount

	s.invalidateBookingCache(ctx, booking.BusID.String(), booking.JourneyDate, booking.UserID.String())
	s.publishCancelled(ctx, booking)
	s.log.LogBookingCancelled(ctx, booking.ID.String(), booking.BusID.String(), booking.UserID.String(), quote.Amount)

	return &CancellationResult{
		BookingID:     booking.ID.String(),
		Status:        StatusCancelled,
		RefundPercent: quote.Percent,
		RefundAmount:  quote.Amount,
	}, nil
}

func (s *service) GetBookedSeats(ctx context.Context, busID uuid.UUID, journeyDate string) ([]int, error) {
	if _, err := time.Parse("2006-01-02", journeyDate); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDate, journeyDate)
	}

	fetch := func() (interface{}, error) {
		return s.repo.GetBookedSeatIDs(ctx, busID, journeyDate)
	}

	if s.cacheService != nil {
		var seatIDs []int
		err := s.cacheService.GetOrSet(ctx, constants.BuildBookedSeatsKey(busID.String(), journeyDate),
			constants.TTL_BOOKED_SEATS, fetch, &seatIDs)
		if err == nil {
			return seatIDs, nil
		}
	}

	return s.repo.GetBookedSeatIDs(ctx, busID, journeyDate)
}

func (s *service) invalidateBookingCache(ctx context.Context, busID, journeyDate, userID string) {
	if s.cacheService == nil {
		return
	}
	patterns := constants.BuildSeatInvalidationPatterns(busID, journeyDate)
	patterns = append(patterns,
		constants.PATTERN_INVALIDATE_BOOKINGS_ALL,
		constants.PATTERN_INVALIDATE_ANALYTICS,
	)
	for _, pattern := range patterns {
		if err := s.cacheService.DeletePattern(ctx, pattern); err != nil {
			s.log.WarnContext(ctx, "booking cache invalidation failed", "pattern", pattern, "error", err.Error())
		}
	}
}

func (s *service) publishConfirmed(ctx context.Context, booking *Booking) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishBookingConfirmed(ctx, booking); err != nil {
		s.log.WarnContext(ctx, "booking confirmation publish failed",
			"booking_id", booking.ID.String(), "error", err.Error())
	}
}

func (s *service) publishCancelled(ctx context.Context, booking *Booking) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishBookingCancelled(ctx, booking); err != nil {
		s.log.WarnContext(ctx, "booking cancellation publish failed",
			"booking_id", booking.ID.String(), "error", err.Error())
	}
}

// normalizeJourneyDate validates the YYYY-MM-DD form and rejects dates
// before today in the server's location.
func normalizeJourneyDate(raw string, now time.Time) (string, error) {
	parsed, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(raw), now.Location())
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidDate, raw)
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if parsed.Before(today) {
		return "", fmt.Errorf("%w: journey date is in the past", ErrInvalidDate)
	}
	return parsed.Format("2006-01-02"), nil
}

func buildBookingSeats(layout []seatmap.Seat, seatIDs []int, fare seatmap.FareSpec) []BookingSeat {
	byID := make(map[int]seatmap.Seat, len(layout))
	for _, seat := range layout {
		byID[seat.ID] = seat
	}

	rows := make([]BookingSeat, 0, len(seatIDs))
	for _, id := range seatIDs {
		seat := byID[id]
		price := fare.UnitPrice
		if fare.Combo {
			if seat.Kind == seatmap.KindSleeper {
				price = fare.SleeperPrice
			} else {
				price = fare.SeaterPrice
			}
		}
		rows = append(rows, BookingSeat{
			SeatID:     seat.ID,
			SeatNumber: seat.Number,
			Kind:       string(seat.Kind),
			Price:      price,
		})
	}
	return rows
}

func buildPassengers(infos []PassengerInfo) []Passenger {
	passengers := make([]Passenger, 0, len(infos))
	for _, info := range infos {
		passengers = append(passengers, Passenger{
			Name:   info.Name,
			Age:    info.Age,
			Gender: info.Gender,
			Phone:  info.Phone,
			Email:  info.Email,
		})
	}
	return passengers
}

const bookingRefCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// generateBookingRef builds a human readable reference like BSL-20260315-K7M2QX.
func generateBookingRef(now time.Time) string {
	suffix := make([]byte, 6)
	for i := range suffix {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(bookingRefCharset))))
		if err != nil {
			suffix[i] = bookingRefCharset[0]
			continue
		}
		suffix[i] = bookingRefCharset[n.Int64()]
	}
	return fmt.Sprintf("BSL-%s-%s", now.Format("20060102"), string(suffix))
}

func generateTransactionID(now time.Time) string {
	return fmt.Sprintf("TXN_%d_%s", now.Unix(), strings.ToUpper(uuid.New().String()[:8]))
}
