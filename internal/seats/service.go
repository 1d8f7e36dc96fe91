package seats

import (
	"context"
	"fmt"
	"time"

	"busly/internal/buses"
	"busly/internal/seatmap"
	"busly/internal/shared/constants"
	"busly/pkg/cache"
	"busly/pkg/logger"

	"github.com/google/uuid"
)

// BusDirectory is the slice of the bus service the seat map depends on.
type BusDirectory interface {
	GetBusByID(ctx context.Context, id uuid.UUID) (*buses.Bus, error)
}

// OccupancySource feeds the internal seat IDs already held by confirmed
// bookings for a bus and journey date.
type OccupancySource interface {
	GetBookedSeats(ctx context.Context, busID uuid.UUID, journeyDate string) ([]int, error)
}

type Service interface {
	SetCacheService(cacheService cache.Service)
	GetSeatMap(ctx context.Context, busID uuid.UUID, journeyDate string) (*SeatMapView, error)
}

type service struct {
	busDirectory BusDirectory
	occupancy    OccupancySource
	cacheService cache.Service
	log          *logger.Logger
}

func NewService(busDirectory BusDirectory, occupancy OccupancySource) Service {
	return &service{
		busDirectory: busDirectory,
		occupancy:    occupancy,
		log:          logger.GetDefault(),
	}
}

// SetCacheService injects the cache service dependency
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

// GetSeatMap regenerates the layout from bus metadata and reconciles it
// against live occupancy. When the occupancy feed fails, the map is served
// with every seat available and flagged degraded rather than failing the
// request; the booking write path still rejects conflicting seats.
func (s *service) GetSeatMap(ctx context.Context, busID uuid.UUID, journeyDate string) (*SeatMapView, error) {
	if _, err := time.Parse("2006-01-02", journeyDate); err != nil {
		return nil, fmt.Errorf("%w: journey date must be YYYY-MM-DD", seatmap.ErrInvalidSelection)
	}

	cacheKey := constants.BuildSeatMapKey(busID.String(), journeyDate)
	if s.cacheService != nil {
		var view SeatMapView
		if err := s.cacheService.Get(ctx, cacheKey, &view); err == nil {
			return &view, nil
		}
	}

	bus, err := s.busDirectory.GetBusByID(ctx, busID)
	if err != nil {
		return nil, err
	}

	layout, err := seatmap.GenerateLayout(bus.LayoutSpec())
	if err != nil {
		return nil, err
	}

	degraded := false
	bookedIDs, err := s.occupancy.GetBookedSeats(ctx, busID, journeyDate)
	if err != nil {
		degraded = true
		bookedIDs = nil
		s.log.LogSeatMapDegraded(ctx, busID.String(), journeyDate, err)
	}

	reconciled := seatmap.Reconcile(layout, bookedIDs)

	available := 0
	for _, seat := range reconciled {
		if seat.Available {
			available++
		}
	}

	view := &SeatMapView{
		BusID:          busID.String(),
		JourneyDate:    journeyDate,
		BusType:        bus.BusType,
		Combo:          bus.IsCombo(),
		TotalSeats:     len(reconciled),
		AvailableSeats: available,
		Seats:          reconciled,
		Degraded:       degraded,
	}

	// Degraded maps stay out of the cache so recovery is visible within
	// one request instead of one TTL.
	if s.cacheService != nil && !degraded {
		go func() {
			_ = s.cacheService.Set(context.Background(), cacheKey, view, constants.TTL_SEAT_MAP)
		}()
	}

	return view, nil
}
