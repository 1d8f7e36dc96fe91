package buses

import (
	"context"

	"busly/internal/shared/constants"
	"busly/pkg/cache"
	"busly/pkg/logger"

	"github.com/google/uuid"
)

type Service interface {
	SetCacheService(cacheService cache.Service)
	CreateBus(ctx context.Context, adminID uuid.UUID, req CreateBusRequest) (*Bus, error)
	GetBusByID(ctx context.Context, id uuid.UUID) (*Bus, error)
	UpdateBus(ctx context.Context, id uuid.UUID, req UpdateBusRequest) (*Bus, error)
	DeleteBus(ctx context.Context, id uuid.UUID) error
	ListBuses(ctx context.Context, query BusListQuery) (*PaginatedBuses, error)
	SearchBuses(ctx context.Context, query BusSearchQuery) ([]Bus, error)
}

type service struct {
	repo         Repository
	cacheService cache.Service
	log          *logger.Logger
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
		log:  logger.GetDefault(),
	}
}

// SetCacheService injects the cache service dependency
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) CreateBus(ctx context.Context, adminID uuid.UUID, req CreateBusRequest) (*Bus, error) {
	bus := &Bus{
		BusName:         req.BusName,
		BusNumber:       req.BusNumber,
		BusType:         req.BusType,
		TotalSeats:      req.TotalSeats,
		Price:           req.Price,
		SeaterPrice:     req.SeaterPrice,
		SleeperPrice:    req.SleeperPrice,
		Source:          req.Source,
		Destination:     req.Destination,
		DepartureTime:   req.DepartureTime,
		ArrivalTime:     req.ArrivalTime,
		JourneyDuration: req.JourneyDuration,
		Description:     req.Description,
		Amenities:       req.Amenities,
		BoardingPoints:  req.BoardingPoints,
		DroppingPoints:  req.DroppingPoints,
		CreatedBy:       adminID,
	}

	if err := bus.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.repo.BusNumberExists(ctx, bus.BusNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateBusNumber
	}

	if err := s.repo.Create(ctx, bus); err != nil {
		return nil, err
	}

	s.log.LogBusCreated(ctx, bus.ID.String(), adminID.String())
	s.invalidateBusCache(ctx)
	return bus, nil
}

func (s *service) GetBusByID(ctx context.Context, id uuid.UUID) (*Bus, error) {
	if s.cacheService != nil {
		var bus Bus
		err := s.cacheService.GetOrSet(ctx, constants.BuildBusDetailKey(id.String()), constants.TTL_BUS_DETAIL,
			func() (interface{}, error) {
				return s.repo.GetByID(ctx, id)
			}, &bus)
		if err == nil {
			return &bus, nil
		}
		// Fall through to the repository when the cache path fails.
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) UpdateBus(ctx context.Context, id uuid.UUID, req UpdateBusRequest) (*Bus, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	applyBusUpdates(current, req)
	if err := current.Validate(); err != nil {
		return nil, err
	}

	updates := busUpdatesMap(current, req)
	bus, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return nil, err
	}

	s.invalidateBusCache(ctx)
	return bus, nil
}

func (s *service) DeleteBus(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateBusCache(ctx)
	return nil
}

func (s *service) ListBuses(ctx context.Context, query BusListQuery) (*PaginatedBuses, error) {
	if query.Page == 0 {
		query.Page = 1
	}
	if query.Limit == 0 {
		query.Limit = 10
	}

	fetch := func() (interface{}, error) {
		fleet, total, err := s.repo.GetAll(ctx, query)
		if err != nil {
			return nil, err
		}
		return &PaginatedBuses{
			Buses:      fleet,
			TotalCount: total,
			Page:       query.Page,
			Limit:      query.Limit,
			TotalPages: calculateTotalPages(total, query.Limit),
		}, nil
	}

	if s.cacheService != nil {
		var page PaginatedBuses
		err := s.cacheService.GetOrSet(ctx, constants.BuildBusListKey(query.Page, query.Limit),
			constants.TTL_BUSES_LIST, fetch, &page)
		if err == nil {
			return &page, nil
		}
	}

	result, err := fetch()
	if err != nil {
		return nil, err
	}
	return result.(*PaginatedBuses), nil
}

func (s *service) SearchBuses(ctx context.Context, query BusSearchQuery) ([]Bus, error) {
	fetch := func() (interface{}, error) {
		return s.repo.SearchByRoute(ctx, query.Source, query.Destination)
	}

	if s.cacheService != nil {
		var fleet []Bus
		err := s.cacheService.GetOrSet(ctx,
			constants.BuildBusSearchKey(query.Source, query.Destination, query.Date),
			constants.TTL_BUSES_SEARCH, fetch, &fleet)
		if err == nil {
			return fleet, nil
		}
	}

	return s.repo.SearchByRoute(ctx, query.Source, query.Destination)
}

func (s *service) invalidateBusCache(ctx context.Context) {
	if s.cacheService == nil {
		return
	}
	// Fleet changes also invalidate derived seat maps.
	patterns := []string{
		constants.PATTERN_INVALIDATE_BUSES_ALL,
		constants.PATTERN_INVALIDATE_SEATS_ALL,
	}
	for _, pattern := range patterns {
		if err := s.cacheService.DeletePattern(ctx, pattern); err != nil {
			s.log.WarnContext(ctx, "bus cache invalidation failed", "pattern", pattern, "error", err.Error())
		}
	}
}

func applyBusUpdates(bus *Bus, req UpdateBusRequest) {
	if req.BusName != nil {
		bus.BusName = *req.BusName
	}
	if req.BusType != nil {
		bus.BusType = *req.BusType
	}
	if req.TotalSeats != nil {
		bus.TotalSeats = *req.TotalSeats
	}
	if req.Price != nil {
		bus.Price = *req.Price
	}
	if req.SeaterPrice != nil {
		bus.SeaterPrice = *req.SeaterPrice
	}
	if req.SleeperPrice != nil {
		bus.SleeperPrice = *req.SleeperPrice
	}
	if req.Source != nil {
		bus.Source = *req.Source
	}
	if req.Destination != nil {
		bus.Destination = *req.Destination
	}
	if req.DepartureTime != nil {
		bus.DepartureTime = *req.DepartureTime
	}
	if req.ArrivalTime != nil {
		bus.ArrivalTime = *req.ArrivalTime
	}
	if req.JourneyDuration != nil {
		bus.JourneyDuration = *req.JourneyDuration
	}
	if req.Description != nil {
		bus.Description = *req.Description
	}
	if req.Amenities != nil {
		bus.Amenities = *req.Amenities
	}
	if req.BoardingPoints != nil {
		bus.BoardingPoints = req.BoardingPoints
	}
	if req.DroppingPoints != nil {
		bus.DroppingPoints = req.DroppingPoints
	}
}

func busUpdatesMap(bus *Bus, req UpdateBusRequest) map[string]interface{} {
	updates := map[string]interface{}{}
	if req.BusName != nil {
		updates["bus_name"] = bus.BusName
	}
	if req.BusType != nil {
		updates["bus_type"] = bus.BusType
		// Validate may have pinned the seat count for combo layouts.
		updates["total_seats"] = bus.TotalSeats
	}
	if req.TotalSeats != nil {
		updates["total_seats"] = bus.TotalSeats
	}
	if req.Price != nil {
		updates["price"] = bus.Price
	}
	if req.SeaterPrice != nil {
		updates["seater_price"] = bus.SeaterPrice
	}
	if req.SleeperPrice != nil {
		updates["sleeper_price"] = bus.SleeperPrice
	}
	if req.Source != nil {
		updates["source"] = bus.Source
	}
	if req.Destination != nil {
		updates["destination"] = bus.Destination
	}
	if req.DepartureTime != nil {
		updates["departure_time"] = bus.DepartureTime
	}
	if req.ArrivalTime != nil {
		updates["arrival_time"] = bus.ArrivalTime
	}
	if req.JourneyDuration != nil {
		updates["journey_duration"] = bus.JourneyDuration
	}
	if req.Description != nil {
		updates["description"] = bus.Description
	}
	if req.Amenities != nil {
		updates["amenity_has_ac"] = bus.Amenities.HasAC
		updates["amenity_has_charging"] = bus.Amenities.HasCharging
		updates["amenity_has_wifi"] = bus.Amenities.HasWifi
		updates["amenity_has_water"] = bus.Amenities.HasWater
		updates["amenity_has_emergency_contact"] = bus.Amenities.HasEmergencyContact
		updates["amenity_has_first_aid"] = bus.Amenities.HasFirstAid
	}
	if req.BoardingPoints != nil {
		updates["boarding_points"] = bus.BoardingPoints
	}
	if req.DroppingPoints != nil {
		updates["dropping_points"] = bus.DroppingPoints
	}
	return updates
}

func calculateTotalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	return pages
}
