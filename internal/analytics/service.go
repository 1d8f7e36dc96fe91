package analytics

import (
	"context"
	"time"

	"busly/internal/shared/constants"
	"busly/pkg/cache"
	"busly/pkg/logger"
)

const (
	topRouteLimit  = 5
	trendWindowDay = 7
)

type Service interface {
	SetCacheService(cacheService cache.Service)
	GetDashboard(ctx context.Context) (*DashboardAnalytics, error)
}

type service struct {
	repo         Repository
	cacheService cache.Service
	log          *logger.Logger
	nowFn        func() time.Time
}

func NewService(repo Repository) Service {
	return &service{
		repo:  repo,
		log:   logger.GetDefault(),
		nowFn: time.Now,
	}
}

// SetCacheService injects the cache service dependency
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) GetDashboard(ctx context.Context) (*DashboardAnalytics, error) {
	fetch := func() (interface{}, error) {
		return s.buildDashboard(ctx)
	}

	if s.cacheService != nil {
		var dashboard DashboardAnalytics
		err := s.cacheService.GetOrSet(ctx, constants.CACHE_KEY_ANALYTICS_DASHBOARD,
			constants.TTL_ANALYTICS_DASHBOARD, fetch, &dashboard)
		if err == nil {
			return &dashboard, nil
		}
	}

	return s.buildDashboard(ctx)
}

func (s *service) buildDashboard(ctx context.Context) (*DashboardAnalytics, error) {
	now := s.nowFn()

	overview, err := s.repo.GetOverview(ctx, now)
	if err != nil {
		return nil, err
	}

	routes, err := s.repo.GetTopRoutes(ctx, topRouteLimit)
	if err != nil {
		return nil, err
	}

	trends, err := s.repo.GetDailyTrends(ctx, trendWindowDay, now)
	if err != nil {
		return nil, err
	}

	return &DashboardAnalytics{
		Overview:    *overview,
		TopRoutes:   routes,
		DailyTrends: trends,
	}, nil
}
