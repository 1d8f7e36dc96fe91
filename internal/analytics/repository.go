package analytics

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	GetOverview(ctx context.Context, now time.Time) (*OverviewMetrics, error)
	GetTopRoutes(ctx context.Context, limit int) ([]RoutePerformance, error)
	GetDailyTrends(ctx context.Context, days int, now time.Time) ([]DailyMetric, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetOverview(ctx context.Context, now time.Time) (*OverviewMetrics, error) {
	var metrics OverviewMetrics
	db := r.db.WithContext(ctx)

	if err := db.Table("buses").Count(&metrics.TotalBuses).Error; err != nil {
		return nil, fmt.Errorf("failed to count buses: %w", err)
	}
	if err := db.Table("users").Count(&metrics.TotalUsers).Error; err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if err := db.Table("bookings").Count(&metrics.TotalBookings).Error; err != nil {
		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}
	if err := db.Table("bookings").Where("status = ?", "CANCELLED").
		Count(&metrics.CancelledBookings).Error; err != nil {
		return nil, fmt.Errorf("failed to count cancellations: %w", err)
	}

	if err := db.Raw(
		"SELECT COALESCE(SUM(total_amount), 0) FROM bookings WHERE status = ?",
		"CONFIRMED").Scan(&metrics.TotalRevenue).Error; err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}
	if err := db.Raw(
		"SELECT COALESCE(SUM(refund_amount), 0) FROM bookings WHERE status = ?",
		"CANCELLED").Scan(&metrics.TotalRefunded).Error; err != nil {
		return nil, fmt.Errorf("failed to sum refunds: %w", err)
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if err := db.Table("bookings").Where("created_at >= ?", dayStart).
		Count(&metrics.BookingsToday).Error; err != nil {
		return nil, fmt.Errorf("failed to count today's bookings: %w", err)
	}
	if err := db.Raw(
		"SELECT COALESCE(SUM(total_amount), 0) FROM bookings WHERE status = ? AND created_at >= ?",
		"CONFIRMED", dayStart).Scan(&metrics.RevenueToday).Error; err != nil {
		return nil, fmt.Errorf("failed to sum today's revenue: %w", err)
	}

	if metrics.TotalBookings > 0 {
		metrics.CancellationRate = float64(metrics.CancelledBookings) / float64(metrics.TotalBookings) * 100
	}

	return &metrics, nil
}

func (r *repository) GetTopRoutes(ctx context.Context, limit int) ([]RoutePerformance, error) {
	var routes []RoutePerformance
	err := r.db.WithContext(ctx).Raw(`
		SELECT buses.source, buses.destination,
		       COUNT(bookings.id) AS bookings,
		       COALESCE(SUM(bookings.total_amount), 0) AS revenue
		FROM bookings
		JOIN buses ON buses.id = bookings.bus_id
		WHERE bookings.status = ?
		GROUP BY buses.source, buses.destination
		ORDER BY bookings DESC, revenue DESC
		LIMIT ?`, "CONFIRMED", limit).Scan(&routes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to rank routes: %w", err)
	}
	return routes, nil
}

func (r *repository) GetDailyTrends(ctx context.Context, days int, now time.Time) ([]DailyMetric, error) {
	since := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, -(days - 1))

	var trends []DailyMetric
	err := r.db.WithContext(ctx).Raw(`
		SELECT TO_CHAR(created_at, 'YYYY-MM-DD') AS date,
		       COUNT(id) AS bookings,
		       COALESCE(SUM(CASE WHEN status = 'CONFIRMED' THEN total_amount ELSE 0 END), 0) AS revenue
		FROM bookings
		WHERE created_at >= ?
		GROUP BY TO_CHAR(created_at, 'YYYY-MM-DD')
		ORDER BY date ASC`, since).Scan(&trends).Error
	if err != nil {
		return nil, fmt.Errorf("failed to build daily trends: %w", err)
	}
	return trends, nil
}
