package analytics

// DashboardAnalytics is the admin dashboard payload.
type DashboardAnalytics struct {
	Overview    OverviewMetrics    `json:"overview"`
	TopRoutes   []RoutePerformance `json:"top_routes"`
	DailyTrends []DailyMetric      `json:"daily_trends"`
}

// OverviewMetrics aggregates the headline numbers. Revenue figures are
// whole rupees over confirmed bookings only.
type OverviewMetrics struct {
	TotalBuses        int64   `json:"total_buses"`
	TotalUsers        int64   `json:"total_users"`
	TotalBookings     int64   `json:"total_bookings"`
	TotalRevenue      int64   `json:"total_revenue"`
	BookingsToday     int64   `json:"bookings_today"`
	RevenueToday      int64   `json:"revenue_today"`
	CancelledBookings int64   `json:"cancelled_bookings"`
	CancellationRate  float64 `json:"cancellation_rate"`
	TotalRefunded     int64   `json:"total_refunded"`
}

// RoutePerformance ranks a source/destination pair by booking volume.
type RoutePerformance struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Bookings    int64  `json:"bookings"`
	Revenue     int64  `json:"revenue"`
}

// DailyMetric is one day of booking volume and revenue.
type DailyMetric struct {
	Date     string `json:"date"`
	Bookings int64  `json:"bookings"`
	Revenue  int64  `json:"revenue"`
}
