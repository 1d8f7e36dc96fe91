package constants

import (
	"fmt"
	"time"
)

// Redis Cache Configuration
// This file centralizes all Redis cache keys and TTL values for the Busly application
// Pattern: busly:{module}:{operation}:{identifier}:{params?}

// ================== CACHE TTL DURATIONS ==================

// Static Data (Long TTL: rarely changes)
const (
	TTL_STATIC_LONG   = 24 * time.Hour // 24 hours - for very stable data
	TTL_STATIC_MEDIUM = 12 * time.Hour // 12 hours - for fleet metadata
	TTL_STATIC_SHORT  = 6 * time.Hour  // 6 hours - for user profiles
)

// Semi-Static Data (Medium TTL: changes occasionally)
const (
	TTL_SEMI_STATIC_MEDIUM = 2 * time.Hour    // 2 hours - for bus details
	TTL_SEMI_STATIC_SHORT  = 1 * time.Hour    // 1 hour - for bus listings
	TTL_SEMI_STATIC_QUICK  = 15 * time.Minute // 15 minutes - for route searches
)

// Dynamic Data (Short TTL: changes frequently)
const (
	TTL_DYNAMIC_MEDIUM = 10 * time.Minute // 10 minutes - for analytics
	TTL_DYNAMIC_SHORT  = 5 * time.Minute  // 5 minutes - for booking listings
)

// Highly Dynamic (Micro TTL: real-time sensitive)
const (
	TTL_REALTIME_SHORT = 30 * time.Second // 30 seconds - for live seat maps
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "busly"
)

// ================== BUSES MODULE ==================

// Bus Cache Keys
const (
	CACHE_KEY_BUSES_LIST   = CACHE_PREFIX + ":buses:list"        // + :page:X:limit:Y
	CACHE_KEY_BUSES_SEARCH = CACHE_PREFIX + ":buses:search"      // + :src:X:dst:Y:date:Z
	CACHE_KEY_BUS_DETAIL   = CACHE_PREFIX + ":buses:detail:uuid:" // + bus-id
)

// Bus Cache TTLs
const (
	TTL_BUSES_LIST   = TTL_SEMI_STATIC_SHORT  // 1 hour
	TTL_BUSES_SEARCH = TTL_SEMI_STATIC_QUICK  // 15 minutes
	TTL_BUS_DETAIL   = TTL_SEMI_STATIC_MEDIUM // 2 hours
)

// ================== SEATS MODULE ==================

// Seat Cache Keys
const (
	CACHE_KEY_SEAT_MAP = CACHE_PREFIX + ":seats:map:bus:" // + bus-id:date:journey-date
)

// Seat Cache TTLs
const (
	TTL_SEAT_MAP = TTL_REALTIME_SHORT // 30 seconds
)

// ================== BOOKINGS MODULE ==================

// Booking Cache Keys
const (
	CACHE_KEY_USER_BOOKINGS  = CACHE_PREFIX + ":bookings:user:uuid:"   // + user-id:page:X
	CACHE_KEY_BOOKING_DETAIL = CACHE_PREFIX + ":bookings:detail:uuid:" // + booking-id
	CACHE_KEY_BOOKED_SEATS   = CACHE_PREFIX + ":bookings:occupancy:bus:" // + bus-id:date:journey-date
)

// Booking Cache TTLs
const (
	TTL_USER_BOOKINGS  = TTL_DYNAMIC_SHORT   // 5 minutes
	TTL_BOOKING_DETAIL = TTL_DYNAMIC_MEDIUM  // 10 minutes
	TTL_BOOKED_SEATS   = TTL_REALTIME_SHORT  // 30 seconds
)

// ================== ANALYTICS MODULE ==================

// Analytics Cache Keys
const (
	CACHE_KEY_ANALYTICS_DASHBOARD = CACHE_PREFIX + ":analytics:dashboard:admin"
)

// Analytics Cache TTLs
const (
	TTL_ANALYTICS_DASHBOARD = TTL_DYNAMIC_MEDIUM // 10 minutes
)

// ================== AUTH MODULE ==================

// Auth Cache Keys
const (
	CACHE_KEY_USER_PROFILE = CACHE_PREFIX + ":auth:user:profile:uuid:" // + user-id
)

// Auth Cache TTLs
const (
	TTL_USER_PROFILE = TTL_STATIC_SHORT // 6 hours
)

// ================== CACHE INVALIDATION PATTERNS ==================

// Patterns for cache invalidation (used with SCAN-based deletion)
const (
	PATTERN_INVALIDATE_BUSES_ALL    = CACHE_PREFIX + ":buses:*"
	PATTERN_INVALIDATE_SEATS_ALL    = CACHE_PREFIX + ":seats:*"
	PATTERN_INVALIDATE_BOOKINGS_ALL = CACHE_PREFIX + ":bookings:*"
	PATTERN_INVALIDATE_ANALYTICS    = CACHE_PREFIX + ":analytics:*"
	PATTERN_INVALIDATE_USER_ALL     = CACHE_PREFIX + ":*:user:*" // + user-id + *
)

// ================== HELPER FUNCTIONS ==================

func BuildBusListKey(page, limit int) string {
	return CACHE_KEY_BUSES_LIST + ":page:" + fmt.Sprintf("%d", page) + ":limit:" + fmt.Sprintf("%d", limit)
}

func BuildBusSearchKey(source, destination, date string) string {
	return CACHE_KEY_BUSES_SEARCH + ":src:" + source + ":dst:" + destination + ":date:" + date
}

func BuildBusDetailKey(busID string) string {
	return CACHE_KEY_BUS_DETAIL + busID
}

func BuildSeatMapKey(busID, journeyDate string) string {
	return CACHE_KEY_SEAT_MAP + busID + ":date:" + journeyDate
}

func BuildBookedSeatsKey(busID, journeyDate string) string {
	return CACHE_KEY_BOOKED_SEATS + busID + ":date:" + journeyDate
}

func BuildUserBookingsKey(userID string, page int) string {
	return CACHE_KEY_USER_BOOKINGS + userID + ":page:" + fmt.Sprintf("%d", page)
}

func BuildSeatInvalidationPatterns(busID, journeyDate string) []string {
	return []string{
		BuildSeatMapKey(busID, journeyDate),
		BuildBookedSeatsKey(busID, journeyDate),
	}
}
