package bookings

// Status is the lifecycle state of a booking.
type Status string

const (
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusConfirmed, StatusCancelled:
		return true
	default:
		return false
	}
}

// CanBeCancelled reports whether a booking in this state may still be
// cancelled. Whether the journey already departed is a separate check.
func (s Status) CanBeCancelled() bool {
	return s == StatusConfirmed
}
