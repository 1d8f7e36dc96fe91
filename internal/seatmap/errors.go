package seatmap

import "errors"

var (
	ErrInvalidBusMetadata   = errors.New("invalid bus metadata")
	ErrInvalidSelection     = errors.New("invalid seat selection")
	ErrOccupancyUnavailable = errors.New("occupancy data unavailable")
	ErrJourneyCompleted     = errors.New("journey already completed")
)
