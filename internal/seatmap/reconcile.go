package seatmap

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Reconcile overlays booked seat IDs onto a layout and returns a new slice
// with matching seats marked unavailable. The input layout is never mutated
// and seat order is preserved. IDs that match nothing in the layout are
// ignored, so stale or garbage occupancy entries cannot corrupt the map.
func Reconcile(layout []Seat, bookedIDs []int) []Seat {
	booked := make(map[int]struct{}, len(bookedIDs))
	for _, id := range bookedIDs {
		booked[id] = struct{}{}
	}

	out := make([]Seat, len(layout))
	copy(out, layout)
	for i := range out {
		if _, ok := booked[out[i].ID]; ok {
			out[i].Available = false
		}
	}
	return out
}

// ParseOccupancy normalizes a heterogeneous occupancy list into seat IDs.
// Upstream sources have historically sent integers, JSON numbers and
// numeric strings interchangeably; anything non-numeric is dropped.
func ParseOccupancy(values []any) []int {
	ids := make([]int, 0, len(values))
	for _, v := range values {
		switch n := v.(type) {
		case int:
			ids = append(ids, n)
		case int64:
			ids = append(ids, int(n))
		case float64:
			ids = append(ids, int(n))
		case json.Number:
			if id, err := n.Int64(); err == nil {
				ids = append(ids, int(id))
			}
		case string:
			if id, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
				ids = append(ids, id)
			}
		}
	}
	return ids
}
