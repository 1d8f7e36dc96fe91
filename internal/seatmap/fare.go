package seatmap

// FareSpec carries the pricing side of a bus. Prices are whole rupees.
// Non-combo buses price every seat at UnitPrice; combo buses price by kind.
type FareSpec struct {
	Combo        bool
	UnitPrice    int64
	SeaterPrice  int64
	SleeperPrice int64
}

// Selection identifies one chosen seat. Kind is required on combo buses
// because seater 5 and sleeper 5 are different seats there.
type Selection struct {
	Number int      `json:"number"`
	Kind   SeatKind `json:"kind,omitempty"`
}

// ComputeFare prices a seat selection against a layout. The total is always
// recomputed from the layout and fare spec; client-supplied totals are never
// trusted. Returns ErrInvalidSelection for an empty selection, a duplicate
// seat, a seat not present in the layout, or a combo selection without a
// kind. Returns ErrInvalidBusMetadata when the fare spec lacks the prices
// the layout needs.
func ComputeFare(layout []Seat, fare FareSpec, selection []Selection) (int64, error) {
	if len(selection) == 0 {
		return 0, ErrInvalidSelection
	}
	if fare.Combo {
		if fare.SeaterPrice <= 0 || fare.SleeperPrice <= 0 {
			return 0, ErrInvalidBusMetadata
		}
	} else if fare.UnitPrice <= 0 {
		return 0, ErrInvalidBusMetadata
	}

	seen := make(map[Selection]struct{}, len(selection))
	var total int64
	for _, sel := range selection {
		if fare.Combo && sel.Kind == "" {
			return 0, ErrInvalidSelection
		}
		key := sel
		if !fare.Combo {
			// Single-kind layouts match on number alone.
			key.Kind = ""
		}
		if _, dup := seen[key]; dup {
			return 0, ErrInvalidSelection
		}
		seen[key] = struct{}{}

		if !inLayout(layout, sel, fare.Combo) {
			return 0, ErrInvalidSelection
		}

		switch {
		case !fare.Combo:
			total += fare.UnitPrice
		case sel.Kind == KindSleeper:
			total += fare.SleeperPrice
		default:
			total += fare.SeaterPrice
		}
	}
	return total, nil
}

func inLayout(layout []Seat, sel Selection, matchKind bool) bool {
	for _, seat := range layout {
		if seat.Number != sel.Number {
			continue
		}
		if matchKind && seat.Kind != sel.Kind {
			continue
		}
		return true
	}
	return false
}

// SelectionIDs maps a selection to the internal seat IDs the occupancy
// store keys on. Errors mirror ComputeFare's selection validation.
func SelectionIDs(layout []Seat, selection []Selection, combo bool) ([]int, error) {
	if len(selection) == 0 {
		return nil, ErrInvalidSelection
	}
	ids := make([]int, 0, len(selection))
	for _, sel := range selection {
		if combo && sel.Kind == "" {
			return nil, ErrInvalidSelection
		}
		id := -1
		for _, seat := range layout {
			if seat.Number != sel.Number {
				continue
			}
			if combo && seat.Kind != sel.Kind {
				continue
			}
			id = seat.ID
			break
		}
		if id < 0 {
			return nil, ErrInvalidSelection
		}
		ids = append(ids, id)
	}
	return ids, nil
}
