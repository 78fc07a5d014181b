package booking

// Interval is the half-open occupancy [start, start+duration) in minutes
// from midnight of the booking date. A booking that crosses midnight keeps
// an end past 24h so it still compares against its own date's grid.
type Interval struct {
	start int
	end   int
}

func NewInterval(slot Slot, d Duration) Interval {
	return Interval{
		start: slot.Minutes(),
		end:   slot.Minutes() + d.Minutes(),
	}
}

func (i Interval) Overlaps(other Interval) bool {
	return i.start < other.end && other.start < i.end
}

// BookedInterval is the slice of an existing booking the availability check
// needs: where it sits on the grid and whether it still blocks.
type BookedInterval struct {
	Slot     Slot
	Duration Duration
	Status   Status
}

// IsAvailable reports whether [slot, slot+d) is free of any non-cancelled
// booking. Both the public checkout (1/1.5/2h) and the owner's hourly grid
// go through this one predicate.
func IsAvailable(existing []BookedInterval, slot Slot, d Duration) bool {
	requested := NewInterval(slot, d)
	for _, b := range existing {
		if !b.Status.Blocks() {
			continue
		}
		if requested.Overlaps(NewInterval(b.Slot, b.Duration)) {
			return false
		}
	}
	return true
}

// BookedSlots returns the start slots currently blocked, for greying out the
// owner grid. Order follows the input.
func BookedSlots(existing []BookedInterval) []Slot {
	var slots []Slot
	for _, b := range existing {
		if b.Status.Blocks() {
			slots = append(slots, b.Slot)
		}
	}
	return slots
}
