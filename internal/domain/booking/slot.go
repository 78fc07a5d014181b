package booking

import (
	"errors"
	"fmt"
	"regexp"
)

var (
	ErrInvalidSlotFormat = errors.New("invalid slot format")
	ErrInvalidDuration   = errors.New("invalid duration")
)

const minutesPerDay = 24 * 60

// slotPattern matches the 12-hour clock labels the booking widgets use,
// e.g. "6:00 AM", "11:30 PM". A single leading zero is tolerated because the
// owner grid renders "06:00 PM".
var slotPattern = regexp.MustCompile(`^(0?[1-9]|1[0-2]):([0-5][0-9]) (AM|PM)$`)

// Slot is a start time on the booking date, stored as minutes since midnight.
type Slot struct {
	minutes int
}

func ParseSlot(label string) (Slot, error) {
	m := slotPattern.FindStringSubmatch(label)
	if m == nil {
		return Slot{}, ErrInvalidSlotFormat
	}

	hour := atoiNoErr(m[1])
	minute := atoiNoErr(m[2])
	period := m[3]

	// 12 AM is midnight, 12 PM is noon.
	if period == "PM" && hour != 12 {
		hour += 12
	}
	if period == "AM" && hour == 12 {
		hour = 0
	}

	return Slot{minutes: hour*60 + minute}, nil
}

func SlotFromMinutes(minutes int) (Slot, error) {
	if minutes < 0 || minutes >= minutesPerDay {
		return Slot{}, ErrInvalidSlotFormat
	}
	return Slot{minutes: minutes}, nil
}

func (s Slot) Minutes() int {
	return s.minutes
}

func (s Slot) Label() string {
	hour := s.minutes / 60
	minute := s.minutes % 60

	period := "AM"
	if hour >= 12 {
		period = "PM"
	}

	display := hour % 12
	if display == 0 {
		display = 12
	}

	return fmt.Sprintf("%d:%02d %s", display, minute, period)
}

func (s Slot) Before(other Slot) bool {
	return s.minutes < other.minutes
}

// Add computes the end label for a start slot and a duration, wrapping past
// midnight: "11:00 PM" + 1.5h yields "12:30 AM".
func (s Slot) Add(d Duration) Slot {
	return Slot{minutes: (s.minutes + d.Minutes()) % minutesPerDay}
}

// Duration is a booking length in whole half-hour steps.
type Duration struct {
	minutes int
}

func NewDuration(hours float64) (Duration, error) {
	minutes := hours * 60
	if minutes <= 0 || minutes != float64(int(minutes)) || int(minutes)%30 != 0 {
		return Duration{}, ErrInvalidDuration
	}
	return Duration{minutes: int(minutes)}, nil
}

func DurationFromMinutes(minutes int) (Duration, error) {
	if minutes <= 0 || minutes%30 != 0 {
		return Duration{}, ErrInvalidDuration
	}
	return Duration{minutes: minutes}, nil
}

// OneHour is the owner grid's fixed duration.
func OneHour() Duration {
	return Duration{minutes: 60}
}

func (d Duration) Minutes() int {
	return d.minutes
}

func (d Duration) Hours() float64 {
	return float64(d.minutes) / 60
}

// Catalog enumerates the hourly start slots of [open, close), ascending.
// The same venue and day always produce the same sequence.
func Catalog(open, close Slot) []Slot {
	if !open.Before(close) {
		return nil
	}

	var slots []Slot
	for m := open.minutes; m < close.minutes; m += 60 {
		slots = append(slots, Slot{minutes: m})
	}
	return slots
}

func atoiNoErr(s string) int {
	n := 0
	for _, c := range s {
		n = n*10 + int(c-'0')
	}
	return n
}
