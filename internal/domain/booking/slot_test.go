//go:build unit

package booking_test

import (
	"testing"

	"boxbook/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSlot(t *testing.T) {
	t.Run("valid labels", func(t *testing.T) {
		cases := []struct {
			label   string
			minutes int
		}{
			{"6:00 AM", 6 * 60},
			{"06:00 AM", 6 * 60},
			{"12:00 AM", 0},
			{"12:00 PM", 12 * 60},
			{"12:30 PM", 12*60 + 30},
			{"1:00 PM", 13 * 60},
			{"11:00 PM", 23 * 60},
			{"11:30 PM", 23*60 + 30},
		}
		for _, tc := range cases {
			t.Run(tc.label, func(t *testing.T) {
				slot, err := booking.ParseSlot(tc.label)
				require.NoError(t, err)
				assert.Equal(t, tc.minutes, slot.Minutes())
			})
		}
	})

	t.Run("malformed labels rejected at the boundary", func(t *testing.T) {
		cases := []string{
			"",
			"6 AM",
			"6:0 AM",
			"13:00 PM",
			"0:00 AM",
			"6:00am",
			"6:00",
			"6:61 AM",
			"18:00",
			"noon",
		}
		for _, label := range cases {
			t.Run(label, func(t *testing.T) {
				_, err := booking.ParseSlot(label)
				assert.ErrorIs(t, err, booking.ErrInvalidSlotFormat)
			})
		}
	})
}

func TestSlotLabelRoundTrip(t *testing.T) {
	for _, label := range []string{"6:00 AM", "12:00 AM", "12:00 PM", "11:30 PM", "1:00 PM"} {
		slot, err := booking.ParseSlot(label)
		require.NoError(t, err)
		assert.Equal(t, label, slot.Label())
	}
}

func TestSlotAdd(t *testing.T) {
	cases := []struct {
		name  string
		start string
		hours float64
		want  string
	}{
		{"midnight rollover", "11:00 PM", 1.5, "12:30 AM"},
		{"noon rollover", "11:30 AM", 1, "12:30 PM"},
		{"plain hour", "6:00 PM", 2, "8:00 PM"},
		{"half hour", "9:00 AM", 0.5, "9:30 AM"},
		{"into next morning", "10:00 PM", 4, "2:00 AM"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start, err := booking.ParseSlot(tc.start)
			require.NoError(t, err)
			d, err := booking.NewDuration(tc.hours)
			require.NoError(t, err)
			assert.Equal(t, tc.want, start.Add(d).Label())
		})
	}
}

func TestNewDuration(t *testing.T) {
	for _, hours := range []float64{0.5, 1, 1.5, 2, 5} {
		_, err := booking.NewDuration(hours)
		assert.NoError(t, err, "hours=%v", hours)
	}
	for _, hours := range []float64{0, -1, 0.25, 1.2, 0.75} {
		_, err := booking.NewDuration(hours)
		assert.ErrorIs(t, err, booking.ErrInvalidDuration, "hours=%v", hours)
	}
}

func TestCatalog(t *testing.T) {
	open, err := booking.ParseSlot("6:00 AM")
	require.NoError(t, err)
	close, err := booking.ParseSlot("11:00 PM")
	require.NoError(t, err)

	slots := booking.Catalog(open, close)
	require.Len(t, slots, 17)

	assert.Equal(t, "6:00 AM", slots[0].Label())
	assert.Equal(t, "12:00 PM", slots[6].Label())
	assert.Equal(t, "10:00 PM", slots[16].Label())

	// Deterministic and strictly ascending on every call.
	again := booking.Catalog(open, close)
	require.Equal(t, slots, again)
	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i-1].Before(slots[i]))
	}
}

func TestCatalogDegenerateHours(t *testing.T) {
	open, _ := booking.ParseSlot("6:00 AM")
	assert.Nil(t, booking.Catalog(open, open))
}
