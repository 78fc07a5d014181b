package request

import (
	"strings"

	"boxbook/internal/pkg/patch"
	"boxbook/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	VenueSlug      string  `json:"venue_slug" binding:"required"`
	Date           string  `json:"date" binding:"required"`
	Slot           string  `json:"slot" binding:"required"`
	DurationHours  float64 `json:"duration_hours" binding:"required"`
	PlayerMatching bool    `json:"player_matching"`
	CustomerName   string  `json:"customer_name" binding:"required"`
	CustomerPhone  string  `json:"customer_phone" binding:"required"`
	Note           *string `json:"note,omitempty"`
}

func (r CreateBookingRequest) ToInput() commands.CreateBookingInput {
	return commands.CreateBookingInput{
		VenueSlug:      r.VenueSlug,
		Date:           r.Date,
		Slot:           r.Slot,
		DurationHours:  r.DurationHours,
		PlayerMatching: r.PlayerMatching,
		CustomerName:   r.CustomerName,
		CustomerPhone:  r.CustomerPhone,
		Note:           trimmedNote(r.Note),
	}
}

type OfflineBookingRequest struct {
	Date          string  `json:"date" binding:"required"`
	Slot          string  `json:"slot" binding:"required"`
	CustomerName  string  `json:"customer_name" binding:"required"`
	CustomerPhone string  `json:"customer_phone" binding:"required"`
	Note          *string `json:"note,omitempty"`
}

func (r OfflineBookingRequest) ToInput(venueID uuid.UUID) commands.OfflineBookingInput {
	return commands.OfflineBookingInput{
		VenueID:       venueID,
		Date:          r.Date,
		Slot:          r.Slot,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		Note:          trimmedNote(r.Note),
	}
}

func trimmedNote(note *string) string {
	return strings.TrimSpace(patch.Coalesce(note, ""))
}
