package response

import (
	"boxbook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type VenueResponse struct {
	ID               uuid.UUID `json:"id"`
	Slug             string    `json:"slug"`
	Name             string    `json:"name"`
	Area             string    `json:"area"`
	City             string    `json:"city"`
	HourlyRatePaise  int64     `json:"hourlyRatePaise"`
	WeekendRatePaise *int64    `json:"weekendRatePaise,omitempty"`
	OpenSlot         string    `json:"openSlot"`
	CloseSlot        string    `json:"closeSlot"`
	Amenities        []string  `json:"amenities"`
	Rules            []string  `json:"rules"`
}

func FromVenueView(view *queries.VenueView) *VenueResponse {
	var resp VenueResponse
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromVenueViews(views []*queries.VenueView) []*VenueResponse {
	out := make([]*VenueResponse, len(views))
	for i, v := range views {
		out[i] = FromVenueView(v)
	}
	return out
}

type SlotResponse struct {
	Slot       string `json:"slot"`
	Available  bool   `json:"available"`
	PricePaise int64  `json:"pricePaise"`
}

type DayAvailabilityResponse struct {
	VenueSlug string         `json:"venueSlug"`
	Date      string         `json:"date"`
	Slots     []SlotResponse `json:"slots"`
}

func FromDayAvailability(view *queries.DayAvailabilityView) *DayAvailabilityResponse {
	resp := &DayAvailabilityResponse{
		VenueSlug: view.VenueSlug,
		Date:      view.Date,
		Slots:     make([]SlotResponse, len(view.Slots)),
	}
	for i, s := range view.Slots {
		resp.Slots[i] = SlotResponse(s)
	}
	return resp
}
