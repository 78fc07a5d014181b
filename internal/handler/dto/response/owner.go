package response

import (
	"boxbook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type OwnerSlotResponse struct {
	Slot    string               `json:"slot"`
	Booking *BookingListResponse `json:"booking,omitempty"`
}

type OwnerDayResponse struct {
	VenueID uuid.UUID           `json:"venueId"`
	Date    string              `json:"date"`
	Slots   []OwnerSlotResponse `json:"slots"`
}

type OwnerStatsResponse struct {
	TotalBookings     int64 `json:"totalBookings"`
	OnlineBookings    int64 `json:"onlineBookings"`
	OfflineBookings   int64 `json:"offlineBookings"`
	CancelledBookings int64 `json:"cancelledBookings"`
	RevenuePaise      int64 `json:"revenuePaise"`
}

func FromOwnerDayView(view *queries.OwnerDayView) *OwnerDayResponse {
	resp := &OwnerDayResponse{
		VenueID: view.VenueID,
		Date:    view.Date,
		Slots:   make([]OwnerSlotResponse, len(view.Slots)),
	}
	for i, cell := range view.Slots {
		out := OwnerSlotResponse{Slot: cell.Slot}
		if cell.Booking != nil {
			var item BookingListResponse
			_ = copier.Copy(&item, cell.Booking)
			out.Booking = &item
		}
		resp.Slots[i] = out
	}
	return resp
}

func FromOwnerStatsView(view *queries.OwnerStatsView) *OwnerStatsResponse {
	return &OwnerStatsResponse{
		TotalBookings:     view.TotalBookings,
		OnlineBookings:    view.OnlineBookings,
		OfflineBookings:   view.OfflineBookings,
		CancelledBookings: view.CancelledBookings,
		RevenuePaise:      view.RevenuePaise,
	}
}
