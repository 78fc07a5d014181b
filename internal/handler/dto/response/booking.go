package response

import (
	"time"

	"boxbook/internal/domain/booking"
	"boxbook/internal/usecase/commands"
	"boxbook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type QuoteResponse struct {
	Rental         string `json:"rental"`
	MatchingFee    string `json:"matchingFee"`
	Tax            string `json:"tax"`
	ConvenienceFee string `json:"convenienceFee"`
	Total          string `json:"total"`
	TotalPaise     int64  `json:"totalPaise"`
}

func FromQuote(q booking.Quote) QuoteResponse {
	return QuoteResponse{
		Rental:         q.Rental.String(),
		MatchingFee:    q.MatchingFee.String(),
		Tax:            q.Tax.String(),
		ConvenienceFee: q.ConvenienceFee.String(),
		Total:          q.Total.String(),
		TotalPaise:     q.Total.Paise(),
	}
}

// CheckoutResponse is the POST /bookings payload: the pending booking, the
// itemised quote, and the hold countdown.
type CheckoutResponse struct {
	ID            uuid.UUID     `json:"id"`
	Number        string        `json:"number"`
	Status        string        `json:"status"`
	Date          string        `json:"date"`
	Slot          string        `json:"slot"`
	DurationHours float64       `json:"durationHours"`
	Quote         QuoteResponse `json:"quote"`
	HoldExpiresAt time.Time     `json:"holdExpiresAt"`
}

func FromCheckoutResult(r *commands.CreateBookingResult) *CheckoutResponse {
	b := r.Booking
	return &CheckoutResponse{
		ID:            b.ID(),
		Number:        b.Number().String(),
		Status:        b.Status().String(),
		Date:          b.Date().String(),
		Slot:          b.Slot().Label(),
		DurationHours: b.Duration().Hours(),
		Quote:         FromQuote(r.Quote),
		HoldExpiresAt: r.HoldExpiresAt,
	}
}

type BookingStatusResponse struct {
	ID     uuid.UUID `json:"id"`
	Number string    `json:"number"`
	Status string    `json:"status"`
}

func FromBookingEntity(b *booking.Booking) *BookingStatusResponse {
	return &BookingStatusResponse{
		ID:     b.ID(),
		Number: b.Number().String(),
		Status: b.Status().String(),
	}
}

type BookingResponse struct {
	ID            uuid.UUID `json:"id"`
	Number        string    `json:"number"`
	VenueID       uuid.UUID `json:"venueId"`
	VenueName     string    `json:"venueName"`
	Date          string    `json:"date"`
	Slot          string    `json:"slot"`
	EndSlot       string    `json:"endSlot"`
	DurationHours float64   `json:"durationHours"`
	Channel       string    `json:"channel"`
	Status        string    `json:"status"`
	CustomerName  string    `json:"customerName"`
	CustomerPhone string    `json:"customerPhone"`
	AmountPaise   int64     `json:"amountPaise"`
	Amount        string    `json:"amount"`
	Note          *string   `json:"note,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type BookingListResponse struct {
	ID          uuid.UUID `json:"id"`
	Number      string    `json:"number"`
	VenueName   string    `json:"venueName"`
	Date        string    `json:"date"`
	Slot        string    `json:"slot"`
	Status      string    `json:"status"`
	AmountPaise int64     `json:"amountPaise"`
	CreatedAt   time.Time `json:"createdAt"`
}

type BookingPageResponse struct {
	Items      []*BookingListResponse `json:"items"`
	NextCursor *string                `json:"nextCursor,omitempty"`
}

func FromBookingView(view *queries.BookingView) *BookingResponse {
	var resp BookingResponse
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromBookingPage(items []*queries.BookingListItem, next *queries.Cursor) *BookingPageResponse {
	page := &BookingPageResponse{Items: make([]*BookingListResponse, len(items))}
	for i, item := range items {
		var resp BookingListResponse
		_ = copier.Copy(&resp, item)
		page.Items[i] = &resp
	}
	if next != nil {
		page.NextCursor = &next.After
	}
	return page
}
