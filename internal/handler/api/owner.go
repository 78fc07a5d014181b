package api

import (
	"errors"
	"net/http"

	reqdto "boxbook/internal/handler/dto/request"
	resdto "boxbook/internal/handler/dto/response"
	"boxbook/internal/handler/httperr"
	"boxbook/internal/handler/middleware"
	"boxbook/internal/usecase/commands"
	"boxbook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OwnerHandler struct {
	bookings commands.BookingCommands
	queries  queries.OwnerQueries
}

func NewOwnerHandler(bookingCommands commands.BookingCommands, ownerQueries queries.OwnerQueries) *OwnerHandler {
	return &OwnerHandler{bookings: bookingCommands, queries: ownerQueries}
}

// @Summary Create offline booking
// @Description Record a walk-in or phone booking on the venue's grid
// @Tags owner
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Venue ID"
// @Param request body reqdto.OfflineBookingRequest true "Offline booking"
// @Success 201 {object} resdto.BookingStatusResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /owner/venues/{id}/bookings [post]
func (h *OwnerHandler) CreateOfflineBooking(c *gin.Context) {
	ownerID, venueID, ok := h.ownerAndVenue(c)
	if !ok {
		return
	}

	var req reqdto.OfflineBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	b, err := h.bookings.CreateOfflineBooking(c.Request.Context(), req.ToInput(venueID), ownerID)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrVenueNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Venue not found", nil)
		case errors.Is(err, commands.ErrNotVenueOwner):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Not your venue", nil)
		case errors.Is(err, commands.ErrInvalidBookingInput):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking request", nil)
		case errors.Is(err, commands.ErrSlotOutsideHours):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Slot is outside operating hours", nil)
		case errors.Is(err, commands.ErrSlotUnavailable):
			httperr.AbortWithError(c, http.StatusConflict, err, "Slot is no longer available", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromBookingEntity(b))
}

// @Summary Owner day grid
// @Description Hourly calendar of a venue's day with occupying bookings
// @Tags owner
// @Produce json
// @Security BearerAuth
// @Param id path string true "Venue ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} resdto.OwnerDayResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /owner/venues/{id}/day [get]
func (h *OwnerHandler) DayGrid(c *gin.Context) {
	ownerID, venueID, ok := h.ownerAndVenue(c)
	if !ok {
		return
	}

	date := c.Query("date")
	if date == "" {
		httperr.AbortWithError(c, http.StatusBadRequest, errors.New("missing date"), "Query parameter 'date' is required", nil)
		return
	}

	view, err := h.queries.DayGrid(c.Request.Context(), ownerID, venueID, date)
	if err != nil {
		h.abortQueryError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromOwnerDayView(view))
}

// @Summary Owner stats
// @Description Booking counts and confirmed revenue for a venue
// @Tags owner
// @Produce json
// @Security BearerAuth
// @Param id path string true "Venue ID"
// @Success 200 {object} resdto.OwnerStatsResponse
// @Failure 403 {object} httperr.Response
// @Router /owner/venues/{id}/stats [get]
func (h *OwnerHandler) Stats(c *gin.Context) {
	ownerID, venueID, ok := h.ownerAndVenue(c)
	if !ok {
		return
	}

	view, err := h.queries.Stats(c.Request.Context(), ownerID, venueID)
	if err != nil {
		h.abortQueryError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromOwnerStatsView(view))
}

func (h *OwnerHandler) ownerAndVenue(c *gin.Context) (ownerID, venueID uuid.UUID, ok bool) {
	ownerID, found := middleware.GetUserID(c)
	if !found {
		httperr.AbortWithError(c, http.StatusInternalServerError, errors.New("missing user context"), "Internal server error", nil)
		return uuid.Nil, uuid.Nil, false
	}
	venueID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid venue ID format", nil)
		return uuid.Nil, uuid.Nil, false
	}
	return ownerID, venueID, true
}

func (h *OwnerHandler) abortQueryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, queries.ErrVenueNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Venue not found", nil)
	case errors.Is(err, queries.ErrForbidden):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Not your venue", nil)
	case errors.Is(err, queries.ErrInvalidQueryInput):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date, expected YYYY-MM-DD", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
