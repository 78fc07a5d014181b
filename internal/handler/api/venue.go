package api

import (
	"errors"
	"net/http"

	resdto "boxbook/internal/handler/dto/response"
	"boxbook/internal/handler/httperr"
	"boxbook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type VenueHandler struct {
	venues       queries.VenueQueries
	availability queries.AvailabilityQueries
}

func NewVenueHandler(venues queries.VenueQueries, availability queries.AvailabilityQueries) *VenueHandler {
	return &VenueHandler{venues: venues, availability: availability}
}

// @Summary List venues
// @Description List active venues, optionally filtered by area
// @Tags venues
// @Produce json
// @Param area query string false "Area filter"
// @Success 200 {array} resdto.VenueResponse
// @Router /venues [get]
func (h *VenueHandler) List(c *gin.Context) {
	var area *string
	if v := c.Query("area"); v != "" {
		area = &v
	}

	views, err := h.venues.List(c.Request.Context(), area)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromVenueViews(views))
}

// @Summary Get venue
// @Description Get a venue by slug
// @Tags venues
// @Produce json
// @Param slug path string true "Venue slug"
// @Success 200 {object} resdto.VenueResponse
// @Failure 404 {object} httperr.Response
// @Router /venues/{slug} [get]
func (h *VenueHandler) GetBySlug(c *gin.Context) {
	view, err := h.venues.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrVenueNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Venue not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromVenueView(view))
}

// @Summary Day availability
// @Description Hourly availability and pricing for a venue on a date
// @Tags venues
// @Produce json
// @Param slug path string true "Venue slug"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} resdto.DayAvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /venues/{slug}/availability [get]
func (h *VenueHandler) Availability(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		httperr.AbortWithError(c, http.StatusBadRequest, errors.New("missing date"), "Query parameter 'date' is required", nil)
		return
	}

	view, err := h.availability.DayAvailability(c.Request.Context(), c.Param("slug"), date)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrVenueNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Venue not found", nil)
		case errors.Is(err, queries.ErrInvalidQueryInput):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date, expected YYYY-MM-DD", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromDayAvailability(view))
}
