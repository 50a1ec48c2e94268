package api

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Domenick1991/tripavista/internal/domain"
	"github.com/Domenick1991/tripavista/internal/service/search"
	"github.com/gin-gonic/gin"
)

type DestinationHandler struct {
	service search.SearchUseCase
}

func NewDestinationHandler(service search.SearchUseCase) *DestinationHandler {
	return &DestinationHandler{service: service}
}

func (h *DestinationHandler) Register(router gin.IRoutes) {
	router.GET("/destinations", h.search)
	router.GET("/flights", h.flights)
	router.GET("/hotels", h.hotels)
	router.GET("/about", h.about)
}

func (h *DestinationHandler) search(c *gin.Context) {
	criteria, err := criteriaFromQuery(c)
	if err != nil {
		writeError(c, err)
		return
	}
	result, err := h.service.Search(c.Request.Context(), criteria)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *DestinationHandler) flights(c *gin.Context) {
	deals, err := h.service.FeaturedFlights(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, deals)
}

func (h *DestinationHandler) about(c *gin.Context) {
	about, err := h.service.About(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, about)
}

func (h *DestinationHandler) hotels(c *gin.Context) {
	deals, err := h.service.FeaturedHotels(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, deals)
}

// criteriaFromQuery reads destination, travel_type, departure_date,
// return_date, activities (repeated or comma separated), min_price and
// max_price. A single price bound leaves the other side open.
func criteriaFromQuery(c *gin.Context) (domain.SearchCriteria, error) {
	criteria := domain.SearchCriteria{
		Destination: strings.TrimSpace(c.Query("destination")),
		TravelType:  domain.TravelType(c.Query("travel_type")),
	}

	for _, raw := range c.QueryArray("activities") {
		for _, tag := range strings.Split(raw, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				criteria.Activities = append(criteria.Activities, tag)
			}
		}
	}

	var err error
	if criteria.DepartureDate, err = dateParam(c, "departure_date"); err != nil {
		return criteria, err
	}
	if criteria.ReturnDate, err = dateParam(c, "return_date"); err != nil {
		return criteria, err
	}

	minRaw, maxRaw := c.Query("min_price"), c.Query("max_price")
	if minRaw != "" || maxRaw != "" {
		r := domain.PriceRange{Min: 0, Max: math.MaxInt}
		if minRaw != "" {
			if r.Min, err = strconv.Atoi(minRaw); err != nil {
				return criteria, fmt.Errorf("%w: min_price must be a whole number", domain.ErrValidation)
			}
		}
		if maxRaw != "" {
			if r.Max, err = strconv.Atoi(maxRaw); err != nil {
				return criteria, fmt.Errorf("%w: max_price must be a whole number", domain.ErrValidation)
			}
		}
		criteria.PriceRange = &r
	}
	return criteria, nil
}

func dateParam(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(domain.DateLayout, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be YYYY-MM-DD", domain.ErrValidation, name)
	}
	return &t, nil
}
