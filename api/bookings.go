package api

import (
	"net/http"

	"github.com/Domenick1991/tripavista/internal/domain"
	"github.com/Domenick1991/tripavista/internal/service/booking"
	"github.com/Domenick1991/tripavista/internal/service/itinerary"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

// draftRequest carries the draft forwarded from the previous step. A nil
// Booking means the step was reached without one.
type draftRequest struct {
	Booking *domain.BookingDraft `json:"booking"`
	Days    int                  `json:"days"`
}

type previewRequest struct {
	Destination string `json:"destination"`
	Date        string `json:"date"`
}

type paymentRequest struct {
	Booking *domain.BookingDraft   `json:"booking"`
	Payment booking.PaymentDetails `json:"payment"`
}

type draftResponse struct {
	Booking domain.BookingDraft `json:"booking"`
	State   booking.State       `json:"state"`
	Next    string              `json:"next"`
}

type ticketResponse struct {
	Ticket  *domain.Ticket `json:"ticket"`
	Message string         `json:"message"`
}

type noticeResponse struct {
	Message string `json:"message"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router gin.IRoutes) {
	router.POST("/bookings", h.create)
	router.POST("/trip-roadmap/preview", h.preview)
	router.POST("/trip-roadmap", h.roadmap)
	router.POST("/trip-roadmap/email", h.roadmapEmail)
	router.POST("/payment/summary", h.summary)
	router.POST("/payment", h.pay)
	router.GET("/tickets/:reference", h.ticket)
	router.POST("/tickets/:reference/email", h.ticketEmail)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req booking.DraftInput
	if err := bindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}
	draft, err := h.service.CreateDraft(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, draftResponse{
		Booking: *draft,
		State:   booking.StateDraftCreated,
		Next:    "/trip-roadmap",
	})
}

func (h *BookingHandler) preview(c *gin.Context) {
	var req previewRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}
	roadmap, err := h.service.PreviewDraft(c.Request.Context(), req.Destination, req.Date)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, roadmap)
}

func (h *BookingHandler) roadmap(c *gin.Context) {
	var req draftRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}
	if req.Days == 0 {
		req.Days = itinerary.FullDays
	}
	roadmap, err := h.service.PreviewRoadmap(c.Request.Context(), req.Booking, req.Days)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, roadmap)
}

func (h *BookingHandler) roadmapEmail(c *gin.Context) {
	var req draftRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}
	if err := h.service.RequestRoadmapEmail(c.Request.Context(), req.Booking); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusAccepted, noticeResponse{Message: booking.RoadmapEmailNotice})
}

func (h *BookingHandler) summary(c *gin.Context) {
	var req draftRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}
	checkout, err := h.checkout(c, req.Booking)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, checkout)
}

func (h *BookingHandler) pay(c *gin.Context) {
	var req paymentRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}
	checkout, err := h.checkout(c, req.Booking)
	if err != nil {
		h.fail(c, err)
		return
	}
	ticket, err := h.service.Pay(c.Request.Context(), checkout, req.Payment)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ticketResponse{
		Ticket:  ticket,
		Message: booking.PaymentMessage(ticket.Confirmation.Price.Total),
	})
}

func (h *BookingHandler) ticket(c *gin.Context) {
	ticket, err := h.service.Ticket(c.Request.Context(), c.Param("reference"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}

func (h *BookingHandler) ticketEmail(c *gin.Context) {
	if err := h.service.RequestTicketEmail(c.Request.Context(), c.Param("reference")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusAccepted, noticeResponse{Message: booking.TicketEmailNotice})
}

// checkout replays the forwarded draft through the roadmap step so the
// payment steps only ever see a draft that passed it.
func (h *BookingHandler) checkout(c *gin.Context, draft *domain.BookingDraft) (*booking.Checkout, error) {
	roadmap, err := h.service.PreviewRoadmap(c.Request.Context(), draft, itinerary.FullDays)
	if err != nil {
		return nil, err
	}
	return h.service.BeginCheckout(c.Request.Context(), roadmap)
}

func (h *BookingHandler) fail(c *gin.Context, err error) {
	if booking.IsRecoverable(err) {
		r := h.service.Recover(c.Request.Context(), c.FullPath())
		writeRedirect(c, http.StatusBadRequest, "missing_context", r.Message, r.To, r.After)
		return
	}
	writeError(c, err)
}
