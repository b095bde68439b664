// README: Booking handlers for create/get/list and lifecycle transitions.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"vintrail/internal/modules/booking"
	"vintrail/internal/types"
)

type BookingHandler struct {
	booking *booking.Service
}

func NewBookingHandler(svc *booking.Service) *BookingHandler {
	return &BookingHandler{booking: svc}
}

type createBookingReq struct {
	CustomerID    string  `json:"customer_id"`
	ServiceType   string  `json:"service_type"`
	TourDate      string  `json:"tour_date"`
	PartySize     int     `json:"party_size"`
	DurationHours float64 `json:"duration_hours"`
	IncludeLunch  bool    `json:"include_lunch"`
}

// Create handles POST /api/bookings.
func (h *BookingHandler) Create(c *gin.Context) {
	var req createBookingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.CustomerID == "" || !isValidID(req.CustomerID) {
		writeError(c, http.StatusBadRequest, "invalid customer_id")
		return
	}
	date, err := time.Parse(dateLayout, req.TourDate)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid tour_date, want YYYY-MM-DD")
		return
	}

	id, err := h.booking.Create(c.Request.Context(), booking.CreateCommand{
		CustomerID:    types.ID(req.CustomerID),
		ServiceType:   req.ServiceType,
		TourDate:      date,
		PartySize:     req.PartySize,
		DurationHours: req.DurationHours,
		IncludeLunch:  req.IncludeLunch,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, map[string]any{"booking_id": id, "status": booking.StatusQuoted})
}

// Get handles GET /api/bookings/:id.
func (h *BookingHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid booking id")
		return
	}
	b, err := h.booking.Get(c.Request.Context(), types.ID(id))
	if err != nil {
		writeBookingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, b)
}

// ListByCustomer handles GET /api/customers/:id/bookings.
func (h *BookingHandler) ListByCustomer(c *gin.Context) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid customer id")
		return
	}
	bs, err := h.booking.ListByCustomer(c.Request.Context(), types.ID(id))
	if err != nil {
		writeBookingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"bookings": bs})
}

// Confirm handles POST /api/bookings/:id/confirm.
func (h *BookingHandler) Confirm(c *gin.Context) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid booking id")
		return
	}
	if err := h.booking.Confirm(c.Request.Context(), booking.ConfirmCommand{BookingID: types.ID(id)}); err != nil {
		writeBookingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"booking_id": id, "status": booking.StatusConfirmed})
}

type driverActionReq struct {
	DriverID string `json:"driver_id"`
}

// Start handles POST /api/bookings/:id/start.
func (h *BookingHandler) Start(c *gin.Context) {
	id := c.Param("id")
	var req driverActionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if !isValidID(id) || !isValidID(req.DriverID) || req.DriverID == "" {
		writeError(c, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.booking.Start(c.Request.Context(), booking.StartCommand{
		BookingID: types.ID(id),
		DriverID:  types.ID(req.DriverID),
	}); err != nil {
		writeBookingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"booking_id": id, "status": booking.StatusInProgress})
}

// Complete handles POST /api/bookings/:id/complete.
func (h *BookingHandler) Complete(c *gin.Context) {
	id := c.Param("id")
	var req driverActionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if !isValidID(id) || !isValidID(req.DriverID) || req.DriverID == "" {
		writeError(c, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.booking.Complete(c.Request.Context(), booking.CompleteCommand{
		BookingID: types.ID(id),
		DriverID:  types.ID(req.DriverID),
	}); err != nil {
		writeBookingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"booking_id": id, "status": booking.StatusCompleted})
}

type cancelBookingReq struct {
	ActorType string `json:"actor_type"`
	Reason    string `json:"reason"`
}

// Cancel handles POST /api/bookings/:id/cancel.
func (h *BookingHandler) Cancel(c *gin.Context) {
	id := c.Param("id")
	var req cancelBookingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid booking id")
		return
	}
	if req.ActorType == "" {
		req.ActorType = "customer"
	}
	if err := h.booking.Cancel(c.Request.Context(), booking.CancelCommand{
		BookingID: types.ID(id),
		ActorType: req.ActorType,
		Reason:    req.Reason,
	}); err != nil {
		writeBookingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"booking_id": id, "status": booking.StatusCancelled})
}
