// README: Itinerary handlers for stop edits and drive-time refresh.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"vintrail/internal/modules/itinerary"
	"vintrail/internal/types"
)

type ItineraryHandler struct {
	itinerary *itinerary.Service
}

func NewItineraryHandler(svc *itinerary.Service) *ItineraryHandler {
	return &ItineraryHandler{itinerary: svc}
}

type createItineraryReq struct {
	BookingID       string `json:"booking_id"`
	PickupLocation  string `json:"pickup_location"`
	PickupAt        string `json:"pickup_at"`
	DropoffLocation string `json:"dropoff_location"`
}

// Create handles POST /api/itineraries.
func (h *ItineraryHandler) Create(c *gin.Context) {
	var req createItineraryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if !isValidID(req.BookingID) || req.BookingID == "" {
		writeError(c, http.StatusBadRequest, "invalid booking_id")
		return
	}
	pickupAt, err := time.Parse(time.RFC3339, req.PickupAt)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid pickup_at, want RFC 3339")
		return
	}
	if req.PickupLocation == "" || req.DropoffLocation == "" {
		writeError(c, http.StatusBadRequest, "missing pickup or dropoff location")
		return
	}

	id, err := h.itinerary.Create(c.Request.Context(), itinerary.CreateCommand{
		BookingID:       types.ID(req.BookingID),
		PickupLocation:  req.PickupLocation,
		PickupAt:        pickupAt,
		DropoffLocation: req.DropoffLocation,
	})
	if err != nil {
		writeItineraryError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, map[string]any{"itinerary_id": id})
}

// Get handles GET /api/itineraries/:id.
func (h *ItineraryHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid itinerary id")
		return
	}
	it, err := h.itinerary.Get(c.Request.Context(), types.ID(id))
	if err != nil {
		writeItineraryError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, it)
}

type addStopReq struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	DurationMin int    `json:"duration_min"`
	IsBreak     bool   `json:"is_break"`
}

// AddStop handles POST /api/itineraries/:id/stops.
func (h *ItineraryHandler) AddStop(c *gin.Context) {
	id := c.Param("id")
	var req addStopReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid itinerary id")
		return
	}
	if req.Name == "" || req.Address == "" {
		writeError(c, http.StatusBadRequest, "missing stop name or address")
		return
	}
	if req.DurationMin < 0 {
		writeError(c, http.StatusBadRequest, "duration_min must be >= 0")
		return
	}
	it, err := h.itinerary.AddStop(c.Request.Context(), types.ID(id), itinerary.Stop{
		Name:        req.Name,
		Address:     req.Address,
		DurationMin: req.DurationMin,
		IsBreak:     req.IsBreak,
	})
	if err != nil {
		writeItineraryError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, it)
}

type removeStopReq struct {
	Position int `json:"position"`
}

// RemoveStop handles POST /api/itineraries/:id/stops/remove. The stored times
// of later stops go stale until a recompute is requested.
func (h *ItineraryHandler) RemoveStop(c *gin.Context) {
	id := c.Param("id")
	var req removeStopReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid itinerary id")
		return
	}
	it, err := h.itinerary.RemoveStop(c.Request.Context(), types.ID(id), req.Position)
	if err != nil {
		writeItineraryError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, it)
}

type reorderStopReq struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// ReorderStop handles POST /api/itineraries/:id/stops/reorder.
func (h *ItineraryHandler) ReorderStop(c *gin.Context) {
	id := c.Param("id")
	var req reorderStopReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid itinerary id")
		return
	}
	it, err := h.itinerary.ReorderStop(c.Request.Context(), types.ID(id), req.From, req.To)
	if err != nil {
		writeItineraryError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, it)
}

type updateStopDurationReq struct {
	Position    int `json:"position"`
	DurationMin int `json:"duration_min"`
}

// UpdateStopDuration handles POST /api/itineraries/:id/stops/duration.
func (h *ItineraryHandler) UpdateStopDuration(c *gin.Context) {
	id := c.Param("id")
	var req updateStopDurationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid itinerary id")
		return
	}
	if req.DurationMin < 0 {
		writeError(c, http.StatusBadRequest, "duration_min must be >= 0")
		return
	}
	it, err := h.itinerary.UpdateStopDuration(c.Request.Context(), types.ID(id), req.Position, req.DurationMin)
	if err != nil {
		writeItineraryError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, it)
}

// RefreshDriveTimes handles POST /api/itineraries/:id/refresh-drive-times.
// It re-fetches every leg from the distance API, so it is the slow path.
func (h *ItineraryHandler) RefreshDriveTimes(c *gin.Context) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid itinerary id")
		return
	}
	it, err := h.itinerary.RefreshDriveTimes(c.Request.Context(), types.ID(id))
	if err != nil {
		writeItineraryError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, it)
}

// RecomputeTimes handles POST /api/itineraries/:id/recompute.
func (h *ItineraryHandler) RecomputeTimes(c *gin.Context) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid itinerary id")
		return
	}
	it, err := h.itinerary.RecomputeTimes(c.Request.Context(), types.ID(id))
	if err != nil {
		writeItineraryError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, it)
}
