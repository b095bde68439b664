// README: Quote handlers for wine tour, shared tour, transfer, and wait time pricing.
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"vintrail/internal/modules/pricing"
)

const dateLayout = "2006-01-02"

type QuoteHandler struct {
	pricing *pricing.Service
}

func NewQuoteHandler(svc *pricing.Service) *QuoteHandler {
	return &QuoteHandler{pricing: svc}
}

type quoteResponse struct {
	Service  string  `json:"service"`
	DayType  string  `json:"day_type"`
	Band     string  `json:"band,omitempty"`
	Units    float64 `json:"units"`
	UnitRate float64 `json:"unit_rate"`
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Deposit  float64 `json:"deposit"`
	Total    float64 `json:"total"`
}

func toQuoteResponse(q pricing.Quote) quoteResponse {
	return quoteResponse{
		Service:  q.Service,
		DayType:  q.DayType,
		Band:     q.Band,
		Units:    q.Units,
		UnitRate: q.UnitRate,
		Subtotal: q.Subtotal,
		Tax:      q.Tax,
		Deposit:  q.Deposit,
		Total:    q.Total,
	}
}

type wineTourQuoteReq struct {
	CustomerID    string  `json:"customer_id"`
	TourDate      string  `json:"tour_date"`
	PartySize     int     `json:"party_size"`
	DurationHours float64 `json:"duration_hours"`
}

// WineTour handles POST /api/quotes/wine-tour.
func (h *QuoteHandler) WineTour(c *gin.Context) {
	var req wineTourQuoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	date, err := time.Parse(dateLayout, req.TourDate)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid tour_date, want YYYY-MM-DD")
		return
	}
	if req.PartySize < 1 || req.PartySize > h.pricing.Table().MaxGuests {
		writeError(c, http.StatusBadRequest, "party_size out of range")
		return
	}
	q := h.pricing.WineTour(c.Request.Context(), req.CustomerID, req.DurationHours, req.PartySize, date)
	writeJSON(c, http.StatusOK, toQuoteResponse(q))
}

type sharedTourQuoteReq struct {
	CustomerID   string `json:"customer_id"`
	TourDate     string `json:"tour_date"`
	GuestCount   int    `json:"guest_count"`
	IncludeLunch bool   `json:"include_lunch"`
}

// SharedTour handles POST /api/quotes/shared-tour.
func (h *QuoteHandler) SharedTour(c *gin.Context) {
	var req sharedTourQuoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	date, err := time.Parse(dateLayout, req.TourDate)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid tour_date, want YYYY-MM-DD")
		return
	}
	if req.GuestCount < 1 || req.GuestCount > h.pricing.Table().MaxGuests {
		writeError(c, http.StatusBadRequest, "guest_count out of range")
		return
	}
	if !h.pricing.SharedTourRuns(date) {
		writeError(c, http.StatusBadRequest, "shared tour does not run on that day")
		return
	}
	q := h.pricing.SharedTour(c.Request.Context(), req.CustomerID, req.GuestCount, req.IncludeLunch, date)
	writeJSON(c, http.StatusOK, toQuoteResponse(q))
}

type transferQuoteReq struct {
	Route string   `json:"route"`
	Miles *float64 `json:"miles,omitempty"`
}

// Transfer handles POST /api/quotes/transfer. Transfer totals carry no tax.
func (h *QuoteHandler) Transfer(c *gin.Context) {
	var req transferQuoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	total, err := h.pricing.Transfer(req.Route, req.Miles)
	if err != nil {
		if errors.Is(err, pricing.ErrUnknownRoute) {
			writeError(c, http.StatusBadRequest, err.Error())
			return
		}
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"route": req.Route, "total": total})
}

type waitTimeQuoteReq struct {
	TourDate  string  `json:"tour_date"`
	PartySize int     `json:"party_size"`
	Hours     float64 `json:"hours"`
}

// WaitTime handles POST /api/quotes/wait-time.
func (h *QuoteHandler) WaitTime(c *gin.Context) {
	var req waitTimeQuoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	date, err := time.Parse(dateLayout, req.TourDate)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid tour_date, want YYYY-MM-DD")
		return
	}
	total := h.pricing.WaitTime(req.Hours, req.PartySize, date)
	writeJSON(c, http.StatusOK, map[string]any{"total": total})
}
