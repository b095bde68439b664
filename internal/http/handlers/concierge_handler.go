// README: AI concierge handler; parses guest messages into quotes or winery searches.
package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"vintrail/internal/ai"
	"vintrail/internal/maps"
	"vintrail/internal/modules/pricing"
)

type ConciergeHandler struct {
	concierge ai.Concierge
	wineries  *maps.WinerySearchService
	pricing   *pricing.Service
}

func NewConciergeHandler(concierge ai.Concierge, wineries *maps.WinerySearchService, pricingSvc *pricing.Service) *ConciergeHandler {
	return &ConciergeHandler{concierge: concierge, wineries: wineries, pricing: pricingSvc}
}

type conciergeChatReq struct {
	CustomerID   string `json:"customer_id"`
	CustomerName string `json:"customer_name"`
	Message      string `json:"message"`
}

// Chat handles POST /api/concierge/chat. The model decides the intent; this
// handler only routes it to the matching service and never trusts the model
// with arithmetic.
func (h *ConciergeHandler) Chat(c *gin.Context) {
	var req conciergeChatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		writeError(c, http.StatusBadRequest, "missing message")
		return
	}
	if req.CustomerID != "" && !isValidID(req.CustomerID) {
		writeError(c, http.StatusBadRequest, "invalid customer_id")
		return
	}

	ctx := c.Request.Context()
	intent, err := h.concierge.ParseTourRequest(ctx, req.Message, map[string]string{
		"current_time":  time.Now().Format(time.RFC3339),
		"customer_name": req.CustomerName,
	})
	if err != nil {
		writeError(c, http.StatusInternalServerError, "concierge unavailable")
		return
	}

	switch intent.Intent {
	case "quote":
		h.replyWithQuote(c, req.CustomerID, intent)
	case "winery_search":
		h.replyWithWineries(c, intent)
	default:
		writeJSON(c, http.StatusOK, map[string]any{"reply": intent.Reply})
	}
}

func (h *ConciergeHandler) replyWithQuote(c *gin.Context, customerID string, intent *ai.TourIntent) {
	// The model is told to leave fields null rather than guess; a null here
	// means we relay its follow-up question.
	if intent.ServiceType == nil || intent.TourDate == nil || intent.PartySize == nil {
		writeJSON(c, http.StatusOK, map[string]any{"reply": intent.Reply})
		return
	}
	date, err := time.Parse(dateLayout, *intent.TourDate)
	if err != nil {
		writeJSON(c, http.StatusOK, map[string]any{"reply": intent.Reply})
		return
	}

	ctx := c.Request.Context()
	var q pricing.Quote
	switch *intent.ServiceType {
	case pricing.ServiceWineTour:
		hours := 0.0
		if intent.DurationHours != nil {
			hours = *intent.DurationHours
		}
		q = h.pricing.WineTour(ctx, customerID, hours, *intent.PartySize, date)
	case pricing.ServiceSharedTour:
		if !h.pricing.SharedTourRuns(date) {
			writeJSON(c, http.StatusOK, map[string]any{
				"reply": "Our shared tour runs Friday through Sunday only. Would another day or a private tour work?",
			})
			return
		}
		lunch := false
		if intent.IncludeLunch != nil {
			lunch = *intent.IncludeLunch
		}
		q = h.pricing.SharedTour(ctx, customerID, *intent.PartySize, lunch, date)
	default:
		writeJSON(c, http.StatusOK, map[string]any{"reply": intent.Reply})
		return
	}

	writeJSON(c, http.StatusOK, map[string]any{
		"reply": intent.Reply,
		"quote": toQuoteResponse(q),
	})
}

func (h *ConciergeHandler) replyWithWineries(c *gin.Context, intent *ai.TourIntent) {
	region := ""
	if intent.Region != nil {
		region = *intent.Region
	}
	opts := &maps.SearchOptions{ExcludeKeywords: intent.ExcludeKeywords}
	if intent.SearchKeywords != nil {
		opts.SearchKeywords = *intent.SearchKeywords
	}

	results, err := h.wineries.SearchWineries(c.Request.Context(), region, "", opts)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "winery search unavailable")
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{
		"reply":    intent.Reply,
		"wineries": results,
	})
}
