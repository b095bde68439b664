// README: Recurring event handlers; rules expand to instances at creation.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"vintrail/internal/modules/event"
	"vintrail/internal/modules/recurrence"
	"vintrail/internal/types"
)

type EventHandler struct {
	event *event.Service
}

func NewEventHandler(svc *event.Service) *EventHandler {
	return &EventHandler{event: svc}
}

type createEventReq struct {
	HostID    string `json:"host_id"`
	Title     string `json:"title"`
	Venue     string `json:"venue"`
	StartDate string `json:"start_date"`
	Rule      struct {
		Frequency  string `json:"frequency"`
		DaysOfWeek []int  `json:"days_of_week,omitempty"`
		DayOfMonth int    `json:"day_of_month,omitempty"`
		EndType    string `json:"end_type,omitempty"`
		Count      int    `json:"count,omitempty"`
		UntilDate  string `json:"until_date,omitempty"`
	} `json:"rule"`
}

// Create handles POST /api/events.
func (h *EventHandler) Create(c *gin.Context) {
	var req createEventReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.HostID == "" || !isValidID(req.HostID) {
		writeError(c, http.StatusBadRequest, "invalid host_id")
		return
	}
	for _, d := range req.Rule.DaysOfWeek {
		if d < 0 || d > 6 {
			writeError(c, http.StatusBadRequest, "days_of_week entries must be 0 (Sunday) through 6 (Saturday)")
			return
		}
	}

	days := make([]time.Weekday, 0, len(req.Rule.DaysOfWeek))
	for _, d := range req.Rule.DaysOfWeek {
		days = append(days, time.Weekday(d))
	}

	id, err := h.event.Create(c.Request.Context(), event.CreateCommand{
		HostID:    types.ID(req.HostID),
		Title:     req.Title,
		Venue:     req.Venue,
		StartDate: req.StartDate,
		Rule: recurrence.Rule{
			Frequency:  recurrence.Frequency(req.Rule.Frequency),
			DaysOfWeek: days,
			DayOfMonth: req.Rule.DayOfMonth,
			EndType:    recurrence.EndType(req.Rule.EndType),
			Count:      req.Rule.Count,
			UntilDate:  req.Rule.UntilDate,
		},
	})
	if err != nil {
		writeEventError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, map[string]any{"event_id": id})
}

type previewEventReq struct {
	StartDate string `json:"start_date"`
	Rule      struct {
		Frequency  string `json:"frequency"`
		DaysOfWeek []int  `json:"days_of_week,omitempty"`
		DayOfMonth int    `json:"day_of_month,omitempty"`
		EndType    string `json:"end_type,omitempty"`
		Count      int    `json:"count,omitempty"`
		UntilDate  string `json:"until_date,omitempty"`
	} `json:"rule"`
}

// Preview handles POST /api/events/preview: expands a rule into its instance
// dates without persisting anything, so hosts can sanity-check a schedule.
func (h *EventHandler) Preview(c *gin.Context) {
	var req previewEventReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if _, err := time.Parse(recurrence.DateLayout, req.StartDate); err != nil {
		writeError(c, http.StatusBadRequest, "invalid start_date, want YYYY-MM-DD")
		return
	}

	days := make([]time.Weekday, 0, len(req.Rule.DaysOfWeek))
	for _, d := range req.Rule.DaysOfWeek {
		if d < 0 || d > 6 {
			writeError(c, http.StatusBadRequest, "days_of_week entries must be 0 (Sunday) through 6 (Saturday)")
			return
		}
		days = append(days, time.Weekday(d))
	}

	dates := recurrence.GenerateInstanceDates(req.StartDate, recurrence.Rule{
		Frequency:  recurrence.Frequency(req.Rule.Frequency),
		DaysOfWeek: days,
		DayOfMonth: req.Rule.DayOfMonth,
		EndType:    recurrence.EndType(req.Rule.EndType),
		Count:      req.Rule.Count,
		UntilDate:  req.Rule.UntilDate,
	})
	writeJSON(c, http.StatusOK, map[string]any{"dates": dates})
}

// Get handles GET /api/events/:id.
func (h *EventHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid event id")
		return
	}
	e, err := h.event.Get(c.Request.Context(), types.ID(id))
	if err != nil {
		writeEventError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, e)
}

// ListByHost handles GET /api/hosts/:id/events.
func (h *EventHandler) ListByHost(c *gin.Context) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid host id")
		return
	}
	es, err := h.event.ListByHost(c.Request.Context(), types.ID(id))
	if err != nil {
		writeEventError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"events": es})
}
