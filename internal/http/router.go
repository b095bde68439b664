// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vintrail/internal/http/handlers"
	"vintrail/internal/http/middleware"
)

type RouterDeps struct {
	Quote     *handlers.QuoteHandler
	Booking   *handlers.BookingHandler
	Itinerary *handlers.ItineraryHandler
	Event     *handlers.EventHandler
	// Concierge is nil when no AI key is configured; its routes are skipped.
	Concierge *handlers.ConciergeHandler
}

func NewRouter(deps RouterDeps) http.Handler {
	r := gin.New()
	r.Use(middleware.Logging(), middleware.Recovery(), middleware.Auth())

	r.POST("/api/quotes/wine-tour", deps.Quote.WineTour)
	r.POST("/api/quotes/shared-tour", deps.Quote.SharedTour)
	r.POST("/api/quotes/transfer", deps.Quote.Transfer)
	r.POST("/api/quotes/wait-time", deps.Quote.WaitTime)

	r.POST("/api/bookings", deps.Booking.Create)
	r.GET("/api/bookings/:id", deps.Booking.Get)
	r.POST("/api/bookings/:id/confirm", deps.Booking.Confirm)
	r.POST("/api/bookings/:id/start", deps.Booking.Start)
	r.POST("/api/bookings/:id/complete", deps.Booking.Complete)
	r.POST("/api/bookings/:id/cancel", deps.Booking.Cancel)
	r.GET("/api/customers/:id/bookings", deps.Booking.ListByCustomer)

	r.POST("/api/itineraries", deps.Itinerary.Create)
	r.GET("/api/itineraries/:id", deps.Itinerary.Get)
	r.POST("/api/itineraries/:id/stops", deps.Itinerary.AddStop)
	r.POST("/api/itineraries/:id/stops/remove", deps.Itinerary.RemoveStop)
	r.POST("/api/itineraries/:id/stops/reorder", deps.Itinerary.ReorderStop)
	r.POST("/api/itineraries/:id/stops/duration", deps.Itinerary.UpdateStopDuration)
	r.POST("/api/itineraries/:id/refresh-drive-times", deps.Itinerary.RefreshDriveTimes)
	r.POST("/api/itineraries/:id/recompute", deps.Itinerary.RecomputeTimes)

	r.POST("/api/events", deps.Event.Create)
	r.POST("/api/events/preview", deps.Event.Preview)
	r.GET("/api/events/:id", deps.Event.Get)
	r.GET("/api/hosts/:id/events", deps.Event.ListByHost)

	if deps.Concierge != nil {
		r.POST("/api/concierge/chat", deps.Concierge.Chat)
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
