// README: Entry point; loads config, wires services, starts HTTP server and background schedulers.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"vintrail/internal/ai"
	"vintrail/internal/config"
	httptransport "vintrail/internal/http"
	"vintrail/internal/http/handlers"
	"vintrail/internal/infra"
	"vintrail/internal/maps"
	"vintrail/internal/modules/booking"
	"vintrail/internal/modules/event"
	"vintrail/internal/modules/itinerary"
	"vintrail/internal/modules/pricing"
	"vintrail/internal/rates"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	table := rates.Default()
	if err := table.Validate(); err != nil {
		log.Fatalf("rate table: %v", err)
	}

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal(err)
	}

	redisClient := infra.NewRedis(cfg.Redis.Addr)

	travelTimes, err := maps.NewTravelTimeService(cfg.Maps.APIKey)
	if err != nil {
		log.Fatalf("maps init: %v", err)
	}
	cachedTravel := maps.NewCachedTravelTimes(travelTimes, redisClient, cfg.Maps.DriveCacheTTL)

	winerySearch, err := maps.NewWinerySearchService(cfg.Maps.APIKey)
	if err != nil {
		log.Fatalf("maps init: %v", err)
	}

	pricingStore := pricing.NewStore(dbPool)
	pricingSvc := pricing.NewService(table, pricingStore)

	bookingStore := booking.NewStore(dbPool)
	bookingSvc := booking.NewService(bookingStore, pricingSvc)

	itineraryStore := itinerary.NewStore(dbPool)
	itinerarySvc := itinerary.NewService(itineraryStore, cachedTravel)

	eventStore := event.NewStore(dbPool)
	eventSvc := event.NewService(eventStore)

	deps := httptransport.RouterDeps{
		Quote:     handlers.NewQuoteHandler(pricingSvc),
		Booking:   handlers.NewBookingHandler(bookingSvc),
		Itinerary: handlers.NewItineraryHandler(itinerarySvc),
		Event:     handlers.NewEventHandler(eventSvc),
	}

	if cfg.AI.GeminiKey != "" {
		concierge, err := ai.NewGeminiProvider(ctx, cfg.AI.GeminiKey)
		if err != nil {
			log.Fatalf("gemini init: %v", err)
		}
		defer concierge.Close()
		deps.Concierge = handlers.NewConciergeHandler(concierge, winerySearch, pricingSvc)
	} else {
		log.Println("GEMINI_API_KEY not set; concierge endpoint disabled")
	}

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: httptransport.NewRouter(deps)}

	go bookingSvc.RunQuoteExpiry(ctx, cfg.Booking.QuoteExpiryCheck, cfg.Booking.QuoteMaxAge)

	go func() {
		<-ctx.Done()
		_ = server.Close()
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
