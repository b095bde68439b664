package maps

import (
	"context"
	"fmt"
	"math"

	"googlemaps.github.io/maps"
)

// TravelTimeService handles interactions with the Google Maps Directions API.
// It is the external distance collaborator the itinerary scheduler consumes:
// fallible, no built-in retry, no caching of its own.
type TravelTimeService struct {
	client *maps.Client
}

// NewTravelTimeService creates a TravelTimeService with the given API key.
func NewTravelTimeService(apiKey string) (*TravelTimeService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &TravelTimeService{client: client}, nil
}

// DriveTimeMinutes returns the driving time in whole minutes from origin to
// destination, rounded to the nearest minute.
func (s *TravelTimeService) DriveTimeMinutes(ctx context.Context, origin, destination string) (int, error) {
	r := &maps.DirectionsRequest{
		Origin:      origin,
		Destination: destination,
		Mode:        maps.TravelModeDriving,
		Language:    "en",
		Region:      "US",
	}

	routes, _, err := s.client.Directions(ctx, r)
	if err != nil {
		return 0, fmt.Errorf("maps api error: %w", err)
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return 0, fmt.Errorf("no route found from %q to %q", origin, destination)
	}

	leg := routes[0].Legs[0]
	return int(math.Round(leg.Duration.Minutes())), nil
}
