package maps

import (
	"context"
	"fmt"
	"strings"

	"googlemaps.github.io/maps"
)

// Winery represents a simplified place result for the concierge.
type Winery struct {
	Name             string
	Address          string
	Rating           float32
	PlaceID          string
	UserRatingsTotal int
}

// SearchOptions holds refinement parameters, typically produced by the AI
// concierge from the guest's message.
type SearchOptions struct {
	// SearchKeywords are positive refinements appended to the query
	// (e.g. "sparkling", "cave tour").
	SearchKeywords string
	// ExcludeKeywords disqualify any result whose name contains them.
	ExcludeKeywords []string
}

// WinerySearchService handles interactions with the Google Places API.
type WinerySearchService struct {
	client *maps.Client
}

// NewWinerySearchService creates a WinerySearchService with the given API key.
func NewWinerySearchService(apiKey string) (*WinerySearchService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &WinerySearchService{client: client}, nil
}

// SearchWineries searches for tasting rooms matching the query near the given
// area. opts can be nil for a basic search. Results below a 4.0 rating are
// dropped, name exclusions applied, and the list capped at five.
func (s *WinerySearchService) SearchWineries(ctx context.Context, area, query string, opts *SearchOptions) ([]Winery, error) {
	fullQuery := strings.TrimSpace(query + " winery tasting room")
	if opts != nil && opts.SearchKeywords != "" {
		fullQuery = opts.SearchKeywords + " " + fullQuery
	}
	if area != "" {
		fullQuery = fmt.Sprintf("%s near %s", fullQuery, area)
	}

	r := &maps.TextSearchRequest{
		Query:    fullQuery,
		Language: "en",
		Region:   "US",
	}

	resp, err := s.client.TextSearch(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("places api error: %w", err)
	}

	// Base exclusions: liquor retail and grocery chains masquerade as
	// wineries in text search results.
	excluded := []string{"Liquor", "Supermarket", "Grocery", "Market", "Total Wine", "BevMo", "Costco", "Safeway", "Trader Joe"}
	if opts != nil && len(opts.ExcludeKeywords) > 0 {
		excluded = append(excluded, opts.ExcludeKeywords...)
	}

	var results []Winery
	for _, result := range resp.Results {
		if result.Rating < 4.0 {
			continue
		}
		skip := false
		for _, kw := range excluded {
			if kw != "" && strings.Contains(result.Name, kw) {
				skip = true
				break
			}
		}
		if skip {
			continue
		}

		results = append(results, Winery{
			Name:             result.Name,
			Address:          result.FormattedAddress,
			Rating:           result.Rating,
			PlaceID:          result.PlaceID,
			UserRatingsTotal: result.UserRatingsTotal,
		})
		if len(results) >= 5 {
			break
		}
	}

	return results, nil
}
