package ai

// TourIntent captures the structured output from the AI model for a guest's
// free-text message to the concierge widget.
type TourIntent struct {
	// Intent describes the guest's primary goal:
	// "quote", "winery_search", or "chat".
	Intent string `json:"intent"`

	// ServiceType is the service family to quote: "wine_tour",
	// "shared_tour", or "transfer". Nullable because not all intents
	// involve a quote.
	ServiceType *string `json:"service_type,omitempty"`

	// TourDate is the requested calendar date (YYYY-MM-DD) resolved from the
	// guest's relative phrasing and the current-time context.
	TourDate *string `json:"tour_date,omitempty"`

	PartySize     *int     `json:"party_size,omitempty"`
	DurationHours *float64 `json:"duration_hours,omitempty"`
	IncludeLunch  *bool    `json:"include_lunch,omitempty"`

	// Region is the wine-country area the guest mentioned, for winery search.
	Region *string `json:"region,omitempty"`

	// SearchKeywords refine a winery search (e.g. "sparkling", "pet friendly").
	SearchKeywords *string `json:"search_keywords,omitempty"`

	// ExcludeKeywords disqualify search results by name.
	ExcludeKeywords []string `json:"exclude_keywords,omitempty"`

	// GuestNote contains any extra context or requests from the guest.
	GuestNote string `json:"guest_note,omitempty"`

	// Reply is a short, warm response to the guest in the voice of a
	// wine-country tour concierge.
	Reply string `json:"reply"`
}
