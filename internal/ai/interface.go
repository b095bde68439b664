package ai

import (
	"context"
)

// Concierge defines the contract for interacting with AI models.
// This interface allows for swapping different AI providers (Gemini, OpenAI,
// etc.) in the future.
type Concierge interface {
	// ParseTourRequest analyzes the guest's natural language input and
	// extracts structured booking intent. contextMap contains dynamic
	// information like "current_time" and "customer_name".
	ParseTourRequest(ctx context.Context, guestMessage string, contextMap map[string]string) (*TourIntent, error)
}
