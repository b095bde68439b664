package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiProvider implements Concierge using Google's Gemini models.
type GeminiProvider struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiProvider initializes a new Gemini client.
// apiKey should be provided from environment variables.
func NewGeminiProvider(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	// Gemini 2.0 Flash for low latency and cost efficiency.
	model := client.GenerativeModel("gemini-2.0-flash")

	// Force JSON response for structured parsing.
	model.ResponseMIMEType = "application/json"
	model.SetTemperature(0.4)

	return &GeminiProvider{
		client: client,
		model:  model,
	}, nil
}

// Close cleans up the Gemini client resources.
func (p *GeminiProvider) Close() {
	p.client.Close()
}

// ParseTourRequest analyzes guest input to extract tour-booking intent.
func (p *GeminiProvider) ParseTourRequest(ctx context.Context, guestMessage string, contextMap map[string]string) (*TourIntent, error) {
	systemPrompt := buildSystemPrompt(contextMap)
	fullPrompt := fmt.Sprintf("%s\n\nGuest Message: %s", systemPrompt, guestMessage)

	resp, err := p.model.GenerateContent(ctx, genai.Text(fullPrompt))
	if err != nil {
		return nil, fmt.Errorf("gemini generation error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no response candidates from Gemini")
	}

	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			responseText.WriteString(string(txt))
		}
	}

	// Strip potential markdown fences; JSON mode should prevent them, but
	// cheap to guard.
	cleanJSON := cleanJSONString(responseText.String())

	var result TourIntent
	if err := json.Unmarshal([]byte(cleanJSON), &result); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w. Raw: %s", err, cleanJSON)
	}
	return &result, nil
}

// buildSystemPrompt constructs the instructions for the AI.
func buildSystemPrompt(ctxMap map[string]string) string {
	currentTime := ctxMap["current_time"]
	customerName := ctxMap["customer_name"]

	if currentTime == "" {
		currentTime = "UNKNOWN_TIME"
	}
	if customerName == "" {
		customerName = "Guest"
	}

	return fmt.Sprintf(`Role: You are the concierge for "Vintrail", a wine-country tour company.
Context:
- Current System Time: %s
- Guest Name: %s

Decide the guest's intent:
- "quote": the guest wants a price. Requires a service_type, a concrete
  tour_date (resolve relative dates like "next Saturday" against the current
  time, format YYYY-MM-DD), and a party_size. For wine tours also extract
  duration_hours when stated. For shared tours extract include_lunch.
- "winery_search": the guest wants winery recommendations. Extract region and
  any search_keywords / exclude_keywords.
- "chat": anything else. Answer warmly and briefly.

Never invent a party size or date the guest did not state or imply; leave the
field null and ask for it in the reply instead.

Respond with a single JSON object matching this shape:
{"intent": "...", "service_type": null, "tour_date": null, "party_size": null,
 "duration_hours": null, "include_lunch": null, "region": null,
 "search_keywords": null, "exclude_keywords": [], "guest_note": "", "reply": "..."}`,
		currentTime, customerName)
}

// cleanJSONString removes markdown code fences if present.
func cleanJSONString(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
