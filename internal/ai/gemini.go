// README: Gemini-backed intent parser for the quick-entry box.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiParser implements IntentParser using Google's Gemini models.
type GeminiParser struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiParser initializes a new Gemini client.
// apiKey should be provided from environment variables.
func NewGeminiParser(ctx context.Context, apiKey string) (*GeminiParser, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	// Gemini 2.0 Flash for low latency; the quick-entry box blocks the page.
	model := client.GenerativeModel("gemini-2.0-flash")

	// Force JSON response for structured parsing.
	model.ResponseMIMEType = "application/json"

	// Extraction, not generation: keep the temperature low.
	model.SetTemperature(0.2)

	return &GeminiParser{
		client: client,
		model:  model,
	}, nil
}

// Close cleans up the Gemini client resources.
func (p *GeminiParser) Close() {
	p.client.Close()
}

// ParseBookingIntent extracts structured booking fields from free text.
func (p *GeminiParser) ParseBookingIntent(ctx context.Context, message string, currentContext map[string]string) (*BookingIntent, error) {
	fullPrompt := fmt.Sprintf("%s\n\nCustomer Message: %s", buildSystemPrompt(currentContext), message)

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

	// JSON mode should prevent markdown fences, but strip them if present.
	cleanJSON := cleanJSONString(responseText.String())

	var result BookingIntent
	if err := json.Unmarshal([]byte(cleanJSON), &result); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w. Raw: %s", err, cleanJSON)
	}

	return &result, nil
}

// buildSystemPrompt constructs the extraction instructions.
func buildSystemPrompt(ctxMap map[string]string) string {
	currentTime := ctxMap["current_time"]
	region := ctxMap["region"]

	if currentTime == "" {
		currentTime = "UNKNOWN_TIME"
	}
	if region == "" {
		region = "Berlin/Brandenburg, Germany"
	}

	return fmt.Sprintf(`Role: You are the booking-intake parser for a chauffeur transfer service.
Context:
- Current Local Time: %s
- Service Region: %s

Extract the reservation the customer describes into JSON with exactly these
fields: intent, service_type, pickup, dropoff, pickup_iso, return_iso,
passengers, luggage, hourly_hours, note.

Rules:
- "intent" is "booking" when at least a pickup location is clear, otherwise "incomplete".
- "service_type" is "distance" for A-to-B transfers (airport runs included) and "hourly" when the customer wants a car and driver for a number of hours.
- "pickup" and "dropoff" are the location phrases verbatim; do not invent addresses.
- "pickup_iso" and "return_iso" are absolute local times, format YYYY-MM-DDTHH:mm, computed from relative phrases using the current local time. Omit when the customer gave no time.
- "passengers" and "luggage" are integers; omit when not mentioned.
- "hourly_hours" only for hourly requests.
- Anything that does not fit (child seats, a waiting sign, a flight number) goes into "note".
- Output raw JSON only.`, currentTime, region)
}

// cleanJSONString strips markdown code fences a model sometimes wraps
// around its output.
func cleanJSONString(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
