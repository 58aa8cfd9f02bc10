// README: Provider contract for natural-language booking extraction.
package ai

import (
	"context"
)

// IntentParser defines the contract for turning a customer's free-text
// request into structured booking fields. The interface allows swapping
// providers (Gemini, OpenAI, etc.) without touching the quick-entry service.
type IntentParser interface {
	// ParseBookingIntent analyzes the customer's natural language input.
	// contextMap carries dynamic information like "current_time" and "region".
	ParseBookingIntent(ctx context.Context, message string, currentContext map[string]string) (*BookingIntent, error)
}
