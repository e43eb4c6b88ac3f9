package billing

import (
	"time"

	"github.com/allstories/studiokit/pkg/plan"
)

// VerifiedPlan is the outcome of a server-side subscription check: the
// tier the billing provider says is in force, plus the identifiers
// needed to correlate with webhooks and checkout flows.
type VerifiedPlan struct {
	Tier           plan.Tier
	PriceID        string
	SubscriptionID string
}

// CheckoutRequest contains the data needed to open a hosted checkout session.
type CheckoutRequest struct {
	PriceID    string // provider's price identifier
	CustomerID string // internal user ID, round-tripped via custom data
	Email      string // optional billing email
	SuccessURL string // redirect after successful payment
	CancelURL  string // redirect if the customer backs out
}

// CheckoutLink represents a hosted checkout session.
type CheckoutLink struct {
	URL       string
	SessionID string
	ExpiresAt time.Time
}

// EventType is the normalized billing event type. Provider
// implementations map their specific event names onto these.
type EventType string

const (
	EventSubscriptionCreated   EventType = "subscription_created"
	EventSubscriptionUpdated   EventType = "subscription_updated"
	EventSubscriptionCancelled EventType = "subscription_cancelled"
	EventSubscriptionResumed   EventType = "subscription_resumed"

	EventPaymentSucceeded EventType = "payment_succeeded"
	EventPaymentFailed    EventType = "payment_failed"
)

// WebhookEvent is a normalized webhook from the billing provider. The
// paywall module uses it to invalidate cached plan resolutions for the
// affected user; Tier is resolved through the price table when the
// price ID is known.
type WebhookEvent struct {
	Type          EventType
	ProviderEvent string // original provider event name
	CustomerID    string // internal user ID from custom data
	PriceID       string
	Tier          plan.Tier
	Status        string
	Raw           map[string]any
}
