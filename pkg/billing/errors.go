package billing

import "errors"

var (
	ErrLookupFailed      = errors.New("billing subscription lookup failed")
	ErrMalformedResponse = errors.New("malformed billing verification response")

	ErrMissingAPIKey        = errors.New("billing provider API key is required")
	ErrMissingWebhookSecret = errors.New("billing provider webhook secret is required")
	ErrInvalidEnvironment   = errors.New("invalid billing provider environment")
	ErrMissingPriceID       = errors.New("price ID is required")
	ErrMissingCustomerID    = errors.New("customer ID is required")
	ErrNoCheckoutURL        = errors.New("no checkout URL returned from provider")
	ErrWebhookVerification  = errors.New("webhook signature verification failed")
)
