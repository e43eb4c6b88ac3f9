package paywall

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/allstories/studiokit/pkg/billing"
	"github.com/allstories/studiokit/pkg/entitlement"
	"github.com/allstories/studiokit/pkg/trial"
)

// CheckoutProvider opens hosted checkout sessions. Satisfied by
// billing.PaddleProvider.
type CheckoutProvider interface {
	CreateCheckoutLink(ctx context.Context, req billing.CheckoutRequest) (*billing.CheckoutLink, error)
}

// WebhookParser verifies and normalizes provider webhook requests.
// Satisfied by billing.PaddleProvider.
type WebhookParser interface {
	ParseWebhookRequest(req *http.Request) (*billing.WebhookEvent, error)
}

// Service exposes the subscription state of the current session over
// HTTP: the resolved plan, per-feature access checks, trial activation,
// checkout links and billing webhooks.
type Service struct {
	gate     *entitlement.Gate
	resolver *entitlement.Resolver
	ledger   *trial.Ledger
	checkout CheckoutProvider
	webhooks WebhookParser
	log      *slog.Logger
}

// ServiceOption configures optional Service collaborators.
type ServiceOption func(*Service)

// WithCheckout enables the POST /checkout endpoint.
func WithCheckout(p CheckoutProvider) ServiceOption {
	return func(s *Service) {
		s.checkout = p
	}
}

// WithWebhooks enables the POST /webhook endpoint.
func WithWebhooks(p WebhookParser) ServiceOption {
	return func(s *Service) {
		s.webhooks = p
	}
}

// WithServiceLogger sets the logger used for degraded-path warnings.
func WithServiceLogger(log *slog.Logger) ServiceOption {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// NewService creates a paywall Service. Panics on nil required
// collaborators to fail fast during initialization.
func NewService(gate *entitlement.Gate, resolver *entitlement.Resolver, ledger *trial.Ledger, opts ...ServiceOption) *Service {
	if gate == nil {
		panic("paywall: Gate is required")
	}
	if resolver == nil {
		panic("paywall: Resolver is required")
	}
	if ledger == nil {
		panic("paywall: trial Ledger is required")
	}

	s := &Service{
		gate:     gate,
		resolver: resolver,
		ledger:   ledger,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
