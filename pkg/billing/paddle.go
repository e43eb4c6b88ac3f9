package billing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	paddle "github.com/PaddleHQ/paddle-go-sdk/v4"

	"github.com/allstories/studiokit/pkg/plan"
)

// PaddleConfig holds Paddle billing provider configuration.
type PaddleConfig struct {
	APIKey        string `env:"PADDLE_API_KEY,required"`
	WebhookSecret string `env:"PADDLE_WEBHOOK_SECRET,required"`
	Environment   string `env:"PADDLE_ENVIRONMENT" envDefault:"production"`
}

// PaddleProvider creates hosted checkout sessions and parses Paddle
// webhooks. Verification of the current plan goes through Verifier, not
// this type: Paddle pushes state changes via webhooks, and the paywall
// uses those to invalidate cached resolutions.
type PaddleProvider struct {
	client   *paddle.SDK
	verifier *paddle.WebhookVerifier
	prices   plan.PriceTable
}

// NewPaddleProvider builds the provider for the configured environment.
func NewPaddleProvider(cfg PaddleConfig, prices plan.PriceTable) (*PaddleProvider, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.WebhookSecret == "" {
		return nil, ErrMissingWebhookSecret
	}

	var client *paddle.SDK
	var err error

	switch strings.ToLower(cfg.Environment) {
	case "sandbox":
		client, err = paddle.NewSandbox(cfg.APIKey)
	case "production", "":
		client, err = paddle.New(cfg.APIKey)
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidEnvironment, cfg.Environment)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create paddle client: %w", err)
	}

	return &PaddleProvider{
		client:   client,
		verifier: paddle.NewWebhookVerifier(cfg.WebhookSecret),
		prices:   prices,
	}, nil
}

// CreateCheckoutLink opens a hosted checkout transaction for the price.
// The internal user ID travels in custom data so webhooks can be
// correlated back to the user.
func (p *PaddleProvider) CreateCheckoutLink(ctx context.Context, req CheckoutRequest) (*CheckoutLink, error) {
	if req.PriceID == "" {
		return nil, ErrMissingPriceID
	}
	if req.CustomerID == "" {
		return nil, ErrMissingCustomerID
	}

	item := paddle.NewCreateTransactionItemsTransactionItemFromCatalog(&paddle.TransactionItemFromCatalog{
		PriceID:  req.PriceID,
		Quantity: 1,
	})

	transactionReq := &paddle.CreateTransactionRequest{
		Items: []paddle.CreateTransactionItems{*item},
		CustomData: paddle.CustomData{
			"customer_id": req.CustomerID,
		},
	}

	if req.Email != "" {
		transactionReq.CustomData["email"] = req.Email
	}

	if req.SuccessURL != "" {
		transactionReq.Checkout = &paddle.TransactionCheckout{
			URL: paddle.PtrTo(req.SuccessURL),
		}
	}

	transaction, err := p.client.TransactionsClient.CreateTransaction(ctx, transactionReq)
	if err != nil {
		return nil, fmt.Errorf("failed to create paddle transaction: %w", err)
	}

	if transaction.Checkout == nil || transaction.Checkout.URL == nil {
		return nil, ErrNoCheckoutURL
	}

	return &CheckoutLink{
		URL:       *transaction.Checkout.URL,
		SessionID: transaction.ID,
		// Paddle checkout links typically expire in 24 hours.
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}, nil
}

// ParseWebhook validates the signature and normalizes the payload.
func (p *PaddleProvider) ParseWebhook(ctx context.Context, payload []byte, signature string) (*WebhookEvent, error) {
	// The SDK verifier works on *http.Request, so wrap the raw payload.
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "/webhook", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request for verification: %w", err)
	}
	req.Header.Set("Paddle-Signature", signature)

	valid, err := p.verifier.Verify(req)
	if err != nil {
		return nil, errors.Join(ErrWebhookVerification, err)
	}
	if !valid {
		return nil, ErrWebhookVerification
	}

	var paddleEvent struct {
		EventID   string         `json:"event_id"`
		EventType string         `json:"event_type"`
		Data      map[string]any `json:"data"`
	}
	if err := json.Unmarshal(payload, &paddleEvent); err != nil {
		return nil, fmt.Errorf("failed to parse webhook payload: %w", err)
	}

	event := &WebhookEvent{
		Type:          mapPaddleEventType(paddleEvent.EventType),
		ProviderEvent: paddleEvent.EventType,
		Raw:           paddleEvent.Data,
	}

	if status, ok := paddleEvent.Data["status"].(string); ok {
		event.Status = status
	}
	if customData, ok := paddleEvent.Data["custom_data"].(map[string]any); ok {
		if customerID, ok := customData["customer_id"].(string); ok {
			event.CustomerID = customerID
		}
	}

	// Subscription events nest the price under items[].price.id;
	// transaction events carry items[].price_id directly.
	if items, ok := paddleEvent.Data["items"].([]any); ok && len(items) > 0 {
		if item, ok := items[0].(map[string]any); ok {
			if priceID, ok := item["price_id"].(string); ok {
				event.PriceID = priceID
			} else if price, ok := item["price"].(map[string]any); ok {
				if priceID, ok := price["id"].(string); ok {
					event.PriceID = priceID
				}
			}
		}
	}

	if event.PriceID != "" {
		if tier, ok := p.prices.TierForPrice(event.PriceID); ok {
			event.Tier = tier
		}
	}

	return event, nil
}

// ParseWebhookRequest accepts the raw HTTP request from the webhook route.
func (p *PaddleProvider) ParseWebhookRequest(req *http.Request) (*WebhookEvent, error) {
	body, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	req.Body = io.NopCloser(bytes.NewReader(body))

	return p.ParseWebhook(req.Context(), body, req.Header.Get("Paddle-Signature"))
}

func mapPaddleEventType(paddleEvent string) EventType {
	switch paddleEvent {
	case "transaction.completed", "subscription.created":
		return EventSubscriptionCreated
	case "subscription.updated":
		return EventSubscriptionUpdated
	case "subscription.canceled":
		return EventSubscriptionCancelled
	case "subscription.resumed":
		return EventSubscriptionResumed
	case "transaction.payment_succeeded":
		return EventPaymentSucceeded
	case "transaction.payment_failed":
		return EventPaymentFailed
	default:
		return EventType(paddleEvent)
	}
}
