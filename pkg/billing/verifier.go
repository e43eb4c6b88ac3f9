package billing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/allstories/studiokit/pkg/plan"
)

// Verifier answers "what paid tier is actually in force for this user"
// with a single server-side request to the billing backend. Returning
// an error never blocks the caller: the plan resolver degrades every
// failure to the free tier.
type Verifier interface {
	Verify(ctx context.Context, credential string) (VerifiedPlan, error)
}

// HTTPVerifierConfig configures the HTTP billing verification client.
type HTTPVerifierConfig struct {
	Endpoint string `env:"BILLING_VERIFY_URL,required"`
}

// HTTPVerifier calls the billing verification endpoint with the user's
// credential and decodes the `{plan, price_id, error}` response. When
// the response carries only a price ID, the tier is resolved through
// the price table.
type HTTPVerifier struct {
	endpoint string
	prices   plan.PriceTable
	client   *http.Client
}

// NewHTTPVerifier creates a Verifier against the configured endpoint.
// The optional client allows transport customization; nil uses
// http.DefaultClient. Timeouts come from the caller's context.
func NewHTTPVerifier(cfg HTTPVerifierConfig, prices plan.PriceTable, client *http.Client) *HTTPVerifier {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPVerifier{endpoint: cfg.Endpoint, prices: prices, client: client}
}

type verifyResponse struct {
	Plan    string `json:"plan"`
	PriceID string `json:"price_id"`
	Error   string `json:"error"`
}

// Verify performs the billing lookup. Any transport, auth, or parse
// failure comes back as ErrLookupFailed; unknown plans and price IDs as
// ErrMalformedResponse. Callers map both to the free tier.
func (v *HTTPVerifier) Verify(ctx context.Context, credential string) (VerifiedPlan, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.endpoint, bytes.NewReader([]byte("{}")))
	if err != nil {
		return VerifiedPlan{}, errors.Join(ErrLookupFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+credential)

	resp, err := v.client.Do(req)
	if err != nil {
		return VerifiedPlan{}, errors.Join(ErrLookupFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return VerifiedPlan{}, fmt.Errorf("%w: status %d", ErrLookupFailed, resp.StatusCode)
	}

	var body verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return VerifiedPlan{}, errors.Join(ErrMalformedResponse, err)
	}
	if body.Error != "" {
		return VerifiedPlan{}, fmt.Errorf("%w: %s", ErrLookupFailed, body.Error)
	}

	if body.Plan != "" {
		tier, err := plan.ParseTier(body.Plan)
		if err != nil {
			return VerifiedPlan{}, errors.Join(ErrMalformedResponse, err)
		}
		return VerifiedPlan{Tier: tier, PriceID: body.PriceID}, nil
	}

	if body.PriceID != "" {
		tier, ok := v.prices.TierForPrice(body.PriceID)
		if !ok {
			return VerifiedPlan{}, fmt.Errorf("%w: %s", plan.ErrUnknownPriceID, body.PriceID)
		}
		return VerifiedPlan{Tier: tier, PriceID: body.PriceID}, nil
	}

	// No plan and no price: an unsubscribed user.
	return VerifiedPlan{Tier: plan.TierFree}, nil
}
