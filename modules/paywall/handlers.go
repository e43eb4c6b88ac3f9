package paywall

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/allstories/studiokit/pkg/billing"
	"github.com/allstories/studiokit/pkg/entitlement"
	"github.com/allstories/studiokit/pkg/plan"
	"github.com/allstories/studiokit/pkg/trial"
)

type trialResponse struct {
	StartsAt      time.Time `json:"starts_at"`
	EndsAt        time.Time `json:"ends_at"`
	Active        bool      `json:"active"`
	DaysRemaining int       `json:"days_remaining"`
}

func newTrialResponse(t *trial.Trial) *trialResponse {
	return &trialResponse{
		StartsAt:      t.StartsAt,
		EndsAt:        t.EndsAt,
		Active:        t.Active,
		DaysRemaining: t.DaysRemaining(),
	}
}

type planResponse struct {
	Plan  plan.Tier      `json:"plan"`
	Trial *trialResponse `json:"trial"`
}

// plan reports the session's resolved tier and trial record. Anonymous
// sessions get the free tier and a null trial; gate failures degrade
// the same way instead of erroring the page.
func (s *Service) plan(w http.ResponseWriter, r *http.Request) {
	sess, _ := entitlement.GetSessionFromContext(r.Context())

	resp := planResponse{Plan: s.resolver.EffectiveTier(r.Context(), sess)}

	if sess.Authenticated() {
		t, err := s.ledger.Get(r.Context(), sess.UserID)
		switch {
		case err == nil:
			resp.Trial = newTrialResponse(t)
		case !errors.Is(err, trial.ErrTrialNotFound):
			s.log.WarnContext(r.Context(), "trial lookup failed",
				"user_id", sess.UserID, "error", err)
		}
	}

	respondJSON(w, http.StatusOK, resp)
}

type accessResponse struct {
	Allowed      bool       `json:"allowed"`
	RequiredPlan *plan.Tier `json:"required_plan"`
}

// access answers a single feature check for the session. The response
// carries the minimal upgrade tier when access is denied and some tier
// would grant it.
func (s *Service) access(w http.ResponseWriter, r *http.Request) {
	key, err := plan.ParseFeatureKey(r.URL.Query().Get("feature"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "unknown feature")
		return
	}

	sess, _ := entitlement.GetSessionFromContext(r.Context())

	resp := accessResponse{Allowed: s.gate.CheckFeatureAccess(r.Context(), sess, key)}
	if !resp.Allowed {
		if required, ok := s.gate.RequiredTier(key); ok {
			resp.RequiredPlan = &required
		}
	}

	respondJSON(w, http.StatusOK, resp)
}

// startTrial activates the session's one-time trial. Idempotent:
// repeat calls return the original record.
func (s *Service) startTrial(w http.ResponseWriter, r *http.Request) {
	sess, _ := entitlement.GetSessionFromContext(r.Context())
	if !sess.Authenticated() {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	t, err := s.ledger.Ensure(r.Context(), sess.UserID)
	if err != nil {
		s.log.ErrorContext(r.Context(), "trial activation failed",
			"user_id", sess.UserID, "error", err)
		respondError(w, http.StatusServiceUnavailable, "trial activation failed")
		return
	}

	respondJSON(w, http.StatusAccepted, newTrialResponse(t))
}

type checkoutRequest struct {
	PriceID    string `json:"price_id"`
	SuccessURL string `json:"success_url"`
	CancelURL  string `json:"cancel_url"`
}

type checkoutResponse struct {
	URL string `json:"url"`
}

func (s *Service) createCheckout(w http.ResponseWriter, r *http.Request) {
	sess, _ := entitlement.GetSessionFromContext(r.Context())
	if !sess.Authenticated() {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if req.PriceID == "" {
		respondError(w, http.StatusBadRequest, "price_id is required")
		return
	}

	link, err := s.checkout.CreateCheckoutLink(r.Context(), billing.CheckoutRequest{
		PriceID:    req.PriceID,
		CustomerID: sess.UserID.String(),
		Email:      sess.Email,
		SuccessURL: req.SuccessURL,
		CancelURL:  req.CancelURL,
	})
	if err != nil {
		s.log.ErrorContext(r.Context(), "checkout link creation failed",
			"user_id", sess.UserID, "price_id", req.PriceID, "error", err)
		respondError(w, http.StatusBadGateway, "checkout unavailable")
		return
	}

	respondJSON(w, http.StatusOK, checkoutResponse{URL: link.URL})
}

// webhook ingests a billing provider event. Subscription changes drop
// the customer's cached tier so the next resolution reflects the new
// plan.
func (s *Service) webhook(w http.ResponseWriter, r *http.Request) {
	event, err := s.webhooks.ParseWebhookRequest(r)
	if err != nil {
		s.log.WarnContext(r.Context(), "webhook rejected", "error", err)
		respondError(w, http.StatusBadRequest, "invalid webhook")
		return
	}

	if event.CustomerID != "" {
		if userID, err := uuid.Parse(event.CustomerID); err == nil {
			s.resolver.InvalidateUser(r.Context(), userID)
		} else {
			s.log.WarnContext(r.Context(), "webhook customer_id is not a user id",
				"customer_id", event.CustomerID, "event", event.ProviderEvent)
		}
	}

	s.log.InfoContext(r.Context(), "billing webhook processed",
		"event", event.ProviderEvent, "type", event.Type, "customer_id", event.CustomerID)

	respondJSON(w, http.StatusOK, map[string]bool{"received": true})
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}
