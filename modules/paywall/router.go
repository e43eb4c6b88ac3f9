package paywall

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handle returns the module's HTTP handler, ready to mount:
//
//	r := chi.NewRouter()
//	r.Mount("/paywall", svc.Handle())
//
// Checkout and webhook routes are registered only when the
// corresponding provider was configured.
func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()

	r.Get("/plan", s.plan)
	r.Get("/access", s.access)
	r.Post("/trial", s.startTrial)
	if s.checkout != nil {
		r.Post("/checkout", s.createCheckout)
	}
	if s.webhooks != nil {
		r.Post("/webhook", s.webhook)
	}

	return r
}
