// Package paywall exposes subscription state over HTTP for the studio
// UI: the session's resolved plan and trial, per-feature access checks
// with upgrade hints, trial activation, hosted checkout links and the
// billing provider's webhook endpoint.
//
// The module reads the authenticated session from the request context
// (entitlement.SetSessionToContext); host applications mount it behind
// their own authentication middleware:
//
//	svc := paywall.NewService(gate, resolver, ledger,
//		paywall.WithCheckout(paddle),
//		paywall.WithWebhooks(paddle),
//	)
//	r.Mount("/paywall", svc.Handle())
package paywall
