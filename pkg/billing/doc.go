// Package billing integrates the external payment provider at the
// contract level the entitlement system needs: verifying which paid
// tier is in force, opening hosted checkout sessions, and normalizing
// provider webhooks.
//
// Verification is a single request/response call (Verifier); every
// failure mode is an error the plan resolver degrades to the free tier,
// never an exception that reaches rendering code. Checkout and webhooks
// are implemented against Paddle's hosted surfaces, keeping card data
// and PCI concerns entirely on the provider's side.
package billing
