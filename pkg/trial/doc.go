// Package trial implements the once-per-user free trial ledger.
//
// A trial is a 5-day grant created the first time a user needs one and
// never deleted afterwards. Ensure is the only creation path and is
// idempotent: repeated calls return the original record, and a create
// race between concurrent sessions is settled by the storage layer's
// uniqueness constraint, with the loser re-reading the winner's row.
//
// Whether an expired trial still counts as active is an explicit policy
// switch (WithExpiryEnforcement), off by default to match the product's
// historical behavior of treating trials as always active once created.
//
// Stores are provided for PostgreSQL (pgx), MongoDB, and memory (tests).
//
// # Usage
//
//	ledger := trial.NewLedger(trial.NewPostgresStore(pool),
//		trial.WithExpiryEnforcement(true))
//
//	t, err := ledger.Ensure(ctx, userID)
//	if err != nil {
//		// storage failure: retryable, surface a notification
//	}
package trial
