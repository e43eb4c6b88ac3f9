// Package pg wires the PostgreSQL layer used by the entitlement system:
// pooled connectivity via pgx/v5, goose schema migrations, a pool-bound
// healthcheck, and SQLSTATE classification helpers.
//
// The duplicate-key helper is the load-bearing piece here: the trial
// ledger's once-per-user guarantee is enforced by a unique constraint,
// and IsDuplicateKeyError is how the application distinguishes a lost
// insert race from a real failure.
//
// # Usage
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	if err := pg.Migrate(ctx, pool, cfg, slog.Default()); err != nil {
//		return err
//	}
package pg
