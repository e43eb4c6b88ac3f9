// Command paywalld serves the paywall HTTP API: plan resolution,
// feature access checks, trial activation, checkout links and billing
// webhooks. Storage and cache backends are selected through the
// environment, so a single binary covers local development (in-memory)
// and production (Postgres or Mongo plus Redis).
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/allstories/studiokit/modules/paywall"
	"github.com/allstories/studiokit/pkg/billing"
	"github.com/allstories/studiokit/pkg/config"
	"github.com/allstories/studiokit/pkg/email"
	"github.com/allstories/studiokit/pkg/entitlement"
	"github.com/allstories/studiokit/pkg/httpserver"
	"github.com/allstories/studiokit/pkg/logger"
	"github.com/allstories/studiokit/pkg/mongo"
	"github.com/allstories/studiokit/pkg/pg"
	"github.com/allstories/studiokit/pkg/plan"
	"github.com/allstories/studiokit/pkg/redis"
	"github.com/allstories/studiokit/pkg/trial"
)

type appConfig struct {
	Env         string `env:"APP_ENV" envDefault:"development"`
	CatalogPath string `env:"CATALOG_PATH"`

	TrialStore        string        `env:"TRIAL_STORE" envDefault:"memory"` // memory, postgres, mongo
	EnforceTrialEnd   bool          `env:"TRIAL_ENFORCE_EXPIRY" envDefault:"false"`
	TierCacheBackend  string        `env:"TIER_CACHE" envDefault:"memory"` // memory, redis
	TierCacheTTL      time.Duration `env:"TIER_CACHE_TTL" envDefault:"15m"`
	TierCacheCapacity int           `env:"TIER_CACHE_CAPACITY" envDefault:"1024"`

	EmailDriver string `env:"EMAIL_DRIVER"` // postmark, dev, empty disables
	EmailDevDir string `env:"EMAIL_DEV_DIR" envDefault:"./tmp/emails"`

	PaddleEnabled bool `env:"PADDLE_ENABLED" envDefault:"false"`

	Server httpserver.Config
	Verify billing.HTTPVerifierConfig
}

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var cfg appConfig
	config.MustLoad(&cfg)

	log := logger.New(logger.WithEnvironment(cfg.Env, "paywalld"))
	logger.SetAsDefault(log)

	catalog, err := loadCatalog(ctx, cfg)
	if err != nil {
		return err
	}

	readiness := make([]func(context.Context) error, 0, 2)

	store, cleanup, check, err := openTrialStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	if cleanup != nil {
		defer cleanup()
	}
	if check != nil {
		readiness = append(readiness, check)
	}

	ledgerOpts := []trial.Option{
		trial.WithLogger(log),
		trial.WithExpiryEnforcement(cfg.EnforceTrialEnd),
	}
	if sender := newSender(cfg); sender != nil {
		ledgerOpts = append(ledgerOpts, trial.WithNotifier(paywall.NewTrialNotifier(sender, nil)))
	}
	ledger := trial.NewLedger(store, ledgerOpts...)

	resolverOpts := []entitlement.ResolverOption{entitlement.WithResolverLogger(log)}
	if cfg.TierCacheBackend == "redis" {
		var redisCfg redis.Config
		config.MustLoad(&redisCfg)
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return err
		}
		defer client.Close()
		readiness = append(readiness, redis.Healthcheck(client))
		resolverOpts = append(resolverOpts, entitlement.WithTierCache(
			entitlement.NewRedisTierCache(client, cfg.TierCacheTTL)))
	} else {
		resolverOpts = append(resolverOpts, entitlement.WithTierCache(
			entitlement.NewMemoryTierCache(cfg.TierCacheCapacity, cfg.TierCacheTTL)))
	}

	verifier := billing.NewHTTPVerifier(cfg.Verify, catalog.Prices, nil)
	resolver := entitlement.NewResolver(verifier, resolverOpts...)
	gate := entitlement.NewGate(catalog.Matrix, resolver,
		entitlement.WithTrialLedger(ledger),
		entitlement.WithGateLogger(log),
	)

	svcOpts := []paywall.ServiceOption{paywall.WithServiceLogger(log)}
	if cfg.PaddleEnabled {
		var paddleCfg billing.PaddleConfig
		config.MustLoad(&paddleCfg)
		provider, err := billing.NewPaddleProvider(paddleCfg, catalog.Prices)
		if err != nil {
			return err
		}
		svcOpts = append(svcOpts, paywall.WithCheckout(provider), paywall.WithWebhooks(provider))
	}
	svc := paywall.NewService(gate, resolver, ledger, svcOpts...)

	r := chi.NewRouter()
	r.Get("/healthz", httpserver.HealthCheckHandler(log))
	r.Get("/readyz", httpserver.HealthCheckHandler(log, readiness...))
	r.Mount("/paywall", svc.Handle())

	return httpserver.New(cfg.Server, log).Run(ctx, r)
}

func loadCatalog(ctx context.Context, cfg appConfig) (plan.Catalog, error) {
	if cfg.CatalogPath != "" {
		return plan.NewYAMLSource(cfg.CatalogPath).Load(ctx)
	}
	return plan.Catalog{Matrix: plan.DefaultMatrix()}, nil
}

// openTrialStore returns the configured store plus its cleanup and
// readiness functions, either of which may be nil for the in-memory
// backend.
func openTrialStore(ctx context.Context, cfg appConfig, log *slog.Logger) (trial.Store, func(), func(context.Context) error, error) {
	switch cfg.TrialStore {
	case "postgres":
		var pgCfg pg.Config
		config.MustLoad(&pgCfg)
		pool, err := pg.Connect(ctx, pgCfg)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := pg.Migrate(ctx, pool, pgCfg, log); err != nil {
			pool.Close()
			return nil, nil, nil, err
		}
		return trial.NewPostgresStore(pool), pool.Close, pg.Healthcheck(pool), nil

	case "mongo":
		var mongoCfg mongo.Config
		config.MustLoad(&mongoCfg)
		client, err := mongo.Connect(ctx, mongoCfg)
		if err != nil {
			return nil, nil, nil, err
		}
		cleanup := func() { _ = client.Disconnect(context.Background()) }
		db := client.Database(mongoCfg.Database)
		return trial.NewMongoStore(db), cleanup, mongo.Healthcheck(client), nil

	default:
		return trial.NewMemoryStore(), nil, nil, nil
	}
}

func newSender(cfg appConfig) email.Sender {
	switch cfg.EmailDriver {
	case "postmark":
		var emailCfg email.Config
		config.MustLoad(&emailCfg)
		return email.MustNewPostmarkSender(emailCfg)
	case "dev":
		return email.NewDevSender(cfg.EmailDevDir)
	default:
		return nil
	}
}
