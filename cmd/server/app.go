package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/twmb/franz-go/pkg/kgo"

	"ssto/internal/audit"
	"ssto/internal/audit/outbox"
	httpapi "ssto/internal/http"
	jwttoken "ssto/internal/jwt_token"
	"ssto/internal/matching"
	"ssto/internal/normalize"
	"ssto/internal/platform/config"
	"ssto/internal/platform/kafka"
	"ssto/internal/platform/metrics"
	"ssto/internal/platform/postgres"
	"ssto/internal/platform/redis"
	reconcilehandler "ssto/internal/reconcile/handler"
	"ssto/internal/reconcile/lock"
	reconcilemetrics "ssto/internal/reconcile/metrics"
	reconcileservice "ssto/internal/reconcile/service"
	requesthandler "ssto/internal/request/handler"
	requestservice "ssto/internal/request/service"
	requeststore "ssto/internal/request/store"
	"ssto/internal/signal/extract"
	signalstore "ssto/internal/signal/store"
	"ssto/pkg/platform/circuit"
)

// stores groups the persistence choice made at startup.
type stores struct {
	requests interface {
		requestservice.Store
		reconcileservice.RequestStore
	}
	signals reconcileservice.SignalStore
	audit   audit.Store
	tx      reconcileservice.TxRunner
}

type app struct {
	cfg    *config.Config
	logger *slog.Logger

	db    *sql.DB
	redis *redis.Client
	kafka *kgo.Client
	relay *outbox.Relay

	requests  *requesthandler.Handler
	reconcile *reconcilehandler.Handler
}

func newApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (_ *app, err error) {
	a := &app{cfg: cfg, logger: logger}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()

	st, err := a.openStores(ctx)
	if err != nil {
		return nil, err
	}

	a.redis, err = redis.New(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}

	if err := a.openRelay(ctx); err != nil {
		return nil, err
	}

	policy := matching.Policy{
		MatchWindowHours:    cfg.Matching.WindowHours,
		StrongNameThreshold: cfg.Matching.StrongNameThreshold,
		FuzzyNameThreshold:  cfg.Matching.FuzzyNameThreshold,
		DefaultLimit:        cfg.Matching.SuggestionLimit,
	}
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("matching policy: %w", err)
	}
	normalizer := normalize.NewNormalizer(normalize.ParseExtra(cfg.Extraction.ExtraTransliterations))
	engine := matching.NewEngine(policy, matching.WithNormalizer(normalizer))
	extractor := extract.New(extractConfig(cfg.Extraction))

	opts := []reconcileservice.Option{
		reconcileservice.WithLogger(logger),
		reconcileservice.WithMetrics(reconcilemetrics.New()),
		reconcileservice.WithAuditPublisher(audit.NewPublisher(st.audit)),
		reconcileservice.WithStoreTimeout(cfg.Reconcile.StoreTimeout),
		reconcileservice.WithFeedConfig(reconcileservice.FeedConfig{
			DefaultLimit: cfg.Reconcile.FeedDefaultLimit,
			MaxLimit:     cfg.Reconcile.FeedMaxLimit,
			Workers:      cfg.Reconcile.FeedWorkers,
		}),
	}
	if st.tx != nil {
		opts = append(opts, reconcileservice.WithTxRunner(st.tx))
	}
	if a.redis != nil {
		opts = append(opts, reconcileservice.WithLocker(lock.NewRedis(a.redis.Client, lock.WithTTL(cfg.Reconcile.LockTTL))))
	}
	reconciler := reconcileservice.New(st.signals, st.requests, engine, extractor, opts...)

	a.requests = requesthandler.New(requestservice.New(st.requests, requestservice.WithLogger(logger)), logger)
	a.reconcile = reconcilehandler.New(reconciler, logger)
	return a, nil
}

func (a *app) openStores(ctx context.Context) (stores, error) {
	if a.cfg.Database.DSN == "" {
		return stores{
			requests: requeststore.NewInMemory(),
			signals:  signalstore.NewInMemory(),
			audit:    audit.NewInMemoryStore(),
		}, nil
	}

	db, err := postgres.Open(ctx, a.cfg.Database)
	if err != nil {
		return stores{}, err
	}
	a.db = db
	if a.cfg.Database.MigrateOnStart {
		versions, err := postgres.Migrate(ctx, db)
		if err != nil {
			return stores{}, err
		}
		a.logger.Info("migrations applied", "versions", versions)
	}
	return stores{
		requests: requeststore.NewPostgres(db),
		signals:  signalstore.NewPostgres(db),
		audit:    outbox.NewPostgres(db),
		tx:       postgres.NewTxRunner(db),
	}, nil
}

// openRelay starts forwarding outbox rows to Kafka when brokers are set.
// Config validation guarantees a database in that case.
func (a *app) openRelay(ctx context.Context) error {
	client, err := kafka.NewClient(a.cfg.Kafka)
	if err != nil || client == nil {
		return err
	}
	a.kafka = client
	k := a.cfg.Kafka
	if err := kafka.EnsureTopic(ctx, client, k.Topic, k.Partitions, k.ReplicationFactor); err != nil {
		return err
	}
	a.relay = outbox.NewRelay(
		outbox.NewPostgres(a.db),
		outbox.NewKafkaSink(client, k.Topic),
		outbox.WithInterval(k.RelayInterval),
		outbox.WithBatchSize(k.RelayBatchSize),
		outbox.WithLogger(a.logger),
		outbox.WithBreaker(circuit.New("kafka", circuit.WithCooldown(30*time.Second))),
	)
	return nil
}

func (a *app) router() http.Handler {
	checks := map[string]httpapi.HealthCheck{}
	if a.db != nil {
		checks["postgres"] = a.db.PingContext
	}
	if a.redis != nil {
		checks["redis"] = a.redis.Health
	}
	if a.kafka != nil {
		checks["kafka"] = a.kafka.Ping
	}

	validator := jwttoken.NewJWTServiceAdapter(jwttoken.NewJWTService(a.cfg.Auth.JWTSecret, a.cfg.Auth.JWTIssuer))
	return httpapi.NewRouter(httpapi.Config{
		Logger:         a.logger,
		Metrics:        metrics.New(),
		Gatherer:       prometheus.DefaultGatherer,
		Validator:      validator,
		RequestTimeout: a.cfg.Server.RequestTimeout,
		HealthChecks:   checks,
	}, a.requests, a.reconcile)
}

func (a *app) storage() string {
	if a.db != nil {
		return "postgres"
	}
	return "memory"
}

func (a *app) Close() {
	if a.kafka != nil {
		a.kafka.Close()
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}

// extractConfig overlays configured alias lists on the built-in defaults.
func extractConfig(cfg config.Extraction) extract.Config {
	out := extract.DefaultConfig()
	override := func(dst *[]string, src []string) {
		if len(src) > 0 {
			*dst = src
		}
	}
	override(&out.TerminalKeys, cfg.TerminalKeys)
	override(&out.MMSIKeys, cfg.MMSIKeys)
	override(&out.IMOKeys, cfg.IMOKeys)
	override(&out.VesselNameKeys, cfg.VesselNameKeys)
	override(&out.TextKeys, cfg.TextKeys)
	override(&out.TestMarkers, cfg.TestMarkers)
	return out
}
