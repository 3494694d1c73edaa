// Command api runs the HTTP API server for the landlord document wizard.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.temporal.io/sdk/client"

	"github.com/landlord-heaven/wizard-go/internal/api"
	"github.com/landlord-heaven/wizard-go/internal/config"
	"github.com/landlord-heaven/wizard-go/internal/evidence"
	"github.com/landlord-heaven/wizard-go/internal/observability"
	"github.com/landlord-heaven/wizard-go/internal/ratelimit"
	"github.com/landlord-heaven/wizard-go/internal/store"
	"github.com/landlord-heaven/wizard-go/internal/temporal/querier"
	"github.com/landlord-heaven/wizard-go/internal/wizard"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		slog.Error("config error", "error", err)
		os.Exit(1)
	}

	logger := observability.InitLogger(cfg.LogLevel)
	temporalLogger := observability.NewTemporalSlogAdapter(logger)

	if cfg.OTelEnabled {
		shutdown, err := observability.InitTracer(context.Background(), "wizard-api")
		if err != nil {
			logger.Error("otel init failed", "error", err)
		} else {
			defer shutdown(context.Background())
		}
	}

	metrics, err := observability.NewMetrics()
	if err != nil {
		logger.Error("metrics init failed", "error", err)
		os.Exit(1)
	}

	db, err := store.Open(cfg.DatabasePath)
	if err != nil {
		logger.Error("unable to open case store", "error", err, "path", cfg.DatabasePath)
		os.Exit(1)
	}
	defer db.Close()

	limiter := ratelimit.NewServiceLimiter(ratelimit.DefaultServiceRates())

	var evidenceStore wizard.EvidenceStore
	if cfg.Mode == config.ModeProduction {
		awsCfg, err := evidence.NewAWSConfig(context.Background(), cfg.AWSRegion, cfg.AWSProfile, cfg.CrossAccountRole)
		if err != nil {
			logger.Error("aws config failed", "error", err)
			os.Exit(1)
		}
		evidenceStore = evidence.NewS3Store(awsCfg, cfg.EvidenceBucket, limiter)
	} else {
		evidenceStore = evidence.NewStubStore(cfg.EvidenceDir)
	}

	c, err := client.Dial(client.Options{
		HostPort:  cfg.TemporalHostPort,
		Namespace: cfg.TemporalNamespace,
		Logger:    temporalLogger,
	})
	if err != nil {
		logger.Error("unable to create Temporal client", "error", err)
		os.Exit(1)
	}
	defer c.Close()

	q := querier.New(c, limiter)

	srv, err := api.New(api.Deps{
		Engine:  wizard.NewEngine(db, evidenceStore, logger),
		Cases:   db,
		Querier: q,
		Starter: q,
		Budget:  ratelimit.NewCaseBudget(cfg.AnswerBudget, time.Minute),
		Metrics: metrics,
	}, cfg.CORSOrigins, api.OIDCConfig{
		IssuerURL: cfg.OIDCIssuer,
		Audience:  cfg.OIDCAudience,
		Enabled:   cfg.OIDCEnabled(),
	})
	if err != nil {
		logger.Error("server init failed", "error", err)
		os.Exit(1)
	}

	var handler http.Handler = srv
	if cfg.OTelEnabled {
		handler = otelhttp.NewHandler(handler, "wizard-api")
	}

	addr := ":" + cfg.APIPort
	logger.Info("starting API server", "addr", addr, "mode", cfg.Mode, "oidc_enabled", cfg.OIDCEnabled())
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
