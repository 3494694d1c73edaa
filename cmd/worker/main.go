// Command worker runs the Temporal worker for case generation workflows.
// Supports stub mode (local filesystem storage) and production mode (S3).
package main

import (
	"context"
	"log/slog"
	"os"

	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"

	"github.com/landlord-heaven/wizard-go/internal/config"
	"github.com/landlord-heaven/wizard-go/internal/evidence"
	"github.com/landlord-heaven/wizard-go/internal/observability"
	"github.com/landlord-heaven/wizard-go/internal/ratelimit"
	"github.com/landlord-heaven/wizard-go/internal/store"
	"github.com/landlord-heaven/wizard-go/internal/temporal/activities"
	"github.com/landlord-heaven/wizard-go/internal/temporal/queues"
	"github.com/landlord-heaven/wizard-go/internal/temporal/versioning"
	"github.com/landlord-heaven/wizard-go/internal/temporal/workflows"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		slog.Error("config error", "error", err)
		os.Exit(1)
	}

	logger := observability.InitLogger(cfg.LogLevel)
	temporalLogger := observability.NewTemporalSlogAdapter(logger)

	queueNames, err := queues.ParseQueues(cfg.Queues)
	if err != nil {
		logger.Error("queue config error", "error", err)
		os.Exit(1)
	}

	db, err := store.Open(cfg.DatabasePath)
	if err != nil {
		logger.Error("unable to open case store", "error", err, "path", cfg.DatabasePath)
		os.Exit(1)
	}
	defer db.Close()

	var objects activities.ObjectStore
	if cfg.Mode == config.ModeProduction {
		awsCfg, err := evidence.NewAWSConfig(context.Background(), cfg.AWSRegion, cfg.AWSProfile, cfg.CrossAccountRole)
		if err != nil {
			logger.Error("aws config failed", "error", err)
			os.Exit(1)
		}
		limiter := ratelimit.NewServiceLimiter(ratelimit.DefaultServiceRates())
		objects = evidence.NewS3Store(awsCfg, cfg.EvidenceBucket, limiter)
	} else {
		objects = evidence.NewStubStore(cfg.EvidenceDir)
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

	acts := &activities.Activities{
		Cases:   db,
		Docs:    db,
		Objects: objects,
	}

	configs := queues.DefaultConfigs()
	workers := make([]worker.Worker, 0, len(queueNames))
	for _, name := range queueNames {
		qc := configs[name]
		w := worker.New(c, qc.Name, qc.Options)
		// The generation queue hosts the workflow itself; delivery-only
		// workers just execute activities.
		if name == versioning.QueueGeneration {
			w.RegisterWorkflow(workflows.CaseGenerationWorkflow)
		}
		w.RegisterActivity(acts)
		workers = append(workers, w)

		logger.Info("starting worker", "queue", qc.Name, "mode", cfg.Mode)
		if err := w.Start(); err != nil {
			logger.Error("worker failed to start", "queue", qc.Name, "error", err)
			os.Exit(1)
		}
	}

	<-worker.InterruptCh()
	for _, w := range workers {
		w.Stop()
	}
}
