package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ctcsite/sitebuilder/config"
	"ctcsite/sitebuilder/internal/db"
	"ctcsite/sitebuilder/internal/jobs"
	"ctcsite/sitebuilder/internal/sitegen"
	"ctcsite/sitebuilder/internal/storage"
	"ctcsite/sitebuilder/internal/worker"
)

const (
	drainInterval = 30 * time.Second
	drainBatch    = 20
)

// The publisher drains sites stuck in pending: rows whose insert hook was
// missed or whose first publish failed. Publishing is idempotent, so
// re-running a site that meanwhile went online is harmless.
func main() {
	cfg := config.Load()
	config.InitLogger()

	siteRepo, err := db.NewSiteRepository(cfg.SupabaseURL, cfg.SupabaseKey)
	if err != nil {
		log.Fatalf("Failed to initialize site repository: %v", err)
	}

	generator := sitegen.NewGenerator(
		storage.NewTemplateBucket(cfg),
		storage.NewPublicBucket(cfg),
		siteRepo,
		config.Log,
	)

	dispatcher := worker.NewDispatcher(5, 100, config.Log)
	dispatcher.Run()

	ticker := time.NewTicker(drainInterval)
	defer ticker.Stop()

	drain := func() {
		sites, err := siteRepo.ListPending(drainBatch)
		if err != nil {
			config.Log.Errorf("Failed to list pending sites: %v", err)
			return
		}
		for _, site := range sites {
			dispatcher.Submit(jobs.NewPublishSiteJob(site, generator))
		}
		if len(sites) > 0 {
			config.Log.Infof("Queued %d pending sites", len(sites))
		}
	}

	config.Log.Info("Publisher running.")
	drain()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-ticker.C:
			drain()
		case <-sigChan:
			config.Log.Info("Shutting down publisher...")
			dispatcher.Stop()
			config.Log.Info("Publisher shut down gracefully.")
			return
		}
	}
}
