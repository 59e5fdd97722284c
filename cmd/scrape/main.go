package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"jobtrends-engine/internal/config"
	"jobtrends-engine/internal/scrape"
	"jobtrends-engine/internal/store"
)

// One-shot run of the full pipeline for every configured title and city.
// Suitable for cron when the long-running engine is not wanted.
func main() {
	snapshotOnly := flag.Bool("snapshot-only", false, "record count snapshots without enumerating postings")
	flag.Parse()

	dataDir := os.Getenv("JOBTRENDS_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	lock, err := store.LockDataDir(dataDir)
	if err != nil {
		log.Fatalf("lock failed: %v", err)
	}
	defer func() { _ = lock.Unlock() }()

	userCfgPath, err := config.EnsureUserConfig(dataDir, filepath.Join("config", "config.yml"))
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}
	cfg, err := config.Load(userCfgPath)
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	cfg.App.DataDir = dataDir

	db, err := store.Open(filepath.Join(dataDir, "jobtrends.db"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	if err := store.Migrate(db.Pool); err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := scrape.NewRunner(cfg, db.Pool, nil)

	if *snapshotOnly {
		if err := runner.SnapshotAll(ctx, cfg); err != nil {
			log.Fatalf("snapshot failed: %v", err)
		}
		log.Println("[scrape] snapshots recorded")
		return
	}

	rows, err := runner.RunOnce(ctx, cfg)
	if err != nil {
		log.Fatalf("scrape failed: %v", err)
	}
	log.Printf("[scrape] done rows=%d", rows)
}
