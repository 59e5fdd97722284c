package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	"jobtrends-engine/internal/config"
	"jobtrends-engine/internal/events"
	"jobtrends-engine/internal/httpapi"
	"jobtrends-engine/internal/scheduler"
	"jobtrends-engine/internal/scrape"
	"jobtrends-engine/internal/store"
)

func main() {
	dataDir := os.Getenv("JOBTRENDS_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	// One writer to the CSV tables at a time (engine or one-shot scrape).
	lock, err := store.LockDataDir(dataDir)
	if err != nil {
		log.Fatalf("lock failed: %v", err)
	}
	defer func() { _ = lock.Unlock() }()

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		return config.Load(userCfgPath)
	}
	cfg, err := loadCfg()
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	cfg.App.DataDir = dataDir
	cfgVal.Store(cfg)

	db, err := store.Open(filepath.Join(dataDir, "jobtrends.db"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	if err := store.Migrate(db.Pool); err != nil {
		log.Fatal(err)
	}

	hub := events.NewHub()

	var status atomic.Value
	status.Store(scrape.Status{})

	runScrape := func(ctx context.Context, c config.Config) (int, error) {
		return scrape.NewRunner(c, db.Pool, hub).RunOnce(ctx, c)
	}

	mux := httpapi.NewMux(httpapi.Deps{
		Layout:       store.Layout{DataDir: dataDir},
		Hub:          hub,
		CfgVal:       &cfgVal,
		ScrapeStatus: &status,
		UserCfgPath:  userCfgPath,
		LoadCfg:      loadCfg,
		RunScrape:    runScrape,
	})

	handler := httpapi.Chain(mux,
		httpapi.RequestID,
		httpapi.AccessLog,
		httpapi.Recover,
		httpapi.Cors,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Daily-ish count snapshots, interval from config.
	go scheduler.Every(ctx,
		time.Duration(cfg.Scrape.SnapshotHours)*time.Hour,
		"snapshot",
		func(tctx context.Context) error {
			c := cfgVal.Load().(config.Config)
			return scrape.NewRunner(c, db.Pool, hub).SnapshotAll(tctx, c)
		},
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf("127.0.0.1:%d", cfg.App.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("[engine] listening on %s data_dir=%s", srv.Addr, dataDir)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("serve: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("[engine] shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
