package httpapi

import (
	"context"
	"sync/atomic"

	"jobtrends-engine/internal/config"
	"jobtrends-engine/internal/events"
	"jobtrends-engine/internal/store"
)

type Deps struct {
	Layout store.Layout

	Hub *events.Hub

	// Atomic stores
	CfgVal       *atomic.Value // stores config.Config
	ScrapeStatus *atomic.Value // stores scrape.Status

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	// Scrape entrypoint (inject for testability)
	RunScrape func(ctx context.Context, cfg config.Config) (rows int, err error)
}
