package scrape

import (
	"context"
	"database/sql"
	"log"
	"time"

	"jobtrends-engine/internal/config"
	"jobtrends-engine/internal/events"
	"jobtrends-engine/internal/fetch"
	"jobtrends-engine/internal/secrets"
	"jobtrends-engine/internal/series"
	"jobtrends-engine/internal/store"
)

// Runner drives the full workflow for each configured title: record the
// city-count snapshot, then per city enumerate postings and run both
// enrichment passes, flushing the table to disk at every stage boundary.
type Runner struct {
	Lister    *Lister
	Details   *DetailEnricher
	Companies *CompanyEnricher
	Recorder  *series.Recorder
	Layout    store.Layout
	Hub       *events.Hub
}

// NewRunner wires the pipeline from config: one shared request client (the
// only component that touches the network), the session cookie from the OS
// keyring if one is stored, and the sqlite-backed company cache.
func NewRunner(cfg config.Config, db *sql.DB, hub *events.Hub) *Runner {
	client := fetch.New(fetch.Options{
		MaxRetries:     cfg.Scrape.MaxRetries,
		BaseDelay:      time.Duration(cfg.Scrape.BaseDelaySeconds) * time.Second,
		RateLimitDelay: time.Duration(cfg.Scrape.RateLimitDelaySeconds) * time.Second,
		Timeout:        time.Duration(cfg.Scrape.TimeoutSeconds) * time.Second,
		Headers:        cfg.Headers,
		HostReqPerSec:  cfg.Scrape.HostReqPerSec,
		HostBurst:      1,
	})

	detailHeaders := map[string]string{}
	cookie, err := secrets.GetSessionCookie()
	if err != nil {
		log.Printf("[scrape] keyring unavailable, running unauthenticated: %v", err)
	} else if cookie != "" {
		detailHeaders["cookie"] = cookie
	}

	layout := store.Layout{DataDir: cfg.App.DataDir}
	lister := NewLister(client, nil)

	return &Runner{
		Lister:    lister,
		Details:   NewDetailEnricher(client, detailHeaders, cfg.Scrape.Workers),
		Companies: NewCompanyEnricher(client, detailHeaders, cfg.Scrape.Workers, db),
		Recorder:  series.NewRecorder(lister, layout),
		Layout:    layout,
		Hub:       hub,
	}
}

// RunOnce processes every configured title and city, best-effort: a failed
// city or title is logged and skipped, the rest of the run continues.
// Returns the number of posting rows written across all cities.
func (r *Runner) RunOnce(ctx context.Context, cfg config.Config) (rows int, err error) {
	for _, title := range cfg.Scrape.Titles {
		if merged, serr := r.Recorder.Record(ctx, title, cfg.Scrape.Cities); serr != nil {
			log.Printf("[scrape] snapshot failed title=%q err=%v", title, serr)
		} else {
			r.publish(events.TypeSnapshotRecorded, map[string]any{"title": title, "rows": len(merged)})
		}

		for _, city := range cfg.Scrape.Cities {
			n, cerr := r.scrapeCity(ctx, title, city, cfg.Scrape.PageLimit)
			if cerr != nil {
				log.Printf("[scrape] city failed title=%q city=%q err=%v", title, city, cerr)
				continue
			}
			rows += n
			r.publish(events.TypeCityScraped, map[string]any{"title": title, "city": city, "rows": n})
		}
	}

	r.publish(events.TypeScrapeDone, map[string]any{"rows": rows})
	return rows, nil
}

// SnapshotAll records one city-count snapshot per configured title without
// enumerating postings. The scheduler runs this daily; a failed title is
// skipped, the rest still record.
func (r *Runner) SnapshotAll(ctx context.Context, cfg config.Config) error {
	for _, title := range cfg.Scrape.Titles {
		merged, err := r.Recorder.Record(ctx, title, cfg.Scrape.Cities)
		if err != nil {
			log.Printf("[scrape] snapshot failed title=%q err=%v", title, err)
			continue
		}
		r.publish(events.TypeSnapshotRecorded, map[string]any{"title": title, "rows": len(merged)})
	}
	return nil
}

func (r *Runner) scrapeCity(ctx context.Context, title, city string, limit int) (int, error) {
	postings, err := r.Lister.FetchAll(ctx, title, city, limit)
	if err != nil {
		return 0, err
	}

	path := r.Layout.PostingsCSV(title, city)
	if err := store.SavePostings(path, postings); err != nil {
		return 0, err
	}
	log.Printf("[scrape] listed title=%q city=%q rows=%d", title, city, len(postings))

	postings = r.Details.Enrich(ctx, postings)
	if err := store.SavePostings(path, postings); err != nil {
		return 0, err
	}
	log.Printf("[scrape] detailed title=%q city=%q rows=%d", title, city, len(postings))

	postings = r.Companies.Enrich(ctx, postings)
	if err := store.SavePostings(path, postings); err != nil {
		return 0, err
	}
	log.Printf("[scrape] company-enriched title=%q city=%q rows=%d", title, city, len(postings))

	return len(postings), nil
}

func (r *Runner) publish(typ string, data any) {
	if r.Hub == nil {
		return
	}
	r.Hub.Publish(events.MakeEvent("", typ, 1, data))
}
