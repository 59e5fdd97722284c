package scrape

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"jobtrends-engine/internal/domain"
	"jobtrends-engine/internal/scrape/parse"
	"jobtrends-engine/internal/store"
)

// CompanyEnricher adds employer-profile attributes: one fetch of the linked
// company page per record. Profiles are cached in sqlite keyed by company
// URL, so many postings from one employer cost one page fetch across runs.
//
// Same drop policy and ordering guarantees as DetailEnricher.
type CompanyEnricher struct {
	client  Getter
	headers map[string]string
	workers int
	db      *sql.DB // nil disables the cache
}

func NewCompanyEnricher(client Getter, headers map[string]string, workers int, db *sql.DB) *CompanyEnricher {
	if workers <= 0 {
		workers = 1
	}
	return &CompanyEnricher{client: client, headers: headers, workers: workers, db: db}
}

func (e *CompanyEnricher) Enrich(ctx context.Context, ps []domain.Posting) []domain.Posting {
	results := make([]*domain.Posting, len(ps))

	var g errgroup.Group
	g.SetLimit(e.workers)

	for i, p := range ps {
		if p.CompanyURL == nil {
			log.Printf("[company] no company url company=%q, dropping", domain.Deref(p.Company))
			continue
		}

		i, p := i, p
		g.Go(func() error {
			profile, ok := e.lookup(ctx, *p.CompanyURL)
			if !ok {
				var err error
				profile, err = e.fetchProfile(ctx, *p.CompanyURL)
				if err != nil {
					log.Printf("[company] %v, dropping", err)
					return nil
				}
			}

			enriched := p.WithCompany(profile)
			results[i] = &enriched
			return nil
		})
	}

	_ = g.Wait()
	return compact(results)
}

func (e *CompanyEnricher) lookup(ctx context.Context, companyURL string) (domain.CompanyProfile, bool) {
	if e.db == nil {
		return domain.CompanyProfile{}, false
	}
	profile, ok, err := store.GetCompanyProfile(ctx, e.db, companyURL)
	if err != nil {
		log.Printf("[company] cache read err url=%s err=%v", companyURL, err)
		return domain.CompanyProfile{}, false
	}
	return profile, ok
}

func (e *CompanyEnricher) fetchProfile(ctx context.Context, companyURL string) (domain.CompanyProfile, error) {
	body, err := e.client.Get(ctx, companyURL, e.headers)
	if err != nil {
		return domain.CompanyProfile{}, fmt.Errorf("company fetch failed url=%s: %w", companyURL, err)
	}

	profile, err := parse.Company(string(body))
	if err != nil || profile.IsZero() {
		return domain.CompanyProfile{}, fmt.Errorf("nothing extracted from company page url=%s", companyURL)
	}

	if e.db != nil {
		if uerr := store.UpsertCompanyProfile(ctx, e.db, companyURL, profile); uerr != nil {
			log.Printf("[company] cache write err url=%s err=%v", companyURL, uerr)
		}
	}
	return profile, nil
}
