package scrape

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"

	"jobtrends-engine/internal/domain"
	"jobtrends-engine/internal/scrape/parse"
)

// DetailEnricher adds posting-page attributes to discovered records: one
// extra fetch per record that carries a job link.
//
// Records whose fetch fails or yields nothing parseable are dropped, not
// kept partial, so output count may be below input count. Enrichment fans
// out over a bounded pool; the output preserves input order because results
// land in an index-addressed slice before nils are compacted.
type DetailEnricher struct {
	client  Getter
	headers map[string]string
	workers int
}

func NewDetailEnricher(client Getter, headers map[string]string, workers int) *DetailEnricher {
	if workers <= 0 {
		workers = 1
	}
	return &DetailEnricher{client: client, headers: headers, workers: workers}
}

func (e *DetailEnricher) Enrich(ctx context.Context, ps []domain.Posting) []domain.Posting {
	results := make([]*domain.Posting, len(ps))

	var g errgroup.Group
	g.SetLimit(e.workers)

	for i, p := range ps {
		if p.JobLink == nil {
			log.Printf("[details] no job link title=%q, dropping", domain.Deref(p.Title))
			continue
		}

		i, p := i, p
		g.Go(func() error {
			body, err := e.client.Get(ctx, *p.JobLink, e.headers)
			if err != nil {
				log.Printf("[details] fetch failed url=%s err=%v, dropping", *p.JobLink, err)
				return nil // per-record drop, never fail the batch
			}

			d, err := parse.JobDetails(string(body))
			if err != nil || d == (domain.Details{}) {
				log.Printf("[details] nothing extracted url=%s, dropping", *p.JobLink)
				return nil
			}

			enriched := p.WithDetails(d)
			results[i] = &enriched
			return nil
		})
	}

	_ = g.Wait()
	return compact(results)
}

func compact(in []*domain.Posting) []domain.Posting {
	out := make([]domain.Posting, 0, len(in))
	for _, p := range in {
		if p != nil {
			out = append(out, *p)
		}
	}
	return out
}
