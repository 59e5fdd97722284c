package scrape

import (
	"context"
	"fmt"
	"log"

	"jobtrends-engine/internal/domain"
	"jobtrends-engine/internal/scrape/parse"
)

// Lister walks the search results for one (title, city) query: a count view
// plus fixed-size pages addressed by an offset cursor.
type Lister struct {
	client  Getter
	headers map[string]string
}

func NewLister(client Getter, headers map[string]string) *Lister {
	return &Lister{client: client, headers: headers}
}

// FetchCounts hits the count view once. A client failure propagates as an
// error so callers abort the city instead of recording zero jobs.
func (l *Lister) FetchCounts(ctx context.Context, title, city string) (domain.Counts, error) {
	body, err := l.client.Get(ctx, searchURL(title, city), l.headers)
	if err != nil {
		return domain.Counts{}, fmt.Errorf("count view %q in %q: %w", title, city, err)
	}
	return parse.Counts(string(body))
}

// FetchPage fetches one batch at the given offset, in arrival order. A
// failed fetch or a batch with nothing extractable yields a single empty
// sentinel record, which distinguishes "nothing to parse" from a bug.
func (l *Lister) FetchPage(ctx context.Context, title, city string, offset int) []domain.Posting {
	sentinel := []domain.Posting{{}}

	body, err := l.client.Get(ctx, pageURL(title, city, offset), l.headers)
	if err != nil {
		log.Printf("[listing] page fetch failed title=%q city=%q offset=%d err=%v", title, city, offset, err)
		return sentinel
	}

	jobs, err := parse.Jobs(string(body))
	if err != nil || len(jobs) == 0 {
		log.Printf("[listing] no jobs in page title=%q city=%q offset=%d", title, city, offset)
		return sentinel
	}
	return jobs
}

// FetchAll enumerates postings up to limit: counts first, the page at offset
// 0, then offsets 60, 70, ... while below min(total, limit). The source
// returns empty pages past the end instead of a no-more-results marker, so
// an empty page (or one entirely missing titles) is the exhaustion signal.
func (l *Lister) FetchAll(ctx context.Context, title, city string, limit int) ([]domain.Posting, error) {
	counts, err := l.FetchCounts(ctx, title, city)
	if err != nil {
		return nil, err
	}

	effective := counts.Total
	if limit < effective {
		effective = limit
	}
	log.Printf("[listing] title=%q city=%q total=%d limit=%d", title, city, counts.Total, effective)

	all := l.FetchPage(ctx, title, city, 0)

	for offset := firstOffset; offset < effective; offset += pageStep {
		page := l.FetchPage(ctx, title, city, offset)
		if len(page) == 0 || missingTitles(page) {
			log.Printf("[listing] exhausted title=%q city=%q offset=%d", title, city, offset)
			break
		}
		all = append(all, page...)
	}

	return all, nil
}

func missingTitles(ps []domain.Posting) bool {
	for _, p := range ps {
		if p.Title != nil {
			return false
		}
	}
	return true
}
