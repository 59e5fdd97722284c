// Package series maintains the per-title job-count time series and the
// derived views the dashboard reads.
package series

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"jobtrends-engine/internal/domain"
	"jobtrends-engine/internal/store"
)

// CountsFetcher is the one operation the recorder needs from the listing
// fetcher.
type CountsFetcher interface {
	FetchCounts(ctx context.Context, title, city string) (domain.Counts, error)
}

// Recorder samples job counts per city and appends dated rows to the
// persisted series for a title.
type Recorder struct {
	fetcher CountsFetcher
	layout  store.Layout

	now func() time.Time
}

func NewRecorder(f CountsFetcher, layout store.Layout) *Recorder {
	return &Recorder{fetcher: f, layout: layout, now: time.Now}
}

// Record fetches counts for every city and appends one dated row per city to
// the title's series, merged with prior history and re-sorted by date.
//
// All-or-nothing per title: if any city's count fetch fails, nothing is
// written and the error is returned, so a partial batch never skews the
// series. Reruns on the same day append duplicate dated rows on purpose;
// the history keeps what actually ran.
func (r *Recorder) Record(ctx context.Context, title string, cities []string) ([]store.SeriesRow, error) {
	date := r.now().Format(time.DateOnly)

	fresh := make([]store.SeriesRow, 0, len(cities))
	for _, city := range cities {
		counts, err := r.fetcher.FetchCounts(ctx, title, city)
		if err != nil {
			return nil, fmt.Errorf("snapshot %q: city %q: %w", title, city, err)
		}
		fresh = append(fresh, store.SeriesRow{
			City:      city,
			Jobs24h:   counts.Past24h,
			JobsWeek:  counts.PastWeek,
			JobsMonth: counts.PastMonth,
			JobsTotal: counts.Total,
			Date:      date,
		})
	}

	path := r.layout.SeriesCSV(title)

	existing, err := store.LoadSeries(path)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("snapshot %q: %w", title, err)
	}

	merged := append(existing, fresh...)
	sort.SliceStable(merged, func(i, j int) bool { return merged[i].Date < merged[j].Date })

	if err := store.SaveSeries(path, merged); err != nil {
		return nil, fmt.Errorf("snapshot %q: %w", title, err)
	}

	log.Printf("[series] recorded title=%q cities=%d rows=%d", title, len(cities), len(merged))
	return merged, nil
}
