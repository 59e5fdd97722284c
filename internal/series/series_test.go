package series

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobtrends-engine/internal/domain"
	"jobtrends-engine/internal/store"
)

type fakeCounts struct {
	byCity map[string]domain.Counts
	errs   map[string]error
}

func (f fakeCounts) FetchCounts(_ context.Context, _ string, city string) (domain.Counts, error) {
	if err, ok := f.errs[city]; ok {
		return domain.Counts{}, err
	}
	return f.byCity[city], nil
}

func fixedClock(date string) func() time.Time {
	return func() time.Time {
		t, _ := time.Parse(time.DateOnly, date)
		return t
	}
}

func TestRecordAppendsOneRowPerCity(t *testing.T) {
	layout := store.Layout{DataDir: t.TempDir()}
	r := NewRecorder(fakeCounts{byCity: map[string]domain.Counts{
		"Ottawa":  {Total: 120, PastMonth: 40, PastWeek: 17, Past24h: 3},
		"Toronto": {Total: 600, PastMonth: 140, PastWeek: 55, Past24h: 9},
	}}, layout)
	r.now = fixedClock("2024-01-19")

	merged, err := r.Record(context.Background(), "SWE", []string{"Ottawa", "Toronto"})
	require.NoError(t, err)
	require.Len(t, merged, 2)

	assert.Equal(t, store.SeriesRow{
		City: "Ottawa", Jobs24h: 3, JobsWeek: 17, JobsMonth: 40, JobsTotal: 120, Date: "2024-01-19",
	}, merged[0])

	onDisk, err := store.LoadSeries(layout.SeriesCSV("SWE"))
	require.NoError(t, err)
	assert.Equal(t, merged, onDisk)
}

func TestRecordAllOrNothing(t *testing.T) {
	layout := store.Layout{DataDir: t.TempDir()}
	path := layout.SeriesCSV("SWE")

	seed := []store.SeriesRow{{City: "Ottawa", JobsTotal: 100, Date: "2024-01-18"}}
	require.NoError(t, store.SaveSeries(path, seed))

	r := NewRecorder(fakeCounts{
		byCity: map[string]domain.Counts{"Ottawa": {Total: 120}, "Montreal": {Total: 80}},
		errs:   map[string]error{"Toronto": errors.New("exhausted")},
	}, layout)
	r.now = fixedClock("2024-01-19")

	_, err := r.Record(context.Background(), "SWE", []string{"Ottawa", "Toronto", "Montreal"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Toronto")

	// a partial batch never touches the file
	onDisk, err := store.LoadSeries(path)
	require.NoError(t, err)
	assert.Equal(t, seed, onDisk)
}

func TestRecordKeepsSameDayDuplicates(t *testing.T) {
	layout := store.Layout{DataDir: t.TempDir()}
	r := NewRecorder(fakeCounts{byCity: map[string]domain.Counts{
		"Ottawa": {Total: 120},
	}}, layout)
	r.now = fixedClock("2024-01-19")

	_, err := r.Record(context.Background(), "SWE", []string{"Ottawa"})
	require.NoError(t, err)

	merged, err := r.Record(context.Background(), "SWE", []string{"Ottawa"})
	require.NoError(t, err)

	// reruns on the same day append; history keeps what actually ran
	require.Len(t, merged, 2)
	assert.Equal(t, merged[0].Date, merged[1].Date)
}

func TestRecordMergesSortedByDate(t *testing.T) {
	layout := store.Layout{DataDir: t.TempDir()}
	path := layout.SeriesCSV("SWE")
	require.NoError(t, store.SaveSeries(path, []store.SeriesRow{
		{City: "Ottawa", JobsTotal: 90, Date: "2024-01-20"},
		{City: "Ottawa", JobsTotal: 80, Date: "2024-01-18"},
	}))

	r := NewRecorder(fakeCounts{byCity: map[string]domain.Counts{
		"Ottawa": {Total: 100},
	}}, layout)
	r.now = fixedClock("2024-01-19")

	merged, err := r.Record(context.Background(), "SWE", []string{"Ottawa"})
	require.NoError(t, err)

	var dates []string
	for _, row := range merged {
		dates = append(dates, row.Date)
	}
	assert.Equal(t, []string{"2024-01-18", "2024-01-19", "2024-01-20"}, dates)
}
