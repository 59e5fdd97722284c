package series

import (
	"fmt"
	"sort"

	"jobtrends-engine/internal/store"
)

// Window selects which of the four count columns a view reads.
type Window string

const (
	Window24h   Window = "24h"
	WindowWeek  Window = "week"
	WindowMonth Window = "month"
	WindowTotal Window = "total"
)

func ParseWindow(s string) (Window, error) {
	switch Window(s) {
	case Window24h, WindowWeek, WindowMonth, WindowTotal:
		return Window(s), nil
	case "":
		return WindowTotal, nil
	}
	return "", fmt.Errorf("unknown window %q (want 24h, week, month or total)", s)
}

func valueFor(row store.SeriesRow, w Window) int {
	switch w {
	case Window24h:
		return row.Jobs24h
	case WindowWeek:
		return row.JobsWeek
	case WindowMonth:
		return row.JobsMonth
	default:
		return row.JobsTotal
	}
}

// Point is one dated sample for one city.
type Point struct {
	Date string `json:"date"`
	Jobs int    `json:"jobs"`
}

// CityHistory returns the date-ordered samples of one count column for one
// city.
func CityHistory(rows []store.SeriesRow, city string, w Window) []Point {
	var out []Point
	for _, row := range rows {
		if row.City != city {
			continue
		}
		out = append(out, Point{Date: row.Date, Jobs: valueFor(row, w)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// LatestRow is a city's most recent sample plus its change since the
// previous one.
type LatestRow struct {
	City  string `json:"city"`
	Date  string `json:"date"`
	Jobs  int    `json:"jobs"`
	Delta int    `json:"delta"`
}

// Latest filters the series to the most recent capture date and computes
// per-city deltas against the prior sample (first sample's delta is 0).
// The max date is picked by an explicit scan; dates are fixed-width
// YYYY-MM-DD so the comparison is safe.
func Latest(rows []store.SeriesRow, w Window) []LatestRow {
	if len(rows) == 0 {
		return nil
	}

	byCity := make(map[string][]store.SeriesRow)
	maxDate := ""
	for _, row := range rows {
		byCity[row.City] = append(byCity[row.City], row)
		if row.Date > maxDate {
			maxDate = row.Date
		}
	}

	var out []LatestRow
	for city, history := range byCity {
		sort.SliceStable(history, func(i, j int) bool { return history[i].Date < history[j].Date })

		prev := 0
		for i, row := range history {
			val := valueFor(row, w)
			delta := 0
			if i > 0 {
				delta = val - prev
			}
			prev = val

			if row.Date == maxDate {
				out = append(out, LatestRow{City: city, Date: row.Date, Jobs: val, Delta: delta})
			}
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].City < out[j].City })
	return out
}
