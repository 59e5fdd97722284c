package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"jobtrends-engine/internal/series"
	"jobtrends-engine/internal/store"
)

type SeriesHandler struct {
	Layout store.Layout
}

// History serves the dated samples for one (title, city, window).
func (h SeriesHandler) History(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	title := strings.TrimSpace(q.Get("title"))
	city := strings.TrimSpace(q.Get("city"))
	if title == "" || city == "" {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "title and city are required")
		return
	}

	window, err := series.ParseWindow(q.Get("window"))
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_window", err.Error())
		return
	}

	rows, err := store.LoadSeries(h.Layout.SeriesCSV(title))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			WriteError(w, r, http.StatusNotFound, "no_series", "no series recorded for "+title)
			return
		}
		WriteError(w, r, http.StatusInternalServerError, "load_failed", err.Error())
		return
	}

	writeJSON(w, map[string]any{
		"title":  title,
		"city":   city,
		"window": window,
		"points": series.CityHistory(rows, city, window),
	})
}

// Latest serves the most recent sample per city plus deltas.
func (h SeriesHandler) Latest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	title := strings.TrimSpace(q.Get("title"))
	if title == "" {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "title is required")
		return
	}

	window, err := series.ParseWindow(q.Get("window"))
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_window", err.Error())
		return
	}

	rows, err := store.LoadSeries(h.Layout.SeriesCSV(title))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			WriteError(w, r, http.StatusNotFound, "no_series", "no series recorded for "+title)
			return
		}
		WriteError(w, r, http.StatusInternalServerError, "load_failed", err.Error())
		return
	}

	writeJSON(w, map[string]any{
		"title":  title,
		"window": window,
		"cities": series.Latest(rows, window),
	})
}

type ReportsHandler struct {
	Layout store.Layout
}

// List names the title datasets present on disk (display only).
func (h ReportsHandler) List(w http.ResponseWriter, r *http.Request) {
	names, err := h.Layout.Reports()
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "list_failed", err.Error())
		return
	}
	writeJSON(w, map[string]any{"reports": names})
}
