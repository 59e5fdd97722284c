package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"jobtrends-engine/internal/domain"
	"jobtrends-engine/internal/store"
)

type SummaryHandler struct {
	Layout store.Layout
}

// Get serves value-count breakdowns over one city's postings table.
func (h SummaryHandler) Get(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	title := strings.TrimSpace(q.Get("title"))
	city := strings.TrimSpace(q.Get("city"))
	if title == "" || city == "" {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "title and city are required")
		return
	}

	postings, err := store.LoadPostings(h.Layout.PostingsCSV(title, city))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			WriteError(w, r, http.StatusNotFound, "no_data", "no postings for "+title+" in "+city)
			return
		}
		WriteError(w, r, http.StatusInternalServerError, "load_failed", err.Error())
		return
	}

	writeJSON(w, map[string]any{
		"title":            title,
		"city":             city,
		"total_jobs":       len(postings),
		"seniority_levels": valueCounts(postings, func(p domain.Posting) *string { return p.SeniorityLevel }),
		"employment_types": valueCounts(postings, func(p domain.Posting) *string { return p.EmploymentType }),
		"industries":       valueCounts(postings, func(p domain.Posting) *string { return p.Industries }),
		"company_sizes":    valueCounts(postings, func(p domain.Posting) *string { return p.CompanySize }),
	})
}

func valueCounts(ps []domain.Posting, field func(domain.Posting) *string) map[string]int {
	out := make(map[string]int)
	for _, p := range ps {
		if v := field(p); v != nil {
			out[*v]++
		}
	}
	return out
}
