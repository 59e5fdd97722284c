package scrape

import "context"

// Getter is the slice of the fetch client the scraping stages use. All
// network I/O, retry, and pacing lives behind it.
type Getter interface {
	Get(ctx context.Context, url string, headers map[string]string) ([]byte, error)
}

// Status mirrors the last orchestrated run for the dashboard.
type Status struct {
	LastRunAt string `json:"last_run_at"`
	LastOkAt  string `json:"last_ok_at"`
	LastError string `json:"last_error"`
	LastRows  int    `json:"last_rows"`
	Running   bool   `json:"running"`
}
