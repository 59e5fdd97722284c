package httpapi

import "net/http"

// NewMux returns the raw mux so main() can still attach extra routes.
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: HealthHandler{}.Health,
	}))

	// Datasets
	rh := ReportsHandler{Layout: d.Layout}
	mux.HandleFunc("/reports", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: rh.List,
	}))

	// Time series
	sh := SeriesHandler{Layout: d.Layout}
	mux.HandleFunc("/series", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sh.History,
	}))
	mux.HandleFunc("/series/latest", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sh.Latest,
	}))

	// Posting breakdowns
	sum := SummaryHandler{Layout: d.Layout}
	mux.HandleFunc("/summary", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sum.Get,
	}))

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))

	// Secrets
	sec := SecretsHandler{}
	mux.HandleFunc("/api/secrets/session", methodMux(map[string]http.HandlerFunc{
		http.MethodPost:   sec.SetSessionCookie,
		http.MethodDelete: sec.DeleteSessionCookie,
	}))

	// Scrape
	sch := ScrapeHandler{
		CfgVal:       d.CfgVal,
		ScrapeStatus: d.ScrapeStatus,
		Hub:          d.Hub,
		RunScrape:    d.RunScrape,
	}
	mux.HandleFunc("/scrape/status", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sch.Status,
	}))
	mux.HandleFunc("/scrape/run", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sch.Run,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	return mux
}
