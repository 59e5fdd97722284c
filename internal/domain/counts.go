package domain

// Counts is one job-count snapshot for a (title, city) pair: total plus the
// three trailing windows the search page exposes.
type Counts struct {
	Total     int
	PastMonth int
	PastWeek  int
	Past24h   int
}
