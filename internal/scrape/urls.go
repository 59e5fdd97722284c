package scrape

import (
	"fmt"
	"net/url"
)

const (
	baseURL      = "https://www.linkedin.com"
	searchPath   = baseURL + "/jobs/search"
	paginatePath = baseURL + "/jobs-guest/jobs/api/seeMoreJobPostings/search"

	// The source serves ten postings per paginated batch, and its visible
	// continuation starts at offset 60 even though the first page is
	// requested at 0. Both constants are the source's indexing, not ours.
	pageStep    = 10
	firstOffset = 60
)

func searchURL(title, city string) string {
	return fmt.Sprintf(
		"%s?keywords=%s&location=%s&trk=public_jobs_jobs-search-bar_search-submit&position=0&pageNum=0",
		searchPath, url.QueryEscape(title), url.QueryEscape(city),
	)
}

func pageURL(title, city string, offset int) string {
	if offset == 0 {
		return searchURL(title, city)
	}
	return fmt.Sprintf(
		"%s?keywords=%s&location=%s&trk=public_jobs_jobs-search-bar_search-submit&position=1&pageNum=0&start=%d",
		paginatePath, url.QueryEscape(title), url.QueryEscape(city), offset,
	)
}
