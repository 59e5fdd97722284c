package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Layout maps titles and cities onto the data directory:
//
//	<DataDir>/JobData/<title>/<title> in <city>.csv
//	<DataDir>/JobData/<title>/TotalJobs/TotalJobs.csv
type Layout struct {
	DataDir string
}

func (l Layout) JobDataDir() string {
	return filepath.Join(l.DataDir, "JobData")
}

func (l Layout) TitleDir(title string) string {
	return filepath.Join(l.JobDataDir(), title)
}

// PostingsCSV is the per-(title, city) postings table.
func (l Layout) PostingsCSV(title, city string) string {
	return filepath.Join(l.TitleDir(title), fmt.Sprintf("%s in %s.csv", title, city))
}

// SeriesCSV is the long-lived per-title time series.
func (l Layout) SeriesCSV(title string) string {
	return filepath.Join(l.TitleDir(title), "TotalJobs", "TotalJobs.csv")
}

// Reports lists which title datasets exist, for display only.
func (l Layout) Reports() ([]string, error) {
	entries, err := os.ReadDir(l.JobDataDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
