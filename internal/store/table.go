package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"jobtrends-engine/internal/domain"
)

var ErrNotFound = errors.New("table not found")

// PostingColumns is the on-disk schema for a (title, city) postings file.
// Absent fields are written as empty cells and read back as nil.
var PostingColumns = []string{
	"title", "company", "location", "date_posted", "job_link",
	"description", "seniority_level", "employment_type", "job_function",
	"industries", "applicants", "company_url", "time_posted",
	"company_size", "founded", "company_type", "industry", "headquarters",
}

// SavePostings rewrites the whole table at path (overwrite, not append).
// Each pipeline stage flushes the full table at its boundary.
func SavePostings(path string, ps []domain.Posting) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(PostingColumns); err != nil {
		return err
	}
	for _, p := range ps {
		if err := w.Write(postingRow(p)); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Sync()
}

// LoadPostings reads a postings table back. A missing file is ErrNotFound.
func LoadPostings(path string) ([]domain.Posting, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(PostingColumns)

	recs, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(recs) == 0 {
		return nil, nil
	}

	var out []domain.Posting
	for _, rec := range recs[1:] { // skip header
		out = append(out, postingFromRow(rec))
	}
	return out, nil
}

func postingRow(p domain.Posting) []string {
	cells := []*string{
		p.Title, p.Company, p.Location, p.DatePosted, p.JobLink,
		p.Description, p.SeniorityLevel, p.EmploymentType, p.JobFunction,
		p.Industries, p.Applicants, p.CompanyURL, p.TimePosted,
		p.CompanySize, p.Founded, p.CompanyType, p.Industry, p.Headquarters,
	}
	row := make([]string, len(cells))
	for i, c := range cells {
		row[i] = domain.Deref(c)
	}
	return row
}

func postingFromRow(rec []string) domain.Posting {
	cell := func(i int) *string {
		if rec[i] == "" {
			return nil
		}
		s := rec[i]
		return &s
	}
	return domain.Posting{
		Title:          cell(0),
		Company:        cell(1),
		Location:       cell(2),
		DatePosted:     cell(3),
		JobLink:        cell(4),
		Description:    cell(5),
		SeniorityLevel: cell(6),
		EmploymentType: cell(7),
		JobFunction:    cell(8),
		Industries:     cell(9),
		Applicants:     cell(10),
		CompanyURL:     cell(11),
		TimePosted:     cell(12),
		CompanySize:    cell(13),
		Founded:        cell(14),
		CompanyType:    cell(15),
		Industry:       cell(16),
		Headquarters:   cell(17),
	}
}

// SeriesRow is one dated job-count sample for a city.
type SeriesRow struct {
	City      string `json:"city"`
	Jobs24h   int    `json:"jobs_24h"`
	JobsWeek  int    `json:"jobs_week"`
	JobsMonth int    `json:"jobs_month"`
	JobsTotal int    `json:"jobs_total"`
	Date      string `json:"date"` // fixed-width YYYY-MM-DD
}

var seriesColumns = []string{"City", "24h_Jobs", "Week_Jobs", "Month_Jobs", "Total_Jobs", "Date"}

// SaveSeries rewrites a time-series table at path.
func SaveSeries(path string, rows []SeriesRow) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(seriesColumns); err != nil {
		return err
	}
	for _, row := range rows {
		rec := []string{
			row.City,
			strconv.Itoa(row.Jobs24h),
			strconv.Itoa(row.JobsWeek),
			strconv.Itoa(row.JobsMonth),
			strconv.Itoa(row.JobsTotal),
			row.Date,
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Sync()
}

// LoadSeries reads a time-series table. A missing file is ErrNotFound so the
// first run of a title starts an empty series.
func LoadSeries(path string) ([]SeriesRow, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(seriesColumns)

	recs, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(recs) == 0 {
		return nil, nil
	}

	var out []SeriesRow
	for _, rec := range recs[1:] {
		row := SeriesRow{City: rec[0], Date: rec[5]}
		row.Jobs24h, _ = strconv.Atoi(rec[1])
		row.JobsWeek, _ = strconv.Atoi(rec[2])
		row.JobsMonth, _ = strconv.Atoi(rec[3])
		row.JobsTotal, _ = strconv.Atoi(rec[4])
		out = append(out, row)
	}
	return out, nil
}
