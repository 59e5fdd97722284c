package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"jobtrends-engine/internal/domain"
)

// GetCompanyProfile returns the cached profile for a company page URL.
// ok is false on a cache miss.
func GetCompanyProfile(ctx context.Context, db *sql.DB, companyURL string) (domain.CompanyProfile, bool, error) {
	key := normalizeURLKey(companyURL)
	if key == "" {
		return domain.CompanyProfile{}, false, nil
	}

	var size, founded, ctype, industry, hq sql.NullString
	err := db.QueryRowContext(ctx, `
SELECT company_size, founded, company_type, industry, headquarters
FROM company_profiles WHERE company_url = ? LIMIT 1;`,
		key,
	).Scan(&size, &founded, &ctype, &industry, &hq)

	if err == sql.ErrNoRows {
		return domain.CompanyProfile{}, false, nil
	}
	if err != nil {
		return domain.CompanyProfile{}, false, err
	}

	return domain.CompanyProfile{
		CompanySize:  fromNull(size),
		Founded:      fromNull(founded),
		CompanyType:  fromNull(ctype),
		Industry:     fromNull(industry),
		Headquarters: fromNull(hq),
	}, true, nil
}

func UpsertCompanyProfile(ctx context.Context, db *sql.DB, companyURL string, c domain.CompanyProfile) error {
	key := normalizeURLKey(companyURL)
	if key == "" {
		return nil
	}

	_, err := db.ExecContext(ctx, `
INSERT INTO company_profiles(company_url, company_size, founded, company_type, industry, headquarters, fetched_at)
VALUES(?,?,?,?,?,?,?)
ON CONFLICT(company_url) DO UPDATE SET
  company_size = excluded.company_size,
  founded = excluded.founded,
  company_type = excluded.company_type,
  industry = excluded.industry,
  headquarters = excluded.headquarters,
  fetched_at = excluded.fetched_at;
`,
		key,
		toNull(c.CompanySize),
		toNull(c.Founded),
		toNull(c.CompanyType),
		toNull(c.Industry),
		toNull(c.Headquarters),
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

func normalizeURLKey(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "/")
	return strings.ToLower(s)
}

func toNull(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNull(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
