package domain

// Posting is one job posting, filled in progressively: discovery sets the
// first five fields, the posting-page pass adds detail fields, the
// company-page pass adds the Company* block. Absent fields stay nil.
type Posting struct {
	Title      *string
	Company    *string
	Location   *string
	DatePosted *string
	JobLink    *string

	Description    *string
	SeniorityLevel *string
	EmploymentType *string
	JobFunction    *string
	Industries     *string
	Applicants     *string
	CompanyURL     *string
	TimePosted     *string

	CompanySize  *string
	Founded      *string
	CompanyType  *string
	Industry     *string
	Headquarters *string
}

// IsEmpty reports whether none of the essential fields were extracted.
// Used as the "fetch produced nothing" sentinel by pagination and enrichment.
func (p Posting) IsEmpty() bool {
	return p.Title == nil &&
		p.Company == nil &&
		p.Location == nil &&
		p.DatePosted == nil &&
		p.JobLink == nil &&
		p.Description == nil
}

// Details holds the fields extracted from an individual posting page.
type Details struct {
	Description    *string
	TimePosted     *string
	SeniorityLevel *string
	EmploymentType *string
	JobFunction    *string
	Industries     *string
	Applicants     *string
	CompanyURL     *string
}

// CompanyProfile holds the fields extracted from a company page.
type CompanyProfile struct {
	CompanySize  *string
	Founded      *string
	CompanyType  *string
	Industry     *string
	Headquarters *string
}

func (c CompanyProfile) IsZero() bool {
	return c.CompanySize == nil && c.Founded == nil && c.CompanyType == nil &&
		c.Industry == nil && c.Headquarters == nil
}

// WithDetails returns a copy of p with the posting-page fields merged in.
// Previously set fields are never cleared.
func (p Posting) WithDetails(d Details) Posting {
	out := p
	out.Description = pick(d.Description, p.Description)
	out.TimePosted = pick(d.TimePosted, p.TimePosted)
	out.SeniorityLevel = pick(d.SeniorityLevel, p.SeniorityLevel)
	out.EmploymentType = pick(d.EmploymentType, p.EmploymentType)
	out.JobFunction = pick(d.JobFunction, p.JobFunction)
	out.Industries = pick(d.Industries, p.Industries)
	out.Applicants = pick(d.Applicants, p.Applicants)
	out.CompanyURL = pick(d.CompanyURL, p.CompanyURL)
	return out
}

// WithCompany returns a copy of p with the company-page fields merged in.
func (p Posting) WithCompany(c CompanyProfile) Posting {
	out := p
	out.CompanySize = pick(c.CompanySize, p.CompanySize)
	out.Founded = pick(c.Founded, p.Founded)
	out.CompanyType = pick(c.CompanyType, p.CompanyType)
	out.Industry = pick(c.Industry, p.Industry)
	out.Headquarters = pick(c.Headquarters, p.Headquarters)
	return out
}

func pick(next, prev *string) *string {
	if next != nil {
		return next
	}
	return prev
}

// Str boxes a string. Handy for building postings from literals.
func Str(s string) *string { return &s }

// Deref returns the value or "" when absent.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
