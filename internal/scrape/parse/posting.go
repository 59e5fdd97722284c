package parse

import (
	"regexp"
	"strings"

	"jobtrends-engine/internal/domain"
)

var postedAtRe = regexp.MustCompile(`Posted\s([\d:AMP\s]+)\.\s`)

// JobDetails extracts the secondary attributes from an individual posting
// page. Every field is optional.
func JobDetails(html string) (domain.Details, error) {
	var d domain.Details

	doc, err := docFrom(html)
	if err != nil {
		return d, err
	}

	// the criteria list is positional: seniority, employment type,
	// function, industries
	criteria := doc.Find("span.description__job-criteria-text")
	get := func(i int) *string {
		if i >= criteria.Length() {
			return nil
		}
		return textOf(criteria.Eq(i))
	}
	d.SeniorityLevel = get(0)
	d.EmploymentType = get(1)
	d.JobFunction = get(2)
	d.Industries = get(3)

	d.Applicants = textOf(doc.Find("span.num-applicants__caption"))
	if d.Applicants == nil {
		d.Applicants = textOf(doc.Find("figcaption.num-applicants__caption"))
	}

	// exact post time hides in the meta description
	if content := attrOf(doc.Find(`meta[name="description"]`), "content"); content != nil {
		if m := postedAtRe.FindStringSubmatch(*content); m != nil {
			t := strings.TrimSpace(m[1])
			d.TimePosted = &t
		}
	}

	if sel := doc.Find("div.show-more-less-html__markup"); sel.Length() > 0 {
		text := strings.ReplaceAll(sel.First().Text(), "\n", "")
		text = strings.TrimSpace(text)
		if text != "" {
			d.Description = &text
		}
	}

	d.CompanyURL = attrOf(
		doc.Find(`a.topcard__org-name-link[data-tracking-control-name="public_jobs_topcard-org-name"]`),
		"href",
	)

	return d, nil
}
