package parse

import (
	"github.com/PuerkitoBio/goquery"

	"jobtrends-engine/internal/domain"
)

// Company extracts the employer profile from a company page. The about
// section is a list of dt/dd pairs; keys are matched by their visible label.
func Company(html string) (domain.CompanyProfile, error) {
	var c domain.CompanyProfile

	doc, err := docFrom(html)
	if err != nil {
		return c, err
	}

	doc.Find("div.mb-2").Each(func(_ int, row *goquery.Selection) {
		key := textOf(row.Find("dt"))
		val := textOf(row.Find("dd"))
		if key == nil || val == nil {
			return
		}

		switch *key {
		case "Company size":
			c.CompanySize = val
		case "Founded":
			c.Founded = val
		case "Type":
			c.CompanyType = val
		case "Industry":
			c.Industry = val
		case "Headquarters":
			c.Headquarters = val
		}
	})

	return c, nil
}
