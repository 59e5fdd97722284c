package parse

import (
	"regexp"
	"strconv"

	"github.com/PuerkitoBio/goquery"

	"jobtrends-engine/internal/domain"
)

var numRe = regexp.MustCompile(`\d+`)

// Jobs extracts the postings from a search-results page. Only the discovery
// fields are populated. A page with no job cards yields an empty slice.
func Jobs(html string) ([]domain.Posting, error) {
	doc, err := docFrom(html)
	if err != nil {
		return nil, err
	}

	cards := doc.Find("div.base-search-card__info")
	links := doc.Find("div.job-search-card a.base-card__full-link")

	var out []domain.Posting
	cards.Each(func(i int, card *goquery.Selection) {
		p := domain.Posting{
			Title:    textOf(card.Find("h3.base-search-card__title")),
			Company:  textOf(card.Find("a.hidden-nested-link")),
			Location: textOf(card.Find("span.job-search-card__location")),
		}

		// freshly reposted jobs carry a different class on the <time> tag
		if d := textOf(card.Find("time.job-search-card__listdate")); d != nil {
			p.DatePosted = d
		} else {
			p.DatePosted = textOf(card.Find("time.job-search-card__listdate--new"))
		}

		if i < links.Length() {
			p.JobLink = attrOf(links.Eq(i), "href")
		}

		out = append(out, p)
	})

	return out, nil
}

// Counts extracts the total/month/week/24h job counts from the search page's
// date-filter labels. Missing labels count as zero.
func Counts(html string) (domain.Counts, error) {
	doc, err := docFrom(html)
	if err != nil {
		return domain.Counts{}, err
	}

	count := func(forAttr string) int {
		lbl := doc.Find(`label[for="` + forAttr + `"]`)
		if lbl.Length() == 0 {
			return 0
		}
		// the count is the last number in the label text
		nums := numRe.FindAllString(cleanText(lbl.First().Text()), -1)
		if len(nums) == 0 {
			return 0
		}
		n, _ := strconv.Atoi(nums[len(nums)-1])
		return n
	}

	return domain.Counts{
		Total:     count("f_TPR-0"),
		PastMonth: count("f_TPR-1"),
		PastWeek:  count("f_TPR-2"),
		Past24h:   count("f_TPR-3"),
	}, nil
}
