// Package parse turns raw page HTML into partially-populated records.
//
// Selectors here are deliberate couplings to the source's markup and are
// expected to break when it changes. Every extractor is optional: a missing
// element becomes a nil field, never an error, so callers only ever see
// "nothing extracted".
package parse

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

func docFrom(html string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

// textOf returns the trimmed text of the first match, or nil when the
// selection is empty or blank.
func textOf(sel *goquery.Selection) *string {
	if sel.Length() == 0 {
		return nil
	}
	t := cleanText(sel.First().Text())
	if t == "" {
		return nil
	}
	return &t
}

func attrOf(sel *goquery.Selection, name string) *string {
	if sel.Length() == 0 {
		return nil
	}
	v, ok := sel.First().Attr(name)
	v = strings.TrimSpace(v)
	if !ok || v == "" {
		return nil
	}
	return &v
}

func cleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.Join(strings.Fields(s), " ")
}
