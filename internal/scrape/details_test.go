package scrape

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobtrends-engine/internal/domain"
)

func detailHTML(seniority, description string) string {
	return fmt.Sprintf(`<html><body>
		<span class="description__job-criteria-text">%s</span>
		<span class="description__job-criteria-text">Full-time</span>
		<span class="description__job-criteria-text">Engineering</span>
		<span class="description__job-criteria-text">Software Development</span>
		<div class="show-more-less-html__markup">%s</div>
	</body></html>`, seniority, description)
}

func TestEnrichDropsFailuresKeepsOrder(t *testing.T) {
	g := &fakeGetter{
		bodies: map[string]string{
			"https://x/jobs/1": detailHTML("Entry level", "First role"),
			"https://x/jobs/3": "<html><body></body></html>", // nothing extractable
			"https://x/jobs/4": detailHTML("Mid-Senior level", "Fourth role"),
		},
		errs: map[string]error{
			"https://x/jobs/2": errors.New("boom"),
		},
	}

	in := []domain.Posting{
		{Title: domain.Str("A"), JobLink: domain.Str("https://x/jobs/1")},
		{Title: domain.Str("B"), JobLink: domain.Str("https://x/jobs/2")},
		{Title: domain.Str("C")}, // no link
		{Title: domain.Str("D"), JobLink: domain.Str("https://x/jobs/3")},
		{Title: domain.Str("E"), JobLink: domain.Str("https://x/jobs/4")},
	}

	e := NewDetailEnricher(g, nil, 3)
	out := e.Enrich(context.Background(), in)

	require.Len(t, out, 2)
	assert.Equal(t, "A", domain.Deref(out[0].Title))
	assert.Equal(t, "Entry level", domain.Deref(out[0].SeniorityLevel))
	assert.Equal(t, "First role", domain.Deref(out[0].Description))

	assert.Equal(t, "E", domain.Deref(out[1].Title))
	assert.Equal(t, "Mid-Senior level", domain.Deref(out[1].SeniorityLevel))
}

func TestEnrichKeepsDiscoveryFields(t *testing.T) {
	g := &fakeGetter{bodies: map[string]string{
		"https://x/jobs/1": detailHTML("Entry level", "desc"),
	}}

	in := []domain.Posting{{
		Title:    domain.Str("A"),
		Company:  domain.Str("Acme"),
		Location: domain.Str("Ottawa, ON"),
		JobLink:  domain.Str("https://x/jobs/1"),
	}}

	out := NewDetailEnricher(g, nil, 1).Enrich(context.Background(), in)
	require.Len(t, out, 1)
	assert.Equal(t, "Acme", domain.Deref(out[0].Company))
	assert.Equal(t, "Ottawa, ON", domain.Deref(out[0].Location))
}

func TestEnrichEmptyInput(t *testing.T) {
	out := NewDetailEnricher(&fakeGetter{}, nil, 2).Enrich(context.Background(), nil)
	assert.Empty(t, out)
}
