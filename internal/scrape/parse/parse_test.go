package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobtrends-engine/internal/domain"
)

const searchPage = `<html><body>
	<label for="f_TPR-0">Any time (1234)</label>
	<label for="f_TPR-1">Past month (310)</label>
	<label for="f_TPR-2">Past week (88)</label>
	<label for="f_TPR-3">Past 24 hours (12)</label>

	<div class="job-search-card">
		<a class="base-card__full-link" href="https://example.com/jobs/view/1"></a>
		<div class="base-search-card__info">
			<h3 class="base-search-card__title">
				Software Engineer
			</h3>
			<a class="hidden-nested-link">Shopify</a>
			<span class="job-search-card__location">Ottawa, ON</span>
			<time class="job-search-card__listdate">3 days ago</time>
		</div>
	</div>
	<div class="job-search-card">
		<a class="base-card__full-link" href="https://example.com/jobs/view/2"></a>
		<div class="base-search-card__info">
			<h3 class="base-search-card__title">Backend Developer</h3>
			<a class="hidden-nested-link">Acme</a>
			<span class="job-search-card__location">Toronto, ON</span>
			<time class="job-search-card__listdate--new">1 hour ago</time>
		</div>
	</div>
</body></html>`

func TestJobs(t *testing.T) {
	jobs, err := Jobs(searchPage)
	require.NoError(t, err)
	require.Len(t, jobs, 2)

	assert.Equal(t, "Software Engineer", domain.Deref(jobs[0].Title))
	assert.Equal(t, "Shopify", domain.Deref(jobs[0].Company))
	assert.Equal(t, "Ottawa, ON", domain.Deref(jobs[0].Location))
	assert.Equal(t, "3 days ago", domain.Deref(jobs[0].DatePosted))
	assert.Equal(t, "https://example.com/jobs/view/1", domain.Deref(jobs[0].JobLink))

	// reposted jobs carry the --new class on the time tag
	assert.Equal(t, "1 hour ago", domain.Deref(jobs[1].DatePosted))
	assert.Nil(t, jobs[1].Description)
}

func TestJobsEmptyPage(t *testing.T) {
	jobs, err := Jobs("<html><body><p>no results</p></body></html>")
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestCounts(t *testing.T) {
	got, err := Counts(searchPage)
	require.NoError(t, err)

	assert.Equal(t, 1234, got.Total)
	assert.Equal(t, 310, got.PastMonth)
	assert.Equal(t, 88, got.PastWeek)
	assert.Equal(t, 12, got.Past24h)
}

func TestCountsMissingLabels(t *testing.T) {
	got, err := Counts("<html><body></body></html>")
	require.NoError(t, err)
	assert.Equal(t, domain.Counts{}, got)
}

const postingPage = `<html><head>
	<meta name="description" content="Posted 11:30 AM. We are hiring. See this and similar jobs.">
</head><body>
	<span class="description__job-criteria-text">Mid-Senior level</span>
	<span class="description__job-criteria-text">Full-time</span>
	<span class="description__job-criteria-text">Engineering and IT</span>
	<span class="description__job-criteria-text">Software Development</span>
	<figcaption class="num-applicants__caption">Over 200 applicants</figcaption>
	<div class="show-more-less-html__markup">
		Build and ship backend services.
		Own reliability.
	</div>
	<a class="topcard__org-name-link" data-tracking-control-name="public_jobs_topcard-org-name"
	   href="https://example.com/company/acme">Acme</a>
</body></html>`

func TestJobDetails(t *testing.T) {
	d, err := JobDetails(postingPage)
	require.NoError(t, err)

	assert.Equal(t, "Mid-Senior level", domain.Deref(d.SeniorityLevel))
	assert.Equal(t, "Full-time", domain.Deref(d.EmploymentType))
	assert.Equal(t, "Engineering and IT", domain.Deref(d.JobFunction))
	assert.Equal(t, "Software Development", domain.Deref(d.Industries))
	assert.Equal(t, "Over 200 applicants", domain.Deref(d.Applicants))
	assert.Equal(t, "11:30 AM", domain.Deref(d.TimePosted))
	assert.Equal(t, "https://example.com/company/acme", domain.Deref(d.CompanyURL))
	require.NotNil(t, d.Description)
	assert.NotContains(t, *d.Description, "\n")
}

func TestJobDetailsBarePage(t *testing.T) {
	d, err := JobDetails("<html><body></body></html>")
	require.NoError(t, err)
	assert.Equal(t, domain.Details{}, d)
}

const companyPage = `<html><body>
	<div class="mb-2"><dt>Company size</dt><dd>1,001-5,000 employees</dd></div>
	<div class="mb-2"><dt>Founded</dt><dd>2004</dd></div>
	<div class="mb-2"><dt>Type</dt><dd>Public Company</dd></div>
	<div class="mb-2"><dt>Industry</dt><dd>Software Development</dd></div>
	<div class="mb-2"><dt>Headquarters</dt><dd>Ottawa, Ontario</dd></div>
	<div class="mb-2"><dt>Website</dt><dd>https://acme.example</dd></div>
</body></html>`

func TestCompany(t *testing.T) {
	c, err := Company(companyPage)
	require.NoError(t, err)

	assert.Equal(t, "1,001-5,000 employees", domain.Deref(c.CompanySize))
	assert.Equal(t, "2004", domain.Deref(c.Founded))
	assert.Equal(t, "Public Company", domain.Deref(c.CompanyType))
	assert.Equal(t, "Software Development", domain.Deref(c.Industry))
	assert.Equal(t, "Ottawa, Ontario", domain.Deref(c.Headquarters))
}

func TestCompanyBarePage(t *testing.T) {
	c, err := Company("<html><body></body></html>")
	require.NoError(t, err)
	assert.True(t, c.IsZero())
}
