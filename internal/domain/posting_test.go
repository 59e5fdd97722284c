package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, Posting{}.IsEmpty())

	// non-essential fields alone still count as empty
	assert.True(t, Posting{SeniorityLevel: Str("Entry level")}.IsEmpty())

	assert.False(t, Posting{Title: Str("Software Engineer")}.IsEmpty())
	assert.False(t, Posting{Description: Str("We build things.")}.IsEmpty())
}

func TestWithDetailsNeverClearsExistingFields(t *testing.T) {
	p := Posting{
		Title:      Str("Software Engineer"),
		Applicants: Str("12 applicants"),
	}

	got := p.WithDetails(Details{
		Description:    Str("desc"),
		SeniorityLevel: Str("Mid-Senior level"),
	})

	assert.Equal(t, "desc", Deref(got.Description))
	assert.Equal(t, "Mid-Senior level", Deref(got.SeniorityLevel))
	assert.Equal(t, "12 applicants", Deref(got.Applicants), "absent detail must not clear prior value")
	assert.Equal(t, "Software Engineer", Deref(got.Title))

	// the receiver is untouched
	assert.Nil(t, p.Description)
}

func TestWithCompany(t *testing.T) {
	p := Posting{Title: Str("SWE")}
	got := p.WithCompany(CompanyProfile{
		CompanySize: Str("201-500 employees"),
		Founded:     Str("2011"),
	})

	assert.Equal(t, "201-500 employees", Deref(got.CompanySize))
	assert.Equal(t, "2011", Deref(got.Founded))
	assert.Nil(t, got.Headquarters)
}

func TestCompanyProfileIsZero(t *testing.T) {
	assert.True(t, CompanyProfile{}.IsZero())
	assert.False(t, CompanyProfile{Industry: Str("Software Development")}.IsZero())
}

func TestDeref(t *testing.T) {
	assert.Equal(t, "", Deref(nil))
	assert.Equal(t, "x", Deref(Str("x")))
}
