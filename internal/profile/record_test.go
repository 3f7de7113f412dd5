package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFacebookProfile_ToRecord(t *testing.T) {
	prof := &FacebookProfile{
		Username:  "joespizza",
		Name:      "Joe's Pizza",
		Category:  "Pizza place",
		URL:       "https://www.facebook.com/joespizza",
		Followers: 12345,
	}

	rec := prof.ToRecord()
	assert.Equal(t, "facebook", rec[FieldPlatform])
	assert.Equal(t, "joespizza", rec[FieldUsername])
	assert.Equal(t, "https://www.facebook.com/joespizza", rec[FieldURL])
	assert.Equal(t, "Joe's Pizza", rec["full_name"])
	assert.Equal(t, "Pizza place", rec["category"])
	assert.Equal(t, "12345", rec["followers"])

	// Unsupplied optional fields must be absent, not empty.
	assert.NotContains(t, rec, "email")
	assert.NotContains(t, rec, "phone")
	assert.NotContains(t, rec, "website")
}

func TestFacebookProfile_ToRecord_UnknownFollowers(t *testing.T) {
	prof := &FacebookProfile{Username: "joespizza", URL: "u", Followers: -1}
	rec := prof.ToRecord()
	assert.NotContains(t, rec, "followers")
}

func TestInstagramProfile_ToRecord(t *testing.T) {
	prof := &InstagramProfile{
		Username:  "joespizza",
		FullName:  "Joe's Pizza",
		URL:       "https://www.instagram.com/joespizza/",
		Bio:       "Best slice in town",
		Followers: 1234,
		Following: 56,
		Posts:     789,
	}

	rec := prof.ToRecord()
	assert.Equal(t, "instagram", rec[FieldPlatform])
	assert.Equal(t, "1234", rec["followers"])
	assert.Equal(t, "56", rec["following"])
	assert.Equal(t, "789", rec["posts"])
	assert.Equal(t, "Best slice in town", rec["bio"])
	assert.NotContains(t, rec, "external_url")
}

func TestParseApproxCount(t *testing.T) {
	tests := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"1,234", 1234, true},
		{"789", 789, true},
		{"10.5K", 10500, true},
		{"2M", 2000000, true},
		{"1.2m", 1200000, true},
		{"", 0, false},
		{"lots", 0, false},
		{"-5", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseApproxCount(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		if ok {
			assert.Equal(t, tt.want, got, tt.in)
		}
	}
}
