// Package profile fetches public profile metadata from the supported social
// platforms and converts it into a common row representation.
package profile

import (
	"strconv"
	"strings"
)

// Record maps column names to values for one fetched profile. Every record
// carries platform, username and url; optional columns appear only when the
// source platform supplied them.
type Record map[string]string

// Required column names present in every record.
const (
	FieldPlatform = "platform"
	FieldUsername = "username"
	FieldURL      = "url"
)

// FacebookProfile is the typed boundary for Facebook Page metadata.
// Counts are -1 when the page did not expose them.
type FacebookProfile struct {
	Username  string
	Name      string
	Category  string
	URL       string
	About     string
	Website   string
	Email     string
	Phone     string
	City      string
	Followers int64
}

// ToRecord flattens the profile into the common row representation,
// omitting fields the platform did not supply.
func (p *FacebookProfile) ToRecord() Record {
	rec := Record{
		FieldPlatform: "facebook",
		FieldUsername: p.Username,
		FieldURL:      p.URL,
	}
	putString(rec, "full_name", p.Name)
	putString(rec, "category", p.Category)
	putString(rec, "about", p.About)
	putString(rec, "website", p.Website)
	putString(rec, "email", p.Email)
	putString(rec, "phone", p.Phone)
	putString(rec, "city", p.City)
	putCount(rec, "followers", p.Followers)
	return rec
}

// InstagramProfile is the typed boundary for Instagram profile metadata.
// Counts are -1 when the profile did not expose them.
type InstagramProfile struct {
	Username    string
	FullName    string
	URL         string
	Bio         string
	ExternalURL string
	Followers   int64
	Following   int64
	Posts       int64
}

// ToRecord flattens the profile into the common row representation,
// omitting fields the platform did not supply.
func (p *InstagramProfile) ToRecord() Record {
	rec := Record{
		FieldPlatform: "instagram",
		FieldUsername: p.Username,
		FieldURL:      p.URL,
	}
	putString(rec, "full_name", p.FullName)
	putString(rec, "bio", p.Bio)
	putString(rec, "external_url", p.ExternalURL)
	putCount(rec, "followers", p.Followers)
	putCount(rec, "following", p.Following)
	putCount(rec, "posts", p.Posts)
	return rec
}

func putString(rec Record, key, value string) {
	if value != "" {
		rec[key] = value
	}
}

func putCount(rec Record, key string, value int64) {
	if value >= 0 {
		rec[key] = strconv.FormatInt(value, 10)
	}
}

// parseApproxCount converts display counts like "1,234", "10.5K" or "2M"
// into an absolute number. Returns false for anything unparseable.
func parseApproxCount(s string) (int64, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0, false
	}

	multiplier := float64(1)
	switch {
	case strings.HasSuffix(s, "K"), strings.HasSuffix(s, "k"):
		multiplier = 1e3
		s = s[:len(s)-1]
	case strings.HasSuffix(s, "M"), strings.HasSuffix(s, "m"):
		multiplier = 1e6
		s = s[:len(s)-1]
	}

	n, err := strconv.ParseFloat(s, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return int64(n * multiplier), true
}
