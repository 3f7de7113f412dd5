// Package profile - cookies.go loads Netscape-format cookie files, the
// format browser cookie exporters produce for Facebook.
package profile

import (
	"fmt"
	"net/http"
	"os"
	"strings"
)

// httpOnlyPrefix marks cookie lines exported with the HttpOnly flag. The
// prefix is part of the domain field and must be stripped.
const httpOnlyPrefix = "#HttpOnly_"

// LoadNetscapeCookies parses a cookies.txt file into HTTP cookies.
// Comment and blank lines are skipped; malformed lines are an error so a
// wrong file path or format fails at startup, not mid-run.
func LoadNetscapeCookies(path string) ([]*http.Cookie, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read cookie file %s: %w", path, err)
	}

	var cookies []*http.Cookie
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "#") && !strings.HasPrefix(trimmed, httpOnlyPrefix) {
			continue
		}
		line = strings.TrimPrefix(line, httpOnlyPrefix)

		// domain, include-subdomains, path, secure, expiry, name, value
		fields := strings.Split(line, "\t")
		if len(fields) < 7 {
			return nil, fmt.Errorf("malformed cookie line %d in %s", i+1, path)
		}
		cookies = append(cookies, &http.Cookie{
			Domain: fields[0],
			Path:   fields[2],
			Secure: strings.EqualFold(fields[3], "TRUE"),
			Name:   fields[5],
			Value:  strings.TrimSpace(fields[6]),
		})
	}
	return cookies, nil
}
