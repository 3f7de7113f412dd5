package profile

import (
	"errors"
	"fmt"

	"github.com/jonathan/social-scout/internal/query"
)

// FetchError represents a failed profile fetch for one candidate. The
// pipeline logs it and continues with the remaining candidates.
type FetchError struct {
	Platform    query.Platform
	Handle      string
	Message     string
	Cause       error
	RateLimited bool
}

func (e *FetchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s fetch failed for %q: %s: %v", e.Platform, e.Handle, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s fetch failed for %q: %s", e.Platform, e.Handle, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// IsRateLimited reports whether err is a rate-limit fetch failure.
func IsRateLimited(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.RateLimited
}
