package domain

import "time"

// SessionToken is the bearer token carried by the platform session cookie.
type SessionToken struct {
	Raw       string
	Username  string
	ExpiresAt time.Time
}

func (t SessionToken) Expired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && !now.Before(t.ExpiresAt)
}
