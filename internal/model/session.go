package model

import "time"

// Session is the client-held proof of authentication. Values are immutable once
// published; writers build a new Session instead of changing fields in place.
type Session struct {
	User      User
	Token     string
	ExpiresAt time.Time
}

// Expired reports whether the session has a known expiry before now.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// WithUser returns a copy of the session carrying a new identity.
func (s Session) WithUser(u User) Session {
	s.User = u
	return s
}
