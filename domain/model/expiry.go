package model

import (
	"errors"
	"time"
)

// ErrEntryExpired is returned by cache backends asked to store an entry
// whose expiry has already passed.
var ErrEntryExpired = errors.New("cache entry already expired")

// Expiry describes when a cache entry lapses, either relative (TTL) or
// absolute (At). When At is set it takes precedence.
type Expiry struct {
	TTL time.Duration
	At  time.Time
}

// ExpireIn returns a relative expiry.
func ExpireIn(ttl time.Duration) Expiry {
	return Expiry{TTL: ttl}
}

// ExpireAt returns an absolute expiry.
func ExpireAt(t time.Time) Expiry {
	return Expiry{At: t}
}

// IsZero reports whether no expiry was configured.
func (e Expiry) IsZero() bool {
	return e.TTL <= 0 && e.At.IsZero()
}

// Deadline returns the absolute expiry time relative to now.
func (e Expiry) Deadline(now time.Time) time.Time {
	if !e.At.IsZero() {
		return e.At
	}
	return now.Add(e.TTL)
}

// Remaining returns the time left before expiry relative to now. Backends
// refuse entries whose remaining time is not positive with ErrEntryExpired.
func (e Expiry) Remaining(now time.Time) time.Duration {
	if !e.At.IsZero() {
		return e.At.Sub(now)
	}
	return e.TTL
}
