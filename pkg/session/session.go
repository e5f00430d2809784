// Package session defines the login session store used by the HTTP API.
package session

import (
	"context"
	"errors"
	"time"
)

// Store keeps a mapping from session id to user name for a limited time.
type Store interface {
	Create(ctx context.Context, user string, ttl time.Duration) (string, error)
	Lookup(ctx context.Context, id string) (string, error)
}

// ErrNotFound indicates the session does not exist or has expired.
var ErrNotFound = errors.New("session not found")

// Key returns the storage key for a session id.
func Key(id string) string {
	return "session:" + id
}
