// Package session provides server-side session storage for cookie-based
// authentication. Sessions are opaque random IDs mapped to the logged-in
// user's principal; destroying the session invalidates the cookie
// immediately, which a signed stateless token could not do.
package session

import (
	"context"
	"time"

	"github.com/arachchispices/spicestore/internal/apiserver/database"
)

// Principal is the identity snapshot stored against a session ID.
type Principal struct {
	UserID   int64         `json:"user_id"`
	Username string        `json:"username"`
	Email    string        `json:"email"`
	Role     database.Role `json:"role"`
}

// IsAdmin reports whether the principal holds the admin role.
func (p *Principal) IsAdmin() bool {
	return p.Role == database.RoleAdmin
}

// Store persists sessions with a TTL.
type Store interface {
	// Create stores the principal and returns a new opaque session ID.
	Create(ctx context.Context, p *Principal, ttl time.Duration) (string, error)
	// Get returns the principal for a session ID, or ErrNoSession when the
	// session is missing or expired.
	Get(ctx context.Context, id string) (*Principal, error)
	// Delete removes a session. Deleting a missing session is not an error.
	Delete(ctx context.Context, id string) error
}
