package domain

import (
	"context"
	"time"
)

// RoleOrganizer is the role carried by tokens that may manage events.
const RoleOrganizer = "organizer"

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (hash string, err error)
	Compare(hash, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated principal.
type TokenIssuer interface {
	Issue(subject, email string, roles []string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated subject.
type TokenVerifier interface {
	Verify(token string) (subject string, err error)
}

// AuthService authenticates organizers.
type AuthService interface {
	Login(ctx context.Context, email, password string) (token string, err error)
}
