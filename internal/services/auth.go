package services

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"eventbooking/internal/domain"
)

// OrganizerCredentials identifies the single organizer account allowed to manage events.
type OrganizerCredentials struct {
	Email        string
	PasswordHash string // bcrypt
}

type authService struct {
	organizer OrganizerCredentials
	hasher    domain.PasswordHasher
	issuer    domain.TokenIssuer
	jwtExpiry time.Duration
}

// NewAuthService creates an AuthService that checks logins against the configured organizer.
func NewAuthService(organizer OrganizerCredentials, hasher domain.PasswordHasher, issuer domain.TokenIssuer, jwtExpiry time.Duration) domain.AuthService {
	organizer.Email = strings.TrimSpace(strings.ToLower(organizer.Email))
	return &authService{
		organizer: organizer,
		hasher:    hasher,
		issuer:    issuer,
		jwtExpiry: jwtExpiry,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	if s.organizer.Email == "" || s.organizer.PasswordHash == "" {
		return "", domain.ErrInvalidCredentials
	}
	email = strings.TrimSpace(strings.ToLower(email))
	if subtle.ConstantTimeCompare([]byte(email), []byte(s.organizer.Email)) != 1 {
		return "", domain.ErrInvalidCredentials
	}
	if err := s.hasher.Compare(s.organizer.PasswordHash, password); err != nil {
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(email, email, []string{domain.RoleOrganizer}, s.jwtExpiry)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}
