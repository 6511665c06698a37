// Package auth provides bearer-token issuing and verification plus the
// policy deciding which requests must authenticate.
package auth

import (
	"context"
	"time"
)

// TokenLifetime is the validity window for issued tokens.
const TokenLifetime = 12 * time.Hour

// TokenService defines operations for issuing and validating bearer tokens.
// No session state is kept server-side; a token is trusted purely on its
// signature and expiry.
type TokenService interface {
	// GenerateToken creates a signed token for the given subject.
	// Returns the token string or an error if signing fails.
	GenerateToken(ctx context.Context, subject string) (string, error)

	// ValidateToken validates the provided token string and extracts the
	// claims. Returns ErrExpiredToken if the token's expiry has passed and
	// ErrInvalidToken for a malformed token or bad signature.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the decoded, verified payload of a token.
type Claims struct {
	// Subject is the login username the token was issued for. It is not
	// validated beyond non-emptiness at login time.
	Subject string

	// Standard registered JWT claims
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
}
