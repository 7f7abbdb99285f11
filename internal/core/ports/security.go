package ports

import (
	"context"

	"github.com/feedback-portal/portal-api/internal/core/domain"
)

// PasswordHasher computes and checks salted one-way password hashes.
// Both calls are CPU bound and may block until a worker is free.
type PasswordHasher interface {
	Hash(ctx context.Context, plaintext string) (string, error)
	Verify(ctx context.Context, plaintext, hashed string) (bool, error)
}

// TokenIssuer signs identity claims into bearer tokens.
type TokenIssuer interface {
	Issue(user *domain.User) (string, error)
}

// TokenVerifier checks a bearer token and returns its claims.
// Every failure is a domain.KindUnauthorized error.
type TokenVerifier interface {
	Verify(token string) (*domain.Claims, error)
}
