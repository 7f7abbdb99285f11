package security

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/feedback-portal/portal-api/internal/core/domain"
	"github.com/feedback-portal/portal-api/internal/pkg/metrics"
)

// DefaultCost matches the cost the portal has always stored hashes with.
const DefaultCost = 10

// Executor runs fn off the calling goroutine and waits for it to finish.
type Executor interface {
	Do(ctx context.Context, fn func()) error
}

// Hasher hashes and verifies passwords using bcrypt. The bcrypt hash encodes its
// own cost and salt, so changing the cost never invalidates stored hashes.
// Callers must not log or persist plaintext passwords.
type Hasher struct {
	cost int
	exec Executor
}

// NewHasher returns a Hasher with the given bcrypt cost, clamped to bcrypt's
// accepted range, that runs its work on exec.
func NewHasher(cost int, exec Executor) *Hasher {
	if cost <= 0 {
		cost = DefaultCost
	}
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	return &Hasher{cost: cost, exec: exec}
}

// Cost returns the effective bcrypt cost.
func (h *Hasher) Cost() int { return h.cost }

// Hash produces a freshly salted bcrypt hash of plaintext.
func (h *Hasher) Hash(ctx context.Context, plaintext string) (string, error) {
	start := time.Now()
	defer func() { metrics.PasswordHashDuration.WithLabelValues("hash").Observe(time.Since(start).Seconds()) }()

	var (
		out  []byte
		herr error
	)
	if err := h.exec.Do(ctx, func() {
		out, herr = bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	}); err != nil {
		return "", domain.Internal(fmt.Errorf("hash password: %w", err))
	}
	if herr != nil {
		return "", domain.Internal(fmt.Errorf("hash password: %w", herr))
	}
	return string(out), nil
}

// Verify compares plaintext against a stored hash in constant time. A mismatch
// is (false, nil); only a malformed stored hash or a scheduling failure is an error.
func (h *Hasher) Verify(ctx context.Context, plaintext, hashed string) (bool, error) {
	start := time.Now()
	defer func() { metrics.PasswordHashDuration.WithLabelValues("verify").Observe(time.Since(start).Seconds()) }()

	var cerr error
	if err := h.exec.Do(ctx, func() {
		cerr = bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext))
	}); err != nil {
		return false, domain.Internal(fmt.Errorf("verify password: %w", err))
	}
	switch {
	case cerr == nil:
		return true, nil
	case errors.Is(cerr, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, domain.Internal(fmt.Errorf("verify password: %w", cerr))
	}
}
