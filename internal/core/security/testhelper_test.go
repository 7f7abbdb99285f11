package security

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/feedback-portal/portal-api/internal/infrastructure/queue"
)

// newTestHasher returns a minimum-cost hasher backed by a running pool that is
// stopped when the test ends.
func newTestHasher(t *testing.T) *Hasher {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	pool := queue.NewPool(2, zerolog.Nop())
	pool.Start(ctx)
	return NewHasher(4, pool)
}
