// Package validation evaluates declarative, per-field rule chains against a
// decoded JSON request body.
//
// Chains for different fields run concurrently and never observe each other;
// the schema joins them and reports every failing field at once.
package validation

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/feedback-portal/portal-api/internal/core/domain"
)

// Schema is the ordered rule set for one endpoint.
type Schema struct {
	chains []*Chain
}

// New builds a schema. Issues are reported in the order chains are given.
func New(chains ...*Chain) *Schema {
	return &Schema{chains: chains}
}

// Fields lists the validated field names in declaration order.
func (s *Schema) Fields() []string {
	out := make([]string, len(s.chains))
	for i, c := range s.chains {
		out[i] = c.field
	}
	return out
}

type outcome struct {
	value   any
	present bool
	failure string
}

// Validate runs every chain against body. On success it returns a copy of body
// with sanitized values applied and leaves body untouched. If any field failed
// it returns a single domain ValidationError with one issue per failing field.
func (s *Schema) Validate(ctx context.Context, body map[string]any) (map[string]any, error) {
	results := make([]outcome, len(s.chains))

	g, gctx := errgroup.WithContext(ctx)
	for i, c := range s.chains {
		raw, present := body[c.field]
		g.Go(func() error {
			v, failure, err := c.run(gctx, raw, present)
			if err != nil {
				return fmt.Errorf("validate %s: %w", c.field, err)
			}
			results[i] = outcome{value: v, present: present, failure: failure}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, domain.Internal(err)
	}

	var issues []domain.Issue
	for i, r := range results {
		if r.failure != "" {
			issues = append(issues, domain.Issue{Field: s.chains[i].field, Message: r.failure})
		}
	}
	if len(issues) > 0 {
		return nil, domain.Validation(issues...)
	}

	sanitized := make(map[string]any, len(body))
	for k, v := range body {
		sanitized[k] = v
	}
	for i, r := range results {
		if r.present {
			sanitized[s.chains[i].field] = r.value
		}
	}
	return sanitized, nil
}
