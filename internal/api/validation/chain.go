package validation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// formats backs the string format rules. A Validate instance is safe for
// concurrent use once configured.
var formats = validator.New()

// Failure is the error a rule returns to report a field issue. Any other error
// returned from a rule is treated as an infrastructure failure.
type Failure struct {
	Message string
}

func (f *Failure) Error() string { return f.Message }

// Fail builds a Failure with the given message.
func Fail(msg string) error { return &Failure{Message: msg} }

// Failf builds a Failure with a formatted message.
func Failf(format string, args ...any) error { return &Failure{Message: fmt.Sprintf(format, args...)} }

// step checks and optionally transforms a value. Sanitizers never fail.
type step func(ctx context.Context, v any) (any, error)

// Chain is the ordered list of rules applied to one field. Evaluation stops at
// the first failing rule.
type Chain struct {
	field    string
	optional bool
	steps    []step
}

// Field starts a chain for the named body field.
func Field(name string) *Chain {
	return &Chain{field: name}
}

// Name returns the field the chain validates.
func (c *Chain) Name() string { return c.field }

// Optional skips the whole chain when the field is absent from the body.
// An explicit null is still validated.
func (c *Chain) Optional() *Chain {
	c.optional = true
	return c
}

// Trim strips surrounding whitespace from string values.
func (c *Chain) Trim() *Chain {
	return c.add(func(_ context.Context, v any) (any, error) {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s), nil
		}
		return v, nil
	})
}

// Required fails when the value is missing, null or an empty string.
func (c *Chain) Required(msg string) *Chain {
	return c.add(func(_ context.Context, v any) (any, error) {
		if v == nil {
			return nil, Fail(msg)
		}
		if s, ok := v.(string); ok && s == "" {
			return nil, Fail(msg)
		}
		return v, nil
	})
}

// String fails unless the value is a JSON string.
func (c *Chain) String(msg string) *Chain {
	return c.add(func(_ context.Context, v any) (any, error) {
		if _, ok := v.(string); !ok {
			return nil, Fail(msg)
		}
		return v, nil
	})
}

// Bool accepts JSON booleans and the strings "true", "false", "1" and "0",
// normalising them to a bool.
func (c *Chain) Bool(msg string) *Chain {
	return c.add(func(_ context.Context, v any) (any, error) {
		switch t := v.(type) {
		case bool:
			return t, nil
		case string:
			switch t {
			case "true", "1":
				return true, nil
			case "false", "0":
				return false, nil
			}
		}
		return nil, Fail(msg)
	})
}

// MinLen fails unless the value is a string of at least n characters.
func (c *Chain) MinLen(n int, msg string) *Chain {
	return c.format(fmt.Sprintf("min=%d", n), msg)
}

// MaxLen fails unless the value is a string of at most n bytes.
func (c *Chain) MaxLen(n int, msg string) *Chain {
	return c.add(func(_ context.Context, v any) (any, error) {
		s, ok := v.(string)
		if !ok || len(s) > n {
			return nil, Fail(msg)
		}
		return v, nil
	})
}

// Email fails unless the value is a syntactically valid email address.
func (c *Chain) Email(msg string) *Chain {
	return c.format("email", msg)
}

// ObjectID fails unless the value is a 24 character hex document id.
func (c *Chain) ObjectID(msg string) *Chain {
	return c.format("mongodb", msg)
}

// OneOf fails unless the value is one of allowed.
func (c *Chain) OneOf(msg string, allowed ...string) *Chain {
	return c.format("oneof="+strings.Join(allowed, " "), msg)
}

// Custom runs fn, typically a lookup against the store. fn reports a field
// issue by returning Fail; any other error aborts validation as internal.
func (c *Chain) Custom(fn func(ctx context.Context, v any) error) *Chain {
	return c.add(func(ctx context.Context, v any) (any, error) {
		if err := fn(ctx, v); err != nil {
			return nil, err
		}
		return v, nil
	})
}

func (c *Chain) format(tag, msg string) *Chain {
	return c.add(func(_ context.Context, v any) (any, error) {
		s, ok := v.(string)
		if !ok || formats.Var(s, tag) != nil {
			return nil, Fail(msg)
		}
		return v, nil
	})
}

func (c *Chain) add(s step) *Chain {
	c.steps = append(c.steps, s)
	return c
}

// run applies the chain. It returns the sanitized value, or the failure message
// of the first rule that rejected it, or an infrastructure error.
func (c *Chain) run(ctx context.Context, v any, present bool) (value any, failure string, err error) {
	if !present && c.optional {
		return nil, "", nil
	}
	for _, s := range c.steps {
		next, err := s(ctx, v)
		if err != nil {
			var f *Failure
			if errors.As(err, &f) {
				if f.Message == "" {
					return nil, "Invalid value", nil
				}
				return nil, f.Message, nil
			}
			return nil, "", err
		}
		v = next
	}
	return v, "", nil
}
