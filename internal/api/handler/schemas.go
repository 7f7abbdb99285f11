package handler

import (
	"context"

	"github.com/feedback-portal/portal-api/internal/api/validation"
	"github.com/feedback-portal/portal-api/internal/core/ports"
)

// bcrypt ignores everything past 72 bytes, so longer passwords are refused
// rather than silently truncated.
const maxPasswordBytes = 72

// Schemas holds the request rule sets of every endpoint that takes a body.
type Schemas struct {
	Register *validation.Schema
	Login    *validation.Schema
	Profile  *validation.Schema
	Role     *validation.Schema
	Category *validation.Schema
	Feedback *validation.Schema
}

// NewSchemas wires the lookup rules to the services that answer them.
func NewSchemas(auth ports.AuthService, categories ports.CategoryService) *Schemas {
	return &Schemas{
		Register: validation.New(
			validation.Field("username").
				Trim().
				Required("Username is required").
				String("Username must be a string").
				Custom(usernameAvailable(auth)),
			password(validation.Field("password").Required("Password is required")),
			validation.Field("name").Optional().Trim().String("Name must be a string"),
			validation.Field("email").Optional().Trim().Email("Invalid email format"),
		),
		Login: validation.New(
			validation.Field("username").Trim().Required("Username is required").String("Username must be a string"),
			validation.Field("password").Required("Password is required").String("Password must be a string"),
		),
		Profile: validation.New(
			validation.Field("name").Optional().Trim().String("Name must be a string"),
			validation.Field("email").Optional().Trim().Email("Invalid email format"),
			password(validation.Field("password").Optional()),
		),
		Role: validation.New(
			validation.Field("role").
				Trim().
				Required("Role is required").
				OneOf("Role must be one of: user, admin", "user", "admin"),
		),
		Category: validation.New(
			validation.Field("name").
				Trim().
				Required("Category name is required").
				String("Category name must be a string").
				Custom(categoryNameAvailable(categories)),
			validation.Field("description").Optional().Trim().String("Description must be a string"),
		),
		Feedback: validation.New(
			validation.Field("feedback").Trim().Required("Feedback text is required").String("Feedback must be a string"),
			validation.Field("category").
				Trim().
				Required("Category is required").
				ObjectID("Invalid category ID format").
				Custom(categoryExists(categories)),
			validation.Field("reviewed").Optional().Bool("Reviewed must be a boolean value"),
		),
	}
}

func password(c *validation.Chain) *validation.Chain {
	return c.
		String("Password must be a string").
		MinLen(6, "Password must be at least 6 characters long").
		MaxLen(maxPasswordBytes, "Password must be at most 72 characters long")
}

func usernameAvailable(auth ports.AuthService) func(context.Context, any) error {
	return func(ctx context.Context, v any) error {
		taken, err := auth.UsernameTaken(ctx, v.(string))
		if err != nil {
			return err
		}
		if taken {
			return validation.Fail("Username already taken")
		}
		return nil
	}
}

func categoryNameAvailable(categories ports.CategoryService) func(context.Context, any) error {
	return func(ctx context.Context, v any) error {
		name := v.(string)
		taken, err := categories.NameTaken(ctx, name)
		if err != nil {
			return err
		}
		if taken {
			return validation.Failf("Category %s already exists", name)
		}
		return nil
	}
}

func categoryExists(categories ports.CategoryService) func(context.Context, any) error {
	return func(ctx context.Context, v any) error {
		ok, err := categories.Exists(ctx, v.(string))
		if err != nil {
			return err
		}
		if !ok {
			return validation.Fail("Category does not exist")
		}
		return nil
	}
}
