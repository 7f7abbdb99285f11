package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/feedback-portal/portal-api/internal/core/domain"
	"github.com/feedback-portal/portal-api/internal/core/ports"
	"github.com/feedback-portal/portal-api/internal/pkg/metrics"
)

const (
	msgUsernameTaken      = "Username already taken"
	msgInvalidCredentials = "Invalid username or password"
	msgUserNotFound       = "User not found"
)

// dummyPassword is hashed once with the configured hasher. Unknown usernames are
// verified against that hash so a failed login costs the same whether or not
// the account exists.
const dummyPassword = "portal-dummy-password"

// AuthService implements registration, login and profile management.
type AuthService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenIssuer
	logger zerolog.Logger
	now    func() time.Time

	dummyMu sync.Mutex
	dummy   string
}

func NewAuthService(repo ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenIssuer, logger zerolog.Logger) *AuthService {
	return &AuthService{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Register creates a regular user. The public route never lets the caller
// choose a role.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	return s.create(ctx, "register", in, domain.RoleUser)
}

// CreateAdmin creates a user with the admin role.
func (s *AuthService) CreateAdmin(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	return s.create(ctx, "create_admin", in, domain.RoleAdmin)
}

func (s *AuthService) create(ctx context.Context, action string, in ports.RegisterInput, role domain.Role) (*ports.AuthResult, error) {
	hash, err := s.hasher.Hash(ctx, in.Password)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues(action, "error").Inc()
		return nil, err
	}

	now := s.now()
	user := &domain.User{
		Username:     in.Username,
		PasswordHash: hash,
		Role:         role,
		Name:         in.Name,
		Email:        in.Email,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			metrics.AuthAttemptsTotal.WithLabelValues(action, "rejected").Inc()
			return nil, domain.Validation(domain.Issue{Field: "username", Message: msgUsernameTaken})
		}
		metrics.AuthAttemptsTotal.WithLabelValues(action, "error").Inc()
		return nil, domain.Internal(fmt.Errorf("create user: %w", err))
	}

	token, err := s.tokens.Issue(created)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues(action, "error").Inc()
		return nil, domain.Internal(fmt.Errorf("issue token: %w", err))
	}

	metrics.AuthAttemptsTotal.WithLabelValues(action, "success").Inc()
	s.logger.Info().Str("user_id", created.ID).Str("role", string(role)).Msg("user created")
	return &ports.AuthResult{User: created, Token: token}, nil
}

// Login checks the credentials. An unknown username and a wrong password are
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.AuthResult, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "error").Inc()
		return nil, domain.Internal(fmt.Errorf("find user: %w", err))
	}

	var stored string
	if user != nil {
		stored = user.PasswordHash
	} else if stored, err = s.dummyHash(ctx); err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "error").Inc()
		return nil, err
	}
	ok, err := s.hasher.Verify(ctx, password, stored)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "error").Inc()
		return nil, err
	}
	if user == nil || !ok {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "rejected").Inc()
		return nil, domain.Unauthorized(msgInvalidCredentials)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "error").Inc()
		return nil, domain.Internal(fmt.Errorf("issue token: %w", err))
	}

	metrics.AuthAttemptsTotal.WithLabelValues("login", "success").Inc()
	return &ports.AuthResult{User: user, Token: token}, nil
}

func (s *AuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.find(ctx, userID)
}

// UpdateProfile applies the supplied fields. The hash is only recomputed when a
// new password is given.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, in ports.UpdateProfileInput) (*domain.User, error) {
	user, err := s.find(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.Password != nil {
		hash, err := s.hasher.Hash(ctx, *in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	return s.save(ctx, user)
}

// UpdateRole changes the stored role. Tokens already issued keep the role they
// were minted with until they expire.
func (s *AuthService) UpdateRole(ctx context.Context, userID string, role domain.Role) (*domain.User, error) {
	if !role.Valid() {
		return nil, domain.Validation(domain.Issue{Field: "role", Message: "Role must be one of: user, admin"})
	}

	user, err := s.find(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Role = role

	updated, err := s.save(ctx, user)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", updated.ID).Str("role", string(role)).Msg("role updated")
	return updated, nil
}

// UsernameTaken backs the uniqueness rule of the registration schema.
func (s *AuthService) UsernameTaken(ctx context.Context, username string) (bool, error) {
	return s.repo.ExistsByUsername(ctx, username)
}

// dummyHash returns the hash unknown usernames are checked against. A failed
// attempt is not cached so a cancelled request does not poison later logins.
func (s *AuthService) dummyHash(ctx context.Context) (string, error) {
	s.dummyMu.Lock()
	defer s.dummyMu.Unlock()
	if s.dummy != "" {
		return s.dummy, nil
	}
	hash, err := s.hasher.Hash(ctx, dummyPassword)
	if err != nil {
		return "", err
	}
	s.dummy = hash
	return hash, nil
}

func (s *AuthService) find(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.NotFound(msgUserNotFound)
		}
		return nil, domain.Internal(fmt.Errorf("find user: %w", err))
	}
	return user, nil
}

func (s *AuthService) save(ctx context.Context, user *domain.User) (*domain.User, error) {
	user.UpdatedAt = s.now()
	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.NotFound(msgUserNotFound)
		}
		return nil, domain.Internal(fmt.Errorf("update user: %w", err))
	}
	return updated, nil
}
