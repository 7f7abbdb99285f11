package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/feedback-portal/portal-api/internal/core/domain"
	"github.com/feedback-portal/portal-api/internal/core/ports"
	"github.com/feedback-portal/portal-api/internal/core/security"
)

type stubUserRepo struct {
	mu     sync.Mutex
	users  map[string]*domain.User
	seq    int
	failOn error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failOn != nil {
		return nil, r.failOn
	}
	for _, u := range r.users {
		if u.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	r.seq++
	copy := cloneUser(user)
	copy.ID = "user-" + strconv.Itoa(r.seq)
	r.users[copy.ID] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failOn != nil {
		return nil, r.failOn
	}
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := r.FindByUsername(ctx, username)
	if errors.Is(err, domain.ErrUserNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

// stubHasher is a reversible stand-in for bcrypt that records how often it hashed.
type stubHasher struct {
	mu       sync.Mutex
	hashes   int
	verifies int
}

func (h *stubHasher) Hash(_ context.Context, plaintext string) (string, error) {
	h.mu.Lock()
	h.hashes++
	n := h.hashes
	h.mu.Unlock()
	return "hashed:" + strconv.Itoa(n) + ":" + plaintext, nil
}

func (h *stubHasher) Verify(_ context.Context, plaintext, hashed string) (bool, error) {
	h.mu.Lock()
	h.verifies++
	h.mu.Unlock()
	parts := strings.SplitN(hashed, ":", 3)
	return len(parts) == 3 && parts[0] == "hashed" && parts[2] == plaintext, nil
}

const testSecret = "0123456789abcdef-secret"

func newAuthService(t *testing.T) (*AuthService, *stubUserRepo, *stubHasher, *security.TokenService) {
	t.Helper()
	repo := newStubUserRepo()
	hasher := &stubHasher{}
	tokens := security.NewTokenService(testSecret, time.Hour)
	return NewAuthService(repo, hasher, tokens, zerolog.Nop()), repo, hasher, tokens
}

func expectKind(t *testing.T, err error, want domain.Kind) *domain.Error {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s, got nil", want.Name())
	}
	de := domain.AsError(err)
	if de.Kind != want {
		t.Fatalf("expected %s, got %s (%v)", want.Name(), de.Kind.Name(), err)
	}
	return de
}

func TestAuthService_Register_Success(t *testing.T) {
	svc, _, _, tokens := newAuthService(t)

	res, err := svc.Register(context.Background(), ports.RegisterInput{Username: "alice", Password: "secret1"})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if res.User.PasswordHash == "secret1" || !strings.HasPrefix(res.User.PasswordHash, "hashed:") {
		t.Fatalf("expected password to be hashed, got %q", res.User.PasswordHash)
	}
	if res.User.Role != domain.RoleUser {
		t.Fatalf("unexpected role: %s", res.User.Role)
	}

	claims, err := tokens.Verify(res.Token)
	if err != nil {
		t.Fatalf("token does not verify: %v", err)
	}
	if claims.ID != res.User.ID || claims.Username != "alice" || claims.Role != domain.RoleUser {
		t.Fatalf("claims do not match identity: %+v", claims)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc, _, _, _ := newAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, ports.RegisterInput{Username: "bob", Password: "secret1"}); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	_, err := svc.Register(ctx, ports.RegisterInput{Username: "bob", Password: "secret2"})
	de := expectKind(t, err, domain.KindValidation)
	if len(de.Issues) != 1 || de.Issues[0].Field != "username" || de.Issues[0].Message != "Username already taken" {
		t.Fatalf("unexpected issues: %+v", de.Issues)
	}
}

func TestAuthService_Register_StoreFailureIsInternal(t *testing.T) {
	svc, repo, _, _ := newAuthService(t)
	repo.failOn = errors.New("connection reset")

	_, err := svc.Register(context.Background(), ports.RegisterInput{Username: "bob", Password: "secret1"})
	expectKind(t, err, domain.KindInternal)
}

func TestAuthService_CreateAdmin(t *testing.T) {
	svc, _, _, tokens := newAuthService(t)

	res, err := svc.CreateAdmin(context.Background(), ports.RegisterInput{Username: "root", Password: "secret1", Name: "Root"})
	if err != nil {
		t.Fatalf("CreateAdmin returned error: %v", err)
	}
	if res.User.Role != domain.RoleAdmin || res.User.Name != "Root" {
		t.Fatalf("unexpected user: %+v", res.User)
	}
	claims, err := tokens.Verify(res.Token)
	if err != nil || claims.Role != domain.RoleAdmin {
		t.Fatalf("expected admin claims, got %+v (%v)", claims, err)
	}
}

func TestAuthService_Login(t *testing.T) {
	svc, _, hasher, tokens := newAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, ports.RegisterInput{Username: "carol", Password: "s3cret!"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	res, err := svc.Login(ctx, "carol", "s3cret!")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if res.User.Username != "carol" {
		t.Fatalf("unexpected user: %+v", res.User)
	}
	if _, err := tokens.Verify(res.Token); err != nil {
		t.Fatalf("token invalid: %v", err)
	}

	_, wrongPassword := svc.Login(ctx, "carol", "wrong")
	_, unknownUser := svc.Login(ctx, "nobody", "s3cret!")

	a := expectKind(t, wrongPassword, domain.KindUnauthorized)
	b := expectKind(t, unknownUser, domain.KindUnauthorized)
	if a.Message != b.Message {
		t.Fatalf("failures must be indistinguishable: %q vs %q", a.Message, b.Message)
	}
	if hasher.verifies != 3 {
		t.Fatalf("expected every login to pay one verification, got %d", hasher.verifies)
	}
}

func TestAuthService_Login_UnknownUserUsesConfiguredHasher(t *testing.T) {
	svc, _, hasher, _ := newAuthService(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := svc.Login(ctx, "ghost", "whatever")
		expectKind(t, err, domain.KindUnauthorized)
	}
	if hasher.hashes != 1 {
		t.Fatalf("expected the placeholder hash to be built once by the hasher, got %d hashes", hasher.hashes)
	}
	if hasher.verifies != 2 {
		t.Fatalf("expected one verification per login, got %d", hasher.verifies)
	}
}

func TestAuthService_Login_UnknownUserMatchingPlaceholderIsRejected(t *testing.T) {
	svc, _, _, _ := newAuthService(t)

	_, err := svc.Login(context.Background(), "ghost", dummyPassword)
	expectKind(t, err, domain.KindUnauthorized)
}

func TestAuthService_Profile(t *testing.T) {
	svc, _, _, _ := newAuthService(t)
	ctx := context.Background()

	res, _ := svc.Register(ctx, ports.RegisterInput{Username: "dave", Password: "secret1", Email: "dave@example.com"})

	user, err := svc.Profile(ctx, res.User.ID)
	if err != nil {
		t.Fatalf("Profile returned error: %v", err)
	}
	if user.Email != "dave@example.com" {
		t.Fatalf("unexpected user: %+v", user)
	}

	_, err = svc.Profile(ctx, "missing")
	if de := expectKind(t, err, domain.KindNotFound); de.Message != "User not found" {
		t.Fatalf("unexpected message: %q", de.Message)
	}
}

func TestAuthService_UpdateProfile_RehashesOnlyWithPassword(t *testing.T) {
	svc, _, hasher, _ := newAuthService(t)
	ctx := context.Background()

	res, _ := svc.Register(ctx, ports.RegisterInput{Username: "erin", Password: "secret1"})
	original := res.User.PasswordHash

	name := "Erin"
	user, err := svc.UpdateProfile(ctx, res.User.ID, ports.UpdateProfileInput{Name: &name})
	if err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}
	if user.Name != "Erin" || user.PasswordHash != original {
		t.Fatalf("name-only update must keep the hash: %+v", user)
	}
	if hasher.hashes != 1 {
		t.Fatalf("expected no rehash, got %d hashes", hasher.hashes)
	}

	password := "another1"
	user, err = svc.UpdateProfile(ctx, res.User.ID, ports.UpdateProfileInput{Password: &password})
	if err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}
	if user.PasswordHash == original {
		t.Fatalf("expected new hash")
	}
	if _, err := svc.Login(ctx, "erin", "another1"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
}

func TestAuthService_UpdateRole(t *testing.T) {
	svc, _, _, tokens := newAuthService(t)
	ctx := context.Background()

	res, _ := svc.Register(ctx, ports.RegisterInput{Username: "frank", Password: "secret1"})

	user, err := svc.UpdateRole(ctx, res.User.ID, domain.RoleAdmin)
	if err != nil {
		t.Fatalf("UpdateRole returned error: %v", err)
	}
	if user.Role != domain.RoleAdmin {
		t.Fatalf("unexpected role: %s", user.Role)
	}

	claims, err := tokens.Verify(res.Token)
	if err != nil {
		t.Fatalf("old token should still verify: %v", err)
	}
	if claims.Role != domain.RoleUser {
		t.Fatalf("issued token must keep its original role, got %s", claims.Role)
	}

	_, err = svc.UpdateRole(ctx, res.User.ID, "superuser")
	expectKind(t, err, domain.KindValidation)

	_, err = svc.UpdateRole(ctx, "missing", domain.RoleUser)
	expectKind(t, err, domain.KindNotFound)
}

func TestAuthService_UsernameTaken(t *testing.T) {
	svc, _, _, _ := newAuthService(t)
	ctx := context.Background()

	_, _ = svc.Register(ctx, ports.RegisterInput{Username: "gina", Password: "secret1"})

	if taken, err := svc.UsernameTaken(ctx, "gina"); err != nil || !taken {
		t.Fatalf("expected gina to be taken, got %v (%v)", taken, err)
	}
	if taken, err := svc.UsernameTaken(ctx, "hank"); err != nil || taken {
		t.Fatalf("expected hank to be free, got %v (%v)", taken, err)
	}
}
