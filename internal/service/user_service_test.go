package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"todo-server/internal/auth"
	"todo-server/internal/domain"
	"todo-server/internal/worker"
)

// fakeUserRepo keeps users in memory and enforces username uniqueness
// the way the sqlite store's UNIQUE constraint does.
type fakeUserRepo struct {
	users  map[string]*domain.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}, nextID: 1}
}

func (r *fakeUserRepo) Init(ctx context.Context) error { return nil }

func (r *fakeUserRepo) Create(ctx context.Context, username, passwordHash string) (int64, error) {
	if _, exists := r.users[username]; exists {
		return 0, fmt.Errorf("insert user: %w: UNIQUE constraint failed", domain.ErrStore)
	}
	id := r.nextID
	r.nextID++
	r.users[username] = &domain.User{ID: id, Username: username, PasswordHash: passwordHash}
	return id, nil
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, ok := r.users[username]
	if !ok {
		return nil, fmt.Errorf("user %q: %w", username, domain.ErrNotFound)
	}
	return user, nil
}

func newUserService(repo *fakeUserRepo) (UserService, *auth.TokenService) {
	tokens := auth.NewTokenService("test-secret", time.Hour)
	return NewUserService(repo, auth.NewPasswordHasher(), tokens, worker.New(2)), tokens
}

func TestRegisterThenLogin(t *testing.T) {
	svc, tokens := newUserService(newFakeUserRepo())
	ctx := context.Background()

	registered, err := svc.Register(ctx, "alice", "hunter2hunter2")
	require.NoError(t, err)
	require.Equal(t, "alice", registered.Username)
	require.Positive(t, registered.ID)
	require.NotEmpty(t, registered.Token)

	loggedIn, err := svc.Login(ctx, "alice", "hunter2hunter2")
	require.NoError(t, err)
	require.Equal(t, registered.ID, loggedIn.ID)
	require.Equal(t, "alice", loggedIn.Username)

	// Both tokens validate and carry the same subject.
	for _, token := range []string{registered.Token, loggedIn.Token} {
		claims, err := tokens.Validate(token)
		require.NoError(t, err)
		require.Equal(t, registered.ID, claims.UserID)
		require.Equal(t, "alice", claims.Username)
	}
}

func TestRegisterStoresHashNotPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc, _ := newUserService(repo)

	_, err := svc.Register(context.Background(), "alice", "hunter2hunter2")
	require.NoError(t, err)

	stored := repo.users["alice"]
	require.NotEqual(t, "hunter2hunter2", stored.PasswordHash)
	require.Contains(t, stored.PasswordHash, "$argon2id$")
}

func TestRegisterDuplicateUsernameIsStoreFailure(t *testing.T) {
	svc, _ := newUserService(newFakeUserRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "first-password")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice", "second-password")
	require.ErrorIs(t, err, domain.ErrStore)
}

func TestRegisterRejectsEmptyInput(t *testing.T) {
	svc, _ := newUserService(newFakeUserRepo())
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"empty username", "", "password"},
		{"whitespace-only username", "   ", "password"},
		{"empty password", "alice", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.username, tt.password)
			require.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _ := newUserService(newFakeUserRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "right-password")
	require.NoError(t, err)

	_, wrongPassword := svc.Login(ctx, "alice", "wrong-password")
	_, unknownUser := svc.Login(ctx, "nonexistent", "anything")

	require.ErrorIs(t, wrongPassword, domain.ErrInvalidCredentials)
	require.ErrorIs(t, unknownUser, domain.ErrInvalidCredentials)
	// The two failures must be the same kind with no distinguishing
	// detail, not merely both errors.
	require.Equal(t, wrongPassword.Error(), unknownUser.Error())
}
