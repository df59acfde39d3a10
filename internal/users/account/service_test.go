// Copyright (c) 2026 ComicHub. All rights reserved.

package account

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CMPS-115-Webcomics/Webcomics-Backend/internal/platform/apperr"
	"github.com/CMPS-115-Webcomics/Webcomics-Backend/internal/platform/sec"
)

type fakeRepository struct {
	Repository

	accounts   map[string]*Account // keyed by username
	created    *Account
	banned     []int64
	verifiedID int64
	adminSeen  bool
	newHash    string
}

func (f *fakeRepository) Create(ctx context.Context, account *Account) error {
	account.ID = 42
	account.Joined = time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	f.created = account
	return nil
}

func (f *fakeRepository) FindByUsernameOrEmail(ctx context.Context, usernameOrEmail string) (*Account, error) {
	if account, ok := f.accounts[usernameOrEmail]; ok {
		return account, nil
	}
	for _, account := range f.accounts {
		if account.Email == usernameOrEmail {
			return account, nil
		}
	}
	return nil, apperr.NotFound("Account")
}

func (f *fakeRepository) UpdatePassword(ctx context.Context, accountID int64, passwordHash string) (*Account, error) {
	f.newHash = passwordHash
	return &Account{ID: accountID, Username: "reset-user", Role: string(sec.RoleUser)}, nil
}

func (f *fakeRepository) MarkEmailVerified(ctx context.Context, accountID int64) error {
	f.verifiedID = accountID
	return nil
}

func (f *fakeRepository) Ban(ctx context.Context, accountID int64) error {
	f.banned = append(f.banned, accountID)
	return nil
}

func (f *fakeRepository) AdminExists(ctx context.Context) (bool, error) {
	return f.adminSeen, nil
}

type fakeTokens struct {
	reset  map[string]int64
	verify map[string]int64
}

func newFakeTokens() *fakeTokens {
	return &fakeTokens{reset: map[string]int64{}, verify: map[string]int64{}}
}

func (f *fakeTokens) StoreResetToken(ctx context.Context, token string, accountID int64, ttl time.Duration) error {
	f.reset[token] = accountID
	return nil
}

func (f *fakeTokens) ConsumeResetToken(ctx context.Context, token string) (int64, error) {
	id, ok := f.reset[token]
	if !ok {
		return 0, apperr.Unauthorized("Reset token is invalid or expired")
	}
	delete(f.reset, token)
	return id, nil
}

func (f *fakeTokens) StoreVerifyToken(ctx context.Context, token string, accountID int64, ttl time.Duration) error {
	f.verify[token] = accountID
	return nil
}

func (f *fakeTokens) ConsumeVerifyToken(ctx context.Context, token string) (int64, error) {
	id, ok := f.verify[token]
	if !ok {
		return 0, apperr.Unauthorized("Verification token is invalid or expired")
	}
	delete(f.verify, token)
	return id, nil
}

type fakeMailer struct {
	verifications []string
	resets        []string
}

func (f *fakeMailer) SendVerificationEmail(to, token string) error {
	f.verifications = append(f.verifications, to)
	return nil
}

func (f *fakeMailer) SendPasswordResetEmail(to, token string) error {
	f.resets = append(f.resets, to)
	return nil
}

func newTestService(t *testing.T, repo Repository, tokens TokenRepository, mailer Mailer) *Service {
	t.Helper()
	jwt, err := sec.NewTokenService("test-secret-test-secret-test-secret", "comichub.io")
	require.NoError(t, err)
	return NewService(repo, tokens, jwt, mailer, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRegister(t *testing.T) {
	repo := &fakeRepository{}
	mailer := &fakeMailer{}
	service := newTestService(t, repo, newFakeTokens(), mailer)

	auth, err := service.Register(context.Background(), "newuser", "new@example.com", "hunter2hunter2")
	require.NoError(t, err)

	assert.Equal(t, "newuser", auth.Username)
	assert.Equal(t, string(sec.RoleUser), auth.Role)
	assert.NotEmpty(t, auth.Token)

	require.NotNil(t, repo.created)
	assert.NotEqual(t, "hunter2hunter2", repo.created.PasswordHash, "password must be hashed")
	assert.Equal(t, []string{"new@example.com"}, mailer.verifications)
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{"missing username", "", "a@b.com", "longenough"},
		{"bad email", "user", "not-an-email", "longenough"},
		{"short password", "user", "a@b.com", "short"},
	}

	service := newTestService(t, &fakeRepository{}, newFakeTokens(), &fakeMailer{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Register(context.Background(), tt.username, tt.email, tt.password)
			require.Error(t, err)
		})
	}
}

func TestLogin(t *testing.T) {
	hash, err := sec.HashPassword("correct-horse")
	require.NoError(t, err)

	repo := &fakeRepository{accounts: map[string]*Account{
		"artist": {ID: 7, Username: "artist", Email: "artist@example.com", PasswordHash: hash, Role: string(sec.RoleUser)},
		"outlaw": {ID: 8, Username: "outlaw", Email: "outlaw@example.com", PasswordHash: hash, Role: string(sec.RoleUser), Banned: true},
	}}
	service := newTestService(t, repo, newFakeTokens(), &fakeMailer{})

	t.Run("by username", func(t *testing.T) {
		auth, err := service.Login(context.Background(), "artist", "correct-horse")
		require.NoError(t, err)
		assert.Equal(t, "artist", auth.Username)
	})

	t.Run("by email", func(t *testing.T) {
		auth, err := service.Login(context.Background(), "artist@example.com", "correct-horse")
		require.NoError(t, err)
		assert.Equal(t, "artist", auth.Username)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := service.Login(context.Background(), "artist", "wrong")
		require.Error(t, err)
		assert.Equal(t, 401, apperr.As(err).HTTPStatus)
	})

	t.Run("banned account", func(t *testing.T) {
		_, err := service.Login(context.Background(), "outlaw", "correct-horse")
		require.Error(t, err)
		assert.Equal(t, 403, apperr.As(err).HTTPStatus)
	})

	t.Run("unknown account", func(t *testing.T) {
		_, err := service.Login(context.Background(), "nobody", "correct-horse")
		require.Error(t, err)
		assert.Equal(t, 404, apperr.As(err).HTTPStatus)
	})
}

func TestPasswordResetFlow(t *testing.T) {
	repo := &fakeRepository{accounts: map[string]*Account{
		"artist": {ID: 7, Username: "artist", Email: "artist@example.com"},
	}}
	tokens := newFakeTokens()
	mailer := &fakeMailer{}
	service := newTestService(t, repo, tokens, mailer)

	require.NoError(t, service.RequestPasswordReset(context.Background(), "artist"))
	require.Len(t, mailer.resets, 1)
	require.Len(t, tokens.reset, 1)

	var issued string
	for token := range tokens.reset {
		issued = token
	}

	auth, err := service.ConfirmPasswordReset(context.Background(), issued, "brand-new-password")
	require.NoError(t, err)
	assert.NotEmpty(t, auth.Token)
	assert.NotEmpty(t, repo.newHash)

	// The token is single-use.
	_, err = service.ConfirmPasswordReset(context.Background(), issued, "another-password")
	require.Error(t, err)
}

func TestVerifyEmail(t *testing.T) {
	repo := &fakeRepository{}
	tokens := newFakeTokens()
	tokens.verify["tok"] = 7
	service := newTestService(t, repo, tokens, &fakeMailer{})

	require.NoError(t, service.VerifyEmail(context.Background(), "tok"))
	assert.Equal(t, int64(7), repo.verifiedID)

	require.Error(t, service.VerifyEmail(context.Background(), "tok"))
}

func TestEnsureAdmin(t *testing.T) {
	t.Run("creates when missing", func(t *testing.T) {
		repo := &fakeRepository{}
		service := newTestService(t, repo, newFakeTokens(), &fakeMailer{})

		created, err := service.EnsureAdmin(context.Background(), "admin", "admin@example.com", "bootstrap-secret")
		require.NoError(t, err)
		assert.True(t, created)
		require.NotNil(t, repo.created)
		assert.Equal(t, string(sec.RoleAdmin), repo.created.Role)
		assert.True(t, repo.created.EmailVerified)
	})

	t.Run("noop when present", func(t *testing.T) {
		repo := &fakeRepository{adminSeen: true}
		service := newTestService(t, repo, newFakeTokens(), &fakeMailer{})

		created, err := service.EnsureAdmin(context.Background(), "admin", "admin@example.com", "bootstrap-secret")
		require.NoError(t, err)
		assert.False(t, created)
		assert.Nil(t, repo.created)
	})
}
