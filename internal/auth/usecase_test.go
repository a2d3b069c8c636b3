package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"lingualink/infrastructure"
	"lingualink/internal/user"
	"lingualink/pkg/token"
)

// --- fakes ---

type fakeUserRepo struct {
	createFn              func(ctx context.Context, u *user.User) (*user.User, error)
	getByIDFn             func(ctx context.Context, id *uuid.UUID) (*user.User, error)
	getByEmailFn          func(ctx context.Context, email string) (*user.User, error)
	getByResetTokenHashFn func(ctx context.Context, hash string) (*user.User, error)
	setResetTokenFn       func(ctx context.Context, id *uuid.UUID, hash string, expiresAt time.Time) error
	resetPasswordFn       func(ctx context.Context, id *uuid.UUID, passwordHash string) error
}

func (f *fakeUserRepo) Create(ctx context.Context, u *user.User) (*user.User, error) {
	if f.createFn != nil {
		return f.createFn(ctx, u)
	}
	return u, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id *uuid.UUID) (*user.User, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return nil, infrastructure.NewError(infrastructure.ErrNotFound, "User not found")
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if f.getByEmailFn != nil {
		return f.getByEmailFn(ctx, email)
	}
	return nil, infrastructure.NewError(infrastructure.ErrNotFound, "User not found")
}

func (f *fakeUserRepo) GetByResetTokenHash(ctx context.Context, hash string) (*user.User, error) {
	if f.getByResetTokenHashFn != nil {
		return f.getByResetTokenHashFn(ctx, hash)
	}
	return nil, infrastructure.NewError(infrastructure.ErrNotFound, "User not found")
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, u *user.User) error {
	return nil
}

func (f *fakeUserRepo) SetResetToken(ctx context.Context, id *uuid.UUID, hash string, expiresAt time.Time) error {
	if f.setResetTokenFn != nil {
		return f.setResetTokenFn(ctx, id, hash, expiresAt)
	}
	return nil
}

func (f *fakeUserRepo) ResetPassword(ctx context.Context, id *uuid.UUID, passwordHash string) error {
	if f.resetPasswordFn != nil {
		return f.resetPasswordFn(ctx, id, passwordHash)
	}
	return nil
}

type fakeMirror struct{}

func (fakeMirror) EnqueueUpsert(id, displayName, imageURL string) {}

// fakeMailer hands the reset URL to the test over a channel, so the
// fire-and-forget send can be waited on.
type fakeMailer struct {
	sent chan string
	err  error
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{sent: make(chan string, 1)}
}

func (f *fakeMailer) SendPasswordResetEmail(to, fullName, resetURL string) error {
	f.sent <- resetURL
	return f.err
}

func newTestUseCase(repo user.Repository, mailer ResetMailer) UseCase {
	service := user.NewService(repo, fakeMirror{})
	issuer := token.NewIssuer([]byte("test-secret"), time.Hour)
	return NewUseCase(service, repo, issuer, mailer, "http://localhost:5173", time.Hour)
}

// --- tests ---

func TestSignupIssuesSession(t *testing.T) {
	uc := newTestUseCase(&fakeUserRepo{}, newFakeMailer())

	created, sessionToken, err := uc.Signup(context.Background(), user.CreateUserInput{
		Email: "a@x.com", FullName: "Alice", Password: "secret1", ConfirmPassword: "secret1",
	})
	require.NoError(t, err)
	require.NotEmpty(t, sessionToken)

	verified, err := uc.VerifyToken(sessionToken)
	require.NoError(t, err)
	assert.Equal(t, created.ID, verified)
}

func TestLoginIssuesSession(t *testing.T) {
	hash, err := user.HashPassword("secret1")
	require.NoError(t, err)
	stored := &user.User{ID: uuid.New(), Email: "a@x.com", PasswordHash: hash}

	uc := newTestUseCase(&fakeUserRepo{
		getByEmailFn: func(ctx context.Context, email string) (*user.User, error) {
			return stored, nil
		},
	}, newFakeMailer())

	found, sessionToken, err := uc.Login(context.Background(), "a@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, stored.ID, found.ID)

	verified, err := uc.VerifyToken(sessionToken)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, verified)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	hash, err := user.HashPassword("secret1")
	require.NoError(t, err)
	stored := &user.User{ID: uuid.New(), Email: "a@x.com", PasswordHash: hash}

	uc := newTestUseCase(&fakeUserRepo{
		getByEmailFn: func(ctx context.Context, email string) (*user.User, error) {
			return stored, nil
		},
	}, newFakeMailer())

	_, _, err = uc.Login(context.Background(), "a@x.com", "wrong1x")
	assert.ErrorIs(t, err, infrastructure.ErrUnauthorized)
}

func TestRequestPasswordReset(t *testing.T) {
	stored := &user.User{ID: uuid.New(), Email: "a@x.com", FullName: "Alice"}

	var storedHash string
	var storedExpiry time.Time
	repo := &fakeUserRepo{
		getByEmailFn: func(ctx context.Context, email string) (*user.User, error) {
			if email == "a@x.com" {
				return stored, nil
			}
			return nil, infrastructure.NewError(infrastructure.ErrNotFound, "User not found")
		},
		setResetTokenFn: func(ctx context.Context, id *uuid.UUID, hash string, expiresAt time.Time) error {
			storedHash = hash
			storedExpiry = expiresAt
			return nil
		},
	}
	mailer := newFakeMailer()
	uc := newTestUseCase(repo, mailer)

	require.NoError(t, uc.RequestPasswordReset(context.Background(), "A@x.com"))

	var resetURL string
	select {
	case resetURL = <-mailer.sent:
	case <-time.After(time.Second):
		t.Fatal("reset email was never dispatched")
	}

	require.True(t, strings.HasPrefix(resetURL, "http://localhost:5173/forgot-password/"))
	plainToken := strings.TrimPrefix(resetURL, "http://localhost:5173/forgot-password/")
	assert.Len(t, plainToken, 64)

	// Only the hash is persisted, never the plaintext token.
	assert.NotEmpty(t, storedHash)
	assert.NotEqual(t, plainToken, storedHash)
	assert.WithinDuration(t, time.Now().Add(time.Hour), storedExpiry, time.Minute)
}

func TestRequestPasswordResetUnknownEmail(t *testing.T) {
	mailer := newFakeMailer()
	uc := newTestUseCase(&fakeUserRepo{}, mailer)

	err := uc.RequestPasswordReset(context.Background(), "nobody@x.com")
	assert.ErrorIs(t, err, infrastructure.ErrNotFound)
	assert.Empty(t, mailer.sent)
}

func TestRequestPasswordResetRequiresEmail(t *testing.T) {
	uc := newTestUseCase(&fakeUserRepo{}, newFakeMailer())

	err := uc.RequestPasswordReset(context.Background(), "")
	assert.ErrorIs(t, err, infrastructure.ErrValidation)
}

func TestResetPassword(t *testing.T) {
	expiresAt := time.Now().Add(30 * time.Minute)
	stored := &user.User{ID: uuid.New(), Email: "a@x.com", ResetTokenExpiresAt: &expiresAt}

	var newHash string
	repo := &fakeUserRepo{
		getByResetTokenHashFn: func(ctx context.Context, hash string) (*user.User, error) {
			if hash == hashResetToken("plain-token") {
				return stored, nil
			}
			return nil, infrastructure.NewError(infrastructure.ErrNotFound, "User not found")
		},
		resetPasswordFn: func(ctx context.Context, id *uuid.UUID, passwordHash string) error {
			newHash = passwordHash
			return nil
		},
	}
	uc := newTestUseCase(repo, newFakeMailer())

	require.NoError(t, uc.ResetPassword(context.Background(), "plain-token", "secret2"))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(newHash), []byte("secret2")))
}

func TestResetPasswordRejectsUnknownToken(t *testing.T) {
	uc := newTestUseCase(&fakeUserRepo{}, newFakeMailer())

	err := uc.ResetPassword(context.Background(), "no-such-token", "secret2")
	assert.ErrorIs(t, err, infrastructure.ErrInvalidToken)

	err = uc.ResetPassword(context.Background(), "", "secret2")
	assert.ErrorIs(t, err, infrastructure.ErrInvalidToken)
}

func TestResetPasswordRejectsExpiredToken(t *testing.T) {
	expiresAt := time.Now().Add(-time.Minute)
	stored := &user.User{ID: uuid.New(), Email: "a@x.com", ResetTokenExpiresAt: &expiresAt}

	repo := &fakeUserRepo{
		getByResetTokenHashFn: func(ctx context.Context, hash string) (*user.User, error) {
			return stored, nil
		},
	}
	uc := newTestUseCase(repo, newFakeMailer())

	err := uc.ResetPassword(context.Background(), "plain-token", "secret2")
	assert.ErrorIs(t, err, infrastructure.ErrTokenExpired)
}

func TestResetPasswordValidatesNewPassword(t *testing.T) {
	uc := newTestUseCase(&fakeUserRepo{}, newFakeMailer())

	err := uc.ResetPassword(context.Background(), "plain-token", "abc")
	assert.ErrorIs(t, err, infrastructure.ErrValidation)
}
