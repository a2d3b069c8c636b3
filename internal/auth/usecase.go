package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"lingualink/infrastructure"
	"lingualink/internal/user"
	"lingualink/pkg/token"
)

// ResetMailer delivers the password reset link. Implemented by the email
// sender; dispatch is fire-and-forget from the request's point of view.
type ResetMailer interface {
	SendPasswordResetEmail(to, fullName, resetURL string) error
}

type UseCase interface {
	Signup(ctx context.Context, input user.CreateUserInput) (*user.User, string, error)
	Login(ctx context.Context, email, password string) (*user.User, string, error)
	VerifyToken(tokenString string) (uuid.UUID, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, plainToken, newPassword string) error
}

type authUseCase struct {
	users    *user.Service
	userRepo user.Repository
	issuer   *token.Issuer
	mailer   ResetMailer
	baseURL  string
	resetTTL time.Duration
}

func NewUseCase(
	users *user.Service,
	userRepo user.Repository,
	issuer *token.Issuer,
	mailer ResetMailer,
	baseURL string,
	resetTTL time.Duration,
) UseCase {
	return &authUseCase{
		users:    users,
		userRepo: userRepo,
		issuer:   issuer,
		mailer:   mailer,
		baseURL:  baseURL,
		resetTTL: resetTTL,
	}
}

// Signup creates the identity and issues a session token for it.
func (uc *authUseCase) Signup(ctx context.Context, input user.CreateUserInput) (*user.User, string, error) {
	created, err := uc.users.CreateUser(ctx, input)
	if err != nil {
		return nil, "", err
	}

	sessionToken, err := uc.issuer.Issue(created.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue session token: %w", err)
	}

	return created, sessionToken, nil
}

func (uc *authUseCase) Login(ctx context.Context, email, password string) (*user.User, string, error) {
	found, err := uc.users.VerifyCredentials(ctx, email, password)
	if err != nil {
		return nil, "", err
	}

	sessionToken, err := uc.issuer.Issue(found.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue session token: %w", err)
	}

	return found, sessionToken, nil
}

func (uc *authUseCase) VerifyToken(tokenString string) (uuid.UUID, error) {
	return uc.issuer.Verify(tokenString)
}

// RequestPasswordReset stores the hashed single-use token and mails the
// plaintext link off the request path. Delivery failures are logged, never
// surfaced.
func (uc *authUseCase) RequestPasswordReset(ctx context.Context, email string) error {
	if email == "" {
		return infrastructure.NewError(infrastructure.ErrValidation, "Email is required")
	}

	found, err := uc.userRepo.GetByEmail(ctx, user.NormalizeEmail(email))
	if err != nil {
		return err
	}

	plainToken, err := infrastructure.GenerateResetToken()
	if err != nil {
		return err
	}

	expiresAt := time.Now().Add(uc.resetTTL)
	if err := uc.userRepo.SetResetToken(ctx, &found.ID, hashResetToken(plainToken), expiresAt); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/forgot-password/%s", uc.baseURL, plainToken)
	go func() {
		if err := uc.mailer.SendPasswordResetEmail(found.Email, found.FullName, resetURL); err != nil {
			slog.Error("Failed to send password reset email", "user_id", found.ID, "error", err)
		}
	}()

	return nil
}

// ResetPassword consumes a reset token. The token row is cleared together
// with the password change, so a replay fails as invalid.
func (uc *authUseCase) ResetPassword(ctx context.Context, plainToken, newPassword string) error {
	if plainToken == "" {
		return infrastructure.NewError(infrastructure.ErrInvalidToken, "Invalid reset token")
	}
	if err := user.ValidatePassword(newPassword); err != nil {
		return err
	}

	found, err := uc.userRepo.GetByResetTokenHash(ctx, hashResetToken(plainToken))
	if err != nil {
		return infrastructure.NewError(infrastructure.ErrInvalidToken, "Invalid reset token")
	}

	if found.ResetTokenExpiresAt == nil || time.Now().After(*found.ResetTokenExpiresAt) {
		return infrastructure.NewError(infrastructure.ErrTokenExpired, "Reset token has expired")
	}

	hashedPassword, err := user.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return uc.userRepo.ResetPassword(ctx, &found.ID, hashedPassword)
}

func hashResetToken(plainToken string) string {
	sum := sha256.Sum256([]byte(plainToken))
	return hex.EncodeToString(sum[:])
}
