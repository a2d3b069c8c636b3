package user

import (
	"context"
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	passwordvalidator "github.com/wagslane/go-password-validator"
	"golang.org/x/crypto/bcrypt"

	"lingualink/infrastructure"
)

const (
	minPasswordLength  = 6
	minPasswordEntropy = 20
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Mirror receives identity changes bound for the external messaging
// provider. Implemented by the provisioning queue; delivery is best-effort
// and never blocks the caller.
type Mirror interface {
	EnqueueUpsert(id, displayName, imageURL string)
}

type Service struct {
	users  Repository
	mirror Mirror
}

func NewService(users Repository, mirror Mirror) *Service {
	return &Service{users: users, mirror: mirror}
}

type CreateUserInput struct {
	Email           string
	FullName        string
	Password        string
	ConfirmPassword string
}

// CreateUser validates signup input, stores the new identity with a bcrypt
// password hash and a random default avatar, and queues a provider mirror.
func (s *Service) CreateUser(ctx context.Context, input CreateUserInput) (*User, error) {
	if input.Email == "" || input.FullName == "" || input.Password == "" || input.ConfirmPassword == "" {
		return nil, infrastructure.NewError(infrastructure.ErrValidation, "All fields are required")
	}
	if err := ValidatePassword(input.Password); err != nil {
		return nil, err
	}
	email := NormalizeEmail(input.Email)
	if !emailPattern.MatchString(email) {
		return nil, infrastructure.NewError(infrastructure.ErrValidation, "Invalid email format")
	}
	if input.Password != input.ConfirmPassword {
		return nil, infrastructure.NewError(infrastructure.ErrValidation, "Passwords do not match")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	newUser := &User{
		ID:           uuid.New(),
		Email:        email,
		FullName:     input.FullName,
		PasswordHash: string(hashedPassword),
		ProfilePic:   randomAvatar(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, newUser)
	if err != nil {
		return nil, err
	}

	s.mirror.EnqueueUpsert(created.ID.String(), created.FullName, created.ProfilePic)
	return created, nil
}

// VerifyCredentials checks a password against the stored bcrypt hash.
func (s *Service) VerifyCredentials(ctx context.Context, email, password string) (*User, error) {
	if email == "" || password == "" {
		return nil, infrastructure.NewError(infrastructure.ErrValidation, "All fields are required")
	}

	found, err := s.users.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte(password)); err != nil {
		return nil, infrastructure.NewError(infrastructure.ErrUnauthorized, "Invalid password")
	}

	return found, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.users.GetByID(ctx, &id)
}

type OnboardInput struct {
	FullName         string
	Bio              string
	NativeLanguage   string
	LearningLanguage string
	Location         string
}

// Onboard completes the profile. All fields are required; the onboarded
// flag only ever moves false -> true.
func (s *Service) Onboard(ctx context.Context, id uuid.UUID, input OnboardInput) (*User, error) {
	var missing []string
	for field, value := range map[string]string{
		"fullName":         input.FullName,
		"bio":              input.Bio,
		"nativeLanguage":   input.NativeLanguage,
		"learningLanguage": input.LearningLanguage,
		"location":         input.Location,
	} {
		if value == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return nil, infrastructure.NewError(infrastructure.ErrValidation, "All fields are required")
	}

	found, err := s.users.GetByID(ctx, &id)
	if err != nil {
		return nil, err
	}

	found.FullName = input.FullName
	found.Bio = input.Bio
	found.NativeLanguage = input.NativeLanguage
	found.LearningLanguage = input.LearningLanguage
	found.Location = input.Location
	found.IsOnboarded = true

	if err := s.users.UpdateProfile(ctx, found); err != nil {
		return nil, err
	}

	s.mirror.EnqueueUpsert(found.ID.String(), found.FullName, found.ProfilePic)
	return found, nil
}

// UpdateProfileParams is the explicit allow-list of mutable profile fields.
// Nil means "leave unchanged"; the request body is never merged blindly.
type UpdateProfileParams struct {
	FullName         *string
	Bio              *string
	NativeLanguage   *string
	LearningLanguage *string
	Location         *string
	ProfilePic       *string
}

// UpdateProfile applies a partial update. Filling in the last missing
// onboarding field flips the onboarded flag; it never reverts.
func (s *Service) UpdateProfile(ctx context.Context, id uuid.UUID, params UpdateProfileParams) (*User, error) {
	found, err := s.users.GetByID(ctx, &id)
	if err != nil {
		return nil, err
	}

	identityChanged := false
	if params.FullName != nil {
		if *params.FullName == "" {
			return nil, infrastructure.NewError(infrastructure.ErrValidation, "fullName cannot be empty")
		}
		found.FullName = *params.FullName
		identityChanged = true
	}
	if params.Bio != nil {
		found.Bio = *params.Bio
	}
	if params.NativeLanguage != nil {
		found.NativeLanguage = *params.NativeLanguage
	}
	if params.LearningLanguage != nil {
		found.LearningLanguage = *params.LearningLanguage
	}
	if params.Location != nil {
		found.Location = *params.Location
	}
	if params.ProfilePic != nil {
		found.ProfilePic = *params.ProfilePic
		identityChanged = true
	}

	if found.FullName != "" && found.Bio != "" && found.NativeLanguage != "" &&
		found.LearningLanguage != "" && found.Location != "" {
		found.IsOnboarded = true
	}

	if err := s.users.UpdateProfile(ctx, found); err != nil {
		return nil, err
	}

	if identityChanged {
		s.mirror.EnqueueUpsert(found.ID.String(), found.FullName, found.ProfilePic)
	}
	return found, nil
}

// ValidatePassword enforces the minimum length and entropy floor shared by
// signup and password reset.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return infrastructure.NewError(infrastructure.ErrValidation, "Password must be at least 6 characters")
	}
	if err := passwordvalidator.Validate(password, minPasswordEntropy); err != nil {
		return infrastructure.NewError(infrastructure.ErrValidation, "Password is too weak")
	}
	return nil
}

// HashPassword produces the bcrypt hash stored in place of the plaintext.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// NormalizeEmail lower-cases and trims an address for lookups and storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func randomAvatar() string {
	idx := rand.Intn(100) + 1
	return fmt.Sprintf("https://avatar.iran.liara.run/public/%d.png", idx)
}
