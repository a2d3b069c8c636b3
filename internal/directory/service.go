package directory

import (
	"context"

	"github.com/google/uuid"

	"lingualink/infrastructure"
	"lingualink/internal/user"
)

type Service struct {
	directory Repository
}

func NewService(directory Repository) *Service {
	return &Service{directory: directory}
}

// Recommend suggests users the caller could befriend.
func (s *Service) Recommend(ctx context.Context, userID uuid.UUID) ([]*user.User, error) {
	return s.directory.Recommended(ctx, &userID)
}

// Search finds users by substring of name or email.
func (s *Service) Search(ctx context.Context, userID uuid.UUID, query string) ([]*user.User, error) {
	if query == "" {
		return nil, infrastructure.NewError(infrastructure.ErrValidation, "Search query is required")
	}
	return s.directory.Search(ctx, &userID, query)
}
