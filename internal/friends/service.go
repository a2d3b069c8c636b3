package friends

import (
	"context"
	"time"

	"github.com/google/uuid"

	"lingualink/infrastructure"
	"lingualink/internal/user"
)

// Service runs the friend-request state machine: none -> pending ->
// accepted, where decline deletes the edge and returns the pair to none.
type Service struct {
	requests Repository
	users    user.Repository
}

func NewService(requests Repository, users user.Repository) *Service {
	return &Service{requests: requests, users: users}
}

// Send creates a pending edge from sender to recipient. Any active edge in
// either direction blocks a new one; the store's unique pair index settles
// concurrent duplicates.
func (s *Service) Send(ctx context.Context, senderID, recipientID uuid.UUID) (*FriendRequest, error) {
	if senderID == recipientID {
		return nil, infrastructure.NewError(infrastructure.ErrConflict,
			"You cannot send a friend request to yourself")
	}

	if _, err := s.users.GetByID(ctx, &recipientID); err != nil {
		return nil, err
	}

	existing, err := s.requests.ActiveBetween(ctx, &senderID, &recipientID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.Status == StatusAccepted {
			return nil, infrastructure.NewError(infrastructure.ErrConflict,
				"You are already friends with this user")
		}
		return nil, infrastructure.NewError(infrastructure.ErrConflict,
			"A friend request already exists between you and this user")
	}

	now := time.Now()
	request := &FriendRequest{
		ID:          uuid.New(),
		SenderID:    senderID,
		RecipientID: recipientID,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	return s.requests.Create(ctx, request)
}

// Accept transitions pending -> accepted. Only the recipient may act, and
// the transition is terminal: a second accept finds no pending row.
func (s *Service) Accept(ctx context.Context, requestID, actingUserID uuid.UUID) error {
	request, err := s.requests.GetByID(ctx, &requestID)
	if err != nil {
		return err
	}
	if request.RecipientID != actingUserID {
		return infrastructure.NewError(infrastructure.ErrUnauthorized,
			"You are not authorized to accept this request")
	}
	return s.requests.Accept(ctx, &requestID)
}

// Decline removes the edge entirely, so the pair may exchange requests
// again later.
func (s *Service) Decline(ctx context.Context, requestID, actingUserID uuid.UUID) error {
	request, err := s.requests.GetByID(ctx, &requestID)
	if err != nil {
		return err
	}
	if request.RecipientID != actingUserID {
		return infrastructure.NewError(infrastructure.ErrUnauthorized,
			"You are not authorized to decline this request")
	}
	return s.requests.Delete(ctx, &requestID)
}

// Friends lists every user connected to userID through an accepted edge.
func (s *Service) Friends(ctx context.Context, userID uuid.UUID) ([]*user.User, error) {
	return s.requests.Friends(ctx, &userID)
}

// Incoming lists pending requests addressed to userID, oldest first.
func (s *Service) Incoming(ctx context.Context, userID uuid.UUID) ([]*RequestWithUser, error) {
	return s.requests.PendingForRecipient(ctx, &userID)
}

// Outgoing lists pending requests sent by userID, used by clients to
// disable duplicate "send request" actions.
func (s *Service) Outgoing(ctx context.Context, userID uuid.UUID) ([]*RequestWithUser, error) {
	return s.requests.PendingFromSender(ctx, &userID)
}
