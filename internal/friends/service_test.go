package friends

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lingualink/infrastructure"
	"lingualink/internal/user"
)

// memoryRepo mirrors the store's behavior: a unique active edge per pair,
// accept guarded on pending status, delete removing the edge entirely.
type memoryRepo struct {
	requests map[uuid.UUID]*FriendRequest
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{requests: make(map[uuid.UUID]*FriendRequest)}
}

func (m *memoryRepo) Create(ctx context.Context, request *FriendRequest) (*FriendRequest, error) {
	for _, existing := range m.requests {
		if samePair(existing, request.SenderID, request.RecipientID) {
			return nil, infrastructure.NewError(infrastructure.ErrConflict,
				"A friend request already exists between you and this user")
		}
	}
	copied := *request
	m.requests[request.ID] = &copied
	return request, nil
}

func (m *memoryRepo) GetByID(ctx context.Context, id *uuid.UUID) (*FriendRequest, error) {
	request, ok := m.requests[*id]
	if !ok {
		return nil, infrastructure.NewError(infrastructure.ErrNotFound, "Friend request not found")
	}
	copied := *request
	return &copied, nil
}

func (m *memoryRepo) ActiveBetween(ctx context.Context, a, b *uuid.UUID) (*FriendRequest, error) {
	for _, existing := range m.requests {
		if samePair(existing, *a, *b) {
			copied := *existing
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memoryRepo) Accept(ctx context.Context, id *uuid.UUID) error {
	request, ok := m.requests[*id]
	if !ok || request.Status != StatusPending {
		return infrastructure.NewError(infrastructure.ErrNotFound, "Friend request not found")
	}
	request.Status = StatusAccepted
	request.UpdatedAt = time.Now()
	return nil
}

func (m *memoryRepo) Delete(ctx context.Context, id *uuid.UUID) error {
	if _, ok := m.requests[*id]; !ok {
		return infrastructure.NewError(infrastructure.ErrNotFound, "Friend request not found")
	}
	delete(m.requests, *id)
	return nil
}

func (m *memoryRepo) Friends(ctx context.Context, userID *uuid.UUID) ([]*user.User, error) {
	var friends []*user.User
	for _, existing := range m.requests {
		if existing.Status != StatusAccepted {
			continue
		}
		switch *userID {
		case existing.SenderID:
			friends = append(friends, &user.User{ID: existing.RecipientID})
		case existing.RecipientID:
			friends = append(friends, &user.User{ID: existing.SenderID})
		}
	}
	return friends, nil
}

func (m *memoryRepo) PendingForRecipient(ctx context.Context, userID *uuid.UUID) ([]*RequestWithUser, error) {
	var results []*RequestWithUser
	for _, existing := range m.requests {
		if existing.Status == StatusPending && existing.RecipientID == *userID {
			results = append(results, &RequestWithUser{
				FriendRequest: *existing,
				Sender:        &user.User{ID: existing.SenderID},
			})
		}
	}
	return results, nil
}

func (m *memoryRepo) PendingFromSender(ctx context.Context, userID *uuid.UUID) ([]*RequestWithUser, error) {
	var results []*RequestWithUser
	for _, existing := range m.requests {
		if existing.Status == StatusPending && existing.SenderID == *userID {
			results = append(results, &RequestWithUser{
				FriendRequest: *existing,
				Recipient:     &user.User{ID: existing.RecipientID},
			})
		}
	}
	return results, nil
}

func samePair(request *FriendRequest, a, b uuid.UUID) bool {
	return (request.SenderID == a && request.RecipientID == b) ||
		(request.SenderID == b && request.RecipientID == a)
}

// memoryUsers resolves recipients during Send.
type memoryUsers struct {
	known map[uuid.UUID]*user.User
}

func (m *memoryUsers) GetByID(ctx context.Context, id *uuid.UUID) (*user.User, error) {
	found, ok := m.known[*id]
	if !ok {
		return nil, infrastructure.NewError(infrastructure.ErrNotFound, "User not found")
	}
	return found, nil
}

func (m *memoryUsers) Create(ctx context.Context, u *user.User) (*user.User, error) { return u, nil }
func (m *memoryUsers) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return nil, infrastructure.NewError(infrastructure.ErrNotFound, "User not found")
}
func (m *memoryUsers) GetByResetTokenHash(ctx context.Context, hash string) (*user.User, error) {
	return nil, infrastructure.NewError(infrastructure.ErrNotFound, "User not found")
}
func (m *memoryUsers) UpdateProfile(ctx context.Context, u *user.User) error { return nil }
func (m *memoryUsers) SetResetToken(ctx context.Context, id *uuid.UUID, hash string, expiresAt time.Time) error {
	return nil
}
func (m *memoryUsers) ResetPassword(ctx context.Context, id *uuid.UUID, passwordHash string) error {
	return nil
}

func newTestService() (*Service, uuid.UUID, uuid.UUID) {
	alice := uuid.New()
	bob := uuid.New()
	users := &memoryUsers{known: map[uuid.UUID]*user.User{
		alice: {ID: alice, FullName: "Alice"},
		bob:   {ID: bob, FullName: "Bob"},
	}}
	return NewService(newMemoryRepo(), users), alice, bob
}

func TestSendCreatesPendingRequest(t *testing.T) {
	service, alice, bob := newTestService()

	request, err := service.Send(context.Background(), alice, bob)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, request.Status)
	assert.Equal(t, alice, request.SenderID)
	assert.Equal(t, bob, request.RecipientID)

	incoming, err := service.Incoming(context.Background(), bob)
	require.NoError(t, err)
	require.Len(t, incoming, 1)
	assert.Equal(t, request.ID, incoming[0].ID)

	outgoing, err := service.Outgoing(context.Background(), alice)
	require.NoError(t, err)
	require.Len(t, outgoing, 1)
	assert.Equal(t, request.ID, outgoing[0].ID)
}

func TestSendToSelf(t *testing.T) {
	service, alice, _ := newTestService()

	_, err := service.Send(context.Background(), alice, alice)
	assert.ErrorIs(t, err, infrastructure.ErrConflict)
}

func TestSendToUnknownRecipient(t *testing.T) {
	service, alice, _ := newTestService()

	_, err := service.Send(context.Background(), alice, uuid.New())
	assert.ErrorIs(t, err, infrastructure.ErrNotFound)
}

func TestSendBlocksDuplicateInBothDirections(t *testing.T) {
	service, alice, bob := newTestService()

	_, err := service.Send(context.Background(), alice, bob)
	require.NoError(t, err)

	_, err = service.Send(context.Background(), alice, bob)
	assert.ErrorIs(t, err, infrastructure.ErrConflict)

	// The reverse direction is the same pair and is blocked too.
	_, err = service.Send(context.Background(), bob, alice)
	assert.ErrorIs(t, err, infrastructure.ErrConflict)
}

func TestAccept(t *testing.T) {
	service, alice, bob := newTestService()

	request, err := service.Send(context.Background(), alice, bob)
	require.NoError(t, err)

	require.NoError(t, service.Accept(context.Background(), request.ID, bob))

	friendsOfAlice, err := service.Friends(context.Background(), alice)
	require.NoError(t, err)
	require.Len(t, friendsOfAlice, 1)
	assert.Equal(t, bob, friendsOfAlice[0].ID)

	friendsOfBob, err := service.Friends(context.Background(), bob)
	require.NoError(t, err)
	require.Len(t, friendsOfBob, 1)
	assert.Equal(t, alice, friendsOfBob[0].ID)

	// Accept consumed the pending row; a second accept finds nothing.
	err = service.Accept(context.Background(), request.ID, bob)
	assert.ErrorIs(t, err, infrastructure.ErrNotFound)
}

func TestAcceptOnlyByRecipient(t *testing.T) {
	service, alice, bob := newTestService()

	request, err := service.Send(context.Background(), alice, bob)
	require.NoError(t, err)

	err = service.Accept(context.Background(), request.ID, alice)
	assert.ErrorIs(t, err, infrastructure.ErrUnauthorized)

	err = service.Accept(context.Background(), request.ID, uuid.New())
	assert.ErrorIs(t, err, infrastructure.ErrUnauthorized)
}

func TestDeclineAllowsResend(t *testing.T) {
	service, alice, bob := newTestService()

	request, err := service.Send(context.Background(), alice, bob)
	require.NoError(t, err)

	require.NoError(t, service.Decline(context.Background(), request.ID, bob))

	incoming, err := service.Incoming(context.Background(), bob)
	require.NoError(t, err)
	assert.Empty(t, incoming)

	// The edge is gone, so either side may start over.
	_, err = service.Send(context.Background(), bob, alice)
	require.NoError(t, err)
}

func TestDeclineOnlyByRecipient(t *testing.T) {
	service, alice, bob := newTestService()

	request, err := service.Send(context.Background(), alice, bob)
	require.NoError(t, err)

	err = service.Decline(context.Background(), request.ID, alice)
	assert.ErrorIs(t, err, infrastructure.ErrUnauthorized)
}

func TestAcceptUnknownRequest(t *testing.T) {
	service, _, bob := newTestService()

	err := service.Accept(context.Background(), uuid.New(), bob)
	assert.ErrorIs(t, err, infrastructure.ErrNotFound)
}

func TestSendAfterAccepted(t *testing.T) {
	service, alice, bob := newTestService()

	request, err := service.Send(context.Background(), alice, bob)
	require.NoError(t, err)
	require.NoError(t, service.Accept(context.Background(), request.ID, bob))

	_, err = service.Send(context.Background(), alice, bob)
	require.Error(t, err)
	assert.ErrorIs(t, err, infrastructure.ErrConflict)
	assert.Equal(t, "You are already friends with this user", err.Error())
}
