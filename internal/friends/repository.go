package friends

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"lingualink/infrastructure"
	"lingualink/internal/friends/storage"
	"lingualink/internal/user"
)

type Repository interface {
	Create(ctx context.Context, request *FriendRequest) (*FriendRequest, error)
	GetByID(ctx context.Context, id *uuid.UUID) (*FriendRequest, error)
	ActiveBetween(ctx context.Context, a, b *uuid.UUID) (*FriendRequest, error)
	Accept(ctx context.Context, id *uuid.UUID) error
	Delete(ctx context.Context, id *uuid.UUID) error
	Friends(ctx context.Context, userID *uuid.UUID) ([]*user.User, error)
	PendingForRecipient(ctx context.Context, userID *uuid.UUID) ([]*RequestWithUser, error)
	PendingFromSender(ctx context.Context, userID *uuid.UUID) ([]*RequestWithUser, error)
}

const uniqueViolation = "23505"

type repository struct {
	db              *sql.DB
	requestSaver    storage.Saver
	requestProvider storage.Provider
	requestUpdater  storage.Updater
	requestDeleter  storage.Deleter
}

func NewRepository(
	db *sql.DB,
	requestSaver storage.Saver,
	requestProvider storage.Provider,
	requestUpdater storage.Updater,
	requestDeleter storage.Deleter,
) Repository {
	return &repository{
		db:              db,
		requestSaver:    requestSaver,
		requestProvider: requestProvider,
		requestUpdater:  requestUpdater,
		requestDeleter:  requestDeleter,
	}
}

// Create inserts the edge. Losing the race against a concurrent request for
// the same pair surfaces the unique-pair index as a Conflict.
func (r *repository) Create(ctx context.Context, request *FriendRequest) (*FriendRequest, error) {
	err := infrastructure.WithTransaction(r.db, ctx, func(tx *sql.Tx) error {
		return r.requestSaver.SaveRequest(tx, convertRequestToDBRequest(request))
	})
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, infrastructure.NewError(infrastructure.ErrConflict,
				"A friend request already exists between you and this user")
		}
		return nil, err
	}
	return request, nil
}

func (r *repository) GetByID(ctx context.Context, id *uuid.UUID) (*FriendRequest, error) {
	dbRequest, err := r.requestProvider.RequestByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, infrastructure.NewError(infrastructure.ErrNotFound, "Friend request not found")
		}
		return nil, err
	}
	return convertDBRequestToRequest(dbRequest), nil
}

// ActiveBetween returns nil without error when no edge exists.
func (r *repository) ActiveBetween(ctx context.Context, a, b *uuid.UUID) (*FriendRequest, error) {
	dbRequest, err := r.requestProvider.ActiveRequestBetween(a, b)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return convertDBRequestToRequest(dbRequest), nil
}

func (r *repository) Accept(ctx context.Context, id *uuid.UUID) error {
	return infrastructure.WithTransaction(r.db, ctx, func(tx *sql.Tx) error {
		affected, err := r.requestUpdater.AcceptRequest(tx, id)
		if err != nil {
			return err
		}
		if affected == 0 {
			return infrastructure.NewError(infrastructure.ErrNotFound, "Friend request not found")
		}
		return nil
	})
}

func (r *repository) Delete(ctx context.Context, id *uuid.UUID) error {
	return infrastructure.WithTransaction(r.db, ctx, func(tx *sql.Tx) error {
		affected, err := r.requestDeleter.DeleteRequest(tx, id)
		if err != nil {
			return err
		}
		if affected == 0 {
			return infrastructure.NewError(infrastructure.ErrNotFound, "Friend request not found")
		}
		return nil
	})
}

func (r *repository) Friends(ctx context.Context, userID *uuid.UUID) ([]*user.User, error) {
	dbUsers, err := r.requestProvider.FriendsOf(userID)
	if err != nil {
		return nil, err
	}
	users := make([]*user.User, len(dbUsers))
	for i, dbUser := range dbUsers {
		users[i] = user.ConvertDBUserToUser(dbUser)
	}
	return users, nil
}

func (r *repository) PendingForRecipient(ctx context.Context, userID *uuid.UUID) ([]*RequestWithUser, error) {
	items, err := r.requestProvider.PendingForRecipient(userID)
	if err != nil {
		return nil, err
	}
	results := make([]*RequestWithUser, len(items))
	for i, item := range items {
		results[i] = &RequestWithUser{
			FriendRequest: *convertDBRequestToRequest(&item.Request),
			Sender:        user.ConvertDBUserToUser(&item.User),
		}
	}
	return results, nil
}

func (r *repository) PendingFromSender(ctx context.Context, userID *uuid.UUID) ([]*RequestWithUser, error) {
	items, err := r.requestProvider.PendingFromSender(userID)
	if err != nil {
		return nil, err
	}
	results := make([]*RequestWithUser, len(items))
	for i, item := range items {
		results[i] = &RequestWithUser{
			FriendRequest: *convertDBRequestToRequest(&item.Request),
			Recipient:     user.ConvertDBUserToUser(&item.User),
		}
	}
	return results, nil
}

func convertDBRequestToRequest(dbRequest *storage.FriendRequest) *FriendRequest {
	return &FriendRequest{
		ID:          dbRequest.ID,
		SenderID:    dbRequest.SenderID,
		RecipientID: dbRequest.RecipientID,
		Status:      Status(dbRequest.Status),
		CreatedAt:   dbRequest.CreatedAt,
		UpdatedAt:   dbRequest.UpdatedAt,
	}
}

func convertRequestToDBRequest(request *FriendRequest) *storage.FriendRequest {
	return &storage.FriendRequest{
		ID:          request.ID,
		SenderID:    request.SenderID,
		RecipientID: request.RecipientID,
		Status:      string(request.Status),
		CreatedAt:   request.CreatedAt,
		UpdatedAt:   request.UpdatedAt,
	}
}
