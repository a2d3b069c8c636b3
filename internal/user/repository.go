package user

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"lingualink/infrastructure"
	"lingualink/internal/user/storage"
)

type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByID(ctx context.Context, id *uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByResetTokenHash(ctx context.Context, hash string) (*User, error)
	UpdateProfile(ctx context.Context, user *User) error
	SetResetToken(ctx context.Context, userID *uuid.UUID, hash string, expiresAt time.Time) error
	ResetPassword(ctx context.Context, userID *uuid.UUID, passwordHash string) error
}

const uniqueViolation = "23505"

type repository struct {
	db           *sql.DB
	userSaver    storage.Saver
	userProvider storage.Provider
	userUpdater  storage.Updater
}

func NewRepository(
	db *sql.DB,
	userSaver storage.Saver,
	userProvider storage.Provider,
	userUpdater storage.Updater,
) Repository {
	return &repository{
		db:           db,
		userSaver:    userSaver,
		userProvider: userProvider,
		userUpdater:  userUpdater,
	}
}

func (r *repository) Create(ctx context.Context, user *User) (*User, error) {
	err := infrastructure.WithTransaction(r.db, ctx, func(tx *sql.Tx) error {
		return r.userSaver.SaveUser(tx, ConvertUserToDBUser(user))
	})
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, infrastructure.NewError(infrastructure.ErrConflict, "Email already in use. Use different one")
		}
		return nil, err
	}
	return user, nil
}

func (r *repository) GetByID(ctx context.Context, id *uuid.UUID) (*User, error) {
	dbUser, err := r.userProvider.UserByID(id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return ConvertDBUserToUser(dbUser), nil
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	dbUser, err := r.userProvider.UserByEmail(email)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return ConvertDBUserToUser(dbUser), nil
}

func (r *repository) GetByResetTokenHash(ctx context.Context, hash string) (*User, error) {
	dbUser, err := r.userProvider.UserByResetTokenHash(hash)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return ConvertDBUserToUser(dbUser), nil
}

func (r *repository) UpdateProfile(ctx context.Context, user *User) error {
	return infrastructure.WithTransaction(r.db, ctx, func(tx *sql.Tx) error {
		return r.userUpdater.UpdateProfile(tx, ConvertUserToDBUser(user))
	})
}

func (r *repository) SetResetToken(ctx context.Context, userID *uuid.UUID, hash string, expiresAt time.Time) error {
	return infrastructure.WithTransaction(r.db, ctx, func(tx *sql.Tx) error {
		return r.userUpdater.SetResetToken(tx, userID, hash, expiresAt)
	})
}

func (r *repository) ResetPassword(ctx context.Context, userID *uuid.UUID, passwordHash string) error {
	return infrastructure.WithTransaction(r.db, ctx, func(tx *sql.Tx) error {
		return r.userUpdater.UpdatePasswordAndClearResetToken(tx, userID, passwordHash)
	})
}

func notFoundOr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return infrastructure.NewError(infrastructure.ErrNotFound, "User not found")
	}
	return err
}
