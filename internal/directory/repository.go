package directory

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"lingualink/internal/user"
	userstorage "lingualink/internal/user/storage"
)

type Repository interface {
	Recommended(ctx context.Context, userID *uuid.UUID) ([]*user.User, error)
	Search(ctx context.Context, userID *uuid.UUID, query string) ([]*user.User, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const profileColumns = `u.id, u.email, u.full_name, u.profile_pic, u.bio,
	u.native_language, u.learning_language, u.location, u.is_onboarded,
	u.created_at, u.updated_at`

// Recommended excludes the user themselves, anyone sharing an edge with
// them in either direction (pending or accepted), and anyone who has not
// finished onboarding.
func (r *repository) Recommended(ctx context.Context, userID *uuid.UUID) ([]*user.User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+profileColumns+`
		FROM users u
		WHERE u.id <> $1
		  AND u.is_onboarded
		  AND NOT EXISTS (
		      SELECT 1 FROM friend_requests fr
		      WHERE (fr.sender_id = $1 AND fr.recipient_id = u.id)
		         OR (fr.sender_id = u.id AND fr.recipient_id = $1))
		ORDER BY u.full_name`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProfiles(rows)
}

// Search matches name and email case-insensitively. Unlike Recommended it
// keeps existing friends in the results.
func (r *repository) Search(ctx context.Context, userID *uuid.UUID, query string) ([]*user.User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+profileColumns+`
		FROM users u
		WHERE u.id <> $1
		  AND (u.full_name ILIKE '%' || $2 || '%' OR u.email ILIKE '%' || $2 || '%')
		ORDER BY u.full_name`,
		userID, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProfiles(rows)
}

func scanProfiles(rows *sql.Rows) ([]*user.User, error) {
	var users []*user.User
	for rows.Next() {
		dbUser := &userstorage.User{}
		err := rows.Scan(&dbUser.ID, &dbUser.Email, &dbUser.FullName, &dbUser.ProfilePic,
			&dbUser.Bio, &dbUser.NativeLanguage, &dbUser.LearningLanguage, &dbUser.Location,
			&dbUser.IsOnboarded, &dbUser.CreatedAt, &dbUser.UpdatedAt)
		if err != nil {
			return nil, err
		}
		users = append(users, user.ConvertDBUserToUser(dbUser))
	}
	return users, rows.Err()
}
