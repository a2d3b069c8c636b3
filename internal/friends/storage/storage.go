package storage

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	userstorage "lingualink/internal/user/storage"
)

// RequestWithUser joins a request row with one participant's profile row
// (sender for incoming listings, recipient for outgoing).
type RequestWithUser struct {
	Request FriendRequest
	User    userstorage.User
}

type Saver interface {
	SaveRequest(tx *sql.Tx, request *FriendRequest) error
}

type Provider interface {
	RequestByID(id *uuid.UUID) (*FriendRequest, error)
	ActiveRequestBetween(a, b *uuid.UUID) (*FriendRequest, error)
	PendingForRecipient(userID *uuid.UUID) ([]*RequestWithUser, error)
	PendingFromSender(userID *uuid.UUID) ([]*RequestWithUser, error)
	FriendsOf(userID *uuid.UUID) ([]*userstorage.User, error)
}

type Updater interface {
	AcceptRequest(tx *sql.Tx, id *uuid.UUID) (int64, error)
}

type Deleter interface {
	DeleteRequest(tx *sql.Tx, id *uuid.UUID) (int64, error)
}

type PostgresStorage struct {
	db *sql.DB
}

func NewFriendsPostgresStorage(db *sql.DB) *PostgresStorage {
	return &PostgresStorage{db: db}
}

const requestColumns = `id, sender_id, recipient_id, status, created_at, updated_at`

const profileColumns = `u.id, u.email, u.full_name, u.profile_pic, u.bio,
	u.native_language, u.learning_language, u.location, u.is_onboarded,
	u.created_at, u.updated_at`

func (r *PostgresStorage) SaveRequest(tx *sql.Tx, request *FriendRequest) error {
	_, err := tx.Exec(`
		INSERT INTO friend_requests (id, sender_id, recipient_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		request.ID, request.SenderID, request.RecipientID, request.Status,
		request.CreatedAt, request.UpdatedAt)
	return err
}

func (r *PostgresStorage) RequestByID(id *uuid.UUID) (*FriendRequest, error) {
	return scanRequest(r.db.QueryRow(
		`SELECT `+requestColumns+` FROM friend_requests WHERE id = $1`, id))
}

// ActiveRequestBetween matches the edge in either direction; pending and
// accepted rows are the only rows that exist.
func (r *PostgresStorage) ActiveRequestBetween(a, b *uuid.UUID) (*FriendRequest, error) {
	return scanRequest(r.db.QueryRow(`
		SELECT `+requestColumns+` FROM friend_requests
		WHERE (sender_id = $1 AND recipient_id = $2)
		   OR (sender_id = $2 AND recipient_id = $1)`,
		a, b))
}

// AcceptRequest only transitions pending rows; the caller treats zero
// affected rows as the request no longer being acceptable.
func (r *PostgresStorage) AcceptRequest(tx *sql.Tx, id *uuid.UUID) (int64, error) {
	result, err := tx.Exec(`
		UPDATE friend_requests SET status = 'accepted', updated_at = $1
		WHERE id = $2 AND status = 'pending'`,
		time.Now(), id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresStorage) DeleteRequest(tx *sql.Tx, id *uuid.UUID) (int64, error) {
	result, err := tx.Exec(`DELETE FROM friend_requests WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresStorage) PendingForRecipient(userID *uuid.UUID) ([]*RequestWithUser, error) {
	rows, err := r.db.Query(`
		SELECT fr.id, fr.sender_id, fr.recipient_id, fr.status, fr.created_at, fr.updated_at,
		       `+profileColumns+`
		FROM friend_requests fr
		JOIN users u ON u.id = fr.sender_id
		WHERE fr.recipient_id = $1 AND fr.status = 'pending'
		ORDER BY fr.created_at`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRequestsWithUser(rows)
}

func (r *PostgresStorage) PendingFromSender(userID *uuid.UUID) ([]*RequestWithUser, error) {
	rows, err := r.db.Query(`
		SELECT fr.id, fr.sender_id, fr.recipient_id, fr.status, fr.created_at, fr.updated_at,
		       `+profileColumns+`
		FROM friend_requests fr
		JOIN users u ON u.id = fr.recipient_id
		WHERE fr.sender_id = $1 AND fr.status = 'pending'
		ORDER BY fr.created_at`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRequestsWithUser(rows)
}

func (r *PostgresStorage) FriendsOf(userID *uuid.UUID) ([]*userstorage.User, error) {
	rows, err := r.db.Query(`
		SELECT `+profileColumns+`
		FROM friend_requests fr
		JOIN users u ON u.id = CASE WHEN fr.sender_id = $1 THEN fr.recipient_id ELSE fr.sender_id END
		WHERE (fr.sender_id = $1 OR fr.recipient_id = $1) AND fr.status = 'accepted'
		ORDER BY u.full_name`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*userstorage.User
	for rows.Next() {
		u := &userstorage.User{}
		if err := scanProfile(rows, u); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func scanRequest(row *sql.Row) (*FriendRequest, error) {
	request := &FriendRequest{}
	err := row.Scan(&request.ID, &request.SenderID, &request.RecipientID,
		&request.Status, &request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return request, nil
}

func scanRequestsWithUser(rows *sql.Rows) ([]*RequestWithUser, error) {
	var results []*RequestWithUser
	for rows.Next() {
		item := &RequestWithUser{}
		err := rows.Scan(
			&item.Request.ID, &item.Request.SenderID, &item.Request.RecipientID,
			&item.Request.Status, &item.Request.CreatedAt, &item.Request.UpdatedAt,
			&item.User.ID, &item.User.Email, &item.User.FullName, &item.User.ProfilePic,
			&item.User.Bio, &item.User.NativeLanguage, &item.User.LearningLanguage,
			&item.User.Location, &item.User.IsOnboarded, &item.User.CreatedAt, &item.User.UpdatedAt)
		if err != nil {
			return nil, err
		}
		results = append(results, item)
	}
	return results, rows.Err()
}

func scanProfile(rows *sql.Rows, u *userstorage.User) error {
	return rows.Scan(&u.ID, &u.Email, &u.FullName, &u.ProfilePic, &u.Bio,
		&u.NativeLanguage, &u.LearningLanguage, &u.Location, &u.IsOnboarded,
		&u.CreatedAt, &u.UpdatedAt)
}
