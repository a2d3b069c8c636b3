package storage

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type Saver interface {
	SaveUser(tx *sql.Tx, user *User) error
}

type Provider interface {
	UserByID(id *uuid.UUID) (*User, error)
	UserByEmail(email string) (*User, error)
	UserByResetTokenHash(hash string) (*User, error)
}

type Updater interface {
	UpdateProfile(tx *sql.Tx, user *User) error
	SetResetToken(tx *sql.Tx, userID *uuid.UUID, hash string, expiresAt time.Time) error
	UpdatePasswordAndClearResetToken(tx *sql.Tx, userID *uuid.UUID, passwordHash string) error
}

type PostgresStorage struct {
	db *sql.DB
}

func NewUserPostgresStorage(db *sql.DB) *PostgresStorage {
	return &PostgresStorage{db: db}
}

const userColumns = `id, email, full_name, password_hash, profile_pic, bio,
	native_language, learning_language, location, is_onboarded,
	reset_token_hash, reset_token_expires_at, created_at, updated_at`

func (r *PostgresStorage) SaveUser(tx *sql.Tx, user *User) error {
	_, err := tx.Exec(`
		INSERT INTO users (id, email, full_name, password_hash, profile_pic, bio,
		                   native_language, learning_language, location, is_onboarded,
		                   created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		user.ID, user.Email, user.FullName, user.PasswordHash, user.ProfilePic, user.Bio,
		user.NativeLanguage, user.LearningLanguage, user.Location, user.IsOnboarded,
		user.CreatedAt, user.UpdatedAt)
	return err
}

func (r *PostgresStorage) UserByID(id *uuid.UUID) (*User, error) {
	return r.scanUser(r.db.QueryRow(
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *PostgresStorage) UserByEmail(email string) (*User, error) {
	return r.scanUser(r.db.QueryRow(
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *PostgresStorage) UserByResetTokenHash(hash string) (*User, error) {
	return r.scanUser(r.db.QueryRow(
		`SELECT `+userColumns+` FROM users WHERE reset_token_hash = $1`, hash))
}

func (r *PostgresStorage) UpdateProfile(tx *sql.Tx, user *User) error {
	_, err := tx.Exec(`
		UPDATE users SET
		full_name = $2, profile_pic = $3, bio = $4, native_language = $5,
		learning_language = $6, location = $7, is_onboarded = $8, updated_at = $9
		WHERE id = $1`,
		user.ID, user.FullName, user.ProfilePic, user.Bio, user.NativeLanguage,
		user.LearningLanguage, user.Location, user.IsOnboarded, time.Now())
	return err
}

func (r *PostgresStorage) SetResetToken(tx *sql.Tx, userID *uuid.UUID, hash string, expiresAt time.Time) error {
	_, err := tx.Exec(`
		UPDATE users SET reset_token_hash = $1, reset_token_expires_at = $2, updated_at = $3
		WHERE id = $4`,
		hash, expiresAt, time.Now(), userID)
	return err
}

func (r *PostgresStorage) UpdatePasswordAndClearResetToken(tx *sql.Tx, userID *uuid.UUID, passwordHash string) error {
	_, err := tx.Exec(`
		UPDATE users SET password_hash = $1, reset_token_hash = NULL,
		reset_token_expires_at = NULL, updated_at = $2
		WHERE id = $3`,
		passwordHash, time.Now(), userID)
	return err
}

func (r *PostgresStorage) scanUser(row *sql.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID, &user.Email, &user.FullName, &user.PasswordHash, &user.ProfilePic,
		&user.Bio, &user.NativeLanguage, &user.LearningLanguage, &user.Location,
		&user.IsOnboarded, &user.ResetTokenHash, &user.ResetTokenExpiresAt,
		&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}
