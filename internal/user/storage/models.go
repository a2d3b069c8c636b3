package storage

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// User is the row shape of the users table.
type User struct {
	ID                  uuid.UUID
	Email               string
	FullName            string
	PasswordHash        string
	ProfilePic          string
	Bio                 string
	NativeLanguage      string
	LearningLanguage    string
	Location            string
	IsOnboarded         bool
	ResetTokenHash      sql.NullString
	ResetTokenExpiresAt sql.NullTime
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
