package user

import (
	"database/sql"

	"lingualink/internal/user/storage"
)

func ConvertDBUserToUser(dbUser *storage.User) *User {
	user := &User{
		ID:               dbUser.ID,
		Email:            dbUser.Email,
		FullName:         dbUser.FullName,
		PasswordHash:     dbUser.PasswordHash,
		ProfilePic:       dbUser.ProfilePic,
		Bio:              dbUser.Bio,
		NativeLanguage:   dbUser.NativeLanguage,
		LearningLanguage: dbUser.LearningLanguage,
		Location:         dbUser.Location,
		IsOnboarded:      dbUser.IsOnboarded,
		CreatedAt:        dbUser.CreatedAt,
		UpdatedAt:        dbUser.UpdatedAt,
	}
	if dbUser.ResetTokenHash.Valid {
		user.ResetTokenHash = dbUser.ResetTokenHash.String
	}
	if dbUser.ResetTokenExpiresAt.Valid {
		expiresAt := dbUser.ResetTokenExpiresAt.Time
		user.ResetTokenExpiresAt = &expiresAt
	}
	return user
}

func ConvertUserToDBUser(user *User) *storage.User {
	dbUser := &storage.User{
		ID:               user.ID,
		Email:            user.Email,
		FullName:         user.FullName,
		PasswordHash:     user.PasswordHash,
		ProfilePic:       user.ProfilePic,
		Bio:              user.Bio,
		NativeLanguage:   user.NativeLanguage,
		LearningLanguage: user.LearningLanguage,
		Location:         user.Location,
		IsOnboarded:      user.IsOnboarded,
		CreatedAt:        user.CreatedAt,
		UpdatedAt:        user.UpdatedAt,
	}
	if user.ResetTokenHash != "" {
		dbUser.ResetTokenHash = sql.NullString{String: user.ResetTokenHash, Valid: true}
	}
	if user.ResetTokenExpiresAt != nil {
		dbUser.ResetTokenExpiresAt = sql.NullTime{Time: *user.ResetTokenExpiresAt, Valid: true}
	}
	return dbUser
}
