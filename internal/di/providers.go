package di

import (
	"database/sql"

	"lingualink/config"
	"lingualink/internal/api"
	"lingualink/internal/auth"
	"lingualink/internal/directory"
	"lingualink/internal/email"
	"lingualink/internal/friends"
	friendsstorage "lingualink/internal/friends/storage"
	"lingualink/internal/profile"
	"lingualink/internal/provisioning"
	"lingualink/internal/user"
	userstorage "lingualink/internal/user/storage"
	"lingualink/pkg/token"
)

func ProvideUserStorage(db *sql.DB) *userstorage.PostgresStorage {
	return userstorage.NewUserPostgresStorage(db)
}

func ProvideUserRepository(db *sql.DB, s *userstorage.PostgresStorage) user.Repository {
	return user.NewRepository(db, s, s, s)
}

func ProvideMessagingProvider(cfg *config.Config) provisioning.Provider {
	return provisioning.NewHTTPProvider(cfg.StreamBaseURL, cfg.StreamAPIKey)
}

func ProvideMirrorQueue(provider provisioning.Provider) (*provisioning.Queue, func()) {
	queue := provisioning.NewQueue(provider)
	return queue, queue.Close
}

func ProvideUserService(users user.Repository, queue *provisioning.Queue) *user.Service {
	return user.NewService(users, queue)
}

func ProvideTokenIssuer(cfg *config.Config) *token.Issuer {
	return token.NewIssuer(cfg.JWTSecret, cfg.SessionTTL)
}

func ProvideEmailSender(cfg *config.Config) *email.Sender {
	return email.NewEmailSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
}

func ProvideAuthUseCase(
	users *user.Service,
	userRepo user.Repository,
	issuer *token.Issuer,
	sender *email.Sender,
	cfg *config.Config,
) auth.UseCase {
	return auth.NewUseCase(users, userRepo, issuer, sender, cfg.BaseURL, cfg.ResetTokenTTL)
}

func ProvideAuthHandler(useCase auth.UseCase, users *user.Service, cfg *config.Config) *auth.JSONHandler {
	return auth.NewJSONAuthHandler(useCase, users, cfg.SessionTTL, cfg.Production())
}

func ProvideFriendsStorage(db *sql.DB) *friendsstorage.PostgresStorage {
	return friendsstorage.NewFriendsPostgresStorage(db)
}

func ProvideFriendsRepository(db *sql.DB, s *friendsstorage.PostgresStorage) friends.Repository {
	return friends.NewRepository(db, s, s, s, s)
}

func ProvideFriendsService(requests friends.Repository, users user.Repository) *friends.Service {
	return friends.NewService(requests, users)
}

func ProvideDirectoryRepository(db *sql.DB) directory.Repository {
	return directory.NewRepository(db)
}

func ProvideServer(
	cfg *config.Config,
	authHandler *auth.JSONHandler,
	friendsHandler *friends.JSONHandler,
	directoryHandler *directory.JSONHandler,
	profileHandler *profile.JSONHandler,
) *api.Server {
	return api.NewServer(authHandler, friendsHandler, directoryHandler, profileHandler, cfg.RateLimitRPS)
}
