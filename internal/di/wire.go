//go:build wireinject
// +build wireinject

package di

import (
	"database/sql"

	"github.com/google/wire"

	"lingualink/config"
	"lingualink/internal/api"
	"lingualink/internal/directory"
	"lingualink/internal/friends"
	"lingualink/internal/profile"
)

// InitializeServer assembles the full handler tree. The cleanup function
// drains the provisioning queue.
func InitializeServer(cfg *config.Config, db *sql.DB) (*api.Server, func()) {
	wire.Build(
		ProvideUserStorage,
		ProvideUserRepository,
		ProvideMessagingProvider,
		ProvideMirrorQueue,
		ProvideUserService,
		ProvideTokenIssuer,
		ProvideEmailSender,
		ProvideAuthUseCase,
		ProvideAuthHandler,
		ProvideFriendsStorage,
		ProvideFriendsRepository,
		ProvideFriendsService,
		friends.NewJSONFriendsHandler,
		ProvideDirectoryRepository,
		directory.NewService,
		directory.NewJSONDirectoryHandler,
		profile.NewJSONProfileHandler,
		ProvideServer,
	)
	return nil, nil
}
