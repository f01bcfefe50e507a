//go:build wireinject
// +build wireinject

package main

import (
	"context"

	"github.com/Jacobbrewer1/bazaar/cmd/bot/config"
	"github.com/Jacobbrewer1/bazaar/pkg/guildconfig"
	"github.com/Jacobbrewer1/bazaar/pkg/ledger"
	"github.com/Jacobbrewer1/bazaar/pkg/logging"
	"github.com/Jacobbrewer1/bazaar/pkg/platform"
	"github.com/Jacobbrewer1/bazaar/pkg/prompt"
	"github.com/Jacobbrewer1/bazaar/pkg/reactionroles"
	"github.com/google/wire"
	"github.com/gorilla/mux"
)

func InitializeApp(ctx context.Context, cfg *config.Config) (*App, error) {
	wire.Build(
		wire.Value(logging.Name(config.AppName)),
		newLoggingConfig,
		logging.CommonLogger,
		mux.NewRouter,
		newDiscordSession,
		platform.NewDiscordSession,
		newBackend,
		NewIdentity,
		ledger.NewLedger,
		guildconfig.NewWelcomeStore,
		guildconfig.NewFeedbackStore,
		reactionroles.NewMap,
		prompt.NewWaiter,
		newTicketService,
		newCatalog,
		newRolePanelSetup,
		newReactionRoleHandler,
		NewApp,
	)
	return new(App), nil
}
