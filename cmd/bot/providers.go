package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Jacobbrewer1/bazaar/cmd/bot/config"
	"github.com/Jacobbrewer1/bazaar/pkg/dataaccess"
	"github.com/Jacobbrewer1/bazaar/pkg/dataaccess/connection"
	"github.com/Jacobbrewer1/bazaar/pkg/ledger"
	"github.com/Jacobbrewer1/bazaar/pkg/logging"
	"github.com/Jacobbrewer1/bazaar/pkg/platform"
	"github.com/Jacobbrewer1/bazaar/pkg/prompt"
	"github.com/Jacobbrewer1/bazaar/pkg/reactionroles"
	"github.com/Jacobbrewer1/bazaar/pkg/rolepanel"
	"github.com/Jacobbrewer1/bazaar/pkg/shop"
	"github.com/Jacobbrewer1/bazaar/pkg/ticketing"
	"github.com/Jacobbrewer1/discordgo"
)

func newLoggingConfig(name logging.Name, cfg *config.Config) *logging.Config {
	c := logging.NewConfig(name)
	if cfg.Debug {
		c.Level = slog.LevelDebug
	}
	return c
}

func newDiscordSession(cfg *config.Config) (*discordgo.Session, error) {
	dg, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}
	return dg, nil
}

// newBackend stores documents in Mongo when a URI is configured, otherwise in the data directory.
func newBackend(ctx context.Context, l *slog.Logger, cfg *config.Config) (dataaccess.Backend, error) {
	if !cfg.UseMongo() {
		return dataaccess.NewFileBackend(cfg.DataDir), nil
	}

	conn := &connection.MongoDB{ConnectionString: cfg.MongoUri}
	client, err := conn.Connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("error connecting to mongo: %w", err)
	}
	return dataaccess.NewMongoBackend(l, client), nil
}

func newTicketService(l *slog.Logger, s platform.Session, lg *ledger.Ledger, id *Identity, cfg *config.Config) *ticketing.Service {
	return ticketing.NewService(l, s, lg, id.ID, cfg.AssetChannel, cfg.CurrencyName)
}

func newCatalog(l *slog.Logger, s platform.Session) *shop.Catalog {
	return shop.NewCatalog(shop.ListingTTL, expireListing(l, s))
}

func newRolePanelSetup(l *slog.Logger, s platform.Session, w *prompt.Waiter, m *reactionroles.Map) *rolepanel.Setup {
	return rolepanel.NewSetup(l, s, w, m)
}

func newReactionRoleHandler(l *slog.Logger, m *reactionroles.Map, s platform.Session, id *Identity) *reactionroles.Handler {
	return reactionroles.NewHandler(l, m, s, id.ID)
}
