package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Jacobbrewer1/bazaar/cmd/bot/config"
	"github.com/Jacobbrewer1/bazaar/cmd/bot/monitoring"
	"github.com/Jacobbrewer1/bazaar/pkg/dataaccess"
	"github.com/Jacobbrewer1/bazaar/pkg/guildconfig"
	"github.com/Jacobbrewer1/bazaar/pkg/ledger"
	"github.com/Jacobbrewer1/bazaar/pkg/logging"
	"github.com/Jacobbrewer1/bazaar/pkg/platform"
	"github.com/Jacobbrewer1/bazaar/pkg/prompt"
	"github.com/Jacobbrewer1/bazaar/pkg/reactionroles"
	"github.com/Jacobbrewer1/bazaar/pkg/request"
	"github.com/Jacobbrewer1/bazaar/pkg/rolepanel"
	"github.com/Jacobbrewer1/bazaar/pkg/shop"
	"github.com/Jacobbrewer1/bazaar/pkg/ticketing"
	"github.com/Jacobbrewer1/discordgo"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// PathMetrics is the path for metrics.
	PathMetrics = "/metrics"

	// PathHealth is the path for the health check.
	PathHealth = "/health"
)

// shutdownTimeout bounds the monitoring server shutdown.
const shutdownTimeout = 5 * time.Second

// IApp is the interface for the application.
type IApp interface {
	// Log returns the logger.
	Log() *slog.Logger

	// Context is cancelled when the application shuts down.
	Context() context.Context

	// Session returns the discord session.
	Session() platform.Session

	// Config returns the configuration.
	Config() *config.Config

	// BotID returns the bot's user ID. It is empty until the gateway is ready.
	BotID() string

	Ledger() *ledger.Ledger
	Welcome() *guildconfig.WelcomeStore
	Feedback() *guildconfig.FeedbackStore
	Tickets() *ticketing.Service
	Catalog() *shop.Catalog
	RolePanels() *rolepanel.Setup
}

type App struct {
	// is the logger.
	*slog.Logger

	ctx context.Context

	cfg *config.Config

	// r is the router for the monitoring server.
	r *mux.Router

	// svr is the monitoring server.
	svr *http.Server

	// dg is the discord session.
	dg *discordgo.Session

	// s wraps dg for the handlers.
	s platform.Session

	backend  dataaccess.Backend
	identity *Identity

	ledger        *ledger.Ledger
	welcome       *guildconfig.WelcomeStore
	feedback      *guildconfig.FeedbackStore
	tickets       *ticketing.Service
	catalog       *shop.Catalog
	waiter        *prompt.Waiter
	rolePanels    *rolepanel.Setup
	reactionRoles *reactionroles.Handler

	limiter *userLimiter

	// eventNotifier is the channel for notifying of events.
	eventNotifier chan any
}

// NewApp creates a new instance of App.
func NewApp(
	ctx context.Context,
	l *slog.Logger,
	cfg *config.Config,
	r *mux.Router,
	dg *discordgo.Session,
	s platform.Session,
	backend dataaccess.Backend,
	identity *Identity,
	lg *ledger.Ledger,
	welcome *guildconfig.WelcomeStore,
	feedback *guildconfig.FeedbackStore,
	tickets *ticketing.Service,
	catalog *shop.Catalog,
	waiter *prompt.Waiter,
	rolePanels *rolepanel.Setup,
	reactionRoles *reactionroles.Handler,
) *App {
	return &App{
		Logger:        l,
		ctx:           ctx,
		cfg:           cfg,
		r:             r,
		dg:            dg,
		s:             s,
		backend:       backend,
		identity:      identity,
		ledger:        lg,
		welcome:       welcome,
		feedback:      feedback,
		tickets:       tickets,
		catalog:       catalog,
		waiter:        waiter,
		rolePanels:    rolePanels,
		reactionRoles: reactionRoles,
		limiter:       newUserLimiter(interactionRate, interactionBurst),
	}
}

// Run connects to Discord and blocks until the application context is cancelled.
func (a *App) Run() error {
	a.RegisterBot()

	a.dg.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) {
		a.identity.Set(r.User.ID)
		a.Info(fmt.Sprintf("Logged in as %s", r.User.Username))
		checkFeedbackPanels(a)
	})

	a.RegisterDiscordHandlers()

	// Start event listener.
	go a.eventListener()

	// Open websocket.
	if err := a.dg.Open(); err != nil {
		return fmt.Errorf("error opening connection to Discord: %w", err)
	}

	a.Info("Bot is now running.")

	a.generateServer()
	a.setupRoutes()
	a.runServer()

	<-a.ctx.Done()
	a.Info("Received shutdown signal")

	if err := a.ShutdownHook(); err != nil {
		return fmt.Errorf("error shutting down application: %w", err)
	}
	return nil
}

func (a *App) ShutdownHook() error {
	// Reset the total number of guilds to 0.
	monitoring.TotalDiscordGuilds.Set(0)

	if err := a.unregisterSlashCommands(); err != nil {
		a.Error("Error unregistering slash commands", slog.String(logging.KeyError, err.Error()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if a.svr != nil {
		if err := a.svr.Shutdown(ctx); err != nil {
			a.Error("Error shutting down monitoring server", slog.String(logging.KeyError, err.Error()))
		}
	}

	// Close the connection to Discord.
	if err := a.dg.Close(); err != nil {
		return fmt.Errorf("error closing connection to Discord: %w", err)
	}
	return nil
}

func (a *App) RegisterBot() {
	// Default the number of guilds to 0.
	monitoring.TotalDiscordGuilds.Set(0)

	a.dg.Identify.Intents = discordgo.MakeIntent(discordgo.IntentsAll)

	if a.eventNotifier == nil {
		// Create event notifier. It is buffered to prevent blocking the gateway.
		a.eventNotifier = make(chan any, 100)
	}

	a.dg.SetEventNotifier(a.eventNotifier)
}

func (a *App) setupRoutes() {
	a.r.HandleFunc(PathMetrics, promhttp.Handler().ServeHTTP).Methods(http.MethodGet)
	a.r.HandleFunc(PathHealth, middlewareHttp(a, a.healthCheck())).Methods(http.MethodGet)

	a.r.NotFoundHandler = request.NotFoundHandler(a.Logger)
	a.r.MethodNotAllowedHandler = request.MethodNotAllowedHandler(a.Logger)
}

func (a *App) generateServer() {
	a.svr = &http.Server{
		Addr:              ":" + a.cfg.MonitoringPort,
		Handler:           a.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func (a *App) runServer() {
	go func() {
		a.Info("Starting monitoring server", slog.String("addr", a.svr.Addr))
		if err := a.svr.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Error("Error starting monitoring server", slog.String(logging.KeyError, err.Error()))
			a.Warn("Monitoring server will not be available")
		}
	}()
}

func (a *App) GetJoinedGuilds() ([]*discordgo.UserGuild, error) {
	guilds, err := a.dg.UserGuilds(0, "", "")
	if err != nil {
		return nil, fmt.Errorf("error getting guilds: %w", err)
	}
	return guilds, nil
}

func (a *App) RegisterDiscordHandlers() {
	// Bot joined guild. This also fires for every guild on connect.
	a.dg.AddHandler(guildJoinedHandler(a, a.registerSlashCommands))

	// Bot left guild.
	a.dg.AddHandler(guildLeaveHandler(a))

	a.dg.AddHandler(memberJoinHandler(a))

	a.dg.AddHandler(reactionAddHandler(a, a.reactionRoles))
	a.dg.AddHandler(reactionRemoveHandler(a, a.reactionRoles))

	// Plain messages answer guided setup prompts.
	a.dg.AddHandler(a.waiter.MessageCreateHandler())

	a.dg.AddHandler(interactionHandler(a, a.limiter, newRouter()))
}

func (a *App) eventListener() {
	for e := range a.eventNotifier {
		switch t := e.(type) {
		case *discordgo.Event:
			if t.Type != "" {
				monitoring.TotalDiscordEvents.WithLabelValues(t.Type).Inc()
			} else {
				// If there is no type, then use the operation name.
				monitoring.TotalDiscordEvents.WithLabelValues(strings.ToUpper(t.Operation.String())).Inc()
			}
		default:
			a.Error("Unknown event type", slog.String("type", fmt.Sprintf("%T", e)))
			monitoring.TotalDiscordEvents.WithLabelValues("UNKNOWN").Inc()
		}
	}
}

// registerSlashCommands replaces the bot's commands in a guild.
func (a *App) registerSlashCommands(guildID string) error {
	if _, err := a.dg.ApplicationCommandBulkOverwrite(a.cfg.ApplicationId, guildID, slashCommands()); err != nil {
		return fmt.Errorf("error registering commands for guild %s: %w", guildID, err)
	}
	return nil
}

func (a *App) unregisterSlashCommands() error {
	guilds, err := a.GetJoinedGuilds()
	if err != nil {
		return err
	}

	var errs []error
	for _, g := range guilds {
		if _, err := a.dg.ApplicationCommandBulkOverwrite(a.cfg.ApplicationId, g.ID, []*discordgo.ApplicationCommand{}); err != nil {
			errs = append(errs, fmt.Errorf("error deleting commands for guild %s: %w", g.ID, err))
		}
	}
	return errors.Join(errs...)
}

func (a *App) Log() *slog.Logger {
	return a.Logger
}

func (a *App) Context() context.Context {
	return a.ctx
}

func (a *App) Session() platform.Session {
	return a.s
}

func (a *App) Config() *config.Config {
	return a.cfg
}

func (a *App) BotID() string {
	return a.identity.ID()
}

func (a *App) Ledger() *ledger.Ledger {
	return a.ledger
}

func (a *App) Welcome() *guildconfig.WelcomeStore {
	return a.welcome
}

func (a *App) Feedback() *guildconfig.FeedbackStore {
	return a.feedback
}

func (a *App) Tickets() *ticketing.Service {
	return a.tickets
}

func (a *App) Catalog() *shop.Catalog {
	return a.catalog
}

func (a *App) RolePanels() *rolepanel.Setup {
	return a.rolePanels
}
