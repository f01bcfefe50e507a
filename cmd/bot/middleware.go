package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/Jacobbrewer1/bazaar/cmd/bot/monitoring"
	"github.com/Jacobbrewer1/bazaar/pkg/logging"
	"github.com/Jacobbrewer1/bazaar/pkg/messages"
	"github.com/Jacobbrewer1/bazaar/pkg/request"
	"github.com/Jacobbrewer1/discordgo"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
)

// commandProcessor handles a slash command, button or modal.
type commandProcessor func(a IApp, i *discordgo.InteractionCreate) error

type Controller func(w http.ResponseWriter, r *http.Request)

func middlewareHttp(a IApp, handler Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := time.Now().UTC()
		cw := request.NewClientWriter(w)

		// Recover from any panics that occur in the handler.
		defer func() {
			if rec := recover(); rec != nil {
				a.Log().Error("Panic in handler",
					slog.String(logging.KeyError, fmt.Sprint(rec)),
					slog.String("stack", string(debug.Stack())),
				)
				cw.WriteHeader(http.StatusInternalServerError)
				if err := json.NewEncoder(cw).Encode(request.NewMessage(request.ErrInternalServer.Error())); err != nil {
					a.Log().Error("Error encoding response", slog.String(logging.KeyError, err.Error()))
				}
			}
		}()

		var path string
		route := mux.CurrentRoute(r)
		if route != nil { // The route may be nil if the request is not routed.
			var err error
			path, err = route.GetPathTemplate()
			if err != nil {
				// An error here is only returned if the route does not define a path.
				a.Log().Error("Error getting path template", slog.String(logging.KeyError, err.Error()))
				path = r.URL.Path
			}
		} else {
			path = r.URL.Path
		}

		defer func() {
			// The status code is only known once the handler has returned.
			monitoring.HttpTotalRequests.WithLabelValues(path, r.Method, fmt.Sprintf("%d", cw.StatusCode())).Inc()
			monitoring.HttpRequestDuration.WithLabelValues(path, r.Method, fmt.Sprintf("%d", cw.StatusCode())).Observe(time.Since(now).Seconds())
		}()

		handler(cw, r)
	}
}

// prefixRoute matches custom IDs that carry data after a fixed prefix.
type prefixRoute struct {
	name  string
	match func(customID string) bool
	p     commandProcessor
}

// router maps interactions to their processors.
type router struct {
	commands   map[string]commandProcessor
	components map[string]commandProcessor
	modals     map[string]commandProcessor

	// prefixed is searched when no exact custom ID matches.
	prefixed []prefixRoute

	// adminOnly are the commands re-checked for the administrator permission.
	adminOnly map[string]bool
}

// route returns the processor for an interaction and the name used in metrics and logs.
func (rt *router) route(i *discordgo.InteractionCreate) (string, commandProcessor, bool) {
	var (
		name  string
		exact map[string]commandProcessor
	)

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name = i.ApplicationCommandData().Name
		exact = rt.commands
	case discordgo.InteractionMessageComponent:
		name = i.MessageComponentData().CustomID
		exact = rt.components
	case discordgo.InteractionModalSubmit:
		name = i.ModalSubmitData().CustomID
		exact = rt.modals
	default:
		return "", nil, false
	}

	if p, ok := exact[name]; ok {
		return name, p, true
	}

	for _, pr := range rt.prefixed {
		if pr.match(name) {
			return pr.name, pr.p, true
		}
	}
	return name, nil, false
}

// interactionHandler is the handler for every interaction.
func interactionHandler(a IApp, limiter *userLimiter, rt *router) func(s *discordgo.Session, i *discordgo.InteractionCreate) {
	return func(_ *discordgo.Session, i *discordgo.InteractionCreate) {
		handleInteraction(a, limiter, rt, i)
	}
}

func handleInteraction(a IApp, limiter *userLimiter, rt *router, i *discordgo.InteractionCreate) {
	name, processor, ok := rt.route(i)
	if name == "" {
		return
	}
	a.Log().Debug("Handling interaction " + name)

	if !ok {
		a.Log().Error(fmt.Sprintf("No processor found for interaction %s", name))
		respondError(a, i)
		return
	}

	user := interactionUser(i)
	if user == nil {
		return
	}

	if !limiter.Allow(user.ID) {
		monitoring.TotalRateLimited.Inc()
		if err := respondEphemeral(a, i, messages.ErrSlowDown); err != nil {
			a.Log().Error("Error responding to interaction", slog.String(logging.KeyError, err.Error()))
		}
		return
	}

	if i.GuildID == "" {
		if err := respondEphemeral(a, i, messages.ErrGuildOnly); err != nil {
			a.Log().Error("Error responding to interaction", slog.String(logging.KeyError, err.Error()))
		}
		return
	}

	if rt.adminOnly[name] && !isAdmin(i) {
		if err := respondEphemeral(a, i, messages.ErrAdminOnly); err != nil {
			a.Log().Error("Error responding to interaction", slog.String(logging.KeyError, err.Error()))
		}
		return
	}

	t := prometheus.NewTimer(monitoring.DiscordCommandDuration.WithLabelValues(name))
	defer t.ObserveDuration()

	if err := processor(a, i); err != nil {
		a.Log().Error(fmt.Sprintf("Error processing interaction %s", name),
			slog.String(logging.KeyGuildID, i.GuildID),
			slog.String(logging.KeyUserID, user.ID),
			slog.String(logging.KeyError, err.Error()))

		respondError(a, i)
	}
}
