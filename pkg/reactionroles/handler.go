package reactionroles

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Jacobbrewer1/bazaar/pkg/logging"
	"github.com/Jacobbrewer1/bazaar/pkg/platform"
	"github.com/Jacobbrewer1/discordgo"
)

// Reaction is a reaction add or remove event.
type Reaction struct {
	GuildID   string
	MessageID string
	UserID    string

	// Symbol is the emoji in message format, e.g. "✅" or "<:party:1234>".
	Symbol string
}

// FromEvent converts a gateway reaction into a Reaction.
func FromEvent(r *discordgo.MessageReaction) Reaction {
	return Reaction{
		GuildID:   r.GuildID,
		MessageID: r.MessageID,
		UserID:    r.UserID,
		Symbol:    r.Emoji.MessageFormat(),
	}
}

// Handler grants and revokes roles for reactions on bound messages.
type Handler struct {
	l *slog.Logger

	m *Map

	s platform.Session

	// selfID returns the bot's own user ID.
	selfID func() string
}

// NewHandler creates a new reaction role handler.
func NewHandler(l *slog.Logger, m *Map, s platform.Session, selfID func() string) *Handler {
	return &Handler{
		l:      l,
		m:      m,
		s:      s,
		selfID: selfID,
	}
}

// OnReactionAdd grants the bound role. Failures are logged, never returned.
func (h *Handler) OnReactionAdd(ctx context.Context, r Reaction) {
	h.apply(ctx, r, true)
}

// OnReactionRemove revokes the bound role. Failures are logged, never returned.
func (h *Handler) OnReactionRemove(ctx context.Context, r Reaction) {
	h.apply(ctx, r, false)
}

func (h *Handler) apply(_ context.Context, r Reaction, grant bool) {
	if r.GuildID == "" || r.UserID == "" || r.UserID == h.selfID() {
		return
	}

	roleID, ok := h.m.Lookup(r.MessageID, r.Symbol)
	if !ok {
		return
	}

	l := h.l.With(
		slog.String(logging.KeyGuildID, r.GuildID),
		slog.String(logging.KeyUserID, r.UserID),
		slog.String("role_id", roleID),
	)

	// The member must still be resolvable in the guild.
	if _, err := h.s.GuildMember(r.GuildID, r.UserID); err != nil {
		l.Debug("Reacting user is not a member, skipping", slog.String(logging.KeyError, err.Error()))
		return
	}

	var err error
	if grant {
		err = h.s.GuildMemberRoleAdd(r.GuildID, r.UserID, roleID)
	} else {
		err = h.s.GuildMemberRoleRemove(r.GuildID, r.UserID, roleID)
	}

	action := "assign"
	if !grant {
		action = "remove"
	}
	TotalRoleChanges.WithLabelValues(action, result(err)).Inc()

	switch {
	case err == nil:
		l.Debug(fmt.Sprintf("Reaction role %s", action))
	case platform.IsForbidden(err):
		l.Warn(fmt.Sprintf("Missing permissions to %s role", action), slog.String(logging.KeyError, err.Error()))
	default:
		l.Error(fmt.Sprintf("Error trying to %s role", action), slog.String(logging.KeyError, err.Error()))
	}
}
