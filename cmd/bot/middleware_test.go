package main

import (
	"errors"
	"testing"

	"github.com/Jacobbrewer1/bazaar/pkg/guildconfig"
	"github.com/Jacobbrewer1/bazaar/pkg/messages"
	"github.com/Jacobbrewer1/bazaar/pkg/shop"
	"github.com/Jacobbrewer1/discordgo"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestUserLimiter(t *testing.T) {
	l := newUserLimiter(rate.Limit(0), 2)

	require.True(t, l.Allow("a"))
	require.True(t, l.Allow("a"))
	require.False(t, l.Allow("a"))

	// Limits are per user.
	require.True(t, l.Allow("b"))
}

func TestRouter_Route(t *testing.T) {
	rt := newRouter()

	tests := []struct {
		name string
		i    *discordgo.InteractionCreate
		want string
	}{
		{"command", command(balanceCmdName, false), balanceCmdName},
		{"button", component(shop.PurchaseButtonID, "m"), shop.PurchaseButtonID},
		{"feedback button", component(guildconfig.FeedbackButtonID("60"), "m"), "feedback_button"},
		{"feedback modal", modal(guildconfig.FeedbackModalID("60"), nil), "feedback_modal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, p, ok := rt.route(tt.i)
			require.True(t, ok)
			require.NotNil(t, p)
			require.Equal(t, tt.want, name)
		})
	}

	_, _, ok := rt.route(component("unknown", "m"))
	require.False(t, ok)
}

func TestHandleInteraction(t *testing.T) {
	called := 0
	rt := &router{
		commands: map[string]commandProcessor{
			"ok": func(a IApp, i *discordgo.InteractionCreate) error {
				called++
				return respondEphemeral(a, i, "done")
			},
			"admin": func(a IApp, i *discordgo.InteractionCreate) error {
				called++
				return nil
			},
			"fails": func(a IApp, i *discordgo.InteractionCreate) error {
				return errors.New("boom")
			},
		},
		adminOnly: map[string]bool{"admin": true},
	}

	t.Run("dispatches", func(t *testing.T) {
		a := newTestApp(t)
		handleInteraction(a, newUserLimiter(rate.Inf, 1), rt, command("ok", false))
		require.Equal(t, "done", a.lastContent())
	})

	t.Run("admin only", func(t *testing.T) {
		a := newTestApp(t)
		before := called
		handleInteraction(a, newUserLimiter(rate.Inf, 1), rt, command("admin", false))
		require.Equal(t, messages.ErrAdminOnly, a.lastContent())
		require.Equal(t, before, called)

		handleInteraction(a, newUserLimiter(rate.Inf, 1), rt, command("admin", true))
		require.Equal(t, before+1, called)
	})

	t.Run("generic error", func(t *testing.T) {
		a := newTestApp(t)
		handleInteraction(a, newUserLimiter(rate.Inf, 1), rt, command("fails", false))
		require.Equal(t, messages.ErrUserErrorProcessing, a.lastContent())
	})

	t.Run("unknown command", func(t *testing.T) {
		a := newTestApp(t)
		handleInteraction(a, newUserLimiter(rate.Inf, 1), rt, command("missing", false))
		require.Equal(t, messages.ErrUserErrorProcessing, a.lastContent())
	})

	t.Run("rate limited", func(t *testing.T) {
		a := newTestApp(t)
		limiter := newUserLimiter(rate.Limit(0), 1)

		handleInteraction(a, limiter, rt, command("ok", false))
		require.Equal(t, "done", a.lastContent())

		handleInteraction(a, limiter, rt, command("ok", false))
		require.Equal(t, messages.ErrSlowDown, a.lastContent())
	})

	t.Run("guild only", func(t *testing.T) {
		a := newTestApp(t)
		i := command("ok", false)
		i.GuildID = ""
		i.User = i.Member.User
		i.Member = nil

		handleInteraction(a, newUserLimiter(rate.Inf, 1), rt, i)
		require.Equal(t, messages.ErrGuildOnly, a.lastContent())
	})
}
