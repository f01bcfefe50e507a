package reactionroles

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/Jacobbrewer1/bazaar/pkg/dataaccess"
	"github.com/Jacobbrewer1/bazaar/pkg/platform/platformtest"
	"github.com/Jacobbrewer1/discordgo"
	"github.com/stretchr/testify/require"
)

const (
	botID   = "1"
	guildID = "10"
	userID  = "20"
)

func newTestHandler(t *testing.T) (*Handler, *Map, *platformtest.Fake) {
	t.Helper()
	l := slog.New(slog.NewTextHandler(io.Discard, nil))

	m := NewMap(context.Background(), l, dataaccess.NewMemoryBackend())
	fake := platformtest.NewFake()
	fake.AddMember(guildID, &discordgo.Member{User: &discordgo.User{ID: userID}})

	return NewHandler(l, m, fake, func() string { return botID }), m, fake
}

func TestHandler_GrantAndRevoke(t *testing.T) {
	ctx := context.Background()
	h, m, fake := newTestHandler(t)
	require.NoError(t, m.Bind(ctx, "100", "✅", "7"))

	r := Reaction{GuildID: guildID, MessageID: "100", UserID: userID, Symbol: "✅"}

	h.OnReactionAdd(ctx, r)
	require.Equal(t, []platformtest.RoleChange{{GuildID: guildID, UserID: userID, RoleID: "7"}}, fake.RolesAdded)

	h.OnReactionRemove(ctx, r)
	require.Equal(t, []platformtest.RoleChange{{GuildID: guildID, UserID: userID, RoleID: "7"}}, fake.RolesRemoved)
}

func TestHandler_NoOps(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		r    Reaction
	}{
		{
			name: "unbound symbol",
			r:    Reaction{GuildID: guildID, MessageID: "100", UserID: userID, Symbol: "❌"},
		},
		{
			name: "unbound message",
			r:    Reaction{GuildID: guildID, MessageID: "101", UserID: userID, Symbol: "✅"},
		},
		{
			name: "bot's own reaction",
			r:    Reaction{GuildID: guildID, MessageID: "100", UserID: botID, Symbol: "✅"},
		},
		{
			name: "unknown member",
			r:    Reaction{GuildID: guildID, MessageID: "100", UserID: "999", Symbol: "✅"},
		},
		{
			name: "direct message",
			r:    Reaction{MessageID: "100", UserID: userID, Symbol: "✅"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m, fake := newTestHandler(t)
			require.NoError(t, m.Bind(ctx, "100", "✅", "7"))

			h.OnReactionAdd(ctx, tt.r)
			h.OnReactionRemove(ctx, tt.r)
			require.Empty(t, fake.RolesAdded)
			require.Empty(t, fake.RolesRemoved)
		})
	}
}

func TestHandler_ForbiddenIsNotFatal(t *testing.T) {
	ctx := context.Background()
	h, m, fake := newTestHandler(t)
	fake.ForbidRoles = true
	require.NoError(t, m.Bind(ctx, "100", "✅", "7"))

	require.NotPanics(t, func() {
		h.OnReactionAdd(ctx, Reaction{GuildID: guildID, MessageID: "100", UserID: userID, Symbol: "✅"})
	})
	require.Empty(t, fake.RolesAdded)
}

func TestMap_BindPanelPersistsOnce(t *testing.T) {
	ctx := context.Background()
	backend := dataaccess.NewMemoryBackend()
	l := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := NewMap(ctx, l, backend)

	require.NoError(t, m.BindPanel(ctx, "100", map[string]string{"✅": "7", "<:party:55>": "8"}))
	require.Equal(t, 1, backend.SaveCount(DocumentName))

	raw, ok := backend.Raw(DocumentName)
	require.True(t, ok)
	require.JSONEq(t, `{"100": {"✅": "7", "<:party:55>": "8"}}`, string(raw))

	reloaded := NewMap(ctx, l, backend)
	roleID, ok := reloaded.Lookup("100", "<:party:55>")
	require.True(t, ok)
	require.Equal(t, "8", roleID)

	require.Error(t, m.BindPanel(ctx, "100", nil))
	require.Error(t, m.BindPanel(ctx, "", map[string]string{"✅": "7"}))
}

func TestFromEvent(t *testing.T) {
	got := FromEvent(&discordgo.MessageReaction{
		UserID:    userID,
		MessageID: "100",
		GuildID:   guildID,
		Emoji:     discordgo.Emoji{ID: "55", Name: "party"},
	})
	require.Equal(t, Reaction{GuildID: guildID, MessageID: "100", UserID: userID, Symbol: "<:party:55>"}, got)
}

func TestAPIName(t *testing.T) {
	require.Equal(t, "✅", APIName("✅"))
	require.Equal(t, "party:55", APIName("<:party:55>"))
	require.Equal(t, "dance:56", APIName("<a:dance:56>"))
}
