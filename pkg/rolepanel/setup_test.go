package rolepanel

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/Jacobbrewer1/bazaar/pkg/dataaccess"
	"github.com/Jacobbrewer1/bazaar/pkg/platform/platformtest"
	"github.com/Jacobbrewer1/bazaar/pkg/reactionroles"
	"github.com/Jacobbrewer1/discordgo"
	"github.com/stretchr/testify/require"
)

// scriptedAwaiter replies with each line in turn, then waits until the context ends.
type scriptedAwaiter struct {
	mu      sync.Mutex
	replies []string
}

func (a *scriptedAwaiter) Await(ctx context.Context, _, _ string) (string, error) {
	a.mu.Lock()
	if len(a.replies) > 0 {
		reply := a.replies[0]
		a.replies = a.replies[1:]
		a.mu.Unlock()
		return reply, nil
	}
	a.mu.Unlock()

	<-ctx.Done()
	return "", ctx.Err()
}

type fixture struct {
	session *platformtest.Fake
	backend *dataaccess.MemoryBackend
	roles   *reactionroles.Map
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	l := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := platformtest.NewFake()
	s.AddGuild(&discordgo.Guild{ID: "1", Name: "Guild"})
	s.AddChannel(&discordgo.Channel{ID: "10", GuildID: "1", Name: "setup"})
	s.AddChannel(&discordgo.Channel{ID: "20", GuildID: "1", Name: "roles"})
	s.AddChannel(&discordgo.Channel{ID: "30", GuildID: "2", Name: "elsewhere"})
	s.AddRole("1", &discordgo.Role{ID: "7", Name: "Supporter"})
	s.AddRole("1", &discordgo.Role{ID: "8", Name: "Artist"})

	backend := dataaccess.NewMemoryBackend()
	return &fixture{
		session: s,
		backend: backend,
		roles:   reactionroles.NewMap(context.Background(), l, backend),
	}
}

func (f *fixture) run(t *testing.T, replies ...string) (*Panel, error) {
	t.Helper()

	l := slog.New(slog.NewTextHandler(io.Discard, nil))
	setup := NewSetup(l, f.session, &scriptedAwaiter{replies: replies}, f.roles)
	setup.Timeout = 20 * time.Millisecond

	return setup.Run(context.Background(), &Conversation{
		Interaction: &discordgo.Interaction{ID: "i"},
		GuildID:     "1",
		ChannelID:   "10",
		UserID:      "u",
	})
}

func TestSetup_Success(t *testing.T) {
	f := newFixture(t)

	panel, err := f.run(t,
		"Pick your roles",
		"React below",
		"7 ✅ Supporters",
		"<@&8> 🎨",
		"DONE",
		"<#20>",
	)
	require.NoError(t, err)
	require.Equal(t, "20", panel.ChannelID)
	require.Equal(t, map[string]string{"✅": "7", "🎨": "8"}, panel.Bindings)

	sent := f.session.SentTo("20")
	require.Len(t, sent, 1)
	embed := sent[0].Embeds[0]
	require.Equal(t, "Pick your roles", embed.Title)
	require.Equal(t, "React below", embed.Description)
	require.Len(t, embed.Fields, 2)
	require.Equal(t, "✅ Supporters", embed.Fields[0].Name)
	require.Equal(t, "🎨 Artist", embed.Fields[1].Name)

	require.Len(t, f.session.Reactions, 2)

	roleID, ok := f.roles.Lookup(panel.MessageID, "✅")
	require.True(t, ok)
	require.Equal(t, "7", roleID)
	require.Equal(t, 1, f.backend.SaveCount(reactionroles.DocumentName))
}

func TestSetup_ExpiredTokenFallsBackToChannel(t *testing.T) {
	f := newFixture(t)
	f.session.FollowupErr = errors.New("unknown webhook")

	_, err := f.run(t, "Title", "Description", "done")
	require.ErrorIs(t, err, ErrNoRoles)
	require.Empty(t, f.session.Followups)

	var contents []string
	for _, msg := range f.session.SentTo("10") {
		contents = append(contents, msg.Content)
	}
	require.NotEmpty(t, contents)
	require.Contains(t, contents, msgNoRoles)
}

func TestSetup_TimeoutAtChannelPersistsNothing(t *testing.T) {
	f := newFixture(t)

	_, err := f.run(t, "Title", "Description", "7 ✅", "8 🎨", "done")
	require.ErrorIs(t, err, ErrTimedOut)
	require.ErrorIs(t, err, ErrSetupAborted)

	require.Empty(t, f.session.SentTo("20"))
	require.Empty(t, f.session.Reactions)
	require.Zero(t, f.backend.SaveCount(reactionroles.DocumentName))
	require.Contains(t, f.session.FollowupContents(), msgTimedOut)
}

func TestSetup_NoRoles(t *testing.T) {
	f := newFixture(t)

	_, err := f.run(t, "Title", "Description", "done")
	require.ErrorIs(t, err, ErrNoRoles)
	require.Contains(t, f.session.FollowupContents(), msgNoRoles)
	require.Zero(t, f.backend.SaveCount(reactionroles.DocumentName))
}

func TestSetup_InvalidRolesReprompt(t *testing.T) {
	f := newFixture(t)

	panel, err := f.run(t,
		"Title",
		"Description",
		"nonsense",
		"abc ✅",
		"99 ✅",
		"7 ✅",
		"8 ✅",
		"done",
		"20",
	)
	require.NoError(t, err)
	require.Equal(t, map[string]string{"✅": "7"}, panel.Bindings)

	followups := f.session.FollowupContents()
	require.Contains(t, followups, msgInvalidFormat)
	require.Contains(t, followups, msgInvalidRoleID)
	require.Contains(t, followups, "Role with ID 99 not found. Please try again.")
	require.Contains(t, followups, "✅ is already used on this panel. Please pick another emoji.")
}

func TestSetup_InvalidChannel(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{name: "not an id", reply: "#roles"},
		{name: "unknown channel", reply: "<#404>"},
		{name: "other guild", reply: "30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			_, err := f.run(t, "Title", "Description", "7 ✅", "done", tt.reply)
			require.ErrorIs(t, err, ErrInvalidChannel)
			require.Contains(t, f.session.FollowupContents(), msgInvalidChannel)
			require.Zero(t, f.backend.SaveCount(reactionroles.DocumentName))
		})
	}
}

func TestSetup_ParentCancelled(t *testing.T) {
	f := newFixture(t)

	l := slog.New(slog.NewTextHandler(io.Discard, nil))
	setup := NewSetup(l, f.session, &scriptedAwaiter{}, f.roles)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := setup.Run(ctx, &Conversation{Interaction: &discordgo.Interaction{}, GuildID: "1", ChannelID: "10", UserID: "u"})
	require.ErrorIs(t, err, ErrSetupAborted)
	require.False(t, errors.Is(err, ErrTimedOut))
}

func TestParseRoleLine(t *testing.T) {
	entry, err := parseRoleLine("123456789012345678 👍 Cool People")
	require.NoError(t, err)
	require.Equal(t, &RoleEntry{RoleID: "123456789012345678", Symbol: "👍", Label: "Cool People"}, entry)

	entry, err = parseRoleLine("<@&42> <:pepe:99>")
	require.NoError(t, err)
	require.Equal(t, "42", entry.RoleID)
	require.Equal(t, "<:pepe:99>", entry.Symbol)
	require.Empty(t, entry.Label)

	_, err = parseRoleLine("42")
	require.ErrorIs(t, err, errInvalidFormat)

	_, err = parseRoleLine("role ✅")
	require.ErrorIs(t, err, errInvalidRoleID)
}

func TestParseChannelRef(t *testing.T) {
	id, err := parseChannelRef("<#123>")
	require.NoError(t, err)
	require.Equal(t, "123", id)

	id, err = parseChannelRef(" 456 ")
	require.NoError(t, err)
	require.Equal(t, "456", id)

	_, err = parseChannelRef("general")
	require.ErrorIs(t, err, ErrInvalidChannel)
}
