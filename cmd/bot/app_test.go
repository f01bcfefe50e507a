package main

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/Jacobbrewer1/bazaar/cmd/bot/config"
	"github.com/Jacobbrewer1/bazaar/pkg/dataaccess"
	"github.com/Jacobbrewer1/bazaar/pkg/guildconfig"
	"github.com/Jacobbrewer1/bazaar/pkg/ledger"
	"github.com/Jacobbrewer1/bazaar/pkg/platform"
	"github.com/Jacobbrewer1/bazaar/pkg/platform/platformtest"
	"github.com/Jacobbrewer1/bazaar/pkg/prompt"
	"github.com/Jacobbrewer1/bazaar/pkg/reactionroles"
	"github.com/Jacobbrewer1/bazaar/pkg/rolepanel"
	"github.com/Jacobbrewer1/bazaar/pkg/shop"
	"github.com/Jacobbrewer1/bazaar/pkg/ticketing"
	"github.com/Jacobbrewer1/discordgo"
)

const (
	testGuild   = "1"
	testChannel = "10"
	testUser    = "u1"
)

var _ IApp = (*testApp)(nil)

type testApp struct {
	l        *slog.Logger
	ctx      context.Context
	session  *platformtest.Fake
	cfg      *config.Config
	ledger   *ledger.Ledger
	welcome  *guildconfig.WelcomeStore
	feedback *guildconfig.FeedbackStore
	tickets  *ticketing.Service
	catalog  *shop.Catalog
	panels   *rolepanel.Setup
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	l := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()
	backend := dataaccess.NewMemoryBackend()

	s := platformtest.NewFake()
	s.AddGuild(&discordgo.Guild{ID: testGuild, Name: "Bazaar", MemberCount: 3})
	s.AddChannel(&discordgo.Channel{ID: testChannel, GuildID: testGuild, Name: "general", Type: discordgo.ChannelTypeGuildText})
	s.AddChannel(&discordgo.Channel{ID: "11", GuildID: testGuild, Name: "rules", Type: discordgo.ChannelTypeGuildText})
	s.AddRole(testGuild, &discordgo.Role{ID: "6", Name: "Seller"})
	s.AddMember(testGuild, &discordgo.Member{User: &discordgo.User{ID: "9", Username: "seller"}})

	cfg := &config.Config{CurrencyName: "Credits", AssetChannel: ticketing.DefaultAssetChannel}
	lg := ledger.NewLedger(ctx, l, backend)
	m := reactionroles.NewMap(ctx, l, backend)
	selfID := func() string { return "bot" }

	return &testApp{
		l:        l,
		ctx:      ctx,
		session:  s,
		cfg:      cfg,
		ledger:   lg,
		welcome:  guildconfig.NewWelcomeStore(ctx, l, backend),
		feedback: guildconfig.NewFeedbackStore(ctx, l, backend),
		tickets:  ticketing.NewService(l, s, lg, selfID, cfg.AssetChannel, cfg.CurrencyName),
		catalog:  shop.NewCatalog(shop.ListingTTL, expireListing(l, s)),
		panels:   rolepanel.NewSetup(l, s, prompt.NewWaiter(), m),
	}
}

func (a *testApp) Log() *slog.Logger                    { return a.l }
func (a *testApp) Context() context.Context             { return a.ctx }
func (a *testApp) Session() platform.Session            { return a.session }
func (a *testApp) Config() *config.Config               { return a.cfg }
func (a *testApp) BotID() string                        { return "bot" }
func (a *testApp) Ledger() *ledger.Ledger               { return a.ledger }
func (a *testApp) Welcome() *guildconfig.WelcomeStore   { return a.welcome }
func (a *testApp) Feedback() *guildconfig.FeedbackStore { return a.feedback }
func (a *testApp) Tickets() *ticketing.Service          { return a.tickets }
func (a *testApp) Catalog() *shop.Catalog               { return a.catalog }
func (a *testApp) RolePanels() *rolepanel.Setup         { return a.panels }

// lastContent returns the content of the latest response.
func (a *testApp) lastContent() string {
	resp := a.session.LastResponse()
	if resp == nil || resp.Data == nil {
		return ""
	}
	return resp.Data.Content
}

func member(admin bool) *discordgo.Member {
	var perms int64
	if admin {
		perms = discordgo.PermissionAdministrator
	}
	return &discordgo.Member{
		User:        &discordgo.User{ID: testUser, Username: "wolf"},
		Permissions: perms,
	}
}

func command(name string, admin bool, opts ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type:      discordgo.InteractionApplicationCommand,
			GuildID:   testGuild,
			ChannelID: testChannel,
			Member:    member(admin),
			Data: discordgo.ApplicationCommandInteractionData{
				Name:    name,
				Options: opts,
			},
		},
	}
}

func component(customID, messageID string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type:           discordgo.InteractionMessageComponent,
			GuildID:        testGuild,
			ChannelID:      testChannel,
			Member:         member(false),
			AppPermissions: discordgo.PermissionManageChannels,
			Message:        &discordgo.Message{ID: messageID, ChannelID: testChannel},
			Data: discordgo.MessageComponentInteractionData{
				CustomID: customID,
			},
		},
	}
}

func modal(customID string, values map[string]string) *discordgo.InteractionCreate {
	rows := make([]discordgo.MessageComponent, 0, len(values))
	for id, v := range values {
		rows = append(rows, &discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				&discordgo.TextInput{CustomID: id, Value: v},
			},
		})
	}

	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type:      discordgo.InteractionModalSubmit,
			GuildID:   testGuild,
			ChannelID: testChannel,
			Member:    member(false),
			Data: discordgo.ModalSubmitInteractionData{
				CustomID:   customID,
				Components: rows,
			},
		},
	}
}

func userOpt(name, id string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionUser, Value: id}
}

func numberOpt(name string, v float64) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionNumber, Value: v}
}

func stringOpt(name, v string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionString, Value: v}
}

func channelOpt(name, id string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionChannel, Value: id}
}
