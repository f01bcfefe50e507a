package main

import (
	"testing"

	"github.com/Jacobbrewer1/bazaar/pkg/guildconfig"
	"github.com/Jacobbrewer1/bazaar/pkg/messages"
	"github.com/Jacobbrewer1/bazaar/pkg/shop"
	"github.com/Jacobbrewer1/bazaar/pkg/ticketing"
	"github.com/Jacobbrewer1/discordgo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestWelcome(t *testing.T) {
	a := newTestApp(t)

	require.NoError(t, testWelcomeCmd(a, command(testWelcomeCmdName, true)))
	require.Equal(t, messages.ErrNoWelcome, a.lastContent())

	require.NoError(t, setWelcomeCmd(a, command(setWelcomeCmdName, true, stringOpt(optMessage, "Hi {user}!"))))
	cfg, ok := a.welcome.Get(testGuild)
	require.True(t, ok)
	require.Equal(t, testChannel, cfg.ChannelID.String())

	require.NoError(t, testWelcomeCmd(a, command(testWelcomeCmdName, true)))
	require.Equal(t, messages.TestWelcomeSent, a.lastContent())

	sent := a.session.SentTo(testChannel)
	require.Len(t, sent, 1)
	require.Equal(t, "<@u1>", sent[0].Content)
	embed := sent[0].Embeds[0]
	require.Equal(t, "Welcome to Bazaar!", embed.Title)
	require.Equal(t, "Hi <@u1>!", embed.Description)
	require.Contains(t, embed.Fields[len(embed.Fields)-1].Value, "<#11>")
}

func TestMemberJoinHandler(t *testing.T) {
	a := newTestApp(t)
	join := &discordgo.GuildMemberAdd{Member: &discordgo.Member{GuildID: testGuild, User: &discordgo.User{ID: "u9", Username: "newbie"}}}

	// No welcome channel configured.
	memberJoinHandler(a)(nil, join)
	require.Empty(t, a.session.SentTo(testChannel))

	require.NoError(t, a.welcome.SetChannel(a.ctx, testGuild, testChannel, ""))
	memberJoinHandler(a)(nil, join)

	sent := a.session.SentTo(testChannel)
	require.Len(t, sent, 1)
	require.Equal(t, "<@u9>", sent[0].Content)
	require.Equal(t, guildconfig.RenderTemplate("", "<@u9>"), sent[0].Embeds[0].Description)
}

func TestCheckFeedbackPanels(t *testing.T) {
	a := newTestApp(t)
	a.session.AddChannel(&discordgo.Channel{ID: "60", GuildID: testGuild, Name: "feedback", Type: discordgo.ChannelTypeGuildText})

	require.Empty(t, checkFeedbackPanels(a))

	require.NoError(t, a.feedback.Set(a.ctx, testGuild, testChannel, "60"))
	require.NoError(t, a.feedback.Set(a.ctx, "other", "12", "61"))
	require.Equal(t, []string{"other"}, checkFeedbackPanels(a))
}

func TestFeedbackFlow(t *testing.T) {
	a := newTestApp(t)
	a.session.AddChannel(&discordgo.Channel{ID: "60", GuildID: testGuild, Name: "feedback", Type: discordgo.ChannelTypeGuildText})

	require.NoError(t, setFeedbackCmd(a, command(setFeedbackCmdName, true, channelOpt(optFeedbackChannel, "60"))))
	cfg, ok := a.feedback.All()[testGuild]
	require.True(t, ok)
	require.Equal(t, "60", cfg.FeedbackChannelID.String())
	require.Len(t, a.session.SentTo(testChannel), 1)

	require.NoError(t, feedbackButton(a, component(guildconfig.FeedbackButtonID("60"), "m")))
	resp := a.session.LastResponse()
	require.Equal(t, discordgo.InteractionResponseModal, resp.Type)
	require.Equal(t, guildconfig.FeedbackModalID("60"), resp.Data.CustomID)

	bad := modal(guildconfig.FeedbackModalID("60"), map[string]string{
		guildconfig.FeedbackFieldTitle:  "Great",
		guildconfig.FeedbackFieldBody:   "Loved it",
		guildconfig.FeedbackFieldRating: "9",
	})
	require.NoError(t, feedbackModalSubmit(a, bad))
	require.Equal(t, messages.ErrBadRating, a.lastContent())
	require.Empty(t, a.session.SentTo("60"))

	good := modal(guildconfig.FeedbackModalID("60"), map[string]string{
		guildconfig.FeedbackFieldTitle:  "Great",
		guildconfig.FeedbackFieldBody:   "Loved it",
		guildconfig.FeedbackFieldRating: "4",
	})
	require.NoError(t, feedbackModalSubmit(a, good))
	require.Equal(t, messages.FeedbackThanks, a.lastContent())

	sent := a.session.SentTo("60")
	require.Len(t, sent, 1)
	require.Equal(t, "📝 Great", sent[0].Embeds[0].Title)

	missing := modal(guildconfig.FeedbackModalID("61"), map[string]string{guildconfig.FeedbackFieldRating: "4"})
	require.NoError(t, feedbackModalSubmit(a, missing))
	require.Equal(t, messages.ErrNoFeedback, a.lastContent())
}

func TestShopFlow(t *testing.T) {
	a := newTestApp(t)

	i := command(addItemCmdName, true,
		stringOpt(optTitle, "Inventory System"),
		stringOpt(optPrice, "$20"),
		stringOpt(optDescription, "Grid inventory"),
		stringOpt(optDetailedInfo, "•Drag and drop"),
		stringOpt(optCategory, "Blueprint"),
	)
	// The seller lists the item.
	i.Member.User = &discordgo.User{ID: "9", Username: "seller"}

	require.NoError(t, addItemCmd(a, i))
	sent := a.session.SentTo(testChannel)
	require.Len(t, sent, 1)
	require.Equal(t, "🛒 Inventory System", sent[0].Embeds[0].Title)
	require.Equal(t, 1, a.catalog.Len())

	t.Run("expired listing", func(t *testing.T) {
		require.NoError(t, purchaseItemButton(a, component(shop.PurchaseButtonID, "missing")))
		require.Equal(t, messages.ErrListingExpired, a.lastContent())
	})

	t.Run("more info", func(t *testing.T) {
		require.NoError(t, moreInfoButton(a, component(shop.MoreInfoButtonID, "m")))
		require.Equal(t, messages.MoreInfo, a.lastContent())
	})

	t.Run("purchase", func(t *testing.T) {
		_, err := a.ledger.Credit(a.ctx, testUser, decimal.NewFromInt(50))
		require.NoError(t, err)

		messageID := listingMessageID(t, a)

		require.NoError(t, purchaseItemButton(a, component(shop.PurchaseButtonID, messageID)))
		require.Equal(t, discordgo.InteractionResponseDeferredChannelMessageWithSource, a.session.LastResponse().Type)

		followups := a.session.FollowupContents()
		require.NotEmpty(t, followups)
		require.Contains(t, followups[len(followups)-1], "Purchase successful!")

		require.True(t, a.ledger.GetBalance(testUser).Equal(decimal.NewFromInt(30)))
		require.True(t, a.ledger.GetBalance("9").Equal(decimal.NewFromInt(20)))
	})
}

func listingMessageID(t *testing.T, a *testApp) string {
	t.Helper()

	// The fake numbers messages from 1001 as it sends them.
	for _, id := range []string{"1001", "1002", "1003"} {
		if _, ok := a.catalog.Get(id); ok {
			return id
		}
	}
	t.Fatal("listing not in catalog")
	return ""
}

func TestExpireListing(t *testing.T) {
	a := newTestApp(t)

	expireListing(a.l, a.session)(&shop.Listing{ChannelID: testChannel, MessageID: "m1", Item: shop.NewItem("x", "5", "", "9")})

	require.Len(t, a.session.Edits, 1)
	require.Equal(t, "m1", a.session.Edits[0].ID)
	require.Equal(t, shop.ListingComponents(true), a.session.Edits[0].Components)
}

func TestTicketButtons(t *testing.T) {
	a := newTestApp(t)

	require.NoError(t, createTicketButton(a, component(ticketing.CreateTicketButtonID, "m")))
	require.Contains(t, a.lastContent(), "Ticket created!")

	require.NoError(t, createTicketButton(a, component(ticketing.CreateTicketButtonID, "m")))
	require.Contains(t, a.lastContent(), "You already have an open ticket")

	denied := component(ticketing.CreateTicketButtonID, "m")
	denied.AppPermissions = 0
	require.NoError(t, createTicketButton(a, denied))
	require.Equal(t, messages.ErrNoManage, a.lastContent())

	// The general channel is not a ticket.
	require.NoError(t, closeTicketButton(a, component(ticketing.CloseTicketButtonID, "m")))
	resp := a.session.LastResponse()
	require.Equal(t, messages.ErrNotTicket, resp.Data.Content)
	require.Equal(t, discordgo.MessageFlagsEphemeral, resp.Data.Flags)
	require.Empty(t, resp.Data.Embeds)
	require.Empty(t, a.session.FollowupContents())
}

func TestCloseTicketButton_ArchivedChannel(t *testing.T) {
	a := newTestApp(t)
	a.session.AddChannel(&discordgo.Channel{ID: "70", GuildID: testGuild, Name: "closed-ticket-seller", Type: discordgo.ChannelTypeGuildText})

	press := component(ticketing.CloseTicketButtonID, "m")
	press.ChannelID = "70"
	require.NoError(t, closeTicketButton(a, press))

	for _, resp := range a.session.Responses {
		require.Empty(t, resp.Data.Embeds)
	}
	require.Equal(t, messages.ErrNotTicket, a.lastContent())
	require.Empty(t, a.session.ChannelEdits["70"])
}
