package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/Jacobbrewer1/bazaar/pkg/guildconfig"
	"github.com/Jacobbrewer1/bazaar/pkg/logging"
	"github.com/Jacobbrewer1/bazaar/pkg/messages"
	"github.com/Jacobbrewer1/discordgo"
)

func setWelcomeCmd(a IApp, i *discordgo.InteractionCreate) error {
	opts := commandOptions(i)

	channelID := opts.id(optChannel)
	if channelID == "" {
		channelID = i.ChannelID
	}
	message := opts.string(optMessage)

	if err := a.Welcome().SetChannel(a.Context(), i.GuildID, channelID, message); err != nil {
		return fmt.Errorf("error setting welcome channel: %w", err)
	}

	content := fmt.Sprintf("Welcome channel set to <#%s>", channelID)
	if message != "" {
		content += fmt.Sprintf(" with message: %s", message)
	}
	return respondEphemeral(a, i, content)
}

func testWelcomeCmd(a IApp, i *discordgo.InteractionCreate) error {
	cfg, ok := a.Welcome().Get(i.GuildID)
	if !ok || cfg.ChannelID == "" {
		return respondEphemeral(a, i, messages.ErrNoWelcome)
	}

	if err := sendWelcome(a, i.GuildID, cfg.ChannelID.String(), i.Member); err != nil {
		return err
	}
	return respondEphemeral(a, i, messages.TestWelcomeSent)
}

func memberJoinHandler(a IApp) func(s *discordgo.Session, m *discordgo.GuildMemberAdd) {
	return func(_ *discordgo.Session, m *discordgo.GuildMemberAdd) {
		cfg, ok := a.Welcome().Get(m.GuildID)
		if !ok || cfg.ChannelID == "" {
			return
		}

		if err := sendWelcome(a, m.GuildID, cfg.ChannelID.String(), m.Member); err != nil {
			a.Log().Error("Error sending welcome message",
				slog.String(logging.KeyGuildID, m.GuildID),
				slog.String(logging.KeyError, err.Error()),
			)
		}
	}
}

func sendWelcome(a IApp, guildID, channelID string, member *discordgo.Member) error {
	cfg, _ := a.Welcome().Get(guildID)

	guild, err := a.Session().Guild(guildID)
	if err != nil {
		return fmt.Errorf("error getting guild: %w", err)
	}

	wc := &guildconfig.WelcomeContext{
		Guild:       guild,
		Member:      member,
		MemberCount: humanMembers(guild),
	}

	channels, err := a.Session().GuildChannels(guildID)
	if err != nil {
		// The rules field is optional.
		a.Log().Warn("Error getting guild channels", slog.String(logging.KeyError, err.Error()))
	}
	for _, c := range channels {
		if c.Type == discordgo.ChannelTypeGuildText && strings.EqualFold(c.Name, guildconfig.RulesChannelName) {
			wc.RulesChannelID = c.ID
			break
		}
	}

	if _, err := a.Session().ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content: member.User.Mention(),
		Embeds:  []*discordgo.MessageEmbed{guildconfig.Render(cfg, wc)},
	}); err != nil {
		return fmt.Errorf("error sending welcome message: %w", err)
	}
	return nil
}

// humanMembers counts the guild's non-bot members when the member list is known.
func humanMembers(g *discordgo.Guild) int {
	if len(g.Members) == 0 {
		return g.MemberCount
	}

	n := 0
	for _, m := range g.Members {
		if m.User != nil && !m.User.Bot {
			n++
		}
	}
	return n
}
