package main

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/Jacobbrewer1/bazaar/pkg/guildconfig"
	"github.com/Jacobbrewer1/bazaar/pkg/logging"
	"github.com/Jacobbrewer1/bazaar/pkg/messages"
	"github.com/Jacobbrewer1/discordgo"
)

func setFeedbackCmd(a IApp, i *discordgo.InteractionCreate) error {
	opts := commandOptions(i)
	feedbackChannelID := opts.id(optFeedbackChannel)

	guild, err := a.Session().Guild(i.GuildID)
	if err != nil {
		return fmt.Errorf("error getting guild: %w", err)
	}

	panel := guildconfig.FeedbackPanel(guild, feedbackChannelID, opts.string(optTitle), opts.string(optDescription), interactionUser(i).Username)
	if _, err := a.Session().ChannelMessageSendComplex(i.ChannelID, panel); err != nil {
		return fmt.Errorf("error sending feedback panel: %w", err)
	}

	if err := a.Feedback().Set(a.Context(), i.GuildID, i.ChannelID, feedbackChannelID); err != nil {
		return fmt.Errorf("error saving feedback config: %w", err)
	}

	return respondEphemeral(a, i, fmt.Sprintf("Feedback panel created! Feedback will be sent to <#%s>", feedbackChannelID))
}

// checkFeedbackPanels returns the guilds whose stored feedback channel is no
// longer reachable, logging each one.
func checkFeedbackPanels(a IApp) []string {
	panels := a.Feedback().All()
	a.Log().Info("Loaded feedback panels", slog.Int("count", len(panels)))

	stale := make([]string, 0)
	for guildID, cfg := range panels {
		channel, err := a.Session().Channel(cfg.FeedbackChannelID.String())
		if err == nil && channel.GuildID == guildID {
			continue
		}
		stale = append(stale, guildID)
		a.Log().Warn("Feedback channel is unreachable",
			slog.String(logging.KeyGuildID, guildID),
			slog.String(logging.KeyChannelID, cfg.FeedbackChannelID.String()),
		)
	}
	sort.Strings(stale)
	return stale
}

func feedbackButton(a IApp, i *discordgo.InteractionCreate) error {
	feedbackChannelID, _ := guildconfig.ParseFeedbackButtonID(i.MessageComponentData().CustomID)

	return a.Session().InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: guildconfig.FeedbackModal(feedbackChannelID),
	})
}

func feedbackModalSubmit(a IApp, i *discordgo.InteractionCreate) error {
	feedbackChannelID, _ := guildconfig.ParseFeedbackModalID(i.ModalSubmitData().CustomID)
	values := modalValues(i)

	rating, err := guildconfig.ParseRating(values[guildconfig.FeedbackFieldRating])
	if err != nil {
		return respondEphemeral(a, i, messages.ErrBadRating)
	}

	channel, err := a.Session().Channel(feedbackChannelID)
	if err != nil || channel.GuildID != i.GuildID {
		return respondEphemeral(a, i, messages.ErrNoFeedback)
	}

	fb := &guildconfig.Feedback{
		Title:  values[guildconfig.FeedbackFieldTitle],
		Body:   values[guildconfig.FeedbackFieldBody],
		Rating: rating,
		Author: interactionUser(i),
	}
	if _, err := a.Session().ChannelMessageSendComplex(channel.ID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{guildconfig.FeedbackEmbed(fb, time.Now())},
	}); err != nil {
		return fmt.Errorf("error forwarding feedback: %w", err)
	}

	return respondEphemeral(a, i, messages.FeedbackThanks)
}
