package main

import (
	"github.com/Jacobbrewer1/bazaar/pkg/messages"
	"github.com/Jacobbrewer1/bazaar/pkg/reactionroles"
	"github.com/Jacobbrewer1/bazaar/pkg/rolepanel"
	"github.com/Jacobbrewer1/discordgo"
)

// rolesPanelCmd starts the guided setup. The conversation continues in the channel after the
// interaction has been answered.
func rolesPanelCmd(a IApp, i *discordgo.InteractionCreate) error {
	if err := respondEphemeral(a, i, messages.RolePanelStarting); err != nil {
		return err
	}

	conv := &rolepanel.Conversation{
		Interaction: i.Interaction,
		GuildID:     i.GuildID,
		ChannelID:   i.ChannelID,
		UserID:      interactionUser(i).ID,
	}

	go func() {
		// Setup logs its outcome and reports aborts to the user itself.
		_, _ = a.RolePanels().Run(a.Context(), conv)
	}()

	return nil
}

func reactionAddHandler(a IApp, h *reactionroles.Handler) func(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	return func(_ *discordgo.Session, r *discordgo.MessageReactionAdd) {
		h.OnReactionAdd(a.Context(), reactionroles.FromEvent(r.MessageReaction))
	}
}

func reactionRemoveHandler(a IApp, h *reactionroles.Handler) func(s *discordgo.Session, r *discordgo.MessageReactionRemove) {
	return func(_ *discordgo.Session, r *discordgo.MessageReactionRemove) {
		h.OnReactionRemove(a.Context(), reactionroles.FromEvent(r.MessageReaction))
	}
}
