package ticketing

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Jacobbrewer1/bazaar/pkg/entities"
	"github.com/Jacobbrewer1/bazaar/pkg/logging"
	"github.com/Jacobbrewer1/discordgo"
)

// Close archives a ticket channel. The channel is moved to the archive category, renamed and
// hidden from @everyone. It is never deleted.
func (s *Service) Close(_ context.Context, guildID, channelID, closedByID string) (*discordgo.Channel, error) {
	channel, err := s.s.Channel(channelID)
	if err != nil {
		return nil, hostErr("error getting channel", err)
	}

	if !entities.IsTicketChannel(channel.Name) {
		return nil, ErrNotTicket
	}

	archive, err := s.category(guildID, ArchiveCategory)
	if err != nil {
		return nil, err
	}

	channel, err = s.s.ChannelEditComplex(channelID, &discordgo.ChannelEdit{
		Name:     entities.ClosedPrefix + channel.Name,
		ParentID: archive.ID,
	})
	if err != nil {
		return nil, hostErr("error archiving channel", err)
	}

	// The @everyone role shares the guild's ID.
	if err := s.s.ChannelPermissionSet(channelID, guildID, discordgo.PermissionOverwriteTypeRole, 0, memberPermissions); err != nil {
		return nil, hostErr("error locking channel", err)
	}

	if _, err := s.s.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{
			{
				Title:       "Ticket Closed",
				Description: fmt.Sprintf("This ticket has been closed by <@%s>", closedByID),
				Color:       colourRed,
			},
		},
	}); err != nil {
		s.l.Warn("Error sending closed message",
			slog.String("channel_id", channelID),
			slog.String(logging.KeyError, err.Error()),
		)
	}

	return channel, nil
}

// ClosingEmbed is shown while a ticket is being closed.
func ClosingEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Ticket Closing",
		Description: "This ticket is being closed...",
		Color:       colourOrange,
	}
}
