package ticketing

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/Jacobbrewer1/bazaar/pkg/logging"
	"github.com/Jacobbrewer1/discordgo"
)

// FindAsset searches the most recent posts of the asset channel for the item title.
//
// It returns nil when the guild has no asset channel or no recent post mentions the title.
// The search is best effort: only the latest messages are read and matching is a case
// insensitive substring test.
func (s *Service) FindAsset(guildID, title string) (*discordgo.Message, error) {
	channels, err := s.s.GuildChannels(guildID)
	if err != nil {
		return nil, fmt.Errorf("%w: error getting guild channels: %w", ErrDeliveryLookup, err)
	}

	var assets *discordgo.Channel
	for _, c := range channels {
		if c.Type != discordgo.ChannelTypeGuildCategory && c.Name == s.assetChannel {
			assets = c
			break
		}
	}
	if assets == nil {
		return nil, nil
	}

	msgs, err := s.s.ChannelMessages(assets.ID, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: error reading asset channel: %w", ErrDeliveryLookup, err)
	}

	needle := strings.ToLower(title)
	for _, m := range msgs {
		if strings.Contains(strings.ToLower(m.Content), needle) {
			return m, nil
		}
	}
	return nil, nil
}

// deliver copies the asset post of the item into the ticket channel.
func (s *Service) deliver(guildID, channelID, title string) Delivery {
	asset, err := s.FindAsset(guildID, title)
	if err != nil {
		s.l.Warn("Error looking up asset, falling back to manual delivery", slog.String(logging.KeyError, err.Error()))
		return DeliveryFailed
	} else if asset == nil {
		return DeliveryManual
	}

	if err := s.shareAsset(channelID, asset); err != nil {
		s.l.Warn("Error sharing asset, falling back to manual delivery", slog.String(logging.KeyError, err.Error()))
		return DeliveryFailed
	}
	return DeliveryShared
}

func (s *Service) shareAsset(channelID string, asset *discordgo.Message) error {
	if _, err := s.s.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content: fmt.Sprintf("**ASSET DOWNLOAD INFORMATION**\n\n%s", asset.Content),
	}); err != nil {
		return fmt.Errorf("%w: error sending asset information: %w", ErrDeliveryLookup, err)
	}

	// Attachments are linked rather than uploaded again.
	for _, a := range asset.Attachments {
		if _, err := s.s.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
			Content: a.URL,
		}); err != nil {
			return fmt.Errorf("%w: error sending attachment %s: %w", ErrDeliveryLookup, a.Filename, err)
		}
	}
	return nil
}
