package ticketing

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Jacobbrewer1/bazaar/pkg/entities"
	"github.com/Jacobbrewer1/bazaar/pkg/logging"
	"github.com/Jacobbrewer1/discordgo"
)

const (
	DefaultPanelTitle       = "Support Tickets"
	DefaultPanelDescription = "Need help? Click the button below to create a ticket!"
)

const supportFooter = "UE5 Asset Shop Support • Thank you for your patience"

// PanelMessage builds the panel that opens support tickets.
func PanelMessage(guild *discordgo.Guild, title, description, creator string) *discordgo.MessageSend {
	if title == "" {
		title = DefaultPanelTitle
	}
	if description == "" {
		description = DefaultPanelDescription
	}

	thumbnail := "https://cdn2.unrealengine.com/ue-logo-stacked-unreal-engine-w-677x545-fac11de0943f.png"
	if guild != nil && guild.Icon != "" {
		thumbnail = discordgo.EndpointGuildIcon(guild.ID, guild.Icon)
	}

	return &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{
			{
				Title:       title,
				Description: description,
				Color:       colourBlue,
				Thumbnail:   &discordgo.MessageEmbedThumbnail{URL: thumbnail},
				Fields: []*discordgo.MessageEmbedField{
					{
						Name:  "How It Works",
						Value: "When you create a ticket, a private channel will be created where you can discuss your issue with our staff.",
					},
					{
						Name:  "Response Time",
						Value: "Our team typically responds within 24 hours.",
					},
				},
				Footer: &discordgo.MessageEmbedFooter{
					Text: fmt.Sprintf("Ticket System • Created by %s", creator),
				},
			},
		},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    "Create Ticket",
						Style:    discordgo.PrimaryButton,
						Emoji:    discordgo.ComponentEmoji{Name: "🎫"},
						CustomID: CreateTicketButtonID,
					},
				},
			},
		},
	}
}

// CreateSupportTicket opens a support ticket for the requester, or returns the one already open.
func (s *Service) CreateSupportTicket(_ context.Context, req *Requester) (*Result, error) {
	if !canManageChannels(req.AppPermissions) {
		return nil, ErrCapabilityDenied
	}

	ticket := &entities.Ticket{
		Kind:     entities.TicketKindSupport,
		Username: req.Username,
	}
	name := ticket.Name()

	category, err := s.category(req.GuildID, SupportCategory)
	if err != nil {
		return nil, err
	}

	existing, err := s.channelIn(req.GuildID, category.ID, name)
	if err != nil {
		return nil, err
	} else if existing != nil {
		return &Result{Channel: existing, Existing: true}, nil
	}

	role := s.roleByName(req.GuildID, "Support", "Admin")

	channel, err := s.s.GuildChannelCreateComplex(req.GuildID, discordgo.GuildChannelCreateData{
		Name:                 name,
		Type:                 discordgo.ChannelTypeGuildText,
		Topic:                fmt.Sprintf("Support ticket for %s | Created: %s", req.Username, s.timestamp()),
		ParentID:             category.ID,
		PermissionOverwrites: s.overwrites(req.GuildID, role, req.UserID),
	})
	if err != nil {
		return nil, hostErr("error creating ticket channel", err)
	}
	TotalTickets.WithLabelValues(string(entities.TicketKindSupport)).Inc()

	if err := s.welcomeSupport(channel.ID, req, role); err != nil {
		// The channel exists, the requester can still use it.
		s.l.Error("Error setting up support ticket",
			slog.String("channel_id", channel.ID),
			slog.String(logging.KeyError, err.Error()),
		)
	}

	return &Result{Channel: channel}, nil
}

func (s *Service) welcomeSupport(channelID string, req *Requester, role *discordgo.Role) error {
	mention := fmt.Sprintf("<@%s>", req.UserID)

	_, err := s.s.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content: mention,
		Embeds: []*discordgo.MessageEmbed{
			{
				Title:       "New Support Ticket",
				Description: fmt.Sprintf("Welcome %s!\n\nPlease describe your issue or question in detail, and a staff member will assist you shortly.", mention),
				Color:       colourBlue,
				Fields: []*discordgo.MessageEmbedField{
					{
						Name:   "Ticket Creator",
						Value:  fmt.Sprintf("%s (%s)", mention, req.Username),
						Inline: true,
					},
					{
						Name:   "Created At",
						Value:  s.timestamp(),
						Inline: true,
					},
				},
				Footer: &discordgo.MessageEmbedFooter{
					Text: supportFooter,
				},
			},
		},
		Components: CloseComponents(),
	})
	if err != nil {
		return fmt.Errorf("error sending ticket message: %w", err)
	}

	if role != nil {
		if _, err := s.s.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
			Content: fmt.Sprintf("<@&%s> - New support ticket opened!", role.ID),
		}); err != nil {
			return fmt.Errorf("error pinging support role: %w", err)
		}
	}
	return nil
}
