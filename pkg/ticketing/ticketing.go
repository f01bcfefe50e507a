// Package ticketing opens support and purchase ticket channels and archives them when closed.
//
// Tickets are not stored anywhere: a ticket is a private channel under one of the ticket
// categories, found again by its name.
package ticketing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Jacobbrewer1/bazaar/pkg/ledger"
	"github.com/Jacobbrewer1/bazaar/pkg/logging"
	"github.com/Jacobbrewer1/bazaar/pkg/platform"
	"github.com/Jacobbrewer1/discordgo"
	"github.com/shopspring/decimal"
)

const (
	// CreateTicketButtonID is the custom ID of the button on the ticket panel.
	CreateTicketButtonID = "create_ticket"

	// CloseTicketButtonID is the custom ID of the button in every ticket channel.
	CloseTicketButtonID = "close_ticket"
)

const (
	SupportCategory  = "Support Tickets"
	PurchaseCategory = "Asset Shop Tickets"
	ArchiveCategory  = "Archived Tickets"
)

// DefaultAssetChannel is the channel searched for purchased assets.
const DefaultAssetChannel = "private-assets"

// historyLimit is the number of asset channel messages searched for a purchased item.
const historyLimit = 100

const (
	colourBlue   = 0x3498db
	colourGreen  = 0x2ecc71
	colourOrange = 0xe67e22
	colourRed    = 0xe74c3c
)

const memberPermissions = discordgo.PermissionViewChannel | discordgo.PermissionSendMessages

var (
	// ErrCapabilityDenied is returned when the bot lacks the permissions to manage channels.
	ErrCapabilityDenied = errors.New("missing permission to manage channels")

	// ErrNotTicket is returned when closing a channel that is not a ticket.
	ErrNotTicket = errors.New("channel is not a ticket")

	// ErrDeliveryLookup is returned when the asset channel could not be searched.
	ErrDeliveryLookup = errors.New("error looking up asset")
)

// Wallet is the part of the ledger used for purchases.
type Wallet interface {
	GetBalance(userID string) decimal.Decimal
	HasSufficientBalance(userID string, amount decimal.Decimal) bool
	Purchase(ctx context.Context, buyerID, sellerID string, amount decimal.Decimal) *ledger.PurchaseResult
}

// Requester is the user asking for a ticket.
type Requester struct {
	GuildID  string
	UserID   string
	Username string

	// AppPermissions are the bot's permissions in the channel the request came from.
	AppPermissions int64
}

// Result is the channel of a ticket.
type Result struct {
	Channel *discordgo.Channel

	// Existing is set when the requester already had this ticket open.
	Existing bool
}

// Service manages ticket channels.
type Service struct {
	l            *slog.Logger
	s            platform.Session
	wallet       Wallet
	selfID       func() string
	assetChannel string
	currency     string
	now          func() time.Time
}

// NewService creates a new ticket service. selfID returns the bot's user ID.
func NewService(l *slog.Logger, s platform.Session, wallet Wallet, selfID func() string, assetChannel, currency string) *Service {
	if assetChannel == "" {
		assetChannel = DefaultAssetChannel
	}
	if currency == "" {
		currency = "Credits"
	}

	return &Service{
		l:            l,
		s:            s,
		wallet:       wallet,
		selfID:       selfID,
		assetChannel: assetChannel,
		currency:     currency,
		now:          time.Now,
	}
}

func canManageChannels(perms int64) bool {
	return perms&discordgo.PermissionManageChannels != 0 || perms&discordgo.PermissionAdministrator != 0
}

// hostErr maps a permission failure from the API to ErrCapabilityDenied.
func hostErr(msg string, err error) error {
	if platform.IsForbidden(err) {
		return fmt.Errorf("%s: %w: %w", msg, ErrCapabilityDenied, err)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// category finds the category by name or creates it.
func (s *Service) category(guildID, name string) (*discordgo.Channel, error) {
	channels, err := s.s.GuildChannels(guildID)
	if err != nil {
		return nil, hostErr("error getting guild channels", err)
	}

	for _, c := range channels {
		if c.Type == discordgo.ChannelTypeGuildCategory && c.Name == name {
			return c, nil
		}
	}

	s.l.Info("Ticket category does not exist, creating it now", slog.String("category", name))

	category, err := s.s.GuildChannelCreateComplex(guildID, discordgo.GuildChannelCreateData{
		Name: name,
		Type: discordgo.ChannelTypeGuildCategory,
	})
	if err != nil {
		return nil, hostErr("error creating category", err)
	}
	return category, nil
}

// channelIn returns the channel with the name under the category.
func (s *Service) channelIn(guildID, categoryID, name string) (*discordgo.Channel, error) {
	channels, err := s.s.GuildChannels(guildID)
	if err != nil {
		return nil, hostErr("error getting guild channels", err)
	}

	for _, c := range channels {
		if c.ParentID == categoryID && c.Name == name {
			return c, nil
		}
	}
	return nil, nil
}

// roleByName returns the first role found for the names, in order.
func (s *Service) roleByName(guildID string, names ...string) *discordgo.Role {
	roles, err := s.s.GuildRoles(guildID)
	if err != nil {
		s.l.Warn("Error getting guild roles",
			slog.String(logging.KeyGuildID, guildID),
			slog.String(logging.KeyError, err.Error()),
		)
		return nil
	}

	for _, name := range names {
		for _, r := range roles {
			if strings.EqualFold(r.Name, name) {
				return r
			}
		}
	}
	return nil
}

// overwrites hides the channel from everyone except the bot, the members and the role.
func (s *Service) overwrites(guildID string, role *discordgo.Role, memberIDs ...string) []*discordgo.PermissionOverwrite {
	out := []*discordgo.PermissionOverwrite{
		// Deny @everyone from seeing the ticket.
		{
			ID:   guildID,
			Type: discordgo.PermissionOverwriteTypeRole,
			Deny: discordgo.PermissionViewChannel,
		},
	}

	if selfID := s.selfID(); selfID != "" {
		out = append(out, &discordgo.PermissionOverwrite{
			ID:    selfID,
			Type:  discordgo.PermissionOverwriteTypeMember,
			Allow: memberPermissions,
		})
	}

	for _, id := range memberIDs {
		out = append(out, &discordgo.PermissionOverwrite{
			ID:    id,
			Type:  discordgo.PermissionOverwriteTypeMember,
			Allow: memberPermissions,
		})
	}

	if role != nil {
		out = append(out, &discordgo.PermissionOverwrite{
			ID:    role.ID,
			Type:  discordgo.PermissionOverwriteTypeRole,
			Allow: memberPermissions,
		})
	}
	return out
}

// CloseComponents returns the close button posted in every ticket.
func CloseComponents() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Close Ticket",
					Style:    discordgo.DangerButton,
					Emoji:    discordgo.ComponentEmoji{Name: "🔒"},
					CustomID: CloseTicketButtonID,
				},
			},
		},
	}
}

func (s *Service) timestamp() string {
	return s.now().UTC().Format(time.DateTime)
}
