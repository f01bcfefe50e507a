package ticketing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Jacobbrewer1/bazaar/pkg/entities"
	"github.com/Jacobbrewer1/bazaar/pkg/ledger"
	"github.com/Jacobbrewer1/bazaar/pkg/logging"
	"github.com/Jacobbrewer1/bazaar/pkg/shop"
	"github.com/Jacobbrewer1/discordgo"
	"github.com/shopspring/decimal"
)

const purchaseFooter = "Unreal Engine 5 Asset Shop • Thank you for your interest!"

// Delivery is how a purchased asset reaches the buyer.
type Delivery int

const (
	// DeliveryNone is used when nothing was bought.
	DeliveryNone Delivery = iota

	// DeliveryShared is used when the asset post was copied into the ticket.
	DeliveryShared

	// DeliveryManual is used when no asset post was found and the seller delivers it.
	DeliveryManual

	// DeliveryFailed is used when the asset channel could not be searched.
	DeliveryFailed
)

func (d Delivery) String() string {
	switch d {
	case DeliveryShared:
		return "shared"
	case DeliveryManual:
		return "manual"
	case DeliveryFailed:
		return "failed"
	default:
		return "none"
	}
}

// PurchaseOutcome is the result of opening a purchase ticket.
type PurchaseOutcome struct {
	Result

	// Purchase is the ledger outcome. It is nil when no funds were moved.
	Purchase *ledger.PurchaseResult

	// Delivery is how the asset is delivered.
	Delivery Delivery
}

// CreatePurchaseTicket opens a purchase ticket for the item.
//
// When the buyer can afford the item the price is moved to the seller and the asset is looked
// up for delivery. A ticket that is already open is returned before any funds move.
func (s *Service) CreatePurchaseTicket(ctx context.Context, req *Requester, item *shop.Item) (*PurchaseOutcome, error) {
	if !canManageChannels(req.AppPermissions) {
		return nil, ErrCapabilityDenied
	}

	ticket := &entities.Ticket{
		Kind:      entities.TicketKindPurchase,
		Username:  req.Username,
		ItemTitle: item.Title,
	}
	name := ticket.Name()

	category, err := s.category(req.GuildID, PurchaseCategory)
	if err != nil {
		return nil, err
	}

	existing, err := s.channelIn(req.GuildID, category.ID, name)
	if err != nil {
		return nil, err
	} else if existing != nil {
		return &PurchaseOutcome{Result: Result{Channel: existing, Existing: true}}, nil
	}

	var seller *discordgo.Member
	if item.SellerID != "" {
		seller, err = s.s.GuildMember(req.GuildID, item.SellerID)
		if err != nil {
			// The seller may have left the guild.
			s.l.Debug("Seller not resolvable", slog.String(logging.KeyUserID, item.SellerID))
			seller = nil
		}
	}

	role := s.roleByName(req.GuildID, "Seller", "Admin")

	members := []string{req.UserID}
	if seller != nil && seller.User != nil {
		members = append(members, seller.User.ID)
	}

	channel, err := s.s.GuildChannelCreateComplex(req.GuildID, discordgo.GuildChannelCreateData{
		Name:                 name,
		Type:                 discordgo.ChannelTypeGuildText,
		Topic:                fmt.Sprintf("Purchase ticket for %s | Customer: %s", item.Title, req.Username),
		ParentID:             category.ID,
		PermissionOverwrites: s.overwrites(req.GuildID, role, members...),
	})
	if err != nil {
		return nil, hostErr("error creating purchase channel", err)
	}
	TotalTickets.WithLabelValues(string(entities.TicketKindPurchase)).Inc()

	outcome := &PurchaseOutcome{Result: Result{Channel: channel}}

	balance := s.wallet.GetBalance(req.UserID)
	affordable := false
	if item.Price.IsPositive() && item.SellerID != "" {
		affordable = s.wallet.HasSufficientBalance(req.UserID, item.Price)
	}

	if affordable {
		outcome.Purchase = s.wallet.Purchase(ctx, req.UserID, item.SellerID, item.Price)
		if !outcome.Purchase.Success {
			balance = outcome.Purchase.BuyerBalance
			affordable = !errors.Is(outcome.Purchase.Err, ledger.ErrInsufficientBalance)
		}
	}

	var embed *discordgo.MessageEmbed
	if outcome.Purchase != nil && outcome.Purchase.Success {
		embed = s.successEmbed(item, outcome.Purchase)
		outcome.Delivery = s.deliver(req.GuildID, channel.ID, item.Title)
		embed.Fields = append(embed.Fields, deliveryField(outcome.Delivery))
	} else {
		embed = s.discussionEmbed(item, item.Price.IsPositive() && !affordable, balance)
	}
	TotalDeliveries.WithLabelValues(outcome.Delivery.String()).Inc()

	mention := fmt.Sprintf("<@%s>", req.UserID)
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:   "Customer",
		Value:  fmt.Sprintf("%s (%s)", mention, req.Username),
		Inline: true,
	})
	if seller != nil && seller.User != nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Seller",
			Value:  fmt.Sprintf("<@%s> (%s)", seller.User.ID, seller.User.Username),
			Inline: true,
		})
	}
	embed.Footer = &discordgo.MessageEmbedFooter{Text: purchaseFooter}

	if _, err := s.s.ChannelMessageSendComplex(channel.ID, &discordgo.MessageSend{
		Content:    mention,
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: CloseComponents(),
	}); err != nil {
		s.l.Error("Error sending purchase message",
			slog.String("channel_id", channel.ID),
			slog.String(logging.KeyError, err.Error()),
		)
	}

	if role != nil {
		if _, err := s.s.ChannelMessageSendComplex(channel.ID, &discordgo.MessageSend{
			Content: fmt.Sprintf("<@&%s> - New purchase ticket opened!", role.ID),
		}); err != nil {
			s.l.Error("Error pinging seller role", slog.String(logging.KeyError, err.Error()))
		}
	}

	return outcome, nil
}

func (s *Service) successEmbed(item *shop.Item, res *ledger.PurchaseResult) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("✅ Purchase Successful: %s", item.Title),
		Description: "Thank you for your purchase! The asset has been automatically unlocked.",
		Color:       colourGreen,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name: "Transaction Details",
				Value: fmt.Sprintf("**Price:** %s %s\n**Remaining Balance:** %s %s",
					ledger.FormatAmount(res.Amount), s.currency,
					ledger.FormatAmount(res.BuyerBalance), s.currency,
				),
			},
		},
	}
}

func (s *Service) discussionEmbed(item *shop.Item, insufficient bool, balance decimal.Decimal) *discordgo.MessageEmbed {
	description := "Thank you for your interest in this item!"
	if insufficient {
		description += fmt.Sprintf("\n\n⚠️ **Insufficient Funds:** You need %s %s, but have %s %s.",
			ledger.FormatAmount(item.Price), s.currency,
			ledger.FormatAmount(balance), s.currency,
		)
	}

	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🛒 Purchase Discussion: %s", item.Title),
		Description: description,
		Color:       colourOrange,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:  "Next Steps",
				Value: "A seller will assist you shortly with your purchase process. You can discuss payment options, request more information, or arrange a manual transaction.",
			},
		},
	}
}

func deliveryField(d Delivery) *discordgo.MessageEmbedField {
	switch d {
	case DeliveryShared:
		return &discordgo.MessageEmbedField{
			Name:  "Asset Download",
			Value: "The asset will be shared below. Please follow the installation instructions.",
		}
	case DeliveryFailed:
		return &discordgo.MessageEmbedField{
			Name:  "Asset Delivery",
			Value: "There was an issue with automatic asset delivery. The seller will deliver it manually.",
		}
	default:
		return &discordgo.MessageEmbedField{
			Name:  "Asset Delivery",
			Value: "Your purchased asset will be delivered manually by the seller shortly.",
		}
	}
}
