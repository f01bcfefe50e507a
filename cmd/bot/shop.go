package main

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Jacobbrewer1/bazaar/pkg/logging"
	"github.com/Jacobbrewer1/bazaar/pkg/messages"
	"github.com/Jacobbrewer1/bazaar/pkg/platform"
	"github.com/Jacobbrewer1/bazaar/pkg/shop"
	"github.com/Jacobbrewer1/bazaar/pkg/ticketing"
	"github.com/Jacobbrewer1/discordgo"
)

// addItemCmd posts a listing in the channel. The listing is posted as a channel message so its
// ID can key the catalog.
func addItemCmd(a IApp, i *discordgo.InteractionCreate) error {
	opts := commandOptions(i)
	seller := interactionUser(i)

	item := shop.NewItem(opts.string(optTitle), opts.string(optPrice), opts.string(optCategory), seller.ID)
	item.Description = opts.string(optDescription)
	item.DetailedInfo = opts.string(optDetailedInfo)
	item.MainImageURL = resolvedAttachmentURL(i, opts.id(optMainImage))
	for n := 1; n <= maxScreenshots; n++ {
		if url := resolvedAttachmentURL(i, opts.id(screenshotOption(n))); url != "" {
			item.Screenshots = append(item.Screenshots, url)
		}
	}

	msg, err := a.Session().ChannelMessageSendComplex(i.ChannelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{shop.ListingEmbed(item, time.Now())},
		Components: shop.ListingComponents(false),
	})
	if err != nil {
		return fmt.Errorf("error posting listing: %w", err)
	}

	a.Catalog().Put(&shop.Listing{
		ChannelID: i.ChannelID,
		MessageID: msg.ID,
		Item:      item,
	})

	return respondEphemeral(a, i, fmt.Sprintf("Listed **%s** for %s.", item.Title, item.PriceText))
}

func purchaseItemButton(a IApp, i *discordgo.InteractionCreate) error {
	listing, ok := a.Catalog().Get(i.Message.ID)
	if !ok {
		return respondEphemeral(a, i, messages.ErrListingExpired)
	}

	// Delivery scans channel history, which can outlast the response window.
	if err := deferEphemeral(a, i); err != nil {
		return fmt.Errorf("error deferring purchase: %w", err)
	}

	outcome, err := a.Tickets().CreatePurchaseTicket(a.Context(), requester(i), listing.Item)
	if errors.Is(err, ticketing.ErrCapabilityDenied) {
		return followupEphemeral(a, i, messages.ErrNoManage)
	} else if err != nil {
		return fmt.Errorf("error creating purchase ticket: %w", err)
	}

	var content string
	switch {
	case outcome.Existing:
		content = fmt.Sprintf("You already have a purchase ticket for this item: %s", outcome.Channel.Mention())
	case outcome.Purchase != nil && outcome.Purchase.Success:
		content = fmt.Sprintf("Purchase successful! Check %s for your item.", outcome.Channel.Mention())
	default:
		content = fmt.Sprintf("Purchase ticket created: %s", outcome.Channel.Mention())
	}
	return followupEphemeral(a, i, content)
}

func moreInfoButton(a IApp, i *discordgo.InteractionCreate) error {
	return respondEphemeral(a, i, messages.MoreInfo)
}

// expireListing disables the buttons of a listing that left the catalog.
func expireListing(l *slog.Logger, s platform.Session) func(*shop.Listing) {
	return func(listing *shop.Listing) {
		if _, err := s.ChannelMessageEditComplex(&discordgo.MessageEdit{
			Channel:    listing.ChannelID,
			ID:         listing.MessageID,
			Components: shop.ListingComponents(true),
		}); err != nil {
			// The listing may have been deleted.
			l.Debug("Error disabling expired listing",
				slog.String("message_id", listing.MessageID),
				slog.String(logging.KeyError, err.Error()),
			)
		}
	}
}
