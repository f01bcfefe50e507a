// Package shop renders item listings and tracks the listings that can still be bought.
package shop

import (
	"fmt"
	"strings"
	"time"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/shopspring/decimal"
)

const (
	// PurchaseButtonID is the custom ID of the purchase button on a listing.
	PurchaseButtonID = "purchase_item"

	// MoreInfoButtonID is the custom ID of the more info button on a listing.
	MoreInfoButtonID = "more_info"
)

// DefaultCategory is used when an item has no known category.
const DefaultCategory = "Asset"

// Categories are the item categories, in the order they are offered.
var Categories = []string{
	"Actor Component",
	"Weapon System",
	"Character System",
	"Game Mode",
	"Blueprint",
	"Material",
	DefaultCategory,
}

var categoryColours = map[string]int{
	"Actor Component":  0x3498db,
	"Weapon System":    0xe74c3c,
	"Character System": 0x2ecc71,
	"Game Mode":        0xf1c40f,
	"Blueprint":        0x9b59b6,
	"Material":         0xe67e22,
	DefaultCategory:    0x1abc9c,
}

const (
	thumbnailURL = "https://cdn2.unrealengine.com/ue-logo-stacked-unreal-engine-w-677x545-fac11de0943f.png"
	footerText   = "Unreal Engine 5 Asset Shop • Professional Game Development Tools"
)

// Item is an item offered for sale.
type Item struct {
	Title        string
	Price        decimal.Decimal
	PriceText    string
	Category     string
	Description  string
	DetailedInfo string
	SellerID     string
	MainImageURL string
	Screenshots  []string
}

// NewItem creates an item, parsing the price from its text.
func NewItem(title, priceText, category, sellerID string) *Item {
	if _, ok := categoryColours[category]; !ok {
		category = DefaultCategory
	}
	if title == "" {
		title = "Product"
	}

	return &Item{
		Title:     title,
		Price:     ParsePrice(priceText),
		PriceText: priceText,
		Category:  category,
		SellerID:  sellerID,
	}
}

// ListingEmbed renders the embed of an item listing.
func ListingEmbed(item *Item, now time.Time) *discordgo.MessageEmbed {
	colour, ok := categoryColours[item.Category]
	if !ok {
		colour = categoryColours[DefaultCategory]
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🛒 %s", item.Title),
		Description: fmt.Sprintf("**%s**\n\n", item.Description),
		Color:       colour,
		Timestamp:   now.Format(time.RFC3339),
		Thumbnail: &discordgo.MessageEmbedThumbnail{
			URL: thumbnailURL,
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: footerText,
		},
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "🏷️ Category",
				Value:  fmt.Sprintf("`%s`", item.Category),
				Inline: true,
			},
			{
				Name:   "💲 Price",
				Value:  fmt.Sprintf("**%s %s**", priceTier(item.Price), item.PriceText),
				Inline: true,
			},
		},
	}

	if item.MainImageURL != "" {
		embed.Image = &discordgo.MessageEmbedImage{
			URL: item.MainImageURL,
		}
	}

	if item.DetailedInfo != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "📋 Detailed Information",
			Value:  strings.ReplaceAll(item.DetailedInfo, "•", "• "),
			Inline: false,
		})
	}

	if len(item.Screenshots) > 0 {
		links := make([]string, 0, len(item.Screenshots))
		for i, url := range item.Screenshots {
			links = append(links, fmt.Sprintf("[Screenshot %d](%s)", i+1, url))
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "📸 Screenshots",
			Value:  strings.Join(links, " | "),
			Inline: false,
		})
	}

	return embed
}

// ListingComponents returns the buttons of a listing.
func ListingComponents(disabled bool) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Purchase",
					Style:    discordgo.SuccessButton,
					Disabled: disabled,
					Emoji:    discordgo.ComponentEmoji{Name: "💳"},
					CustomID: PurchaseButtonID,
				},
				discordgo.Button{
					Label:    "More Info",
					Style:    discordgo.PrimaryButton,
					Disabled: disabled,
					Emoji:    discordgo.ComponentEmoji{Name: "ℹ️"},
					CustomID: MoreInfoButtonID,
				},
			},
		},
	}
}
