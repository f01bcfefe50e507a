// Package guildconfig stores the per guild welcome and feedback settings and renders their messages.
package guildconfig

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Jacobbrewer1/bazaar/pkg/custom"
	"github.com/Jacobbrewer1/bazaar/pkg/dataaccess"
	"github.com/Jacobbrewer1/bazaar/pkg/entities"
	"github.com/Jacobbrewer1/discordgo"
)

// WelcomeDocumentName is the name of the welcome configuration document.
const WelcomeDocumentName = "welcome_config.json"

// DefaultWelcomeTemplate is used when a guild has not set its own message.
const DefaultWelcomeTemplate = "Welcome {user} to our server! We're glad to have you here."

// RulesChannelName is the name of the channel linked from the welcome message.
const RulesChannelName = "rules"

const (
	userSlot       = "{user}"
	legacyUserSlot = "{}"
)

const welcomeColour = 0x2ecc71

// WelcomeStore holds the welcome configuration of every guild.
type WelcomeStore struct {
	doc *dataaccess.Document[map[string]*entities.WelcomeConfig]
}

// NewWelcomeStore opens the welcome document on the backend.
func NewWelcomeStore(ctx context.Context, l *slog.Logger, backend dataaccess.Backend) *WelcomeStore {
	return &WelcomeStore{
		doc: dataaccess.OpenDocument(ctx, l, backend, WelcomeDocumentName, func() map[string]*entities.WelcomeConfig {
			return make(map[string]*entities.WelcomeConfig)
		}),
	}
}

// Get returns a copy of the welcome configuration of the guild.
func (w *WelcomeStore) Get(guildID string) (*entities.WelcomeConfig, bool) {
	var cfg *entities.WelcomeConfig
	w.doc.Read(func(m map[string]*entities.WelcomeConfig) {
		if c, ok := m[guildID]; ok && c != nil {
			cp := *c
			cp.InfoFields = append([]entities.InfoField(nil), c.InfoFields...)
			cfg = &cp
		}
	})
	return cfg, cfg != nil
}

// SetChannel sets the welcome channel of the guild. The message is only replaced when one is given.
func (w *WelcomeStore) SetChannel(ctx context.Context, guildID, channelID, message string) error {
	if guildID == "" || channelID == "" {
		return fmt.Errorf("guild and channel IDs are required")
	}

	return w.doc.Mutate(ctx, func(m map[string]*entities.WelcomeConfig) error {
		cfg, ok := m[guildID]
		if !ok || cfg == nil {
			cfg = new(entities.WelcomeConfig)
			m[guildID] = cfg
		}

		cfg.ChannelID = custom.Snowflake(channelID)
		if message != "" {
			cfg.Message = message
		}
		return nil
	})
}

// WelcomeContext is what a welcome message is rendered for.
type WelcomeContext struct {
	Guild          *discordgo.Guild
	Member         *discordgo.Member
	RulesChannelID string
	MemberCount    int
}

// RenderTemplate substitutes the member mention into a welcome template.
func RenderTemplate(template, mention string) string {
	if template == "" {
		template = DefaultWelcomeTemplate
	}

	if strings.Contains(template, userSlot) {
		return strings.ReplaceAll(template, userSlot, mention)
	}
	return strings.Replace(template, legacyUserSlot, mention, 1)
}

// Render builds the welcome embed for a member.
func Render(cfg *entities.WelcomeConfig, wc *WelcomeContext) *discordgo.MessageEmbed {
	user := wc.Member.User

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Welcome to %s!", wc.Guild.Name),
		Description: RenderTemplate(cfg.Message, user.Mention()),
		Color:       welcomeColour,
		Author: &discordgo.MessageEmbedAuthor{
			Name:    user.Username,
			IconURL: user.AvatarURL(""),
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Member #%d • Joined %s", wc.MemberCount, joinedAt(wc.Member).Format(time.DateOnly)),
		},
	}

	if wc.Guild.Icon != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{
			URL: discordgo.EndpointGuildIcon(wc.Guild.ID, wc.Guild.Icon),
		}
	}

	for _, f := range cfg.InfoFields {
		name, value := f.Name, f.Value
		if name == "" {
			name = "Information"
		}
		if value == "" {
			value = "No information provided."
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   name,
			Value:  value,
			Inline: f.Inline,
		})
	}

	if wc.RulesChannelID != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "📜 Server Rules",
			Value:  fmt.Sprintf("Please check <#%s> to see our server rules.", wc.RulesChannelID),
			Inline: false,
		})
	}

	return embed
}

func joinedAt(m *discordgo.Member) time.Time {
	if m.JoinedAt.IsZero() {
		return time.Now()
	}
	return m.JoinedAt
}
