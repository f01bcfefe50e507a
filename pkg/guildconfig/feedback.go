package guildconfig

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/Jacobbrewer1/bazaar/pkg/custom"
	"github.com/Jacobbrewer1/bazaar/pkg/dataaccess"
	"github.com/Jacobbrewer1/bazaar/pkg/entities"
	"github.com/Jacobbrewer1/discordgo"
)

// FeedbackDocumentName is the name of the feedback configuration document.
const FeedbackDocumentName = "feedback_config.json"

const (
	feedbackButtonPrefix = "feedback_button_"
	feedbackModalPrefix  = "feedback_modal_"

	// Modal field IDs.
	FeedbackFieldTitle  = "feedback_title"
	FeedbackFieldBody   = "feedback_body"
	FeedbackFieldRating = "feedback_rating"
)

const (
	DefaultFeedbackTitle       = "We Value Your Feedback"
	DefaultFeedbackDescription = "Please click the button below to share your thoughts and suggestions with us."
)

const feedbackColour = 0x3498db

// ErrInvalidRating is returned when a rating is not a whole number from 1 to 5.
var ErrInvalidRating = errors.New("rating must be a number between 1 and 5")

// FeedbackStore holds the feedback configuration of every guild.
type FeedbackStore struct {
	doc *dataaccess.Document[map[string]*entities.FeedbackConfig]
}

// NewFeedbackStore opens the feedback document on the backend.
func NewFeedbackStore(ctx context.Context, l *slog.Logger, backend dataaccess.Backend) *FeedbackStore {
	return &FeedbackStore{
		doc: dataaccess.OpenDocument(ctx, l, backend, FeedbackDocumentName, func() map[string]*entities.FeedbackConfig {
			return make(map[string]*entities.FeedbackConfig)
		}),
	}
}

// Set replaces the feedback configuration of the guild.
func (f *FeedbackStore) Set(ctx context.Context, guildID, panelChannelID, feedbackChannelID string) error {
	if guildID == "" || feedbackChannelID == "" {
		return fmt.Errorf("guild and feedback channel IDs are required")
	}

	return f.doc.Mutate(ctx, func(m map[string]*entities.FeedbackConfig) error {
		m[guildID] = &entities.FeedbackConfig{
			PanelChannelID:    custom.Snowflake(panelChannelID),
			FeedbackChannelID: custom.Snowflake(feedbackChannelID),
		}
		return nil
	})
}

// All returns a copy of every guild's feedback configuration.
func (f *FeedbackStore) All() map[string]entities.FeedbackConfig {
	out := make(map[string]entities.FeedbackConfig)
	f.doc.Read(func(m map[string]*entities.FeedbackConfig) {
		for guildID, c := range m {
			if c != nil {
				out[guildID] = *c
			}
		}
	})
	return out
}

// ParseRating parses a 1 to 5 rating.
func ParseRating(s string) (int, error) {
	rating, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || rating < 1 || rating > 5 {
		return 0, ErrInvalidRating
	}
	return rating, nil
}

// FeedbackButtonID returns the custom ID of the feedback button that forwards to the channel.
func FeedbackButtonID(feedbackChannelID string) string {
	return feedbackButtonPrefix + feedbackChannelID
}

// FeedbackModalID returns the custom ID of the feedback modal that forwards to the channel.
func FeedbackModalID(feedbackChannelID string) string {
	return feedbackModalPrefix + feedbackChannelID
}

// ParseFeedbackButtonID returns the feedback channel of a feedback button custom ID.
func ParseFeedbackButtonID(customID string) (string, bool) {
	return trimID(customID, feedbackButtonPrefix)
}

// ParseFeedbackModalID returns the feedback channel of a feedback modal custom ID.
func ParseFeedbackModalID(customID string) (string, bool) {
	return trimID(customID, feedbackModalPrefix)
}

func trimID(customID, prefix string) (string, bool) {
	if !strings.HasPrefix(customID, prefix) {
		return "", false
	}
	id := strings.TrimPrefix(customID, prefix)
	return id, id != ""
}

// FeedbackPanel builds the panel message that opens the feedback form.
func FeedbackPanel(guild *discordgo.Guild, feedbackChannelID, title, description, creator string) *discordgo.MessageSend {
	if title == "" {
		title = DefaultFeedbackTitle
	}
	if description == "" {
		description = DefaultFeedbackDescription
	}

	embed := &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       feedbackColour,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "How It Works",
				Value:  "Click the button below to open a feedback form. Your feedback will be anonymous to other users and only visible to our team.",
				Inline: false,
			},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Feedback System • Created by %s", creator),
		},
	}

	if guild != nil && guild.Icon != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{
			URL: discordgo.EndpointGuildIcon(guild.ID, guild.Icon),
		}
	}

	return &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{embed},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    "Give Feedback",
						Style:    discordgo.PrimaryButton,
						Emoji:    discordgo.ComponentEmoji{Name: "📝"},
						CustomID: FeedbackButtonID(feedbackChannelID),
					},
				},
			},
		},
	}
}

// FeedbackModal builds the feedback form.
func FeedbackModal(feedbackChannelID string) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		CustomID: FeedbackModalID(feedbackChannelID),
		Title:    "Provide Feedback",
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    FeedbackFieldTitle,
						Label:       "Title",
						Style:       discordgo.TextInputShort,
						Placeholder: "Brief summary of your feedback",
						Required:    true,
						MaxLength:   100,
					},
				},
			},
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    FeedbackFieldBody,
						Label:       "Your Feedback",
						Style:       discordgo.TextInputParagraph,
						Placeholder: "Please share your detailed feedback, suggestions, or experience...",
						Required:    true,
						MaxLength:   1000,
					},
				},
			},
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    FeedbackFieldRating,
						Label:       "Rating (1-5 stars)",
						Style:       discordgo.TextInputShort,
						Placeholder: "Enter a rating from 1-5",
						Required:    true,
						MaxLength:   1,
					},
				},
			},
		},
	}
}

// Feedback is a submitted feedback form.
type Feedback struct {
	Title  string
	Body   string
	Rating int
	Author *discordgo.User
}

// FeedbackEmbed renders submitted feedback for the feedback channel.
func FeedbackEmbed(fb *Feedback, now time.Time) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("📝 %s", fb.Title),
		Description: fb.Body,
		Color:       feedbackColour,
		Timestamp:   now.Format(time.RFC3339),
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Rating",
				Value:  fmt.Sprintf("%s (%d/5)", strings.Repeat("⭐", fb.Rating), fb.Rating),
				Inline: false,
			},
		},
	}

	if fb.Author != nil {
		embed.Author = &discordgo.MessageEmbedAuthor{
			Name:    fmt.Sprintf("Feedback from %s", fb.Author.Username),
			IconURL: fb.Author.AvatarURL(""),
		}
	}

	return embed
}
