package main

import (
	"log/slog"

	"github.com/Jacobbrewer1/bazaar/pkg/logging"
	"github.com/Jacobbrewer1/bazaar/pkg/messages"
	"github.com/Jacobbrewer1/discordgo"
	"github.com/shopspring/decimal"
)

func respondError(a IApp, i *discordgo.InteractionCreate) {
	if err := respondEphemeral(a, i, messages.ErrUserErrorProcessing); err != nil {
		// The interaction may already have been answered.
		if _, err := a.Session().FollowupMessageCreate(i.Interaction, &discordgo.WebhookParams{
			Content: messages.ErrUserErrorProcessing,
			Flags:   discordgo.MessageFlagsEphemeral,
		}); err != nil {
			a.Log().Error("Error responding to interaction", slog.String(logging.KeyError, err.Error()))
		}
	}
}

func respondEphemeral(a IApp, i *discordgo.InteractionCreate, content string) error {
	return a.Session().InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

func respondEmbed(a IApp, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, ephemeral bool) error {
	data := &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{embed},
	}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}

	return a.Session().InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
}

func followupEphemeral(a IApp, i *discordgo.InteractionCreate, content string) error {
	_, err := a.Session().FollowupMessageCreate(i.Interaction, &discordgo.WebhookParams{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
	return err
}

// deferEphemeral acknowledges the interaction so the handler can take longer than the response window.
func deferEphemeral(a IApp, i *discordgo.InteractionCreate) error {
	return a.Session().InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	})
}

// interactionUser returns the user behind an interaction, in a guild or a DM.
func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

func isAdmin(i *discordgo.InteractionCreate) bool {
	return i.Member != nil && i.Member.Permissions&discordgo.PermissionAdministrator == discordgo.PermissionAdministrator
}

type options map[string]*discordgo.ApplicationCommandInteractionDataOption

func commandOptions(i *discordgo.InteractionCreate) options {
	opts := make(options)
	for _, o := range i.ApplicationCommandData().Options {
		opts[o.Name] = o
	}
	return opts
}

func (o options) string(name string) string {
	opt, ok := o[name]
	if !ok {
		return ""
	}
	s, _ := opt.Value.(string)
	return s
}

// id returns the snowflake of a user, channel, role or attachment option.
func (o options) id(name string) string {
	return o.string(name)
}

func (o options) amount(name string) decimal.Decimal {
	opt, ok := o[name]
	if !ok {
		return decimal.Zero
	}

	switch v := opt.Value.(type) {
	case float64:
		return decimal.NewFromFloat(v).Round(2)
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero
		}
		return d.Round(2)
	default:
		return decimal.Zero
	}
}

// resolvedUser returns the user picked for a user option.
func resolvedUser(i *discordgo.InteractionCreate, userID string) *discordgo.User {
	data := i.ApplicationCommandData()
	if data.Resolved != nil {
		if u, ok := data.Resolved.Users[userID]; ok {
			return u
		}
	}
	return &discordgo.User{ID: userID}
}

// resolvedAttachmentURL returns the URL of an uploaded attachment option.
func resolvedAttachmentURL(i *discordgo.InteractionCreate, attachmentID string) string {
	data := i.ApplicationCommandData()
	if attachmentID == "" || data.Resolved == nil {
		return ""
	}
	if a, ok := data.Resolved.Attachments[attachmentID]; ok {
		return a.URL
	}
	return ""
}

// modalValues returns the text inputs of a submitted modal by custom ID.
func modalValues(i *discordgo.InteractionCreate) map[string]string {
	values := make(map[string]string)
	for _, row := range i.ModalSubmitData().Components {
		var comps []discordgo.MessageComponent
		switch r := row.(type) {
		case *discordgo.ActionsRow:
			comps = r.Components
		case discordgo.ActionsRow:
			comps = r.Components
		}

		for _, c := range comps {
			switch input := c.(type) {
			case *discordgo.TextInput:
				values[input.CustomID] = input.Value
			case discordgo.TextInput:
				values[input.CustomID] = input.Value
			}
		}
	}
	return values
}
