// Package platform is the boundary between the bot and the Discord API.
//
// Session lists every host call the bot makes. The discordgo session is wrapped by
// NewDiscordSession and a recording fake lives in platformtest.
package platform

import (
	"errors"
	"net/http"

	"github.com/Jacobbrewer1/discordgo"
)

// Session is the set of Discord API calls used by the bot.
type Session interface {
	// InteractionRespond responds to an interaction.
	InteractionRespond(i *discordgo.Interaction, resp *discordgo.InteractionResponse) error

	// FollowupMessageCreate sends a follow-up message to an interaction that was already responded to.
	FollowupMessageCreate(i *discordgo.Interaction, data *discordgo.WebhookParams) (*discordgo.Message, error)

	// ChannelMessageSendComplex sends a message to a channel.
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend) (*discordgo.Message, error)

	// ChannelMessageEditComplex edits a message.
	ChannelMessageEditComplex(data *discordgo.MessageEdit) (*discordgo.Message, error)

	// ChannelMessages returns up to limit of the most recent messages in a channel.
	ChannelMessages(channelID string, limit int) ([]*discordgo.Message, error)

	// MessageReactionAdd adds a reaction to a message as the bot. The emoji is in API form (name or name:id).
	MessageReactionAdd(channelID, messageID, emoji string) error

	// Channel returns a channel by ID.
	Channel(channelID string) (*discordgo.Channel, error)

	// GuildChannels returns every channel of a guild.
	GuildChannels(guildID string) ([]*discordgo.Channel, error)

	// GuildChannelCreateComplex creates a channel or category in a guild.
	GuildChannelCreateComplex(guildID string, data discordgo.GuildChannelCreateData) (*discordgo.Channel, error)

	// ChannelEditComplex edits a channel.
	ChannelEditComplex(channelID string, data *discordgo.ChannelEdit) (*discordgo.Channel, error)

	// ChannelPermissionSet sets a permission overwrite on a channel.
	ChannelPermissionSet(channelID, targetID string, targetType discordgo.PermissionOverwriteType, allow, deny int64) error

	// Guild returns a guild by ID.
	Guild(guildID string) (*discordgo.Guild, error)

	// GuildRoles returns the roles of a guild.
	GuildRoles(guildID string) ([]*discordgo.Role, error)

	// GuildMember returns a member of a guild.
	GuildMember(guildID, userID string) (*discordgo.Member, error)

	// GuildMemberRoleAdd grants a role to a member.
	GuildMemberRoleAdd(guildID, userID, roleID string) error

	// GuildMemberRoleRemove revokes a role from a member.
	GuildMemberRoleRemove(guildID, userID, roleID string) error
}

// IsForbidden reports whether err is a 403 from the Discord API.
func IsForbidden(err error) bool {
	restErr := new(discordgo.RESTError)
	if !errors.As(err, &restErr) || restErr == nil {
		return false
	}

	if restErr.Response != nil && restErr.Response.StatusCode == http.StatusForbidden {
		return true
	}
	return restErr.Message != nil && restErr.Message.Code == discordgo.ErrCodeMissingPermissions
}

// IsNotFound reports whether err is an unknown-resource error from the Discord API.
func IsNotFound(err error) bool {
	restErr := new(discordgo.RESTError)
	if !errors.As(err, &restErr) || restErr == nil {
		return false
	}

	if restErr.Response != nil && restErr.Response.StatusCode == http.StatusNotFound {
		return true
	}
	return restErr.Message != nil && (restErr.Message.Code == discordgo.ErrCodeUnknownChannel ||
		restErr.Message.Code == discordgo.ErrCodeUnknownMessage ||
		restErr.Message.Code == discordgo.ErrCodeUnknownMember ||
		restErr.Message.Code == discordgo.ErrCodeUnknownRole)
}
