package platform

import (
	"github.com/Jacobbrewer1/discordgo"
)

// discordSession adapts a discordgo session to Session.
type discordSession struct {
	s *discordgo.Session
}

// NewDiscordSession wraps a discordgo session.
func NewDiscordSession(s *discordgo.Session) Session {
	return &discordSession{
		s: s,
	}
}

func (d *discordSession) InteractionRespond(i *discordgo.Interaction, resp *discordgo.InteractionResponse) error {
	return d.s.InteractionRespond(i, resp)
}

func (d *discordSession) FollowupMessageCreate(i *discordgo.Interaction, data *discordgo.WebhookParams) (*discordgo.Message, error) {
	return d.s.FollowupMessageCreate(i, true, data)
}

func (d *discordSession) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend) (*discordgo.Message, error) {
	return d.s.ChannelMessageSendComplex(channelID, data)
}

func (d *discordSession) ChannelMessageEditComplex(data *discordgo.MessageEdit) (*discordgo.Message, error) {
	return d.s.ChannelMessageEditComplex(data)
}

func (d *discordSession) ChannelMessages(channelID string, limit int) ([]*discordgo.Message, error) {
	return d.s.ChannelMessages(channelID, limit, "", "", "")
}

func (d *discordSession) MessageReactionAdd(channelID, messageID, emoji string) error {
	return d.s.MessageReactionAdd(channelID, messageID, emoji)
}

// Channel reads from the state cache before falling back to the API.
func (d *discordSession) Channel(channelID string) (*discordgo.Channel, error) {
	if d.s.State != nil {
		if c, err := d.s.State.Channel(channelID); err == nil {
			return c, nil
		}
	}
	return d.s.Channel(channelID)
}

func (d *discordSession) GuildChannels(guildID string) ([]*discordgo.Channel, error) {
	return d.s.GuildChannels(guildID)
}

func (d *discordSession) GuildChannelCreateComplex(guildID string, data discordgo.GuildChannelCreateData) (*discordgo.Channel, error) {
	return d.s.GuildChannelCreateComplex(guildID, data)
}

func (d *discordSession) ChannelEditComplex(channelID string, data *discordgo.ChannelEdit) (*discordgo.Channel, error) {
	return d.s.ChannelEditComplex(channelID, data)
}

func (d *discordSession) ChannelPermissionSet(channelID, targetID string, targetType discordgo.PermissionOverwriteType, allow, deny int64) error {
	return d.s.ChannelPermissionSet(channelID, targetID, targetType, allow, deny)
}

// Guild reads from the state cache before falling back to the API. The cached guild carries the member count.
func (d *discordSession) Guild(guildID string) (*discordgo.Guild, error) {
	if d.s.State != nil {
		if g, err := d.s.State.Guild(guildID); err == nil {
			return g, nil
		}
	}
	return d.s.Guild(guildID)
}

func (d *discordSession) GuildRoles(guildID string) ([]*discordgo.Role, error) {
	return d.s.GuildRoles(guildID)
}

func (d *discordSession) GuildMember(guildID, userID string) (*discordgo.Member, error) {
	if d.s.State != nil {
		if m, err := d.s.State.Member(guildID, userID); err == nil {
			return m, nil
		}
	}
	return d.s.GuildMember(guildID, userID)
}

func (d *discordSession) GuildMemberRoleAdd(guildID, userID, roleID string) error {
	return d.s.GuildMemberRoleAdd(guildID, userID, roleID)
}

func (d *discordSession) GuildMemberRoleRemove(guildID, userID, roleID string) error {
	return d.s.GuildMemberRoleRemove(guildID, userID, roleID)
}
