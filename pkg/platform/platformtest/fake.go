// Package platformtest provides an in-memory platform.Session for tests.
package platformtest

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/Jacobbrewer1/bazaar/pkg/platform"
	"github.com/Jacobbrewer1/discordgo"
)

var _ platform.Session = (*Fake)(nil)

// Reaction is a reaction the bot added.
type Reaction struct {
	ChannelID string
	MessageID string
	Emoji     string
}

// RoleChange is a role granted to or revoked from a member.
type RoleChange struct {
	GuildID string
	UserID  string
	RoleID  string
}

// PermissionSet is a permission overwrite set on a channel.
type PermissionSet struct {
	ChannelID string
	TargetID  string
	Type      discordgo.PermissionOverwriteType
	Allow     int64
	Deny      int64
}

// Fake is a recording platform.Session. Guild state is seeded through the exported maps.
type Fake struct {
	mu sync.Mutex

	nextID int

	// Guilds by ID.
	Guilds map[string]*discordgo.Guild

	// Channels by ID. Guild channels are found through their GuildID.
	Channels map[string]*discordgo.Channel

	// Roles by guild ID.
	Roles map[string][]*discordgo.Role

	// Members by guild ID then user ID.
	Members map[string]map[string]*discordgo.Member

	// History by channel ID, most recent first.
	History map[string][]*discordgo.Message

	Responses      []*discordgo.InteractionResponse
	Followups      []*discordgo.WebhookParams
	Sent           map[string][]*discordgo.MessageSend
	Edits          []*discordgo.MessageEdit
	Reactions      []Reaction
	RolesAdded     []RoleChange
	RolesRemoved   []RoleChange
	PermissionSets []PermissionSet
	ChannelEdits   map[string][]*discordgo.ChannelEdit
	Created        []discordgo.GuildChannelCreateData

	// ForbidRoles makes role changes fail with a 403.
	ForbidRoles bool

	// ForbidChannels makes channel creation and edits fail with a 403.
	ForbidChannels bool

	// HistoryErr is returned from ChannelMessages when set.
	HistoryErr error

	// FollowupErr is returned from FollowupMessageCreate when set.
	FollowupErr error
}

// NewFake creates an empty fake.
func NewFake() *Fake {
	return &Fake{
		nextID:       1000,
		Guilds:       make(map[string]*discordgo.Guild),
		Channels:     make(map[string]*discordgo.Channel),
		Roles:        make(map[string][]*discordgo.Role),
		Members:      make(map[string]map[string]*discordgo.Member),
		History:      make(map[string][]*discordgo.Message),
		Sent:         make(map[string][]*discordgo.MessageSend),
		ChannelEdits: make(map[string][]*discordgo.ChannelEdit),
	}
}

// Forbidden returns the error the API gives for missing permissions.
func Forbidden() error {
	return &discordgo.RESTError{
		Response: &http.Response{StatusCode: http.StatusForbidden},
		Message:  &discordgo.APIErrorMessage{Code: discordgo.ErrCodeMissingPermissions, Message: "Missing Permissions"},
	}
}

// NotFound returns the error the API gives for an unknown resource.
func NotFound() error {
	return &discordgo.RESTError{
		Response: &http.Response{StatusCode: http.StatusNotFound},
		Message:  &discordgo.APIErrorMessage{Code: discordgo.ErrCodeUnknownChannel, Message: "Unknown Channel"},
	}
}

func (f *Fake) id() string {
	f.nextID++
	return strconv.Itoa(f.nextID)
}

// AddGuild seeds a guild.
func (f *Fake) AddGuild(g *discordgo.Guild) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Guilds[g.ID] = g
}

// AddChannel seeds a channel.
func (f *Fake) AddChannel(c *discordgo.Channel) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Channels[c.ID] = c
}

// AddRole seeds a role.
func (f *Fake) AddRole(guildID string, r *discordgo.Role) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Roles[guildID] = append(f.Roles[guildID], r)
}

// AddMember seeds a member.
func (f *Fake) AddMember(guildID string, m *discordgo.Member) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Members[guildID] == nil {
		f.Members[guildID] = make(map[string]*discordgo.Member)
	}
	f.Members[guildID][m.User.ID] = m
}

// SentTo returns the messages sent to a channel.
func (f *Fake) SentTo(channelID string) []*discordgo.MessageSend {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*discordgo.MessageSend(nil), f.Sent[channelID]...)
}

// LastResponse returns the most recent interaction response.
func (f *Fake) LastResponse() *discordgo.InteractionResponse {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Responses) == 0 {
		return nil
	}
	return f.Responses[len(f.Responses)-1]
}

// FollowupContents returns the content of every follow-up message.
func (f *Fake) FollowupContents() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.Followups))
	for _, p := range f.Followups {
		out = append(out, p.Content)
	}
	return out
}

func (f *Fake) InteractionRespond(_ *discordgo.Interaction, resp *discordgo.InteractionResponse) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Responses = append(f.Responses, resp)
	return nil
}

func (f *Fake) FollowupMessageCreate(_ *discordgo.Interaction, data *discordgo.WebhookParams) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FollowupErr != nil {
		return nil, f.FollowupErr
	}
	f.Followups = append(f.Followups, data)
	return &discordgo.Message{ID: f.id(), Content: data.Content}, nil
}

func (f *Fake) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.Channels[channelID]; !ok {
		return nil, NotFound()
	}
	f.Sent[channelID] = append(f.Sent[channelID], data)
	return &discordgo.Message{ID: f.id(), ChannelID: channelID, Content: data.Content, Embeds: data.Embeds}, nil
}

func (f *Fake) ChannelMessageEditComplex(data *discordgo.MessageEdit) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Edits = append(f.Edits, data)
	return &discordgo.Message{ID: data.ID, ChannelID: data.Channel}, nil
}

func (f *Fake) ChannelMessages(channelID string, limit int) ([]*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.HistoryErr != nil {
		return nil, f.HistoryErr
	}
	msgs := f.History[channelID]
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[:limit]
	}
	return append([]*discordgo.Message(nil), msgs...), nil
}

func (f *Fake) MessageReactionAdd(channelID, messageID, emoji string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Reactions = append(f.Reactions, Reaction{ChannelID: channelID, MessageID: messageID, Emoji: emoji})
	return nil
}

func (f *Fake) Channel(channelID string) (*discordgo.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.Channels[channelID]
	if !ok {
		return nil, NotFound()
	}
	return c, nil
}

func (f *Fake) GuildChannels(guildID string) ([]*discordgo.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*discordgo.Channel, 0)
	for _, c := range f.Channels {
		if c.GuildID == guildID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *Fake) GuildChannelCreateComplex(guildID string, data discordgo.GuildChannelCreateData) (*discordgo.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ForbidChannels {
		return nil, Forbidden()
	}
	c := &discordgo.Channel{
		ID:                   f.id(),
		GuildID:              guildID,
		Name:                 data.Name,
		Type:                 data.Type,
		Topic:                data.Topic,
		ParentID:             data.ParentID,
		PermissionOverwrites: data.PermissionOverwrites,
	}
	f.Channels[c.ID] = c
	f.Created = append(f.Created, data)
	return c, nil
}

func (f *Fake) ChannelEditComplex(channelID string, data *discordgo.ChannelEdit) (*discordgo.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ForbidChannels {
		return nil, Forbidden()
	}
	c, ok := f.Channels[channelID]
	if !ok {
		return nil, NotFound()
	}
	if data.Name != "" {
		c.Name = data.Name
	}
	if data.ParentID != "" {
		c.ParentID = data.ParentID
	}
	f.ChannelEdits[channelID] = append(f.ChannelEdits[channelID], data)
	return c, nil
}

func (f *Fake) ChannelPermissionSet(channelID, targetID string, targetType discordgo.PermissionOverwriteType, allow, deny int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ForbidChannels {
		return Forbidden()
	}
	f.PermissionSets = append(f.PermissionSets, PermissionSet{
		ChannelID: channelID,
		TargetID:  targetID,
		Type:      targetType,
		Allow:     allow,
		Deny:      deny,
	})
	return nil
}

func (f *Fake) Guild(guildID string) (*discordgo.Guild, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.Guilds[guildID]
	if !ok {
		return nil, fmt.Errorf("unknown guild %s", guildID)
	}
	return g, nil
}

func (f *Fake) GuildRoles(guildID string) ([]*discordgo.Role, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*discordgo.Role(nil), f.Roles[guildID]...), nil
}

func (f *Fake) GuildMember(guildID, userID string) (*discordgo.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.Members[guildID][userID]
	if !ok {
		return nil, &discordgo.RESTError{
			Response: &http.Response{StatusCode: http.StatusNotFound},
			Message:  &discordgo.APIErrorMessage{Code: discordgo.ErrCodeUnknownMember, Message: "Unknown Member"},
		}
	}
	return m, nil
}

func (f *Fake) GuildMemberRoleAdd(guildID, userID, roleID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ForbidRoles {
		return Forbidden()
	}
	f.RolesAdded = append(f.RolesAdded, RoleChange{GuildID: guildID, UserID: userID, RoleID: roleID})
	return nil
}

func (f *Fake) GuildMemberRoleRemove(guildID, userID, roleID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ForbidRoles {
		return Forbidden()
	}
	f.RolesRemoved = append(f.RolesRemoved, RoleChange{GuildID: guildID, UserID: userID, RoleID: roleID})
	return nil
}
