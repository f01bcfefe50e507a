// Package rolepanel runs the guided conversation that builds a reaction role panel.
package rolepanel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Jacobbrewer1/bazaar/pkg/logging"
	"github.com/Jacobbrewer1/bazaar/pkg/platform"
	"github.com/Jacobbrewer1/bazaar/pkg/reactionroles"
	"github.com/Jacobbrewer1/discordgo"
	"github.com/google/uuid"
)

// DefaultTimeout is how long each prompt waits for a reply.
const DefaultTimeout = 120 * time.Second

const panelColour = 0x3498db

// Awaiter waits for the next message a user sends in a channel.
type Awaiter interface {
	Await(ctx context.Context, channelID, userID string) (string, error)
}

// Binder persists the bindings of a panel message.
type Binder interface {
	BindPanel(ctx context.Context, messageID string, bindings map[string]string) error
}

// Conversation is the interaction that started a setup.
type Conversation struct {
	Interaction *discordgo.Interaction
	GuildID     string
	ChannelID   string
	UserID      string
}

// Panel is the result of a completed setup.
type Panel struct {
	ChannelID string
	MessageID string
	Bindings  map[string]string
}

// Setup builds role panels.
type Setup struct {
	l      *slog.Logger
	s      platform.Session
	waiter Awaiter
	binder Binder

	// Timeout applies to every prompt.
	Timeout time.Duration
}

// NewSetup creates a new setup.
func NewSetup(l *slog.Logger, s platform.Session, waiter Awaiter, binder Binder) *Setup {
	return &Setup{
		l:       l,
		s:       s,
		waiter:  waiter,
		binder:  binder,
		Timeout: DefaultTimeout,
	}
}

// Run walks the user through the setup. Nothing is persisted unless the panel is posted.
func (s *Setup) Run(ctx context.Context, conv *Conversation) (*Panel, error) {
	m := &machine{
		setup: s,
		conv:  conv,
		l: s.l.With(
			slog.String("session_id", uuid.NewString()),
			slog.String(logging.KeyGuildID, conv.GuildID),
			slog.String(logging.KeyUserID, conv.UserID),
		),
		symbols: make(map[string]bool),
	}

	m.l.Debug("role panel setup started")

	panel, err := m.run(ctx)
	if err != nil {
		m.l.Info("role panel setup aborted", slog.String(logging.KeyError, err.Error()))
		m.notifyAbort(err)
		return nil, err
	}

	m.l.Info("role panel created",
		slog.String("channel_id", panel.ChannelID),
		slog.String("message_id", panel.MessageID),
		slog.Int("roles", len(panel.Bindings)),
	)
	return panel, nil
}

type state int

const (
	stateAwaitTitle state = iota
	stateAwaitDescription
	stateCollectRoles
	stateAwaitChannel
	stateCommit
	stateDone
)

func (st state) String() string {
	switch st {
	case stateAwaitTitle:
		return "await_title"
	case stateAwaitDescription:
		return "await_description"
	case stateCollectRoles:
		return "collect_roles"
	case stateAwaitChannel:
		return "await_channel"
	case stateCommit:
		return "commit"
	case stateDone:
		return "done"
	default:
		return "unknown"
	}
}

// machine holds the answers of a single setup run.
type machine struct {
	setup *Setup
	conv  *Conversation
	l     *slog.Logger

	title       string
	description string
	roles       []*RoleEntry
	symbols     map[string]bool
	target      string
	panel       *Panel
}

func (m *machine) run(ctx context.Context) (*Panel, error) {
	steps := map[state]func(context.Context) (state, error){
		stateAwaitTitle:       m.awaitTitle,
		stateAwaitDescription: m.awaitDescription,
		stateCollectRoles:     m.collectRoles,
		stateAwaitChannel:     m.awaitChannel,
		stateCommit:           m.commit,
	}

	current := stateAwaitTitle
	for current != stateDone {
		step, ok := steps[current]
		if !ok {
			return nil, fmt.Errorf("no step for state %s", current)
		}

		next, err := step(ctx)
		if err != nil {
			return nil, fmt.Errorf("error in state %s: %w", current, err)
		}

		m.l.Debug("role panel setup transition", slog.String("from", current.String()), slog.String("to", next.String()))
		current = next
	}

	return m.panel, nil
}

// await applies the timeout policy to a single wait.
func (m *machine) await(ctx context.Context) (string, error) {
	waitCtx, cancel := context.WithTimeout(ctx, m.setup.Timeout)
	defer cancel()

	reply, err := m.setup.waiter.Await(waitCtx, m.conv.ChannelID, m.conv.UserID)
	switch {
	case err == nil:
		return strings.TrimSpace(reply), nil
	case ctx.Err() == nil && errors.Is(err, context.DeadlineExceeded):
		return "", ErrTimedOut
	default:
		return "", fmt.Errorf("%w: %w", ErrSetupAborted, err)
	}
}

func (m *machine) say(content string) {
	_, err := m.setup.s.FollowupMessageCreate(m.conv.Interaction, &discordgo.WebhookParams{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
	if err == nil {
		return
	}

	// The interaction token expires while the setup is still running.
	m.l.Warn("error sending setup followup, falling back to channel", slog.String(logging.KeyError, err.Error()))
	if _, err := m.setup.s.ChannelMessageSendComplex(m.conv.ChannelID, &discordgo.MessageSend{
		Content: content,
	}); err != nil {
		m.l.Error("error sending setup message", slog.String(logging.KeyError, err.Error()))
	}
}

func (m *machine) notifyAbort(err error) {
	switch {
	case errors.Is(err, ErrTimedOut):
		m.say(msgTimedOut)
	case errors.Is(err, ErrNoRoles):
		m.say(msgNoRoles)
	case errors.Is(err, ErrInvalidChannel):
		m.say(msgInvalidChannel)
	default:
		m.say(msgFailed)
	}
}

func (m *machine) awaitTitle(ctx context.Context) (state, error) {
	m.say(msgAskTitle)
	reply, err := m.await(ctx)
	if err != nil {
		return 0, err
	}
	m.title = reply
	return stateAwaitDescription, nil
}

func (m *machine) awaitDescription(ctx context.Context) (state, error) {
	m.say(msgAskDescription)
	reply, err := m.await(ctx)
	if err != nil {
		return 0, err
	}
	m.description = reply
	return stateCollectRoles, nil
}

func (m *machine) collectRoles(ctx context.Context) (state, error) {
	m.say(msgAskRoles)

	for {
		reply, err := m.await(ctx)
		if err != nil {
			return 0, err
		}

		if strings.EqualFold(reply, "done") {
			break
		}

		entry, err := parseRoleLine(reply)
		if errors.Is(err, errInvalidFormat) {
			m.say(msgInvalidFormat)
			continue
		} else if err != nil {
			m.say(msgInvalidRoleID)
			continue
		}

		role, err := m.findRole(entry.RoleID)
		if err != nil {
			return 0, fmt.Errorf("error getting guild roles: %w", err)
		} else if role == nil {
			m.say(fmt.Sprintf(msgRoleNotFound, entry.RoleID))
			continue
		}

		if m.symbols[entry.Symbol] {
			m.say(fmt.Sprintf(msgDuplicateSymbol, entry.Symbol))
			continue
		}

		if entry.Label == "" {
			entry.Label = role.Name
		}

		m.symbols[entry.Symbol] = true
		m.roles = append(m.roles, entry)
		m.say(fmt.Sprintf(msgRoleAdded, role.Name, entry.Symbol))
	}

	if len(m.roles) == 0 {
		return 0, ErrNoRoles
	}
	return stateAwaitChannel, nil
}

func (m *machine) findRole(roleID string) (*discordgo.Role, error) {
	roles, err := m.setup.s.GuildRoles(m.conv.GuildID)
	if err != nil {
		return nil, err
	}
	for _, r := range roles {
		if r.ID == roleID {
			return r, nil
		}
	}
	return nil, nil
}

func (m *machine) awaitChannel(ctx context.Context) (state, error) {
	m.say(msgAskChannel)
	reply, err := m.await(ctx)
	if err != nil {
		return 0, err
	}

	channelID, err := parseChannelRef(reply)
	if err != nil {
		return 0, err
	}

	ch, err := m.setup.s.Channel(channelID)
	if err != nil || ch == nil || ch.GuildID != m.conv.GuildID {
		return 0, ErrInvalidChannel
	}

	m.target = ch.ID
	return stateCommit, nil
}

func (m *machine) commit(ctx context.Context) (state, error) {
	msg, err := m.setup.s.ChannelMessageSendComplex(m.target, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{m.embed()},
	})
	if err != nil {
		return 0, fmt.Errorf("error sending panel: %w", err)
	}

	bindings := make(map[string]string, len(m.roles))
	for _, r := range m.roles {
		if err := m.setup.s.MessageReactionAdd(m.target, msg.ID, reactionroles.APIName(r.Symbol)); err != nil {
			// The binding is kept so members can still add the reaction themselves.
			m.l.Warn("error adding panel reaction",
				slog.String("symbol", r.Symbol),
				slog.String(logging.KeyError, err.Error()),
			)
		}
		bindings[r.Symbol] = r.RoleID
	}

	if err := m.setup.binder.BindPanel(ctx, msg.ID, bindings); err != nil {
		return 0, fmt.Errorf("error saving panel bindings: %w", err)
	}

	m.panel = &Panel{
		ChannelID: m.target,
		MessageID: msg.ID,
		Bindings:  bindings,
	}
	m.say(fmt.Sprintf(msgCreated, m.target))
	return stateDone, nil
}

func (m *machine) embed() *discordgo.MessageEmbed {
	fields := make([]*discordgo.MessageEmbedField, 0, len(m.roles))
	for _, r := range m.roles {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   fmt.Sprintf("%s %s", r.Symbol, r.Label),
			Value:  fmt.Sprintf("React with %s to get this role", r.Symbol),
			Inline: false,
		})
	}

	return &discordgo.MessageEmbed{
		Title:       m.title,
		Description: m.description,
		Color:       panelColour,
		Fields:      fields,
		Footer: &discordgo.MessageEmbedFooter{
			Text: "React to get or remove a role",
		},
	}
}
