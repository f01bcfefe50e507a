package main

import (
	"errors"
	"fmt"

	"github.com/Jacobbrewer1/bazaar/pkg/entities"
	"github.com/Jacobbrewer1/bazaar/pkg/messages"
	"github.com/Jacobbrewer1/bazaar/pkg/ticketing"
	"github.com/Jacobbrewer1/discordgo"
)

func requester(i *discordgo.InteractionCreate) *ticketing.Requester {
	user := interactionUser(i)
	return &ticketing.Requester{
		GuildID:        i.GuildID,
		UserID:         user.ID,
		Username:       user.Username,
		AppPermissions: i.AppPermissions,
	}
}

func setTicketCmd(a IApp, i *discordgo.InteractionCreate) error {
	opts := commandOptions(i)

	guild, err := a.Session().Guild(i.GuildID)
	if err != nil {
		return fmt.Errorf("error getting guild: %w", err)
	}

	panel := ticketing.PanelMessage(guild, opts.string(optTitle), opts.string(optDescription), interactionUser(i).Username)
	if _, err := a.Session().ChannelMessageSendComplex(i.ChannelID, panel); err != nil {
		return fmt.Errorf("error sending ticket panel: %w", err)
	}

	return respondEphemeral(a, i, messages.TicketPanelPosted)
}

func createTicketButton(a IApp, i *discordgo.InteractionCreate) error {
	res, err := a.Tickets().CreateSupportTicket(a.Context(), requester(i))
	if errors.Is(err, ticketing.ErrCapabilityDenied) {
		return respondEphemeral(a, i, messages.ErrNoManage)
	} else if err != nil {
		return fmt.Errorf("error creating ticket: %w", err)
	}

	if res.Existing {
		return respondEphemeral(a, i, fmt.Sprintf("You already have an open ticket: %s", res.Channel.Mention()))
	}
	return respondEphemeral(a, i, fmt.Sprintf("Ticket created! %s", res.Channel.Mention()))
}

func closeTicketButton(a IApp, i *discordgo.InteractionCreate) error {
	// The button outlives its ticket once the channel is archived.
	channel, err := a.Session().Channel(i.ChannelID)
	if err != nil {
		return fmt.Errorf("error getting channel: %w", err)
	} else if !entities.IsTicketChannel(channel.Name) {
		return respondEphemeral(a, i, messages.ErrNotTicket)
	}

	if err := respondEmbed(a, i, ticketing.ClosingEmbed(), false); err != nil {
		return fmt.Errorf("error responding to close: %w", err)
	}

	_, err = a.Tickets().Close(a.Context(), i.GuildID, i.ChannelID, interactionUser(i).ID)
	switch {
	case errors.Is(err, ticketing.ErrNotTicket):
		return followupEphemeral(a, i, messages.ErrNotTicket)
	case errors.Is(err, ticketing.ErrCapabilityDenied):
		return followupEphemeral(a, i, messages.ErrNoArchive)
	case err != nil:
		return fmt.Errorf("error closing ticket: %w", err)
	}
	return nil
}
