package main

import (
	"errors"
	"fmt"

	"github.com/Jacobbrewer1/bazaar/pkg/ledger"
	"github.com/Jacobbrewer1/bazaar/pkg/messages"
	"github.com/Jacobbrewer1/discordgo"
	"github.com/shopspring/decimal"
)

const (
	colourGold  = 0xf1c40f
	colourGreen = 0x2ecc71
	colourRed   = 0xe74c3c
)

func credits(a IApp, amount decimal.Decimal) string {
	return fmt.Sprintf("**%s** %s", ledger.FormatAmount(amount), a.Config().CurrencyName)
}

func balanceCmd(a IApp, i *discordgo.InteractionCreate) error {
	target := interactionUser(i)
	if id := commandOptions(i).id(optMember); id != "" {
		target = resolvedUser(i, id)
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s's Balance", displayName(target)),
		Description: credits(a, a.Ledger().GetBalance(target.ID)),
		Color:       colourGold,
	}
	if target.Avatar != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: target.AvatarURL("")}
	}

	if err := respondEmbed(a, i, embed, false); err != nil {
		return fmt.Errorf("error responding to balance command: %w", err)
	}
	return nil
}

func addBalanceCmd(a IApp, i *discordgo.InteractionCreate) error {
	opts := commandOptions(i)
	target := resolvedUser(i, opts.id(optMember))
	amount := opts.amount(optAmount)

	balance, err := a.Ledger().Credit(a.Context(), target.ID, amount)
	if errors.Is(err, ledger.ErrInvalidAmount) {
		return respondEphemeral(a, i, messages.ErrAmountPositive)
	} else if err != nil {
		return fmt.Errorf("error crediting user: %w", err)
	}

	return respondEmbed(a, i, &discordgo.MessageEmbed{
		Title:       "Balance Updated",
		Description: fmt.Sprintf("Added %s to %s", credits(a, amount), target.Mention()),
		Color:       colourGreen,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "New Balance", Value: credits(a, balance)},
		},
	}, false)
}

func removeBalanceCmd(a IApp, i *discordgo.InteractionCreate) error {
	opts := commandOptions(i)
	target := resolvedUser(i, opts.id(optMember))
	amount := opts.amount(optAmount)

	balance, err := a.Ledger().Debit(a.Context(), target.ID, amount)
	switch {
	case errors.Is(err, ledger.ErrInvalidAmount):
		return respondEphemeral(a, i, messages.ErrAmountPositive)
	case errors.Is(err, ledger.ErrInsufficientBalance):
		return respondEphemeral(a, i, fmt.Sprintf("Error: %s only has %s.", target.Mention(), credits(a, a.Ledger().GetBalance(target.ID))))
	case err != nil:
		return fmt.Errorf("error debiting user: %w", err)
	}

	return respondEmbed(a, i, &discordgo.MessageEmbed{
		Title:       "Balance Updated",
		Description: fmt.Sprintf("Removed %s from %s", credits(a, amount), target.Mention()),
		Color:       colourRed,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "New Balance", Value: credits(a, balance)},
		},
	}, false)
}

func payCmd(a IApp, i *discordgo.InteractionCreate) error {
	opts := commandOptions(i)
	from := interactionUser(i)
	to := resolvedUser(i, opts.id(optMember))
	amount := opts.amount(optAmount)

	if from.ID == to.ID {
		return respondEphemeral(a, i, messages.ErrSelfPay)
	}

	transfer, err := a.Ledger().Transfer(a.Context(), from.ID, to.ID, amount)
	switch {
	case errors.Is(err, ledger.ErrInvalidAmount):
		return respondEphemeral(a, i, messages.ErrAmountPositive)
	case errors.Is(err, ledger.ErrInsufficientBalance):
		return respondEphemeral(a, i, fmt.Sprintf("You only have %s.", credits(a, a.Ledger().GetBalance(from.ID))))
	case err != nil:
		return fmt.Errorf("error transferring balance: %w", err)
	}

	return respondEmbed(a, i, &discordgo.MessageEmbed{
		Title:       "Payment Sent",
		Description: fmt.Sprintf("%s sent %s to %s", from.Mention(), credits(a, amount), to.Mention()),
		Color:       colourGreen,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Your Balance", Value: credits(a, transfer.FromBalance), Inline: true},
			{Name: "Their Balance", Value: credits(a, transfer.ToBalance), Inline: true},
		},
	}, false)
}

func displayName(u *discordgo.User) string {
	if u.Username != "" {
		return u.Username
	}
	return u.Mention()
}
