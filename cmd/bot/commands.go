package main

import (
	"strconv"

	"github.com/Jacobbrewer1/bazaar/pkg/guildconfig"
	"github.com/Jacobbrewer1/bazaar/pkg/shop"
	"github.com/Jacobbrewer1/bazaar/pkg/ticketing"
	"github.com/Jacobbrewer1/discordgo"
)

const (
	balanceCmdName       = "balance"
	addBalanceCmdName    = "addbalance"
	removeBalanceCmdName = "removebalance"
	payCmdName           = "pay"
	setWelcomeCmdName    = "setwelcome"
	testWelcomeCmdName   = "testwelcome"
	setFeedbackCmdName   = "setfeedback"
	setTicketCmdName     = "setticket"
	addItemCmdName       = "additem"
	rolesPanelCmdName    = "rolespanel"
)

const (
	optMember           = "member"
	optAmount           = "amount"
	optChannel          = "channel"
	optMessage          = "message"
	optFeedbackChannel  = "feedback_channel"
	optTitle            = "title"
	optDescription      = "description"
	optPrice            = "price"
	optDetailedInfo     = "detailed_info"
	optMainImage        = "main_image"
	optCategory         = "category"
	optScreenshotPrefix = "screenshot"
)

// maxScreenshots is the number of optional screenshot attachments on additem.
const maxScreenshots = 3

var (
	adminPermission int64 = discordgo.PermissionAdministrator

	minAmount = 0.01
)

// slashCommands returns the commands registered in every guild.
func slashCommands() []*discordgo.ApplicationCommand {
	categories := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(shop.Categories))
	for _, c := range shop.Categories {
		categories = append(categories, &discordgo.ApplicationCommandOptionChoice{Name: c, Value: c})
	}

	additem := []*discordgo.ApplicationCommandOption{
		{
			Name:        optTitle,
			Type:        discordgo.ApplicationCommandOptionString,
			Description: "Title of the asset",
			Required:    true,
		},
		{
			Name:        optPrice,
			Type:        discordgo.ApplicationCommandOptionString,
			Description: "Price of the asset (e.g. $19.99)",
			Required:    true,
		},
		{
			Name:        optDescription,
			Type:        discordgo.ApplicationCommandOptionString,
			Description: "Short description of the asset",
			Required:    true,
		},
		{
			Name:        optDetailedInfo,
			Type:        discordgo.ApplicationCommandOptionString,
			Description: "Detailed information about features and usage",
			Required:    true,
		},
		{
			Name:        optMainImage,
			Type:        discordgo.ApplicationCommandOptionAttachment,
			Description: "Main image of the asset",
			Required:    true,
		},
		{
			Name:        optCategory,
			Type:        discordgo.ApplicationCommandOptionString,
			Description: "Category of the asset",
			Choices:     categories,
		},
	}
	for n := 1; n <= maxScreenshots; n++ {
		additem = append(additem, &discordgo.ApplicationCommandOption{
			Name:        screenshotOption(n),
			Type:        discordgo.ApplicationCommandOptionAttachment,
			Description: "Additional screenshot",
		})
	}

	return []*discordgo.ApplicationCommand{
		{
			Name:        balanceCmdName,
			Description: "Check your balance or another user's balance",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        optMember,
					Type:        discordgo.ApplicationCommandOptionUser,
					Description: "The user whose balance to check (defaults to yourself)",
				},
			},
		},
		{
			Name:                     addBalanceCmdName,
			Description:              "Add balance to a user (Admin only)",
			DefaultMemberPermissions: &adminPermission,
			Options:                  amountOptions("The user to add balance to", "Amount to add (must be positive)"),
		},
		{
			Name:                     removeBalanceCmdName,
			Description:              "Remove balance from a user (Admin only)",
			DefaultMemberPermissions: &adminPermission,
			Options:                  amountOptions("The user to remove balance from", "Amount to remove (must be positive)"),
		},
		{
			Name:        payCmdName,
			Description: "Send some of your balance to another user",
			Options:     amountOptions("The user to pay", "Amount to send (must be positive)"),
		},
		{
			Name:                     setWelcomeCmdName,
			Description:              "Set the welcome channel and message",
			DefaultMemberPermissions: &adminPermission,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:         optChannel,
					Type:         discordgo.ApplicationCommandOptionChannel,
					Description:  "The channel to send welcome messages in (defaults to this channel)",
					ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
				},
				{
					Name:        optMessage,
					Type:        discordgo.ApplicationCommandOptionString,
					Description: "The welcome message. Use {user} for the new member",
				},
			},
		},
		{
			Name:                     testWelcomeCmdName,
			Description:              "Test the welcome message",
			DefaultMemberPermissions: &adminPermission,
		},
		{
			Name:                     setFeedbackCmdName,
			Description:              "Set up a feedback panel",
			DefaultMemberPermissions: &adminPermission,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:         optFeedbackChannel,
					Type:         discordgo.ApplicationCommandOptionChannel,
					Description:  "The channel submitted feedback is sent to",
					ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
					Required:     true,
				},
				{
					Name:        optTitle,
					Type:        discordgo.ApplicationCommandOptionString,
					Description: "Title of the feedback panel",
				},
				{
					Name:        optDescription,
					Type:        discordgo.ApplicationCommandOptionString,
					Description: "Description of the feedback panel",
				},
			},
		},
		{
			Name:                     setTicketCmdName,
			Description:              "Create a ticket panel in the current channel",
			DefaultMemberPermissions: &adminPermission,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        optTitle,
					Type:        discordgo.ApplicationCommandOptionString,
					Description: "Title of the ticket panel",
				},
				{
					Name:        optDescription,
					Type:        discordgo.ApplicationCommandOptionString,
					Description: "Description of the ticket panel",
				},
			},
		},
		{
			Name:                     addItemCmdName,
			Description:              "Add an item to the asset shop",
			DefaultMemberPermissions: &adminPermission,
			Options:                  additem,
		},
		{
			Name:                     rolesPanelCmdName,
			Description:              "Create a role reaction panel",
			DefaultMemberPermissions: &adminPermission,
		},
	}
}

func amountOptions(memberDesc, amountDesc string) []*discordgo.ApplicationCommandOption {
	return []*discordgo.ApplicationCommandOption{
		{
			Name:        optMember,
			Type:        discordgo.ApplicationCommandOptionUser,
			Description: memberDesc,
			Required:    true,
		},
		{
			Name:        optAmount,
			Type:        discordgo.ApplicationCommandOptionNumber,
			Description: amountDesc,
			Required:    true,
			MinValue:    &minAmount,
		},
	}
}

func screenshotOption(n int) string {
	return optScreenshotPrefix + strconv.Itoa(n)
}

func newRouter() *router {
	return &router{
		commands: map[string]commandProcessor{
			balanceCmdName:       balanceCmd,
			addBalanceCmdName:    addBalanceCmd,
			removeBalanceCmdName: removeBalanceCmd,
			payCmdName:           payCmd,
			setWelcomeCmdName:    setWelcomeCmd,
			testWelcomeCmdName:   testWelcomeCmd,
			setFeedbackCmdName:   setFeedbackCmd,
			setTicketCmdName:     setTicketCmd,
			addItemCmdName:       addItemCmd,
			rolesPanelCmdName:    rolesPanelCmd,
		},
		components: map[string]commandProcessor{
			ticketing.CreateTicketButtonID: createTicketButton,
			ticketing.CloseTicketButtonID:  closeTicketButton,
			shop.PurchaseButtonID:          purchaseItemButton,
			shop.MoreInfoButtonID:          moreInfoButton,
		},
		modals: map[string]commandProcessor{},
		prefixed: []prefixRoute{
			{
				name: "feedback_button",
				match: func(customID string) bool {
					_, ok := guildconfig.ParseFeedbackButtonID(customID)
					return ok
				},
				p: feedbackButton,
			},
			{
				name: "feedback_modal",
				match: func(customID string) bool {
					_, ok := guildconfig.ParseFeedbackModalID(customID)
					return ok
				},
				p: feedbackModalSubmit,
			},
		},
		adminOnly: map[string]bool{
			addBalanceCmdName:    true,
			removeBalanceCmdName: true,
			setWelcomeCmdName:    true,
			testWelcomeCmdName:   true,
			setFeedbackCmdName:   true,
			setTicketCmdName:     true,
			addItemCmdName:       true,
			rolesPanelCmdName:    true,
		},
	}
}
