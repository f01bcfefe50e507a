package main

import (
	"fmt"
	"log/slog"

	"github.com/Jacobbrewer1/bazaar/cmd/bot/monitoring"
	"github.com/Jacobbrewer1/bazaar/pkg/logging"
	"github.com/Jacobbrewer1/discordgo"
)

// guildJoinedHandler registers the slash commands in each guild the bot is in. Discord sends a
// guild create for every guild on connect as well as on join.
func guildJoinedHandler(a IApp, register func(guildID string) error) func(s *discordgo.Session, g *discordgo.GuildCreate) {
	return func(_ *discordgo.Session, g *discordgo.GuildCreate) {
		a.Log().Info(fmt.Sprintf("Joined guild %s", g.Name), slog.String(logging.KeyGuildID, g.ID))

		// Increment the total number of guilds.
		monitoring.TotalDiscordGuilds.Inc()

		if err := register(g.ID); err != nil {
			a.Log().Error("Error registering slash commands",
				slog.String(logging.KeyGuildID, g.ID),
				slog.String(logging.KeyError, err.Error()),
			)
		}
	}
}

func guildLeaveHandler(a IApp) func(s *discordgo.Session, g *discordgo.GuildDelete) {
	return func(_ *discordgo.Session, g *discordgo.GuildDelete) {
		if g.Unavailable {
			// Outages are reported as deletes too.
			return
		}

		a.Log().Info("Left guild", slog.String(logging.KeyGuildID, g.ID))

		// Decrement the total number of guilds.
		monitoring.TotalDiscordGuilds.Dec()
	}
}
