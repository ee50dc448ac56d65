package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/ticketdesk/cmd/bot/monitoring"
	"github.com/Jacobbrewer1/ticketdesk/pkg/dispatch"
	"github.com/Jacobbrewer1/ticketdesk/pkg/logging"
)

// taskDirectoryRefresh is the dispatch task name for directory refreshes.
const taskDirectoryRefresh = "directory_refresh"

func readyHandler(a IApp) func(s *discordgo.Session, r *discordgo.Ready) {
	return func(_ *discordgo.Session, r *discordgo.Ready) {
		if r.User != nil {
			a.Log().Info(fmt.Sprintf("Logged in as %s#%s", r.User.Username, r.User.Discriminator))
		}

		if _, err := refreshDirectory(a); err != nil {
			a.Log().Error("Error scheduling directory refresh", slog.String(logging.KeyError, err.Error()))
		}
	}
}

// guildJoinedHandler runs for every guild after connecting as well as for guilds joined later,
// and is the first event that carries the guild's channels.
func guildJoinedHandler(a IApp) func(s *discordgo.Session, g *discordgo.GuildCreate) {
	return func(_ *discordgo.Session, g *discordgo.GuildCreate) {
		a.Log().Info(fmt.Sprintf("Joined guild %s", g.Name), slog.String(logging.KeyGuild, g.ID))

		if _, err := refreshDirectory(a); err != nil {
			a.Log().Error("Error scheduling directory refresh",
				slog.String(logging.KeyGuild, g.ID),
				slog.String(logging.KeyError, err.Error()),
			)
		}
	}
}

// guildLeaveHandler does not touch the directory, so the guild's channels stay listed until restart.
func guildLeaveHandler(a IApp) func(s *discordgo.Session, g *discordgo.GuildDelete) {
	return func(_ *discordgo.Session, g *discordgo.GuildDelete) {
		a.Log().Info(fmt.Sprintf("Left guild %s", g.Name), slog.String(logging.KeyGuild, g.ID))

		monitoring.TotalDiscordGuilds.Set(float64(len(a.Client().Guilds())))
	}
}

// refreshDirectory schedules reloading every guild's text channels into the directory.
func refreshDirectory(a IApp) (*dispatch.Future, error) {
	return a.Scheduler().Submit(taskDirectoryRefresh, func(ctx context.Context) error {
		guilds := a.Client().Guilds()
		a.Directory().Refresh(guilds)

		monitoring.TotalDiscordGuilds.Set(float64(len(guilds)))
		a.Log().Debug("Channel directory refreshed", slog.Int("guilds", len(guilds)))
		return nil
	})
}
