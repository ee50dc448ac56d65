package main

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/ticketdesk/pkg/directory"
	"github.com/Jacobbrewer1/ticketdesk/pkg/dispatch"
	"github.com/Jacobbrewer1/ticketdesk/pkg/logging"
	"github.com/Jacobbrewer1/ticketdesk/pkg/platform"
	"github.com/Jacobbrewer1/ticketdesk/pkg/platform/platformtest"
	"github.com/Jacobbrewer1/ticketdesk/pkg/tickets"
	"github.com/stretchr/testify/require"
)

type testApp struct {
	l    *slog.Logger
	fake *platformtest.Fake
	dir  *directory.Directory
	loop *dispatch.Loop
}

func (a *testApp) Log() *slog.Logger { return a.l }
func (a *testApp) Client() platform.Client { return a.fake }
func (a *testApp) Directory() *directory.Directory { return a.dir }
func (a *testApp) Scheduler() dispatch.Scheduler { return a.loop }

func newTestLogger(t *testing.T) *slog.Logger {
	l, err := logging.CommonLogger(logging.NewConfig(`tests`))
	require.NoError(t, err, "Failed to create logger")
	return l
}

// newTestApp returns an app whose dispatch loop is running.
func newTestApp(t *testing.T, guilds ...platform.Guild) *testApp {
	l := newTestLogger(t)
	a := &testApp{
		l:    l,
		fake: platformtest.NewFake(guilds...),
		dir:  directory.New(),
		loop: dispatch.NewLoop(l, 8),
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		_ = a.loop.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-a.loop.Stopped()
	})

	require.Eventually(t, a.loop.Running, time.Second, time.Millisecond)
	return a
}

func textGuild(id string, names ...string) platform.Guild {
	g := platform.Guild{ID: id, Name: id}
	for _, n := range names {
		g.Channels = append(g.Channels, platform.Channel{
			ID:      id + "-" + n,
			GuildID: id,
			Name:    n,
			Type:    discordgo.ChannelTypeGuildText,
		})
	}
	return g
}

// platformGuildWithCategory is guild g1 with a general channel and the ticket category.
func platformGuildWithCategory() platform.Guild {
	g := textGuild("g1", "general")
	g.Channels = append(g.Channels, platform.Channel{
		ID:      "g1-tickets",
		GuildID: "g1",
		Name:    tickets.CategoryName,
		Type:    discordgo.ChannelTypeGuildCategory,
	})
	return g
}

func componentInteraction(customID string, values ...string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			ID:        "interaction-1",
			Type:      discordgo.InteractionMessageComponent,
			GuildID:   "g1",
			ChannelID: "g1-general",
			Member: &discordgo.Member{
				User: &discordgo.User{ID: "user-1", Username: "requester"},
			},
			Data: discordgo.MessageComponentInteractionData{
				CustomID: customID,
				Values:   values,
			},
		},
	}
}
