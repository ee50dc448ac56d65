package directory

import (
	"sync"
	"testing"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/ticketdesk/pkg/platform"
	"github.com/stretchr/testify/require"
)

func text(id, name string) platform.Channel {
	return platform.Channel{ID: id, Name: name, Type: discordgo.ChannelTypeGuildText}
}

func TestDirectory_Refresh(t *testing.T) {
	d := New()
	require.Empty(t, d.ChannelNames())

	d.Refresh([]platform.Guild{
		{
			ID: "g1",
			Channels: []platform.Channel{
				text("c1", "general"),
				{ID: "c2", Name: "Tickets", Type: discordgo.ChannelTypeGuildCategory},
				{ID: "c3", Name: "lounge", Type: discordgo.ChannelTypeGuildVoice},
				text("c4", "announcements"),
			},
		},
		{
			ID:       "g2",
			Channels: []platform.Channel{text("c5", "welcome")},
		},
	})

	require.Equal(t, []string{"general", "announcements", "welcome"}, d.ChannelNames())
	require.Equal(t, 2, d.Guilds())

	names, ok := d.GuildChannelNames("g2")
	require.True(t, ok)
	require.Equal(t, []string{"welcome"}, names)

	_, ok = d.GuildChannelNames("missing")
	require.False(t, ok)
}

func TestDirectory_RefreshOverwritesGuild(t *testing.T) {
	d := New()
	d.Refresh([]platform.Guild{
		{ID: "g1", Channels: []platform.Channel{text("c1", "general")}},
		{ID: "g2", Channels: []platform.Channel{text("c2", "welcome")}},
	})

	// Only g1 is reported again, g2 keeps its entry and its position.
	d.Refresh([]platform.Guild{
		{ID: "g1", Channels: []platform.Channel{text("c1", "support"), text("c3", "rules")}},
	})

	require.Equal(t, []string{"support", "rules", "welcome"}, d.ChannelNames())
}

func TestDirectory_RenameVisibleOnlyAfterRefresh(t *testing.T) {
	guild := platform.Guild{ID: "g1", Channels: []platform.Channel{text("c1", "general")}}

	d := New()
	d.Refresh([]platform.Guild{guild})

	// The channel is renamed on the platform, nothing tells the directory.
	guild.Channels = []platform.Channel{text("c1", "help-desk")}
	require.Equal(t, []string{"general"}, d.ChannelNames())

	// The client reconnects.
	d.Refresh([]platform.Guild{guild})
	require.Equal(t, []string{"help-desk"}, d.ChannelNames())
}

func TestDirectory_ReadersDuringRefresh(t *testing.T) {
	d := New()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			d.Refresh([]platform.Guild{{ID: "g1", Channels: []platform.Channel{text("c1", "general")}}})
		}
	}()

	for i := 0; i < 100; i++ {
		names := d.ChannelNames()
		require.LessOrEqual(t, len(names), 1)
	}
	wg.Wait()

	require.Equal(t, []string{"general"}, d.ChannelNames())
}
