package tickets

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/ticketdesk/pkg/dispatch"
	"github.com/Jacobbrewer1/ticketdesk/pkg/logging"
	"github.com/Jacobbrewer1/ticketdesk/pkg/platform"
	"github.com/Jacobbrewer1/ticketdesk/pkg/platform/platformtest"
	"github.com/stretchr/testify/require"
)

const (
	testGuildID    = "guild-1"
	testCategoryID = "category-1"
	testGeneralID  = "general-1"
	testUserID     = "user-1"
)

func newTestLogger(t *testing.T) *slog.Logger {
	l, err := logging.CommonLogger(logging.NewConfig(`tests`))
	require.NoError(t, err, "Failed to create logger")
	return l
}

// supportGuild has a Tickets category, a ticket inside it and a general channel outside it.
func supportGuild() platform.Guild {
	return platform.Guild{
		ID:   testGuildID,
		Name: "Support",
		Channels: []platform.Channel{
			{ID: testCategoryID, GuildID: testGuildID, Name: CategoryName, Type: discordgo.ChannelTypeGuildCategory},
			{ID: testGeneralID, GuildID: testGuildID, Name: "general", Type: discordgo.ChannelTypeGuildText},
			{ID: "ticket-old", GuildID: testGuildID, Name: "ticket-0099", Type: discordgo.ChannelTypeGuildText, ParentID: testCategoryID},
			{ID: "other-category", GuildID: testGuildID, Name: "Archive", Type: discordgo.ChannelTypeGuildCategory},
			{ID: "archived", GuildID: testGuildID, Name: "old-stuff", Type: discordgo.ChannelTypeGuildText, ParentID: "other-category"},
		},
	}
}

// guildWithoutCategory has no Tickets category.
func guildWithoutCategory() platform.Guild {
	return platform.Guild{
		ID: testGuildID,
		Channels: []platform.Channel{
			{ID: testGeneralID, GuildID: testGuildID, Name: "general", Type: discordgo.ChannelTypeGuildText},
		},
	}
}

func startLoop(t *testing.T) *dispatch.Loop {
	lp := dispatch.NewLoop(newTestLogger(t), 16)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		_ = lp.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-lp.Stopped()
	})

	require.Eventually(t, lp.Running, time.Second, time.Millisecond)
	return lp
}

func componentInteraction(customID string, values ...string) *discordgo.Interaction {
	return &discordgo.Interaction{
		ID:        "interaction-1",
		Type:      discordgo.InteractionMessageComponent,
		GuildID:   testGuildID,
		ChannelID: testGeneralID,
		Member: &discordgo.Member{
			User: &discordgo.User{ID: testUserID, Username: "requester"},
		},
		Data: discordgo.MessageComponentInteractionData{
			CustomID: customID,
			Values:   values,
		},
	}
}

// requireDeferred checks that the only response to the interaction was an ephemeral acknowledgement.
func requireDeferred(t *testing.T, fake *platformtest.Fake) {
	t.Helper()

	responses := fake.Responses()
	require.Len(t, responses, 1)
	require.Equal(t, discordgo.InteractionResponseDeferredChannelMessageWithSource, responses[0].Response.Type)
	require.Equal(t, discordgo.MessageFlagsEphemeral, responses[0].Response.Data.Flags)
}

// followUpContent returns the only follow-up sent.
func followUpContent(t *testing.T, fake *platformtest.Fake) string {
	t.Helper()

	followUps := fake.FollowUps()
	require.Len(t, followUps, 1)
	return followUps[0].Content
}
