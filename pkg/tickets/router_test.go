package tickets

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/ticketdesk/pkg/dispatch"
	"github.com/Jacobbrewer1/ticketdesk/pkg/messages"
	"github.com/Jacobbrewer1/ticketdesk/pkg/platform/platformtest"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, fake *platformtest.Fake) (*Router, *Sequencer) {
	seq := NewSequencer()
	ctrl := NewController(newTestLogger(t), fake, seq)
	return NewRouter(newTestLogger(t), startLoop(t), ctrl, fake), seq
}

func TestDecodeEvent(t *testing.T) {
	t.Run("CategorySelected", func(t *testing.T) {
		ev, err := DecodeEvent(componentInteraction(CategorySelectID, "billing"))
		require.NoError(t, err)

		e, ok := ev.(*CategorySelected)
		require.True(t, ok)
		require.Equal(t, "billing", e.Value)
		require.Equal(t, testUserID, e.UserID)
		require.Equal(t, testGuildID, e.GuildID)
		require.Equal(t, "ticket_open", e.Name())
		require.NotNil(t, e.Source())
	})

	t.Run("CloseRequested", func(t *testing.T) {
		ev, err := DecodeEvent(componentInteraction(CloseTicketButtonID))
		require.NoError(t, err)

		e, ok := ev.(*CloseRequested)
		require.True(t, ok)
		require.Equal(t, testGeneralID, e.ChannelID)
		require.Equal(t, "ticket_close", e.Name())
	})

	t.Run("DirectMessageUser", func(t *testing.T) {
		i := componentInteraction(CloseTicketButtonID)
		i.Member = nil
		i.User = &discordgo.User{ID: "dm-user"}

		ev, err := DecodeEvent(i)
		require.NoError(t, err)
		require.Equal(t, "dm-user", ev.(*CloseRequested).UserID)
	})

	t.Run("Unknown", func(t *testing.T) {
		_, err := DecodeEvent(componentInteraction("something_else"))
		require.ErrorIs(t, err, ErrUnknownInteraction)

		_, err = DecodeEvent(&discordgo.Interaction{Type: discordgo.InteractionApplicationCommand})
		require.ErrorIs(t, err, ErrUnknownInteraction)

		_, err = DecodeEvent(nil)
		require.ErrorIs(t, err, ErrUnknownInteraction)
	})
}

func TestRouter_OpenTicket(t *testing.T) {
	fake := platformtest.NewFake(supportGuild())
	r, _ := newTestRouter(t, fake)

	f, err := r.HandleInteraction(componentInteraction(CategorySelectID, "general"))
	require.NoError(t, err)
	require.NoError(t, f.Wait(context.Background()))

	created := fake.Created()
	require.Len(t, created, 1)

	requireDeferred(t, fake)
	require.Equal(t, "Your ticket has been created: <#"+created[0].ID+">", followUpContent(t, fake))
}

func TestRouter_ConsecutiveSelections(t *testing.T) {
	fake := platformtest.NewFake(supportGuild())
	r, seq := newTestRouter(t, fake)

	first, err := r.HandleInteraction(componentInteraction(CategorySelectID, "general"))
	require.NoError(t, err)
	second, err := r.HandleInteraction(componentInteraction(CategorySelectID, "technical"))
	require.NoError(t, err)

	require.NoError(t, first.Wait(context.Background()))
	require.NoError(t, second.Wait(context.Background()))

	created := fake.Created()
	require.Len(t, created, 2)
	require.Equal(t, "ticket-0001", created[0].Name)
	require.Equal(t, "ticket-0002", created[1].Name)
	require.Equal(t, "0003", seq.Peek().String())
}

func TestRouter_OpenTicketWithoutCategory(t *testing.T) {
	fake := platformtest.NewFake(guildWithoutCategory())
	r, seq := newTestRouter(t, fake)

	f, err := r.HandleInteraction(componentInteraction(CategorySelectID, "general"))
	require.NoError(t, err)
	require.NoError(t, f.Wait(context.Background()), "a missing category is answered, not failed")

	require.Empty(t, fake.Created())
	require.Equal(t, "0001", seq.Peek().String())

	requireDeferred(t, fake)
	require.Equal(t, messages.ErrTicketCategoryMissing, followUpContent(t, fake))
}

func TestRouter_OpenTicketFailure(t *testing.T) {
	fake := platformtest.NewFake(supportGuild())
	fake.ErrPermission = errors.New("missing access")
	r, _ := newTestRouter(t, fake)

	f, err := r.HandleInteraction(componentInteraction(CategorySelectID, "billing"))
	require.NoError(t, err)
	require.ErrorIs(t, f.Wait(context.Background()), ErrPermissionAssignmentFailed)

	requireDeferred(t, fake)
	require.Equal(t, messages.ErrTicketCreation, followUpContent(t, fake))
}

func TestRouter_OpenTicketUnknownCategory(t *testing.T) {
	fake := platformtest.NewFake(supportGuild())
	r, seq := newTestRouter(t, fake)

	f, err := r.HandleInteraction(componentInteraction(CategorySelectID, "sales"))
	require.NoError(t, err)
	require.ErrorIs(t, f.Wait(context.Background()), ErrUnknownCategory)

	require.Empty(t, fake.Created())
	require.Equal(t, "0001", seq.Peek().String())
	require.Equal(t, messages.ErrTicketCreation, followUpContent(t, fake))
}

func TestRouter_CloseTicket(t *testing.T) {
	fake := platformtest.NewFake(supportGuild())
	r, _ := newTestRouter(t, fake)

	i := componentInteraction(CloseTicketButtonID)
	i.ChannelID = "ticket-old"

	f, err := r.HandleInteraction(i)
	require.NoError(t, err)
	require.NoError(t, f.Wait(context.Background()))

	require.Equal(t, []string{"ticket-old"}, fake.Deleted())
	requireDeferred(t, fake)
	require.Empty(t, fake.FollowUps())
}

func TestRouter_CloseNonTicket(t *testing.T) {
	fake := platformtest.NewFake(supportGuild())
	r, _ := newTestRouter(t, fake)

	f, err := r.HandleInteraction(componentInteraction(CloseTicketButtonID))
	require.NoError(t, err)
	require.NoError(t, f.Wait(context.Background()))

	require.Empty(t, fake.Deleted())
	require.Equal(t, messages.ErrNotATicketChannel, followUpContent(t, fake))
}

func TestRouter_CloseTicketFailure(t *testing.T) {
	fake := platformtest.NewFake(supportGuild())
	fake.ErrDelete = errors.New("missing permissions")
	r, _ := newTestRouter(t, fake)

	i := componentInteraction(CloseTicketButtonID)
	i.ChannelID = "ticket-old"

	f, err := r.HandleInteraction(i)
	require.NoError(t, err)
	require.ErrorIs(t, f.Wait(context.Background()), ErrChannelDeletionFailed)
	require.Equal(t, messages.ErrTicketClose, followUpContent(t, fake))
}

func TestRouter_UnknownInteractionIsNotScheduled(t *testing.T) {
	fake := platformtest.NewFake(supportGuild())
	r, _ := newTestRouter(t, fake)

	f, err := r.HandleInteraction(componentInteraction("other_bot_button"))
	require.ErrorIs(t, err, ErrUnknownInteraction)
	require.Nil(t, f)
	require.Empty(t, fake.Responses())
}

func TestRouter_AcknowledgesBeforeRunning(t *testing.T) {
	fake := platformtest.NewFake(supportGuild())
	r, _ := newTestRouter(t, fake)

	f, err := r.HandleInteraction(componentInteraction(CategorySelectID, "general"))
	require.NoError(t, err)
	require.NoError(t, f.Wait(context.Background()))

	calls := fake.Calls()
	require.Equal(t, platformtest.CallRespond, calls[0])
	require.Equal(t, platformtest.CallFollowUp, calls[len(calls)-1])
	require.Contains(t, calls, platformtest.CallCreate)
}

func TestRouter_AcknowledgeFailure(t *testing.T) {
	fake := platformtest.NewFake(supportGuild())
	fake.ErrRespond = errors.New("unknown interaction")
	r, seq := newTestRouter(t, fake)

	f, err := r.HandleInteraction(componentInteraction(CategorySelectID, "general"))
	require.ErrorIs(t, err, ErrAcknowledgeFailed)
	require.Nil(t, f)

	require.Empty(t, fake.Created())
	require.Equal(t, "0001", seq.Peek().String())
}

func TestRouter_AcknowledgesWhileLoopIsBusy(t *testing.T) {
	fake := platformtest.NewFake(supportGuild())
	fake.SetLatency(50 * time.Millisecond)
	r, _ := newTestRouter(t, fake)

	const requesters = 5

	start := time.Now()
	futures := make([]*dispatch.Future, 0, requesters)
	for n := 0; n < requesters; n++ {
		i := componentInteraction(CategorySelectID, "general")
		i.ID = fmt.Sprintf("interaction-%d", n)

		f, err := r.HandleInteraction(i)
		require.NoError(t, err)
		futures = append(futures, f)
	}

	// Every requester is acknowledged before the first ticket has been created.
	require.Less(t, time.Since(start), time.Second)
	require.Len(t, fake.Responses(), requesters)
	for _, resp := range fake.Responses() {
		require.Equal(t, discordgo.InteractionResponseDeferredChannelMessageWithSource, resp.Response.Type)
	}

	for _, f := range futures {
		require.NoError(t, f.Wait(context.Background()))
	}
	require.Len(t, fake.Created(), requesters)
	require.Len(t, fake.FollowUps(), requesters)
}

func TestCategorySelectMenu(t *testing.T) {
	row, ok := CategorySelectMenu().(discordgo.ActionsRow)
	require.True(t, ok)

	menu, ok := row.Components[0].(discordgo.SelectMenu)
	require.True(t, ok)
	require.Equal(t, CategorySelectID, menu.CustomID)
	require.Len(t, menu.Options, 3)
	require.Equal(t, "General Support", menu.Options[0].Label)
	require.Equal(t, "general", menu.Options[0].Value)
	require.Equal(t, "technical", menu.Options[2].Value)
}
