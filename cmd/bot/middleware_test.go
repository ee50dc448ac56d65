package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/ticketdesk/pkg/dispatch"
	"github.com/Jacobbrewer1/ticketdesk/pkg/messages"
	"github.com/Jacobbrewer1/ticketdesk/pkg/request"
	"github.com/Jacobbrewer1/ticketdesk/pkg/tickets"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

// stubScheduler fails every interaction with err.
type stubScheduler struct {
	calls int
	err   error
}

func (s *stubScheduler) HandleInteraction(*discordgo.Interaction) (*dispatch.Future, error) {
	s.calls++
	return nil, s.err
}

func TestMiddlewareHttpRecoversPanic(t *testing.T) {
	a := newTestApp(t)

	r := mux.NewRouter()
	r.HandleFunc("/boom", middlewareHttp(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}, a)).Methods(http.MethodGet)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	require.Equal(t, http.StatusInternalServerError, w.Code)

	msg := new(request.Message)
	require.NoError(t, json.NewDecoder(w.Body).Decode(msg))
	require.Equal(t, request.ErrInternalServer.Error(), msg.Message)
}

func TestMiddlewareHttpPassesThrough(t *testing.T) {
	a := newTestApp(t)

	r := mux.NewRouter()
	r.HandleFunc("/ok", middlewareHttp(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}, a)).Methods(http.MethodGet)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	require.Equal(t, http.StatusAccepted, w.Code)
}

func TestInteractionHandlerIgnoresOtherInteractions(t *testing.T) {
	a := newTestApp(t)
	s := &stubScheduler{err: tickets.ErrUnknownInteraction}

	i := componentInteraction(tickets.CloseTicketButtonID)
	i.Type = discordgo.InteractionApplicationCommand

	interactionHandler(a, s)(nil, i)
	require.Zero(t, s.calls)
	require.Empty(t, a.fake.Responses())
}

func TestInteractionHandlerUnknownCustomID(t *testing.T) {
	a := newTestApp(t)
	s := &stubScheduler{err: tickets.ErrUnknownInteraction}

	interactionHandler(a, s)(nil, componentInteraction("somebody_elses_button"))
	require.Equal(t, 1, s.calls)
	require.Empty(t, a.fake.Responses())
}

func TestInteractionHandlerRejected(t *testing.T) {
	a := newTestApp(t)
	s := &stubScheduler{err: fmt.Errorf("error scheduling ticket_close: %w", dispatch.ErrQueueFull)}

	interactionHandler(a, s)(nil, componentInteraction(tickets.CloseTicketButtonID))

	followUps := a.fake.FollowUps()
	require.Len(t, followUps, 1)
	require.Equal(t, messages.ErrUserErrorProcessing, followUps[0].Content)
}

func TestInteractionHandlerNotAcknowledged(t *testing.T) {
	a := newTestApp(t)
	s := &stubScheduler{err: fmt.Errorf("%w: unknown interaction", tickets.ErrAcknowledgeFailed)}

	interactionHandler(a, s)(nil, componentInteraction(tickets.CloseTicketButtonID))
	require.Empty(t, a.fake.Responses())
	require.Empty(t, a.fake.FollowUps())
}

func TestInteractionHandlerOpensTicket(t *testing.T) {
	a := newTestApp(t, platformGuildWithCategory())
	router := tickets.NewRouter(a.l, a.loop, tickets.NewController(a.l, a.fake, tickets.NewSequencer()), a.fake)

	interactionHandler(a, router)(nil, componentInteraction(tickets.CategorySelectID, "general"))

	// The acknowledgement is sent before the handler returns.
	responses := a.fake.Responses()
	require.Len(t, responses, 1)
	require.Equal(t, discordgo.InteractionResponseDeferredChannelMessageWithSource, responses[0].Response.Type)

	require.Eventually(t, func() bool {
		return len(a.fake.FollowUps()) == 1
	}, time.Second, time.Millisecond)

	created := a.fake.Created()
	require.Len(t, created, 1)
	require.Equal(t, "ticket-0001", created[0].Name)
}
