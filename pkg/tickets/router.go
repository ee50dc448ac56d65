package tickets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/ticketdesk/pkg/dispatch"
	"github.com/Jacobbrewer1/ticketdesk/pkg/entities"
	"github.com/Jacobbrewer1/ticketdesk/pkg/logging"
	"github.com/Jacobbrewer1/ticketdesk/pkg/messages"
	"github.com/Jacobbrewer1/ticketdesk/pkg/platform"
)

// Router sends ticket interactions to the controller on the dispatch loop and answers the user.
type Router struct {
	l      *slog.Logger
	loop   dispatch.Scheduler
	ctrl   *Controller
	client platform.Client
}

// NewRouter creates a new interaction router.
func NewRouter(l *slog.Logger, loop dispatch.Scheduler, ctrl *Controller, client platform.Client) *Router {
	return &Router{
		l:      l.With(slog.String("component", "ticket_router")),
		loop:   loop,
		ctrl:   ctrl,
		client: client,
	}
}

// HandleInteraction decodes the interaction, acknowledges it and schedules it on the loop. The
// answer is sent as a follow-up once the loop has run the event. ErrUnknownInteraction is returned
// for interactions that are not for tickets.
func (r *Router) HandleInteraction(i *discordgo.Interaction) (*dispatch.Future, error) {
	ev, err := DecodeEvent(i)
	if err != nil {
		return nil, err
	}

	// Discord drops interactions that are not answered within three seconds, however busy the loop is.
	if err := r.client.Respond(i, deferredEphemeral()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAcknowledgeFailed, err)
	}

	f, err := r.loop.Submit(ev.Name(), func(ctx context.Context) error {
		return r.Route(ctx, ev)
	})
	if err != nil {
		return nil, fmt.Errorf("error scheduling %s: %w", ev.Name(), err)
	}
	return f, nil
}

// Route runs the event. It must be called from the dispatch loop.
func (r *Router) Route(ctx context.Context, ev Event) error {
	switch e := ev.(type) {
	case *CategorySelected:
		return r.openTicket(ctx, e)
	case *CloseRequested:
		return r.closeTicket(ctx, e)
	default:
		return fmt.Errorf("%w: %T", ErrUnknownInteraction, ev)
	}
}

func (r *Router) openTicket(ctx context.Context, e *CategorySelected) error {
	l := r.l.With(
		slog.String(logging.KeyGuild, e.GuildID),
		slog.String(logging.KeyUser, e.UserID),
	)

	category, err := entities.ParseCategory(e.Value)
	if err != nil {
		return errors.Join(
			fmt.Errorf("%w: %w", ErrUnknownCategory, err),
			r.followUp(e.Interaction, messages.ErrTicketCreation),
		)
	}

	ticket, err := r.ctrl.CreateTicket(ctx, OpenRequest{
		GuildID:  e.GuildID,
		UserID:   e.UserID,
		Category: category,
	})
	switch {
	case errors.Is(err, ErrCategoryMissing):
		l.Warn("Ticket requested but the guild has no Tickets category")
		return r.followUp(e.Interaction, messages.ErrTicketCategoryMissing)
	case err != nil:
		return errors.Join(
			fmt.Errorf("failed to create ticket channel: %w", err),
			r.followUp(e.Interaction, messages.ErrTicketCreation),
		)
	}

	return r.followUp(e.Interaction, fmt.Sprintf(messages.TicketCreated, ticket.ChannelID))
}

func (r *Router) closeTicket(ctx context.Context, e *CloseRequested) error {
	l := r.l.With(
		slog.String(logging.KeyGuild, e.GuildID),
		slog.String(logging.KeyChannel, e.ChannelID),
		slog.String(logging.KeyUser, e.UserID),
	)
	l.Info("Close ticket clicked")

	err := r.ctrl.CloseTicket(ctx, CloseRequest{
		GuildID:   e.GuildID,
		ChannelID: e.ChannelID,
		UserID:    e.UserID,
	})
	switch {
	case errors.Is(err, ErrNotATicketChannel):
		return r.followUp(e.Interaction, messages.ErrNotATicketChannel)
	case err != nil:
		return errors.Join(
			fmt.Errorf("error in close ticket button: %w", err),
			r.followUp(e.Interaction, messages.ErrTicketClose),
		)
	}

	// The channel is gone, so there is nothing left to answer in.
	return nil
}

func (r *Router) followUp(i *discordgo.Interaction, content string) error {
	return r.client.FollowUp(i, content)
}

func deferredEphemeral() *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	}
}
