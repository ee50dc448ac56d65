package tickets

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/ticketdesk/pkg/entities"
	"github.com/Jacobbrewer1/ticketdesk/pkg/logging"
	"github.com/Jacobbrewer1/ticketdesk/pkg/messages"
	"github.com/Jacobbrewer1/ticketdesk/pkg/platform"
)

// OpenRequest is a request to open a ticket.
type OpenRequest struct {
	GuildID  string
	UserID   string
	Category entities.Category
}

// CloseRequest is a request to close the ticket backed by a channel.
type CloseRequest struct {
	GuildID   string
	ChannelID string
	UserID    string
}

// Controller opens and closes tickets. It must only be called from the dispatch loop.
type Controller struct {
	l      *slog.Logger
	client platform.Client
	seq    *Sequencer
	now    func() time.Time
}

// NewController creates a new ticket controller.
func NewController(l *slog.Logger, client platform.Client, seq *Sequencer) *Controller {
	return &Controller{
		l:      l.With(slog.String("component", "ticket_controller")),
		client: client,
		seq:    seq,
		now:    time.Now,
	}
}

// CreateTicket creates the channel for a new ticket, scopes it to the requester and posts the
// opening message. The ticket number is only taken once the Tickets category is known to exist,
// and it is not given back if a later step fails.
func (c *Controller) CreateTicket(ctx context.Context, req OpenRequest) (*entities.Ticket, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l := c.l.With(
		slog.String(logging.KeyGuild, req.GuildID),
		slog.String(logging.KeyUser, req.UserID),
	)

	category, err := c.ticketsCategory(req.GuildID)
	if err != nil {
		TotalTicketFailures.WithLabelValues("create", "category").Inc()
		return nil, err
	}

	ticket := &entities.Ticket{
		Number:    c.seq.Next(),
		GuildID:   req.GuildID,
		UserID:    req.UserID,
		Category:  req.Category,
		CreatedAt: c.now().UTC(),
	}
	l = l.With(slog.String(logging.KeyTicket, ticket.Name()))

	channel, err := c.client.CreateTextChannel(req.GuildID, category.ID, ticket.Name())
	if err != nil {
		TotalTicketFailures.WithLabelValues("create", "channel").Inc()
		return nil, fmt.Errorf("%w: %w", ErrChannelCreationFailed, err)
	}
	ticket.ChannelID = channel.ID

	// The requester can read and write, @everyone cannot see the ticket.
	if err := c.client.SetPermission(channel.ID, req.UserID, discordgo.PermissionOverwriteTypeMember, RequesterAllow, 0); err != nil {
		TotalTicketFailures.WithLabelValues("create", "permission").Inc()
		return nil, fmt.Errorf("%w: %w", ErrPermissionAssignmentFailed, err)
	}
	if err := c.client.SetPermission(channel.ID, req.GuildID, discordgo.PermissionOverwriteTypeRole, 0, EveryoneDeny); err != nil {
		TotalTicketFailures.WithLabelValues("create", "permission").Inc()
		return nil, fmt.Errorf("%w: %w", ErrPermissionAssignmentFailed, err)
	}

	if err := c.client.SendMessage(channel.ID, c.openedMessage(ticket)); err != nil {
		TotalTicketFailures.WithLabelValues("create", "message").Inc()
		return nil, fmt.Errorf("%w: %w", ErrTicketMessageFailed, err)
	}

	TotalTicketsOpened.WithLabelValues(ticket.Category.String()).Inc()
	l.Info("Ticket opened", slog.String(logging.KeyChannel, channel.ID))
	return ticket, nil
}

// CloseTicket deletes the channel of a ticket. Channels outside the Tickets category are left alone.
func (c *Controller) CloseTicket(ctx context.Context, req CloseRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	l := c.l.With(
		slog.String(logging.KeyGuild, req.GuildID),
		slog.String(logging.KeyChannel, req.ChannelID),
		slog.String(logging.KeyUser, req.UserID),
	)

	channel, err := c.client.Channel(req.ChannelID)
	if err != nil {
		TotalTicketFailures.WithLabelValues("close", "lookup").Inc()
		return fmt.Errorf("%w: %w", ErrChannelDeletionFailed, err)
	}

	if channel.ParentID == "" {
		TotalTicketFailures.WithLabelValues("close", "not_ticket").Inc()
		return ErrNotATicketChannel
	}

	parent, err := c.client.Channel(channel.ParentID)
	if err != nil {
		TotalTicketFailures.WithLabelValues("close", "lookup").Inc()
		return fmt.Errorf("%w: %w", ErrChannelDeletionFailed, err)
	}

	if !parent.IsCategory(CategoryName) {
		TotalTicketFailures.WithLabelValues("close", "not_ticket").Inc()
		return ErrNotATicketChannel
	}

	if err := c.client.DeleteChannel(channel.ID); err != nil {
		TotalTicketFailures.WithLabelValues("close", "delete").Inc()
		return fmt.Errorf("%w: %w", ErrChannelDeletionFailed, err)
	}

	TotalTicketsClosed.Inc()
	l.Info("Ticket closed", slog.String(logging.KeyTicket, channel.Name))
	return nil
}

func (c *Controller) ticketsCategory(guildID string) (*platform.Channel, error) {
	channels, err := c.client.GuildChannels(guildID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrChannelCreationFailed, err)
	}

	for _, ch := range channels {
		if ch.IsCategory(CategoryName) {
			ch := ch
			return &ch, nil
		}
	}
	return nil, ErrCategoryMissing
}

func (c *Controller) openedMessage(t *entities.Ticket) *discordgo.MessageSend {
	return &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{
			{
				Title:       messages.TicketOpenedTitle,
				Description: fmt.Sprintf(messages.TicketOpenedDescription, t.UserID, t.Category),
				Color:       TicketColor,
				Timestamp:   t.CreatedAt.Format(time.RFC3339),
			},
		},
		Components: []discordgo.MessageComponent{
			CloseTicketButton(),
		},
	}
}
