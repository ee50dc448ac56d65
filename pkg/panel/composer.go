package panel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/ticketdesk/pkg/dispatch"
	"github.com/Jacobbrewer1/ticketdesk/pkg/entities"
	"github.com/Jacobbrewer1/ticketdesk/pkg/logging"
	"github.com/Jacobbrewer1/ticketdesk/pkg/platform"
	"github.com/Jacobbrewer1/ticketdesk/pkg/tickets"
)

// MaxColor is the largest color an embed accepts.
const MaxColor = 0xFFFFFF

var (
	// ErrTargetChannelNotFound is returned when no guild has a text channel with the requested name.
	ErrTargetChannelNotFound = errors.New("target channel not found")

	// ErrInvalidColor is returned when the color is not a hex color.
	ErrInvalidColor = errors.New("invalid color")

	// ErrPanelSendFailed is recorded when the panel could not be sent. It is only ever logged.
	ErrPanelSendFailed = errors.New("panel send failed")
)

// Form is what the operator submitted.
type Form struct {
	Channel       string
	Title         string
	Description   string
	Color         string
	Footer        string
	FooterIconURL string
	Author        string
	AuthorIconURL string
	Image         string
}

// Composed is a panel that is ready to be sent.
type Composed struct {
	Target platform.Channel
	Panel  *entities.Panel
}

// Composer builds ticket panels and hands them to the dispatch loop.
type Composer struct {
	l      *slog.Logger
	client platform.Client
	loop   dispatch.Scheduler
	now    func() time.Time
}

// NewComposer creates a new panel composer.
func NewComposer(l *slog.Logger, client platform.Client, loop dispatch.Scheduler) *Composer {
	return &Composer{
		l:      l.With(slog.String("component", "panel_composer")),
		client: client,
		loop:   loop,
		now:    time.Now,
	}
}

// ParseColor converts a hex color such as "#3498db" or "3498db" to its numeric value.
func ParseColor(s string) (int, error) {
	hex := strings.TrimLeft(strings.TrimSpace(s), "#")
	if len(hex) > 2 && (hex[:2] == "0x" || hex[:2] == "0X") {
		hex = hex[2:]
	}
	if hex == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidColor)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	if v > MaxColor {
		return 0, fmt.Errorf("%w: %q is out of range", ErrInvalidColor, s)
	}
	return int(v), nil
}

// Compose validates the form and builds the panel. Nothing is sent.
//
// The channel is matched by name across every guild, the first guild that has one wins.
func (c *Composer) Compose(f Form) (*Composed, error) {
	target, err := c.findChannel(f.Channel)
	if err != nil {
		return nil, err
	}

	color, err := ParseColor(f.Color)
	if err != nil {
		return nil, err
	}

	p := &entities.Panel{
		Title:         f.Title,
		Description:   f.Description,
		Color:         color,
		FooterText:    f.Footer,
		FooterIconURL: f.FooterIconURL,
		AuthorName:    f.Author,
		AuthorIconURL: f.AuthorIconURL,
		ImageURL:      f.Image,
		Timestamp:     c.now().UTC(),
	}

	if u := c.client.BotUser(); u != nil && u.Avatar != "" {
		p.ThumbnailURL = u.AvatarURL("")
	}

	return &Composed{
		Target: *target,
		Panel:  p,
	}, nil
}

// Publish composes the panel and schedules sending it. It returns once the send is scheduled; a
// failed send is only logged by the loop.
func (c *Composer) Publish(f Form) (*dispatch.Future, error) {
	composed, err := c.Compose(f)
	if err != nil {
		return nil, err
	}

	msg := &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{
			composed.Panel.Embed(),
		},
		Components: []discordgo.MessageComponent{
			tickets.CategorySelectMenu(),
		},
	}

	target := composed.Target
	future, err := c.loop.Submit("panel_send", func(ctx context.Context) error {
		if err := c.client.SendMessage(target.ID, msg); err != nil {
			return fmt.Errorf("%w: %w", ErrPanelSendFailed, err)
		}

		c.l.Info("Ticket panel sent",
			slog.String(logging.KeyGuild, target.GuildID),
			slog.String(logging.KeyChannel, target.Name),
		)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error scheduling panel: %w", err)
	}

	c.l.Info("Ticket panel scheduled",
		slog.String(logging.KeyChannel, target.Name),
		slog.String(logging.KeyTask, future.ID()),
	)
	return future, nil
}

func (c *Composer) findChannel(name string) (*platform.Channel, error) {
	for _, g := range c.client.Guilds() {
		for _, ch := range g.TextChannels() {
			if ch.Name == name {
				if ch.GuildID == "" {
					ch.GuildID = g.ID
				}
				return &ch, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrTargetChannelNotFound, name)
}
