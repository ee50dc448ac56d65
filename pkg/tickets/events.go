package tickets

import (
	"fmt"

	"github.com/Jacobbrewer1/discordgo"
)

// Event is a ticket interaction. The set is closed: CategorySelected and CloseRequested.
type Event interface {
	// Name identifies the kind of event, it is used to name the dispatched task.
	Name() string

	// Source is the interaction that the event was decoded from.
	Source() *discordgo.Interaction

	isEvent()
}

// CategorySelected is sent when a user picks a category on a ticket panel.
type CategorySelected struct {
	Interaction *discordgo.Interaction
	GuildID     string
	ChannelID   string
	UserID      string

	// Value is the raw value of the selected option.
	Value string
}

func (e *CategorySelected) Name() string                   { return "ticket_open" }
func (e *CategorySelected) Source() *discordgo.Interaction { return e.Interaction }
func (e *CategorySelected) isEvent()                       {}

// CloseRequested is sent when the close button inside a ticket is pressed.
type CloseRequested struct {
	Interaction *discordgo.Interaction
	GuildID     string
	ChannelID   string
	UserID      string
}

func (e *CloseRequested) Name() string                   { return "ticket_close" }
func (e *CloseRequested) Source() *discordgo.Interaction { return e.Interaction }
func (e *CloseRequested) isEvent()                       {}

// DecodeEvent turns a component interaction into a ticket event.
func DecodeEvent(i *discordgo.Interaction) (Event, error) {
	if i == nil || i.Type != discordgo.InteractionMessageComponent {
		return nil, ErrUnknownInteraction
	}

	data, ok := i.Data.(discordgo.MessageComponentInteractionData)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected data %T", ErrUnknownInteraction, i.Data)
	}

	switch data.CustomID {
	case CategorySelectID:
		value := ""
		if len(data.Values) > 0 {
			value = data.Values[0]
		}
		return &CategorySelected{
			Interaction: i,
			GuildID:     i.GuildID,
			ChannelID:   i.ChannelID,
			UserID:      actorID(i),
			Value:       value,
		}, nil
	case CloseTicketButtonID:
		return &CloseRequested{
			Interaction: i,
			GuildID:     i.GuildID,
			ChannelID:   i.ChannelID,
			UserID:      actorID(i),
		}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownInteraction, data.CustomID)
	}
}

// actorID is the member in a guild, or the user in a direct message.
func actorID(i *discordgo.Interaction) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}
