package entities

import (
	"fmt"
	"time"
)

// TicketChannelPrefix is the prefix of every ticket channel name.
const TicketChannelPrefix = "ticket-"

// Number is the sequential number of a ticket.
type Number int

// String returns the number zero padded to four digits.
func (n Number) String() string {
	return fmt.Sprintf("%04d", int(n))
}

// Ticket is a ticket that has been opened. Tickets are not stored anywhere, the channel is the ticket.
type Ticket struct {
	// Number is the number of the ticket.
	Number Number `json:"number"`

	// GuildID is the ID of the guild that the ticket is in.
	GuildID string `json:"guild_id"`

	// ChannelID is the ID of the channel that backs the ticket.
	ChannelID string `json:"channel_id"`

	// UserID is the ID of the user that requested the ticket.
	UserID string `json:"user_id"`

	// Category is what the ticket is about.
	Category Category `json:"category"`

	// CreatedAt is the time that the ticket was created.
	CreatedAt time.Time `json:"created_at"`
}

// Name is the name of the channel for the ticket. For example, ticket 1 is "ticket-0001".
func (t *Ticket) Name() string {
	return TicketChannelName(t.Number)
}

// TicketChannelName returns the channel name for the given ticket number.
func TicketChannelName(n Number) string {
	return TicketChannelPrefix + n.String()
}
