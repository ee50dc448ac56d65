package tickets

import (
	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/ticketdesk/pkg/entities"
	"github.com/Jacobbrewer1/ticketdesk/pkg/messages"
)

const (
	// CategorySelectID is the custom ID of the select menu on the ticket panel.
	CategorySelectID = "ticket_category_select"

	// CloseTicketButtonID is the custom ID of the close button inside a ticket.
	CloseTicketButtonID = "close_ticket_button"

	// CategoryName is the name of the category that ticket channels live in.
	CategoryName = "Tickets"

	// TicketColor is the color of the message posted in a new ticket. (Blue)
	TicketColor = 0x3498db
)

const (
	// RequesterAllow is what the requester is allowed to do in their ticket.
	RequesterAllow = int64(discordgo.PermissionViewChannel | discordgo.PermissionSendMessages)

	// EveryoneDeny is what @everyone is denied in a ticket.
	EveryoneDeny = int64(discordgo.PermissionViewChannel)
)

// CategorySelectMenu is the select menu that opens a ticket. Every published panel gets a new one.
func CategorySelectMenu() discordgo.MessageComponent {
	options := make([]discordgo.SelectMenuOption, 0, len(entities.Categories()))
	for _, c := range entities.Categories() {
		options = append(options, discordgo.SelectMenuOption{
			Label: c.Label(),
			Value: string(c),
		})
	}

	return discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.SelectMenu{
				CustomID:    CategorySelectID,
				Placeholder: messages.SelectTicketPlaceholder,
				Options:     options,
			},
		},
	}
}

// CloseTicketButton is the row holding the close button.
func CloseTicketButton() discordgo.MessageComponent {
	return discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    messages.CloseTicketLabel,
				Style:    discordgo.DangerButton,
				CustomID: CloseTicketButtonID,
			},
		},
	}
}
