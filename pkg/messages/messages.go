package messages

// Ephemeral replies to users interacting with tickets.
const (
	// ErrUserErrorProcessing is the generic reply when an interaction could not be processed.
	ErrUserErrorProcessing = "There was an error processing your request. Please try again later."

	// TicketCreated is the reply to the requester once the ticket channel exists. Takes the channel ID.
	TicketCreated = "Your ticket has been created: <#%s>"

	// ErrTicketCategoryMissing is the reply when the guild has no Tickets category.
	ErrTicketCategoryMissing = "Ticket category not found. Please create a 'Tickets' category."

	// ErrTicketCreation is the reply when creating the ticket failed.
	ErrTicketCreation = "There was an error creating your ticket. Please try again later."

	// ErrNotATicketChannel is the reply when the close button is pressed outside a ticket.
	ErrNotATicketChannel = "This is not a ticket channel."

	// ErrTicketClose is the reply when the ticket channel could not be deleted.
	ErrTicketClose = "Error closing the ticket. Try again later."
)

// Ticket channel content.
const (
	// TicketOpenedTitle is the title of the message posted in a new ticket channel.
	TicketOpenedTitle = "Ticket Opened"

	// TicketOpenedDescription is the body of that message. Takes the user ID and the category.
	TicketOpenedDescription = "Ticket opened by <@%s> for %s. Please describe your issue."

	// CloseTicketLabel is the label of the close button.
	CloseTicketLabel = "Close Ticket"

	// SelectTicketPlaceholder is the placeholder of the category select menu.
	SelectTicketPlaceholder = "Select ticket type..."
)

// Flash messages shown on the admin panel.
const (
	// PanelSent is shown once the panel has been scheduled. Takes the channel name.
	PanelSent = "The ticket panel has been sent to #%s."

	// ErrPanelChannelNotFound is shown when no guild has a channel with the given name.
	ErrPanelChannelNotFound = "Channel not found."

	// ErrPanelInvalidInput is shown when a field, such as the color, is malformed.
	ErrPanelInvalidInput = "Please make sure all inputs are valid."

	// ErrPanelGeneric is shown for any other failure.
	ErrPanelGeneric = "An error occurred while sending the ticket panel. Please try again."

	// ErrPanelThrottled is shown when panels are submitted faster than allowed.
	ErrPanelThrottled = "Too many panels have been sent recently. Please wait a moment and try again."
)
