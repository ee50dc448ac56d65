package tickets

import "errors"

var (
	// ErrCategoryMissing is returned when the guild has no "Tickets" category.
	ErrCategoryMissing = errors.New("tickets category missing")

	// ErrNotATicketChannel is returned when a close is requested outside the "Tickets" category.
	ErrNotATicketChannel = errors.New("not a ticket channel")

	// ErrChannelCreationFailed is returned when the ticket channel could not be created.
	ErrChannelCreationFailed = errors.New("ticket channel creation failed")

	// ErrPermissionAssignmentFailed is returned when the ticket channel permissions could not be set.
	ErrPermissionAssignmentFailed = errors.New("ticket permission assignment failed")

	// ErrTicketMessageFailed is returned when the opening message could not be posted in the ticket.
	ErrTicketMessageFailed = errors.New("ticket message failed")

	// ErrChannelDeletionFailed is returned when the ticket channel could not be deleted.
	ErrChannelDeletionFailed = errors.New("ticket channel deletion failed")

	// ErrUnknownInteraction is returned for interactions that are not for tickets.
	ErrUnknownInteraction = errors.New("unknown interaction")

	// ErrAcknowledgeFailed is returned when an interaction could not be acknowledged. Nothing is scheduled then.
	ErrAcknowledgeFailed = errors.New("failed to acknowledge interaction")

	// ErrUnknownCategory is returned when the select menu sends a value that is not a category.
	ErrUnknownCategory = errors.New("unknown ticket category")
)
