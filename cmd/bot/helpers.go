package main

import (
	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/ticketdesk/pkg/messages"
)

// followUpError answers an interaction that was acknowledged but could not be processed.
func followUpError(a IApp, i *discordgo.InteractionCreate) error {
	return followUpEphemeral(a, i, messages.ErrUserErrorProcessing)
}

func followUpEphemeral(a IApp, i *discordgo.InteractionCreate, content string) error {
	return a.Client().FollowUp(i.Interaction, content)
}
