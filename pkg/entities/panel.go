package entities

import (
	"time"

	"github.com/Jacobbrewer1/discordgo"
)

// Panel is the announcement that lets users open tickets. It only lives for one dispatch.
type Panel struct {
	Title       string
	Description string

	// Color is the accent color of the embed, 0x000000 to 0xFFFFFF.
	Color int

	FooterText    string
	FooterIconURL string

	AuthorName    string
	AuthorIconURL string

	ImageURL string

	// ThumbnailURL is the avatar of the bot, empty when the bot has none.
	ThumbnailURL string

	Timestamp time.Time
}

// Embed converts the panel into a discord embed. Empty optional parts are left out.
func (p *Panel) Embed() *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{
		Title:       p.Title,
		Description: p.Description,
		Color:       p.Color,
		Timestamp:   p.Timestamp.UTC().Format(time.RFC3339),
	}

	if p.FooterText != "" || p.FooterIconURL != "" {
		e.Footer = &discordgo.MessageEmbedFooter{
			Text:    p.FooterText,
			IconURL: p.FooterIconURL,
		}
	}

	if p.AuthorName != "" {
		e.Author = &discordgo.MessageEmbedAuthor{
			Name:    p.AuthorName,
			IconURL: p.AuthorIconURL,
		}
	}

	if p.ImageURL != "" {
		e.Image = &discordgo.MessageEmbedImage{URL: p.ImageURL}
	}

	if p.ThumbnailURL != "" {
		e.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: p.ThumbnailURL}
	}

	return e
}
