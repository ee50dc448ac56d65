package platform

import (
	"github.com/Jacobbrewer1/discordgo"
)

// Client is what the ticket workflow needs from the chat platform.
type Client interface {
	// Guilds returns a snapshot of every guild the bot is in, in the order the platform reported them.
	Guilds() []Guild

	// GuildChannels returns the channels of a guild, categories included.
	GuildChannels(guildID string) ([]Channel, error)

	// Channel returns a single channel.
	Channel(channelID string) (*Channel, error)

	// CreateTextChannel creates a text channel inside the given category.
	CreateTextChannel(guildID, parentID, name string) (*Channel, error)

	// SetPermission sets the overwrite for a principal on a channel.
	SetPermission(channelID, principalID string, kind discordgo.PermissionOverwriteType, allow, deny int64) error

	// DeleteChannel deletes a channel.
	DeleteChannel(channelID string) error

	// SendMessage sends a message to a channel.
	SendMessage(channelID string, msg *discordgo.MessageSend) error

	// Respond responds to an interaction. An interaction can only be responded to once.
	Respond(i *discordgo.Interaction, resp *discordgo.InteractionResponse) error

	// FollowUp sends an ephemeral follow-up to an interaction that has already been responded to.
	FollowUp(i *discordgo.Interaction, content string) error

	// BotUser returns the user the bot is logged in as, nil before the connection is ready.
	BotUser() *discordgo.User
}

// Guild is a read only projection of a guild.
type Guild struct {
	ID       string
	Name     string
	Channels []Channel
}

// TextChannels returns the text channels of the guild in order.
func (g Guild) TextChannels() []Channel {
	text := make([]Channel, 0, len(g.Channels))
	for _, c := range g.Channels {
		if c.Type == discordgo.ChannelTypeGuildText {
			text = append(text, c)
		}
	}
	return text
}

// Channel is a read only projection of a channel.
type Channel struct {
	ID       string
	GuildID  string
	Name     string
	Type     discordgo.ChannelType
	ParentID string
}

// IsCategory reports whether the channel is a category with the given name.
func (c Channel) IsCategory(name string) bool {
	return c.Type == discordgo.ChannelTypeGuildCategory && c.Name == name
}

// ChannelFromDiscord projects a discord channel.
func ChannelFromDiscord(c *discordgo.Channel) Channel {
	return Channel{
		ID:       c.ID,
		GuildID:  c.GuildID,
		Name:     c.Name,
		Type:     c.Type,
		ParentID: c.ParentID,
	}
}

// GuildFromDiscord projects a discord guild. The caller must hold the state lock when g comes from the state.
func GuildFromDiscord(g *discordgo.Guild) Guild {
	guild := Guild{
		ID:       g.ID,
		Name:     g.Name,
		Channels: make([]Channel, 0, len(g.Channels)),
	}
	for _, c := range g.Channels {
		if c == nil {
			continue
		}
		guild.Channels = append(guild.Channels, ChannelFromDiscord(c))
	}
	return guild
}
