package platform

import (
	"fmt"

	"github.com/Jacobbrewer1/discordgo"
)

// Discord is the Client backed by a discordgo session.
type Discord struct {
	s *discordgo.Session
}

// NewDiscord creates a new client around the session.
func NewDiscord(s *discordgo.Session) *Discord {
	return &Discord{
		s: s,
	}
}

// Guilds reads the guilds from the session state. The state is guarded by its own lock, so this is safe from any goroutine.
func (d *Discord) Guilds() []Guild {
	if d.s.State == nil {
		return nil
	}

	d.s.State.RLock()
	defer d.s.State.RUnlock()

	guilds := make([]Guild, 0, len(d.s.State.Guilds))
	for _, g := range d.s.State.Guilds {
		guilds = append(guilds, GuildFromDiscord(g))
	}
	return guilds
}

// GuildChannels reads the channels from the session state, and only asks Discord when the guild is not cached.
func (d *Discord) GuildChannels(guildID string) ([]Channel, error) {
	if got, ok := d.stateGuildChannels(guildID); ok {
		return got, nil
	}

	channels, err := d.s.GuildChannels(guildID)
	if err != nil {
		return nil, fmt.Errorf("error getting channels for guild %s: %w", guildID, err)
	}

	got := make([]Channel, 0, len(channels))
	for _, c := range channels {
		got = append(got, ChannelFromDiscord(c))
	}
	return got, nil
}

// Channel reads the channel from the session state, and only asks Discord when it is not cached.
func (d *Discord) Channel(channelID string) (*Channel, error) {
	if d.s.State != nil {
		if c, err := d.s.State.Channel(channelID); err == nil {
			d.s.State.RLock()
			got := ChannelFromDiscord(c)
			d.s.State.RUnlock()
			return &got, nil
		}
	}

	c, err := d.s.Channel(channelID)
	if err != nil {
		return nil, fmt.Errorf("error getting channel %s: %w", channelID, err)
	}

	got := ChannelFromDiscord(c)
	return &got, nil
}

func (d *Discord) CreateTextChannel(guildID, parentID, name string) (*Channel, error) {
	c, err := d.s.GuildChannelCreateComplex(guildID, discordgo.GuildChannelCreateData{
		Name:     name,
		Type:     discordgo.ChannelTypeGuildText,
		ParentID: parentID,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating channel %s: %w", name, err)
	}

	got := ChannelFromDiscord(c)
	return &got, nil
}

func (d *Discord) SetPermission(channelID, principalID string, kind discordgo.PermissionOverwriteType, allow, deny int64) error {
	if err := d.s.ChannelPermissionSet(channelID, principalID, kind, allow, deny); err != nil {
		return fmt.Errorf("error setting permissions for %s on channel %s: %w", principalID, channelID, err)
	}
	return nil
}

func (d *Discord) DeleteChannel(channelID string) error {
	if _, err := d.s.ChannelDelete(channelID); err != nil {
		return fmt.Errorf("error deleting channel %s: %w", channelID, err)
	}
	return nil
}

func (d *Discord) SendMessage(channelID string, msg *discordgo.MessageSend) error {
	if _, err := d.s.ChannelMessageSendComplex(channelID, msg); err != nil {
		return fmt.Errorf("error sending message to channel %s: %w", channelID, err)
	}
	return nil
}

func (d *Discord) Respond(i *discordgo.Interaction, resp *discordgo.InteractionResponse) error {
	if err := d.s.InteractionRespond(i, resp); err != nil {
		return fmt.Errorf("error responding to interaction: %w", err)
	}
	return nil
}

func (d *Discord) FollowUp(i *discordgo.Interaction, content string) error {
	if _, err := d.s.FollowupMessageCreate(i, true, &discordgo.WebhookParams{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	}); err != nil {
		return fmt.Errorf("error sending interaction follow-up: %w", err)
	}
	return nil
}

func (d *Discord) BotUser() *discordgo.User {
	if d.s.State == nil {
		return nil
	}

	d.s.State.RLock()
	defer d.s.State.RUnlock()
	return d.s.State.User
}

func (d *Discord) stateGuildChannels(guildID string) ([]Channel, bool) {
	if d.s.State == nil {
		return nil, false
	}

	g, err := d.s.State.Guild(guildID)
	if err != nil {
		return nil, false
	}

	d.s.State.RLock()
	defer d.s.State.RUnlock()

	got := make([]Channel, 0, len(g.Channels))
	for _, c := range g.Channels {
		if c == nil {
			continue
		}
		got = append(got, ChannelFromDiscord(c))
	}
	return got, true
}

var _ Client = (*Discord)(nil)
