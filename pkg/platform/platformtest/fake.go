// Package platformtest provides an in-memory platform.Client that records every call.
package platformtest

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/ticketdesk/pkg/platform"
)

// ErrUnknownChannel is returned for channels the fake does not know about.
var ErrUnknownChannel = errors.New("unknown channel")

// Permission is a recorded permission overwrite.
type Permission struct {
	ChannelID   string
	PrincipalID string
	Kind        discordgo.PermissionOverwriteType
	Allow       int64
	Deny        int64
}

// Sent is a recorded message.
type Sent struct {
	ChannelID string
	Message   *discordgo.MessageSend
}

// FollowUp is a recorded interaction follow-up.
type FollowUp struct {
	Interaction *discordgo.Interaction
	Content     string
}

// Call names recorded by Calls.
const (
	CallGuildChannels = "guild_channels"
	CallChannel       = "channel"
	CallCreate        = "create"
	CallPermission    = "permission"
	CallDelete        = "delete"
	CallSend          = "send"
	CallRespond       = "respond"
	CallFollowUp      = "follow_up"
)

// Response is a recorded interaction response.
type Response struct {
	Interaction *discordgo.Interaction
	Response    *discordgo.InteractionResponse
}

// Fake is a platform.Client for tests.
type Fake struct {
	mu sync.Mutex

	guilds []platform.Guild
	user    *discordgo.User
	nextID  int
	latency time.Duration

	// Errors to return from the matching call, nil for success.
	ErrGuildChannels error
	ErrCreate        error
	ErrPermission    error
	ErrDelete        error
	ErrSend          error
	ErrRespond       error
	ErrFollowUp      error

	created     []platform.Channel
	permissions []Permission
	deleted     []string
	sent        []Sent
	responses   []Response
	followUps   []FollowUp
	calls       []string
}

// NewFake creates a fake with the given guilds.
func NewFake(guilds ...platform.Guild) *Fake {
	return &Fake{
		guilds: guilds,
		user:   &discordgo.User{ID: "bot", Username: "ticketdesk"},
	}
}

// SetGuilds replaces the guilds, for example to simulate a rename between connections.
func (f *Fake) SetGuilds(guilds ...platform.Guild) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.guilds = guilds
}

// SetBotUser replaces the bot user.
func (f *Fake) SetBotUser(u *discordgo.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.user = u
}

// SetLatency makes every call that would reach the Discord REST API take d. Interaction
// responses and follow-ups are not delayed.
func (f *Fake) SetLatency(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.latency = d
}

// rest simulates a REST round trip and records the call. It returns with the lock held.
func (f *Fake) rest(call string) {
	f.mu.Lock()
	d := f.latency
	f.mu.Unlock()

	time.Sleep(d)

	f.mu.Lock()
	f.calls = append(f.calls, call)
}

func (f *Fake) Guilds() []platform.Guild {
	f.mu.Lock()
	defer f.mu.Unlock()

	guilds := make([]platform.Guild, 0, len(f.guilds))
	for _, g := range f.guilds {
		g.Channels = append([]platform.Channel(nil), g.Channels...)
		guilds = append(guilds, g)
	}
	return guilds
}

func (f *Fake) GuildChannels(guildID string) ([]platform.Channel, error) {
	f.rest(CallGuildChannels)
	defer f.mu.Unlock()

	if f.ErrGuildChannels != nil {
		return nil, f.ErrGuildChannels
	}

	for _, g := range f.guilds {
		if g.ID == guildID {
			return append([]platform.Channel(nil), g.Channels...), nil
		}
	}
	return nil, fmt.Errorf("unknown guild %s", guildID)
}

func (f *Fake) Channel(channelID string) (*platform.Channel, error) {
	f.rest(CallChannel)
	defer f.mu.Unlock()

	if c, ok := f.find(channelID); ok {
		return &c, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownChannel, channelID)
}

func (f *Fake) CreateTextChannel(guildID, parentID, name string) (*platform.Channel, error) {
	f.rest(CallCreate)
	defer f.mu.Unlock()

	if f.ErrCreate != nil {
		return nil, f.ErrCreate
	}

	f.nextID++
	c := platform.Channel{
		ID:       fmt.Sprintf("created-%d", f.nextID),
		GuildID:  guildID,
		Name:     name,
		Type:     discordgo.ChannelTypeGuildText,
		ParentID: parentID,
	}

	for i := range f.guilds {
		if f.guilds[i].ID == guildID {
			f.guilds[i].Channels = append(f.guilds[i].Channels, c)
		}
	}
	f.created = append(f.created, c)
	return &c, nil
}

func (f *Fake) SetPermission(channelID, principalID string, kind discordgo.PermissionOverwriteType, allow, deny int64) error {
	f.rest(CallPermission)
	defer f.mu.Unlock()

	if f.ErrPermission != nil {
		return f.ErrPermission
	}

	f.permissions = append(f.permissions, Permission{
		ChannelID:   channelID,
		PrincipalID: principalID,
		Kind:        kind,
		Allow:       allow,
		Deny:        deny,
	})
	return nil
}

func (f *Fake) DeleteChannel(channelID string) error {
	f.rest(CallDelete)
	defer f.mu.Unlock()

	if f.ErrDelete != nil {
		return f.ErrDelete
	}

	if _, ok := f.find(channelID); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownChannel, channelID)
	}

	for i := range f.guilds {
		kept := f.guilds[i].Channels[:0]
		for _, c := range f.guilds[i].Channels {
			if c.ID != channelID {
				kept = append(kept, c)
			}
		}
		f.guilds[i].Channels = kept
	}
	f.deleted = append(f.deleted, channelID)
	return nil
}

func (f *Fake) SendMessage(channelID string, msg *discordgo.MessageSend) error {
	f.rest(CallSend)
	defer f.mu.Unlock()

	if f.ErrSend != nil {
		return f.ErrSend
	}

	f.sent = append(f.sent, Sent{ChannelID: channelID, Message: msg})
	return nil
}

func (f *Fake) Respond(i *discordgo.Interaction, resp *discordgo.InteractionResponse) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, CallRespond)

	if f.ErrRespond != nil {
		return f.ErrRespond
	}

	f.responses = append(f.responses, Response{Interaction: i, Response: resp})
	return nil
}

func (f *Fake) FollowUp(i *discordgo.Interaction, content string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, CallFollowUp)
	if f.ErrFollowUp != nil {
		return f.ErrFollowUp
	}

	f.followUps = append(f.followUps, FollowUp{Interaction: i, Content: content})
	return nil
}

func (f *Fake) BotUser() *discordgo.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.user
}

// Created returns the channels created so far.
func (f *Fake) Created() []platform.Channel {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]platform.Channel(nil), f.created...)
}

// Permissions returns the permission overwrites set so far.
func (f *Fake) Permissions() []Permission {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Permission(nil), f.permissions...)
}

// Deleted returns the IDs of the channels deleted so far.
func (f *Fake) Deleted() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deleted...)
}

// Sent returns the messages sent so far.
func (f *Fake) Sent() []Sent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Sent(nil), f.sent...)
}

// Responses returns the interaction responses so far.
func (f *Fake) Responses() []Response {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Response(nil), f.responses...)
}

// FollowUps returns the interaction follow-ups so far.
func (f *Fake) FollowUps() []FollowUp {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]FollowUp(nil), f.followUps...)
}

// Calls returns the names of the calls made so far, failed ones included.
func (f *Fake) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *Fake) find(channelID string) (platform.Channel, bool) {
	for _, g := range f.guilds {
		for _, c := range g.Channels {
			if c.ID == channelID {
				return c, true
			}
		}
	}
	return platform.Channel{}, false
}

var _ platform.Client = (*Fake)(nil)
