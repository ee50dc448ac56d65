package directory

import (
	"sync/atomic"

	"github.com/Jacobbrewer1/ticketdesk/pkg/platform"
)

// snapshot is never modified once it has been published.
type snapshot struct {
	// order is the guild IDs in the order they were first seen.
	order []string

	// names is the text channel names per guild ID.
	names map[string][]string
}

// Directory caches the text channel names of every guild the bot is in.
//
// Only the dispatch loop refreshes it. Readers get whatever snapshot was last published and
// never block, so a channel created or renamed since the last refresh is not visible yet.
type Directory struct {
	current atomic.Pointer[snapshot]
}

// New creates an empty directory.
func New() *Directory {
	d := new(Directory)
	d.current.Store(&snapshot{
		names: make(map[string][]string),
	})
	return d
}

// Refresh replaces the entry of every given guild with its current text channels. Guilds that are
// not given keep their entry.
func (d *Directory) Refresh(guilds []platform.Guild) {
	prev := d.current.Load()

	next := &snapshot{
		order: append([]string(nil), prev.order...),
		names: make(map[string][]string, len(prev.names)+len(guilds)),
	}
	for id, names := range prev.names {
		next.names[id] = names
	}

	for _, g := range guilds {
		text := g.TextChannels()
		names := make([]string, 0, len(text))
		for _, c := range text {
			names = append(names, c.Name)
		}

		if _, ok := next.names[g.ID]; !ok {
			next.order = append(next.order, g.ID)
		}
		next.names[g.ID] = names
	}

	d.current.Store(next)
}

// ChannelNames returns the text channel names of all guilds, flattened in guild order.
func (d *Directory) ChannelNames() []string {
	s := d.current.Load()

	all := make([]string, 0)
	for _, id := range s.order {
		all = append(all, s.names[id]...)
	}
	return all
}

// GuildChannelNames returns the text channel names of one guild.
func (d *Directory) GuildChannelNames(guildID string) ([]string, bool) {
	names, ok := d.current.Load().names[guildID]
	if !ok {
		return nil, false
	}
	return append([]string(nil), names...), true
}

// Guilds returns the number of guilds in the directory.
func (d *Directory) Guilds() int {
	return len(d.current.Load().order)
}
