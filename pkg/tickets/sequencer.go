package tickets

import (
	"sync"

	"github.com/Jacobbrewer1/ticketdesk/pkg/entities"
)

// Sequencer hands out ticket numbers. Numbers start at 1, only ever go up, and live as long as the process.
type Sequencer struct {
	mu   sync.Mutex
	next entities.Number
}

// NewSequencer creates a sequencer starting at 1.
func NewSequencer() *Sequencer {
	return &Sequencer{
		next: 1,
	}
}

// Next returns the current number and advances the counter.
func (s *Sequencer) Next() entities.Number {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.next
	s.next++
	return n
}

// Peek returns the number the next call to Next will return.
func (s *Sequencer) Peek() entities.Number {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next
}
