package trainer

import (
	"github.com/sightread/sightread"
)

type (
	// NoteEvent is a press (On) or a release of a pitch, sent from another
	// goroutine, typically a MIDI driver callback.
	NoteEvent struct {
		Pitch sightread.Pitch
		On    bool
	}

	// ChannelInput is an InputSource fed through a channel. The sending side
	// never blocks: if the channel is full, the event is dropped. Poll drains
	// the channel on the frame goroutine.
	ChannelInput struct {
		events   chan NoteEvent
		playable sightread.PitchSet
		updates  map[sightread.Pitch]bool
	}
)

// NewChannelInput creates an input with room for size pending events,
// accepting the given pitches. Events for other pitches are ignored.
func NewChannelInput(size int, playable sightread.PitchSet) *ChannelInput {
	return &ChannelInput{
		events:   make(chan NoteEvent, size),
		playable: playable,
		updates:  map[sightread.Pitch]bool{},
	}
}

// TrySend sends v to c unless c is full. It never blocks and reports whether
// the value was sent.
func TrySend[T any](c chan<- T, v T) bool {
	select {
	case c <- v:
	default:
		return false
	}
	return true
}

// Send queues an event; safe to call from any goroutine.
func (c *ChannelInput) Send(ev NoteEvent) bool {
	return TrySend(c.events, ev)
}

func (c *ChannelInput) Poll() {
	for {
		select {
		case ev := <-c.events:
			if c.playable.Has(ev.Pitch) {
				c.updates[ev.Pitch] = ev.On
			}
		default:
			return
		}
	}
}

func (c *ChannelInput) Updates() map[sightread.Pitch]bool {
	ret := c.updates
	c.updates = map[sightread.Pitch]bool{}
	return ret
}

func (c *ChannelInput) PlayablePitches() sightread.PitchSet {
	return c.playable
}

// MultiInput merges several inputs into one. The playable pitches are the
// union of all inputs' pitches.
type MultiInput []sightread.InputSource

func (m MultiInput) Poll() {
	for _, in := range m {
		in.Poll()
	}
}

func (m MultiInput) Updates() map[sightread.Pitch]bool {
	ret := map[sightread.Pitch]bool{}
	for _, in := range m {
		for p, on := range in.Updates() {
			ret[p] = on
		}
	}
	return ret
}

func (m MultiInput) PlayablePitches() sightread.PitchSet {
	ret := sightread.PitchSet{}
	for _, in := range m {
		ret = ret.Union(in.PlayablePitches())
	}
	return ret
}

// InputCloser is an input holding system resources, e.g. GPIO lines or a
// MIDI port, that need to be released.
type InputCloser interface {
	sightread.InputSource
	Close() error
}
