package trainer

import (
	"strings"
)

type (
	// MIDIContext lists the MIDI input ports of the system. The ports feed
	// their note events into the ChannelInput the context was created with.
	MIDIContext interface {
		Inputs(yield func(input MIDIInputDevice) bool)
		Close()
		Support() MIDISupport
	}

	MIDIInputDevice interface {
		Open() error
		Close() error
		IsOpen() bool
		String() string
	}

	MIDISupport int

	// NullMIDIContext is used when the program was built without MIDI.
	NullMIDIContext struct{}
)

const (
	MIDISupportNotCompiled MIDISupport = iota
	MIDISupportNoDriver
	MIDISupported
)

func (m NullMIDIContext) Inputs(yield func(input MIDIInputDevice) bool) {}
func (m NullMIDIContext) Close()                                        {}
func (m NullMIDIContext) Support() MIDISupport                          { return MIDISupportNotCompiled }

func (s MIDISupport) String() string {
	switch s {
	case MIDISupportNoDriver:
		return "no MIDI driver"
	case MIDISupported:
		return "MIDI supported"
	}
	return "MIDI not compiled in"
}

// FindMIDIDeviceByPrefix returns the first input whose name starts with
// prefix. An empty prefix matches the first input.
func FindMIDIDeviceByPrefix(c MIDIContext, prefix string) (input MIDIInputDevice, ok bool) {
	for i := range c.Inputs {
		if strings.HasPrefix(i.String(), prefix) {
			return i, true
		}
	}
	return nil, false
}
