//go:build !cgo

package cmd

import (
	"github.com/sightread/sightread/trainer"
)

func NewMidiContext(input *trainer.ChannelInput) trainer.MIDIContext {
	// with no cgo, we cannot use MIDI, so return a null context
	return trainer.NullMIDIContext{}
}
