//go:build cgo

package cmd

import (
	"github.com/sightread/sightread/trainer"
	"github.com/sightread/sightread/trainer/gomidi"
)

func NewMidiContext(input *trainer.ChannelInput) trainer.MIDIContext {
	return gomidi.NewContext(input)
}
