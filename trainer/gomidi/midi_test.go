package gomidi_test

import (
	"reflect"
	"testing"

	"github.com/sightread/sightread"
	"github.com/sightread/sightread/trainer"
	"github.com/sightread/sightread/trainer/gomidi"
	"gitlab.com/gomidi/midi/v2"
)

func TestHandleMessage(t *testing.T) {
	input := trainer.NewChannelInput(16, sightread.NewPitchSet("C4", "E4"))
	c := gomidi.NewContext(input)
	defer c.Close()
	c.HandleMessage(midi.NoteOn(0, 60, 100), 0)
	c.HandleMessage(midi.NoteOn(0, 64, 100), 1)
	c.HandleMessage(midi.NoteOn(0, 64, 0), 2) // running status note off
	c.HandleMessage(midi.NoteOn(0, 62, 100), 3)
	c.HandleMessage(midi.ControlChange(0, 64, 127), 4)
	input.Poll()
	want := map[sightread.Pitch]bool{"C4": true, "E4": false}
	if got := input.Updates(); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	c.HandleMessage(midi.NoteOff(0, 60), 5)
	input.Poll()
	if got := input.Updates(); !reflect.DeepEqual(got, map[sightread.Pitch]bool{"C4": false}) {
		t.Errorf("expected C4 released, got %v", got)
	}
}
