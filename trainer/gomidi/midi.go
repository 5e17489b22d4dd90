package gomidi

import (
	"errors"
	"fmt"

	"github.com/sightread/sightread"
	"github.com/sightread/sightread/trainer"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

type (
	RTMIDIContext struct {
		driver    *rtmididrv.Driver
		currentIn drivers.In
		stop      func()
		input     *trainer.ChannelInput
	}

	RTMIDIDevice struct {
		context *RTMIDIContext
		in      drivers.In
	}
)

func (m *RTMIDIContext) Inputs(yield func(input trainer.MIDIInputDevice) bool) {
	if m.driver == nil {
		return
	}
	ins, err := m.driver.Ins()
	if err != nil {
		return
	}
	for i := 0; i < len(ins); i++ {
		device := RTMIDIDevice{context: m, in: ins[i]}
		if !yield(device) {
			break
		}
	}
}

// NewContext opens the driver. The note events of the opened port are sent to
// input.
func NewContext(input *trainer.ChannelInput) *RTMIDIContext {
	m := RTMIDIContext{input: input}
	// there's not much we can do if this fails, so just use m.driver = nil to
	// indicate no driver available
	m.driver, _ = rtmididrv.New()
	return &m
}

// Open an input device while closing the currently open if necessary.
func (d RTMIDIDevice) Open() error {
	if d.context.currentIn == d.in {
		return nil
	}
	if d.context.driver == nil {
		return errors.New("no driver available")
	}
	if d.context.HasDeviceOpen() {
		d.context.closeCurrent()
	}
	d.context.currentIn = d.in
	err := d.in.Open()
	if err != nil {
		d.context.currentIn = nil
		return fmt.Errorf("opening MIDI input failed: %w", err)
	}
	d.context.stop, err = midi.ListenTo(d.in, d.context.HandleMessage)
	if err != nil {
		d.in.Close()
		d.context.currentIn = nil
		return fmt.Errorf("listening to MIDI input failed: %w", err)
	}
	return nil
}

func (d RTMIDIDevice) Close() error {
	if d.context.currentIn != d.in {
		return nil
	}
	return d.context.closeCurrent()
}

func (d RTMIDIDevice) IsOpen() bool {
	return d.in.IsOpen()
}

func (d RTMIDIDevice) String() string {
	return d.in.String()
}

func (c *RTMIDIContext) closeCurrent() error {
	if c.stop != nil {
		c.stop()
		c.stop = nil
	}
	in := c.currentIn
	c.currentIn = nil
	if in != nil && in.IsOpen() {
		return in.Close()
	}
	return nil
}

func (c *RTMIDIContext) Close() {
	if c.driver == nil {
		return
	}
	c.closeCurrent()
	c.driver.Close()
}

func (c *RTMIDIContext) Support() trainer.MIDISupport {
	if c.driver == nil {
		return trainer.MIDISupportNoDriver
	}
	return trainer.MIDISupported
}

func (c *RTMIDIContext) HasDeviceOpen() bool {
	return c.currentIn != nil && c.currentIn.IsOpen()
}

// TryToOpenBy opens the first input whose name starts with namePrefix, or the
// first input at all if takeFirst is set.
func (c *RTMIDIContext) TryToOpenBy(namePrefix string, takeFirst bool) error {
	if namePrefix == "" && !takeFirst {
		return nil
	}
	prefix := namePrefix
	if takeFirst {
		prefix = ""
	}
	if input, ok := trainer.FindMIDIDeviceByPrefix(c, prefix); ok {
		return input.Open()
	}
	if takeFirst {
		return errors.New("could not find any MIDI input")
	}
	return fmt.Errorf("could not find any MIDI input starting with %q", namePrefix)
}

// HandleMessage is called by the driver on its own goroutine.
func (c *RTMIDIContext) HandleMessage(msg midi.Message, timestampms int32) {
	var channel, key, velocity uint8
	switch {
	case msg.GetNoteStart(&channel, &key, &velocity):
		c.input.Send(trainer.NoteEvent{Pitch: sightread.PitchFromMIDIKey(key), On: true})
	case msg.GetNoteEnd(&channel, &key):
		c.input.Send(trainer.NoteEvent{Pitch: sightread.PitchFromMIDIKey(key)})
	}
}
