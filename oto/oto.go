package oto

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/sightread/sightread"
)

type (
	// OtoContext streams a synth to the default audio device.
	OtoContext struct {
		context *oto.Context
		player  *oto.Player
		reader  *synthReader
	}

	// synthReader is pulled by oto from its own goroutine; each Read
	// renders the synth into a float buffer and converts it to bytes.
	synthReader struct {
		mu     sync.Mutex
		synth  sightread.Synth
		buffer []float32
	}
)

const bytesPerFloat = 4

// NewContext opens the audio device. latency is the size of the device
// buffer; zero lets oto choose.
func NewContext(latency time.Duration) (*OtoContext, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sightread.SampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
		BufferSize:   latency,
	}
	context, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("cannot create oto context: %w", err)
	}
	<-ready
	return &OtoContext{context: context, reader: &synthReader{}}, nil
}

// Play starts streaming synth. Calling Play again switches to another
// synth without reopening the device.
func (c *OtoContext) Play(synth sightread.Synth) error {
	if synth == nil {
		return errors.New("cannot play a nil synth")
	}
	c.reader.mu.Lock()
	c.reader.synth = synth
	c.reader.mu.Unlock()
	if c.player == nil {
		c.player = c.context.NewPlayer(c.reader)
		c.player.Play()
	}
	if err := c.context.Err(); err != nil {
		return fmt.Errorf("oto context failed: %w", err)
	}
	return nil
}

func (c *OtoContext) Close() error {
	if c.player == nil {
		return nil
	}
	if err := c.player.Close(); err != nil {
		return fmt.Errorf("cannot close oto player: %w", err)
	}
	c.player = nil
	return nil
}

func (r *synthReader) Read(p []byte) (int, error) {
	// oto reads whole stereo frames
	n := len(p) / (2 * bytesPerFloat) * 2
	if cap(r.buffer) < n {
		r.buffer = make([]float32, n)
	}
	buf := r.buffer[:n]
	r.mu.Lock()
	synth := r.synth
	r.mu.Unlock()
	if synth != nil {
		synth.Render(buf)
	} else {
		clear(buf)
	}
	FloatBufferTo32BitLE(buf, p[:0])
	return n * bytesPerFloat, nil
}
