// Package soundfont implements a sightread.Synth on top of a SoundFont 2
// synthesizer.
package soundfont

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/sightread/sightread"
	"github.com/sinshu/go-meltysynth/meltysynth"
	"github.com/viterin/vek/vek32"
)

// SoundFont plays every pitch with a MIDI key on the first preset of the
// sound font.
type SoundFont struct {
	mu          sync.Mutex
	synthesizer *meltysynth.Synthesizer
	gain        float32
	left, right []float32
}

const (
	channel  = 0
	velocity = 100
)

// New reads a .sf2 file from r.
func New(r io.Reader, gain float32) (*SoundFont, error) {
	sf, err := meltysynth.NewSoundFont(r)
	if err != nil {
		return nil, fmt.Errorf("could not read sound font: %w", err)
	}
	settings := meltysynth.NewSynthesizerSettings(sightread.SampleRate)
	synthesizer, err := meltysynth.NewSynthesizer(sf, settings)
	if err != nil {
		return nil, fmt.Errorf("could not create synthesizer: %w", err)
	}
	return &SoundFont{synthesizer: synthesizer, gain: gain}, nil
}

func Load(path string, gain float32) (*SoundFont, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open sound font: %w", err)
	}
	defer f.Close()
	return New(f, gain)
}

func (s *SoundFont) HasNote(pitch sightread.Pitch) bool {
	if pitch.IsRest() {
		return true
	}
	_, ok := pitch.MIDIKey()
	return ok
}

// Play releases the pitches if they are sounding and strikes them again.
func (s *SoundFont) Play(pitches ...sightread.Pitch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range pitches {
		if key, ok := p.MIDIKey(); ok {
			s.synthesizer.NoteOff(channel, int32(key))
			s.synthesizer.NoteOn(channel, int32(key), velocity)
		}
	}
}

func (s *SoundFont) Stop(pitches ...sightread.Pitch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range pitches {
		if key, ok := p.MIDIKey(); ok {
			s.synthesizer.NoteOff(channel, int32(key))
		}
	}
}

func (s *SoundFont) StopAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.synthesizer.NoteOffAll(false)
}

func (s *SoundFont) Render(buffer []float32) {
	n := len(buffer) / 2
	if cap(s.left) < n {
		s.left = make([]float32, n)
		s.right = make([]float32, n)
	}
	left, right := s.left[:n], s.right[:n]
	s.mu.Lock()
	s.synthesizer.Render(left, right)
	s.mu.Unlock()
	for i := range n {
		buffer[2*i] = left[i]
		buffer[2*i+1] = right[i]
	}
	vek32.MulNumber_Inplace(buffer, s.gain)
}
