// Package sampler implements a sightread.Synth that plays one recorded .wav
// file per pitch.
package sampler

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/sightread/sightread"
	"github.com/viterin/vek/vek32"
)

// Sampler mixes the samples of the sounding pitches. Play, Stop and Render
// may be called from different goroutines.
type Sampler struct {
	mu      sync.Mutex
	samples map[sightread.Pitch][]float32
	voices  map[sightread.Pitch]int // read position of each sounding pitch
	gain    float32
}

// New returns a sampler for the given interleaved stereo samples.
func New(samples map[sightread.Pitch][]float32, gain float32) *Sampler {
	return &Sampler{samples: samples, voices: map[sightread.Pitch]int{}, gain: gain}
}

// Load reads every file named after a pitch, e.g. C#4.wav, from dir. Other
// files are ignored.
func Load(dir string, gain float32) (*Sampler, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("could not read sample directory: %w", err)
	}
	samples := map[sightread.Pitch][]float32{}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.EqualFold(filepath.Ext(name), ".wav") {
			continue
		}
		pitch := sightread.Pitch(strings.TrimSuffix(name, filepath.Ext(name)))
		if !pitch.Valid() || pitch.IsRest() {
			continue
		}
		f, err := os.Open(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("could not open sample: %w", err)
		}
		data, err := Decode(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("could not decode %s: %w", name, err)
		}
		samples[pitch] = data
	}
	return New(samples, gain), nil
}

// Decode reads a .wav file as interleaved stereo floats resampled to
// sightread.SampleRate.
func Decode(r io.Reader) ([]float32, error) {
	stream, err := wav.DecodeWithSampleRate(sightread.SampleRate, r)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, err
	}
	ret := make([]float32, len(data)/2)
	for i := range ret {
		ret[i] = float32(int16(binary.LittleEndian.Uint16(data[2*i:]))) / math.MaxInt16
	}
	return ret, nil
}

func (s *Sampler) HasNote(pitch sightread.Pitch) bool {
	if pitch.IsRest() {
		return true
	}
	_, ok := s.samples[pitch]
	return ok
}

// Play starts the pitches from the beginning of their samples, cutting off
// any that were already sounding.
func (s *Sampler) Play(pitches ...sightread.Pitch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range pitches {
		if _, ok := s.samples[p]; ok {
			s.voices[p] = 0
		}
	}
}

func (s *Sampler) Stop(pitches ...sightread.Pitch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range pitches {
		delete(s.voices, p)
	}
}

func (s *Sampler) StopAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.voices)
}

// Sounding returns the number of pitches sounding at the moment.
func (s *Sampler) Sounding() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.voices)
}

func (s *Sampler) Render(buffer []float32) {
	clear(buffer)
	s.mu.Lock()
	defer s.mu.Unlock()
	for p, pos := range s.voices {
		sample := s.samples[p]
		n := min(len(buffer), len(sample)-pos)
		vek32.Add_Inplace(buffer[:n], sample[pos:pos+n])
		if pos+n >= len(sample) {
			delete(s.voices, p)
			continue
		}
		s.voices[p] = pos + n
	}
	vek32.MulNumber_Inplace(buffer, s.gain)
}
