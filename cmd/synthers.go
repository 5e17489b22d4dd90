package cmd

import (
	"fmt"
	"sort"

	"github.com/sightread/sightread"
	"github.com/sightread/sightread/synth/sampler"
	"github.com/sightread/sightread/synth/soundfont"
	"github.com/sightread/sightread/trainer"
)

// Synthers are the sound backends that can be selected in the preferences.
var Synthers = map[string]func(prefs trainer.SoundPreferences) (sightread.Synth, error){
	"sampler": func(prefs trainer.SoundPreferences) (sightread.Synth, error) {
		return sampler.Load(prefs.Samples, prefs.Gain)
	},
	"soundfont": func(prefs trainer.SoundPreferences) (sightread.Synth, error) {
		return soundfont.Load(prefs.SoundFont, prefs.Gain)
	},
	"none": func(trainer.SoundPreferences) (sightread.Synth, error) {
		return Silence{}, nil
	},
}

// Silence accepts every pitch and renders nothing.
type Silence struct{}

func (Silence) Play(...sightread.Pitch)        {}
func (Silence) Stop(...sightread.Pitch)        {}
func (Silence) StopAll()                       {}
func (Silence) HasNote(p sightread.Pitch) bool { return sightread.ValidPitch(p) }
func (Silence) Render(buffer []float32)        { clear(buffer) }

// NewSynth creates the backend named in the preferences.
func NewSynth(prefs trainer.SoundPreferences) (sightread.Synth, error) {
	f, ok := Synthers[prefs.Backend]
	if !ok {
		return nil, fmt.Errorf("unknown sound backend %q, expected one of %v", prefs.Backend, SynthNames())
	}
	s, err := f(prefs)
	if err != nil {
		return nil, fmt.Errorf("could not create %s backend: %w", prefs.Backend, err)
	}
	return s, nil
}

func SynthNames() []string {
	var ret []string
	for name := range Synthers {
		ret = append(ret, name)
	}
	sort.Strings(ret)
	return ret
}
