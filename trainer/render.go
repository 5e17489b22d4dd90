package trainer

import (
	"errors"

	"github.com/sightread/sightread"
)

// Render plays the score through the synth the same way the training mode
// does, frame by frame at the given rate, and returns the interleaved stereo
// audio. tail seconds of audio are rendered after the last note stops.
func Render(score *sightread.Score, synth sightread.Synth, fps int, rate float64, tail float64) ([]float32, error) {
	if fps <= 0 || rate <= 0 {
		return nil, errors.New("frame rate and pace must be positive")
	}
	if sightread.SampleRate%fps != 0 {
		return nil, errors.New("the frame rate must divide the sample rate")
	}
	frameLength := 2 * sightread.SampleRate / fps
	e := NewEngine(score, DefaultLayout(), synth, Hooks{})
	e.SetRate(rate)
	var ret []float32
	frame := func() {
		start := len(ret)
		ret = append(ret, make([]float32, frameLength)...)
		synth.Render(ret[start:])
	}
	for !e.Terminal() {
		e.AdvanceFrame(fps)
		frame()
	}
	for i := 0; i < int(tail*float64(fps)); i++ {
		frame()
	}
	return ret, nil
}
