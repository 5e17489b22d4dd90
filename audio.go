package sightread

// SampleRate is the sample rate of all audio rendered and played, in Hz.
const SampleRate = 44100

type (
	// NoteTrigger is the service that makes pitches sound. At most one
	// instance of a pitch sounds at a time: playing a pitch that is already
	// sounding restarts it. Rests are ignored.
	NoteTrigger interface {
		Play(pitches ...Pitch)
		Stop(pitches ...Pitch)
		StopAll()
		// HasNote reports whether the pitch can be played; scores are only
		// accepted if every pitch in them has a note. Rest always has one.
		HasNote(pitch Pitch) bool
	}

	// Synth is a NoteTrigger that renders the sounding notes into audio.
	Synth interface {
		NoteTrigger
		// Render fills buffer with interleaved stereo samples (L, R, L, R...)
		// at SampleRate.
		Render(buffer []float32)
	}

	// AudioContext streams a Synth to an audio device until closed.
	AudioContext interface {
		Play(synth Synth) error
		Close() error
	}

	// InputSource is a polled source of pitch presses and releases, e.g. a
	// computer keyboard, push buttons or a MIDI keyboard.
	InputSource interface {
		// Poll refreshes the state of the source; called once per frame.
		Poll()
		// Updates returns the pitches pressed (true) or released (false)
		// since the previous call and clears them, so two calls in a row
		// without a Poll in between return an empty map the second time.
		Updates() map[Pitch]bool
		// PlayablePitches returns the static set of pitches the source can
		// produce.
		PlayablePitches() PitchSet
	}
)
