package sightread

import "math"

type (
	// Clef selects one of the two independent note tracks of a bar.
	Clef int

	// Note is a set of simultaneously sounding pitches with a duration, given
	// in crotchets. A note with the single pitch Rest is a rest.
	Note struct {
		Pitches  []Pitch
		Duration float64
	}

	// TimeSignature is the time signature of a bar, e.g. {3, 4} for 3/4.
	TimeSignature struct {
		Top, Bottom int
	}

	// Bar is a fixed-length segment of the music. The treble and bass
	// sequences always span the same number of crotchets, determined by the
	// time signature. Bars are never mutated after parsing.
	Bar struct {
		BPM    int // crotchets per minute
		Timing TimeSignature
		Treble []Note
		Bass   []Note
	}

	// Score is a parsed piece of music. A Score is only ever constructed from
	// a valid source, so every bar satisfies the timing invariant, every pitch
	// was playable and every duration renderable when it was parsed.
	Score struct {
		Name string
		Bars []Bar
	}
)

const (
	Treble Clef = iota
	Bass
)

// Clefs lists both clefs, treble first, for iterating.
var Clefs = [...]Clef{Treble, Bass}

// Epsilon is the tolerance used when comparing bar lengths.
const Epsilon = 1e-4

func (c Clef) String() string {
	if c == Bass {
		return "bass"
	}
	return "treble"
}

// FloatEq reports whether two crotchet values are equal within Epsilon.
func FloatEq(a, b float64) bool {
	return math.Abs(a-b) <= Epsilon
}

// IsRest is true if the note does not sound any pitch.
func (n Note) IsRest() bool {
	for _, p := range n.Pitches {
		if !p.IsRest() {
			return false
		}
	}
	return true
}

// Length returns the length of a bar with this time signature, in crotchets.
func (t TimeSignature) Length() float64 {
	if t.Bottom == 0 {
		return 0
	}
	return float64(t.Top) / float64(t.Bottom) * 4
}

// Notes returns the note sequence of the given clef.
func (b *Bar) Notes(clef Clef) []Note {
	if clef == Bass {
		return b.Bass
	}
	return b.Treble
}

// Length returns the length of the bar in crotchets.
func (b *Bar) Length() float64 {
	ret := 0.0
	for _, n := range b.Treble {
		ret += n.Duration
	}
	return ret
}

// NoteAt returns the index of the note of the clef that is sounding at beat
// crotchets into the bar. A note ending exactly at beat still counts as
// sounding. Beats past the end of the bar clamp to the last note.
func (b *Bar) NoteAt(beat float64, clef Clef) int {
	notes := b.Notes(clef)
	acc := 0.0
	for i, n := range notes {
		acc += n.Duration
		if acc >= beat {
			return i
		}
	}
	return len(notes) - 1
}

// StartOffset returns the time in crotchets from the start of the bar when
// the note at index idx begins.
func (b *Bar) StartOffset(idx int, clef Clef) float64 {
	notes := b.Notes(clef)
	acc := 0.0
	for i := 0; i < idx && i < len(notes); i++ {
		acc += notes[i].Duration
	}
	return acc
}

// EndOffset returns the time in crotchets from the start of the bar when the
// note at index idx is completed.
func (b *Bar) EndOffset(idx int, clef Clef) float64 {
	return b.StartOffset(idx+1, clef)
}

func (s *Score) NumBars() int {
	return len(s.Bars)
}

// NumNotes returns the total number of notes (chords count as one, rests
// count too) over both clefs of all bars.
func (s *Score) NumNotes() int {
	ret := 0
	for i := range s.Bars {
		ret += len(s.Bars[i].Treble) + len(s.Bars[i].Bass)
	}
	return ret
}

// ExpectedFrames returns how many frames at the given frame rate playing the
// whole score takes at its nominal tempo.
func (s *Score) ExpectedFrames(fps int) float64 {
	ret := 0.0
	for i := range s.Bars {
		b := &s.Bars[i]
		if b.BPM <= 0 {
			continue
		}
		ret += b.Length() * 60 * float64(fps) / float64(b.BPM)
	}
	return ret
}

// Duration returns the expected playing time of the score in seconds.
func (s *Score) Duration() float64 {
	return s.ExpectedFrames(1)
}
