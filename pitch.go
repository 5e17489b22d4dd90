package sightread

import (
	"sort"
	"strconv"
)

type (
	// Pitch is the name of a single pitch, e.g. "C4" or "F#3": a letter A-G,
	// an optional sharp and an octave digit. Flats are never used; enharmonic
	// flats are spelled as the sharp of the note below. The special value Rest
	// marks a note that sounds nothing.
	Pitch string

	// PitchSet is an unordered set of pitches.
	PitchSet map[Pitch]struct{}
)

// Rest is the pitch name used for rests in the score format.
const Rest Pitch = "-"

var semitones = map[byte]int{'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11}

var sharpNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Valid reports whether p follows the grammar [A-G](#)?[0-9]. Rest is not a
// valid pitch by this definition; use IsRest for it.
func (p Pitch) Valid() bool {
	s := string(p)
	switch len(s) {
	case 2:
	case 3:
		if s[1] != '#' {
			return false
		}
	default:
		return false
	}
	if _, ok := semitones[s[0]]; !ok {
		return false
	}
	last := s[len(s)-1]
	return last >= '0' && last <= '9'
}

func (p Pitch) IsRest() bool {
	return p == Rest
}

func (p Pitch) Sharp() bool {
	return len(p) == 3 && p[1] == '#'
}

// Natural returns the pitch without its sharp, which is the pitch that sits on
// the same staff position.
func (p Pitch) Natural() Pitch {
	if p.Sharp() {
		return p[:1] + p[2:]
	}
	return p
}

// Octave returns the octave digit of the pitch, or -1 for rests and invalid
// pitches.
func (p Pitch) Octave() int {
	if !p.Valid() {
		return -1
	}
	return int(p[len(p)-1] - '0')
}

// MIDIKey returns the MIDI note number of the pitch, using the convention that
// C4 = 60 (middle C). ok is false for rests and invalid pitches.
func (p Pitch) MIDIKey() (key byte, ok bool) {
	if !p.Valid() {
		return 0, false
	}
	n := semitones[p[0]] + (p.Octave()+1)*12
	if p.Sharp() {
		n++
	}
	if n > 127 {
		return 0, false
	}
	return byte(n), true
}

// PitchFromMIDIKey is the inverse of MIDIKey. Keys outside octaves 0-9 return
// Rest.
func PitchFromMIDIKey(key byte) Pitch {
	octave := int(key)/12 - 1
	if octave < 0 || octave > 9 {
		return Rest
	}
	return Pitch(sharpNames[key%12] + strconv.Itoa(octave))
}

// ValidPitch is a playability check that accepts every grammatically valid
// pitch and the rest marker. It is useful when no note trigger is available,
// e.g. for validating scores from the command line.
func ValidPitch(p Pitch) bool {
	return p.IsRest() || p.Valid()
}

func NewPitchSet(pitches ...Pitch) PitchSet {
	s := make(PitchSet, len(pitches))
	for _, p := range pitches {
		s[p] = struct{}{}
	}
	return s
}

func (s PitchSet) Add(pitches ...Pitch) {
	for _, p := range pitches {
		s[p] = struct{}{}
	}
}

func (s PitchSet) Remove(pitches ...Pitch) {
	for _, p := range pitches {
		delete(s, p)
	}
}

func (s PitchSet) Has(p Pitch) bool {
	_, ok := s[p]
	return ok
}

func (s PitchSet) Len() int {
	return len(s)
}

// Union returns a new set with the pitches of both s and o.
func (s PitchSet) Union(o PitchSet) PitchSet {
	ret := make(PitchSet, len(s)+len(o))
	for p := range s {
		ret[p] = struct{}{}
	}
	for p := range o {
		ret[p] = struct{}{}
	}
	return ret
}

// Sorted returns the pitches from lowest to highest. Pitches without a MIDI key
// (rests) sort first, by name.
func (s PitchSet) Sorted() []Pitch {
	ret := make([]Pitch, 0, len(s))
	for p := range s {
		ret = append(ret, p)
	}
	sort.Slice(ret, func(i, j int) bool {
		ki, oki := ret[i].MIDIKey()
		kj, okj := ret[j].MIDIKey()
		if oki != okj {
			return !oki
		}
		if ki != kj {
			return ki < kj
		}
		return ret[i] < ret[j]
	})
	return ret
}
