package sightread_test

import (
	"reflect"
	"testing"

	"github.com/sightread/sightread"
)

func TestPitchValid(t *testing.T) {
	for _, p := range []sightread.Pitch{"C4", "C#4", "A0", "G#9", "B3"} {
		if !p.Valid() {
			t.Errorf("expected %q to be valid", p)
		}
	}
	for _, p := range []sightread.Pitch{"H4", "C", "Cb4", "C##4", "c4", "-", "", "C10"} {
		if p.Valid() {
			t.Errorf("expected %q to be invalid", p)
		}
	}
	if !sightread.ValidPitch(sightread.Rest) {
		t.Errorf("rests should always pass ValidPitch")
	}
}

func TestPitchMIDIKey(t *testing.T) {
	cases := []struct {
		pitch sightread.Pitch
		key   byte
	}{
		{"C4", 60}, {"A4", 69}, {"C#4", 61}, {"B3", 59}, {"C-1", 0}, {"E2", 40},
	}
	for _, c := range cases {
		key, ok := c.pitch.MIDIKey()
		if c.pitch == "C-1" {
			if ok {
				t.Errorf("C-1 is outside the pitch grammar and should have no key")
			}
			continue
		}
		if !ok || key != c.key {
			t.Errorf("%v.MIDIKey() = %d, %v; want %d", c.pitch, key, ok, c.key)
		}
		if back := sightread.PitchFromMIDIKey(c.key); back != c.pitch {
			t.Errorf("PitchFromMIDIKey(%d) = %v, want %v", c.key, back, c.pitch)
		}
	}
	if _, ok := sightread.Rest.MIDIKey(); ok {
		t.Errorf("rests should not have a MIDI key")
	}
}

func TestPitchNatural(t *testing.T) {
	if got := sightread.Pitch("F#3").Natural(); got != "F3" {
		t.Errorf("F#3 natural = %v", got)
	}
	if got := sightread.Pitch("F3").Natural(); got != "F3" {
		t.Errorf("F3 natural = %v", got)
	}
}

func TestPitchSet(t *testing.T) {
	s := sightread.NewPitchSet("E4", "C4", "G3", "C4")
	if s.Len() != 3 {
		t.Fatalf("expected 3 distinct pitches, got %d", s.Len())
	}
	s.Remove("E4")
	s.Add("C#4", sightread.Rest)
	want := []sightread.Pitch{sightread.Rest, "G3", "C4", "C#4"}
	if got := s.Sorted(); !reflect.DeepEqual(got, want) {
		t.Errorf("Sorted() = %v, want %v", got, want)
	}
	u := s.Union(sightread.NewPitchSet("A4"))
	if !u.Has("A4") || !u.Has("G3") || s.Has("A4") {
		t.Errorf("Union should return a new set with both sides")
	}
}
