package sightread

import (
	"fmt"
	"io"
	"math"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// TicksPerCrotchet is the time resolution of exported MIDI files.
const TicksPerCrotchet = 960

const exportVelocity = 100

// WriteSMF exports the score as a format 1 Standard MIDI File. The first track
// holds the name, the time signatures and the tempo changes; the treble is
// on the second track (channel 0) and the bass on the third (channel 1).
func (s *Score) WriteSMF(w io.Writer) error {
	sm := smf.New()
	sm.TimeFormat = smf.MetricTicks(TicksPerCrotchet)
	if err := sm.Add(s.conductorTrack()); err != nil {
		return fmt.Errorf("error adding conductor track: %w", err)
	}
	for i, clef := range Clefs {
		if err := sm.Add(s.noteTrack(clef, uint8(i))); err != nil {
			return fmt.Errorf("error adding %v track: %w", clef, err)
		}
	}
	if _, err := sm.WriteTo(w); err != nil {
		return fmt.Errorf("error writing MIDI file: %w", err)
	}
	return nil
}

func crotchetsToTicks(c float64) uint32 {
	return uint32(math.Round(c * TicksPerCrotchet))
}

func (s *Score) conductorTrack() smf.Track {
	var track smf.Track
	track.Add(0, smf.MetaTrackSequenceName(s.Name))
	var tick, last uint32
	for i := range s.Bars {
		b := &s.Bars[i]
		if i == 0 || b.Timing != s.Bars[i-1].Timing {
			track.Add(tick-last, smf.MetaMeter(uint8(b.Timing.Top), uint8(b.Timing.Bottom)))
			last = tick
		}
		if i == 0 || b.BPM != s.Bars[i-1].BPM {
			track.Add(tick-last, smf.MetaTempo(float64(b.BPM)))
			last = tick
		}
		tick += crotchetsToTicks(b.Length())
	}
	track.Close(tick - last)
	return track
}

func (s *Score) noteTrack(clef Clef, channel uint8) smf.Track {
	var track smf.Track
	track.Add(0, smf.MetaInstrument(clef.String()))
	var delta uint32
	for i := range s.Bars {
		for _, n := range s.Bars[i].Notes(clef) {
			keys := noteKeys(n)
			for _, k := range keys {
				track.Add(delta, midi.NoteOn(channel, k, exportVelocity))
				delta = 0
			}
			delta += crotchetsToTicks(n.Duration)
			for _, k := range keys {
				track.Add(delta, midi.NoteOff(channel, k))
				delta = 0
			}
		}
	}
	track.Close(delta)
	return track
}

// noteKeys returns the distinct MIDI keys of a note, lowest first; rests have
// none.
func noteKeys(n Note) []uint8 {
	var keys []uint8
	for _, p := range NewPitchSet(n.Pitches...).Sorted() {
		if k, ok := p.MIDIKey(); ok {
			keys = append(keys, k)
		}
	}
	return keys
}
