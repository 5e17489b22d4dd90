package trainer

import "github.com/sightread/sightread"

type (
	// Reconciliation classifies the pitches of one frame.
	Reconciliation struct {
		Correct    sightread.PitchSet // expected and held, or expected but unplayable
		Missing    sightread.PitchSet // expected, playable and not held
		Extra      sightread.PitchSet // held but not expected
		Unplayable sightread.PitchSet // expected but outside the input's range
	}

	// JudgeState is the state of the judged mode's gate.
	JudgeState int

	// Transition tells the caller of Judge.Step what to do with the frame.
	Transition int

	// Judge gates the passing of time in the judged mode. Time stands still
	// in Waiting until the expected chord is held without any extra pitches;
	// then it runs in Playing until a held pitch is released early.
	Judge struct {
		State        JudgeState
		WrongNotes   int
		EarlyNotes   int
		SkippedBeats float64
	}
)

const (
	Waiting JudgeState = iota
	Playing
)

const (
	// Hold: keep waiting, do not advance.
	Hold Transition = iota
	// Begin: the chord is complete. Start the unplayable pitches; time starts
	// on the next frame.
	Begin
	// Continue: advance the frame.
	Continue
	// Break: a pitch was released early. Stop the unplayable pitches, jump
	// to the next note boundary and advance.
	Break
)

func (s JudgeState) String() string {
	if s == Playing {
		return "playing"
	}
	return "waiting"
}

func (t Transition) String() string {
	switch t {
	case Begin:
		return "begin"
	case Continue:
		return "continue"
	case Break:
		return "break"
	}
	return "hold"
}

// Reconcile compares the expected pitches with the held ones. Expected
// pitches the input cannot produce count as correct. Rests are ignored.
func Reconcile(expected, held, playable sightread.PitchSet) Reconciliation {
	r := Reconciliation{
		Correct:    sightread.PitchSet{},
		Missing:    sightread.PitchSet{},
		Extra:      sightread.PitchSet{},
		Unplayable: sightread.PitchSet{},
	}
	for p := range expected {
		switch {
		case p.IsRest():
		case !playable.Has(p):
			r.Correct.Add(p)
			r.Unplayable.Add(p)
		case held.Has(p):
			r.Correct.Add(p)
		default:
			r.Missing.Add(p)
		}
	}
	for p := range held {
		if !expected.Has(p) {
			r.Extra.Add(p)
		}
	}
	return r
}

// Satisfied is true when nothing is missing and nothing extra is held.
func (r Reconciliation) Satisfied() bool {
	return len(r.Missing) == 0 && len(r.Extra) == 0
}

// Press records a press event and reports whether it was a wrong note.
func (j *Judge) Press(p sightread.Pitch, expected sightread.PitchSet) bool {
	if expected.Has(p) {
		return false
	}
	j.WrongNotes++
	return true
}

// Step runs the gate for one frame.
func (j *Judge) Step(r Reconciliation) Transition {
	switch j.State {
	case Waiting:
		if r.Satisfied() {
			j.State = Playing
			return Begin
		}
		return Hold
	default:
		if len(r.Missing) > 0 {
			j.State = Waiting
			j.EarlyNotes++
			return Break
		}
		return Continue
	}
}

// NoteStopped is called whenever a note ends; the next note has to be
// pressed again before time runs.
func (j *Judge) NoteStopped() {
	j.State = Waiting
}

// Skipped records the crotchets skipped after an early release.
func (j *Judge) Skipped(beats float64) {
	j.SkippedBeats += beats
}
