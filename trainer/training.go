package trainer

import (
	"image"
	"strconv"
	"strings"

	"github.com/sightread/sightread"
)

// Training plays a score at an adjustable pace and colours the expected
// pitches by whether they are held. Time always runs; nothing is judged.
type Training struct {
	env      *Env
	engine   *Engine
	stage    *Stage
	held     sightread.PitchSet
	playable sightread.PitchSet

	paused    bool
	rewinding bool
	pace      int
	quit      bool

	playButton   *Button
	rewindButton *Button
}

// Paces are the selectable playback rates of the training mode.
var Paces = []float64{0.25, 0.33, 0.5, 0.75, 1.0, 1.25, 1.5, 2.0}

const defaultPace = 4

func NewTraining(env *Env, score *sightread.Score) *Training {
	t := &Training{
		env:      env,
		held:     sightread.PitchSet{},
		playable: env.Input.PlayablePitches(),
		pace:     defaultPace,
		stage:    NewStage(env.Layout.Palette),
	}
	t.engine = NewEngine(score, env.Layout, env.Trigger, Hooks{NoteStop: t.noteStop})
	t.engine.SetRate(Paces[t.pace])
	t.stage.Add("Exit", buttonRow(env.Layout, 0, 5), t.Exit)
	t.playButton = t.stage.Add("Pause", buttonRow(env.Layout, 1, 5), t.TogglePause)
	t.stage.Add("Slower", buttonRow(env.Layout, 2, 5), func() { t.AdjustPace(-1) })
	t.stage.Add("Faster", buttonRow(env.Layout, 3, 5), func() { t.AdjustPace(1) })
	t.rewindButton = t.stage.Add("Rewind", buttonRow(env.Layout, 4, 5), t.ToggleRewind)
	return t
}

func (t *Training) Engine() *Engine { return t.engine }
func (t *Training) Paused() bool    { return t.paused }

// Pace returns the selected playback rate.
func (t *Training) Pace() float64 { return Paces[t.pace] }

// PaceLabel returns the text shown for the selected pace, e.g. "1.0x Pace".
func (t *Training) PaceLabel() string {
	s := strconv.FormatFloat(t.Pace(), 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s + "x Pace"
}

func (t *Training) rate() float64 {
	if t.rewinding {
		return -t.Pace()
	}
	return t.Pace()
}

func (t *Training) TogglePause() {
	if !t.paused {
		t.paused = true
		t.engine.Pause()
		t.playButton.Text = "Play"
		return
	}
	t.paused = false
	t.env.Trigger.StopAll()
	t.engine.SetRate(t.rate())
	t.playButton.Text = "Pause"
}

// AdjustPace moves the selected pace up or down the table, clamping at its
// ends.
func (t *Training) AdjustPace(delta int) {
	t.pace = min(max(t.pace+delta, 0), len(Paces)-1)
	if !t.paused {
		t.engine.SetRate(t.rate())
	}
}

// ToggleRewind switches between playing backwards and forwards.
func (t *Training) ToggleRewind() {
	t.rewinding = !t.rewinding
	t.rewindButton.Selected = t.rewinding
	if !t.paused {
		t.engine.SetRate(t.rate())
	}
}

// Exit leaves the session and silences everything it started.
func (t *Training) Exit() {
	t.quit = true
	t.env.Trigger.StopAll()
}

func (t *Training) noteStop(pitches []sightread.Pitch, _ sightread.Clef) {
	t.held.Remove(pitches...)
}

func (t *Training) AdvanceFrame(fps int) {
	if !t.paused {
		t.engine.AdvanceFrame(fps)
	}
	t.env.Input.Poll()
	for p, on := range t.env.Input.Updates() {
		switch {
		case on:
			t.held.Add(p)
			if t.paused {
				t.env.Trigger.Play(p)
			}
		case t.held.Has(p):
			t.held.Remove(p)
			if t.paused {
				t.env.Trigger.Stop(p)
			}
		}
	}
	if t.HasQuit() {
		return
	}
	r := Reconcile(t.engine.Expected(), t.held, t.playable)
	t.engine.Highlight(r.Correct, t.env.Layout.Palette.Correct)
	t.engine.Highlight(r.Missing, t.env.Layout.Palette.Missing)
}

func (t *Training) Draw(c Canvas) {
	p := t.env.Layout.Palette
	c.Rect(image.Rect(0, 0, t.env.Layout.Width, t.env.Layout.Height), p.Background)
	t.engine.Draw(c)
	t.stage.Draw(c)
	c.Text(t.PaceLabel(), float64(t.env.Layout.Width)-50, 12, 20, AnchorCenter, p.Ink)
}

func (t *Training) HandleClick(pt image.Point) {
	t.stage.HandleClick(pt)
}

func (t *Training) HasQuit() bool {
	return t.quit || t.engine.Terminal()
}
