package trainer

import (
	"image"

	"github.com/sightread/sightread"
)

// Game is the judged mode. Time only runs while the player holds the
// expected chord; releasing it early skips to the next note and counts as an
// early note. Only the pitches the player presses sound, except for the
// expected pitches the input cannot produce, which the game plays itself.
type Game struct {
	env      *Env
	engine   *Engine
	stage    *Stage
	judge    Judge
	held     sightread.PitchSet
	playable sightread.PitchSet
	result   *SessionResult
	quit     bool
}

func NewGame(env *Env, score *sightread.Score, fps int) *Game {
	g := &Game{
		env:      env,
		held:     sightread.PitchSet{},
		playable: env.Input.PlayablePitches(),
		result:   NewResult(score, fps),
		stage:    NewStage(env.Layout.Palette),
	}
	g.engine = NewEngine(score, env.Layout, env.Trigger, Hooks{
		NoteStop:     g.noteStop,
		EarlyRelease: g.judge.Skipped,
	})
	g.engine.PlayNotes = false
	g.engine.MarkPlayed = false
	g.stage.Add("Exit", buttonRow(env.Layout, 0, 5), g.Exit)
	return g
}

func (g *Game) Engine() *Engine { return g.engine }
func (g *Game) Judge() *Judge   { return &g.judge }

// Exit abandons the session. The held pitches and the accompaniment stop.
func (g *Game) Exit() {
	g.quit = true
	g.env.Trigger.StopAll()
}

func (g *Game) noteStop(pitches []sightread.Pitch, _ sightread.Clef) {
	g.judge.NoteStopped()
	for _, p := range pitches {
		g.held.Remove(p)
		if !g.playable.Has(p) {
			g.env.Trigger.Stop(p)
		}
	}
}

func (g *Game) AdvanceFrame(fps int) {
	if g.HasQuit() {
		return
	}
	g.result.Frames++
	expected := g.engine.Expected()
	g.env.Input.Poll()
	for p, on := range g.env.Input.Updates() {
		if on {
			g.held.Add(p)
			g.env.Trigger.Play(p)
			g.judge.Press(p, expected)
			continue
		}
		g.held.Remove(p)
		g.env.Trigger.Stop(p)
	}
	r := Reconcile(expected, g.held, g.playable)
	g.engine.Highlight(r.Correct, g.env.Layout.Palette.Correct)
	g.engine.Highlight(r.Missing, g.env.Layout.Palette.Missing)
	switch g.judge.Step(r) {
	case Begin:
		g.env.Trigger.Play(r.Unplayable.Sorted()...)
	case Break:
		g.env.Trigger.Stop(r.Unplayable.Sorted()...)
		g.engine.JumpToNextNoteBoundary()
		g.engine.AdvanceFrame(fps)
	case Continue:
		g.engine.AdvanceFrame(fps)
	}
	if g.engine.Terminal() {
		g.result.Completed = true
		g.env.Trigger.StopAll()
	}
}

func (g *Game) Result() *SessionResult {
	g.result.WrongNotes = g.judge.WrongNotes
	g.result.EarlyNotes = g.judge.EarlyNotes
	g.result.SkippedBeats = g.judge.SkippedBeats
	return g.result
}

func (g *Game) Draw(c Canvas) {
	c.Rect(image.Rect(0, 0, g.env.Layout.Width, g.env.Layout.Height), g.env.Layout.Palette.Background)
	g.engine.Draw(c)
	g.stage.Draw(c)
}

func (g *Game) HandleClick(p image.Point) {
	g.stage.HandleClick(p)
}

func (g *Game) HasQuit() bool {
	return g.quit || g.engine.Terminal()
}
