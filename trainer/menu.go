package trainer

import (
	"image"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Menu is the root screen.
type Menu struct {
	env     *Env
	stage   *Stage
	title   string
	fps     int
	pending Mode
	quit    bool
}

func NewMenu(env *Env, title string, fps int) *Menu {
	m := &Menu{
		env:   env,
		stage: NewStage(env.Layout.Palette),
		title: cases.Title(language.English).String(title),
		fps:   fps,
	}
	m.stage.Add("Training", buttonColumn(env.Layout, 0, 50), func() { m.pending = NewSelection(env, SelectTraining, fps) })
	m.stage.Add("Play", buttonColumn(env.Layout, 1, 50), func() { m.pending = NewSelection(env, SelectGame, fps) })
	m.stage.Add("Piano", buttonColumn(env.Layout, 2, 50), func() { m.pending = NewPiano(env) })
	m.stage.Add("Quit", buttonColumn(env.Layout, 3, 50), func() { m.quit = true })
	return m
}

func (m *Menu) Spawn() Mode {
	ret := m.pending
	m.pending = nil
	return ret
}

func (m *Menu) AdvanceFrame(int) {
	// keep the input drained so presses made here do not leak into a session
	m.env.Input.Poll()
	m.env.Input.Updates()
}

func (m *Menu) Draw(c Canvas) {
	cfg := m.env.Layout
	c.Rect(image.Rect(0, 0, cfg.Width, cfg.Height), cfg.Palette.Background)
	c.Text(m.title, float64(cfg.Width)/2, 24, 42, AnchorCenter, cfg.Palette.Ink)
	m.stage.Draw(c)
}

func (m *Menu) HandleClick(p image.Point) { m.stage.HandleClick(p) }
func (m *Menu) HasQuit() bool             { return m.quit }
