// Package ebitenui runs the trainer in an ebitengine window: it drives the
// navigator once per tick, dispatches mouse and touch clicks and draws the
// screens.
package ebitenui

import (
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sightread/sightread/trainer"
)

type Host struct {
	nav     *trainer.Navigator
	env     *trainer.Env
	canvas  *Canvas
	actions map[ebiten.Key]string
	tps     int

	// QuitPressed, if set, is polled every frame; returning true closes the
	// program, e.g. from a hardware button.
	QuitPressed func() bool

	fullscreen bool
	touchIDs   []ebiten.TouchID
}

func NewHost(nav *trainer.Navigator, env *trainer.Env, km Keymap, tps int) *Host {
	return &Host{
		nav:     nav,
		env:     env,
		canvas:  NewCanvas(env.Layout),
		actions: km.Actions,
		tps:     tps,
	}
}

func (h *Host) Update() error {
	if ebiten.IsWindowBeingClosed() || (h.QuitPressed != nil && h.QuitPressed()) {
		return ebiten.Termination
	}
	for key, action := range h.actions {
		if !inpututil.IsKeyJustPressed(key) {
			continue
		}
		switch action {
		case QuitAction:
			return ebiten.Termination
		case FullscreenAction:
			h.fullscreen = !h.fullscreen
			ebiten.SetFullscreen(h.fullscreen)
		}
	}
	var clicks []image.Point
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		clicks = append(clicks, image.Pt(ebiten.CursorPosition()))
	}
	h.touchIDs = inpututil.AppendJustPressedTouchIDs(h.touchIDs[:0])
	for _, id := range h.touchIDs {
		clicks = append(clicks, image.Pt(ebiten.TouchPosition(id)))
	}
	if h.Step(clicks...) {
		return ebiten.Termination
	}
	return nil
}

// Step runs one frame: the active mode advances (polling its input), then
// the clicks are dispatched. It reports whether the navigator is done.
func (h *Host) Step(clicks ...image.Point) bool {
	h.nav.AdvanceFrame(h.tps)
	for _, p := range clicks {
		h.nav.HandleClick(p)
	}
	h.env.Alerts.Advance(time.Second / time.Duration(h.tps))
	return h.nav.Done()
}

func (h *Host) Draw(screen *ebiten.Image) {
	h.canvas.dst = screen
	h.nav.Draw(h.canvas)
	h.env.Alerts.Draw(h.canvas, h.env.Layout)
}

func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	return h.env.Layout.Width, h.env.Layout.Height
}

// Run opens the window and blocks until the navigator is done or the user
// quits.
func Run(h *Host, prefs trainer.WindowPreferences) error {
	scale := max(prefs.Scale, 1)
	ebiten.SetWindowSize(h.env.Layout.Width*scale, h.env.Layout.Height*scale)
	ebiten.SetWindowTitle("Sightread")
	ebiten.SetTPS(h.tps)
	h.fullscreen = prefs.Fullscreen
	ebiten.SetFullscreen(h.fullscreen)
	return ebiten.RunGame(h)
}
