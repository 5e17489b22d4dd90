package trainer

import (
	"image"
	"strings"

	"github.com/sightread/sightread"
)

// Piano sounds whatever the player presses, without a score.
type Piano struct {
	env   *Env
	stage *Stage
	held  sightread.PitchSet
	quit  bool
}

func NewPiano(env *Env) *Piano {
	p := &Piano{env: env, held: sightread.PitchSet{}, stage: NewStage(env.Layout.Palette)}
	p.stage.Add("Exit", buttonRow(env.Layout, 0, 5), func() {
		p.quit = true
		env.Trigger.StopAll()
	})
	return p
}

// Held returns the pitches held at the moment.
func (p *Piano) Held() sightread.PitchSet { return p.held }

func (p *Piano) AdvanceFrame(int) {
	p.env.Input.Poll()
	for pitch, on := range p.env.Input.Updates() {
		if on {
			p.held.Add(pitch)
			p.env.Trigger.Play(pitch)
			continue
		}
		p.held.Remove(pitch)
		p.env.Trigger.Stop(pitch)
	}
}

func (p *Piano) Draw(c Canvas) {
	cfg := p.env.Layout
	c.Rect(image.Rect(0, 0, cfg.Width, cfg.Height), cfg.Palette.Background)
	text := "-"
	if p.held.Len() > 0 {
		var names []string
		for _, pitch := range p.held.Sorted() {
			names = append(names, string(pitch))
		}
		text = strings.Join(names, " ")
	}
	c.Text("Playing", float64(cfg.Width)/2, 40, 20, AnchorCenter, cfg.Palette.Ink)
	c.Text(text, float64(cfg.Width)/2, float64(cfg.Height)/2, 42, AnchorCenter, cfg.Palette.Playing)
	p.stage.Draw(c)
}

func (p *Piano) HandleClick(pt image.Point) {
	p.stage.HandleClick(pt)
}

func (p *Piano) HasQuit() bool { return p.quit }
