package trainer

import (
	"image"
)

// ReportScreen shows the grade of a completed judged session.
type ReportScreen struct {
	env    *Env
	report Report
	lines  []string
	stage  *Stage
	quit   bool
}

func NewReportScreen(env *Env, report Report) *ReportScreen {
	r := &ReportScreen{env: env, report: report, lines: report.Lines(), stage: NewStage(env.Layout.Palette)}
	r.stage.Add("Exit", buttonRow(env.Layout, 0, 5), func() { r.quit = true })
	return r
}

func (r *ReportScreen) Report() Report { return r.report }

func (r *ReportScreen) AdvanceFrame(int) {
	r.env.Input.Poll()
	r.env.Input.Updates()
}

func (r *ReportScreen) Draw(c Canvas) {
	cfg := r.env.Layout
	c.Rect(image.Rect(0, 0, cfg.Width, cfg.Height), cfg.Palette.Background)
	for i, line := range r.lines {
		c.Text(line, 20, float64(20+30*i), 20, AnchorTopLeft, cfg.Palette.Ink)
	}
	c.Text(r.report.Letter, float64(cfg.Width)-60, 80, 128, AnchorCenter, cfg.Palette.Selected)
	r.stage.Draw(c)
}

func (r *ReportScreen) HandleClick(p image.Point) { r.stage.HandleClick(p) }
func (r *ReportScreen) HasQuit() bool             { return r.quit }
