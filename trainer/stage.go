package trainer

import (
	"image"
)

type (
	// Button is a clickable rectangle with a text.
	Button struct {
		Text     string
		Rect     image.Rectangle
		Selected bool
		Hidden   bool
		OnClick  func()
	}

	// Stage is a set of buttons. Clicks are dispatched to the first visible
	// button whose rectangle contains the point.
	Stage struct {
		Buttons []*Button
		Palette Palette
	}
)

func NewStage(p Palette) *Stage {
	return &Stage{Palette: p}
}

// Add adds a button and returns it, so the caller can later change its text.
func (s *Stage) Add(text string, r image.Rectangle, onClick func()) *Button {
	b := &Button{Text: text, Rect: r, OnClick: onClick}
	s.Buttons = append(s.Buttons, b)
	return b
}

// HandleClick returns true if a button was clicked.
func (s *Stage) HandleClick(p image.Point) bool {
	for _, b := range s.Buttons {
		if b.Hidden || !p.In(b.Rect) {
			continue
		}
		if b.OnClick != nil {
			b.OnClick()
		}
		return true
	}
	return false
}

func (s *Stage) Draw(c Canvas) {
	for _, b := range s.Buttons {
		if b.Hidden {
			continue
		}
		ink := s.Palette.Ink
		if b.Selected {
			ink = s.Palette.Selected
		}
		r := b.Rect
		x0, y0, x1, y1 := float64(r.Min.X), float64(r.Min.Y), float64(r.Max.X), float64(r.Max.Y)
		c.Line(x0, y0, x1, y0, ink)
		c.Line(x1, y0, x1, y1, ink)
		c.Line(x1, y1, x0, y1, ink)
		c.Line(x0, y1, x0, y0, ink)
		c.Text(b.Text, (x0+x1)/2, (y0+y1)/2, 20, AnchorCenter, ink)
	}
}

// buttonRow lays out n buttons of equal width in a row at the bottom of the
// screen.
func buttonRow(cfg LayoutConfig, i, n int) image.Rectangle {
	const height, margin = 30, 4
	w := (cfg.Width - margin) / n
	return image.Rect(margin+i*w, cfg.Height-height-margin, (i+1)*w, cfg.Height-margin)
}

// buttonColumn lays out the i:th of a column of wide buttons starting at y.
func buttonColumn(cfg LayoutConfig, i, y int) image.Rectangle {
	const height, gap = 32, 8
	top := y + i*(height+gap)
	return image.Rect(cfg.Width/6, top, cfg.Width*5/6, top+height)
}

func rectXYWH(x, y, w, h int) image.Rectangle {
	return image.Rect(x, y, x+w, y+h)
}
