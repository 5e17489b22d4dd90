package ebitenui

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/sightread/sightread"
	"github.com/sightread/sightread/trainer"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Canvas draws the screens on an ebiten image. Text is drawn with the
// 7x13 bitmap font scaled to the requested pixel size.
type Canvas struct {
	dst    *ebiten.Image
	layout trainer.LayoutConfig
	face   font.Face
}

const stemLength = 3.5 // in line spacings

func NewCanvas(layout trainer.LayoutConfig) *Canvas {
	return &Canvas{layout: layout, face: basicfont.Face7x13}
}

func (c *Canvas) Line(x0, y0, x1, y1 float64, col color.Color) {
	vector.StrokeLine(c.dst, float32(x0), float32(y0), float32(x1), float32(y1), 1, col, false)
}

func (c *Canvas) Rect(r image.Rectangle, col color.Color) {
	vector.DrawFilledRect(c.dst, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), col, false)
}

func (c *Canvas) Text(s string, x, y float64, size int, anchor trainer.Anchor, col color.Color) {
	if s == "" {
		return
	}
	scale := float64(size) / float64(c.face.Metrics().Height.Ceil())
	w := float64(text.BoundString(c.face, s).Dx())
	left, top := TextOrigin(w*scale, float64(size), x, y, anchor)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(left, top+float64(c.face.Metrics().Ascent.Ceil())*scale)
	op.ColorScale.ScaleWithColor(col)
	text.DrawWithOptions(c.dst, s, c.face, op)
}

// TextOrigin returns the top left corner of a w x h text box anchored at
// x, y.
func TextOrigin(w, h, x, y float64, anchor trainer.Anchor) (left, top float64) {
	switch anchor {
	case trainer.AnchorTopLeft:
		return x, y
	case trainer.AnchorLeft:
		return x, y - h/2
	}
	return x - w/2, y - h/2
}

func (c *Canvas) Clef(clef sightread.Clef, x, y float64) {
	ink := c.layout.Palette.Ink
	s := c.layout.LineSpacing
	if clef == sightread.Bass {
		c.Text("F", x-s/2, y-s, int(3*s), trainer.AnchorCenter, ink)
		vector.DrawFilledCircle(c.dst, float32(x+s), float32(y-s*1.5), 1.5, ink, true)
		vector.DrawFilledCircle(c.dst, float32(x+s), float32(y-s*0.5), 1.5, ink, true)
		return
	}
	c.Text("G", x, y, int(5*s), trainer.AnchorCenter, ink)
}

func (c *Canvas) Glyph(g trainer.Glyph) {
	s := c.layout.LineSpacing
	r := float32(s / 2)
	x, y := float32(g.X), float32(g.Y)
	for _, ly := range g.Ledgers {
		c.Line(g.X-s, ly, g.X+s, ly, c.layout.Palette.Ink)
	}
	if g.Rest {
		c.rest(g)
		return
	}
	if g.Sharp {
		c.Text("#", g.X-1.6*s, g.Y, int(1.3*s), trainer.AnchorCenter, g.Color)
	}
	base := baseDuration(g.Duration)
	if base >= 2 {
		vector.StrokeCircle(c.dst, x, y, r-0.5, 1.5, g.Color, true)
	} else {
		vector.DrawFilledCircle(c.dst, x, y, r, g.Color, true)
	}
	if base != g.Duration {
		vector.DrawFilledCircle(c.dst, x+r+4, y-2, 1.5, g.Color, true)
	}
	if base >= 4 {
		return
	}
	stemX, dir := g.X+s/2, -1.0
	if g.Flip {
		stemX, dir = g.X-s/2, 1.0
	}
	end := g.Y + dir*stemLength*s
	c.Line(stemX, g.Y, stemX, end, g.Color)
	for i := 0; i < Flags(base); i++ {
		fy := end - dir*float64(i)*s*0.7
		c.Line(stemX, fy, stemX+s*0.8, fy-dir*s, g.Color)
	}
}

func (c *Canvas) rest(g trainer.Glyph) {
	s := c.layout.LineSpacing
	col := g.Color
	base := baseDuration(g.Duration)
	switch {
	case base >= 4:
		// semibreve rests hang below the second line from the top
		c.Rect(image.Rect(int(g.X-s/2), int(g.Y-s), int(g.X+s/2), int(g.Y-s/2)), col)
	case base >= 2:
		c.Rect(image.Rect(int(g.X-s/2), int(g.Y-s/2), int(g.X+s/2), int(g.Y)), col)
	case base >= 1:
		c.Line(g.X-s/3, g.Y-1.5*s, g.X+s/3, g.Y-0.7*s, col)
		c.Line(g.X+s/3, g.Y-0.7*s, g.X-s/3, g.Y+0.2*s, col)
		c.Line(g.X-s/3, g.Y+0.2*s, g.X+s/3, g.Y+0.9*s, col)
	default:
		c.Line(g.X+s/3, g.Y-s, g.X-s/4, g.Y+s, col)
		for i := 0; i < Flags(base); i++ {
			fy := g.Y - s + float64(i)*s*0.8
			vector.DrawFilledCircle(c.dst, float32(g.X-s/3), float32(fy), 1.5, col, true)
			c.Line(g.X-s/3, fy, g.X+s/3, fy-1, col)
		}
	}
	if base != g.Duration {
		vector.DrawFilledCircle(c.dst, float32(g.X+s), float32(g.Y-s/2), 1.5, col, true)
	}
}

// baseDuration strips the dot of a dotted duration: 3 gives 2, 0.75 gives
// 0.5.
func baseDuration(d float64) float64 {
	b := math.Exp2(math.Floor(math.Log2(d)))
	if sightread.FloatEq(d, b) {
		return d
	}
	return b
}

// Flags returns how many flags the stem of a note with the undotted
// duration base has: one for a quaver, two for a semiquaver.
func Flags(base float64) int {
	switch {
	case base >= 1:
		return 0
	case base >= 0.5:
		return 1
	}
	return 2
}
