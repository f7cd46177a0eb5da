package mixer

import (
	"image"
	"image/color"
	"image/draw"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// EffectText prints text centered on the canvas with the 7x13 basic font.
// Lines are split on "\n"; the LCD fits two lines of six characters.
func EffectText(text string) Effect {
	return &label{
		text: text,
		face: basicfont.Face7x13,
	}
}

type label struct {
	text string
	face *basicfont.Face
}

func (e *label) Name() string {
	return "text"
}

func (e *label) Process(img image.Image) (image.Image, error) {
	b := img.Bounds()
	dst := image.NewNRGBA(b)
	draw.Draw(dst, b, img, b.Min, draw.Src)

	lines := strings.Split(e.text, "\n")
	lineHeight := e.face.Height
	if len(lines)*lineHeight > b.Dy() {
		return nil, errors.Errorf("%d lines do not fit in %dpx", len(lines), b.Dy())
	}

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.Black),
		Face: e.face,
	}

	top := b.Min.Y + (b.Dy()-len(lines)*lineHeight)/2
	for i, line := range lines {
		width := d.MeasureString(line).Ceil()
		d.Dot = fixed.P(
			b.Min.X+(b.Dx()-width)/2,
			top+i*lineHeight+e.face.Ascent,
		)
		d.DrawString(line)
	}

	return dst, nil
}
