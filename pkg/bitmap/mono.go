package bitmap

import (
	"image"
	"image/color"
)

// Decode wraps a copy of icon as an image for previews and PNG export.
func Decode(icon Icon) *Mono {
	m := NewMono()
	m.icon = icon
	return m
}

func NewMono() *Mono {
	return &Mono{
		bounds:     image.Rect(0, 0, Width, Height),
		colorModel: monoModel{},
	}
}

// Mono is an LCD sized 1bpp image backed by an Icon. It implements the
// draw.Image interface. On pixels are black, off pixels white, matching the
// VMU screen.
type Mono struct {
	icon       Icon
	bounds     image.Rectangle
	colorModel color.Model
}

// Icon returns the pixels in the editor layout.
func (m *Mono) Icon() Icon {
	return m.icon
}

// Bounds implements the image.Image (and draw.Image) interface.
func (m *Mono) Bounds() image.Rectangle {
	return m.bounds
}

// ColorModel implements the image.Image (and draw.Image) interface.
func (m *Mono) ColorModel() color.Model {
	return m.colorModel
}

// At implements the image.Image (and draw.Image) interface.
func (m *Mono) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(m.bounds) {
		return Off
	}
	return lcd(m.icon.Pixel(x, y))
}

// Set implements the draw.Image interface.
func (m *Mono) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}).In(m.bounds) {
		return
	}
	m.icon.SetPixel(x, y, bool(m.colorModel.Convert(c).(lcd)))
}

var (
	On  color.Color = lcd(true)
	Off color.Color = lcd(false)
)

// lcd implements the color.Color interface. true is a dark pixel.
type lcd bool

// RGBA implements the color.Color interface.
func (c lcd) RGBA() (r, g, b, a uint32) {
	if c {
		return 0, 0, 0, 0xFFFF
	}
	return 0xFFFF, 0xFFFF, 0xFFFF, 0xFFFF
}

type monoModel struct{}

func (monoModel) Convert(c color.Color) color.Color {
	if v, ok := c.(lcd); ok {
		return v
	}
	return lcd(isOn(c, defaultThreshold))
}

// isOn reports whether c is dark enough to light an LCD pixel. Fully
// transparent pixels are always off.
func isOn(c color.Color, threshold uint8) bool {
	_, _, _, a := c.RGBA()
	if a == 0 {
		return false
	}
	return color.GrayModel.Convert(c).(color.Gray).Y < threshold
}
