package bitmap

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

const defaultThreshold = 128

type EncodeOption func(e *encoder)

// WithThreshold sets the luminance below which a pixel is on.
func WithThreshold(t uint8) EncodeOption {
	return func(e *encoder) {
		e.threshold = t
	}
}

func WithInvert(invert bool) EncodeOption {
	return func(e *encoder) {
		e.invert = invert
	}
}

type encoder struct {
	threshold uint8
	invert    bool
}

func newEncoder(opts []EncodeOption) *encoder {
	e := &encoder{threshold: defaultThreshold}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// EncodeKey names the settings opts resolve to, e.g. "t128" or "t96i".
// Options with equal keys encode any image to the same icon.
func EncodeKey(opts ...EncodeOption) string {
	e := newEncoder(opts)
	key := fmt.Sprintf("t%d", e.threshold)
	if e.invert {
		key += "i"
	}
	return key
}

// Encode packs src into an icon in the editor row order. Images of another
// size are scaled to cover 48x32 and cropped around the center.
func Encode(src image.Image, opts ...EncodeOption) Icon {
	e := newEncoder(opts)

	if s := src.Bounds().Size(); s.X != Width || s.Y != Height {
		src = imaging.Fill(src, Width, Height, imaging.Center, imaging.Lanczos)
	}

	var icon Icon
	b := src.Bounds()
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			on := isOn(src.At(b.Min.X+x, b.Min.Y+y), e.threshold)
			icon.SetPixel(x, y, on != e.invert)
		}
	}

	return icon
}
