package mixer

import (
	"image"

	"github.com/disintegration/imaging"
)

func EffectInvert() Effect {
	return invert{}
}

type invert struct{}

func (invert) Name() string {
	return "invert"
}

func (invert) Process(img image.Image) (image.Image, error) {
	return imaging.Invert(img), nil
}
