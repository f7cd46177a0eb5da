package mixer

import (
	"image"
	"image/draw"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"vmuicon/pkg/bitmap"
)

func NewDrawer(opts ...Option) *Drawer {
	d := &Drawer{}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Drawer composes a canvas through its effects, in order, and packs the
// result into an icon.
type Drawer struct {
	effs []Effect
	enc  []bitmap.EncodeOption
}

func (d *Drawer) Effects() []string {
	return lo.Map(d.effs, func(e Effect, _ int) string {
		return e.Name()
	})
}

// Canvas runs img through the effects. A nil img starts from a blank (all
// white) LCD sized canvas.
func (d *Drawer) Canvas(img image.Image) (bitmap.Icon, error) {
	if img == nil {
		img = Blank()
	}

	for _, eff := range d.effs {
		out, err := eff.Process(img)
		if err != nil {
			return bitmap.Icon{}, errors.Wrapf(err, "effect %s", eff.Name())
		}
		img = out
	}

	return bitmap.Encode(img, d.enc...), nil
}

func Blank() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, bitmap.Width, bitmap.Height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	return img
}
