package mixer

import "image"

// Effect transforms the canvas before it is packed into an icon.
type Effect interface {
	Name() string
	Process(img image.Image) (image.Image, error)
}
