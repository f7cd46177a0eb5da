package mixer

import "vmuicon/pkg/bitmap"

type Option func(d *Drawer)

func WithEffect(e ...Effect) Option {
	return func(d *Drawer) {
		d.effs = append(d.effs, e...)
	}
}

func WithEncode(opts ...bitmap.EncodeOption) Option {
	return func(d *Drawer) {
		d.enc = append(d.enc, opts...)
	}
}
