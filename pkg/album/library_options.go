package album

import "vmuicon/pkg/bitmap"

type Option func(l *Library)

func WithCache(c *Cache) Option {
	return func(l *Library) {
		l.cache = c
	}
}

func WithDownloader(dl *Downloader) Option {
	return func(l *Library) {
		l.dl = dl
	}
}

// WithEncode sets how images are packed into icons.
func WithEncode(opts ...bitmap.EncodeOption) Option {
	return func(l *Library) {
		l.enc = append(l.enc, opts...)
	}
}
