// Package album stores icons on disk and plays them on a VMU.
package album

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/inhies/go-bytesize"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"

	"vmuicon/pkg/bitmap"
)

var ErrUnsupported = errors.New("unsupported icon format")

var (
	headerExts = []string{".h", ".c"}
	rawExts    = []string{".bin", ".raw"}
	imageExts  = []string{".png", ".gif", ".jpg", ".jpeg", ".bmp"}
)

func Supported(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	return lo.Contains(headerExts, ext) || lo.Contains(rawExts, ext) || lo.Contains(imageExts, ext)
}

func NewLibrary(fs afero.Fs, logger *zap.Logger, opts ...Option) *Library {
	l := &Library{
		fs:  fs,
		log: logger,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Library loads icons by file name. C headers and raw dumps are taken as
// they are; images are packed with the library's encode options.
type Library struct {
	fs    afero.Fs
	log   *zap.Logger
	cache *Cache
	dl    *Downloader
	enc   []bitmap.EncodeOption
}

// List returns the supported files in the library root, sorted by name.
func (l *Library) List() ([]string, error) {
	infos, err := afero.ReadDir(l.fs, ".")
	if err != nil {
		return nil, errors.WithStack(err)
	}

	files := lo.Filter(infos, func(fi os.FileInfo, _ int) bool {
		return !fi.IsDir() && Supported(fi.Name())
	})
	names := lo.Map(files, func(fi os.FileInfo, _ int) string {
		return fi.Name()
	})
	sort.Strings(names)
	return names, nil
}

func (l *Library) Load(name string) (bitmap.Icon, error) {
	fi, err := l.fs.Stat(name)
	if err != nil {
		return bitmap.Icon{}, errors.WithStack(err)
	}

	log := l.log.With(zap.String("name", name))
	variant := l.variant(name)

	if hit, icon, err := l.cache.LoadIcon(name, variant, fi.ModTime()); err != nil {
		log.With(zap.Error(err)).Info("load cache failed")
	} else if hit {
		log.Debug("cache hit")
		return icon, nil
	}

	bs, err := afero.ReadFile(l.fs, name)
	if err != nil {
		return bitmap.Icon{}, errors.WithStack(err)
	}

	log.With(zap.String("size", bytesize.New(float64(len(bs))).String())).Debug("loaded")

	icon, err := l.Decode(name, bs)
	if err != nil {
		return icon, errors.Wrap(err, name)
	}

	if err := l.cache.SaveIcon(name, variant, fi.ModTime(), icon); err != nil {
		log.With(zap.Error(err)).Info("save cache failed")
	}

	return icon, nil
}

// variant is the cache variant of name. Only images depend on the encode
// options.
func (l *Library) variant(name string) string {
	if lo.Contains(imageExts, strings.ToLower(path.Ext(name))) {
		return bitmap.EncodeKey(l.enc...)
	}
	return ""
}

// Decode converts file contents to an icon, picking the format from the
// extension of name.
func (l *Library) Decode(name string, bs []byte) (bitmap.Icon, error) {
	ext := strings.ToLower(path.Ext(name))
	switch {
	case lo.Contains(headerExts, ext):
		return bitmap.ParseCArray(string(bs))
	case lo.Contains(rawExts, ext):
		return bitmap.FromBytes(bs)
	case lo.Contains(imageExts, ext):
		return l.DecodeImage(bs)
	}
	return bitmap.Icon{}, errors.Wrap(ErrUnsupported, ext)
}

func (l *Library) DecodeImage(bs []byte) (bitmap.Icon, error) {
	img, _, err := image.Decode(bytes.NewReader(bs))
	if err != nil {
		return bitmap.Icon{}, errors.Wrap(err, "image decode failed")
	}
	return bitmap.Encode(img, l.enc...), nil
}

// Fetch downloads an icon. The format is taken from the URL path.
func (l *Library) Fetch(url string) (bitmap.Icon, error) {
	if l.dl == nil {
		return bitmap.Icon{}, errors.New("no downloader configured")
	}

	bs, err := l.dl.Get(url)
	if err != nil {
		return bitmap.Icon{}, err
	}

	name := url
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}
	if !Supported(name) {
		return l.DecodeImage(bs)
	}
	return l.Decode(name, bs)
}
