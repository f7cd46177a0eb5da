package main

import (
	"bytes"
	"fmt"
	"image/png"
	"log"
	"path"
	"regexp"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/afero"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"vmuicon/pkg/album"
	"vmuicon/pkg/bitmap"
)

var src = flag.String("src", ".", "directory holding the icons to convert")
var dst = flag.String("dst", "out", "output directory")
var format = flag.String("format", "h", "output format: h, bin or png")
var device = flag.Bool("device", false, "write rows in VMU LCD order instead of editor order")
var invert = flag.Bool("invert", false, "invert pixels of image sources")
var threshold = flag.Uint8("threshold", 128, "luminance below which a pixel is on")
var debug = flag.Bool("debug", false, "set debug")

var identifier = regexp.MustCompile(`[^A-Za-z0-9_]`)

func main() {
	flag.Parse()

	logger, _ := zap.NewDevelopment()
	if !*debug {
		logger = logger.WithOptions(zap.IncreaseLevel(zap.WarnLevel))
	}

	srcFs, err := album.NewFs(*src)
	if err != nil {
		log.Fatal(err)
	}

	osFs := afero.NewOsFs()
	if err := osFs.MkdirAll(*dst, 0755); err != nil {
		log.Fatal(err)
	}
	dstFs := afero.NewBasePathFs(osFs, *dst)

	lib := album.NewLibrary(srcFs, logger, album.WithEncode(
		bitmap.WithThreshold(*threshold),
		bitmap.WithInvert(*invert),
	))

	names, err := lib.List()
	if err != nil {
		log.Fatal(err)
	}

	bar := progressbar.Default(int64(len(names)), "converting")
	var failed int
	for _, name := range names {
		if err := convert(lib, dstFs, name); err != nil {
			logger.With(zap.String("name", name), zap.Error(err)).Warn("convert failed")
			failed++
		}
		_ = bar.Add(1)
	}

	if failed > 0 {
		log.Fatalf("%d of %d icons failed", failed, len(names))
	}
}

func convert(lib *album.Library, fs afero.Fs, name string) error {
	icon, err := lib.Load(name)
	if err != nil {
		return err
	}
	if *device {
		icon = icon.Flip()
	}

	base := strings.TrimSuffix(name, path.Ext(name))

	var out []byte
	switch *format {
	case "h":
		out = []byte(bitmap.FormatCArray(identifier.ReplaceAllString(base, "_"), icon))
	case "bin":
		out = icon[:]
	case "png":
		var buf bytes.Buffer
		if err := png.Encode(&buf, bitmap.Decode(icon)); err != nil {
			return err
		}
		out = buf.Bytes()
	default:
		return fmt.Errorf("unknown format %q", *format)
	}

	return afero.WriteFile(fs, base+"."+*format, out, 0644)
}
