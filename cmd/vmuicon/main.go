package main

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"vmuicon/pkg/album"
	"vmuicon/pkg/bitmap"
	"vmuicon/pkg/device"
	"vmuicon/pkg/mixer"
	"vmuicon/pkg/proto"
	"vmuicon/pkg/vmu"
)

var serial = flag.String("serial", "ttyACM0", "serial name, remote addr or \"mock\"")
var port = flag.String("port", proto.DefaultAddr.String(), "VMU slot, e.g. A1")
var icon = flag.String("icon", "", "icon file (.h, .bin, .png, ...) or URL")
var text = flag.String("text", "", "text to print on the LCD")
var blank = flag.Bool("clear", false, "blank the LCD")
var invert = flag.Bool("invert", false, "invert pixels")
var threshold = flag.Uint8("threshold", 128, "luminance below which a pixel is on")
var debug = flag.Bool("debug", false, "set debug")

func main() {
	flag.Parse()
	os.Exit(run())
}

func run() int {
	logger, _ := zap.NewDevelopment()
	if !*debug {
		logger = logger.WithOptions(zap.IncreaseLevel(zap.InfoLevel))
	}
	defer func() {
		_ = logger.Sync()
	}()

	addr, err := proto.ParseAddr(*port)
	if err != nil {
		logger.With(zap.Error(err)).Error("bad port")
		return 2
	}

	ic, err := compose(logger)
	if err != nil {
		logger.With(zap.Error(err)).Error("compose icon failed")
		return 2
	}

	bus, err := device.Dial(*serial, logger)
	if err != nil {
		logger.With(zap.Error(err)).Error("open bus failed")
		return 1
	}
	defer func() {
		_ = bus.Close()
	}()

	sender := vmu.NewSender(bus, vmu.WithAddr(addr), vmu.WithLogger(logger))
	if vmu.Status(sender.SendIcon(ic)) != 0 {
		return 1
	}

	return 0
}

func compose(logger *zap.Logger) (bitmap.Icon, error) {
	enc := []bitmap.EncodeOption{bitmap.WithThreshold(*threshold)}

	var effs []mixer.Effect
	if *text != "" {
		effs = append(effs, mixer.EffectText(*text))
	}
	if *invert {
		effs = append(effs, mixer.EffectInvert())
	}
	drawer := mixer.NewDrawer(mixer.WithEffect(effs...), mixer.WithEncode(enc...))

	switch {
	case *blank:
		return bitmap.Icon{}, nil
	case *icon == "":
		if *text == "" {
			return bitmap.Icon{}, errors.New("one of --icon, --text or --clear is required")
		}
		return drawer.Canvas(nil)
	}

	var (
		ic  bitmap.Icon
		err error
	)
	if isURL(*icon) {
		lib := album.NewLibrary(nil, logger, album.WithDownloader(album.NewDownloader(logger)), album.WithEncode(enc...))
		ic, err = lib.Fetch(*icon)
	} else {
		ic, err = album.NewLibrary(afero.NewOsFs(), logger, album.WithEncode(enc...)).Load(*icon)
	}
	if err != nil {
		return ic, err
	}

	if len(effs) == 0 {
		return ic, nil
	}
	return drawer.Canvas(bitmap.Decode(ic))
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
