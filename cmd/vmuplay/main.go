package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"vmuicon/pkg/album"
	"vmuicon/pkg/bitmap"
	"vmuicon/pkg/device"
	"vmuicon/pkg/proto"
	"vmuicon/pkg/vmu"
)

var serial = flag.String("serial", "ttyACM0", "serial name, remote addr or \"mock\"")
var port = flag.String("port", proto.DefaultAddr.String(), "VMU slot, e.g. A1")
var dir = flag.String("dir", ".", "icon directory")
var cacheDir = flag.String("cache", "", "converted icon cache directory")
var interval = flag.String("interval", "30s", "draw interval")
var shuffle = flag.Bool("shuffle", false, "shuffle the playlist")
var invert = flag.Bool("invert", false, "invert pixels of image sources")
var debug = flag.Bool("debug", false, "set debug")
var tgToken = flag.String("tg-token", "", "telegram bot token")

func main() {
	flag.Parse()

	logger, _ := zap.NewDevelopment()
	if !*debug {
		logger = logger.WithOptions(zap.IncreaseLevel(zap.InfoLevel))
	}

	addr, err := proto.ParseAddr(*port)
	if err != nil {
		log.Fatal(err)
	}

	fs, err := album.NewFs(*dir)
	if err != nil {
		log.Fatal(err)
	}

	opts := []album.Option{album.WithEncode(bitmap.WithInvert(*invert))}
	if *cacheDir != "" {
		cfs, err := album.NewFs(*cacheDir)
		if err != nil {
			log.Fatal(err)
		}
		opts = append(opts, album.WithCache(album.NewCache(cfs)))
	}
	lib := album.NewLibrary(fs, logger, opts...)

	names, err := lib.List()
	if err != nil {
		log.Fatal(err)
	}
	if len(names) == 0 {
		log.Fatalf("no icons in %s", *dir)
	}

	bus, err := device.Dial(*serial, logger)
	if err != nil {
		log.Fatal(err)
	}

	history := album.NewHistory()
	sender := vmu.NewSender(bus, vmu.WithAddr(addr), vmu.WithLogger(logger))
	p := album.NewPlayer(lib, sender, history, logger)
	p.SetPlaylist(names, *shuffle)

	if d, err := time.ParseDuration(*interval); err != nil {
		log.Fatal(err)
	} else {
		p.SetChangeWait(d)
	}

	var bot *album.Bot
	if *tgToken != "" {
		var botErr error
		bot, botErr = album.NewBot(*tgToken, p, lib, history)
		if botErr != nil {
			log.Fatal(botErr)
		}
		bot.Start()
	}

	shutdown := make(chan struct{})
	exited := make(chan struct{})

	go func() {
		timer := time.NewTimer(time.Nanosecond)

		defer func() {
			timer.Stop()
			if bot != nil {
				bot.Stop()
			}
			if err := bus.Close(); err != nil {
				logger.With(zap.Error(err)).Info("close bus failed")
			}
			exited <- struct{}{}
		}()

		wakeupChan := p.WakeupChan()

		for {
			select {
			case <-shutdown:
				return
			case <-wakeupChan:
				timer.Reset(time.Millisecond)
				continue
			case <-timer.C:
				if p.Paused() {
					logger.Info("playback paused, skip...")
					continue
				}
				if err := p.Next(); err != nil {
					logger.With(zap.Error(err)).Info("drawing failed")
					timer.Reset(p.ErrorWait())
				} else {
					timer.Reset(p.ChangeWait())
				}
			}
		}
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)

	<-signals
	logger.Info("shutting down")
	shutdown <- struct{}{}
	<-exited
	logger.Info("exited")
}
