package main

import (
	"net/http"

	flag "github.com/spf13/pflag"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"vmuicon/pkg/device/maple"
	"vmuicon/pkg/device/remote"
	"vmuicon/pkg/proto"
)

var serial = flag.String("serial", "ttyACM0", "serial name")
var listen = flag.String("listen", ":9123", "listen addr")
var debug = flag.Bool("debug", false, "set debug")

func newLogger() (*zap.Logger, error) {
	if *debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func main() {
	flag.Parse()

	fx.New(
		fx.Provide(
			func() (*proto.Serial, *http.Server) {
				return proto.NewSerial(*serial),
					&http.Server{Addr: *listen}
			},
			newLogger,
			func(serial *proto.Serial, logger *zap.Logger) (proto.Bus, error) {
				b, err := maple.Open(serial, logger)
				if err != nil {
					return nil, err
				}
				return b, nil
			},
		),
		fx.Invoke(
			remote.Proxy,
		),
	).Run()
}
