// Package device picks a bus implementation from a command line target.
package device

import (
	"strings"

	"go.uber.org/zap"

	"vmuicon/pkg/device/maple"
	"vmuicon/pkg/device/remote"
	"vmuicon/pkg/device/virtual"
	"vmuicon/pkg/proto"
)

// Mock is the target name of the in-memory bus.
const Mock = "mock"

// Dial opens target: "mock" for a virtual bus with a unit in the default
// slot, "host:port" for a remote proxy, otherwise a serial port name.
func Dial(target string, logger *zap.Logger) (proto.Bus, error) {
	switch {
	case target == Mock:
		return virtual.Mock(logger.With(zap.String("bus", "virtual"))).Attach(proto.DefaultAddr), nil
	case strings.Contains(target, ":"):
		c, err := remote.New(target)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		b, err := maple.Open(proto.NewSerial(target), logger.With(zap.String("bus", "maple")))
		if err != nil {
			return nil, err
		}
		return b, nil
	}
}
