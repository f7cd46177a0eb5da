package proto

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"vmuicon/pkg/bitmap"
)

const (
	MaxBus  = 4
	MaxPort = 6
)

var (
	ErrDeviceNotFound = errors.New("device not found")
	ErrInvalidAddr    = errors.New("invalid bus address")
)

// Bus finds peripherals attached to a Maple style bus.
type Bus interface {
	// Find returns the unit at addr or ErrDeviceNotFound. It has no side
	// effects when nothing is attached.
	Find(addr Addr) (Device, error)
	Close() error
}

// Device is a unit with an LCD.
type Device interface {
	Addr() Addr
	// DrawLCD pushes a full frame in device row order. The write is all or
	// nothing.
	DrawLCD(icon bitmap.Icon) error
}

// Addr locates a unit: Bus is the controller port (A-D), Port the slot on
// it, 0 being the controller itself.
type Addr struct {
	Bus  int
	Port int
}

// DefaultAddr is the first expansion slot of the first controller, "A1".
var DefaultAddr = Addr{Bus: 0, Port: 1}

func (a Addr) Valid() bool {
	return a.Bus >= 0 && a.Bus < MaxBus && a.Port >= 0 && a.Port < MaxPort
}

func (a Addr) String() string {
	if !a.Valid() {
		return fmt.Sprintf("%d:%d", a.Bus, a.Port)
	}
	return fmt.Sprintf("%c%d", 'A'+a.Bus, a.Port)
}

// ParseAddr parses the "A1" notation.
func ParseAddr(s string) (Addr, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) != 2 {
		return Addr{}, errors.Wrapf(ErrInvalidAddr, "%q", s)
	}

	a := Addr{Bus: int(s[0] - 'A'), Port: int(s[1] - '0')}
	if s[0] < 'A' || s[1] < '0' || !a.Valid() {
		return Addr{}, errors.Wrapf(ErrInvalidAddr, "%q", s)
	}
	return a, nil
}

// StatusError is a negative status code reported by a device.
type StatusError struct {
	Code int8
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("device status %d", e.Code)
}
