// Package vmu sends icons to a VMU LCD over a proto.Bus.
package vmu

import (
	"github.com/pkg/errors"
	"github.com/rs/xid"
	"go.uber.org/zap"

	"vmuicon/pkg/bitmap"
	"vmuicon/pkg/proto"
)

var (
	ErrDeviceNotFound = proto.ErrDeviceNotFound
	ErrWriteFailed    = errors.New("lcd write failed")
)

func NewSender(bus proto.Bus, opts ...Option) *Sender {
	s := &Sender{
		bus:    bus,
		addr:   proto.DefaultAddr,
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

type Sender struct {
	bus    proto.Bus
	addr   proto.Addr
	logger *zap.Logger
}

func (s *Sender) Addr() proto.Addr {
	return s.addr
}

// Send validates src, an icon in editor row order, converts it to the LCD
// row order and draws it on the unit at the configured address. Nothing is
// retried: a missing unit fails before any write.
func (s *Sender) Send(src []byte) error {
	icon, err := bitmap.FromBytes(src)
	if err != nil {
		s.logger.With(zap.Int("len", len(src)), zap.Error(err)).Error("invalid icon data")
		return err
	}
	return s.SendIcon(icon)
}

func (s *Sender) SendIcon(icon bitmap.Icon) error {
	lcd := icon.Flip()
	log := s.logger.With(zap.String("id", xid.New().String()), zap.Stringer("addr", s.addr))

	dev, err := s.bus.Find(s.addr)
	if err != nil {
		log.With(zap.Error(err)).Error("couldn't find the VMU")
		if errors.Is(err, proto.ErrDeviceNotFound) {
			return err
		}
		return errors.Wrap(err, "lookup")
	}

	if err := dev.DrawLCD(lcd); err != nil {
		fields := []zap.Field{zap.Error(err)}
		var se *proto.StatusError
		if errors.As(err, &se) {
			fields = append(fields, zap.Int8("status", se.Code))
		}
		log.With(fields...).Error("error when sending icon to the VMU")
		return &writeError{cause: err}
	}

	log.Debug("icon sent")
	return nil
}

// writeError matches ErrWriteFailed and unwraps to the transport error.
type writeError struct {
	cause error
}

func (e *writeError) Error() string {
	return ErrWriteFailed.Error() + ": " + e.cause.Error()
}

func (e *writeError) Unwrap() error {
	return e.cause
}

func (e *writeError) Is(target error) bool {
	return target == ErrWriteFailed
}

// Status maps a send result to the host status code: 0 on success, -1 on
// any failure.
func Status(err error) int {
	if err != nil {
		return -1
	}
	return 0
}

// SendIcon sends one icon and returns its host status code.
func SendIcon(bus proto.Bus, src []byte, opts ...Option) int {
	return Status(NewSender(bus, opts...).Send(src))
}
