package maple

import (
	"io"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"vmuicon/pkg/bitmap"
	"vmuicon/pkg/proto"
)

const (
	Query   = 0x01
	DrawLCD = 0x02
)

// statusAbsent is the query reply for an empty slot.
const statusAbsent = -1

// Open opens serial with the adapter defaults and returns a bridge over it.
func Open(serial *proto.Serial, logger *zap.Logger) (*Bridge, error) {
	if err := serial.Open(&proto.DefaultOptions); err != nil {
		return nil, err
	}
	logger.With(zap.String("serial", serial.Name())).Info("maple adapter opened")
	return New(serial, logger), nil
}

func New(port io.ReadWriter, logger *zap.Logger) *Bridge {
	return &Bridge{
		port:   port,
		logger: logger,
	}
}

// Bridge talks to a Maple bus adapter over a byte stream. One transaction
// is in flight at a time.
type Bridge struct {
	mu     sync.Mutex
	port   io.ReadWriter
	logger *zap.Logger
}

func (b *Bridge) Find(addr proto.Addr) (proto.Device, error) {
	if !addr.Valid() {
		return nil, errors.Wrap(proto.ErrInvalidAddr, addr.String())
	}

	status, err := b.transact(Query, addr, nil)
	if err != nil {
		return nil, err
	}

	switch {
	case status == statusAbsent:
		return nil, errors.Wrap(proto.ErrDeviceNotFound, addr.String())
	case status < 0:
		return nil, errors.Wrapf(&proto.StatusError{Code: status}, "query %s", addr)
	}

	return &unit{bridge: b, addr: addr}, nil
}

func (b *Bridge) Close() error {
	if c, ok := b.port.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

type unit struct {
	bridge *Bridge
	addr   proto.Addr
}

func (u *unit) Addr() proto.Addr {
	return u.addr
}

func (u *unit) DrawLCD(icon bitmap.Icon) error {
	status, err := u.bridge.transact(DrawLCD, u.addr, icon[:])
	if err != nil {
		return err
	}

	if status < 0 {
		return errors.Wrapf(&proto.StatusError{Code: status}, "draw lcd %s", u.addr)
	}

	return nil
}
