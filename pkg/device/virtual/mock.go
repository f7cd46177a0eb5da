package virtual

import (
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"vmuicon/pkg/bitmap"
	"vmuicon/pkg/proto"
)

// Mock returns an empty bus; use Attach to plug units in.
func Mock(logger *zap.Logger) *Mocker {
	return &Mocker{
		l:     logger,
		units: make(map[proto.Addr]*screen),
	}
}

// Mocker is an in-memory bus. It remembers the last frame drawn on each
// unit and can be told to fail draws with a status code.
type Mocker struct {
	mu    sync.Mutex
	l     *zap.Logger
	units map[proto.Addr]*screen
	finds int
}

type screen struct {
	frame  bitmap.Icon
	draws  int
	status int8
}

func (m *Mocker) Attach(addr proto.Addr) *Mocker {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.units[addr] = &screen{}
	m.l.With(zap.Stringer("addr", addr)).Info("attach")
	return m
}

func (m *Mocker) Detach(addr proto.Addr) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.units, addr)
	m.l.With(zap.Stringer("addr", addr)).Info("detach")
}

// FailWith makes draws on addr report status. Zero clears it.
func (m *Mocker) FailWith(addr proto.Addr, status int8) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.units[addr]; ok {
		s.status = status
	}
}

// Frame returns the last frame drawn on addr, in device row order.
func (m *Mocker) Frame(addr proto.Addr) (bitmap.Icon, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.units[addr]
	if !ok || s.draws == 0 {
		return bitmap.Icon{}, false
	}
	return s.frame, true
}

func (m *Mocker) Draws(addr proto.Addr) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.units[addr]; ok {
		return s.draws
	}
	return 0
}

func (m *Mocker) Finds() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.finds
}

func (m *Mocker) Find(addr proto.Addr) (proto.Device, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.finds++
	log := m.l.With(zap.Stringer("addr", addr))
	if _, ok := m.units[addr]; !ok {
		log.Info("find: empty")
		return nil, errors.Wrap(proto.ErrDeviceNotFound, addr.String())
	}

	log.Info("find")
	return &unit{m: m, addr: addr}, nil
}

func (m *Mocker) Close() error {
	m.l.Info("close")
	return nil
}

type unit struct {
	m    *Mocker
	addr proto.Addr
}

func (u *unit) Addr() proto.Addr {
	return u.addr
}

func (u *unit) DrawLCD(icon bitmap.Icon) error {
	u.m.mu.Lock()
	defer u.m.mu.Unlock()

	log := u.m.l.With(zap.Stringer("addr", u.addr))
	s, ok := u.m.units[u.addr]
	if !ok {
		log.Info("draw-lcd: detached")
		return errors.Wrap(proto.ErrDeviceNotFound, u.addr.String())
	}

	if s.status < 0 {
		log.With(zap.Int8("status", s.status)).Info("draw-lcd: failed")
		return errors.WithStack(&proto.StatusError{Code: s.status})
	}

	s.frame = icon
	s.draws++
	log.With(zap.Int("draws", s.draws)).Info("draw-lcd")
	return nil
}
