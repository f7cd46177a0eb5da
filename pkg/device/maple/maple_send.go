package maple

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"vmuicon/pkg/proto"
)

const frameMagic = 0xA5

var (
	ErrTimeout     = errors.New("adapter did not answer")
	ErrBadResponse = errors.New("malformed adapter response")
)

// encodeFrame builds magic, cmd, bus, port, length (big endian), payload and
// a XOR checksum of everything after the magic byte.
func encodeFrame(code uint8, addr proto.Addr, payload []byte) []byte {
	var bs bytes.Buffer
	bs.WriteByte(frameMagic)
	bs.WriteByte(code)
	bs.WriteByte(uint8(addr.Bus))
	bs.WriteByte(uint8(addr.Port))
	_ = binary.Write(&bs, binary.BigEndian, uint16(len(payload)))
	bs.Write(payload)

	var sum byte
	for _, c := range bs.Bytes()[1:] {
		sum ^= c
	}
	bs.WriteByte(sum)

	return bs.Bytes()
}

// inputResetter is implemented by ports that can drop pending input.
type inputResetter interface {
	ResetInputBuffer() error
}

func (b *Bridge) transact(code uint8, addr proto.Addr, payload []byte) (int8, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	// a reply that came in after an earlier timeout would be taken as the
	// answer to this frame
	if r, ok := b.port.(inputResetter); ok {
		if err := r.ResetInputBuffer(); err != nil {
			return 0, errors.Wrap(err, "reset input")
		}
	}

	start := time.Now()
	if err := b.sendBytes(encodeFrame(code, addr, payload)); err != nil {
		return 0, err
	}

	reply, err := b.readBytes(3)
	if err != nil {
		return 0, err
	}

	if reply[0] != frameMagic || reply[1] != code {
		return 0, errors.Wrapf(ErrBadResponse, "%x", reply)
	}

	status := int8(reply[2])
	b.logger.With(
		zap.Uint8("cmd", code),
		zap.Stringer("addr", addr),
		zap.Int8("status", status),
		zap.String("cost", time.Since(start).String()),
	).Debug("transact")

	return status, nil
}

func (b *Bridge) sendBytes(bytes []byte) error {
	n, err := b.port.Write(bytes)
	if err != nil {
		return errors.WithStack(err)
	}
	if n < len(bytes) {
		return errors.Errorf("short write: %d of %d bytes", n, len(bytes))
	}

	ext := ""
	if len(bytes) <= 16 {
		ext = fmt.Sprintf("%x", bytes)
	}

	b.logger.With(
		zap.Int("sent", n),
		zap.String("data", ext),
	).Debug("transfer")

	return nil
}

// readBytes reads exactly n bytes. A zero length read means the port read
// timeout expired.
func (b *Bridge) readBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	for got := 0; got < n; {
		m, err := b.port.Read(buf[got:])
		if err != nil {
			return nil, errors.WithStack(err)
		}
		if m == 0 {
			return nil, ErrTimeout
		}
		got += m
	}
	return buf, nil
}
