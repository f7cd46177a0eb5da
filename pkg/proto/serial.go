package proto

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.bug.st/serial"
)

var ErrPortNotFound = errors.New("serial port not found")

type Options struct {
	DTR         bool
	RTS         bool
	BaudRate    int
	ReadTimeout time.Duration
}

// DefaultOptions match the Maple bus adapter firmware: 115200 8N1.
var DefaultOptions = Options{
	DTR:         true,
	RTS:         true,
	BaudRate:    115200,
	ReadTimeout: time.Second,
}

func NewSerial(name string) *Serial {
	return &Serial{name: name}
}

// Serial is a serial port looked up by a fragment of its name, so
// "ttyACM" or "usbmodem" work across hosts.
type Serial struct {
	name string
	port serial.Port
}

func (s *Serial) Name() string {
	return s.name
}

func (s *Serial) Ports() ([]string, error) {
	return serial.GetPortsList()
}

func (s *Serial) Open(opts *Options) error {
	if opts == nil {
		opts = &DefaultOptions
	}

	ports, err := s.Ports()
	if err != nil {
		return errors.WithStack(err)
	}

	var matched string
	for _, name := range ports {
		if strings.Contains(name, s.name) {
			matched = name
			break
		}
	}
	if matched == "" {
		return errors.Wrap(ErrPortNotFound, s.name)
	}

	port, err := serial.Open(matched, &serial.Mode{
		BaudRate: opts.BaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return errors.Wrapf(err, "open %s", matched)
	}

	if err := port.SetDTR(opts.DTR); err != nil {
		_ = port.Close()
		return errors.WithStack(err)
	}

	if err := port.SetRTS(opts.RTS); err != nil {
		_ = port.Close()
		return errors.WithStack(err)
	}

	if opts.ReadTimeout > 0 {
		if err := port.SetReadTimeout(opts.ReadTimeout); err != nil {
			_ = port.Close()
			return errors.WithStack(err)
		}
	}

	s.port = port
	return nil
}

func (s *Serial) Close() error {
	if s.port == nil {
		return nil
	}
	return s.port.Close()
}

// Read returns 0, nil when the read timeout expires.
func (s *Serial) Read(p []byte) (n int, err error) {
	return s.port.Read(p)
}

func (s *Serial) Write(p []byte) (n int, err error) {
	return s.port.Write(p)
}

// ResetInputBuffer drops bytes received but not read yet, such as a reply
// that arrived after its read timed out.
func (s *Serial) ResetInputBuffer() error {
	return errors.WithStack(s.port.ResetInputBuffer())
}
