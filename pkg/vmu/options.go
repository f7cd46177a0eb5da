package vmu

import (
	"go.uber.org/zap"

	"vmuicon/pkg/proto"
)

type Option func(s *Sender)

func WithAddr(addr proto.Addr) Option {
	return func(s *Sender) {
		s.addr = addr
	}
}

// WithLogger sets the sink for failure diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Sender) {
		s.logger = logger
	}
}
