package remote

import (
	"context"
	"net"
	"net/http"
	"net/rpc"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"vmuicon/pkg/bitmap"
	"vmuicon/pkg/proto"
)

// Proxy serves bus over HTTP RPC for the lifetime of the fx app.
func Proxy(bus proto.Bus, srv *http.Server, logger *zap.Logger, lifecycle fx.Lifecycle) error {
	rs, err := NewServer(NewService(bus, logger))
	if err != nil {
		return err
	}

	if srv.Handler == nil {
		srv.Handler = rs
	}

	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return errors.WithStack(err)
			}
			logger.With(zap.String("listen", ln.Addr().String())).Info("proxy started")
			go func() {
				if err := srv.Serve(ln); err != http.ErrServerClosed {
					logger.With(zap.Error(err)).Fatal("proxy stopped")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := srv.Shutdown(ctx); err != nil {
				return err
			}
			return bus.Close()
		},
	})

	return nil
}

// NewServer registers svc on a private RPC server. The result is an
// http.Handler answering the CONNECT handshake used by rpc.DialHTTP.
func NewServer(svc *Service) (*rpc.Server, error) {
	rs := rpc.NewServer()
	if err := rs.RegisterName("Service", svc); err != nil {
		return nil, errors.WithStack(err)
	}
	return rs, nil
}

func NewService(bus proto.Bus, logger *zap.Logger) *Service {
	return &Service{bus: bus, logger: logger}
}

type Service struct {
	bus    proto.Bus
	logger *zap.Logger
}

func (s *Service) Find(req FindRequest, resp *FindResponse) error {
	addr := proto.Addr{Bus: req.Bus, Port: req.Port}
	_, err := s.bus.Find(addr)
	if errors.Is(err, proto.ErrDeviceNotFound) {
		resp.Found = false
		return nil
	}
	if err != nil {
		s.logger.With(zap.Stringer("addr", addr), zap.Error(err)).Info("find failed")
		return err
	}

	resp.Found = true
	return nil
}

func (s *Service) DrawLCD(req *DrawLCDRequest, resp *DrawLCDResponse) error {
	icon, err := bitmap.FromBytes(req.Icon)
	if err != nil {
		return err
	}

	addr := proto.Addr{Bus: req.Bus, Port: req.Port}
	dev, err := s.bus.Find(addr)
	if err == nil {
		err = dev.DrawLCD(icon)
	}

	var se *proto.StatusError
	switch {
	case errors.Is(err, proto.ErrDeviceNotFound):
		resp.Missing = true
		return nil
	case errors.As(err, &se):
		resp.Status = se.Code
		return nil
	}

	return err
}
