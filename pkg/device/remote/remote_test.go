package remote

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"vmuicon/pkg/bitmap"
	"vmuicon/pkg/device/virtual"
	"vmuicon/pkg/proto"
)

func startProxy(t *testing.T, bus proto.Bus) *Client {
	t.Helper()

	rs, err := NewServer(NewService(bus, zap.NewNop()))
	require.NoError(t, err)

	srv := httptest.NewServer(rs)
	t.Cleanup(srv.Close)

	c, err := New(strings.TrimPrefix(srv.URL, "http://"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	return c
}

func TestRemoteDraw(t *testing.T) {
	bus := virtual.Mock(zap.NewNop()).Attach(proto.DefaultAddr)
	c := startProxy(t, bus)

	dev, err := c.Find(proto.DefaultAddr)
	require.NoError(t, err)
	assert.Equal(t, proto.DefaultAddr, dev.Addr())

	var icon bitmap.Icon
	icon[0], icon[bitmap.Size-1] = 0x12, 0x34
	require.NoError(t, dev.DrawLCD(icon))

	got, ok := bus.Frame(proto.DefaultAddr)
	require.True(t, ok)
	assert.Equal(t, icon, got)
}

func TestRemoteNotFound(t *testing.T) {
	bus := virtual.Mock(zap.NewNop())
	c := startProxy(t, bus)

	_, err := c.Find(proto.Addr{Bus: 2, Port: 1})
	assert.True(t, errors.Is(err, proto.ErrDeviceNotFound), "error = %v", err)
}

func TestRemoteDrawDetached(t *testing.T) {
	bus := virtual.Mock(zap.NewNop()).Attach(proto.DefaultAddr)
	c := startProxy(t, bus)

	dev, err := c.Find(proto.DefaultAddr)
	require.NoError(t, err)

	bus.Detach(proto.DefaultAddr)
	err = dev.DrawLCD(bitmap.Icon{})
	assert.True(t, errors.Is(err, proto.ErrDeviceNotFound), "error = %v", err)

	var se *proto.StatusError
	assert.False(t, errors.As(err, &se))
}

func TestRemoteStatus(t *testing.T) {
	bus := virtual.Mock(zap.NewNop()).Attach(proto.DefaultAddr)
	bus.FailWith(proto.DefaultAddr, -1)
	c := startProxy(t, bus)

	dev, err := c.Find(proto.DefaultAddr)
	require.NoError(t, err)

	err = dev.DrawLCD(bitmap.Icon{})
	var se *proto.StatusError
	require.True(t, errors.As(err, &se), "error = %v", err)
	assert.Equal(t, int8(-1), se.Code)
}

func TestServiceRejectsShortFrame(t *testing.T) {
	bus := virtual.Mock(zap.NewNop()).Attach(proto.DefaultAddr)
	svc := NewService(bus, zap.NewNop())

	err := svc.DrawLCD(&DrawLCDRequest{Bus: 0, Port: 1, Icon: make([]byte, 10)}, &DrawLCDResponse{})
	assert.True(t, errors.Is(err, bitmap.ErrInvalidLength))
	assert.Zero(t, bus.Draws(proto.DefaultAddr))
}
