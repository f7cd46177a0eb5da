package vmu

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"vmuicon/pkg/bitmap"
	"vmuicon/pkg/device/virtual"
	"vmuicon/pkg/proto"
)

func observed() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

func topRowIcon() []byte {
	src := make([]byte, bitmap.Size)
	for i := 0; i < bitmap.RowBytes; i++ {
		src[i] = 0xFF
	}
	return src
}

func TestSend(t *testing.T) {
	bus := virtual.Mock(zap.NewNop()).Attach(proto.DefaultAddr)
	logger, logs := observed()

	err := NewSender(bus, WithLogger(logger)).Send(topRowIcon())
	require.NoError(t, err)
	assert.Equal(t, 0, Status(err))

	frame, ok := bus.Frame(proto.DefaultAddr)
	require.True(t, ok)
	for i, b := range frame {
		want := byte(0)
		if i >= bitmap.Size-bitmap.RowBytes {
			want = 0xFF
		}
		require.Equal(t, want, b, "byte %d", i)
	}

	assert.Zero(t, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
}

func TestSendDeviceNotFound(t *testing.T) {
	bus := virtual.Mock(zap.NewNop()).Attach(proto.Addr{Bus: 1, Port: 1})
	logger, logs := observed()

	err := NewSender(bus, WithLogger(logger)).Send(topRowIcon())
	assert.True(t, errors.Is(err, ErrDeviceNotFound), "error = %v", err)
	assert.False(t, errors.Is(err, ErrWriteFailed))
	assert.Equal(t, -1, Status(err))
	assert.Zero(t, bus.Draws(proto.Addr{Bus: 1, Port: 1}))

	entries := logs.FilterMessage("couldn't find the VMU").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "A1", entries[0].ContextMap()["addr"])
}

func TestSendWriteFailed(t *testing.T) {
	bus := virtual.Mock(zap.NewNop()).Attach(proto.DefaultAddr)
	bus.FailWith(proto.DefaultAddr, -1)
	logger, logs := observed()

	err := NewSender(bus, WithLogger(logger)).Send(make([]byte, bitmap.Size))
	assert.True(t, errors.Is(err, ErrWriteFailed), "error = %v", err)
	assert.Equal(t, -1, Status(err))

	var se *proto.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, int8(-1), se.Code)

	entries := logs.FilterMessage("error when sending icon to the VMU").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int8(-1), entries[0].ContextMap()["status"])
}

func TestSendInvalidLength(t *testing.T) {
	bus := virtual.Mock(zap.NewNop()).Attach(proto.DefaultAddr)

	status := SendIcon(bus, make([]byte, bitmap.Size-1))
	assert.Equal(t, -1, status)
	assert.Zero(t, bus.Finds())
}

func TestSendIconAddr(t *testing.T) {
	addr := proto.Addr{Bus: 3, Port: 2}
	bus := virtual.Mock(zap.NewNop()).Attach(addr)

	assert.Equal(t, 0, SendIcon(bus, make([]byte, bitmap.Size), WithAddr(addr)))
	assert.Equal(t, 1, bus.Draws(addr))
	assert.Equal(t, -1, SendIcon(bus, make([]byte, bitmap.Size)))
}
