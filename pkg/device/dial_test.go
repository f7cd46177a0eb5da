package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"vmuicon/pkg/proto"
)

func TestDialMock(t *testing.T) {
	bus, err := Dial(Mock, zap.NewNop())
	require.NoError(t, err)
	defer bus.Close()

	dev, err := bus.Find(proto.DefaultAddr)
	require.NoError(t, err)
	assert.Equal(t, proto.DefaultAddr, dev.Addr())
}

func TestDialRemoteRefused(t *testing.T) {
	_, err := Dial("127.0.0.1:1", zap.NewNop())
	assert.Error(t, err)
}
