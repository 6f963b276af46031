package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	l, err := New(Config{Level: "WARN", Encoding: "console"})
	require.NoError(t, err)
	assert.True(t, l.Log.Core().Enabled(zapcore.WarnLevel))
	assert.False(t, l.Log.Core().Enabled(zapcore.InfoLevel))

	l, err = New(Config{})
	require.NoError(t, err)
	assert.True(t, l.Log.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, l.Log.Core().Enabled(zapcore.DebugLevel))
}

func TestNew_RejectsBadSettings(t *testing.T) {
	_, err := New(Config{Level: "loud"})
	assert.Error(t, err)

	_, err = New(Config{Encoding: "xml"})
	assert.Error(t, err)
}

func TestNop(t *testing.T) {
	l := NewNop()
	l.Info("discarded")
	assert.NotNil(t, l.Named("child").Log)
}
