package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		cfg  Config
		want zapcore.Level
	}{
		{Config{Level: "debug", Format: "console", Development: true}, zapcore.DebugLevel},
		{Config{Level: "warn"}, zapcore.WarnLevel},
		{Config{Level: "nonsense"}, zapcore.InfoLevel},
	}
	for _, tt := range tests {
		l, err := New(tt.cfg)
		require.NoError(t, err)
		assert.True(t, l.Core().Enabled(tt.want))
		if tt.want > zapcore.DebugLevel {
			assert.False(t, l.Core().Enabled(tt.want-1))
		}
	}
}
