package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"techblog/internal/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name  string
		cfg   config.Log
		level zapcore.Level
	}{
		{"json debug", config.Log{Level: "DEBUG", Encoding: "json"}, zapcore.DebugLevel},
		{"console warn", config.Log{Level: "warn", Encoding: "console", Development: true}, zapcore.WarnLevel},
		{"unknown level falls back to info", config.Log{Level: "loud", Encoding: "xml"}, zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New(tt.cfg)
			require.NoError(t, err)
			assert.True(t, log.Core().Enabled(tt.level))
			assert.False(t, log.Core().Enabled(tt.level-1))
		})
	}
}
