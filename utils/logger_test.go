package utils

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLogLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, ParseLogLevel(" warning "))
	assert.Equal(t, zapcore.ErrorLevel, ParseLogLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, ParseLogLevel(""))
	assert.Equal(t, zapcore.InfoLevel, ParseLogLevel("verbose"))
}

func TestSetLogLevel(t *testing.T) {
	defer SetLogLevel("info")
	l := Logger()
	SetLogLevel("error")
	// The shared logger is kept, only its level moves
	assert.Same(t, l, Logger())
	assert.False(t, Logger().Desugar().Core().Enabled(zapcore.WarnLevel))
	SetLogLevel("debug")
	assert.True(t, Logger().Desugar().Core().Enabled(zapcore.DebugLevel))

	// Level changes race freely with logging
	var wg sync.WaitGroup
	for n := 0; n < 8; n++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				if n%2 == 0 {
					SetLogLevel([]string{"error", "warn"}[i%2])
				} else {
					Logger().Debugw("concurrent", "worker", n, "i", i)
				}
			}
		}(n)
	}
	wg.Wait()
	assert.Same(t, l, Logger())
}

func TestNewLogger(t *testing.T) {
	l := NewLogger("warn")
	assert.False(t, l.Desugar().Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Desugar().Core().Enabled(zapcore.ErrorLevel))
}
