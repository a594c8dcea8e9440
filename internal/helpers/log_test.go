package helpers

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestZeroLogger(t *testing.T) {
	buffer := bytes.Buffer{}
	logger := NewZeroLogger(&buffer, zerolog.InfoLevel)

	logger.Printf("searched %v nodes", 12)
	logger.Debugf("hidden")
	logger.Warnf("reset after %v", "d2d5")
	logger.Println("best", "e2e4")

	output := buffer.String()
	assert.Contains(t, output, "searched 12 nodes")
	assert.Contains(t, output, "best e2e4")
	assert.Contains(t, output, "reset after d2d5")
	assert.NotContains(t, output, "hidden")

	buffer.Reset()
	NewZeroLogger(&buffer, zerolog.DebugLevel).Debugf("shown")
	assert.Contains(t, buffer.String(), "shown")
}

func TestFuncLogger(t *testing.T) {
	lines := []string{}
	logger := &FuncLogger{Log: func(s string) { lines = append(lines, s) }}

	logger.Println("a", 1)
	logger.Printf("b%d", 2)
	logger.Print("c")
	logger.Debugf("d%d", 4)
	logger.Warnf("e")

	assert.Equal(t, []string{"a 1", "b2", "c", "d4", "warning: e"}, lines)
}

func TestLoggerForLevel(t *testing.T) {
	logger, err := LoggerForLevel("silent")
	assert.True(t, IsNil(err), err)
	assert.Equal(t, SilentLogger, logger)

	logger, err = LoggerForLevel("debug")
	assert.True(t, IsNil(err), err)
	assert.IsType(t, &ZeroLogger{}, logger)

	_, err = LoggerForLevel("loud")
	assert.False(t, IsNil(err))
}
