package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLog_Levels(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(buf)

	log.Info("hello %s", "world")
	log.Warn("careful")
	log.Error("boom")

	out := buf.String()
	assert.Contains(t, out, "[INFO] hello world")
	assert.Contains(t, out, "[WARN] careful")
	assert.Contains(t, out, "[ERROR] boom")
}

func TestLog_DebugRequiresVerbose(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(buf)

	log.Debug("hidden")
	assert.Empty(t, buf.String())

	log.SetVerbose(true)
	log.Debug("visible")
	assert.Contains(t, buf.String(), "[DEBUG] visible")
}

func TestLog_SetOutput(t *testing.T) {
	first := &bytes.Buffer{}
	second := &bytes.Buffer{}
	log := New(first)

	log.Info("one")
	log.SetOutput(second)
	log.Info("two")

	assert.Contains(t, first.String(), "one")
	assert.NotContains(t, first.String(), "two")
	assert.Contains(t, second.String(), "two")
}

func TestNew_NilWriterDefaultsToStderr(t *testing.T) {
	log := New(nil)
	assert.NotNil(t, log.output)
}
