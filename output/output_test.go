package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T) (stdout, stderr *bytes.Buffer) {
	t.Helper()
	stdout, stderr = &bytes.Buffer{}, &bytes.Buffer{}
	t.Cleanup(SetWriters(stdout, stderr))
	return stdout, stderr
}

func TestMessages(t *testing.T) {
	tests := []struct {
		name  string
		print func(string, ...Field)
		icon  string
	}{
		{"success", Success, "✔"},
		{"warn", Warn, "⚠"},
		{"info", Info, "ℹ️"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr := capture(t)
			tt.print("hello")

			assert.Contains(t, stdout.String(), tt.icon)
			assert.Contains(t, stdout.String(), "hello")
			assert.Empty(t, stderr.String())
		})
	}
}

func TestError_GoesToStderr(t *testing.T) {
	stdout, stderr := capture(t)
	Error("boom")

	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "❌ boom")
}

func TestStep_Indented(t *testing.T) {
	stdout, _ := capture(t)
	Step("Includes")
	assert.Contains(t, stdout.String(), "   Includes")
}

func TestFields(t *testing.T) {
	stdout, _ := capture(t)
	Info("captured", F("named", 3), F("path", "uart.c"))

	assert.Contains(t, stdout.String(), "captured")
	assert.Contains(t, stdout.String(), "| named=3 path=uart.c")
}

func TestVerbose(t *testing.T) {
	stdout, _ := capture(t)
	t.Cleanup(func() { SetVerbose(false) })

	SetVerbose(false)
	Verbose("hidden")
	assert.Empty(t, stdout.String())

	SetVerbose(true)
	assert.True(t, IsVerbose())
	Verbose("shown", F("k", "v"))
	assert.Contains(t, stdout.String(), "🔍 shown")
	assert.Contains(t, stdout.String(), "k=v")
}

func TestSetWriters_Restore(t *testing.T) {
	var first bytes.Buffer
	restore := SetWriters(&first, nil)

	var second bytes.Buffer
	restoreInner := SetWriters(&second, nil)
	Info("inner")
	restoreInner()
	Info("outer")
	restore()

	assert.Contains(t, second.String(), "inner")
	assert.Contains(t, first.String(), "outer")
	assert.NotContains(t, first.String(), "inner")
}
