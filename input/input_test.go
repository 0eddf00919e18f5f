package input

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrompt(t *testing.T) {
	tests := []struct {
		name   string
		answer string
		def    string
		want   string
	}{
		{"typed", "src\n", "gen", "src"},
		{"trimmed", "  src  \n", "gen", "src"},
		{"empty uses default", "\n", "gen", "gen"},
		{"eof uses default", "", "gen", "gen"},
		{"no trailing newline", "src", "gen", "src"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := New(strings.NewReader(tt.answer), &out)

			assert.Equal(t, tt.want, p.Prompt("Output directory", tt.def))
			assert.Contains(t, out.String(), "Output directory")
			assert.Contains(t, out.String(), "("+tt.def+")")
		})
	}
}

func TestPrompt_NoDefault(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("\n"), &out)

	assert.Equal(t, "", p.Prompt("Name", ""))
	assert.NotContains(t, out.String(), "()")
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		answer     string
		defaultYes bool
		want       bool
	}{
		{"y\n", false, true},
		{"YES\n", false, true},
		{"n\n", true, false},
		{"maybe\n", true, false},
		{"\n", true, true},
		{"\n", false, false},
		{"", true, true},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.answer), func(t *testing.T) {
			var out bytes.Buffer
			p := New(strings.NewReader(tt.answer), &out)
			assert.Equal(t, tt.want, p.Confirm("Overwrite?", tt.defaultYes))
		})
	}
}

func TestConfirm_Hint(t *testing.T) {
	var out bytes.Buffer
	New(strings.NewReader("\n"), &out).Confirm("Overwrite?", true)
	assert.Contains(t, out.String(), "[Y/n]")

	out.Reset()
	New(strings.NewReader("\n"), &out).Confirm("Overwrite?", false)
	assert.Contains(t, out.String(), "[y/N]")
}

func TestPrompter_SequentialAnswers(t *testing.T) {
	p := New(strings.NewReader("first\ny\n"), &bytes.Buffer{})
	assert.Equal(t, "first", p.Prompt("a", ""))
	assert.True(t, p.Confirm("b", false))
}
