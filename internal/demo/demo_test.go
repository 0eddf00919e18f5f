package demo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeader_Defaults(t *testing.T) {
	out, err := Header(HeaderManager(), 0)
	require.NoError(t, err)
	got := string(out)

	wantPrefix := "/* File header comment */\n" +
		"/* USER CODE BEGIN Header */\n" +
		"/* USER CODE END Header */\n" +
		"\n" +
		"#ifndef EXAMPLE_H\n" +
		"#define EXAMPLE_H\n" +
		"\n" +
		"/* Additional includes */\n" +
		"/* USER CODE BEGIN Includes */\n" +
		"#include <stdio.h>\n" +
		"#include <stdlib.h>\n" +
		"/* USER CODE END Includes */\n"
	assert.True(t, strings.HasPrefix(got, wantPrefix), "got:\n%s", got)

	assert.Contains(t, got, "typedef struct ExampleStruct ExampleStruct;\nstruct ExampleStruct {\n")
	assert.Contains(t, got, "    // Unique identifier\n    int id;\n")
	assert.Contains(t, got, "int example_process(ExampleStruct* data, uint32_t size);\n")
	assert.Contains(t, got, "void example_init(void);\n")
	assert.True(t, strings.HasSuffix(got, "/* USER CODE END Functions */\n\n#endif // EXAMPLE_H\n"), "got:\n%s", got)
}

func TestSource_Defaults(t *testing.T) {
	out, err := Source(SourceManager(), "example.h", 0)
	require.NoError(t, err)
	got := string(out)

	assert.Contains(t, got, "#include \"example.h\"\n#include <string.h>\n")
	assert.Contains(t, got, "/* USER CODE BEGIN Includes */\n/* USER CODE END Includes */\n")
	assert.Contains(t, got, "void example_init(void) {\n/* Initialization function implementation */\n/* USER CODE BEGIN InitFunction */\n    // Initialize the example system\n")
	assert.Contains(t, got, "    g_count = 0;\n/* USER CODE END CleanupFunction */\n\n}\n")
}

func TestHeader_CaptureAndRegenerate(t *testing.T) {
	first, err := Header(HeaderManager(), 0)
	require.NoError(t, err)

	edited := strings.Replace(string(first),
		"/* USER CODE BEGIN Functions */\n",
		"/* USER CODE BEGIN Functions */\nvoid example_extra(void);\n", 1)

	m := HeaderManager()
	require.NoError(t, m.Scan(edited))

	second, err := Header(m, 0)
	require.NoError(t, err)
	assert.Equal(t, edited, string(second))
	assert.NoError(t, m.Validate())
}

func TestSource_RoundTrip(t *testing.T) {
	first, err := Source(SourceManager(), "example.h", 0)
	require.NoError(t, err)

	m := SourceManager()
	require.NoError(t, m.Scan(string(first)))
	second, err := Source(m, "example.h", 0)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
	assert.Equal(t, 6, m.Stats().Captured)
}

func TestHeader_IndentSize(t *testing.T) {
	out, err := Header(HeaderManager(), 2)
	require.NoError(t, err)
	assert.Contains(t, string(out), "\n  // Unique identifier\n  int id;\n")
}
