package region_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/firebird-suite/nest/region"
)

func TestScan_NamedAndPartial(t *testing.T) {
	content := `
/* USER CODE BEGIN Header */
// File header
/* USER CODE END Header */

//!begin 1
// Partial section 1
//!end 1

/* USER CODE BEGIN Includes */
#include <stdio.h>
/* USER CODE END Includes */

//!begin 2
void custom_function() {
    // User code here
}
//!end 2
`

	caps, err := region.Scan(content)
	require.NoError(t, err)

	header, ok := caps.Named("Header")
	require.True(t, ok)
	assert.Equal(t, "// File header\n", header)

	includes, ok := caps.Named("Includes")
	require.True(t, ok)
	assert.Equal(t, "#include <stdio.h>\n", includes)

	p1, ok := caps.Partial(1)
	require.True(t, ok)
	assert.Equal(t, "// Partial section 1\n", p1)

	p2, ok := caps.Partial(2)
	require.True(t, ok)
	assert.Equal(t, "void custom_function() {\n    // User code here\n}\n", p2)

	_, ok = caps.Partial(3)
	assert.False(t, ok)

	assert.Equal(t, []string{"Header", "Includes"}, caps.NamedNames())
	assert.Equal(t, []uint64{1, 2}, caps.PartialIDs())
}

func TestScan_PreservesBlankLinesAndIndentation(t *testing.T) {
	content := "int main() {\n" +
		"/* USER CODE BEGIN Main */\n" +
		"    printf(\"hi\\n\");\n" +
		"\n" +
		"\treturn 0;\n" +
		"/* USER CODE END Main */\n" +
		"}\n"

	caps, err := region.Scan(content)
	require.NoError(t, err)

	main, _ := caps.Named("Main")
	assert.Equal(t, "    printf(\"hi\\n\");\n\n\treturn 0;\n", main)
}

func TestScan_EmptyRegion(t *testing.T) {
	caps, err := region.Scan("/* USER CODE BEGIN Empty */\n/* USER CODE END Empty */\n")
	require.NoError(t, err)

	got, ok := caps.Named("Empty")
	assert.True(t, ok)
	assert.Equal(t, "", got)
}

func TestScan_IndentedMarkers(t *testing.T) {
	content := "void f(void) {\n    /* USER CODE BEGIN Body */\n    x++;\n    /* USER CODE END Body */  \n}\n\t//!begin 4\t\n\ty;\n\t//!end 4\n"

	caps, err := region.Scan(content)
	require.NoError(t, err)

	body, _ := caps.Named("Body")
	assert.Equal(t, "    x++;\n", body)

	p, _ := caps.Partial(4)
	assert.Equal(t, "\ty;\n", p)
}

func TestScan_CRLF(t *testing.T) {
	caps, err := region.Scan("//!begin 1\r\nint x;\r\n//!end 1\r\n")
	require.NoError(t, err)

	got, _ := caps.Partial(1)
	assert.Equal(t, "int x;\n", got)
}

func TestScan_FinalLineWithoutNewline(t *testing.T) {
	caps, err := region.Scan("/* USER CODE BEGIN A */\nx\n/* USER CODE END A */")
	require.NoError(t, err)

	got, _ := caps.Named("A")
	assert.Equal(t, "x\n", got)
}

func TestScan_EmbeddedMarkersArePlainText(t *testing.T) {
	content := "int x; /* USER CODE BEGIN A */\n" +
		"/* USER CODE BEGIN B */\n" +
		"const char *s = \"//!begin 7\";\n" +
		"// see //!end 7\n" +
		"/* USER CODE END B */\n"

	caps, err := region.Scan(content)
	require.NoError(t, err)

	_, ok := caps.Named("A")
	assert.False(t, ok, "marker sharing a line with code must not open a region")

	b, _ := caps.Named("B")
	assert.Equal(t, "const char *s = \"//!begin 7\";\n// see //!end 7\n", b)
}

func TestScan_MarkersAreCaseSensitive(t *testing.T) {
	caps, err := region.Scan("/* user code begin A */\n//!BEGIN 1\n")
	require.NoError(t, err)

	named, partial := caps.Len()
	assert.Zero(t, named)
	assert.Zero(t, partial)
}

func TestScan_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		kind     error
		line     int
		section  string
		expected string
		found    string
	}{
		{
			name:    "nested partial",
			input:   "//!begin 1\n//!begin 2\n//!end 2\n//!end 1\n",
			kind:    region.ErrNestedSection,
			line:    2,
			section: "partial section 1",
		},
		{
			name:    "named inside partial",
			input:   "//!begin 1\n/* USER CODE BEGIN A */\n",
			kind:    region.ErrNestedSection,
			line:    2,
			section: "partial section 1",
		},
		{
			name:    "partial inside named",
			input:   "\n/* USER CODE BEGIN A */\nx\n//!begin 1\n",
			kind:    region.ErrNestedSection,
			line:    4,
			section: "A",
		},
		{
			name:     "mismatched partial",
			input:    "//!begin 1\ncontent\n//!end 2\n",
			kind:     region.ErrMismatchedSection,
			line:     3,
			expected: "1",
			found:    "2",
		},
		{
			name:     "mismatched named",
			input:    "/* USER CODE BEGIN A */\n/* USER CODE END B */\n",
			kind:     region.ErrMismatchedSection,
			line:     2,
			expected: "A",
			found:    "B",
		},
		{
			name:     "partial end closes named",
			input:    "/* USER CODE BEGIN A */\n//!end 1\n",
			kind:     region.ErrMismatchedSection,
			line:     2,
			expected: "A",
			found:    "partial section 1",
		},
		{
			name:    "orphan partial end",
			input:   "code\n//!end 5\n",
			kind:    region.ErrInvalidSection,
			line:    2,
			section: "partial section 5",
		},
		{
			name:    "orphan named end",
			input:   "/* USER CODE END Foo */\n",
			kind:    region.ErrInvalidSection,
			line:    1,
			section: "Foo",
		},
		{
			name:    "partial id out of range",
			input:   "//!begin 184467440737095516160\n",
			kind:    region.ErrInvalidSection,
			line:    1,
			section: "184467440737095516160",
		},
		{
			name:    "unclosed partial",
			input:   "//!begin 1\ncontent\n",
			kind:    region.ErrUnclosedSection,
			line:    2,
			section: "partial section 1",
		},
		{
			name:    "unclosed named",
			input:   "/* USER CODE BEGIN Main */\n",
			kind:    region.ErrUnclosedSection,
			line:    1,
			section: "Main",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			caps, err := region.Scan(tt.input)
			require.Error(t, err)
			assert.Nil(t, caps)
			assert.ErrorIs(t, err, tt.kind)

			var scanErr *region.ScanError
			require.True(t, errors.As(err, &scanErr))
			assert.Equal(t, tt.line, scanErr.Line)
			assert.Equal(t, tt.section, scanErr.Section)
			assert.Equal(t, tt.expected, scanErr.Expected)
			assert.Equal(t, tt.found, scanErr.Found)
		})
	}
}

func TestScanError_Messages(t *testing.T) {
	_, err := region.Scan("//!begin 1\ncontent\n//!end 2\n")
	require.Error(t, err)
	assert.Equal(t, "mismatched user section at line 3: expected '1', found '2'", err.Error())

	_, err = region.Scan("//!begin 1\ncontent\n")
	require.Error(t, err)
	assert.Equal(t, "unclosed user section at end of file: 'partial section 1'", err.Error())

	_, err = region.Scan("/* USER CODE END Foo */\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no matching begin for 'Foo'")
}

func TestScanFile_Missing(t *testing.T) {
	caps, err := region.ScanFile(filepath.Join(t.TempDir(), "does-not-exist.c"))
	require.NoError(t, err)

	named, partial := caps.Len()
	assert.Zero(t, named)
	assert.Zero(t, partial)
}

func TestScanFile_ReadFailure(t *testing.T) {
	dir := t.TempDir()

	_, err := region.ScanFile(dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, region.ErrCaptureFailed)

	var captureErr *region.CaptureError
	require.True(t, errors.As(err, &captureErr))
	assert.Equal(t, dir, captureErr.Path)
}

func TestScanFile_ByteOrderMarks(t *testing.T) {
	text := "/* USER CODE BEGIN A */\nhello\n/* USER CODE END A */\n"

	utf16le := []byte{0xFF, 0xFE}
	for _, r := range []byte(text) {
		utf16le = append(utf16le, r, 0x00)
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"plain", []byte(text)},
		{"utf-8 bom", append([]byte{0xEF, 0xBB, 0xBF}, text...)},
		{"utf-16le bom", utf16le},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "gen.c")
			require.NoError(t, os.WriteFile(path, tt.data, 0644))

			caps, err := region.ScanFile(path)
			require.NoError(t, err)

			got, ok := caps.Named("A")
			require.True(t, ok)
			assert.Equal(t, "hello\n", got)
		})
	}
}

func TestScanFile_PassesNonUTF8Through(t *testing.T) {
	path := filepath.Join(t.TempDir(), "latin1.c")
	data := []byte("//!begin 1\ncaf\xe9\n//!end 1\n")
	require.NoError(t, os.WriteFile(path, data, 0644))

	caps, err := region.ScanFile(path)
	require.NoError(t, err)

	got, _ := caps.Partial(1)
	assert.Equal(t, "caf\xe9\n", got)
}

func TestHasMarkers(t *testing.T) {
	assert.True(t, region.HasMarkers("x\n/* USER CODE BEGIN A */\n"))
	assert.True(t, region.HasMarkers("//!end 3"))
	assert.False(t, region.HasMarkers("package main\n"))
}

func TestValidName(t *testing.T) {
	assert.True(t, region.ValidName("Includes_2"))
	assert.False(t, region.ValidName(""))
	assert.False(t, region.ValidName("has space"))
	assert.False(t, region.ValidName("dash-name"))
}

func TestDecode_EncodeRoundTrip(t *testing.T) {
	text := "/* USER CODE BEGIN A */\nhello\n/* USER CODE END A */\n"

	utf16be := []byte{0xFE, 0xFF}
	for _, r := range []byte(text) {
		utf16be = append(utf16be, 0x00, r)
	}

	tests := []struct {
		name string
		data []byte
		enc  region.Encoding
	}{
		{"plain", []byte(text), region.Plain},
		{"utf-8 bom", append([]byte{0xEF, 0xBB, 0xBF}, text...), region.UTF8BOM},
		{"utf-16be bom", utf16be, region.UTF16BE},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, enc, err := region.Decode(tt.data)
			require.NoError(t, err)
			assert.Equal(t, text, got)
			assert.Equal(t, tt.enc, enc)

			back, err := enc.Encode(got)
			require.NoError(t, err)
			assert.Equal(t, tt.data, back)
		})
	}
}

func TestIsMarker(t *testing.T) {
	assert.True(t, region.IsMarker("  /* USER CODE END A */"))
	assert.True(t, region.IsMarker("//!begin 4"))
	assert.False(t, region.IsMarker("/* USER CODE BEGIN My-Init */"))
	assert.False(t, region.IsMarker("/* Initialization code */"))
}
