package generator

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// acronyms stay upper case in PascalCase and camelCase output.
var acronyms = map[string]string{
	"id":   "ID",
	"url":  "URL",
	"api":  "API",
	"http": "HTTP",
	"json": "JSON",
	"xml":  "XML",
	"io":   "IO",
	"uart": "UART",
	"gpio": "GPIO",
	"spi":  "SPI",
	"i2c":  "I2C",
	"dma":  "DMA",
}

// words splits an identifier at underscores, dashes, spaces and case
// changes: "HTTPServer_port" → [HTTP Server port].
func words(s string) []string {
	var out []string
	runes := []rune(s)
	begin := 0
	flush := func(end int) {
		if end > begin {
			out = append(out, string(runes[begin:end]))
		}
	}
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || unicode.IsSpace(r):
			flush(i)
			begin = i + 1
		case i > begin && unicode.IsUpper(r):
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush(i)
				begin = i
			}
		}
	}
	flush(len(runes))
	return out
}

// title upper-cases the first letter of w, or all of it for a known acronym.
func title(w string) string {
	if a, ok := acronyms[strings.ToLower(w)]; ok {
		return a
	}
	r := []rune(strings.ToLower(w))
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// PascalCase: uart_id → UARTID, userName → UserName.
func PascalCase(s string) string {
	var b strings.Builder
	for _, w := range words(s) {
		b.WriteString(title(w))
	}
	return b.String()
}

// CamelCase: uart_id → uartID, UserName → userName.
func CamelCase(s string) string {
	var b strings.Builder
	for i, w := range words(s) {
		if i == 0 {
			b.WriteString(strings.ToLower(w))
			continue
		}
		b.WriteString(title(w))
	}
	return b.String()
}

// SnakeCase: UartDriver → uart_driver, HTTPServer → http_server.
func SnakeCase(s string) string {
	ws := words(s)
	for i, w := range ws {
		ws[i] = strings.ToLower(w)
	}
	return strings.Join(ws, "_")
}

// Identifier maps s onto [A-Za-z_][A-Za-z0-9_]*, replacing anything else
// with an underscore.
func Identifier(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '_'
	}, leadingDigit(s))
}

func leadingDigit(s string) string {
	if s != "" && unicode.IsDigit(rune(s[0])) {
		return "_" + s[1:]
	}
	return s
}

// Quote returns s as a double-quoted C/Go string literal.
func Quote(s string) string {
	return strconv.Quote(s)
}

// Dict builds a map from key/value pairs so a partial can take several
// arguments: {{ template "field" (dict "name" .name "type" "int") }}.
func Dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 == 1 {
		return nil, errors.New("dict: odd number of arguments")
	}
	m := make(map[string]any, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		k, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %d is %T, not string", i/2, pairs[i])
		}
		m[k] = pairs[i+1]
	}
	return m, nil
}

// Default returns defaultVal when val is nil, an empty string or an empty collection.
func Default(defaultVal, val any) any {
	switch v := val.(type) {
	case nil:
		return defaultVal
	case string:
		if v == "" {
			return defaultVal
		}
	case []any:
		if len(v) == 0 {
			return defaultVal
		}
	case map[string]any:
		if len(v) == 0 {
			return defaultVal
		}
	}
	return val
}
