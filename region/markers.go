package region

import (
	"fmt"
	"regexp"
	"strconv"
)

// Markers must be the only token on their line. Whitespace around them is
// tolerated so indented markers still match.
var (
	namedBeginPattern   = regexp.MustCompile(`^\s*/\* USER CODE BEGIN ([A-Za-z0-9_]+) \*/\s*$`)
	namedEndPattern     = regexp.MustCompile(`^\s*/\* USER CODE END ([A-Za-z0-9_]+) \*/\s*$`)
	partialBeginPattern = regexp.MustCompile(`^\s*//!begin ([0-9]+)\s*$`)
	partialEndPattern   = regexp.MustCompile(`^\s*//!end ([0-9]+)\s*$`)
)

// NamedBegin returns the begin marker line for a named region.
func NamedBegin(name string) string {
	return "/* USER CODE BEGIN " + name + " */"
}

// NamedEnd returns the end marker line for a named region.
func NamedEnd(name string) string {
	return "/* USER CODE END " + name + " */"
}

// PartialBegin returns the begin marker line for a partial region.
func PartialBegin(id uint64) string {
	return "//!begin " + strconv.FormatUint(id, 10)
}

// PartialEnd returns the end marker line for a partial region.
func PartialEnd(id uint64) string {
	return "//!end " + strconv.FormatUint(id, 10)
}

// PartialLabel is how a partial region is named in diagnostics.
func PartialLabel(id uint64) string {
	return fmt.Sprintf("partial section %d", id)
}

// ValidName reports whether name can appear in a named region marker.
func ValidName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		default:
			return false
		}
	}
	return true
}

// HasMarkers reports whether text contains anything that looks like a
// region marker. It is a cheap pre-filter and does not validate.
func HasMarkers(text string) bool {
	return containsAny(text, "/* USER CODE BEGIN ", "/* USER CODE END ", "//!begin ", "//!end ")
}

// IsMarker reports whether line would be read back as a region marker.
func IsMarker(line string) bool {
	return namedBeginPattern.MatchString(line) || namedEndPattern.MatchString(line) ||
		partialBeginPattern.MatchString(line) || partialEndPattern.MatchString(line)
}
