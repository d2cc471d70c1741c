// Package heading numbers document headings, derives their anchor slugs
// and accumulates the table of contents for one render.
package heading

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Levels is the number of heading levels Markdown supports.
const Levels = 6

// alphabetSize bounds the values a LowerAlpha level can express.
const alphabetSize = 26

// Numeral selects how a counter value is written at one level.
type Numeral int

const (
	// Arabic writes values as decimal digits.
	Arabic Numeral = iota
	// LowerAlpha writes values 1..26 as a..z and anything else as digits.
	LowerAlpha
)

// String returns the specifier segment for the numeral.
func (n Numeral) String() string {
	if n == LowerAlpha {
		return "a"
	}
	return "i"
}

// Style is the per-level numbering configuration of a document.
type Style struct {
	// Enabled reports whether the number is shown in front of the heading.
	// Slugs carry the number either way.
	Enabled bool

	// Numerals holds the numeral for each level, index 0 being level 1.
	Numerals [Levels]Numeral
}

// ParseStyle parses a dotted numbering specifier such as "i.a.i".
//
// A segment "a" selects lowercase letters for that level; any other
// segment, and every level past the end of the specifier, is arabic.
// The empty string, "none" and "false" disable the visible prefix.
func ParseStyle(spec string) Style {
	var style Style
	if Disabled(spec) {
		return style
	}

	style.Enabled = true
	for i, segment := range strings.SplitN(spec, ".", Levels+1) {
		if i >= Levels {
			break
		}
		if segment == "a" {
			style.Numerals[i] = LowerAlpha
		}
	}
	return style
}

// ErrInvalidStyle is returned by ValidateStyle for malformed specifiers.
var ErrInvalidStyle = errors.New("invalid heading number style")

// ValidateStyle checks spec strictly: up to six dot-separated segments,
// each "i" or "a", or one of the disabling values. ParseStyle itself
// accepts anything; this is for configuration input.
func ValidateStyle(spec string) error {
	if Disabled(spec) {
		return nil
	}
	segments := strings.Split(strings.TrimSpace(spec), ".")
	if len(segments) > Levels {
		return fmt.Errorf("%w %q: more than %d levels", ErrInvalidStyle, spec, Levels)
	}
	for _, segment := range segments {
		if segment != "i" && segment != "a" {
			return fmt.Errorf("%w %q: segment %q must be \"i\" or \"a\"", ErrInvalidStyle, spec, segment)
		}
	}
	return nil
}

// Disabled reports whether spec turns heading numbers off.
func Disabled(spec string) bool {
	switch strings.TrimSpace(spec) {
	case "", "none", "false":
		return true
	default:
		return false
	}
}

// String renders the style back into specifier form, or "none".
func (s Style) String() string {
	if !s.Enabled {
		return "none"
	}
	parts := make([]string, Levels)
	for i, n := range s.Numerals {
		parts[i] = n.String()
	}
	return strings.Join(parts, ".")
}

// Format writes value using the numeral configured at level (1-based).
func (s Style) Format(value, level int) string {
	if level >= 1 && level <= Levels && s.Numerals[level-1] == LowerAlpha &&
		value >= 1 && value <= alphabetSize {
		return string(rune('a' + value - 1))
	}
	return strconv.Itoa(value)
}
