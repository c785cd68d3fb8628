package sequences

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Flavor identifies how the numeric slot is written in a source string.
type Flavor int

const (
	FlavorNone    Flavor = iota
	FlavorDigits         // literal digits: "0001"
	FlavorPounds         // placeholder run: "####"
	FlavorRegex          // regex literal: `\d{4}`
	FlavorFormat         // format placeholder: "{item:04d}"
	FlavorPercent        // printf verb: "%04d"
)

func (f Flavor) String() string {
	switch f {
	case FlavorDigits:
		return "digits"
	case FlavorPounds:
		return "pounds"
	case FlavorRegex:
		return "regex"
	case FlavorFormat:
		return "format"
	case FlavorPercent:
		return "percent"
	default:
		return "none"
	}
}

// Format placeholder keys. Plain and file sequences default to DefaultKey;
// image sequences use FrameKey.
const (
	DefaultKey = "item"
	FrameKey   = "frame"
)

// Match is the result of classifying a source string: which flavor the slot
// is, where it sits, and how wide it is.
type Match struct {
	Flavor  Flavor
	Start   int // slot span start, byte offset
	End     int // slot span end, exclusive
	Padding int
	Key     string // format flavor only
	Number  int    // digits flavor only
	HasNum  bool
}

// Slot alternatives, anchored to the start of the candidate substring.
// Checked in declaration order; their leading characters are disjoint so at
// most one can match at a given offset.
var (
	reSlotDigits  = regexp.MustCompile(`^\d+`)
	reSlotPounds  = regexp.MustCompile(`^#+`)
	reSlotRegex   = regexp.MustCompile(`^\\d\{(\d+)\}`)
	reSlotFormat  = regexp.MustCompile(`^\{(\w+):(\d+)d\}`)
	reSlotPercent = regexp.MustCompile(`^%(\d+)d`)
)

// matchSlot tries the five slot alternatives at the start of s. It returns
// the flavor, the number of bytes the slot occupies, the padding it encodes
// and, for the format flavor, the placeholder key.
func matchSlot(s string) (flavor Flavor, length, padding int, key string, ok bool) {
	if m := reSlotDigits.FindString(s); m != "" {
		return FlavorDigits, len(m), len(m), "", true
	}
	if m := reSlotPounds.FindString(s); m != "" {
		return FlavorPounds, len(m), len(m), "", true
	}
	if m := reSlotRegex.FindStringSubmatch(s); m != nil {
		pad, err := strconv.Atoi(m[1])
		if err != nil {
			return FlavorNone, 0, 0, "", false
		}
		return FlavorRegex, len(m[0]), pad, "", true
	}
	if m := reSlotFormat.FindStringSubmatch(s); m != nil {
		pad, err := strconv.Atoi(m[2])
		if err != nil {
			return FlavorNone, 0, 0, "", false
		}
		return FlavorFormat, len(m[0]), pad, m[1], true
	}
	if m := reSlotPercent.FindStringSubmatch(s); m != nil {
		pad, err := strconv.Atoi(m[1])
		if err != nil {
			return FlavorNone, 0, 0, "", false
		}
		return FlavorPercent, len(m[0]), pad, "", true
	}
	return FlavorNone, 0, 0, "", false
}

// Classify matches s against the plain grammar: an arbitrary prefix followed
// by a slot that ends the string. The earliest offset whose slot reaches the
// end of the string wins, which for literal digits selects the trailing
// digit run. key is the expected format-placeholder key; empty means
// DefaultKey.
func Classify(s, key string) (Match, error) {
	if key == "" {
		key = DefaultKey
	}
	for p := 0; p < len(s); p++ {
		fl, length, pad, k, ok := matchSlot(s[p:])
		if !ok || p+length != len(s) {
			continue
		}
		return finishMatch(s, key, fl, p, length, pad, k)
	}
	return Match{}, fmt.Errorf("%q: %w", s, ErrNotSequence)
}

// ClassifyPath matches s against the path grammar: the slot must follow a
// literal dot and must be followed by either nothing or a suffix ending in a
// dot extension with no whitespace. Dots are scanned right to left so the
// rightmost slot-shaped segment wins ("a.0020.b.0001" latches 0001).
func ClassifyPath(s, key string) (Match, error) {
	if key == "" {
		key = DefaultKey
	}
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] != '.' {
			continue
		}
		fl, length, pad, k, ok := matchSlot(s[i+1:])
		if !ok {
			continue
		}
		start := i + 1
		if !validPathSuffix(s[start+length:]) {
			continue
		}
		return finishMatch(s, key, fl, start, length, pad, k)
	}
	return Match{}, fmt.Errorf("%q: %w", s, ErrNotSequence)
}

func finishMatch(s, key string, fl Flavor, start, length, pad int, k string) (Match, error) {
	m := Match{Flavor: fl, Start: start, End: start + length, Padding: pad}
	switch fl {
	case FlavorFormat:
		if k != key {
			return Match{}, fmt.Errorf("%q: got key %q, want %q: %w", s, k, key, ErrFormatKeyMismatch)
		}
		m.Key = k
	case FlavorDigits:
		n, err := strconv.Atoi(s[start : start+length])
		if err != nil {
			return Match{}, fmt.Errorf("%q: %w", s, ErrNotSequence)
		}
		m.Number = n
		m.HasNum = true
	}
	return m, nil
}

// validPathSuffix reports whether the text after the slot is acceptable for
// the path grammar: empty, or carrying a dot extension with no whitespace.
func validPathSuffix(suffix string) bool {
	if suffix == "" {
		return true
	}
	return extOf(suffix) != ""
}

// extOf returns the extension of a slot suffix, including the dot, or ""
// when the suffix has none. The extension is the shortest trailing ".xxx"
// segment that is non-empty and whitespace-free.
func extOf(suffix string) string {
	for i := len(suffix) - 1; i >= 0; i-- {
		if suffix[i] != '.' || i+1 == len(suffix) {
			continue
		}
		tail := suffix[i+1:]
		if strings.ContainsFunc(tail, unicode.IsSpace) {
			continue
		}
		return suffix[i:]
	}
	return ""
}
