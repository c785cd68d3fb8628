package sequences

import (
	"fmt"
	"strings"
)

// renderSlot substitutes the slot span of the source with sub.
func (s *Sequence) renderSlot(sub string) string {
	return s.source[:s.m.Start] + sub + s.source[s.m.End:]
}

// pad resolves a requested padding: values <= 0 mean the instance padding.
func (s *Sequence) pad(padding int) int {
	if padding <= 0 {
		return s.m.Padding
	}
	return padding
}

// ItemString renders the member string for number n, zero-padded to the
// requested width. A padding <= 0 uses the instance padding. Every flavor
// renders the same way; only the slot text differs between flavors.
func (s *Sequence) ItemString(n, padding int) string {
	return s.renderSlot(fmt.Sprintf("%0*d", s.pad(padding), n))
}

// PoundString renders the source with the slot as a pound run ("####").
func (s *Sequence) PoundString(padding int) string {
	return s.renderSlot(strings.Repeat("#", s.pad(padding)))
}

// FormatString renders the source with the slot as a format placeholder
// using the sequence key ("{item:04d}").
func (s *Sequence) FormatString(padding int) string {
	return s.FormatStringKey(padding, s.key)
}

// FormatStringKey renders the format placeholder with an explicit key.
func (s *Sequence) FormatStringKey(padding int, key string) string {
	return s.renderSlot(fmt.Sprintf("{%s:0%dd}", key, s.pad(padding)))
}

// PercentString renders the source with the slot as a printf verb ("%04d").
func (s *Sequence) PercentString(padding int) string {
	return s.renderSlot(fmt.Sprintf("%%0%dd", s.pad(padding)))
}

// RegexString renders the source with the slot as a regex literal
// (`\d{4}`), escaping bracket characters in the surrounding text so the
// result is usable as a pattern. The instance-padding form is memoized.
func (s *Sequence) RegexString(padding int) string {
	p := s.pad(padding)
	if p == s.m.Padding && s.regex != "" {
		return s.regex
	}
	out := s.renderSlot(fmt.Sprintf(`\d{%d}`, p))
	out = strings.ReplaceAll(out, "[", `\[`)
	if p == s.m.Padding {
		s.regex = out
	}
	return out
}
