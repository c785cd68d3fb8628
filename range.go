package sequences

import (
	"strconv"
	"strings"
)

// Span is a maximal run of consecutive item numbers, inclusive on both ends.
// A single number is the span Lo == Hi.
type Span struct {
	Lo, Hi int
}

// Single reports whether the span covers exactly one number.
func (sp Span) Single() bool { return sp.Lo == sp.Hi }

// String renders "101-105" for a run and "101" for a single number.
func (sp Span) String() string {
	if sp.Single() {
		return strconv.Itoa(sp.Lo)
	}
	return strconv.Itoa(sp.Lo) + "-" + strconv.Itoa(sp.Hi)
}

// collapse groups sorted ascending numbers into maximal consecutive spans.
// [1, 2, 3, 5, 7] becomes [{1,3}, {5,5}, {7,7}].
func collapse(nums []int) []Span {
	var spans []Span
	for _, n := range nums {
		if len(spans) > 0 && n == spans[len(spans)-1].Hi+1 {
			spans[len(spans)-1].Hi = n
			continue
		}
		spans = append(spans, Span{Lo: n, Hi: n})
	}
	return spans
}

// missingBetween returns the interior numbers absent from the sorted
// ascending nums. Numbers outside [first, last] are never reported.
func missingBetween(nums []int) []int {
	var out []int
	for i := 1; i < len(nums); i++ {
		for n := nums[i-1] + 1; n < nums[i]; n++ {
			out = append(out, n)
		}
	}
	return out
}

// FormatSpans renders spans as a comma-separated range string, for example
// "101-105, 110-115".
func FormatSpans(spans []Span) string {
	parts := make([]string, len(spans))
	for i, sp := range spans {
		parts[i] = sp.String()
	}
	return strings.Join(parts, ", ")
}
