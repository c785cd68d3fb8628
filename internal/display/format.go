package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/burninghelix123/sequences"
)

var (
	labelStyle = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Faint(true)
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// SequenceSummary renders the one-screen description of a sequence: source,
// flavor, padding, item count, ranges and gaps.
func SequenceSummary(s *sequences.Sequence) (string, error) {
	count, err := s.Len()
	if err != nil {
		return "", err
	}
	rs, err := s.RangeString()
	if err != nil {
		return "", err
	}
	gaps, err := s.Missing()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	row := func(label, value string) {
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render(fmt.Sprintf("%-9s", label)), value)
	}
	row("source", s.Source())
	row("flavor", fmt.Sprintf("%s, padding %d", s.Flavor(), s.Padding()))
	row("template", s.PoundString(0))
	row("items", fmt.Sprintf("%d", count))
	if rs != "" {
		row("range", rs)
	}
	if len(gaps) > 0 {
		row("missing", warnStyle.Render(formatInts(gaps)))
	}
	return b.String(), nil
}

func formatInts(nums []int) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = fmt.Sprintf("%d", n)
	}
	return strings.Join(parts, ", ")
}

// PlanTable renders the ordered moves of a rename plan, one per line.
func PlanTable(plan *sequences.RenamePlan, dryRun bool) string {
	if plan == nil || len(plan.Moves) == 0 {
		return dimStyle.Render("nothing to do")
	}
	var b strings.Builder
	if dryRun {
		b.WriteString(dimStyle.Render("dry run, no files will change"))
		b.WriteByte('\n')
	}
	width := 0
	for _, mv := range plan.Moves {
		if len(mv.From) > width {
			width = len(mv.From)
		}
	}
	for _, mv := range plan.Moves {
		fmt.Fprintf(&b, "%-*s %s %s\n", width, mv.From, dimStyle.Render("->"), mv.To)
	}
	fmt.Fprintf(&b, "%d moves\n", len(plan.Moves))
	return b.String()
}
