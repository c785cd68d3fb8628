// Package display renders human-readable output for the seqtool CLI:
// the startup banner, sequence summaries and rename plan tables.
package display

import "github.com/charmbracelet/lipgloss"

var bannerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("81")).
	Border(lipgloss.RoundedBorder()).
	Padding(0, 2)

// Banner renders the boxed program name and version.
func Banner(version string) string {
	return bannerStyle.Render("seqtool " + version)
}
