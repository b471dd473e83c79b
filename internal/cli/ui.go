package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorSuccess = lipgloss.AdaptiveColor{Light: "2", Dark: "2"}
	colorError   = lipgloss.AdaptiveColor{Light: "1", Dark: "1"}
	colorPrimary = lipgloss.AdaptiveColor{Light: "5", Dark: "5"}
	colorInfo    = lipgloss.AdaptiveColor{Light: "6", Dark: "6"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "8", Dark: "8"}
	colorWarning = lipgloss.AdaptiveColor{Light: "3", Dark: "3"}

	styleSuccess     = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	styleError       = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	styleInfo        = lipgloss.NewStyle().Foreground(colorInfo)
	styleMuted       = lipgloss.NewStyle().Foreground(colorMuted)
	styleWarning     = lipgloss.NewStyle().Foreground(colorWarning).Bold(true)
	styleTitle       = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true).Underline(true)
	styleTableHeader = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	styleTableBorder = lipgloss.NewStyle().Foreground(colorMuted)
	styleTableRowAlt = lipgloss.NewStyle().Faint(true)
)

// FormatError renders err the way commands report failures
func FormatError(err error) string { return formatError(err.Error()) }

func formatSuccess(msg string) string { return styleSuccess.Render("✔ " + msg) }
func formatError(msg string) string   { return styleError.Render("✘ " + msg) }
func formatInfo(msg string) string    { return styleInfo.Render("ℹ " + msg) }
func formatWarning(msg string) string { return styleWarning.Render("⚠ " + msg) }
func formatTitle(msg string) string   { return styleTitle.Render(msg) }
func formatMuted(msg string) string   { return styleMuted.Render(msg) }

// table renders rows in aligned columns. Widths are measured with
// lipgloss.Width so styled cells line up.
type table struct {
	headers []string
	rows    [][]string
}

func newTable(headers ...string) *table {
	return &table{headers: headers}
}

func (t *table) addRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) render() string {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	var b strings.Builder
	b.WriteString(styleTableHeader.Render(joinPadded(t.headers, widths)))
	b.WriteString("\n")

	sep := make([]string, len(widths))
	for i, w := range widths {
		sep[i] = strings.Repeat("─", w)
	}
	b.WriteString(styleTableBorder.Render(strings.Join(sep, "  ")))
	b.WriteString("\n")

	for i, row := range t.rows {
		line := joinPadded(row, widths)
		if i%2 == 1 {
			line = styleTableRowAlt.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func joinPadded(cells []string, widths []int) string {
	parts := make([]string, len(widths))
	for i := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		if pad := widths[i] - lipgloss.Width(cell); pad > 0 {
			cell += strings.Repeat(" ", pad)
		}
		parts[i] = cell
	}
	return strings.TrimRight(strings.Join(parts, "  "), " ")
}

func truncate(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
