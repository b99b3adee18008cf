package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	hintSeparator = "  ·  "
	maxStatusRows = 2
	overflowMark  = "…"
)

var (
	hintKeyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#d9a441")).Bold(true)
	hintDescStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#93a1b0"))
	hintSepStyle  = lipgloss.NewStyle().Foreground(colorBorder)
)

// KeyHint pairs a key with what it does.
type KeyHint struct {
	Key  string
	Desc string
}

func (h KeyHint) String() string {
	return hintKeyStyle.Render(SanitizeOneLine(h.Key)) + " " + hintDescStyle.Render(SanitizeOneLine(h.Desc))
}

// StatusBar lays hints out on centered lines that fit width. Hints are in
// priority order: what does not fit in two lines is replaced by "…".
// A non-positive width renders a single line.
func StatusBar(hints []KeyHint, width int) string {
	if len(hints) == 0 {
		return ""
	}
	rendered := make([]string, len(hints))
	for i, h := range hints {
		rendered[i] = h.String()
	}
	if width <= 0 {
		return strings.Join(rendered, hintSeparator)
	}

	rows := packHints(rendered, width, maxStatusRows)
	for i, row := range rows {
		rows[i] = lipgloss.PlaceHorizontal(width, lipgloss.Center, row)
	}
	return strings.Join(rows, "\n")
}

// packHints fills rows greedily up to width. Once maxRows are full the rest
// is dropped and the last row ends with the overflow mark.
func packHints(hints []string, width, maxRows int) []string {
	sep := hintSepStyle.Render(hintSeparator)
	var rows []string
	row, used := "", 0
	for i, h := range hints {
		w := lipgloss.Width(h)
		if used > 0 && used+lipgloss.Width(sep)+w > width {
			if len(rows)+1 == maxRows {
				rows = append(rows, row+sep+overflowMark)
				return rows
			}
			rows = append(rows, row)
			row, used = "", 0
		}
		if used > 0 {
			row += sep
			used += lipgloss.Width(sep)
		}
		row += h
		used += w
		if i == len(hints)-1 {
			rows = append(rows, row)
		}
	}
	return rows
}

// KeyList renders hints one per line with the keys in an aligned column.
func KeyList(hints []KeyHint) string {
	keyWidth := 0
	for _, h := range hints {
		keyWidth = max(keyWidth, lipgloss.Width(SanitizeOneLine(h.Key)))
	}
	lines := make([]string, len(hints))
	for i, h := range hints {
		key := lipgloss.NewStyle().Width(keyWidth).Render(SanitizeOneLine(h.Key))
		lines[i] = hintKeyStyle.Render(key) + "  " + hintDescStyle.Render(SanitizeOneLine(h.Desc))
	}
	return strings.Join(lines, "\n")
}
