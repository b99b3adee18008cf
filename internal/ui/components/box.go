package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Box geometry: the width follows the terminal between these bounds.
const (
	minBoxWidth = 40
	maxBoxWidth = 84
	boxChrome   = 6 // border 2, padding 4
)

var (
	colorBorder      = lipgloss.Color("#2b3a4a")
	colorTitle       = lipgloss.Color("#2f7dbd")
	colorAlertBorder = lipgloss.Color("#8a2f3a")
	colorOKBorder    = lipgloss.Color("#2f7a5a")

	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#93a1b0"))
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#dde3e8"))
	titleStyle = lipgloss.NewStyle().Foreground(colorTitle).Bold(true)

	alert = notice{
		frame:  rounded(colorAlertBorder, 0),
		header: lipgloss.NewStyle().Foreground(lipgloss.Color("#e06c75")).Bold(true),
		body:   lipgloss.NewStyle().Foreground(lipgloss.Color("#e2c2c2")),
	}
	ok = notice{
		frame:  rounded(colorOKBorder, 0),
		header: lipgloss.NewStyle().Foreground(lipgloss.Color("#6cc79a")).Bold(true),
		body:   valueStyle,
	}
)

func rounded(border lipgloss.Color, vpad int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(vpad, 2)
}

// frameWidth is the lipgloss width for a bordered box whose outer width is
// boxWidth.
func frameWidth(width int) int {
	return max(boxWidth(width)-2, 0)
}

// boxWidth is ~70% of the terminal, clamped to [minBoxWidth, maxBoxWidth]
// and never wider than the terminal itself.
func boxWidth(width int) int {
	if width <= 0 {
		return 0
	}
	w := min(max(width*70/100, minBoxWidth), maxBoxWidth)
	return min(w, width)
}

// BoxContentWidth returns the inner content width excluding border and padding.
func BoxContentWidth(width int) int {
	return max(boxWidth(width)-boxChrome, 0)
}

// ClampTextWidth folds text onto one line and cuts it to the given visual
// width. A non-positive width leaves the text alone.
func ClampTextWidth(text string, width int) string {
	if width <= 0 {
		return text
	}
	line := SanitizeOneLine(text)
	if lipgloss.Width(line) <= width {
		return line
	}
	return truncateRunes(line, width)
}

type notice struct {
	frame, header, body lipgloss.Style
}

func (n notice) render(title, message string, width int) string {
	var b strings.Builder
	if title != "" {
		b.WriteString(n.header.Render(SanitizeOneLine(title)))
		b.WriteByte('\n')
	}
	b.WriteString(n.body.Render(SanitizeText(message)))
	return n.frame.Width(frameWidth(width)).Render(b.String())
}

// AlertBox renders a red bordered notification. Message lines are kept so
// several server errors read one per line.
func AlertBox(title, message string, width int) string {
	return alert.render(title, message, width)
}

// SuccessBox renders a green bordered notification.
func SuccessBox(title, message string, width int) string {
	return ok.render(title, message, width)
}

// TitledBox renders a box with the title set into its top border.
func TitledBox(title, content string, width int) string {
	boxed := rounded(colorBorder, 1).Width(frameWidth(width)).Render(content)
	if title == "" {
		return boxed
	}
	top, rest, _ := strings.Cut(boxed, "\n")
	span := lipgloss.Width(top)
	if span < 4 {
		return boxed
	}
	return titleEdge(title, span) + "\n" + rest
}

// titleEdge draws "╭── title ───╮" exactly span cells wide.
func titleEdge(title string, span int) string {
	border := lipgloss.RoundedBorder()
	edge := lipgloss.NewStyle().Foreground(colorBorder)

	label := truncateRunes(" "+SanitizeOneLine(title)+" ", span-4)
	fill := max(span-4-lipgloss.Width(label), 0)
	return edge.Render(border.TopLeft+strings.Repeat(border.Top, 2)) +
		titleStyle.Render(label) +
		edge.Render(strings.Repeat(border.Top, fill)+border.TopRight)
}

func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// InfoRow renders a "label: value" line.
func InfoRow(label, value string) string {
	return labelStyle.Render(SanitizeOneLine(label)+": ") + valueStyle.Render(SanitizeOneLine(value))
}

// Indent adds left padding to every line of a multi-line string.
func Indent(s string, spaces int) string {
	pad := strings.Repeat(" ", spaces)
	return pad + strings.ReplaceAll(s, "\n", "\n"+pad)
}
