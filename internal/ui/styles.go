package ui

import "github.com/charmbracelet/lipgloss"

// Palette
var (
	ColorPrimary    = lipgloss.Color("#2f7dbd") // blue
	ColorSecondary  = lipgloss.Color("#4f8fa3") // teal
	ColorAccent     = lipgloss.Color("#d9a441") // amber
	ColorBackground = lipgloss.Color("#101820")
	ColorText       = lipgloss.Color("#dde3e8")
	ColorMuted      = lipgloss.Color("#93a1b0")
	ColorSuccess    = lipgloss.Color("#3f9b74") // green
	ColorError      = lipgloss.Color("#d5616c") // red
	ColorWarning    = lipgloss.Color("#d08a4e") // orange
	ColorBorder     = lipgloss.Color("#2b3a4a")
)

func fg(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

func button(bg lipgloss.Color) lipgloss.Style {
	return fg(ColorBackground).Background(bg).Padding(0, 3)
}

var (
	BannerStyle       = fg(ColorPrimary).Bold(true)
	BannerAccentStyle = fg(ColorAccent).Bold(true)

	SelectedStyle = fg(ColorPrimary).Bold(true)
	NormalStyle   = fg(ColorText)
	MutedStyle    = fg(ColorMuted)
	AccentStyle   = fg(ColorAccent)
	SectionStyle  = fg(ColorSecondary).Bold(true).Underline(true)

	SuccessStyle = fg(ColorSuccess)
	WarningStyle = fg(ColorWarning)
	ErrorStyle   = fg(ColorError).Bold(true)

	ButtonStyle     = button(ColorPrimary).Bold(true)
	ButtonBusyStyle = button(ColorMuted).Italic(true)
)
