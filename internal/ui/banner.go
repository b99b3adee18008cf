package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const bannerArt = `
 ███   ████  ████ █████  ████  ████     ███  █   █ ███ █   █
█   █ █     █     █     █     █        █   █ ██  █  █   █ █
█████ █     █     ████   ███   ███     █   █ █ █ █  █    █
█   █ █     █     █         █     █    █   █ █  ██  █   █ █
█   █  ████  ████ █████ ████  ████      ███  █   █ ███ █   █`

// Columns of bannerArt taken by the ACCESS glyphs.
const bannerSplit = 35

const bannerSubtitle = "EPUB accessibility metadata for ONIX • Command-Line Interface"

// RenderBanner returns the styled title block.
func RenderBanner() string {
	lines := strings.Split(strings.TrimPrefix(bannerArt, "\n"), "\n")

	blockWidth := lipgloss.Width(bannerSubtitle)
	for _, line := range lines {
		if w := lipgloss.Width(line); w > blockWidth {
			blockWidth = w
		}
	}

	var b strings.Builder
	for _, line := range lines {
		runes := []rune(line)
		cut := min(bannerSplit, len(runes))
		b.WriteString(BannerStyle.Render(string(runes[:cut])))
		b.WriteString(BannerAccentStyle.Render(string(runes[cut:])))
		b.WriteString("\n")
	}

	subtitle := lipgloss.NewStyle().
		Foreground(ColorMuted).
		Width(blockWidth).
		Align(lipgloss.Center).
		Render(bannerSubtitle)
	underline := lipgloss.NewStyle().
		Foreground(ColorBorder).
		Width(blockWidth).
		Align(lipgloss.Center).
		Render(strings.Repeat("─", lipgloss.Width(bannerSubtitle)))

	return "\n" + b.String() + "\n" + subtitle + "\n" + underline + "\n"
}
