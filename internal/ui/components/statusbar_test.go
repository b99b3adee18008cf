package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestKeyHintShowsKeyThenDesc(t *testing.T) {
	out := SanitizeText(KeyHint{Key: "ctrl+s", Desc: "Submit"}.String())
	assert.Equal(t, "ctrl+s Submit", out)
}

func TestKeyHintSanitizes(t *testing.T) {
	out := KeyHint{Key: "f1\x1b[2J", Desc: "He\u202elp"}.String()
	assert.NotContains(t, out, "\x1b[2J")
	assert.NotContains(t, out, "\u202e")
}

func TestStatusBarSingleLineWithoutWidth(t *testing.T) {
	out := SanitizeText(StatusBar([]KeyHint{{"ctrl+c", "Quit"}, {"f1", "Help"}}, 0))
	assert.Equal(t, "ctrl+c Quit  ·  f1 Help", out)
}

func TestStatusBarEmpty(t *testing.T) {
	assert.Equal(t, "", StatusBar(nil, 80))
}

func TestStatusBarFitsWidth(t *testing.T) {
	hints := []KeyHint{{"↑/↓", "Fields"}, {"←/→", "Cycle"}, {"ctrl+s", "Submit"}, {"f1", "Help"}}
	out := StatusBar(hints, 30)
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 2)
	for _, line := range lines {
		assert.LessOrEqual(t, lipgloss.Width(line), 30)
	}
	clean := SanitizeText(out)
	for _, h := range hints {
		assert.Contains(t, clean, h.Desc)
	}
}

func TestPackHintsMarksOverflow(t *testing.T) {
	rows := packHints([]string{"aaaa", "bbbb", "cccc", "dddd", "eeee"}, 10, 2)
	assert.Len(t, rows, 2)
	assert.Equal(t, "aaaa", SanitizeText(rows[0]))
	assert.Equal(t, "bbbb  ·  …", SanitizeText(rows[1]))
}

func TestPackHintsOneRowWhenWide(t *testing.T) {
	rows := packHints([]string{"abc", "def"}, 80, 2)
	assert.Equal(t, []string{"abc" + hintSepStyle.Render(hintSeparator) + "def"}, rows)
}

func TestKeyListAlignsKeys(t *testing.T) {
	out := SanitizeText(KeyList([]KeyHint{{"esc", "Back"}, {"ctrl+s", "Submit"}}))
	lines := strings.Split(out, "\n")
	assert.Equal(t, []string{"esc     Back", "ctrl+s  Submit"}, lines)
}
