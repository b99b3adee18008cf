package ui

import tea "github.com/charmbracelet/bubbletea"

func isKey(msg tea.KeyMsg, keys ...string) bool {
	for _, k := range keys {
		if msg.String() == k {
			return true
		}
	}
	return false
}

// Printable keys belong to the focused input, so global actions sit on
// control and function keys.
func isQuit(msg tea.KeyMsg) bool {
	return isKey(msg, "ctrl+c", "ctrl+q")
}

func isBack(msg tea.KeyMsg) bool {
	if msg.Type == tea.KeyEsc {
		return true
	}
	return isKey(msg, "esc", "escape", "ctrl+[")
}

func isHelp(msg tea.KeyMsg) bool {
	return isKey(msg, "f1", "ctrl+g")
}

func isSubmit(msg tea.KeyMsg) bool {
	return isKey(msg, "ctrl+s")
}

func isNextField(msg tea.KeyMsg) bool {
	return isKey(msg, "tab", "down", "enter")
}

func isPrevField(msg tea.KeyMsg) bool {
	return isKey(msg, "shift+tab", "up")
}

func isCycleLeft(msg tea.KeyMsg) bool {
	return isKey(msg, "left")
}

func isCycleRight(msg tea.KeyMsg) bool {
	return isKey(msg, "right", " ")
}
