package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/deslibris/accessonix/cli/internal/ui/components"
)

const (
	defaultBannerTTL = 5 * time.Second
	defaultBannerMax = 3
)

type bannerLevel int

const (
	bannerError bannerLevel = iota
	bannerSuccess
	bannerInfo
)

// Banner is one dismissible notification.
type Banner struct {
	ID    int
	Level bannerLevel
	Text  string
}

type bannerExpiredMsg struct{ id int }

// Banners is the on-screen notifier. New banners go on top of the stack,
// each expires on its own timer, and at most max are kept (oldest dropped
// first).
type Banners struct {
	items []Banner
	next  int
	max   int
	ttl   time.Duration
}

// NewBanners builds an empty stack. Non-positive limits fall back to the
// defaults.
func NewBanners(max int, ttl time.Duration) Banners {
	if max <= 0 {
		max = defaultBannerMax
	}
	if ttl <= 0 {
		ttl = defaultBannerTTL
	}
	return Banners{max: max, ttl: ttl}
}

// Notify pushes an error banner.
func (b *Banners) Notify(message string) tea.Cmd {
	return b.push(bannerError, message)
}

// Success pushes a success banner.
func (b *Banners) Success(message string) tea.Cmd {
	return b.push(bannerSuccess, message)
}

// Info pushes a neutral banner.
func (b *Banners) Info(message string) tea.Cmd {
	return b.push(bannerInfo, message)
}

func (b *Banners) push(level bannerLevel, message string) tea.Cmd {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil
	}
	if b.max <= 0 || b.ttl <= 0 {
		d := NewBanners(b.max, b.ttl)
		b.max, b.ttl = d.max, d.ttl
	}
	b.next++
	id := b.next
	b.items = append([]Banner{{ID: id, Level: level, Text: message}}, b.items...)
	if len(b.items) > b.max {
		b.items = b.items[:b.max]
	}
	return tea.Tick(b.ttl, func(time.Time) tea.Msg {
		return bannerExpiredMsg{id: id}
	})
}

// Dismiss removes the banner with id. Unknown ids are ignored.
func (b *Banners) Dismiss(id int) bool {
	for i, item := range b.items {
		if item.ID == id {
			b.items = append(b.items[:i:i], b.items[i+1:]...)
			return true
		}
	}
	return false
}

// DismissTop removes the newest banner.
func (b *Banners) DismissTop() bool {
	if len(b.items) == 0 {
		return false
	}
	b.items = b.items[1:]
	return true
}

// Items returns the visible banners, newest first.
func (b Banners) Items() []Banner {
	return b.items
}

// Len reports how many banners are visible.
func (b Banners) Len() int {
	return len(b.items)
}

// View renders the stack top-down.
func (b Banners) View(width int) string {
	if len(b.items) == 0 {
		return ""
	}
	blocks := make([]string, 0, len(b.items))
	for _, item := range b.items {
		switch item.Level {
		case bannerSuccess:
			blocks = append(blocks, components.SuccessBox("Saved", item.Text, width))
		case bannerInfo:
			blocks = append(blocks, components.TitledBox("Notice", components.SanitizeText(item.Text), width))
		default:
			blocks = append(blocks, components.AlertBox("Error", item.Text, width))
		}
	}
	return strings.Join(blocks, "\n")
}
