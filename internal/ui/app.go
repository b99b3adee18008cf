package ui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/deslibris/accessonix/cli/internal/api"
	"github.com/deslibris/accessonix/cli/internal/config"
	"github.com/deslibris/accessonix/cli/internal/logging"
	"github.com/deslibris/accessonix/cli/internal/submit"
	"github.com/deslibris/accessonix/cli/internal/ui/components"
)

const startupCheckTimeout = 700 * time.Millisecond

// --- Messages ---

type startupCheckedMsg struct{ err error }

// service reachability as shown in the header
const (
	serviceChecking    = "checking"
	serviceOnline      = "online"
	serviceUnreachable = "unreachable"
)

// --- App Model ---

// App is the root TUI model: header, form, banners and overlays.
type App struct {
	client      *api.Client
	config      *config.Config
	logger      *slog.Logger
	form        FormModel
	banners     Banners
	width       int
	height      int
	helpOpen    bool
	quitConfirm bool
	service     string
	lastSaved   string
}

// NewApp creates the root application model.
func NewApp(client *api.Client, cfg *config.Config, controller *submit.Controller, logger *slog.Logger) App {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	service := serviceChecking
	if client == nil {
		service = ""
	}
	return App{
		client:  client,
		config:  cfg,
		logger:  logger,
		form:    NewFormModel(controller),
		banners: NewBanners(cfg.MaxBanners, cfg.BannerDuration()),
		service: service,
	}
}

func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if a.client != nil {
		cmds = append(cmds, a.runStartupCheckCmd())
	}
	return tea.Batch(cmds...)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.form.width = msg.Width
		return a, nil

	case startupCheckedMsg:
		if msg.err != nil {
			a.service = serviceUnreachable
			a.logger.Warn("processing service unreachable", slog.String("url", a.client.BaseURL()), slog.Any("error", msg.err))
			return a, a.banners.Info(fmt.Sprintf("Processing service not reachable at %s", a.client.BaseURL()))
		}
		a.service = serviceOnline
		return a, nil

	case bannerExpiredMsg:
		a.banners.Dismiss(msg.id)
		return a, nil

	case validationFailedMsg:
		return a, a.banners.Notify(msg.message)

	case submitDoneMsg:
		var cmd tea.Cmd
		a.form, cmd = a.form.Update(msg)
		o := msg.outcome
		if o.OK() {
			a.lastSaved = o.SavedPath
			return a, tea.Batch(cmd, a.banners.Success(o.SavedPath))
		}
		return a, tea.Batch(cmd, a.banners.Notify(o.Message))

	case tea.KeyMsg:
		if a.quitConfirm {
			switch {
			case isKey(msg, "y"):
				return a, tea.Quit
			case isKey(msg, "n"), isBack(msg):
				a.quitConfirm = false
			}
			return a, nil
		}
		if a.helpOpen {
			if isBack(msg) || isHelp(msg) {
				a.helpOpen = false
			}
			return a, nil
		}

		// Global keys
		if isHelp(msg) {
			a.helpOpen = true
			return a, nil
		}
		if isQuit(msg) {
			if a.form.Submitting() {
				a.quitConfirm = true
				return a, nil
			}
			return a, tea.Quit
		}
		if isBack(msg) {
			a.banners.DismissTop()
			return a, nil
		}
	}

	var cmd tea.Cmd
	a.form, cmd = a.form.Update(msg)
	return a, cmd
}

func (a App) View() string {
	banner := centerBlockUniform(RenderBanner(), a.width)
	header := centerBlockUniform(a.renderHeader(), a.width)

	var content string
	switch {
	case a.quitConfirm:
		content = a.renderQuitConfirm()
	case a.helpOpen:
		content = a.renderHelp()
	default:
		content = a.form.View()
	}
	content = centerBlockUniform(content, a.width)

	hints := components.StatusBar(a.statusHints(), a.width)

	feedback := ""
	if a.banners.Len() > 0 {
		feedback = "\n\n" + centerBlockUniform(a.banners.View(a.width), a.width)
	}

	return fmt.Sprintf("%s\n%s\n\n%s\n\n%s%s", banner, header, content, hints, feedback)
}

func (a App) renderHeader() string {
	if a.client == nil {
		return ""
	}
	status := MutedStyle.Render(a.service)
	switch a.service {
	case serviceOnline:
		status = SuccessStyle.Render("● " + a.service)
	case serviceUnreachable:
		status = WarningStyle.Render("● " + a.service)
	}
	line := components.InfoRow("Service", a.client.ProcessURL()) + "  " + status
	if a.lastSaved != "" {
		line += "\n" + components.InfoRow("Last saved", a.lastSaved)
	}
	return line
}

func (a App) statusHints() []components.KeyHint {
	if a.quitConfirm {
		return []components.KeyHint{{Key: "y", Desc: "Confirm"}, {Key: "n", Desc: "Cancel"}}
	}
	if a.helpOpen {
		return []components.KeyHint{{Key: "esc", Desc: "Back"}}
	}
	return a.formHints()
}

// formHints is ordered by priority; the tail is what a narrow status bar drops.
func (a App) formHints() []components.KeyHint {
	hints := []components.KeyHint{{Key: "ctrl+s", Desc: "Generate ONIX"}}
	if a.banners.Len() > 0 {
		hints = append(hints, components.KeyHint{Key: "esc", Desc: "Dismiss"})
	}
	return append(hints,
		components.KeyHint{Key: "ctrl+c", Desc: "Quit"},
		components.KeyHint{Key: "f1", Desc: "Help"},
		components.KeyHint{Key: "↑/↓", Desc: "Fields"},
		components.KeyHint{Key: "←/→", Desc: "Cycle"},
	)
}

var helpKeys = []components.KeyHint{
	{Key: "tab/↓/enter", Desc: "Next field"},
	{Key: "shift+tab/↑", Desc: "Previous field"},
	{Key: "←/→/space", Desc: "Change Mode, Product and Language"},
	{Key: "ctrl+s", Desc: "Generate ONIX from the files"},
	{Key: "esc", Desc: "Dismiss the newest notice"},
	{Key: "ctrl+c", Desc: "Quit"},
}

func (a App) renderHelp() string {
	lines := []string{
		MutedStyle.Render("esc to close"),
		"",
		components.Indent(components.KeyList(helpKeys), 2),
		"",
		MutedStyle.Render("Basic mode sends the EPUB, the ONIX record and the ISBN."),
		MutedStyle.Render("Enhanced mode also sends sender, contact, product and price details."),
		MutedStyle.Render(fmt.Sprintf("Generated files are saved to %s.", a.config.DownloadDir)),
	}
	return components.Indent(components.TitledBox("Help", strings.Join(lines, "\n"), a.width), 1)
}

func (a App) renderQuitConfirm() string {
	body := "A submission is still processing. Quit anyway?"
	return components.Indent(components.ConfirmDialog("Quit", body), 1)
}

func (a App) runStartupCheckCmd() tea.Cmd {
	client := a.client.WithTimeout(startupCheckTimeout)
	return func() tea.Msg {
		return startupCheckedMsg{err: client.Ping()}
	}
}

func centerBlockUniform(s string, width int) string {
	if width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	maxWidth := 0
	for _, line := range lines {
		if w := lipgloss.Width(line); w > maxWidth {
			maxWidth = w
		}
	}
	if maxWidth <= 0 || maxWidth >= width {
		return s
	}
	pad := (width - maxWidth) / 2
	if pad <= 0 {
		return s
	}
	prefix := strings.Repeat(" ", pad)
	for i := range lines {
		if lines[i] != "" {
			lines[i] = prefix + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}
