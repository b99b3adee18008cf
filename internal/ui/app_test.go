package ui

import (
	"errors"
	"net/http"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deslibris/accessonix/cli/internal/api"
	"github.com/deslibris/accessonix/cli/internal/config"
	"github.com/deslibris/accessonix/cli/internal/form"
	"github.com/deslibris/accessonix/cli/internal/submit"
	"github.com/deslibris/accessonix/cli/internal/ui/components"
)

func update(t *testing.T, a App, msg tea.Msg) (App, tea.Cmd) {
	t.Helper()
	model, cmd := a.Update(msg)
	updated, ok := model.(App)
	require.True(t, ok)
	return updated, cmd
}

func TestHelpToggle(t *testing.T) {
	app := NewApp(nil, config.Default(), nil, nil)
	app, _ = update(t, app, tea.KeyMsg{Type: tea.KeyF1})
	assert.True(t, app.helpOpen)
	assert.Contains(t, components.SanitizeText(app.View()), "Next field")

	app, _ = update(t, app, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, app.helpOpen)
}

func TestQuitWhenIdle(t *testing.T) {
	app := NewApp(nil, config.Default(), nil, nil)
	_, cmd := update(t, app, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestTypingQDoesNotQuit(t *testing.T) {
	app := NewApp(nil, config.Default(), nil, nil)
	app, _ = update(t, app, runeKey('q'))
	assert.False(t, app.quitConfirm)
	assert.Equal(t, "q", app.form.State().Get(form.FieldEPUBFile))
}

func TestQuitConfirmWhileSubmitting(t *testing.T) {
	app := NewApp(nil, config.Default(), nil, nil)
	app.form.submitting = true

	app, cmd := update(t, app, tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.Nil(t, cmd)
	assert.True(t, app.quitConfirm)
	assert.Contains(t, components.SanitizeText(app.View()), "Quit anyway?")

	app, _ = update(t, app, runeKey('n'))
	assert.False(t, app.quitConfirm)

	app, _ = update(t, app, tea.KeyMsg{Type: tea.KeyCtrlC})
	_, cmd = update(t, app, runeKey('y'))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestValidationFailureBecomesBanner(t *testing.T) {
	app := NewApp(nil, config.Default(), nil, nil)
	app, cmd := update(t, app, validationFailedMsg{message: form.MsgFilesRequired})
	assert.NotNil(t, cmd)
	require.Equal(t, 1, app.banners.Len())
	assert.Contains(t, components.SanitizeText(app.View()), form.MsgFilesRequired)

	id := app.banners.Items()[0].ID
	app, _ = update(t, app, bannerExpiredMsg{id: id})
	assert.Zero(t, app.banners.Len())
}

func TestEscDismissesNewestBanner(t *testing.T) {
	app := NewApp(nil, config.Default(), nil, nil)
	app, _ = update(t, app, validationFailedMsg{message: "first"})
	app, _ = update(t, app, validationFailedMsg{message: "second"})

	app, _ = update(t, app, tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, 1, app.banners.Len())
	assert.Equal(t, "first", app.banners.Items()[0].Text)
}

func TestStatusHintsOfferDismissOnlyWithBanners(t *testing.T) {
	app := NewApp(nil, config.Default(), nil, nil)
	assert.Equal(t, components.KeyHint{Key: "ctrl+s", Desc: "Generate ONIX"}, app.statusHints()[0])
	assert.NotContains(t, app.statusHints(), components.KeyHint{Key: "esc", Desc: "Dismiss"})

	app, _ = update(t, app, validationFailedMsg{message: "first"})
	assert.Equal(t, components.KeyHint{Key: "esc", Desc: "Dismiss"}, app.statusHints()[1])
}

func TestNarrowStatusBarKeepsSubmitHint(t *testing.T) {
	app := NewApp(nil, config.Default(), nil, nil)
	bar := components.SanitizeText(components.StatusBar(app.statusHints(), 30))
	assert.Contains(t, bar, "ctrl+s Generate ONIX")
	assert.Contains(t, bar, "…")
}

func TestBannerStackRespectsConfig(t *testing.T) {
	cfg := config.Default()
	cfg.MaxBanners = 2
	app := NewApp(nil, cfg, nil, nil)
	for _, text := range []string{"a", "b", "c"} {
		app, _ = update(t, app, validationFailedMsg{message: text})
	}
	assert.Equal(t, 2, app.banners.Len())
}

func TestSubmitEndToEndSavesDocument(t *testing.T) {
	c, _ := newTestController(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<ONIXMessage/>"))
	})
	app := NewApp(nil, config.Default(), c, nil)
	app.form = focusSubmit(fillBasic(t, app.form))

	app, cmd := update(t, app, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)
	assert.True(t, app.form.Submitting())

	app, _ = update(t, app, submitResult(t, cmd))
	assert.False(t, app.form.Submitting())
	require.Equal(t, 1, app.banners.Len())
	assert.Equal(t, bannerSuccess, app.banners.Items()[0].Level)
	assert.Contains(t, app.lastSaved, "AccessONIX_9781234567897_2024-03-09T140507123Z.xml")
}

func TestSubmitRejectionShowsJoinedMessages(t *testing.T) {
	c, _ := newTestController(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"errors":["Bad ISBN","Bad email"]}`))
	})
	app := NewApp(nil, config.Default(), c, nil)
	app.form = fillBasic(t, app.form)

	app, cmd := update(t, app, tea.KeyMsg{Type: tea.KeyCtrlS})
	app, _ = update(t, app, submitResult(t, cmd))

	require.Equal(t, 1, app.banners.Len())
	assert.Equal(t, "Bad ISBN\nBad email", app.banners.Items()[0].Text)
	assert.False(t, app.form.Submitting())
	assert.False(t, c.Submitting())
	assert.Empty(t, app.lastSaved)
}

func TestSubmitOutcomeMessages(t *testing.T) {
	app := NewApp(nil, config.Default(), nil, nil)
	app.form.submitting = true
	app, _ = update(t, app, submitDoneMsg{outcome: submit.Outcome{
		Kind:    submit.KindTransportFailed,
		Message: "Submission failed: could not reach the processing service",
	}})
	assert.False(t, app.form.Submitting())
	require.Equal(t, 1, app.banners.Len())
	assert.Equal(t, bannerError, app.banners.Items()[0].Level)
}

func TestStartupCheckMarksService(t *testing.T) {
	client := api.NewClient("http://127.0.0.1:1")
	app := NewApp(client, config.Default(), nil, nil)
	assert.Equal(t, serviceChecking, app.service)
	assert.NotNil(t, app.Init())

	online, _ := update(t, app, startupCheckedMsg{})
	assert.Equal(t, serviceOnline, online.service)
	assert.Contains(t, components.SanitizeText(online.View()), "http://127.0.0.1:1/process")

	offline, cmd := update(t, app, startupCheckedMsg{err: errors.New("refused")})
	assert.Equal(t, serviceUnreachable, offline.service)
	assert.NotNil(t, cmd)
	assert.Equal(t, 1, offline.banners.Len())
}

func TestWindowSizePropagatesToForm(t *testing.T) {
	app := NewApp(nil, config.Default(), nil, nil)
	app, _ = update(t, app, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, app.form.width)
	assert.NotEmpty(t, app.View())
}
