package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/deslibris/accessonix/cli/internal/form"
	"github.com/deslibris/accessonix/cli/internal/submit"
	"github.com/deslibris/accessonix/cli/internal/ui/components"
)

// submitControl is the focus slot after the last visible field.
const submitControl = -1

const (
	submitLabel = "Generate ONIX"
	busyLabel   = "Processing..."
)

// --- Messages ---

type validationFailedMsg struct{ message string }
type submitDoneMsg struct{ outcome submit.Outcome }

// fieldRow is the widget state for one entry of form.Fields.
type fieldRow struct {
	field  form.Field
	input  textinput.Model
	choice int // index into form.Options, -1 when nothing is chosen
}

// FormModel is the AccessONIX upload form.
type FormModel struct {
	state         *form.State
	controller    *submit.Controller
	rows          []fieldRow
	focus         int
	emailFeedback form.Feedback
	submitting    bool
	spinner       spinner.Model
	width         int
}

// NewFormModel builds the form in basic mode with the EPUB path focused.
func NewFormModel(controller *submit.Controller) FormModel {
	m := FormModel{
		state:      form.NewState(form.RoleBasic),
		controller: controller,
		rows:       make([]fieldRow, len(form.Fields)),
		spinner:    spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(AccentStyle)),
	}
	for i, f := range form.Fields {
		m.rows[i] = newFieldRow(f)
	}
	m.syncChoices()
	m.setFocus(0)
	return m
}

func newFieldRow(f form.Field) fieldRow {
	row := fieldRow{field: f, choice: -1}
	if f.Kind == form.KindChoice {
		return row
	}
	in := textinput.New()
	in.Prompt = ""
	switch f.Kind {
	case form.KindFile:
		in.Placeholder = "path/to/file" + fileSuffix(f.Name)
		in.CharLimit = 1024
	case form.KindPrice:
		in.Placeholder = "0.00"
		in.CharLimit = 16
	default:
		in.CharLimit = 200
	}
	if f.Name == form.FieldISBN {
		in.Placeholder = "13 digits"
		in.CharLimit = 32
	}
	row.input = in
	return row
}

func fileSuffix(name string) string {
	if name == form.FieldEPUBFile {
		return ".epub"
	}
	return ".xml"
}

// State exposes the form values.
func (m FormModel) State() *form.State {
	return m.state
}

// Submitting reports whether the submit control shows the busy label.
func (m FormModel) Submitting() bool {
	return m.submitting
}

// focusOrder lists the row indexes that can take focus, followed by the
// submit control.
func (m FormModel) focusOrder() []int {
	order := make([]int, 0, len(m.rows)+1)
	for i, row := range m.rows {
		if row.field.Enhanced && !m.state.EnhancedVisible() {
			continue
		}
		order = append(order, i)
	}
	return append(order, submitControl)
}

func (m FormModel) focusedRow() int {
	order := m.focusOrder()
	if m.focus < 0 || m.focus >= len(order) {
		return submitControl
	}
	return order[m.focus]
}

func (m *FormModel) setFocus(pos int) tea.Cmd {
	order := m.focusOrder()
	if pos < 0 {
		pos = len(order) - 1
	}
	if pos >= len(order) {
		pos = 0
	}
	m.focus = pos
	var cmd tea.Cmd
	for i := range m.rows {
		if m.rows[i].field.Kind == form.KindChoice {
			continue
		}
		if i == order[pos] {
			cmd = m.rows[i].input.Focus()
			continue
		}
		m.rows[i].input.Blur()
	}
	return cmd
}

// Update handles one message for the form.
func (m FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case submitDoneMsg:
		m.submitting = false
		return m, nil
	case spinner.TickMsg:
		if !m.submitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m.handleKeys(msg)
	}
	if idx := m.focusedRow(); idx != submitControl && m.rows[idx].field.Kind != form.KindChoice {
		var cmd tea.Cmd
		m.rows[idx].input, cmd = m.rows[idx].input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m FormModel) handleKeys(msg tea.KeyMsg) (FormModel, tea.Cmd) {
	idx := m.focusedRow()
	switch {
	case isSubmit(msg):
		return m.submit()
	case idx == submitControl && isKey(msg, "enter", " "):
		return m.submit()
	case isNextField(msg):
		cmd := m.setFocus(m.focus + 1)
		return m, cmd
	case isPrevField(msg):
		cmd := m.setFocus(m.focus - 1)
		return m, cmd
	case idx == submitControl:
		return m, nil
	}

	row := &m.rows[idx]
	if row.field.Kind == form.KindChoice {
		switch {
		case isCycleLeft(msg):
			m.cycle(idx, -1)
		case isCycleRight(msg):
			m.cycle(idx, 1)
		}
		return m, nil
	}

	var cmd tea.Cmd
	row.input, cmd = row.input.Update(msg)
	m.applyInput(idx)
	return m, cmd
}

// applyInput runs the field formatter on the input buffer, rewriting it in
// place, and stores the result.
func (m *FormModel) applyInput(idx int) {
	row := &m.rows[idx]
	raw := row.input.Value()
	value := form.Format(row.field.Name, raw)
	if value != raw {
		row.input.SetValue(value)
	}
	m.state.Set(row.field.Name, value)
	if row.field.Name == form.FieldEmail {
		m.emailFeedback = form.CheckEmail(value)
	}
}

func (m *FormModel) cycle(idx, step int) {
	row := &m.rows[idx]
	options := form.Options(row.field.Name)
	if len(options) == 0 {
		return
	}
	next := row.choice + step
	switch {
	case next < 0:
		next = len(options) - 1
	case next >= len(options):
		next = 0
	}
	row.choice = next
	code := options[next].Code

	if row.field.Name == form.FieldRole {
		m.setRole(form.Role(code))
		return
	}
	m.state.Set(row.field.Name, code)
}

// setRole runs the mode controller and rebuilds the enhanced widgets from
// the resulting state.
func (m *FormModel) setRole(role form.Role) {
	m.state.SetRole(role)
	for i := range m.rows {
		if !m.rows[i].field.Enhanced || m.rows[i].field.Kind == form.KindChoice {
			continue
		}
		m.rows[i].input.SetValue(m.state.Get(m.rows[i].field.Name))
	}
	m.emailFeedback = form.CheckEmail(m.state.Get(form.FieldEmail))
	m.syncChoices()
}

// syncChoices points every selector at the value held in state.
func (m *FormModel) syncChoices() {
	for i := range m.rows {
		if m.rows[i].field.Kind == form.KindChoice {
			m.rows[i].choice = choiceIndex(m.rows[i].field.Name, m.state.Get(m.rows[i].field.Name))
		}
	}
}

func choiceIndex(name, code string) int {
	for i, o := range form.Options(name) {
		if o.Code == code {
			return i
		}
	}
	return -1
}

// submit validates, takes the submitting flag and hands the network call to
// a command. A submit while one is in flight is ignored.
func (m FormModel) submit() (FormModel, tea.Cmd) {
	if m.submitting || m.controller == nil || m.controller.Submitting() {
		return m, nil
	}
	if r := m.controller.Validate(m.state); !r.OK() {
		return m, func() tea.Msg { return validationFailedMsg{message: r.Message} }
	}
	req, ok := m.controller.Begin(m.state)
	if !ok {
		return m, nil
	}
	m.submitting = true
	controller := m.controller
	send := func() tea.Msg {
		return submitDoneMsg{outcome: controller.Finish(controller.Send(req))}
	}
	return m, tea.Batch(send, m.spinner.Tick)
}

// --- View ---

func (m FormModel) View() string {
	focused := m.focusedRow()
	var b strings.Builder

	b.WriteString(SectionStyle.Render("Files"))
	b.WriteString("\n")
	m.renderRows(&b, focused, func(f form.Field) bool { return f.Kind == form.KindFile })

	b.WriteString("\n")
	b.WriteString(SectionStyle.Render("Publication"))
	b.WriteString("\n")
	m.renderRows(&b, focused, func(f form.Field) bool { return !f.Enhanced && f.Kind != form.KindFile })

	if m.state.EnhancedVisible() {
		b.WriteString("\n")
		b.WriteString(SectionStyle.Render("Enhanced metadata"))
		b.WriteString("\n")
		m.renderRows(&b, focused, func(f form.Field) bool { return f.Enhanced })
	}

	b.WriteString("\n")
	b.WriteString(m.renderSubmit(focused == submitControl))

	title := "AccessONIX"
	if m.state.Role() == form.RoleEnhanced {
		title = "AccessONIX · Enhanced"
	}
	return components.TitledBox(title, b.String(), m.width)
}

func (m FormModel) renderRows(b *strings.Builder, focused int, include func(form.Field) bool) {
	for i, row := range m.rows {
		if !include(row.field) {
			continue
		}
		if row.field.Enhanced && !m.state.EnhancedVisible() {
			continue
		}
		b.WriteString(m.renderRow(i, i == focused))
		b.WriteString("\n")
	}
}

func (m FormModel) renderRow(idx int, focused bool) string {
	row := m.rows[idx]
	label := row.field.Label
	if m.state.Required(row.field.Name) {
		label += " *"
	}
	invalidEmail := row.field.Name == form.FieldEmail && m.emailFeedback.Invalid

	var line string
	switch {
	case invalidEmail:
		line = ErrorStyle.Render("✗ " + label + ":")
	case focused:
		line = SelectedStyle.Render("> " + label + ":")
	default:
		line = MutedStyle.Render("  " + label + ":")
	}
	line += " " + m.renderValue(row, focused)

	if row.field.Kind == form.KindFile {
		if desc := submit.DescribeFile(row.input.Value()); desc != "" {
			desc = components.ClampTextWidth(components.SanitizeOneLine(desc), components.BoxContentWidth(m.width)-4)
			line += "\n    " + MutedStyle.Render(desc)
		}
	}
	if invalidEmail {
		line += "\n    " + ErrorStyle.Render(m.emailFeedback.Message)
	}
	return line
}

func (m FormModel) renderValue(row fieldRow, focused bool) string {
	if row.field.Kind != form.KindChoice {
		return row.input.View()
	}
	options := form.Options(row.field.Name)
	if row.choice < 0 || row.choice >= len(options) {
		if focused {
			return AccentStyle.Render("‹ Select ›")
		}
		return MutedStyle.Render("Select…")
	}
	opt := options[row.choice]
	text := opt.Label
	if row.field.Name != form.FieldRole {
		text = opt.Code + " · " + opt.Label
	}
	if focused {
		return AccentStyle.Render("‹ " + text + " ›")
	}
	return NormalStyle.Render(text)
}

func (m FormModel) renderSubmit(focused bool) string {
	if m.submitting {
		return "  " + m.spinner.View() + " " + ButtonBusyStyle.Render(busyLabel)
	}
	prefix := "  "
	if focused {
		prefix = SelectedStyle.Render("> ")
	}
	return prefix + ButtonStyle.Render(submitLabel)
}
