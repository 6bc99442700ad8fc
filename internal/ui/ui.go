package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/DaanHessen/envdeck/internal/envctl"
	"github.com/DaanHessen/envdeck/internal/preset"
	"github.com/DaanHessen/envdeck/internal/util"
)

const (
	viewPresets = "presets"
	viewCurrent = "current"
	viewForm    = "form"
	viewConfirm = "confirm"
	viewHelp    = "help"
)

type statusLevel int

const (
	statusInfo statusLevel = iota
	statusOK
	statusWarn
	statusError
)

type model struct {
	store   *preset.Store
	presets preset.Collection
	applier *envctl.Applier

	view    string
	cursor  int
	form    form
	editing string // name of the preset being edited; "" means a new one

	// pending delete
	confirmName string

	snapshot envctl.Snapshot

	status      string
	statusLevel statusLevel

	themeName string
	pal       palette

	helpRendered string

	version string
	width   int
	height  int
}

func initialModel(st *preset.Store, presets preset.Collection, applier *envctl.Applier, cfg util.Config) model {
	m := model{
		store:     st,
		presets:   presets,
		applier:   applier,
		view:      viewPresets,
		themeName: cfg.Theme,
		version:   cfg.Version,
	}
	m.pal = paletteFor(m.themeName)
	m.snapshot = envctl.ReadCurrent()
	if !applier.SupportsPersistentScope() {
		m.setStatus(fmt.Sprintf("%v; applies reach this session only", applier.PersistentScopeError()), statusWarn)
	}
	return m
}

func (m *model) setStatus(msg string, level statusLevel) {
	m.status = msg
	m.statusLevel = level
}

func (m *model) clampCursor() {
	if m.cursor >= len(m.presets) {
		m.cursor = len(m.presets) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// applySelected writes the preset under the cursor into both environment
// scopes and reports the per-scope outcome on the status line.
func (m *model) applySelected() {
	if len(m.presets) == 0 {
		return
	}
	rec := m.presets[m.cursor]
	res, err := m.applier.Apply(rec)
	m.snapshot = envctl.ReadCurrent()
	switch {
	case err != nil:
		m.setStatus(fmt.Sprintf("apply %q failed: %v", rec.Name, err), statusError)
	case res.ProcessOK && res.PersistentOK:
		m.setStatus(fmt.Sprintf("applied %q to this session and to the persistent environment (new logins pick it up)", rec.Name), statusOK)
	case res.ProcessOK:
		m.setStatus(fmt.Sprintf("applied %q to this session only; persistent write failed: %v", rec.Name, res.PersistentErr), statusWarn)
	default:
		m.setStatus(fmt.Sprintf("applied %q to the persistent environment only; process write failed: %v", rec.Name, res.ProcessErr), statusWarn)
	}
}

// submitForm validates and persists the form, routing store errors back onto
// the form instead of losing them.
func (m *model) submitForm() {
	rec := m.form.record()
	if rec.Name == "" {
		m.form.errMsg = "name is required"
		return
	}
	var (
		next preset.Collection
		err  error
	)
	if m.editing == "" {
		next, err = m.store.Add(m.presets, rec)
	} else {
		next, err = m.store.Update(m.presets, m.editing, rec)
	}
	if err != nil {
		m.form.errMsg = err.Error()
		return
	}
	m.presets = next
	if m.editing == "" {
		m.cursor = len(m.presets) - 1
		m.setStatus(fmt.Sprintf("added %q", rec.Name), statusOK)
	} else {
		m.setStatus(fmt.Sprintf("saved %q", rec.Name), statusOK)
	}
	m.editing = ""
	m.view = viewPresets
}

func (m *model) deleteConfirmed() {
	next, err := m.store.Remove(m.presets, m.confirmName)
	if err != nil {
		m.setStatus(fmt.Sprintf("delete %q failed: %v", m.confirmName, err), statusError)
	} else {
		m.presets = next
		m.setStatus(fmt.Sprintf("deleted %q", m.confirmName), statusOK)
	}
	m.confirmName = ""
	m.clampCursor()
	m.view = viewPresets
}

// tea.Model implementation ---------------------------------------------------

func (m model) Init() tea.Cmd { return nil }

func (m model) View() string {
	switch m.view {
	case viewPresets:
		return m.renderPresets()
	case viewCurrent:
		return m.renderCurrent()
	case viewForm:
		return m.renderForm()
	case viewConfirm:
		return m.renderConfirm()
	case viewHelp:
		return m.renderHelp()
	default:
		return ""
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()

	// The form owns the keyboard while it is open.
	if m.view == viewForm {
		switch k {
		case "esc":
			m.editing = ""
			m.view = viewPresets
			return m, nil
		case "enter":
			if m.form.focus == len(m.form.inputs)-1 {
				m.submitForm()
				return m, nil
			}
			m.form.focusNext()
			return m, nil
		case "ctrl+s":
			m.submitForm()
			return m, nil
		case "tab", "down":
			m.form.focusNext()
			return m, nil
		case "shift+tab", "up":
			m.form.focusPrev()
			return m, nil
		}
		var cmd tea.Cmd
		m.form, cmd = m.form.update(msg)
		return m, cmd
	}

	if m.view == viewConfirm {
		switch k {
		case "y", "enter":
			m.deleteConfirmed()
		case "n", "esc":
			m.confirmName = ""
			m.view = viewPresets
		}
		return m, nil
	}

	if m.view == viewHelp {
		switch k {
		case "esc", "q", "?":
			m.view = viewPresets
		}
		return m, nil
	}

	// Keys shared by the presets and current pages.
	switch k {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "?":
		if m.helpRendered == "" {
			m.helpRendered = renderHelpMarkdown(m.themeName)
		}
		m.view = viewHelp
		return m, nil
	case "t":
		m.themeName = nextThemeName(m.themeName)
		m.pal = paletteFor(m.themeName)
		m.helpRendered = ""
		return m, nil
	case "1":
		m.view = viewPresets
		return m, nil
	case "2":
		m.snapshot = envctl.ReadCurrent()
		m.view = viewCurrent
		return m, nil
	case "tab":
		if m.view == viewCurrent {
			m.view = viewPresets
		} else {
			m.snapshot = envctl.ReadCurrent()
			m.view = viewCurrent
		}
		return m, nil
	}

	if m.view == viewCurrent {
		if k == "r" {
			m.snapshot = envctl.ReadCurrent()
			m.setStatus("refreshed", statusInfo)
		}
		return m, nil
	}

	// presets page
	switch k {
	case "up", "k":
		m.cursor--
		m.clampCursor()
	case "down", "j":
		m.cursor++
		m.clampCursor()
	case "enter":
		m.applySelected()
	case "a":
		m.editing = ""
		m.form = newForm(preset.Record{}, m.pal)
		m.view = viewForm
	case "e":
		if len(m.presets) > 0 {
			rec := m.presets[m.cursor]
			m.editing = rec.Name
			m.form = newForm(rec, m.pal)
			m.view = viewForm
		}
	case "d":
		if len(m.presets) > 0 {
			m.confirmName = m.presets[m.cursor].Name
			m.view = viewConfirm
		}
	}
	return m, nil
}

// rendering -------------------------------------------------------------------

func (m model) titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(m.pal.Accent)
}

func (m model) mutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(m.pal.Muted)
}

func (m model) statusLine() string {
	if m.status == "" {
		return ""
	}
	color := m.pal.Muted
	switch m.statusLevel {
	case statusOK:
		color = m.pal.Success
	case statusWarn:
		color = m.pal.Warning
	case statusError:
		color = m.pal.Danger
	}
	return lipgloss.NewStyle().Foreground(color).Render(m.status) + "\n"
}

func (m model) header(active string) string {
	tabs := []string{"[1] Presets", "[2] Current"}
	rendered := make([]string, len(tabs))
	for i, tab := range tabs {
		style := m.mutedStyle()
		if (i == 0 && active == viewPresets) || (i == 1 && active == viewCurrent) {
			style = lipgloss.NewStyle().Bold(true).Foreground(m.pal.Text)
		}
		rendered[i] = style.Render(tab)
	}
	title := m.titleStyle().Render("envdeck " + m.version)
	return title + "  " + strings.Join(rendered, "  ") + "\n\n"
}

func (m model) renderPresets() string {
	var b strings.Builder
	b.WriteString(m.header(viewPresets))
	if len(m.presets) == 0 {
		b.WriteString(m.mutedStyle().Render("(no presets yet; press 'a' to add one)") + "\n")
	}
	selected := lipgloss.NewStyle().Bold(true).Foreground(m.pal.Accent)
	for i, rec := range m.presets {
		marker := "  "
		name := rec.Name
		if i == m.cursor {
			marker = "> "
			name = selected.Render(name)
		}
		detail := describeRecord(rec)
		b.WriteString(marker + name)
		if detail != "" {
			b.WriteString("  " + m.mutedStyle().Render(detail))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n" + m.statusLine())
	keys := "enter apply · a add · e edit · d delete · 2 current · t theme · ? help · q quit"
	if !m.applier.SupportsPersistentScope() {
		keys += "  (persistent scope unavailable)"
	}
	b.WriteString(m.mutedStyle().Render(keys) + "\n")
	return b.String()
}

func (m model) renderCurrent() string {
	var b strings.Builder
	b.WriteString(m.header(viewCurrent))
	b.WriteString(m.titleStyle().Render("Current configuration (process scope)") + "\n\n")
	keyStyle := lipgloss.NewStyle().Foreground(m.pal.Text).Width(30)
	for _, v := range m.snapshot {
		b.WriteString("  " + keyStyle.Render(v.Key))
		switch {
		case !v.Set:
			b.WriteString(m.mutedStyle().Render("(not set)"))
		case v.Value == "":
			b.WriteString(m.mutedStyle().Render("(empty)"))
		default:
			b.WriteString(displayValue(v.Key, v.Value))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n" + m.statusLine())
	b.WriteString(m.mutedStyle().Render("r refresh · 1 presets · t theme · ? help · q quit") + "\n")
	return b.String()
}

func (m model) renderConfirm() string {
	var b strings.Builder
	b.WriteString(m.header(viewPresets))
	warn := lipgloss.NewStyle().Foreground(m.pal.Danger)
	b.WriteString(warn.Render(fmt.Sprintf("Delete preset %q?", m.confirmName)) + "\n\n")
	b.WriteString(m.mutedStyle().Render("y delete · n cancel") + "\n")
	return b.String()
}

// describeRecord summarizes a preset for the list view.
func describeRecord(rec preset.Record) string {
	var parts []string
	if rec.Model != "" {
		parts = append(parts, rec.Model)
	}
	if rec.BaseURL != "" {
		parts = append(parts, rec.BaseURL)
	}
	return strings.Join(parts, " · ")
}

// displayValue masks token values so a glance at the status page does not
// leak the full credential.
func displayValue(key, value string) string {
	if key != envctl.EnvAuthToken {
		return value
	}
	if len(value) <= 8 {
		return strings.Repeat("*", len(value))
	}
	return value[:4] + "…" + value[len(value)-4:]
}
