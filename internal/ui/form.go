package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/DaanHessen/envdeck/internal/preset"
)

var formLabels = []string{"Name", "Auth token", "Base URL", "Model", "Small/fast model"}

// form is the add/edit dialog: one textinput per record field. Only the
// name is mandatory; every other field may legitimately be empty.
type form struct {
	inputs []textinput.Model
	focus  int
	errMsg string
}

func newForm(rec preset.Record, pal palette) form {
	values := []string{rec.Name, rec.AuthToken, rec.BaseURL, rec.Model, rec.SmallFastModel}
	f := form{inputs: make([]textinput.Model, len(values))}
	for i, v := range values {
		in := textinput.New()
		in.SetValue(v)
		in.Prompt = "> "
		in.PromptStyle = lipgloss.NewStyle().Foreground(pal.Accent)
		in.CharLimit = 512
		if formLabels[i] == "Auth token" {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '*'
		}
		f.inputs[i] = in
	}
	f.inputs[0].Focus()
	return f
}

func (f *form) focusNext() { f.setFocus((f.focus + 1) % len(f.inputs)) }

func (f *form) focusPrev() { f.setFocus((f.focus + len(f.inputs) - 1) % len(f.inputs)) }

func (f *form) setFocus(i int) {
	f.inputs[f.focus].Blur()
	f.focus = i
	f.inputs[f.focus].Focus()
}

func (f form) update(msg tea.Msg) (form, tea.Cmd) {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

// record assembles the edited values, trimming whitespace only from the
// name; token/URL/model values are kept verbatim.
func (f form) record() preset.Record {
	return preset.Record{
		Name:           strings.TrimSpace(f.inputs[0].Value()),
		AuthToken:      f.inputs[1].Value(),
		BaseURL:        f.inputs[2].Value(),
		Model:          f.inputs[3].Value(),
		SmallFastModel: f.inputs[4].Value(),
	}
}

func (m model) renderForm() string {
	var b strings.Builder
	b.WriteString(m.header(viewPresets))
	title := "New preset"
	if m.editing != "" {
		title = "Edit preset: " + m.editing
	}
	b.WriteString(m.titleStyle().Render(title) + "\n\n")
	label := m.mutedStyle().Width(18)
	for i, in := range m.form.inputs {
		b.WriteString("  " + label.Render(formLabels[i]) + in.View() + "\n")
	}
	if m.form.errMsg != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(m.pal.Danger).Render(m.form.errMsg) + "\n")
	}
	b.WriteString("\n" + m.mutedStyle().Render("tab next field · ctrl+s save · esc cancel") + "\n")
	return b.String()
}
