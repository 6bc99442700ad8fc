package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

const helpMarkdown = `# envdeck

Named presets for the Anthropic CLI environment variables:
` + "`ANTHROPIC_AUTH_TOKEN`, `ANTHROPIC_BASE_URL`, `ANTHROPIC_MODEL`, `ANTHROPIC_SMALL_FAST_MODEL`" + `.

## Presets page

- **enter** apply the selected preset to this session and to the OS
  persistent environment (new login sessions pick the persistent values up;
  already-running shells do not)
- **a** add, **e** edit, **d** delete (asks for confirmation)
- **up/down** or **j/k** move the selection

## Current page

- Shows the live values of the four variables in this process.
  Absent and empty are different states and are shown differently.
- **r** re-reads the environment

## Everywhere

- **1/2** or **tab** switch pages, **t** switch theme, **q** quit

Presets live in a plain JSON file you can edit by hand; the path is shown
with ` + "`envdeck -h`" + `.
`

// renderHelpMarkdown renders the help text once per theme; the raw markdown
// is the fallback if the renderer cannot be built.
func renderHelpMarkdown(themeName string) string {
	style := "dark"
	if themeName == "light" {
		style = "light"
	}
	renderer, err := glamour.NewTermRenderer(glamour.WithStandardStyle(style), glamour.WithWordWrap(76))
	if err != nil {
		return helpMarkdown
	}
	out, err := renderer.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}
	return out
}

func (m model) renderHelp() string {
	body := m.helpRendered
	if body == "" {
		body = helpMarkdown
	}
	var b strings.Builder
	b.WriteString(body)
	b.WriteString(m.mutedStyle().Render("esc back") + "\n")
	return b.String()
}
