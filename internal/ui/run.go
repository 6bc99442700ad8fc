package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/DaanHessen/envdeck/internal/envctl"
	"github.com/DaanHessen/envdeck/internal/preset"
	"github.com/DaanHessen/envdeck/internal/util"
)

// Run boots the TUI program and blocks until it exits.
func Run(ctx context.Context, st *preset.Store, presets preset.Collection, applier *envctl.Applier, cfg util.Config) error {
	m := initialModel(st, presets, applier, cfg)
	program := tea.NewProgram(m, tea.WithContext(ctx))
	_, err := program.Run()
	return err
}
