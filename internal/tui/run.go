package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/eglise/parish/internal/auth"
	"github.com/eglise/parish/internal/registry"
)

// Run starts the interactive console in the alternate screen and blocks
// until the user quits.
func Run(authSvc *auth.Service, services map[string]*registry.Service, perPage int, startEntity string, log zerolog.Logger) error {
	app := NewApp(authSvc, services, perPage, startEntity, log)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
