package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/eglise/parish/internal/auth"
	"github.com/eglise/parish/internal/registry"
	"github.com/eglise/parish/internal/ui"
)

// The home screen: pick a directory to manage, or log out.
type menuModel struct {
	entities []registry.Entity
	cursor   int
}

func newMenuModel() menuModel {
	return menuModel{entities: registry.All()}
}

func (m menuModel) Update(msg tea.Msg, authSvc *auth.Service) (menuModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.entities)-1 {
			m.cursor++
		}
	case "enter":
		entity := m.entities[m.cursor]
		return m, func() tea.Msg { return openTableMsg{entity: entity} }
	case "L":
		return m, func() tea.Msg { return loggedOutMsg{err: authSvc.Logout()} }
	}
	return m, nil
}

func (m menuModel) View(width int) string {
	lines := []string{
		ui.TitleStyle.Render("Parish Registry"),
		ui.MutedStyle.Render("Select a directory"),
		"",
	}
	for i, e := range m.entities {
		prefix := "  "
		title := e.Title
		if i == m.cursor {
			prefix = ui.SelectedStyle.Render("> ")
			title = ui.AccentStyle.Render(title)
		}
		lines = append(lines, fmt.Sprintf("%s%s", prefix, title))
	}
	lines = append(lines, "", ui.HelpStyle.Render("↑/↓ move  enter: open  L: logout  q: quit"))

	box := ui.Border().Width(44).Render(strings.Join(lines, "\n"))
	if width > 0 {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, box)
	}
	return box
}
