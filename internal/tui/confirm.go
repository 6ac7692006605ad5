package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/eglise/parish/internal/registry"
	"github.com/eglise/parish/internal/ui"
)

// The delete confirmation gate. Stateless beyond the deleting flag: the
// table owns the pending item and the actual delete call.

type (
	confirmAcceptMsg struct{}
	confirmCancelMsg struct{}
)

type confirmModel struct {
	entity   registry.Entity
	name     string
	deleting bool
}

func newConfirmModel(entity registry.Entity, item registry.Item) confirmModel {
	return confirmModel{entity: entity, name: item.Display(entity.NameKey)}
}

func (m confirmModel) Update(msg tea.Msg) (confirmModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.deleting {
		return m, nil
	}
	switch key.String() {
	case "y", "enter":
		return m, func() tea.Msg { return confirmAcceptMsg{} }
	case "n", "esc":
		return m, func() tea.Msg { return confirmCancelMsg{} }
	}
	return m, nil
}

func (m confirmModel) View(spin spinner.Model) string {
	lines := []string{
		ui.ErrorStyle.Render("Delete " + m.entity.Name),
		"",
		fmt.Sprintf("Delete %s %q?", m.entity.Name, m.name),
		ui.MutedStyle.Render("This cannot be undone."),
		"",
	}
	if m.deleting {
		lines = append(lines, spin.View()+ui.MutedStyle.Render("deleting..."))
	} else {
		lines = append(lines, ui.HelpStyle.Render("y/enter: delete  n/esc: cancel"))
	}
	return strings.Join(lines, "\n")
}
