package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/eglise/parish/internal/registry"
	"github.com/eglise/parish/internal/ui"
)

// tableModel is the generic CRUD screen: one instance per entity, driven
// entirely by the entity's field configuration and binding set.
//
// Interaction state machine per row: Idle -> FormOpen -> Saving -> Idle
// (form stays open on failure), and Idle -> ConfirmOpen -> Deleting -> Idle
// (confirm always closes, success or not).

type itemsMsg struct {
	items []registry.Item
	err   error
}

type (
	savedMsg   struct{ err error }
	deletedMsg struct{ err error }
)

type tableModel struct {
	svc     *registry.Service
	entity  registry.Entity
	perPage int
	log     zerolog.Logger

	items  []registry.Item // last fetched full collection
	query  string
	page   int
	cursor int // row index within the visible page

	searching bool
	search    textinput.Model

	loading  bool // list fetch outstanding
	saving   bool // create/update outstanding
	deleting bool // delete outstanding

	form    *formModel
	confirm *confirmModel
	pending registry.Item // item awaiting delete confirmation

	spin   spinner.Model
	errMsg string // last failure surfaced to the user
}

func newTableModel(svc *registry.Service, perPage int, log zerolog.Logger) tableModel {
	si := textinput.New()
	si.Prompt = "/ "
	si.Placeholder = "search " + strings.ToLower(svc.Entity().Title) + "..."
	si.CharLimit = 80

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return tableModel{
		svc:     svc,
		entity:  svc.Entity(),
		perPage: perPage,
		log:     log,
		page:    1,
		search:  si,
		spin:    sp,
	}
}

func (m tableModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.fetchCmd())
}

// ------- commands -------

func (m tableModel) fetchCmd() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		items, err := svc.List(context.Background())
		return itemsMsg{items: items, err: err}
	}
}

func (m tableModel) saveCmd(editing registry.Item, values map[string]any) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		var err error
		if editing != nil {
			_, err = svc.Update(context.Background(), editing.ID(), values)
		} else {
			_, err = svc.Create(context.Background(), values)
		}
		return savedMsg{err: err}
	}
}

func (m tableModel) deleteCmd(id any) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		return deletedMsg{err: svc.Delete(context.Background(), id)}
	}
}

// ------- projection -------

func (m tableModel) filtered() []registry.Item {
	return registry.Filter(m.items, m.entity.NameKey, m.query)
}

func (m tableModel) visible() []registry.Item {
	return registry.Page(m.filtered(), m.page, m.perPage)
}

func (m *tableModel) clampCursor() {
	rows := len(m.visible())
	if rows == 0 {
		m.cursor = 0
		return
	}
	if m.cursor >= rows {
		m.cursor = rows - 1
	}
}

// ------- update -------

func (m tableModel) Update(msg tea.Msg) (tableModel, tea.Cmd) {
	switch msg := msg.(type) {
	case itemsMsg:
		m.loading = false
		if msg.err != nil {
			m.log.Error().Err(msg.err).Str("entity", m.entity.Name).Msg("list fetch failed")
			m.errMsg = msg.err.Error()
			m.items = nil
			return m, nil
		}
		m.items = msg.items
		m.page = 1
		m.cursor = 0
		return m, nil

	case savedMsg:
		m.saving = false
		if msg.err != nil {
			m.log.Error().Err(msg.err).Str("entity", m.entity.Name).Msg("save failed")
			if m.form != nil {
				// keep the modal open so nothing typed is lost
				m.form.errMsg = msg.err.Error()
			}
			return m, nil
		}
		m.form = nil
		m.loading = true
		return m, tea.Batch(m.spin.Tick, m.fetchCmd())

	case deletedMsg:
		// The confirm modal closes and the pending reference clears whatever
		// happened; the re-fetch shows the authoritative state.
		m.deleting = false
		m.confirm = nil
		m.pending = nil
		if msg.err != nil {
			m.log.Error().Err(msg.err).Str("entity", m.entity.Name).Msg("delete failed")
			m.errMsg = msg.err.Error()
		}
		m.loading = true
		return m, tea.Batch(m.spin.Tick, m.fetchCmd())

	case formSubmitMsg:
		if m.saving {
			return m, nil
		}
		m.saving = true
		var editing registry.Item
		if m.form != nil {
			editing = m.form.editing
			m.form.saving = true
		}
		return m, tea.Batch(m.spin.Tick, m.saveCmd(editing, msg.values))

	case formCancelMsg:
		if !m.saving {
			m.form = nil
		}
		return m, nil

	case confirmAcceptMsg:
		if m.deleting || m.pending == nil {
			return m, nil
		}
		m.deleting = true
		if m.confirm != nil {
			m.confirm.deleting = true
		}
		return m, tea.Batch(m.spin.Tick, m.deleteCmd(m.pending.ID()))

	case confirmCancelMsg:
		if !m.deleting {
			m.confirm = nil
			m.pending = nil
		}
		return m, nil

	case spinner.TickMsg:
		if m.loading || m.saving || m.deleting {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	// Modal layers swallow input while open.
	if m.form != nil {
		f, cmd := m.form.Update(msg)
		m.form = &f
		return m, cmd
	}
	if m.confirm != nil {
		c, cmd := m.confirm.Update(msg)
		m.confirm = &c
		return m, cmd
	}

	if m.searching {
		return m.updateSearch(msg)
	}
	return m.updateBrowse(msg)
}

func (m tableModel) updateSearch(msg tea.Msg) (tableModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			m.searching = false
			m.search.Blur()
			return m, nil
		case "esc":
			m.searching = false
			m.search.Blur()
			m.search.SetValue("")
			m.query = ""
			m.page = 1
			m.cursor = 0
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if v := m.search.Value(); v != m.query {
		m.query = v
		m.page = 1 // recomputing the filter resets pagination
		m.cursor = 0
	}
	return m, cmd
}

func (m tableModel) updateBrowse(msg tea.Msg) (tableModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	total := registry.TotalPages(len(m.filtered()), m.perPage)

	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "esc", "b":
		return m, func() tea.Msg { return backToMenu{} }

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.visible())-1 {
			m.cursor++
		}

	case "left", "h":
		if m.page > 1 {
			m.page--
			m.clampCursor()
		}

	case "right", "l":
		if total > 0 && m.page < total {
			m.page++
			m.clampCursor()
		}

	case "g":
		m.page = 1
		m.cursor = 0

	case "G":
		if total > 0 {
			m.page = total
			m.clampCursor()
		}

	case "/":
		m.searching = true
		m.search.Focus()
		return m, textinput.Blink

	case "r":
		if !m.loading {
			m.loading = true
			m.errMsg = ""
			return m, tea.Batch(m.spin.Tick, m.fetchCmd())
		}

	case "a":
		f := newFormModel(m.entity, nil)
		m.form = &f
		m.errMsg = ""
		return m, textinput.Blink

	case "e", "enter":
		rows := m.visible()
		if m.cursor < len(rows) {
			f := newFormModel(m.entity, rows[m.cursor])
			m.form = &f
			m.errMsg = ""
			return m, textinput.Blink
		}

	case "d":
		rows := m.visible()
		if m.cursor < len(rows) {
			m.pending = rows[m.cursor]
			c := newConfirmModel(m.entity, m.pending)
			m.confirm = &c
			m.errMsg = ""
		}
	}
	return m, nil
}

// ------- view -------

func (m tableModel) View(width, height int) string {
	if m.form != nil {
		return m.overlay(m.form.View(), width)
	}
	if m.confirm != nil {
		return m.overlay(m.confirm.View(m.spin), width)
	}

	filtered := m.filtered()
	total := registry.TotalPages(len(filtered), m.perPage)

	var b strings.Builder

	// Header: title + add hint
	b.WriteString(ui.TitleStyle.Render(m.entity.Title))
	b.WriteString(ui.MutedStyle.Render(fmt.Sprintf("   %d total", len(m.items))))
	b.WriteString("\n")

	// Search line
	if m.searching {
		b.WriteString(m.search.View())
	} else if m.query != "" {
		b.WriteString(ui.AccentStyle.Render("/ " + m.query))
		b.WriteString(ui.MutedStyle.Render("  (esc clears)"))
	} else {
		b.WriteString(ui.MutedStyle.Render("press / to search"))
	}
	b.WriteString("\n\n")

	// Table body
	b.WriteString(m.renderRows(filtered))
	b.WriteString("\n")

	// Footer: entry range + page strip
	first, last := registry.PageBounds(len(filtered), m.page, m.perPage)
	b.WriteString(ui.MutedStyle.Render(
		fmt.Sprintf("Showing %d to %d of %d entries", first, last, len(filtered))))
	b.WriteString("\n")
	b.WriteString(m.renderPageStrip(total))
	b.WriteString("\n")

	if m.errMsg != "" {
		b.WriteString(ui.ErrorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}

	b.WriteString(ui.HelpStyle.Render(
		"a: " + strings.ToLower(m.entity.AddLabel) + "  e/enter: edit  d: delete  /: search  h/l: page  r: refresh  b: back  q: quit"))

	return ui.Border().Render(b.String())
}

func (m tableModel) renderRows(filtered []registry.Item) string {
	header := fmt.Sprintf("  %-6s %-32s", "SI No", m.entity.ColumnLabel)
	lines := []string{ui.HeaderStyle.Render(header)}

	if m.loading {
		for i := 0; i < m.perPage; i++ {
			lines = append(lines, ui.MutedStyle.Render("  ░░░    ░░░░░░░░░░░░░░░░"))
		}
		lines = append(lines, m.spin.View()+ui.MutedStyle.Render("loading..."))
		return strings.Join(lines, "\n")
	}

	if len(filtered) == 0 {
		lines = append(lines, "")
		if len(m.items) == 0 {
			lines = append(lines, ui.MutedStyle.Render("  "+m.entity.EmptyMessage))
			lines = append(lines, ui.AccentStyle.Render("  Press a to add your first entry"))
		} else {
			lines = append(lines, ui.MutedStyle.Render(
				fmt.Sprintf("  No matches for %q.", m.query)))
		}
		return strings.Join(lines, "\n")
	}

	firstIndex := (m.page - 1) * m.perPage
	for i, it := range m.visible() {
		prefix := "  "
		name := it.Display(m.entity.NameKey)
		row := fmt.Sprintf("%-6d %-32s", firstIndex+i+1, name)
		if i == m.cursor {
			prefix = ui.SelectedStyle.Render("> ")
			row = ui.AccentStyle.Render(row)
		}
		if m.saving || m.deleting {
			row = ui.MutedStyle.Render(row)
		}
		lines = append(lines, prefix+row)
	}
	return strings.Join(lines, "\n")
}

func (m tableModel) renderPageStrip(total int) string {
	prev := ui.MutedStyle.Render("‹ prev")
	if m.page > 1 {
		prev = ui.AccentStyle.Render("‹ prev")
	}
	next := ui.MutedStyle.Render("next ›")
	if total > 0 && m.page < total {
		next = ui.AccentStyle.Render("next ›")
	}

	parts := []string{prev}
	for _, p := range registry.PageNumbers(m.page, total) {
		if p == registry.Ellipsis {
			parts = append(parts, ui.MutedStyle.Render("…"))
			continue
		}
		label := fmt.Sprintf("%d", p)
		if p == m.page {
			parts = append(parts, ui.PageActiveStyle.Render(label))
		} else {
			parts = append(parts, ui.PageStyle.Render(label))
		}
	}
	parts = append(parts, next)
	return strings.Join(parts, " ")
}

func (m tableModel) overlay(inner string, width int) string {
	box := ui.Border().Render(inner)
	if width > 0 {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, box)
	}
	return box
}
