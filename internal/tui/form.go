package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/eglise/parish/internal/registry"
	"github.com/eglise/parish/internal/ui"
)

// The add/edit modal. Inputs are generated from the entity's field
// configuration; values are coerced on submit and handed back to the table
// via formSubmitMsg. The table owns the actual save call.

type (
	formSubmitMsg struct{ values map[string]any }
	formCancelMsg struct{}
)

type fieldInput struct {
	field registry.Field
	text  textinput.Model
	area  textarea.Model
}

func (fi *fieldInput) value() string {
	if fi.field.Kind == registry.FieldTextArea {
		return fi.area.Value()
	}
	return fi.text.Value()
}

func (fi *fieldInput) focus() tea.Cmd {
	if fi.field.Kind == registry.FieldTextArea {
		return fi.area.Focus()
	}
	return fi.text.Focus()
}

func (fi *fieldInput) blur() {
	if fi.field.Kind == registry.FieldTextArea {
		fi.area.Blur()
		return
	}
	fi.text.Blur()
}

type formModel struct {
	entity  registry.Entity
	editing registry.Item // nil when adding
	inputs  []fieldInput
	focus   int
	errMsg  string
	saving  bool
}

func newFormModel(entity registry.Entity, editing registry.Item) formModel {
	seed := registry.SeedValues(entity.Fields, editing)

	inputs := make([]fieldInput, 0, len(entity.Fields))
	for _, f := range entity.Fields {
		fi := fieldInput{field: f}
		if f.Kind == registry.FieldTextArea {
			ta := textarea.New()
			ta.SetWidth(44)
			ta.SetHeight(3)
			ta.CharLimit = 2000
			ta.SetValue(seed[f.Name])
			fi.area = ta
		} else {
			ti := textinput.New()
			ti.Prompt = ""
			ti.CharLimit = 200
			ti.Width = 44
			ti.SetValue(seed[f.Name])
			fi.text = ti
		}
		inputs = append(inputs, fi)
	}

	m := formModel{entity: entity, editing: editing, inputs: inputs}
	if len(m.inputs) > 0 {
		m.inputs[0].focus()
	}
	return m
}

func (m formModel) submit() (formModel, tea.Cmd) {
	raw := make(map[string]string, len(m.inputs))
	for i := range m.inputs {
		raw[m.inputs[i].field.Name] = m.inputs[i].value()
	}
	values, err := registry.CoerceAll(m.entity.Fields, raw)
	if err != nil {
		m.errMsg = err.Error()
		return m, nil
	}
	m.errMsg = ""
	return m, func() tea.Msg { return formSubmitMsg{values: values} }
}

func (m formModel) Update(msg tea.Msg) (formModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		if m.saving {
			// save in flight: no edits, no double submit
			return m, nil
		}
		switch key.String() {
		case "esc":
			return m, func() tea.Msg { return formCancelMsg{} }

		case "ctrl+s":
			return m.submit()

		case "tab", "down":
			if key.String() == "down" && m.current().field.Kind == registry.FieldTextArea {
				break // let the textarea move its own cursor
			}
			return m.cycle(1), nil

		case "shift+tab", "up":
			if key.String() == "up" && m.current().field.Kind == registry.FieldTextArea {
				break
			}
			return m.cycle(-1), nil

		case "enter":
			if m.current().field.Kind == registry.FieldTextArea {
				break // newline inside the textarea
			}
			if m.focus == len(m.inputs)-1 {
				return m.submit()
			}
			return m.cycle(1), nil
		}
	}

	var cmd tea.Cmd
	fi := &m.inputs[m.focus]
	if fi.field.Kind == registry.FieldTextArea {
		fi.area, cmd = fi.area.Update(msg)
	} else {
		fi.text, cmd = fi.text.Update(msg)
	}
	return m, cmd
}

func (m formModel) current() *fieldInput {
	return &m.inputs[m.focus]
}

func (m formModel) cycle(dir int) formModel {
	m.inputs[m.focus].blur()
	m.focus = (m.focus + dir + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].focus()
	return m
}

func (m formModel) View() string {
	title := "ADD NEW " + strings.ToUpper(m.entity.Name)
	if m.editing != nil {
		title = "EDIT " + strings.ToUpper(m.entity.Name)
	}

	lines := []string{ui.TitleStyle.Render(title), ""}
	for i := range m.inputs {
		fi := &m.inputs[i]
		label := fi.field.Label
		if fi.field.Required {
			label += " *"
		}
		if i == m.focus {
			label = ui.AccentStyle.Render(label)
		} else {
			label = ui.MutedStyle.Render(label)
		}
		lines = append(lines, label)
		if fi.field.Kind == registry.FieldTextArea {
			lines = append(lines, fi.area.View())
		} else {
			lines = append(lines, fi.text.View())
		}
		lines = append(lines, "")
	}

	if m.saving {
		lines = append(lines, ui.MutedStyle.Render("saving..."))
	}
	if m.errMsg != "" {
		lines = append(lines, ui.ErrorStyle.Render(m.errMsg))
	}
	lines = append(lines, ui.HelpStyle.Render("tab: next field  ctrl+s: save  esc: cancel"))

	return strings.Join(lines, "\n")
}
