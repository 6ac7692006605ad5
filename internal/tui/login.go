package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/eglise/parish/internal/auth"
	"github.com/eglise/parish/internal/ui"
)

// The login screen walks two steps, email then password, mirroring the web
// console it replaces. Errors from the server render inline under the input.

type loginResultMsg struct{ err error }

type loginModel struct {
	auth *auth.Service

	step     int // 1 = email, 2 = password
	email    string
	input    textinput.Model
	errMsg   string
	loading  bool
	spin     spinner.Model
	quitting bool
}

func newLoginModel(authSvc *auth.Service) loginModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "you@example.org"
	ti.CharLimit = 120
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return loginModel{auth: authSvc, step: 1, input: ti, spin: sp}
}

func (m loginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m loginModel) loginCmd(email, password string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.auth.Login(context.Background(), auth.Credentials{
			Email:    email,
			Password: password,
		})
		return loginResultMsg{err: err}
	}
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		return m, func() tea.Msg { return loggedInMsg{} }

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			// one login in flight at a time
			return m, nil
		}
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "esc":
			if m.step == 2 {
				// back to the email step
				m.step = 1
				m.input.SetValue(m.email)
				m.input.EchoMode = textinput.EchoNormal
				m.input.Placeholder = "you@example.org"
				m.errMsg = ""
				return m, nil
			}
			m.quitting = true
			return m, tea.Quit

		case "enter":
			val := strings.TrimSpace(m.input.Value())
			if m.step == 1 {
				if val == "" {
					m.errMsg = "Email is required"
					return m, nil
				}
				m.email = val
				m.step = 2
				m.errMsg = ""
				m.input.SetValue("")
				m.input.EchoMode = textinput.EchoPassword
				m.input.Placeholder = "password"
				return m, nil
			}
			if val == "" {
				m.errMsg = "Password is required"
				return m, nil
			}
			m.loading = true
			m.errMsg = ""
			return m, tea.Batch(m.spin.Tick, m.loginCmd(m.email, val))
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m loginModel) View(width int) string {
	if m.quitting {
		return ""
	}

	label := "Email Address"
	hint := "enter: next  esc: quit"
	if m.step == 2 {
		label = "Password"
		hint = "enter: login  esc: back"
	}

	lines := []string{
		ui.TitleStyle.Render("Parish Registry Login"),
		"",
		ui.AccentStyle.Render(label),
		m.input.View(),
	}
	if m.loading {
		lines = append(lines, "", m.spin.View()+ui.MutedStyle.Render("signing in..."))
	}
	if m.errMsg != "" {
		lines = append(lines, "", ui.ErrorStyle.Render(m.errMsg))
	}
	lines = append(lines, "", ui.HelpStyle.Render(hint))

	box := ui.Border().Width(48).Render(strings.Join(lines, "\n"))
	if width > 0 {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, box)
	}
	return box
}
