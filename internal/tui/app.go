// Package tui is the interactive console: a login screen, an entity menu and
// one generic CRUD table screen instantiated per registry entity.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/eglise/parish/internal/auth"
	"github.com/eglise/parish/internal/registry"
)

type view int

const (
	viewLogin view = iota
	viewMenu
	viewTable
)

// Messages that move between views.
type (
	loggedInMsg  struct{}
	loggedOutMsg struct{ err error }
	openTableMsg struct{ entity registry.Entity }
	backToMenu   struct{}
)

// App is the root model. It owns which view is active and guards every view
// behind the session: starting (or landing) unauthenticated means the login
// screen, nothing else.
type App struct {
	auth     *auth.Service
	services map[string]*registry.Service
	perPage  int
	log      zerolog.Logger

	view  view
	login loginModel
	menu  menuModel
	table tableModel

	width, height int
}

// NewApp builds the root model. When startEntity is non-empty the console
// opens directly on that entity's table (still behind the login guard).
func NewApp(authSvc *auth.Service, services map[string]*registry.Service, perPage int, startEntity string, log zerolog.Logger) App {
	a := App{
		auth:     authSvc,
		services: services,
		perPage:  perPage,
		log:      log,
		login:    newLoginModel(authSvc),
		menu:     newMenuModel(),
	}

	if !authSvc.IsAuthenticated() {
		a.view = viewLogin
		return a
	}
	if svc, ok := services[startEntity]; ok {
		a.view = viewTable
		a.table = newTableModel(svc, perPage, log)
	} else {
		a.view = viewMenu
	}
	return a
}

func (a App) Init() tea.Cmd {
	if a.view == viewTable {
		return a.table.Init()
	}
	if a.view == viewLogin {
		return a.login.Init()
	}
	return nil
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		// fall through to the active view so it can re-layout

	case loggedInMsg:
		a.view = viewMenu
		a.menu = newMenuModel()
		return a, nil

	case loggedOutMsg:
		if msg.err != nil {
			a.log.Error().Err(msg.err).Msg("logout failed")
		}
		a.view = viewLogin
		a.login = newLoginModel(a.auth)
		return a, a.login.Init()

	case openTableMsg:
		svc, ok := a.services[msg.entity.Name]
		if !ok {
			return a, nil
		}
		a.view = viewTable
		a.table = newTableModel(svc, a.perPage, a.log)
		return a, a.table.Init()

	case backToMenu:
		a.view = viewMenu
		return a, nil
	}

	var cmd tea.Cmd
	switch a.view {
	case viewLogin:
		a.login, cmd = a.login.Update(msg)
	case viewMenu:
		a.menu, cmd = a.menu.Update(msg, a.auth)
	case viewTable:
		a.table, cmd = a.table.Update(msg)
	}
	return a, cmd
}

func (a App) View() string {
	switch a.view {
	case viewLogin:
		return a.login.View(a.width)
	case viewMenu:
		return a.menu.View(a.width)
	default:
		return a.table.View(a.width, a.height)
	}
}
