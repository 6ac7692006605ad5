// Package cli routes subcommands for the non-interactive surface and
// launches the interactive console. Exit codes: 0 ok, 1 error, 2 usage.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/eglise/parish/internal/auth"
	"github.com/eglise/parish/internal/config"
	"github.com/eglise/parish/internal/registry"
	"github.com/eglise/parish/internal/session"
	"github.com/eglise/parish/internal/tui"
	"github.com/eglise/parish/internal/ui"
)

// Options tune output behavior from root flags.
type Options struct {
	Search string // filter applied to ls output
	Page   int    // 1-based page of ls output
}

// Deps carries the wired services into the router.
type Deps struct {
	Config   *config.Config
	Auth     *auth.Service
	Services map[string]*registry.Service
	Log      zerolog.Logger
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options, deps Deps) int {
	if len(args) == 0 {
		return doBrowse("", deps)
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp()
		return 0

	case "browse":
		entity := ""
		if len(a) > 0 {
			entity = a[0]
		}
		return doBrowse(entity, deps)

	case "auth":
		if len(a) == 0 {
			ui.Fail("usage: parish auth <login|logout|status|whoami>")
			return 2
		}
		switch a[0] {
		case "login":
			return doLogin(deps)
		case "logout":
			return doLogout(deps)
		case "status":
			return doStatus(deps)
		case "whoami":
			return doWhoAmI(deps)
		default:
			ui.Fail("usage: parish auth <login|logout|status|whoami>")
			return 2
		}
	}

	// Everything else is <entity> <verb>.
	if svc, ok := deps.Services[cmd]; ok {
		if len(a) == 0 {
			ui.Fail(fmt.Sprintf("usage: parish %s <ls|add|rm> [args]", cmd))
			return 2
		}
		verb, rest := a[0], a[1:]
		switch verb {
		case "ls":
			return doList(svc, opt, deps)
		case "add":
			return doAdd(svc, rest, deps)
		case "add-head":
			return doAddHead(svc, rest, deps)
		case "rm":
			if len(rest) != 1 {
				ui.Fail(fmt.Sprintf("usage: parish %s rm <id>", cmd))
				return 2
			}
			return doRemove(svc, rest[0], deps)
		default:
			ui.Fail("unknown verb: " + verb)
			return 2
		}
	}

	ui.Fail("unknown subcommand: " + cmd)
	fmt.Fprintln(os.Stderr)
	PrintHelp()
	return 2
}

func PrintHelp() {
	fmt.Printf(`parish - parish registry console

Usage:
  parish [subcommand] [args]

Subcommands:
  browse [entity]            Open the interactive console (default)
  auth login                 Sign in with email and password
  auth logout                Clear the stored session
  auth status                Show session state
  auth whoami                Decode the stored access token
  <entity> ls                List records (--search, --page root flags apply)
  <entity> add k=v ...       Create a record from field=value pairs
  <entity> rm <id>           Delete a record by id
  member add-head k=v ...    Create a head-of-family member

Entities: ward, grade, relationship, family, member

Examples:
  parish browse ward
  parish ward ls
  parish ward add ward_name="St. Jude" ward_number=5 place="North Hill"
  parish family rm 12
`)
}

// ---------------------------------------------------
// auth subcommands
// ---------------------------------------------------

func doLogin(deps Deps) int {
	fmt.Print("Email: ")
	var email string
	if _, err := fmt.Scanln(&email); err != nil {
		ui.Fail("read email: " + err.Error())
		return 1
	}
	fmt.Print("Password: ")
	var password string
	if _, err := fmt.Scanln(&password); err != nil {
		ui.Fail("read password: " + err.Error())
		return 1
	}

	ctx, cancel := opCtx(deps)
	defer cancel()
	if _, err := deps.Auth.Login(ctx, auth.Credentials{Email: email, Password: password}); err != nil {
		ui.Fail("login: " + err.Error())
		return 1
	}
	ui.OK("logged in")
	return 0
}

func doLogout(deps Deps) int {
	if t, _ := deps.Auth.Store().Tokens(); t != nil && t.Source == "env" {
		ui.OK("token is provided by " + session.EnvToken + " env var (nothing to delete)")
		return 0
	}
	if err := deps.Auth.Logout(); err != nil {
		ui.Fail("logout: " + err.Error())
		return 1
	}
	ui.OK("logged out")
	return 0
}

func doStatus(deps Deps) int {
	t, _ := deps.Auth.Store().Tokens()
	if t == nil {
		fmt.Println(ui.C(ui.Current().Muted, "not logged in"))
		fmt.Println("Run: parish auth login")
		return 0
	}
	fmt.Printf("source: %s\n", t.Source)
	if c, err := deps.Auth.Store().Claims(); err == nil && c.ExpiresAt != nil {
		fmt.Printf("expires: %s\n", c.ExpiresAt.UTC().Format(time.RFC3339))
	} else {
		fmt.Println("expires: (unknown)")
	}
	fmt.Println("env override: " + session.EnvToken)
	return 0
}

func doWhoAmI(deps Deps) int {
	if !deps.Auth.IsAuthenticated() {
		ui.Fail("not logged in. Run: parish auth login")
		return 2
	}
	c, err := deps.Auth.Store().Claims()
	if err != nil {
		fmt.Println(ui.C(ui.Current().Muted, err.Error()))
		return 0
	}
	if c.Email != "" {
		fmt.Println("email:", c.Email)
	}
	if c.Subject != "" {
		fmt.Println("subject:", c.Subject)
	}
	if c.ExpiresAt != nil {
		fmt.Println("expires:", c.ExpiresAt.UTC().Format(time.RFC3339))
	}
	return 0
}

// ---------------------------------------------------
// registry subcommands
// ---------------------------------------------------

func doList(svc *registry.Service, opt Options, deps Deps) int {
	ctx, cancel := opCtx(deps)
	defer cancel()

	items, err := svc.List(ctx)
	if err != nil {
		ui.Fail("list: " + err.Error())
		return 1
	}

	entity := svc.Entity()
	filtered := registry.Filter(items, entity.NameKey, opt.Search)
	page := opt.Page
	if page < 1 {
		page = 1
	}
	perPage := deps.Config.PageSize
	total := registry.TotalPages(len(filtered), perPage)

	header := fmt.Sprintf("%s  %s %d",
		ui.C(ui.Current().Title, entity.Title),
		ui.C(ui.Current().Accent, "Total"), len(filtered),
	)

	var lines []string
	lines = append(lines, header)
	lines = append(lines, "")

	rows := registry.Page(filtered, page, perPage)
	if len(rows) == 0 {
		if opt.Search != "" {
			lines = append(lines, ui.C(ui.Current().Muted, fmt.Sprintf("no matches for %q", opt.Search)))
		} else {
			lines = append(lines, ui.C(ui.Current().Muted, entity.EmptyMessage))
		}
	}
	first, _ := registry.PageBounds(len(filtered), page, perPage)
	for i, it := range rows {
		idx := fmt.Sprintf("%3d.", first+i)
		name := it.Display(entity.NameKey)
		id := ui.C(ui.Current().Muted, "(id "+it.IDString()+")")
		lines = append(lines, fmt.Sprintf("%s %s %s", ui.Dim(idx), name, id))
	}
	if total > 1 {
		lines = append(lines, "")
		lines = append(lines, ui.C(ui.Current().Muted, fmt.Sprintf("page %d/%d (use --page)", min(page, total), total)))
	}
	ui.Panel(lines)
	return 0
}

func doAdd(svc *registry.Service, args []string, deps Deps) int {
	payload, code := parseFieldArgs(svc.Entity(), args)
	if code != 0 {
		return code
	}

	ctx, cancel := opCtx(deps)
	defer cancel()
	created, err := svc.Create(ctx, payload)
	if err != nil {
		ui.Fail("add: " + err.Error())
		return 1
	}
	ui.OK("added " + svc.Entity().Name + " (id " + created.IDString() + ")")
	return 0
}

func doAddHead(svc *registry.Service, args []string, deps Deps) int {
	if svc.Entity().HeadSlug == "" {
		ui.Fail(svc.Entity().Name + " has no add-head command")
		return 2
	}
	payload, code := parseFieldArgs(svc.Entity(), args)
	if code != 0 {
		return code
	}

	ctx, cancel := opCtx(deps)
	defer cancel()
	created, err := svc.CreateHead(ctx, payload)
	if err != nil {
		ui.Fail("add-head: " + err.Error())
		return 1
	}
	ui.OK("added head member (id " + created.IDString() + ")")
	return 0
}

func doRemove(svc *registry.Service, id string, deps Deps) int {
	ctx, cancel := opCtx(deps)
	defer cancel()
	if err := svc.Delete(ctx, id); err != nil {
		ui.Fail("rm: " + err.Error())
		return 1
	}
	ui.OK("removed")
	return 0
}

func doBrowse(entity string, deps Deps) int {
	if err := tui.Run(deps.Auth, deps.Services, deps.Config.PageSize, entity, deps.Log); err != nil {
		ui.Fail("console: " + err.Error())
		return 1
	}
	return 0
}

// parseFieldArgs turns field=value pairs into a coerced payload using the
// entity's field configuration. Unknown fields are a usage error.
func parseFieldArgs(entity registry.Entity, args []string) (map[string]any, int) {
	if len(args) == 0 {
		ui.Fail("expected field=value arguments")
		return nil, 2
	}
	known := make(map[string]bool, len(entity.Fields))
	for _, f := range entity.Fields {
		known[f.Name] = true
	}

	raw := map[string]string{}
	for _, a := range args {
		k, v, ok := strings.Cut(a, "=")
		if !ok {
			ui.Fail("not a field=value pair: " + a)
			return nil, 2
		}
		if !known[k] {
			ui.Fail(fmt.Sprintf("unknown %s field: %s", entity.Name, k))
			return nil, 2
		}
		raw[k] = v
	}

	payload, err := registry.CoerceAll(entity.Fields, raw)
	if err != nil {
		ui.Fail(err.Error())
		return nil, 2
	}
	return payload, 0
}

func opCtx(deps Deps) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), deps.Config.HTTPTimeout)
}
