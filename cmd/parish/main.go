package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/eglise/parish/internal/api"
	"github.com/eglise/parish/internal/auth"
	"github.com/eglise/parish/internal/cli"
	"github.com/eglise/parish/internal/config"
	"github.com/eglise/parish/internal/logger"
	"github.com/eglise/parish/internal/registry"
	"github.com/eglise/parish/internal/session"
	"github.com/eglise/parish/internal/ui"
)

func main() {
	code := run()
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}

// run exists so the deferred log-file close actually happens; os.Exit in
// main would skip it.
func run() int {
	// Root flags (apply to every subcommand)
	search := flag.String("search", "", "filter ls output by display name")
	page := flag.Int("page", 1, "1-based page of ls output")
	noColor := flag.Bool("no-color", false, "disable colored output")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	ui.SetColorForcing(false, *noColor)
	ui.SetTheme(cfg.Theme)

	log, closer, err := logger.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if closer != nil {
		defer closer.Close()
	}

	store := session.NewStore(cfg.StateDir)
	client := api.New(cfg.APIBaseURL, cfg.HTTPTimeout, store, log)
	authSvc := auth.NewService(client, store, log)

	services := make(map[string]*registry.Service)
	for _, e := range registry.All() {
		services[e.Name] = registry.NewService(client, e)
	}

	// Hand the remaining args to the CLI runner.
	return cli.Run(flag.Args(), cli.Options{
		Search: *search,
		Page:   *page,
	}, cli.Deps{
		Config:   cfg,
		Auth:     authSvc,
		Services: services,
		Log:      log,
	})
}
