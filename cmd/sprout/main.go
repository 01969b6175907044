package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/sprout/internal/app"
	"github.com/alexanderramin/sprout/internal/cli"
	"github.com/alexanderramin/sprout/internal/config"
	"github.com/alexanderramin/sprout/internal/db"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// configFlag pulls --config out of the arguments before the command tree is
// built, since the tree needs the loaded config.
func configFlag(args []string) string {
	fs := pflag.NewFlagSet("sprout", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.Usage = func() {}
	fs.SetOutput(nopWriter{})
	path := fs.String("config", "", "")
	_ = fs.Parse(args)
	return *path
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

func run() error {
	cfg, err := config.Load(configFlag(os.Args[1:]))
	if err != nil {
		return err
	}
	logger := config.NewLogger(os.Stderr, cfg.Log.Level, cfg.Log.Format)

	database, err := db.OpenDB(cfg.DB.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	container := app.Wire(database, app.Options{
		Location:        cfg.Location(),
		LLM:             cfg.LLMClientConfig(),
		Workers:         cfg.Scheduler.Workers,
		ReplaceExisting: cfg.Scheduler.ReplaceExisting,
	}, logger)

	a := &cli.App{
		Container: container,
		Config:    cfg,
		Logger:    logger,
		Version:   version,
	}
	// Forms and the checklist only run on a real terminal.
	a.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCmd(a)
	return root.ExecuteContext(ctx)
}
