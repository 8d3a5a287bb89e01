// Package cli wires the craftshelf command line: the terminal storefront by
// default, plus non-interactive listing and ordering commands.
package cli

import (
	"context"
	"errors"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/qyinm/craftshelf/catalog"
	"github.com/qyinm/craftshelf/config"
	"github.com/qyinm/craftshelf/faq"
	"github.com/qyinm/craftshelf/logging"
	"github.com/qyinm/craftshelf/order"
	"github.com/qyinm/craftshelf/ui"
)

// App holds the process-level dependencies of the command tree.
type App struct {
	Version string
	Stdout  io.Writer
	Stderr  io.Writer
	Opener  order.Opener
	Sleeper order.Sleeper

	// RunTUI starts the terminal storefront; replaced in tests.
	RunTUI func(ctx context.Context, opts ui.Options) error
}

// New returns an App writing to the process streams.
func New(version string) *App {
	return &App{
		Version: version,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Opener:  order.DefaultOpener(),
		Sleeper: order.RealSleeper{},
		RunTUI:  runProgram,
	}
}

// Command builds the root command.
func (a *App) Command() *cli.Command {
	return &cli.Command{
		Name:      "craftshelf",
		Usage:     "Browse the handmade catalog and order on WhatsApp",
		Version:   a.Version,
		Writer:    a.Stdout,
		ErrWriter: a.Stderr,
		Suggest:   true,
		Description: `Without a subcommand craftshelf opens the terminal storefront.

EXAMPLES:
  craftshelf                              Browse interactively
  craftshelf list --category "hair clips" Print one category
  craftshelf order 2 --open               Order the third listed product
  craftshelf custom-order "blue scrunchies, set of 4"`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to config.toml",
				Sources: cli.EnvVars("CRAFTSHELF_CONFIG"),
			},
			&cli.BoolFlag{
				Name:  "no-welcome",
				Usage: "skip the welcome overlay",
			},
		},
		OnUsageError: func(_ context.Context, _ *cli.Command, err error, _ bool) error {
			return NewExitError(ExitUsageError, "invalid usage", err)
		},
		Action: a.runInteractive,
		Commands: []*cli.Command{
			a.listCommand(),
			a.categoriesCommand(),
			a.orderCommand(),
			a.customOrderCommand(),
		},
	}
}

// Run executes the command tree and returns the process exit code.
func (a *App) Run(ctx context.Context, args []string) int {
	err := a.Command().Run(ctx, args)
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		_, _ = io.WriteString(a.Stderr, exitErr.Error()+"\n")
		return exitErr.Code
	}
	_, _ = io.WriteString(a.Stderr, "Unexpected error: "+err.Error()+"\n")
	return ExitGeneralError
}

// env is what every command needs after reading configuration.
type env struct {
	cfg    config.Config
	store  *catalog.Store
	logger *zap.Logger
}

func (a *App) setup(cmd *cli.Command, defaultLog string) (env, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return env{}, NewExitError(ExitConfigError, "could not load configuration", err)
	}

	logPath := cfg.Log.File
	if logPath == "" {
		logPath = defaultLog
	}
	logger, err := logging.New(cfg.Log.Level, logPath)
	if err != nil {
		return env{}, NewExitError(ExitConfigError, "could not open log file", err)
	}

	return env{
		cfg:    cfg,
		store:  catalog.NewStore(cfg.Source()),
		logger: logger,
	}, nil
}

func (a *App) runInteractive(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() > 0 {
		return NewExitError(ExitUsageError, "unknown command "+cmd.Args().First(), nil)
	}

	e, err := a.setup(cmd, logging.DefaultTUIPath())
	if err != nil {
		return err
	}
	defer func() { _ = e.logger.Sync() }()

	e.logger.Info("starting terminal storefront", zap.String("version", a.Version))
	err = a.RunTUI(ctx, ui.Options{
		Store:         e.store,
		DefaultFilter: e.cfg.DefaultFilter(),
		Render:        e.cfg.RenderOptions(),
		Composer:      e.cfg.Composer(),
		Sequence:      e.cfg.Sequence(),
		Opener:        a.Opener,
		SearchDelay:   e.cfg.Display.SearchDelay.Duration,
		FAQ:           faq.Default(),
		Logger:        e.logger,
		SkipWelcome:   cmd.Bool("no-welcome"),
	})
	return classify("terminal storefront failed", err)
}

func runProgram(ctx context.Context, opts ui.Options) error {
	p := tea.NewProgram(ui.NewModel(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) {
			return context.Canceled
		}
		return err
	}
	return nil
}
