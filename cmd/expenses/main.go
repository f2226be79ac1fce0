package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/subcommands"

	"expenses/internal/cli"
	"expenses/internal/commands"
	applog "expenses/internal/log"
	"expenses/internal/services"
)

func main() {
	os.Exit(run())
}

func run() int {
	env := &commands.Env{
		Out:            os.Stdout,
		Err:            os.Stderr,
		ProgramOptions: []tea.ProgramOption{tea.WithAltScreen()},
	}

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	for _, c := range commands.Commands(env) {
		commander.Register(c, "")
	}
	flag.Parse()

	if flag.NArg() > 0 && !commands.NeedsStore(flag.Arg(0)) {
		return int(commander.Execute(context.Background()))
	}

	cli.LoadEnvFile()
	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		return int(subcommands.ExitFailure)
	}

	// The terminal UI owns the screen, so its log goes to a file.
	interactive := flag.NArg() == 0 || flag.Arg(0) == "ui"
	var logOut io.Writer = os.Stderr
	if interactive {
		f, err := cli.OpenLogFile(cfg.LogPath())
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return int(subcommands.ExitFailure)
		}
		defer f.Close()
		logOut = f
	}
	logger := cli.SetupLogger(cfg, logOut)
	logger.Debug("Starting", applog.FieldOperation, applog.OpStartup, applog.FieldBackend, cfg.Backend)

	store, err := cli.InitStore(logger, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return int(subcommands.ExitFailure)
	}
	env.Service = services.NewExpenseService(store, logger)
	defer func() {
		if err := env.Service.Close(); err != nil {
			logger.Error("Failed to close store", applog.FieldOperation, applog.OpShutdown, applog.FieldError, err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = applog.NewContext(ctx, logger)

	if flag.NArg() == 0 {
		return int(commands.RunUI(ctx, env))
	}
	return int(commander.Execute(ctx))
}
