package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fitpick/admin-gateway/config"
	"github.com/fitpick/admin-gateway/internal/bootstrap"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config config.AppConfig
}

func main() {
	logger := bootstrap.InitLogger()

	if len(os.Args) < 2 {
		if err := printUsage(); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		if err := writef(os.Stderr, "unknown command %q\n\n", cmdName); err != nil {
			logger.Error("print unknown command message failed", "error", err)
		}
		if err := printUsage(); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when command is unknown
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.ErrorContext(context.Background(), "load config", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}

	cmdCtx := &commandContext{
		Ctx:    context.Background(),
		Logger: logger,
		Config: cfg,
	}
	if runErr := cmd.run(cmdCtx, os.Args[2:]); runErr != nil {
		logger.ErrorContext(cmdCtx.Ctx, "command failed", "command", cmdName, "error", runErr)
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

func commands() map[string]command {
	return map[string]command{
		"login": {
			name:        "login",
			description: "Authenticate against the FitPick platform and store a session",
			run:         runLogin,
		},
		"logout": {
			name:        "logout",
			description: "Terminate the stored session (--forget also clears the remembered identity)",
			run:         runLogout,
		},
		"whoami": {
			name:        "whoami",
			description: "Show the admin profile behind the stored session",
			run:         runWhoami,
		},
		"users": {
			name:        "users",
			description: "List user accounts (--search, --page, --follow)",
			run:         listCommand("users"),
		},
		"meals": {
			name:        "meals",
			description: "List meals (--search, --page, --follow)",
			run:         listCommand("meals"),
		},
		"blogs": {
			name:        "blogs",
			description: "List blog posts (--search, --page, --follow)",
			run:         listCommand("blogs"),
		},
		"transactions": {
			name:        "transactions",
			description: "List transactions (--search, --page, --follow)",
			run:         listCommand("transactions"),
		},
	}
}

func printUsage() error {
	if err := writef(os.Stdout, "Usage: fitpick-admin <command> [flags]\n\n"); err != nil {
		return err
	}
	if err := writef(os.Stdout, "Available commands:\n"); err != nil {
		return err
	}
	for _, c := range commands() {
		if err := writef(os.Stdout, "  %-14s %s\n", c.name, c.description); err != nil {
			return err
		}
	}
	return nil
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}
