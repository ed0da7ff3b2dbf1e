// Package main is the entry point for the godev CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"

	"go.trai.ch/godev/cmd/godev/commands"
	"go.trai.ch/godev/internal/app"
	"go.trai.ch/godev/internal/core/domain"
	_ "go.trai.ch/godev/internal/wiring"
)

// appProvider resolves the application and a cleanup function.
type appProvider func(ctx context.Context) (*app.App, func(), error)

func graftProvider(ctx context.Context) (*app.App, func(), error) {
	application, _, err := graft.ExecuteFor[*app.App](ctx)
	return application, func() {}, err
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stderr, graftProvider))
}

func run(ctx context.Context, args []string, stderr io.Writer, provider appProvider) int {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	application, cleanup, err := provider(ctx)
	if err != nil {
		// Logger is not available if initialization failed.
		_, _ = io.WriteString(stderr, "Error: "+err.Error()+"\n")
		return 1
	}
	defer cleanup()

	cli := commands.New(application)
	cli.SetArgs(args)

	if err := cli.Execute(ctx); err != nil {
		// A failure of the invoked toolchain binary itself forwards that
		// binary's exit code verbatim; its output already went to our stdio.
		// A build routine's code is metadata for the report, not ours to
		// forward.
		if code, ok := domain.ExitCode(err); ok && code > 0 && !errors.Is(err, domain.ErrBuildFailed) {
			return code
		}
		// zerr prints a report with stack trace and metadata under %+v.
		_, _ = fmt.Fprintf(stderr, "%+v\n", err)
		return 1
	}
	return 0
}
