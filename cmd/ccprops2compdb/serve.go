package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/standardbeagle/ccprops2compdb/internal/logging"
	"github.com/standardbeagle/ccprops2compdb/internal/server"
)

func cmdServe(args []string, stdout, stderr io.Writer) int {
	var flags runFlags

	fs := newFlagSet("serve", stderr, printServeUsage)
	flags.register(fs)
	if code, ok := parseFlags(fs, args, stderr); !ok {
		return code
	}

	// stdout carries the protocol, logs always go to stderr
	logger := logging.NewForCLI(flags.verbose, flags.quiet)
	logging.SetDefault(logger)

	settings, err := flags.settings(fs.Args())
	if err != nil {
		fmt.Fprintf(stderr, "Error loading settings: %v\n", err)
		return 1
	}

	srv := server.New(settings, version, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	logger.Info("starting MCP server", "transport", "stdio", "input", settings.Input, "output", settings.Output)
	if err := srv.RunStdio(ctx); err != nil && ctx.Err() == nil {
		fmt.Fprintf(stderr, "Server error: %v\n", err)
		return 1
	}
	return 0
}

func printServeUsage(w io.Writer) {
	fmt.Fprint(w, `Usage: ccprops2compdb serve [options]

Starts an MCP server on stdio with the tools generate_compile_commands and
inspect_configuration. The options set the defaults used when a tool call
leaves a field empty.

Options:
`)
}
