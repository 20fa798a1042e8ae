// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/bureau-foundation/graphgen/cmd/graphgen/commands"
)

func main() {
	if err := run(); err != nil {
		// "graphgen diff" reports through its own output and an
		// exit code; no extra "error:" line for those.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// An interrupt cancels the running side effect (a command is
	// killed); fingerprints are only stored after a unit completes.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return commands.Root().Execute(ctx, os.Args[1:])
}
