// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/graphgen/cmd/graphgen/cli"
	"github.com/bureau-foundation/graphgen/lib/codec"
	"github.com/bureau-foundation/graphgen/lib/sideeffect"
)

func planCommand() *cli.Command {
	return &cli.Command{
		Name:    "plan",
		Summary: "Inspect saved side-effect plans",
		Subcommands: []*cli.Command{
			planShowCommand(),
		},
	}
}

func planShowCommand() *cli.Command {
	var diagnostic bool

	return &cli.Command{
		Name:    "show",
		Summary: "Print the side effects of a plan file",
		Description: `Decode a plan written by "graphgen generate --plan" and print its side
effects in order. With --cbor, print the raw CBOR diagnostic notation
instead.`,
		Usage: "graphgen plan show <file> [--cbor]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("show", pflag.ContinueOnError)
			flagSet.BoolVar(&diagnostic, "cbor", false, "print CBOR diagnostic notation")
			return flagSet
		},
		Run: func(_ context.Context, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one plan file, got %d arguments", len(args))
			}
			return showPlan(os.Stdout, args[0], diagnostic)
		},
	}
}

func showPlan(w io.Writer, path string, diagnostic bool) error {
	if diagnostic {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		notation, err := codec.Diagnose(data)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		fmt.Fprintln(w, notation)
		return nil
	}

	plan, err := sideeffect.ReadPlanFile(path)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "plan for %s\n", plan.Entity)
	if plan.Fingerprint != "" {
		fmt.Fprintf(w, "fingerprint %s\n", plan.Fingerprint)
	}
	fmt.Fprintf(w, "%d side effects\n", len(plan.SideEffects))
	for i, effect := range plan.SideEffects {
		fmt.Fprintf(w, "%4d  %s\n", i+1, effect)
	}
	return nil
}
