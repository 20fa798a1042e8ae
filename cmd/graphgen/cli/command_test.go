// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestCommand_Execute_DispatchesNested(t *testing.T) {
	var called string
	var receivedArgs []string

	root := &Command{
		Name: "graphgen",
		Subcommands: []*Command{
			{Name: "fingerprint", Run: func(_ context.Context, args []string) error { called = "fingerprint"; return nil }},
			{
				Name: "plan",
				Subcommands: []*Command{
					{
						Name: "show",
						Run: func(_ context.Context, args []string) error {
							called = "plan show"
							receivedArgs = args
							return nil
						},
					},
				},
			},
		},
	}

	if err := root.Execute(context.Background(), []string{"plan", "show", "out.plan"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "plan show" {
		t.Errorf("dispatched to %q, want %q", called, "plan show")
	}
	if len(receivedArgs) != 1 || receivedArgs[0] != "out.plan" {
		t.Errorf("args = %v, want [out.plan]", receivedArgs)
	}
}

func TestCommand_Execute_FlagParsing(t *testing.T) {
	var graph string
	var dryRun bool
	var positional []string

	command := &Command{
		Name: "generate",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("generate", pflag.ContinueOnError)
			flagSet.StringVar(&graph, "graph", "", "graph file")
			flagSet.BoolVar(&dryRun, "dry-run", false, "print only")
			return flagSet
		},
		Run: func(_ context.Context, args []string) error {
			positional = args
			return nil
		},
	}

	if err := command.Execute(context.Background(), []string{"--graph", "g.jsonc", "--dry-run", "extra"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if graph != "g.jsonc" || !dryRun {
		t.Errorf("graph=%q dryRun=%v, want g.jsonc true", graph, dryRun)
	}
	if len(positional) != 1 || positional[0] != "extra" {
		t.Errorf("positional = %v, want [extra]", positional)
	}
}

func TestCommand_Execute_UnknownFlagSuggestion(t *testing.T) {
	command := &Command{
		Name: "generate",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("generate", pflag.ContinueOnError)
			flagSet.Bool("dry-run", false, "print only")
			return flagSet
		},
		Run: func(_ context.Context, args []string) error { return nil },
	}

	err := command.Execute(context.Background(), []string{"--dry-rn"})
	if err == nil {
		t.Fatal("expected error for unknown flag")
	}
	if !strings.Contains(err.Error(), "did you mean --dry-run?") {
		t.Errorf("error = %q, want a --dry-run suggestion", err)
	}
}

func TestCommand_Execute_UnknownSubcommandSuggestion(t *testing.T) {
	root := &Command{
		Name:        "graphgen",
		Subcommands: []*Command{{Name: "generate", Run: func(context.Context, []string) error { return nil }}},
	}

	err := root.Execute(context.Background(), []string{"genrate"})
	if err == nil {
		t.Fatal("expected error for unknown subcommand")
	}
	if !strings.Contains(err.Error(), `did you mean "generate"?`) {
		t.Errorf("error = %q, want a generate suggestion", err)
	}

	err = root.Execute(context.Background(), []string{"zzzzzzzzzz"})
	if err == nil || strings.Contains(err.Error(), "did you mean") {
		t.Errorf("error = %v, want no suggestion for a distant name", err)
	}
}

func TestCommand_Execute_HelpAndMissingSubcommand(t *testing.T) {
	var help bytes.Buffer
	root := &Command{
		Name:        "graphgen",
		Summary:     "Fingerprint and generate project graphs",
		HelpOutput:  &help,
		Subcommands: []*Command{{Name: "diff", Summary: "Show what changed"}},
	}

	if err := root.Execute(context.Background(), []string{"--help"}); err != nil {
		t.Fatalf("--help returned error: %v", err)
	}
	if !strings.Contains(help.String(), "diff") {
		t.Errorf("help output missing subcommand listing:\n%s", help.String())
	}

	help.Reset()
	if err := root.Execute(context.Background(), nil); err == nil || !strings.Contains(err.Error(), "subcommand required") {
		t.Errorf("Execute(nil) = %v, want subcommand required", err)
	}
	if help.Len() == 0 {
		t.Error("no help printed for a missing subcommand")
	}
}

func TestCommand_PrintHelp_WithFlagsAndExamples(t *testing.T) {
	command := &Command{
		Name:        "fingerprint",
		Description: "Print content fingerprints.",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("fingerprint", pflag.ContinueOnError)
			flagSet.Bool("tree", false, "print the full Merkle tree")
			return flagSet
		},
		Examples: []Example{{Description: "Fingerprint a graph", Command: "graphgen fingerprint --graph g.jsonc"}},
	}

	var buffer bytes.Buffer
	command.PrintHelp(&buffer)
	output := buffer.String()
	for _, want := range []string{"Print content fingerprints.", "--tree", "# Fingerprint a graph", "Usage:\n  fingerprint [flags]"} {
		if !strings.Contains(output, want) {
			t.Errorf("help output missing %q:\n%s", want, output)
		}
	}
}

func TestCommand_FullName(t *testing.T) {
	var name string
	show := &Command{Name: "show"}
	show.Run = func(context.Context, []string) error { name = show.fullName(); return nil }
	root := &Command{Name: "graphgen", Subcommands: []*Command{{Name: "plan", Subcommands: []*Command{show}}}}

	if err := root.Execute(context.Background(), []string{"plan", "show"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if name != "graphgen plan show" {
		t.Errorf("fullName() = %q, want %q", name, "graphgen plan show")
	}
}

func TestLevenshtein(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"generate", "genrate", 1},
		{"diff", "fdif", 2},
		{"kitten", "sitting", 3},
	}
	for _, c := range cases {
		if got := levenshtein(c.a, c.b); got != c.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestNewLogger(t *testing.T) {
	var buffer bytes.Buffer
	logger, err := NewLogger(&buffer, "debug", "auto")
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	logger.Debug("hello", "key", "value")
	// A bytes.Buffer is not a terminal, so auto selects JSON.
	if !strings.HasPrefix(buffer.String(), "{") || !strings.Contains(buffer.String(), `"key":"value"`) {
		t.Errorf("auto format on a non-terminal did not produce JSON: %q", buffer.String())
	}

	buffer.Reset()
	logger, err = NewLogger(&buffer, "warn", "text")
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	logger.Info("quiet")
	if buffer.Len() != 0 {
		t.Errorf("info record passed a warn-level logger: %q", buffer.String())
	}

	if _, err := NewLogger(&buffer, "loud", "text"); err == nil {
		t.Error("NewLogger accepted an unknown level")
	}
	if _, err := NewLogger(&buffer, "info", "xml"); err == nil {
		t.Error("NewLogger accepted an unknown format")
	}
}
