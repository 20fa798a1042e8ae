// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the graphgen command tree.
package commands

import "github.com/bureau-foundation/graphgen/cmd/graphgen/cli"

// Root returns the top-level "graphgen" command.
func Root() *cli.Command {
	return &cli.Command{
		Name: "graphgen",
		Description: `graphgen: fingerprint and generate project graphs.

A graph document (JSONC) describes a workspace, its projects, and
their targets. graphgen reduces it to a content fingerprint covering
every referenced file, runs the generation pipeline over it, and
applies the resulting side effects. Unchanged graphs are skipped.

Configuration is read from --config, then $GRAPHGEN_CONFIG, and falls
back to built-in defaults.`,
		Subcommands: []*cli.Command{
			fingerprintCommand(),
			generateCommand(),
			diffCommand(),
			planCommand(),
		},
		Examples: []cli.Example{
			{
				Description: "Generate a workspace",
				Command:     "graphgen generate --graph workspace.jsonc",
			},
			{
				Description: "Check whether anything changed",
				Command:     "graphgen diff --graph workspace.jsonc",
			},
		},
	}
}
