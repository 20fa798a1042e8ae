// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/graphgen/cmd/graphgen/cli"
	"github.com/bureau-foundation/graphgen/lib/contenthash"
)

func fingerprintCommand() *cli.Command {
	var (
		params graphParams
		tree   bool
	)

	return &cli.Command{
		Name:    "fingerprint",
		Summary: "Print the content fingerprint of a graph",
		Description: `Hash the workspace (or every project, when the document has no
workspace) and print one line per entity: the hex hash followed by the
entity name.

With --tree, the full Merkle tree is printed below each line, one node
per line, indented by depth.`,
		Usage: "graphgen fingerprint --graph FILE [--tree]",
		Examples: []cli.Example{
			{
				Description: "Fingerprint a workspace",
				Command:     "graphgen fingerprint --graph workspace.jsonc",
			},
			{
				Description: "Show which subtree a hash came from",
				Command:     "graphgen fingerprint --graph workspace.jsonc --tree",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("fingerprint", pflag.ContinueOnError)
			params.register(flagSet)
			flagSet.BoolVar(&tree, "tree", false, "print the full Merkle tree")
			return flagSet
		},
		Run: func(_ context.Context, args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}
			session, err := params.openSession(os.Stderr)
			if err != nil {
				return err
			}
			units, err := session.units()
			if err != nil {
				return err
			}
			writeFingerprints(os.Stdout, units, tree)
			return nil
		},
	}
}

func writeFingerprints(w io.Writer, units []unit, tree bool) {
	for _, unit := range units {
		fmt.Fprintf(w, "%s  %s\n", unit.tree.Hash, unit.entity)
		if tree {
			writeTree(w, unit.tree)
		}
	}
}

func writeTree(w io.Writer, root contenthash.MerkleNode) {
	root.Walk(func(path []string, node contenthash.MerkleNode) bool {
		fmt.Fprintf(w, "  %s%s %s\n", strings.Repeat("  ", len(path)-1), node.Hash.Short(), node.Identifier)
		return true
	})
}
