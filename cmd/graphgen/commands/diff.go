// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/graphgen/cmd/graphgen/cli"
	"github.com/bureau-foundation/graphgen/lib/contenthash"
	"github.com/bureau-foundation/graphgen/lib/fingerprintcache"
)

func diffCommand() *cli.Command {
	var params graphParams

	return &cli.Command{
		Name:    "diff",
		Summary: "Show what changed since the last generation",
		Description: `Fingerprint the graph and compare each entity with the fingerprint
stored by the last successful "graphgen generate". Changed entities are
listed with the deepest tree paths that explain the change.

Exits 0 when nothing changed and 1 when anything did, so the command
can gate a build step.`,
		Usage: "graphgen diff --graph FILE",
		Examples: []cli.Example{
			{
				Description: "Regenerate only when the graph changed",
				Command:     "graphgen diff --graph workspace.jsonc || graphgen generate --graph workspace.jsonc",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("diff", pflag.ContinueOnError)
			params.register(flagSet)
			return flagSet
		},
		Run: func(ctx context.Context, args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}
			session, err := params.openSession(os.Stderr)
			if err != nil {
				return err
			}
			store, err := session.openCache()
			if err != nil {
				return err
			}
			if store == nil {
				return errors.New("diff needs the fingerprint cache; set cache.path in the config")
			}
			defer store.Close()

			units, err := session.units()
			if err != nil {
				return err
			}
			changed, err := diffUnits(ctx, os.Stdout, store, units)
			if err != nil {
				return err
			}
			if changed {
				return &cli.ExitError{Code: 1}
			}
			return nil
		},
	}
}

// diffUnits writes one report per unit and reports whether any unit
// differs from its stored fingerprint.
func diffUnits(ctx context.Context, w io.Writer, store *fingerprintcache.Store, units []unit) (bool, error) {
	style := newStyler(w, DefaultTheme)
	changed := false
	for _, unit := range units {
		result, err := store.Check(ctx, unit.entity, unit.tree)
		if err != nil {
			return false, err
		}
		switch {
		case result.Hit:
			fmt.Fprintf(w, "%s %s\n", style.render(style.theme.Faint, "unchanged"), unit.entity)
		case result.Previous == nil:
			changed = true
			fmt.Fprintf(w, "%s %s\n", style.render(style.theme.Added, "new"), style.bold(unit.entity))
		default:
			changed = true
			fmt.Fprintf(w, "%s %s (%s -> %s)\n",
				style.render(style.theme.Modified, "changed"), style.bold(unit.entity),
				result.Previous.Hash.Short(), unit.tree.Hash.Short())
			writeChanges(w, style, result.Changes)
		}
	}
	return changed, nil
}

func writeChanges(w io.Writer, style styler, changes []contenthash.Change) {
	for _, change := range changes {
		label := fmt.Sprintf("%-8s", change.Kind)
		fmt.Fprintf(w, "  %s %s\n", style.render(style.theme.ChangeColor(change.Kind), label), change.Path)
	}
}
