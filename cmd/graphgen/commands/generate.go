// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/graphgen/cmd/graphgen/cli"
	"github.com/bureau-foundation/graphgen/lib/fingerprintcache"
	"github.com/bureau-foundation/graphgen/lib/sideeffect"
)

type generateParams struct {
	graphParams
	DryRun   bool
	PlanPath string
	Force    bool
}

func generateCommand() *cli.Command {
	var params generateParams

	return &cli.Command{
		Name:    "generate",
		Summary: "Run the mapper pipeline and apply its side effects",
		Description: `Run the generation pipeline over the graph and apply the side
effects it describes: delete each project's derived directory, write
derived Info.plists, and mark the workspace as generated.

Entities whose fingerprint matches the one stored by the last
successful run are skipped unless --force is given. The fingerprint is
stored only after every side effect of the entity has been applied.

With --dry-run, side effects are printed and nothing is written. With
--plan, the side effects are also saved as a CBOR plan file that
"graphgen plan show" can display.`,
		Usage: "graphgen generate --graph FILE [--dry-run] [--plan FILE] [--force]",
		Examples: []cli.Example{
			{
				Description: "Preview the side effects",
				Command:     "graphgen generate --graph workspace.jsonc --dry-run",
			},
			{
				Description: "Save a plan for review",
				Command:     "graphgen generate --graph workspace.jsonc --dry-run --plan generate.plan",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("generate", pflag.ContinueOnError)
			params.register(flagSet)
			flagSet.BoolVarP(&params.DryRun, "dry-run", "n", false, "print side effects without applying them")
			flagSet.StringVar(&params.PlanPath, "plan", "", "write the side effects to this plan file")
			flagSet.BoolVarP(&params.Force, "force", "f", false, "regenerate even when the fingerprint is unchanged")
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
			if store != nil {
				defer store.Close()
			}
			units, err := session.units()
			if err != nil {
				return err
			}

			g := generator{
				store:    store,
				logger:   session.logger,
				output:   os.Stdout,
				dryRun:   params.DryRun,
				force:    params.Force,
				planPath: params.PlanPath,
				graph:    params.GraphPath,
			}
			return g.run(ctx, units)
		},
	}
}

// generator applies units one at a time. A nil store disables the
// fingerprint check.
type generator struct {
	store    *fingerprintcache.Store
	logger   *slog.Logger
	output   io.Writer
	dryRun   bool
	force    bool
	planPath string
	graph    string
}

func (g generator) run(ctx context.Context, units []unit) error {
	var (
		planned     []sideeffect.Descriptor
		fingerprint string
	)
	for _, unit := range units {
		if !g.force && g.store != nil {
			result, err := g.store.Check(ctx, unit.entity, unit.tree)
			if err != nil {
				return err
			}
			if result.Hit {
				g.logger.Info("fingerprint unchanged, skipping", "entity", unit.entity, "hash", unit.tree.Hash.Short())
				fmt.Fprintf(g.output, "up to date: %s\n", unit.entity)
				continue
			}
		}

		effects, err := unit.run()
		if err != nil {
			return fmt.Errorf("generating %s: %w", unit.entity, err)
		}
		g.logger.Info("pipeline finished", "entity", unit.entity, "side_effects", len(effects))
		planned = append(planned, effects...)
		if len(units) == 1 {
			fingerprint = unit.tree.Hash.String()
		}

		if g.dryRun {
			fmt.Fprintf(g.output, "%s:\n", unit.entity)
			for _, effect := range effects {
				fmt.Fprintf(g.output, "  %s\n", effect)
			}
			continue
		}

		executor := sideeffect.Executor{Logger: g.logger, Stdout: g.output, Stderr: os.Stderr}
		if err := executor.Execute(ctx, effects); err != nil {
			return fmt.Errorf("applying %s: %w", unit.entity, err)
		}
		if g.store != nil {
			if err := g.store.Put(ctx, unit.entity, unit.tree); err != nil {
				return err
			}
		}
		fmt.Fprintf(g.output, "generated: %s (%d side effects)\n", unit.entity, len(effects))
	}

	if g.planPath != "" {
		plan := sideeffect.NewPlan("graph "+g.graph, fingerprint, planned)
		if err := sideeffect.WritePlanFile(g.planPath, plan); err != nil {
			return err
		}
		g.logger.Info("plan written", "path", g.planPath, "side_effects", len(planned))
	}
	return nil
}
