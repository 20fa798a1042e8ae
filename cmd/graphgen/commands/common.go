// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/graphgen/cmd/graphgen/cli"
	"github.com/bureau-foundation/graphgen/lib/compress"
	"github.com/bureau-foundation/graphgen/lib/config"
	"github.com/bureau-foundation/graphgen/lib/contenthash"
	"github.com/bureau-foundation/graphgen/lib/filecontent"
	"github.com/bureau-foundation/graphgen/lib/fingerprintcache"
	"github.com/bureau-foundation/graphgen/lib/graphhash"
	"github.com/bureau-foundation/graphgen/lib/graphload"
	"github.com/bureau-foundation/graphgen/lib/mappers"
	"github.com/bureau-foundation/graphgen/lib/sideeffect"
)

// graphParams are the flags shared by every command that reads a
// graph document.
type graphParams struct {
	ConfigPath string
	GraphPath  string
}

func (p *graphParams) register(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&p.ConfigPath, "config", "", "path to graphgen.yaml (default: $GRAPHGEN_CONFIG, then built-in defaults)")
	flagSet.StringVarP(&p.GraphPath, "graph", "g", "", "path to the graph document (JSONC)")
}

// session is everything a command needs once its flags are parsed.
type session struct {
	config *config.Config
	logger *slog.Logger
	graph  graphload.Graph
	hasher *contenthash.Hasher
}

// openSession loads configuration and the graph document. Log records
// go to logOutput.
func (p *graphParams) openSession(logOutput io.Writer) (*session, error) {
	if p.GraphPath == "" {
		return nil, errors.New("--graph is required")
	}

	cfg, err := loadConfig(p.ConfigPath)
	if err != nil {
		return nil, err
	}
	logger, err := cli.NewLogger(logOutput, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}

	loaded, err := graphload.ReadFile(p.GraphPath)
	if err != nil {
		return nil, err
	}
	logger.Debug("graph loaded", "path", p.GraphPath, "projects", len(loaded.Projects), "workspace", loaded.Workspace != nil)

	return &session{
		config: cfg,
		logger: logger,
		graph:  loaded,
		hasher: contenthash.NewHasher(filecontent.OSReader{}),
	}, nil
}

// loadConfig reads the explicit path if given, then GRAPHGEN_CONFIG,
// and falls back to [config.Default].
func loadConfig(path string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	switch {
	case path != "":
		cfg, err = config.LoadFile(path)
	case os.Getenv("GRAPHGEN_CONFIG") != "":
		cfg, err = config.Load()
	default:
		cfg = config.Default()
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// unit is one independently fingerprinted and generated part of the
// graph: the workspace when the document has one, otherwise each
// project on its own.
type unit struct {
	entity string
	tree   contenthash.MerkleNode
	run    func() ([]sideeffect.Descriptor, error)
}

// units fingerprints the input graph and pairs each fingerprint with
// the pipeline that generates it. The fingerprint covers the graph
// before mapping (derived files do not exist until side effects run)
// plus a "generation" child over the options that shape mapper output.
func (s *session) units() ([]unit, error) {
	workers := s.config.Generation.Workers
	fingerprinter := graphhash.NewFingerprinter(s.hasher, workers)
	options := mappers.Options{
		DerivedDirectory:     s.config.Generation.DerivedDirectory,
		InfoPlistsDirectory:  s.config.Generation.InfoPlistsDirectory,
		DefaultConfiguration: s.config.Generation.DefaultConfiguration,
		Workers:              workers,
	}
	// Workers only bounds parallelism and is left out.
	generation := map[string]string{
		"derivedDirectory":     options.DerivedDirectory,
		"infoPlistsDirectory":  options.InfoPlistsDirectory,
		"defaultConfiguration": options.DefaultConfiguration,
	}

	if s.graph.Workspace != nil {
		workspace := *s.graph.Workspace
		tree, err := fingerprinter.WorkspaceTree(workspace)
		if err != nil {
			return nil, err
		}
		tree = fingerprinter.WithSettings(tree, "generation", generation)
		pipeline := mappers.NewWorkspacePipeline(options, s.logger)
		return []unit{{
			entity: "workspace " + workspace.Workspace.Path,
			tree:   tree,
			run: func() ([]sideeffect.Descriptor, error) {
				_, effects, err := pipeline.MapWorkspace(workspace)
				return effects, err
			},
		}}, nil
	}

	pipeline := mappers.NewProjectPipeline(options, s.logger)
	units := make([]unit, 0, len(s.graph.Projects))
	for _, project := range s.graph.Projects {
		tree, err := fingerprinter.ProjectTree(project)
		if err != nil {
			return nil, err
		}
		tree = fingerprinter.WithSettings(tree, "generation", generation)
		units = append(units, unit{
			entity: "project " + project.Path,
			tree:   tree,
			run: func() ([]sideeffect.Descriptor, error) {
				_, effects, err := pipeline.MapProject(project)
				return effects, err
			},
		})
	}
	return units, nil
}

// openCache opens the fingerprint cache, or returns nil when the
// configuration disables it.
func (s *session) openCache() (*fingerprintcache.Store, error) {
	if s.config.Cache.Path == "" {
		return nil, nil
	}
	if err := s.config.EnsureCacheDirectory(); err != nil {
		return nil, err
	}
	algorithm, err := compress.ParseAlgorithm(s.config.Cache.Compression)
	if err != nil {
		return nil, err
	}
	return fingerprintcache.Open(fingerprintcache.Config{
		Path:          s.config.Cache.Path,
		Compression:   algorithm,
		MemoryEntries: s.config.Cache.MemoryEntries,
		Logger:        s.logger,
		Hasher:        s.hasher,
	})
}
