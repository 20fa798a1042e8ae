// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sideeffect

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
)

// Executor applies descriptors to the local machine, in list order,
// stopping at the first failure.
type Executor struct {
	// DryRun logs each effect instead of applying it.
	DryRun bool

	// Logger receives one record per effect. If nil, nothing is
	// logged.
	Logger *slog.Logger

	// Stdout and Stderr receive command output. Nil discards it.
	Stdout io.Writer
	Stderr io.Writer
}

// Execute applies effects in order. Commands are started with ctx, so
// cancelling ctx stops a running command; effects already applied are
// not rolled back.
func (e *Executor) Execute(ctx context.Context, effects []Descriptor) error {
	logger := e.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	for i, effect := range effects {
		if err := effect.Validate(); err != nil {
			return fmt.Errorf("side effect %d: %w", i, err)
		}
		if e.DryRun {
			logger.Info("dry run: skipping side effect", "index", i, "effect", effect.String())
			continue
		}
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("side effect %d (%s): %w", i, effect, err)
		}

		var err error
		switch effect.Kind {
		case KindFile:
			err = e.applyFile(*effect.File)
		case KindDirectory:
			err = applyDirectory(*effect.Directory)
		case KindCommand:
			err = e.runCommand(ctx, *effect.Command)
		}
		if err != nil {
			return fmt.Errorf("side effect %d (%s): %w", i, effect, err)
		}
		logger.Debug("applied side effect", "index", i, "effect", effect.String())
	}
	return nil
}

// applyFile writes or removes a file. A write whose content matches
// what is already on disk is skipped so the file's modification time
// is preserved.
func (e *Executor) applyFile(file FileDescriptor) error {
	if file.State == StateAbsent {
		if err := os.Remove(file.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return nil
	}

	existing, err := os.ReadFile(file.Path)
	if err == nil && bytes.Equal(existing, file.Contents) {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(file.Path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(file.Path, file.Contents, 0o644)
}

func applyDirectory(directory DirectoryDescriptor) error {
	if directory.State == StateAbsent {
		return os.RemoveAll(directory.Path)
	}
	return os.MkdirAll(directory.Path, 0o755)
}

func (e *Executor) runCommand(ctx context.Context, command CommandDescriptor) error {
	cmd := exec.CommandContext(ctx, command.Argv[0], command.Argv[1:]...)
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr
	return cmd.Run()
}
