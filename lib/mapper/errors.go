// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package mapper

import (
	"errors"
	"fmt"
)

// StageError reports the pipeline stage that failed and the entity it
// was mapping. Err is the stage's own error, unmodified.
type StageError struct {
	// Entity identifies what was being mapped, e.g. "project App" or
	// "target AppTests".
	Entity string

	// Stage is the failing mapper's label: its pipeline position and
	// name.
	Stage string

	Err error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("mapping %s: stage %s: %v", e.Entity, e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// stageFailure wraps err in a StageError unless it already carries
// one from a nested pipeline, in which case it is returned unchanged.
func stageFailure(entity, stage string, err error) error {
	var existing *StageError
	if errors.As(err, &existing) {
		return err
	}
	return &StageError{Entity: entity, Stage: stage, Err: err}
}
