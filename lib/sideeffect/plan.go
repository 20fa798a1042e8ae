// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sideeffect

import (
	"fmt"
	"os"

	"github.com/bureau-foundation/graphgen/lib/codec"
)

// planVersion is bumped whenever the Plan encoding changes
// incompatibly.
const planVersion = 1

// Plan is a persisted side-effect list: the output of a dry run, kept
// so it can be inspected, diffed, or applied later.
type Plan struct {
	Version     int          `cbor:"version"`
	Entity      string       `cbor:"entity"`
	Fingerprint string       `cbor:"fingerprint,omitempty"`
	SideEffects []Descriptor `cbor:"side_effects"`
}

// NewPlan returns a plan for the named entity.
func NewPlan(entity, fingerprint string, effects []Descriptor) Plan {
	return Plan{
		Version:     planVersion,
		Entity:      entity,
		Fingerprint: fingerprint,
		SideEffects: effects,
	}
}

// EncodePlan returns the deterministic CBOR encoding of plan after
// validating every descriptor.
func EncodePlan(plan Plan) ([]byte, error) {
	for i, effect := range plan.SideEffects {
		if err := effect.Validate(); err != nil {
			return nil, fmt.Errorf("plan %s: side effect %d: %w", plan.Entity, i, err)
		}
	}
	data, err := codec.Marshal(plan)
	if err != nil {
		return nil, fmt.Errorf("encoding plan %s: %w", plan.Entity, err)
	}
	return data, nil
}

// DecodePlan parses a plan produced by [EncodePlan].
func DecodePlan(data []byte) (Plan, error) {
	var plan Plan
	if err := codec.Unmarshal(data, &plan); err != nil {
		return Plan{}, fmt.Errorf("decoding plan: %w", err)
	}
	if plan.Version != planVersion {
		return Plan{}, fmt.Errorf("plan version %d is not supported (want %d)", plan.Version, planVersion)
	}
	for i, effect := range plan.SideEffects {
		if err := effect.Validate(); err != nil {
			return Plan{}, fmt.Errorf("plan %s: side effect %d: %w", plan.Entity, i, err)
		}
	}
	return plan, nil
}

// WritePlanFile encodes plan and writes it to path.
func WritePlanFile(path string, plan Plan) error {
	data, err := EncodePlan(plan)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing plan to %s: %w", path, err)
	}
	return nil
}

// ReadPlanFile reads and decodes the plan at path.
func ReadPlanFile(path string) (Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Plan{}, fmt.Errorf("reading plan %s: %w", path, err)
	}
	plan, err := DecodePlan(data)
	if err != nil {
		return Plan{}, fmt.Errorf("%s: %w", path, err)
	}
	return plan, nil
}
