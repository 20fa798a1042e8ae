// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source. Production code
// uses [Real]; tests use [Fake], which moves only when told to:
//
//	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	store, err := fingerprintcache.Open(fingerprintcache.Config{Path: path, Clock: c})
//	// ...
//	c.Advance(time.Hour)
package clock
