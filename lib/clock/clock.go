// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import "time"

// Clock is the source of the current time. Code that records
// timestamps takes a Clock instead of calling time.Now so tests can
// pin the time.
type Clock interface {
	Now() time.Time
}

// Real returns the wall clock. Times are in UTC so stored cache
// timestamps do not depend on the machine's zone.
func Real() Clock { return wallClock{} }

type wallClock struct{}

func (wallClock) Now() time.Time { return time.Now().UTC() }
