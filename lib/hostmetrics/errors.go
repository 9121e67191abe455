// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package hostmetrics

import "errors"

var (
	// ErrUnavailable means the source could not be read at all: a
	// missing pseudo-file, a permission error, a tool that is not
	// installed or timed out.
	ErrUnavailable = errors.New("source unavailable")

	// ErrMalformed means the source was read but its content did not
	// have the expected shape.
	ErrMalformed = errors.New("malformed source")

	// ErrCommand means an external tool ran but reported failure
	// through its exit status.
	ErrCommand = errors.New("command failed")
)

// FailureKind returns a short label for the failure kind wrapped by
// err, for use as a structured log value. Returns "" for nil and
// "unknown" for errors outside this package's taxonomy.
func FailureKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnavailable):
		return "unavailable"
	case errors.Is(err, ErrMalformed):
		return "malformed"
	case errors.Is(err, ErrCommand):
		return "command"
	default:
		return "unknown"
	}
}
