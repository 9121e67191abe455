// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package command runs the external tools hostwatch depends on (df,
// checkupdates, pacman, apt) behind a small [Runner] interface.
//
// The contract is textual: callers get the captured stdout and stderr
// plus the exit code as data. A non-zero exit is not an error, because
// several of these tools use exit codes for ordinary outcomes
// (checkupdates exits 2 when nothing is pending). Run returns an error
// only when the process could not be started, was killed by its
// timeout, or the context was cancelled. Start failures caused by a
// missing binary wrap [ErrNotFound].
//
// Tests substitute [Fake], which maps a command line to a canned
// [Result] without touching the host.
package command
