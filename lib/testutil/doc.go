// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for hostwatch packages.
//
// [WriteFile] and [ProcRoot] build synthetic filesystem fixtures: the
// host samplers read /proc files and the boot pipeline walks real
// directories, so most tests start by laying out a small tree under
// t.TempDir().
//
// [RequireReceive] encapsulates the timeout safety valve pattern
// (select with time.After fallback) so that individual tests do not
// need direct time.After calls. It is the only place in the test suite
// where a real wall-clock timeout is used.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no hostwatch-internal dependencies.
package testutil
