// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for hostwatch.
//
// Configuration comes from at most one file, named by the --config
// flag or the HOSTWATCH_CONFIG environment variable (via [Load]). The
// file is optional: with neither set, [Default] values are used. There
// is no automatic file search. The file is read once at startup; there
// is no reload.
//
// Files ending in .json or .jsonc are JSON with comments and trailing
// commas, normalized by tidwall/jsonc before decoding. Anything else is
// YAML. Durations are written as Go duration strings ("1s", "2m").
//
// After loading and after any command-line overrides, [Config.Resolve]
// expands ${HOME}, ${HOSTWATCH_BASE}, and ${VAR:-default} patterns in
// path fields and derives the publish path when it is unset.
// [Config.Validate] then reports every problem at once.
//
// This package depends on no other hostwatch packages.
package config
