// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Hostwatchd is the resident host-monitoring daemon. It keeps a single
// JSON document describing the host up to date for a dashboard to
// poll.
//
// On startup:
//  1. Creates output/backups, output/logs, and the publish directory
//     under the base directory. Failure here is fatal.
//  2. Installs SIGINT and SIGTERM handlers that clear the run flag.
//  3. Runs the boot pipeline once: checks for pending package updates
//     and writes a report, archives the backup source to a timestamped
//     zip, and lists previous archives and reports.
//  4. Samples CPU, memory, disk, and uptime, assembles the snapshot,
//     and overwrites the published file, repeating until signalled.
//     Each iteration takes at least the CPU sampling window (1s by
//     default); there is no other delay.
//
// Shutdown is cooperative: a signal lets the in-flight iteration finish
// and publish before the loop exits.
//
// Configuration is an optional YAML or JSONC file (--config or
// HOSTWATCH_CONFIG). Flags override file values when given.
package main
