// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package archive creates the boot-time zip archive of a source tree
// and lists the archives and update reports left behind by earlier
// runs.
//
// Archive names embed the creation time (backup_20260301_093015.zip)
// in a layout that sorts lexically in time order, so listings sort by
// name rather than by modification time. Every regular file below the
// source is stored deflated under its slash-separated path relative to
// the source root, with its modification time preserved. An archive
// that fails partway is removed so it never shows up in a listing.
package archive
