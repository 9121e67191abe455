// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Hostwatch is the operator CLI for hostwatchd. It reads the snapshot
// the daemon publishes; it never talks to the daemon and never writes.
//
// Usage:
//
//	hostwatch status [--file PATH] [--json | --raw]
//
// status prints a styled summary of the current snapshot. --json
// prints the document as indented JSON whatever encoding it was
// published in. --raw prints the file as published: JSON unchanged,
// CBOR in diagnostic notation.
//
// Without --file the path is taken from the daemon configuration
// (--config or HOSTWATCH_CONFIG), defaulting to
// ${HOME}/hostwatch/web/data.json.
package main
