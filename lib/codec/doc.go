// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides hostwatch's CBOR encoding configuration.
//
// The published snapshot is JSON by default because the dashboard
// reads it with a browser. Consumers that poll the file from another
// program can select CBOR instead (encoding: cbor), which is smaller
// and cheaper to decode. Struct fields carry only json tags: the CBOR
// library falls back to them, so both encodings use the same keys.
//
// Encoding uses Core Deterministic Encoding (RFC 8949 §4.2) so the same
// snapshot always produces the same bytes.
package codec
