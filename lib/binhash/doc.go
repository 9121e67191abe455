// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package binhash computes BLAKE3 content digests of files. hostwatch
// records the digest of each boot archive so a consumer can tell two
// archives with the same name and size apart, or verify a copy.
package binhash
