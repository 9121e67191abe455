// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bureau-foundation/hostwatch/lib/codec"
)

// Encoding selects the published file format.
type Encoding string

const (
	// EncodingJSON is two-space indented JSON with a trailing newline.
	EncodingJSON Encoding = "json"

	// EncodingCBOR is deterministic CBOR with the same keys.
	EncodingCBOR Encoding = "cbor"
)

// Valid reports whether e is a known encoding.
func (e Encoding) Valid() bool {
	return e == EncodingJSON || e == EncodingCBOR
}

// Encode serializes snapshot in the given encoding.
func Encode(snapshot Snapshot, encoding Encoding) ([]byte, error) {
	switch encoding {
	case EncodingJSON, "":
		data, err := json.MarshalIndent(snapshot, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling snapshot: %w", err)
		}
		return append(data, '\n'), nil
	case EncodingCBOR:
		data, err := codec.Marshal(snapshot)
		if err != nil {
			return nil, fmt.Errorf("marshaling snapshot: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unknown snapshot encoding %q", encoding)
	}
}

// Decode parses a published document in either encoding. A document
// starting with "{" is JSON; anything else is read as CBOR.
func Decode(data []byte) (Snapshot, Encoding, error) {
	var snapshot Snapshot
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &snapshot); err != nil {
			return Snapshot{}, EncodingJSON, fmt.Errorf("parsing JSON snapshot: %w", err)
		}
		return snapshot, EncodingJSON, nil
	}
	if err := codec.Unmarshal(data, &snapshot); err != nil {
		return Snapshot{}, EncodingCBOR, fmt.Errorf("parsing CBOR snapshot: %w", err)
	}
	return snapshot, EncodingCBOR, nil
}

// Publisher overwrites one published path.
type Publisher struct {
	Path     string
	Encoding Encoding
}

// Publish encodes snapshot and replaces the published file with it.
// The parent directory must exist. On error the previous document is
// left in place.
func (p *Publisher) Publish(snapshot Snapshot) error {
	data, err := Encode(snapshot, p.Encoding)
	if err != nil {
		return err
	}
	return writeAtomic(p.Path, data)
}

// writeAtomic writes data to a temporary sibling of path and renames it
// into place with mode 0644. The file is not fsynced: it is replaced
// every iteration and only its atomicity matters.
func writeAtomic(path string, data []byte) error {
	file, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating temporary snapshot file: %w", err)
	}
	temporaryPath := file.Name()

	if _, err := file.Write(data); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("writing temporary snapshot file: %w", err)
	}
	if err := file.Chmod(0644); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("setting snapshot file mode: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("closing temporary snapshot file: %w", err)
	}

	if err := os.Rename(temporaryPath, path); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("renaming snapshot into place: %w", err)
	}
	return nil
}
