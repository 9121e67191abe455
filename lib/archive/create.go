// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package archive

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zip"

	"github.com/bureau-foundation/hostwatch/lib/binhash"
	"github.com/bureau-foundation/hostwatch/lib/clock"
)

// Result statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// MessageSourceNotFound is the Result message when the source tree
// does not exist.
const MessageSourceNotFound = "Source not found"

// ArchivePrefix and ArchiveSuffix bracket the timestamp in an archive
// file name.
const (
	ArchivePrefix = "backup_"
	ArchiveSuffix = ".zip"
)

// FileTimeFormat is the timestamp layout in archive names and in
// Result.Timestamp.
const FileTimeFormat = "20060102_150405"

// Result describes the boot archive. A successful result carries every
// field except Message; an error result carries only Status and
// Message.
type Result struct {
	Status    string `json:"status"`
	Filename  string `json:"filename,omitempty"`
	Size      string `json:"size,omitempty"`
	Files     *int   `json:"files,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
	Message   string `json:"msg,omitempty"`

	// Digest is the BLAKE3 hex digest of the archive file.
	Digest string `json:"digest,omitempty"`
}

// Failed reports whether the archive was not produced.
func (r Result) Failed() bool {
	return r.Status != StatusSuccess
}

func errorResult(message string) Result {
	return Result{Status: StatusError, Message: message}
}

// Creator writes archives of one source tree into one directory.
type Creator struct {
	// Source is the tree to archive.
	Source string

	// Directory receives backup_<timestamp>.zip. It must exist.
	Directory string

	// Clock names the archive. Default: clock.Real().
	Clock clock.Clock

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Create archives Source into a new file under Directory. It never
// returns an error: failures are reported through an error Result and
// logged.
func (c *Creator) Create() Result {
	logger := c.Logger
	if logger == nil {
		logger = slog.Default()
	}
	clk := c.Clock
	if clk == nil {
		clk = clock.Real()
	}

	info, err := os.Stat(c.Source)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Warn("archive source not found", "path", c.Source)
			return errorResult(MessageSourceNotFound)
		}
		logger.Error("archive source unreadable", "path", c.Source, "error", err)
		return errorResult(err.Error())
	}
	if !info.IsDir() {
		logger.Error("archive source is not a directory", "path", c.Source)
		return errorResult(fmt.Sprintf("Source %s is not a directory", c.Source))
	}

	timestamp := clk.Now().Format(FileTimeFormat)
	filename := ArchivePrefix + timestamp + ArchiveSuffix
	path := filepath.Join(c.Directory, filename)

	count, err := writeArchive(path, c.Source)
	if errors.Is(err, fs.ErrExist) {
		logger.Error("archive already exists", "path", path)
		return errorResult(fmt.Sprintf("Archive %s already exists", filename))
	}
	if err != nil {
		os.Remove(path)
		logger.Error("archive failed", "path", path, "error", err)
		return errorResult(err.Error())
	}

	archiveInfo, err := os.Stat(path)
	if err != nil {
		os.Remove(path)
		logger.Error("archive vanished after writing", "path", path, "error", err)
		return errorResult(err.Error())
	}

	result := Result{
		Status:    StatusSuccess,
		Filename:  filename,
		Size:      FormatSize(archiveInfo.Size(), Megabyte),
		Files:     &count,
		Timestamp: timestamp,
	}
	if digest, err := binhash.HashFile(path); err != nil {
		logger.Warn("hashing archive failed", "path", path, "error", err)
	} else {
		result.Digest = digest.String()
	}

	logger.Info("archive created", "filename", filename, "files", count, "size", result.Size)
	return result
}

// writeArchive streams every regular file under source into a new zip
// at path and returns the number of files written. An existing file at
// path is left untouched and the error wraps fs.ErrExist.
func writeArchive(path, source string) (int, error) {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return 0, fmt.Errorf("creating archive: %w", err)
	}

	writer := zip.NewWriter(file)
	count, walkErr := addTree(writer, source, path)

	closeErr := writer.Close()
	if err := file.Close(); closeErr == nil {
		closeErr = err
	}
	if walkErr != nil {
		return 0, walkErr
	}
	if closeErr != nil {
		return 0, fmt.Errorf("finishing archive: %w", closeErr)
	}
	return count, nil
}

// addTree walks source and adds each regular file. A symlink to a
// regular file is archived with its target's content under the link's
// name; symlinks to directories are not descended into and dangling
// links are skipped. The archive being written is skipped when it lives
// inside source.
func addTree(writer *zip.Writer, source, archivePath string) (int, error) {
	absoluteArchive, _ := filepath.Abs(archivePath)
	count := 0

	err := filepath.WalkDir(source, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		info, err := fileInfo(path, entry)
		if err != nil {
			return err
		}
		if info == nil {
			return nil
		}
		if absolute, _ := filepath.Abs(path); absolute == absoluteArchive {
			return nil
		}

		relative, err := filepath.Rel(source, path)
		if err != nil {
			return err
		}
		if err := addFile(writer, path, filepath.ToSlash(relative), info); err != nil {
			return err
		}
		count++
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("archiving %s: %w", source, err)
	}
	return count, nil
}

// fileInfo returns the info to archive path with, or nil when path is
// not a regular file and is not a symlink resolving to one.
func fileInfo(path string, entry fs.DirEntry) (fs.FileInfo, error) {
	switch {
	case entry.Type().IsRegular():
		return entry.Info()
	case entry.Type()&fs.ModeSymlink != 0:
		target, err := os.Stat(path)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		if !target.Mode().IsRegular() {
			return nil, nil
		}
		return target, nil
	default:
		return nil, nil
	}
}

func addFile(writer *zip.Writer, path, name string, info fs.FileInfo) error {
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	header.Name = name
	header.Method = zip.Deflate

	destination, err := writer.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("adding %s: %w", name, err)
	}

	source, err := os.Open(path)
	if err != nil {
		return err
	}
	defer source.Close()

	if _, err := io.Copy(destination, source); err != nil {
		return fmt.Errorf("compressing %s: %w", name, err)
	}
	return nil
}
