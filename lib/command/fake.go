// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"sync"
)

// Fake is a Runner that returns canned results keyed by the full
// command line ("df -h /"). Unregistered command lines fail with
// ErrNotFound, which is what a host without the tool looks like.
type Fake struct {
	mu      sync.Mutex
	results map[string]fakeEntry
	calls   []string
}

type fakeEntry struct {
	result Result
	err    error
}

// NewFake returns an empty Fake.
func NewFake() *Fake {
	return &Fake{results: make(map[string]fakeEntry)}
}

// Set registers the result returned for commandLine.
func (f *Fake) Set(commandLine string, result Result) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results[commandLine] = fakeEntry{result: result}
}

// SetStdout registers a successful run printing stdout.
func (f *Fake) SetStdout(commandLine, stdout string) {
	f.Set(commandLine, Result{Stdout: []byte(stdout)})
}

// SetError registers a run that fails to start with err.
func (f *Fake) SetError(commandLine string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results[commandLine] = fakeEntry{err: err}
}

// Calls returns the command lines run so far, in order.
func (f *Fake) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// Run implements Runner.
func (f *Fake) Run(ctx context.Context, name string, args ...string) (Result, error) {
	line := commandLine(name, args)

	f.mu.Lock()
	f.calls = append(f.calls, line)
	entry, ok := f.results[line]
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("running %s: %w", line, err)
	}
	if !ok {
		return Result{}, fmt.Errorf("running %s: %w", line, ErrNotFound)
	}
	return entry.result, entry.err
}
