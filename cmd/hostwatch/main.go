// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/hostwatch/lib/codec"
	"github.com/bureau-foundation/hostwatch/lib/config"
	"github.com/bureau-foundation/hostwatch/lib/process"
	"github.com/bureau-foundation/hostwatch/lib/snapshot"
	"github.com/bureau-foundation/hostwatch/lib/version"
)

const usage = `Usage:
  hostwatch status [--file PATH] [--json | --raw]
  hostwatch --version
`

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		process.Fatal(err)
	}
}

func run(args []string, stdout io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("missing command")
	}
	switch args[0] {
	case "--version", "version":
		version.Print(stdout, "hostwatch")
		return nil
	case "-h", "--help", "help":
		fmt.Fprint(stdout, usage)
		return nil
	case "status":
		return runStatus(args[1:], stdout)
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func runStatus(args []string, stdout io.Writer) error {
	var (
		filePath   string
		configPath string
		asJSON     bool
		raw        bool
	)
	flagSet := pflag.NewFlagSet("hostwatch status", pflag.ContinueOnError)
	flagSet.StringVar(&filePath, "file", "", "published snapshot to read (default: publish_path from the config)")
	flagSet.StringVar(&configPath, "config", "", "daemon config file used to find the snapshot")
	flagSet.BoolVar(&asJSON, "json", false, "print the snapshot as indented JSON")
	flagSet.BoolVar(&raw, "raw", false, "print the snapshot as published (CBOR in diagnostic notation)")

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}
	if asJSON && raw {
		return fmt.Errorf("--json and --raw are mutually exclusive")
	}

	if filePath == "" {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg.Resolve()
		filePath = cfg.PublishPath
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("reading snapshot: %w", err)
	}
	document, encoding, err := snapshot.Decode(data)
	if err != nil {
		return err
	}

	switch {
	case raw && encoding == snapshot.EncodingCBOR:
		diagnostic, err := codec.Diagnose(data)
		if err != nil {
			return fmt.Errorf("rendering CBOR: %w", err)
		}
		_, err = fmt.Fprintln(stdout, diagnostic)
		return err
	case raw:
		_, err = stdout.Write(data)
		return err
	case asJSON:
		encoded, err := json.MarshalIndent(document, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling snapshot: %w", err)
		}
		_, err = fmt.Fprintf(stdout, "%s\n", encoded)
		return err
	default:
		theme := newTheme(lipgloss.NewRenderer(stdout))
		_, err = io.WriteString(stdout, renderStatus(document, theme))
		return err
	}
}
