// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the config file when --config is not given.
const EnvironmentVariable = "HOSTWATCH_CONFIG"

// Config is the hostwatchd configuration.
type Config struct {
	// BaseDir holds output/backups, output/logs, and by default
	// web/data.json.
	BaseDir string `yaml:"base_dir"`

	// BackupSource is the directory tree archived at boot.
	BackupSource string `yaml:"backup_source"`

	// PublishPath is where the snapshot is written every iteration.
	// Default: ${BaseDir}/web/data.json.
	PublishPath string `yaml:"publish_path"`

	// RootDir prefixes the release marker files, the checkupdates
	// lookup, and /proc. Default: /.
	RootDir string `yaml:"root_dir"`

	// Encoding is the published file format: json or cbor.
	Encoding string `yaml:"encoding"`

	// SampleWindow separates the two CPU counter reads. Default: 1s.
	SampleWindow time.Duration `yaml:"sample_window"`

	// DiskTimeout bounds each df invocation. Default: 5s.
	DiskTimeout time.Duration `yaml:"disk_timeout"`

	// UpdateTimeout bounds the package manager query. Default: 2m.
	UpdateTimeout time.Duration `yaml:"update_timeout"`

	// ArchiveHistory is how many archives the snapshot lists.
	ArchiveHistory int `yaml:"archive_history"`

	// ReportHistory is how many update reports the snapshot lists.
	ReportHistory int `yaml:"report_history"`

	// RefreshHistory re-lists archives and reports every iteration
	// instead of only at boot.
	RefreshHistory bool `yaml:"refresh_history"`

	// Log configures the daemon logger.
	Log LogConfig `yaml:"log"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is debug, info, warn, or error. Default: info.
	Level string `yaml:"level"`

	// Format is auto, json, or text. auto selects text when stderr is
	// a terminal and JSON otherwise.
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given. Path
// fields still contain variables; call Resolve before use.
func Default() *Config {
	return &Config{
		BaseDir:        "${HOME}/hostwatch",
		BackupSource:   "${HOME}/backup",
		RootDir:        "/",
		Encoding:       "json",
		SampleWindow:   time.Second,
		DiskTimeout:    5 * time.Second,
		UpdateTimeout:  2 * time.Minute,
		ArchiveHistory: 10,
		ReportHistory:  5,
		Log: LogConfig{
			Level:  "info",
			Format: "auto",
		},
	}
}

// Load loads the file at path, or the file named by HOSTWATCH_CONFIG
// when path is empty. With neither, it returns Default().
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvironmentVariable)
	}
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile loads configuration from a specific file path, on top of
// Default(). Keys absent from the file keep their default values.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}

	// JSON is valid YAML once comments and trailing commas are gone,
	// so both formats share the YAML decoder and its duration parsing.
	extension := strings.ToLower(filepath.Ext(path))
	if extension == ".json" || extension == ".jsonc" {
		data = jsonc.ToJSON(data)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// Resolve expands variables in path fields and fills in the publish
// path. It is idempotent.
func (c *Config) Resolve() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}

	c.BaseDir = expandVars(c.BaseDir, vars)
	vars["HOSTWATCH_BASE"] = c.BaseDir

	c.BackupSource = expandVars(c.BackupSource, vars)
	c.RootDir = expandVars(c.RootDir, vars)
	if c.PublishPath == "" && c.BaseDir != "" {
		c.PublishPath = filepath.Join(c.BaseDir, "web", "data.json")
	}
	c.PublishPath = expandVars(c.PublishPath, vars)
}

// expandVars expands ${VAR} and ${VAR:-default} patterns.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.BaseDir == "" {
		errs = append(errs, fmt.Errorf("base_dir is required"))
	}
	if c.BackupSource == "" {
		errs = append(errs, fmt.Errorf("backup_source is required"))
	}
	if c.PublishPath == "" {
		errs = append(errs, fmt.Errorf("publish_path is required"))
	}
	if c.RootDir == "" {
		errs = append(errs, fmt.Errorf("root_dir is required"))
	}

	if !contains([]string{"json", "cbor"}, c.Encoding) {
		errs = append(errs, fmt.Errorf("encoding must be json or cbor, got %q", c.Encoding))
	}

	if c.SampleWindow <= 0 {
		errs = append(errs, fmt.Errorf("sample_window must be positive, got %s", c.SampleWindow))
	}
	if c.DiskTimeout <= 0 {
		errs = append(errs, fmt.Errorf("disk_timeout must be positive, got %s", c.DiskTimeout))
	}
	if c.UpdateTimeout <= 0 {
		errs = append(errs, fmt.Errorf("update_timeout must be positive, got %s", c.UpdateTimeout))
	}
	if c.ArchiveHistory <= 0 {
		errs = append(errs, fmt.Errorf("archive_history must be positive, got %d", c.ArchiveHistory))
	}
	if c.ReportHistory <= 0 {
		errs = append(errs, fmt.Errorf("report_history must be positive, got %d", c.ReportHistory))
	}

	levels := []string{"debug", "info", "warn", "error"}
	if !contains(levels, c.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level must be one of: %v", levels))
	}
	formats := []string{"auto", "json", "text"}
	if !contains(formats, c.Log.Format) {
		errs = append(errs, fmt.Errorf("log.format must be one of: %v", formats))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// OutputDir is ${BaseDir}/output.
func (c *Config) OutputDir() string {
	return filepath.Join(c.BaseDir, "output")
}

// BackupDir receives boot archives.
func (c *Config) BackupDir() string {
	return filepath.Join(c.OutputDir(), "backups")
}

// LogsDir receives update reports.
func (c *Config) LogsDir() string {
	return filepath.Join(c.OutputDir(), "logs")
}

// ProcRoot is the proc filesystem under RootDir.
func (c *Config) ProcRoot() string {
	return filepath.Join(c.RootDir, "proc")
}

// EnsurePaths creates the output directories and the publish path's
// parent if they don't exist.
func (c *Config) EnsurePaths() error {
	paths := []string{
		c.OutputDir(),
		c.BackupDir(),
		c.LogsDir(),
		filepath.Dir(c.PublishPath),
	}

	for _, path := range paths {
		if err := os.MkdirAll(path, 0755); err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
	}

	return nil
}

func contains(slice []string, s string) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}
