package brewin

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ConfigFileName is the project configuration file looked up by FindConfig.
const ConfigFileName = "brewin.toml"

// ConfigFile is a parsed brewin.toml.
type ConfigFile struct {
	Path   string        `toml:"-"`
	Limits LimitsSection `toml:"limits"`
	Trace  TraceSection  `toml:"trace"`
}

// LimitsSection mirrors the numeric fields of Config. Zero keeps the
// engine default.
type LimitsSection struct {
	Steps     int `toml:"steps"`
	Recursion int `toml:"recursion"`
	Templates int `toml:"templates"`
}

// TraceSection controls statement tracing and log verbosity.
type TraceSection struct {
	Enabled   bool `toml:"enabled"`
	Verbosity int  `toml:"verbosity"`
}

// LoadConfig parses the configuration file at path.
func LoadConfig(path string) (*ConfigFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var cf ConfigFile
	meta, err := toml.Decode(string(data), &cf)
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %s", path, undecoded[0])
	}
	if cf.Limits.Steps < 0 || cf.Limits.Recursion < 0 || cf.Limits.Templates < 0 {
		return nil, fmt.Errorf("%s: limits must be non-negative", path)
	}

	cf.Path, err = filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", path, err)
	}
	return &cf, nil
}

// FindConfig walks up from startDir looking for brewin.toml. It returns
// nil when no file is found.
func FindConfig(startDir string) (*ConfigFile, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(path); err == nil {
			return LoadConfig(path)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, nil
		}
		dir = parent
	}
}

// Apply overlays the file's settings onto cfg.
func (cf *ConfigFile) Apply(cfg Config) Config {
	if cf == nil {
		return cfg
	}
	if cf.Limits.Steps > 0 {
		cfg.StepQuota = cf.Limits.Steps
	}
	if cf.Limits.Recursion > 0 {
		cfg.RecursionLimit = cf.Limits.Recursion
	}
	if cf.Limits.Templates > 0 {
		cfg.MaxTemplateInstances = cf.Limits.Templates
	}
	if cf.Trace.Enabled {
		cfg.Trace = true
	}
	return cfg
}
