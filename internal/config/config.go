// Package config provides configuration types, defaults and persistence for vidkeep.
//
// Settings are stored as TOML at $XDG_CONFIG_HOME/vidkeep/config.toml
// (default ~/.config/vidkeep/config.toml). When that file does not exist, a
// legacy config.ini with input_directory and output_directory keys in its
// DEFAULT section is imported instead.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/ini.v1"
)

// Default constants
const (
	// DefaultFFmpegPath is the FFmpeg binary looked up on PATH.
	DefaultFFmpegPath = "ffmpeg"

	// DefaultHWAccel is the hardware decode API attempted before falling back to CPU.
	DefaultHWAccel = "cuda"

	// LegacyFileName is the settings file written by earlier versions.
	LegacyFileName = "config.ini"
)

// Default extension sets. Scans accept every recognized video container;
// concat and transfer only pick up .mp4 files.
var (
	DefaultScanExtensions     = []string{".mp4", ".mov", ".avi", ".mkv"}
	DefaultConcatExtensions   = []string{".mp4"}
	DefaultTransferExtensions = []string{".mp4"}
)

// Config holds all configuration for vidkeep.
type Config struct {
	// Directories
	InputDir  string `toml:"input_directory"`
	OutputDir string `toml:"output_directory"`
	LogDir    string `toml:"log_directory,omitempty"`

	// Extension sets per call site
	ScanExtensions     []string `toml:"scan_extensions"`
	ConcatExtensions   []string `toml:"concat_extensions"`
	TransferExtensions []string `toml:"transfer_extensions"`

	// FFmpeg
	FFmpegPath string `toml:"ffmpeg_path"`
	HWAccel    string `toml:"hwaccel"` // "" or "none" disables

	// Behavior
	OpenOutputDir bool `toml:"open_output_dir"` // Reveal the output folder after concat

	// Debug options
	Verbose bool `toml:"-"`
}

// NewConfig creates a new Config with default values.
func NewConfig(inputDir, outputDir, logDir string) *Config {
	return &Config{
		InputDir:           inputDir,
		OutputDir:          outputDir,
		LogDir:             logDir,
		ScanExtensions:     append([]string(nil), DefaultScanExtensions...),
		ConcatExtensions:   append([]string(nil), DefaultConcatExtensions...),
		TransferExtensions: append([]string(nil), DefaultTransferExtensions...),
		FFmpegPath:         DefaultFFmpegPath,
		HWAccel:            DefaultHWAccel,
		OpenOutputDir:      true,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	for _, set := range []struct {
		name  string
		value []string
	}{
		{"scan_extensions", c.ScanExtensions},
		{"concat_extensions", c.ConcatExtensions},
		{"transfer_extensions", c.TransferExtensions},
	} {
		if len(set.value) == 0 {
			return fmt.Errorf("%s must list at least one extension", set.name)
		}
		for _, e := range set.value {
			if !strings.HasPrefix(e, ".") || len(e) < 2 {
				return fmt.Errorf("%s: invalid extension %q (expected a leading dot, e.g. \".mp4\")", set.name, e)
			}
		}
	}

	if c.FFmpegPath == "" {
		return errors.New("ffmpeg_path must not be empty")
	}

	return nil
}

// EffectiveHWAccel returns the hardware decode API to attempt, or "" for none.
func (c *Config) EffectiveHWAccel() string {
	if strings.EqualFold(c.HWAccel, "none") {
		return ""
	}
	return c.HWAccel
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "vidkeep", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "vidkeep", "config.toml")
	}
	return filepath.Join(home, ".config", "vidkeep", "config.toml")
}

// Load reads config from path. When path does not exist, legacyINI (if
// non-empty and present) is imported; otherwise defaults are returned.
func Load(path, legacyINI string) (*Config, error) {
	cfg := NewConfig("", "", "")

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		if legacyINI != "" {
			if _, statErr := os.Stat(legacyINI); statErr == nil {
				if err := importINI(legacyINI, cfg); err != nil {
					return cfg, fmt.Errorf("failed to import %s: %w", legacyINI, err)
				}
			}
		}
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return cfg, nil
}

// importINI copies the directory settings from a legacy config.ini.
func importINI(path string, cfg *Config) error {
	f, err := ini.Load(path)
	if err != nil {
		return err
	}
	section := f.Section(ini.DefaultSection)
	cfg.InputDir = section.Key("input_directory").String()
	cfg.OutputDir = section.Key("output_directory").String()
	return nil
}

// Save writes config to path, creating parent directories.
func Save(path string, cfg *Config) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return toml.NewEncoder(f).Encode(cfg)
}
