package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig("/in", "/out", "")

	if cfg.FFmpegPath != DefaultFFmpegPath {
		t.Errorf("FFmpegPath = %q", cfg.FFmpegPath)
	}
	if cfg.HWAccel != DefaultHWAccel {
		t.Errorf("HWAccel = %q", cfg.HWAccel)
	}
	if !cfg.OpenOutputDir {
		t.Error("OpenOutputDir should default to true")
	}
	if len(cfg.ScanExtensions) != 4 || len(cfg.ConcatExtensions) != 1 {
		t.Errorf("unexpected extension defaults: %v %v", cfg.ScanExtensions, cfg.ConcatExtensions)
	}

	cfg.ScanExtensions[0] = ".xyz"
	if DefaultScanExtensions[0] != ".mp4" {
		t.Error("NewConfig shares the default slice")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty concat set", func(c *Config) { c.ConcatExtensions = nil }},
		{"missing dot", func(c *Config) { c.ScanExtensions = []string{"mp4"} }},
		{"bare dot", func(c *Config) { c.TransferExtensions = []string{"."} }},
		{"empty ffmpeg", func(c *Config) { c.FFmpegPath = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig("", "", "")
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestEffectiveHWAccel(t *testing.T) {
	cfg := NewConfig("", "", "")
	for in, want := range map[string]string{"cuda": "cuda", "none": "", "NONE": "", "": "", "vaapi": "vaapi"} {
		cfg.HWAccel = in
		if got := cfg.EffectiveHWAccel(); got != want {
			t.Errorf("EffectiveHWAccel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := NewConfig("/videos/in", "/videos/out", "")
	cfg.HWAccel = "none"
	cfg.OpenOutputDir = false

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save() = %v", err)
	}
	got, err := Load(path, "")
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if got.InputDir != "/videos/in" || got.OutputDir != "/videos/out" {
		t.Errorf("dirs = %q, %q", got.InputDir, got.OutputDir)
	}
	if got.HWAccel != "none" || got.OpenOutputDir {
		t.Errorf("HWAccel=%q OpenOutputDir=%v", got.HWAccel, got.OpenOutputDir)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("input_directory = \"/a\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path, "")
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if cfg.InputDir != "/a" || cfg.HWAccel != DefaultHWAccel || len(cfg.ConcatExtensions) != 1 {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestLoadMissingImportsLegacyINI(t *testing.T) {
	dir := t.TempDir()
	legacy := filepath.Join(dir, LegacyFileName)
	content := "[DEFAULT]\ninput_directory = /media/card\noutput_directory = /media/library\n"
	if err := os.WriteFile(legacy, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(filepath.Join(dir, "missing.toml"), legacy)
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if cfg.InputDir != "/media/card" || cfg.OutputDir != "/media/library" {
		t.Errorf("dirs = %q, %q", cfg.InputDir, cfg.OutputDir)
	}
}

func TestLoadMissingWithoutLegacy(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(filepath.Join(dir, "missing.toml"), filepath.Join(dir, LegacyFileName))
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if cfg.InputDir != "" || cfg.FFmpegPath != DefaultFFmpegPath {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("input_directory = [broken"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path, ""); err == nil {
		t.Error("expected parse error")
	}
}

func TestDefaultPathHonorsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got := DefaultPath(); got != "/tmp/xdg/vidkeep/config.toml" {
		t.Errorf("DefaultPath() = %q", got)
	}
}
