package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"narralign/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("XDG_CACHE_HOME", "")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	if cfg.Paths.OutputDir != filepath.Join(tempHome, "narralign", "output") {
		t.Fatalf("unexpected output dir: %q", cfg.Paths.OutputDir)
	}
	if cfg.Paths.LogDir != filepath.Join(tempHome, ".local", "share", "narralign", "logs") {
		t.Fatalf("unexpected log dir: %q", cfg.Paths.LogDir)
	}
	if cfg.Alignment.SimilarityThreshold != 60 {
		t.Fatalf("unexpected similarity threshold: %v", cfg.Alignment.SimilarityThreshold)
	}
	if !cfg.Alignment.FuzzyMatching {
		t.Fatal("expected fuzzy matching enabled by default")
	}
	if cfg.Segmentation.Language != "auto" {
		t.Fatalf("unexpected language: %q", cfg.Segmentation.Language)
	}
	if cfg.Segmentation.MaxLines != 2 {
		t.Fatalf("unexpected max lines: %d", cfg.Segmentation.MaxLines)
	}
	if !cfg.Cache.Enabled {
		t.Fatal("expected cache enabled by default")
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.OutputDir, cfg.Paths.LogDir, cfg.Cache.Dir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "narralign.toml")

	custom := config.Default()
	custom.Alignment.SimilarityThreshold = 75
	custom.Segmentation.Language = "ko"
	custom.Segmentation.LineSoftCap = 14
	custom.Segmentation.LineHardCap = 18
	custom.Subtitles.LeadInMS = 250
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to be found")
	}
	if resolved != configPath {
		t.Fatalf("resolved path = %q, want %q", resolved, configPath)
	}
	if cfg.Alignment.SimilarityThreshold != 75 {
		t.Fatalf("unexpected threshold: %v", cfg.Alignment.SimilarityThreshold)
	}
	if cfg.Segmentation.Language != "ko" {
		t.Fatalf("unexpected language: %q", cfg.Segmentation.Language)
	}
	if cfg.Subtitles.LeadInMS != 250 {
		t.Fatalf("unexpected lead-in: %d", cfg.Subtitles.LeadInMS)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"threshold too high", "[alignment]\nsimilarity_threshold = 150.0\n"},
		{"bad language", "[segmentation]\nlanguage = \"zz\"\n"},
		{"caps inverted", "[segmentation]\nline_soft_cap = 20\nline_hard_cap = 10\n"},
		{"negative lead-in", "[subtitles]\nlead_in_ms = -5\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "narralign.toml")
			if err := os.WriteFile(configPath, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			if _, _, _, err := config.Load(configPath); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestLineCaps(t *testing.T) {
	var s config.Segmentation
	if soft, hard := s.LineCaps("ko"); soft != 16 || hard != 21 {
		t.Fatalf("korean caps = %d/%d, want 16/21", soft, hard)
	}
	if soft, hard := s.LineCaps("en"); soft != 37 || hard != 42 {
		t.Fatalf("latin caps = %d/%d, want 37/42", soft, hard)
	}
	s.LineSoftCap = 12
	s.LineHardCap = 15
	if soft, hard := s.LineCaps("ko"); soft != 12 || hard != 15 {
		t.Fatalf("explicit caps = %d/%d, want 12/15", soft, hard)
	}
}

func TestCreateSampleParses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load(sample) returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected sample config to exist")
	}
	if cfg.Alignment.SimilarityThreshold != 60 {
		t.Fatalf("sample threshold = %v, want 60", cfg.Alignment.SimilarityThreshold)
	}
}
