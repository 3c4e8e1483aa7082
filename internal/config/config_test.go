package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.APIURL != DefaultAPIURL {
		t.Errorf("api_url = %q, want %q", cfg.APIURL, DefaultAPIURL)
	}
	if cfg.APIHost != DefaultAPIHost {
		t.Errorf("api_host = %q, want %q", cfg.APIHost, DefaultAPIHost)
	}
	if cfg.Theme != DefaultTheme {
		t.Errorf("theme = %q, want %q", cfg.Theme, DefaultTheme)
	}
	if len(cfg.MusicPlayer) != 0 {
		t.Error("music player should be disabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gita-t", "config.yaml")

	original := DefaultConfig()
	original.APIKey = "secret"
	original.Theme = "light"
	original.TranslationLanguage = "english"
	original.MusicPlayer = []string{"mpv", "--no-video", "--loop"}

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.APIKey != "secret" {
		t.Errorf("api_key: got %q", loaded.APIKey)
	}
	if loaded.Theme != "light" {
		t.Errorf("theme: got %q", loaded.Theme)
	}
	if loaded.TranslationLanguage != "english" {
		t.Errorf("translation_language: got %q", loaded.TranslationLanguage)
	}
	if len(loaded.MusicPlayer) != 3 || loaded.MusicPlayer[0] != "mpv" {
		t.Errorf("music_player: got %v", loaded.MusicPlayer)
	}
	if loaded.Path() != path {
		t.Errorf("path: got %q, want %q", loaded.Path(), path)
	}
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	if cfg.APIURL != DefaultAPIURL {
		t.Errorf("expected defaults, got api_url %q", cfg.APIURL)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("api_key: from-file\ntheme: dark\n"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GITA_API_KEY", "from-env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.APIKey != "from-env" {
		t.Errorf("api_key: got %q, want env override", cfg.APIKey)
	}
	if cfg.Theme != "dark" {
		t.Errorf("theme: got %q, want value from file", cfg.Theme)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("api_url: [unterminated\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"empty url", func(c *Config) { c.APIURL = "" }, true},
		{"bad scheme", func(c *Config) { c.APIURL = "ftp://example.com" }, true},
		{"empty host", func(c *Config) { c.APIHost = "" }, true},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv("GITA_API_KEY", "env-key")
	t.Setenv("GITA_MUSIC_PLAYER", "mpv  --no-video --loop")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.APIKey != "env-key" {
		t.Errorf("api_key: got %q", cfg.APIKey)
	}
	want := []string{"mpv", "--no-video", "--loop"}
	if len(cfg.MusicPlayer) != len(want) {
		t.Fatalf("music_player: got %q, want %q", cfg.MusicPlayer, want)
	}
	for i := range want {
		if cfg.MusicPlayer[i] != want[i] {
			t.Errorf("music_player[%d]: got %q, want %q", i, cfg.MusicPlayer[i], want[i])
		}
	}
}
