package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/justyntemme/gita-t/internal/logging"
)

const (
	DefaultAPIURL       = "https://bhagavad-gita3.p.rapidapi.com"
	DefaultAPIHost      = "bhagavad-gita3.p.rapidapi.com"
	DefaultTheme        = "saffron"
	DefaultHeroImageURL = "https://images.unsplash.com/photo-1585504198199-20277593b94f?q=80&w=2574"
	DefaultMusicURL     = "https://files.catbox.moe/vowb8o.mp3"
	EnvPrefix           = "GITA_"
	configFileName      = "config.yaml"
	logFileName         = "gita-t.log"
	configDirName       = "gita-t"
)

// Config holds the application configuration
type Config struct {
	APIURL  string `yaml:"api_url" koanf:"api_url"`
	APIKey  string `yaml:"api_key,omitempty" koanf:"api_key"`
	APIHost string `yaml:"api_host" koanf:"api_host"`

	Theme               string `yaml:"theme" koanf:"theme"`
	TranslationLanguage string `yaml:"translation_language,omitempty" koanf:"translation_language"`
	HeroImageURL        string `yaml:"hero_image_url" koanf:"hero_image_url"`

	// MusicPlayer is the command used for background music; the music URL
	// is appended as the last argument. Empty disables playback.
	MusicURL    string   `yaml:"music_url" koanf:"music_url"`
	MusicPlayer []string `yaml:"music_player,omitempty" koanf:"music_player"`

	LogFile  string `yaml:"log_file" koanf:"log_file"`
	LogLevel string `yaml:"log_level" koanf:"log_level"`

	// Path the config was loaded from (not persisted)
	path string `yaml:"-" koanf:"-"`
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() *Config {
	cfg := &Config{
		APIURL:       DefaultAPIURL,
		APIHost:      DefaultAPIHost,
		Theme:        DefaultTheme,
		HeroImageURL: DefaultHeroImageURL,
		MusicURL:     DefaultMusicURL,
		LogLevel:     "info",
	}
	if dir, err := configDir(); err == nil {
		cfg.LogFile = filepath.Join(dir, logFileName)
	}
	return cfg
}

// Load reads configuration from path, then overlays GITA_* environment
// variables. An empty path uses the default location. A missing file is
// not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	k := koanf.New(".")
	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envValue), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	cfg.path = path
	return cfg, nil
}

// envValue maps GITA_FOO_BAR to foo_bar. List keys are split on
// whitespace, so GITA_MUSIC_PLAYER="mpv --loop" is a two-word command.
func envValue(key, value string) (string, any) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	if key == "music_player" {
		return key, strings.Fields(value)
	}
	return key, value
}

// Save writes the configuration as YAML to path, or to the path it was
// loaded from when path is empty
func (c *Config) Save(path string) error {
	if path == "" {
		path = c.path
	}
	if path == "" {
		return fmt.Errorf("no config path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains usable values
func (c *Config) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("api_url is required")
	}
	if !strings.HasPrefix(c.APIURL, "http://") && !strings.HasPrefix(c.APIURL, "https://") {
		return fmt.Errorf("invalid api_url %q: must be http or https", c.APIURL)
	}
	if c.APIHost == "" {
		return fmt.Errorf("api_host is required")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Path returns the file the config was loaded from
func (c *Config) Path() string {
	return c.path
}

// DefaultPath returns the default config file location
func DefaultPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// configDir returns the per-user config directory for gita-t
func configDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, configDirName), nil
}
