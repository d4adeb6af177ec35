package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// envPrefix is the prefix for environment variable overrides,
// e.g. MKCHLOG_GIT_PATH overrides the git-path key.
const envPrefix = "MKCHLOG_"

// Load reads, parses and validates the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	cfg, err := parse(data)
	if err != nil {
		return nil, err
	}

	if err := loadSettings(cfg, path); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadSettings binds the scalar settings through koanf so that environment
// variables override file values. The ordered parts of the file (sections,
// projects) are handled by parse instead, koanf flattens mappings and would
// lose their declaration order.
func loadSettings(cfg *Config, path string) error {
	k := koanf.New(".")

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("loading config file %s: %w", path, err)
	}
	if err := k.Load(env.Provider(envPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("loading environment overrides: %w", err)
	}

	cfg.SkipCommitsUpTo = k.String("skip-commits-up-to")
	cfg.GitPath = k.String("git-path")
	cfg.SkipCommitsList = k.Strings("skip-commits-list")

	return nil
}

// envTransform maps MKCHLOG_GIT_PATH style variables onto their config file
// keys. Variables outside the known scalar settings are ignored.
func envTransform(s string) string {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", "-")
	switch key {
	case "git-path", "skip-commits-up-to":
		return key
	}
	return ""
}
