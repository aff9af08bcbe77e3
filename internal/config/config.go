package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override (LEVELUP_DB, ...).
const EnvPrefix = "LEVELUP"

// hintsAliasKey carries the short LEVELUP_HINTS form of hints.enabled.
const hintsAliasKey = "hints_alias"

// Config is the user-level configuration of the game.
type Config struct {
	DB      string      `mapstructure:"db"`
	Catalog string      `mapstructure:"catalog"`
	Log     LogConfig   `mapstructure:"log"`
	Hints   HintsConfig `mapstructure:"hints"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type HintsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Load reads configuration from the YAML file at path and from LEVELUP_*
// environment variables. An empty path means DefaultPath. A missing file is
// not an error; every field then takes its default or env value.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetDefault("db", "")
	v.SetDefault("catalog", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("hints.enabled", false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv(hintsAliasKey, EnvPrefix+"_HINTS")

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound), errors.Is(err, os.ErrNotExist):
			if explicit {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		default:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	// LEVELUP_HINTS applies unless LEVELUP_HINTS_ENABLED is also set.
	if _, full := os.LookupEnv(EnvPrefix + "_HINTS_ENABLED"); !full && v.IsSet(hintsAliasKey) {
		cfg.Hints.Enabled = v.GetBool(hintsAliasKey)
	}
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	return &cfg, nil
}

// DBFileName is the history database name inside DataDir.
const DBFileName = "levelup.db"

// DBPath returns the configured database path, or DBFileName under DataDir
// when none is set.
func (c *Config) DBPath() (string, error) {
	if c.DB != "" {
		return c.DB, nil
	}
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DBFileName), nil
}

// DefaultPath returns $XDG_CONFIG_HOME/levelup/config.yaml, falling back to
// ~/.config when XDG_CONFIG_HOME is unset.
func DefaultPath() (string, error) {
	dir, err := xdgDir("XDG_CONFIG_HOME", ".config")
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "levelup", "config.yaml"), nil
}

// StateDir returns $XDG_STATE_HOME/levelup, falling back to ~/.local/state.
func StateDir() (string, error) {
	dir, err := xdgDir("XDG_STATE_HOME", filepath.Join(".local", "state"))
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "levelup"), nil
}

// DataDir returns $XDG_DATA_HOME/levelup, falling back to ~/.local/share.
func DataDir() (string, error) {
	dir, err := xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "levelup"), nil
}

func xdgDir(env, homeRel string) (string, error) {
	if d := os.Getenv(env); d != "" {
		return d, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, homeRel), nil
}
