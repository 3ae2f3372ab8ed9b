package giin

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/pkg/errors"
)

// DefaultConfigFile is looked up in the working directory when no config
// path is given.
const DefaultConfigFile = "csv2giin.json"

// Supported input encodings.
const (
	EncodingUTF8     = "utf-8"
	EncodingShiftJIS = "shift_jis"
)

// Config aggregates runtime settings. Values come from the JSON config file,
// then GIIN_* environment variables, then the env-default tags.
type Config struct {
	Indent            int      `json:"indent" env:"GIIN_INDENT" env-default:"2" validate:"min=1,max=8"`
	Encoding          string   `json:"encoding" env:"GIIN_ENCODING" env-default:"utf-8" validate:"oneof=utf-8 shift_jis"`
	AllowDuplicateIDs bool     `json:"allowDuplicateIds" env:"GIIN_ALLOW_DUPLICATE_IDS"`
	ExtraParties      []string `json:"extraParties" env:"GIIN_EXTRA_PARTIES" env-separator:","`
	LogLevel          string   `json:"logLevel" env:"GIIN_LOG_LEVEL" env-default:"info" validate:"oneof=debug info warn error"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	var cfg Config
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults populates zero values with defaults.
func (c *Config) ApplyDefaults() {
	if c.Indent <= 0 {
		c.Indent = 2
	}
	if c.Encoding == "" {
		c.Encoding = EncodingUTF8
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Validate checks the settings after defaults have been applied.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(err, "invalid config")
	}
	return nil
}

// LoadConfig reads the config file at path. An empty path means
// DefaultConfigFile in the working directory, which may be absent; an
// explicit path must exist.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}
	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return cfg, errors.Wrapf(err, "read config %s", path)
		}
	} else if explicit || !errors.Is(err, os.ErrNotExist) {
		return cfg, errors.Wrapf(err, "stat config %s", path)
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return cfg, errors.Wrap(err, "read config env")
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// SaveConfig persists cfg through a temporary file and rename.
func SaveConfig(path string, cfg Config) error {
	if path == "" {
		path = DefaultConfigFile
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "create config dir")
	}
	cfg.ApplyDefaults()
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode config")
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o644); err != nil {
		return errors.Wrap(err, "write temp config")
	}
	if err := os.Rename(tmp, path); err != nil {
		return errors.Wrap(err, "rename config")
	}
	return nil
}

// EnsureConfigFile writes the default config to path unless a file already
// exists there. It reports whether a file was created.
func EnsureConfigFile(path string) (bool, error) {
	if path == "" {
		path = DefaultConfigFile
	}
	path = filepath.Clean(path)
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, errors.Wrapf(err, "stat config %s", path)
	}
	if err := SaveConfig(path, DefaultConfig()); err != nil {
		return false, err
	}
	return true, nil
}
