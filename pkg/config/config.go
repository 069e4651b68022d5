package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/mmv/pkg/errors"
	"github.com/arthur-debert/mmv/pkg/logging"
)

// EnvPrefix is the prefix of configuration environment variables
const EnvPrefix = "MMV_"

// Editor selects the program edit launches
type Editor struct {
	Command string   `koanf:"command" toml:"command"`
	Args    []string `koanf:"args" toml:"args"`
}

// Scan controls which files a tree scan reports
type Scan struct {
	Ignore         []string `koanf:"ignore" toml:"ignore"`
	FollowSymlinks bool     `koanf:"follow_symlinks" toml:"follow_symlinks"`
}

// Execute holds the execute command defaults
type Execute struct {
	Reflink   string `koanf:"reflink" toml:"reflink"`
	Strategy  string `koanf:"strategy" toml:"strategy"`
	Overwrite bool   `koanf:"overwrite" toml:"overwrite"`
}

// Output controls terminal rendering
type Output struct {
	Color string `koanf:"color" toml:"color"`
}

// Config is the main configuration structure
type Config struct {
	Editor  Editor  `koanf:"editor" toml:"editor"`
	Scan    Scan    `koanf:"scan" toml:"scan"`
	Execute Execute `koanf:"execute" toml:"execute"`
	Output  Output  `koanf:"output" toml:"output"`
}

// Options selects the files and overrides Load applies on top of the
// embedded defaults. Missing files are skipped.
type Options struct {
	// UserFile is the user configuration file
	UserFile string
	// WorkspaceFile is the per-workspace configuration file
	WorkspaceFile string
	// Overrides are flat dotted keys, e.g. "execute.reflink"
	Overrides map[string]interface{}
}

// Load builds the effective configuration.
func Load(opts Options) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	for _, path := range []string{opts.UserFile, opts.WorkspaceFile} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", path)
		}
		logger.Debug().Str("path", path).Msg("Loaded config file")
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
	}

	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to unmarshal configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps MMV_EXECUTE_REFLINK to execute.reflink. Only the first
// underscore separates the section, so MMV_SCAN_FOLLOW_SYMLINKS becomes
// scan.follow_symlinks.
func envKey(s string) string {
	return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".", 1)
}

// Default returns the embedded defaults alone.
func Default() *Config {
	cfg, err := Load(Options{})
	if err != nil {
		// The embedded file is covered by tests; this only guards against
		// a broken MMV_* variable.
		return &Config{
			Execute: Execute{Reflink: "auto", Strategy: "sequential"},
			Output:  Output{Color: "auto"},
		}
	}
	return cfg
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	checks := []struct {
		key, value string
		allowed    []string
	}{
		{"execute.reflink", c.Execute.Reflink, []string{"auto", "always", "never"}},
		{"execute.strategy", c.Execute.Strategy, []string{"sequential", "staged"}},
		{"output.color", c.Output.Color, []string{"auto", "always", "never"}},
	}
	for _, check := range checks {
		if !contains(check.allowed, check.value) {
			return errors.Newf(errors.ErrConfigLoad, "invalid %s %q (want %s)",
				check.key, check.value, strings.Join(check.allowed, ", ")).
				WithDetail("key", check.key)
		}
	}
	return nil
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

// TOML renders the configuration in the same shape as the config file.
func (c *Config) TOML() (string, error) {
	data, err := gotoml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to encode configuration: %w", err)
	}
	return string(data), nil
}
