// Package config holds opticgen's runtime configuration.
//
// Configuration sources, lowest to highest precedence: built-in defaults,
// an optional opticgen.toml found by walking up from the working directory,
// environment variables with the OPTICS prefix, CLI flags bound by the
// command layer. The output directory is the one mandatory setting: the
// generator refuses to run without a place to persist its output.
package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/lens-go/opticgen/errors"
)

// GeneratedFileName is the well-known name of the persisted output file.
// Downstream consumers include it by this exact name, so it is not
// configurable.
const GeneratedFileName = "optics.go"

// Config represents the opticgen configuration
type Config struct {
	// OutDir is the directory the generated file is written to.
	// Required; bound to OPTICS_OUT_DIR.
	OutDir string `mapstructure:"out_dir"`

	// Package is the package clause of the generated file
	Package string `mapstructure:"package"`

	// Structx enables the structx/Structx literal scanning rule
	Structx bool `mapstructure:"structx"`

	// NamedArgs enables the named_args function scanning rule
	NamedArgs bool `mapstructure:"named_args"`

	// Patterns are the package patterns handed to workspace discovery
	Patterns []string `mapstructure:"patterns"`

	Log LogConfig `mapstructure:"log"`
}

// LogConfig configures generator logging
type LogConfig struct {
	JSON      bool `mapstructure:"json"`      // machine-readable JSON logs
	Verbosity int  `mapstructure:"verbosity"` // -v flag count
}

// Load reads the opticgen configuration using Viper
func Load() (*Config, error) {
	return LoadWithViper(NewViper())
}

// LoadWithViper loads configuration from a provided Viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return &cfg, nil
}

// NewViper initializes a Viper instance with configuration sources and defaults
func NewViper() *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix("OPTICS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// out_dir has no default, so Unmarshal only sees it with an explicit
	// env binding
	_ = v.BindEnv("out_dir")

	SetDefaults(v)

	// Optional project config file, merged below env vars
	if path := findProjectConfig(); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		// Missing or unreadable file falls back to defaults + env
		_ = v.MergeInConfig()
	}

	return v
}

// Validate checks that the configuration is complete enough to run
func (c *Config) Validate() error {
	if c.OutDir == "" {
		return errors.WithHint(
			errors.ErrMissingOutDir,
			"set OPTICS_OUT_DIR or pass --out",
		)
	}
	if c.Package == "" {
		return errors.New("package cannot be empty")
	}
	return nil
}
