package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Output defaults. out_dir has no default: the generator cannot invent
	// a safe location for a file other tooling consumes by path.
	v.SetDefault("package", "optics")

	// Scanner extensions, both off unless asked for
	v.SetDefault("structx", false)
	v.SetDefault("named_args", false)

	// Discovery defaults: scan the whole workspace
	v.SetDefault("patterns", []string{"./..."})

	// Logging defaults
	v.SetDefault("log.json", false)
	v.SetDefault("log.verbosity", 0)
}

// findProjectConfig searches for opticgen.toml by walking up the directory
// tree from the working directory. Returns the first match or "".
func findProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		path := filepath.Join(dir, "opticgen.toml")
		if _, err := os.Stat(path); err == nil {
			return path
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
