// Package config holds the optional defaults file for the maspsx driver,
// read with the same TOML library and XDG-style path resolution the
// teacher emulator uses for its own settings file.
package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config is the on-disk defaults file. Command-line flags always override
// whatever is set here (see cmd/maspsx).
type Config struct {
	Driver struct {
		SdataLimit  int    `toml:"sdata_limit"`
		ExpandDiv   bool   `toml:"expand_div"`
		NoMacroInc  bool   `toml:"no_macro_inc"`
		GNUASPath   string `toml:"gnu_as_path"`
		DontForceG0 bool   `toml:"dont_force_g0"`
		ForceStdin  bool   `toml:"force_stdin"`
		Verbose     bool   `toml:"verbose"`
	} `toml:"driver"`
}

// DefaultConfig returns the built-in defaults used when no config file is
// present or a key is absent from it.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Driver.SdataLimit = 0
	cfg.Driver.ExpandDiv = true
	cfg.Driver.GNUASPath = "mips-linux-gnu-as"
	return cfg
}

// GetConfigPath returns the platform-appropriate path for maspsx.toml,
// falling back to the current directory if the user config dir can't be
// determined.
func GetConfigPath() string {
	dir, err := userConfigDir()
	if err != nil {
		return "maspsx.toml"
	}
	full := filepath.Join(dir, "maspsx")
	_ = os.MkdirAll(full, 0750)
	return filepath.Join(full, "maspsx.toml")
}

func userConfigDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		if v := os.Getenv("APPDATA"); v != "" {
			return v, nil
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "Library", "Application Support"), nil
	default:
		if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
			return v, nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config"), nil
	}
	return os.UserHomeDir()
}

// Load reads the defaults file from its standard location. A missing file
// is not an error: DefaultConfig() is returned instead.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom reads the defaults file from an explicit path.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to its standard location.
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo writes the config to an explicit path.
func (c *Config) SaveTo(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return toml.NewEncoder(f).Encode(c)
}
