package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/mattn/go-shellwords"
)

type Config struct {
	Listing  ListingConfig  `toml:"listing"`
	Commands CommandsConfig `toml:"commands"`
}

type ListingConfig struct {
	TopLevelLimit int      `toml:"top_level_limit"`
	TreeLimit     int      `toml:"tree_limit"`
	PublishLimit  int      `toml:"publish_limit"`
	Exclude       []string `toml:"exclude"`
}

// CommandsConfig optionally overrides the selected install/build commands.
// Values are shell-style strings, split with shellwords so quoting works.
type CommandsConfig struct {
	Install string `toml:"install"`
	Build   string `toml:"build"`
}

func Default() *Config {
	return &Config{
		Listing: ListingConfig{
			TopLevelLimit: 80,
			TreeLimit:     250,
			PublishLimit:  120,
			Exclude:       []string{"node_modules", ".git", ".cache", "dist", "build", ".next"},
		},
	}
}

// Load returns the defaults, overlaid with fbdiag.toml when path names an
// existing file. A missing file is not an error; a malformed one is.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("config: parse %s: %w", path, err)
			}
		}
	}
	return cfg, nil
}

// InstallOverride returns the parsed install command override, or nil when
// none is configured.
func (c *Config) InstallOverride() ([]string, error) {
	return splitCommand(c.Commands.Install)
}

// BuildOverride returns the parsed build command override, or nil when none
// is configured.
func (c *Config) BuildOverride() ([]string, error) {
	return splitCommand(c.Commands.Build)
}

func splitCommand(s string) ([]string, error) {
	if s == "" {
		return nil, nil
	}
	argv, err := shellwords.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("config: parse command %q: %w", s, err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("config: command %q has no tokens", s)
	}
	return argv, nil
}
