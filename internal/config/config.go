// Package config loads lintfix.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"lintfix/internal/lintlog"
	"lintfix/internal/strategy"
)

// FileName is the configuration file looked up from the working directory upwards.
const FileName = "lintfix.toml"

// Config is the decoded lintfix.toml.
type Config struct {
	// Path is where the config was read from; empty for defaults.
	Path string `toml:"-"`

	Log     LogConfig         `toml:"log"`
	Fix     FixConfig         `toml:"fix"`
	Aliases map[string]string `toml:"aliases"`
}

// LogConfig describes the lint log.
type LogConfig struct {
	// Suffix marks block terminator lines.
	Suffix string `toml:"suffix"`
}

// FixConfig tunes the strategies.
type FixConfig struct {
	SuppressComment string   `toml:"suppress_comment"`
	Disabled        []string `toml:"disabled"`
	// Backup is the default journal path for `lintfix fix`.
	Backup string `toml:"backup"`
}

// Default returns the configuration used when no file is found.
func Default() Config {
	return Config{
		Log: LogConfig{Suffix: lintlog.DefaultSuffix},
		Fix: FixConfig{SuppressComment: strategy.DefaultSuppressComment},
	}
}

// Find walks from startDir up to the filesystem root looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover loads the nearest lintfix.toml above startDir, or Default when none exists.
func Discover(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, &lintlog.ConfigError{Path: startDir, Err: err}
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Load decodes and validates the file at path. Keys left out keep their
// default values. Errors are *lintlog.ConfigError.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, &lintlog.ConfigError{Path: path, Err: fmt.Errorf("failed to parse TOML: %w", err)}
	}
	cfg.Path = path

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, &lintlog.ConfigError{Path: path, Err: fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))}
	}
	if meta.IsDefined("log", "suffix") && strings.TrimSpace(cfg.Log.Suffix) == "" {
		return Config{}, &lintlog.ConfigError{Path: path, Err: errors.New("[log].suffix must not be empty")}
	}
	if meta.IsDefined("fix", "suppress_comment") && strings.TrimSpace(cfg.Fix.SuppressComment) == "" {
		return Config{}, &lintlog.ConfigError{Path: path, Err: errors.New("[fix].suppress_comment must not be empty")}
	}
	if strings.ContainsAny(cfg.Fix.SuppressComment, "\r\n") {
		return Config{}, &lintlog.ConfigError{Path: path, Err: errors.New("[fix].suppress_comment must be a single line")}
	}
	return cfg, nil
}

// Registry builds the strategy registry described by the config: built-ins,
// then [aliases], then [fix].disabled.
func (c Config) Registry() (*strategy.Registry, error) {
	reg := strategy.NewDefault(strategy.Options{SuppressComment: c.Fix.SuppressComment})

	names := make([]string, 0, len(c.Aliases))
	for name := range c.Aliases {
		names = append(names, name)
	}
	slices.Sort(names)
	builtinAliases := reg.Aliases()
	for _, name := range names {
		target, err := c.aliasTarget(name, builtinAliases)
		if err != nil {
			return nil, c.wrap(err)
		}
		if err := reg.Alias(name, target); err != nil {
			return nil, c.wrap(err)
		}
	}
	for _, name := range c.Fix.Disabled {
		if err := reg.Disable(name); err != nil {
			return nil, c.wrap(err)
		}
	}
	return reg, nil
}

// aliasTarget follows [aliases] entries that point at other entries until it
// reaches a name outside the table, then maps built-in rule aliases to their category.
func (c Config) aliasTarget(name string, builtin map[string]string) (string, error) {
	seen := map[string]bool{name: true}
	target := c.Aliases[name]
	for {
		next, ok := c.Aliases[target]
		if !ok {
			break
		}
		if seen[target] {
			return "", fmt.Errorf("alias %q is part of a cycle", name)
		}
		seen[target] = true
		target = next
	}
	if canonical, ok := builtin[target]; ok {
		target = canonical
	}
	return target, nil
}

func (c Config) wrap(err error) error {
	path := c.Path
	if path == "" {
		path = FileName
	}
	return &lintlog.ConfigError{Path: path, Err: err}
}
