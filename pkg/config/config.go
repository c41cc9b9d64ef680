// Package config loads the wfgraph configuration file.
//
// The file is TOML and every key is optional:
//
//	[log]
//	level = "info"
//
//	[cache]
//	backend = "file"        # file | redis | none
//	dir = ""                # file backend, empty for the user cache dir
//	redis_addr = "localhost:6379"
//	ttl = "24h"
//
//	[keyboard]
//	platform = "auto"       # auto | mac | windows | linux
//
// A missing file is not an error and yields [Default]. Layout parameters
// are fixed constants of the layout package and cannot be configured.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/wfgraph/pkg/cache"
	"github.com/matzehuels/wfgraph/pkg/errors"
	"github.com/matzehuels/wfgraph/pkg/keyboard"
)

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// FileName is the name of the configuration file inside [DefaultDir].
const FileName = "config.toml"

// Config is the parsed configuration file.
type Config struct {
	Log      Log      `toml:"log"`
	Cache    Cache    `toml:"cache"`
	Keyboard Keyboard `toml:"keyboard"`
}

// Log configures the CLI logger.
type Log struct {
	Level string `toml:"level"`
}

// Cache configures where pipeline results are cached.
type Cache struct {
	Backend   string   `toml:"backend"`
	Dir       string   `toml:"dir"`
	RedisAddr string   `toml:"redis_addr"`
	TTL       Duration `toml:"ttl"`

	// Scope prefixes every cache key so projects sharing one cache keep
	// their entries apart.
	Scope string `toml:"scope"`
}

// Keyboard selects the keyboard family used to display shortcuts.
type Keyboard struct {
	Platform string `toml:"platform"`
}

// Duration is a time.Duration written as a Go duration string ("24h").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Log: Log{Level: "info"},
		Cache: Cache{
			Backend:   BackendFile,
			RedisAddr: "localhost:6379",
			TTL:       Duration{cache.DefaultTTL},
		},
		Keyboard: Keyboard{Platform: "auto"},
	}
}

// DefaultDir returns the configuration directory, honouring
// XDG_CONFIG_HOME.
func DefaultDir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "wfgraph"), nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "wfgraph"), nil
}

// DefaultPath returns the path of the default configuration file.
func DefaultPath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// Load reads the configuration at path on top of [Default]. An empty path
// means [DefaultPath]. Unknown keys are rejected so typos do not pass
// silently.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerated values.
func (c Config) Validate() error {
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return errors.New(errors.ErrCodeInvalidConfig, "log.level: %v", err)
	}
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "cache.backend: unknown backend %q (want file, redis or none)", c.Cache.Backend)
	}
	if c.Cache.Backend == BackendRedis && c.Cache.RedisAddr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_addr is required for the redis backend")
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl cannot be negative")
	}
	if _, err := keyboard.ParseOS(c.Keyboard.Platform); err != nil {
		return errors.New(errors.ErrCodeInvalidConfig, "keyboard.platform: %v", err)
	}
	return nil
}

// LogLevel returns the configured log level.
func (c Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// KeyboardConfig builds the keyboard configuration. "auto" uses the
// operating system the binary runs on.
func (c Config) KeyboardConfig() keyboard.Config {
	platform, err := keyboard.ParseOS(c.Keyboard.Platform)
	if err != nil || platform == keyboard.OSUnknown {
		return keyboard.ForGOOS(runtime.GOOS)
	}
	return keyboard.ForOS(platform)
}

// plainConfig has Config's fields but not its String method.
type plainConfig Config

// String renders the configuration as TOML.
func (c Config) String() string {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(c); err != nil {
		return fmt.Sprintf("%+v", plainConfig(c))
	}
	return b.String()
}
