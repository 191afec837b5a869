// Package config loads bmpedit's TOML configuration file.
//
// The file lives at $XDG_CONFIG_HOME/bmpedit/config.toml, falling back to
// ~/.config/bmpedit/config.toml. A missing file yields [Default]:
//
//	[log]
//	level = "info"
//
//	[cache]
//	backend = "file"      # file, redis or none
//	dir = ""              # defaults to ~/.cache/bmpedit
//	ttl = "168h"
//	redis_addr = "localhost:6379"
//
//	[transform]
//	compat = false
//	max_pixels = 268435456
//
//	[server]
//	addr = ":8080"
//	max_body_bytes = 67108864
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/bmpedit/pkg/cache"
	"github.com/matzehuels/bmpedit/pkg/errors"
	"github.com/matzehuels/bmpedit/pkg/pipeline"
)

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the parsed configuration file.
type Config struct {
	Log       Log       `toml:"log"`
	Cache     Cache     `toml:"cache"`
	Transform Transform `toml:"transform"`
	Server    Server    `toml:"server"`
}

type Log struct {
	Level string `toml:"level"`
}

type Cache struct {
	Backend       string   `toml:"backend"`
	Dir           string   `toml:"dir"`
	TTL           Duration `toml:"ttl"`
	RedisAddr     string   `toml:"redis_addr"`
	RedisPassword string   `toml:"redis_password"`
	RedisDB       int      `toml:"redis_db"`
}

type Transform struct {
	// Compat selects the legacy reflect and posterize variants by default.
	Compat bool `toml:"compat"`

	// MaxPixels caps the size of any bitmap a transform produces; 0 lifts
	// the cap.
	MaxPixels int64 `toml:"max_pixels"`
}

type Server struct {
	Addr         string `toml:"addr"`
	MaxBodyBytes int64  `toml:"max_body_bytes"`
}

// Duration is a time.Duration written as a string ("36h", "90m").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler for the TOML decoder.
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
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Log: Log{Level: "info"},
		Cache: Cache{
			Backend:   BackendFile,
			TTL:       Duration{cache.TTLResult},
			RedisAddr: "localhost:6379",
		},
		Transform: Transform{MaxPixels: pipeline.DefaultMaxPixels},
		Server: Server{
			Addr:         ":8080",
			MaxBodyBytes: 64 << 20,
		},
	}
}

// DefaultPath returns the config file location.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "bmpedit", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeIO, err, "locate home directory")
	}
	return filepath.Join(home, ".config", "bmpedit", "config.toml"), nil
}

// DefaultCacheDir returns $XDG_CACHE_HOME/bmpedit, or ~/.cache/bmpedit.
func DefaultCacheDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, "bmpedit"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeIO, err, "locate home directory")
	}
	return filepath.Join(home, ".cache", "bmpedit"), nil
}

// Load reads path over the defaults. An empty path selects DefaultPath; a
// missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeIO, err, "read config %s", path)
	}
	return Parse(data)
}

// Parse decodes TOML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidInput, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks field values.
func (c Config) Validate() error {
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return errors.New(errors.ErrCodeInvalidInput, "log.level %q: want debug, info, warn or error", c.Log.Level)
	}
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "cache.backend %q: want file, redis or none", c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cache.ttl must not be negative")
	}
	if c.Cache.Backend == BackendRedis && c.Cache.RedisAddr == "" {
		return errors.New(errors.ErrCodeInvalidInput, "cache.redis_addr is required for the redis backend")
	}
	if c.Transform.MaxPixels < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "transform.max_pixels must not be negative")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "server.max_body_bytes must be positive")
	}
	return nil
}

// CacheDir returns the configured cache directory or the default one.
func (c Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	return DefaultCacheDir()
}
