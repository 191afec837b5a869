// Package cli implements the bmpedit command-line interface.
//
// # Commands
//
//   - edit: interactive menu editor for one bitmap
//   - apply: run a transform chain non-interactively
//   - info: print a bitmap's header
//   - serve: run the HTTP API
//   - cache: inspect and clear the result cache
//
// All commands accept --verbose (-v) and --config. The logger travels on the
// command context.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bmpedit/pkg/buildinfo"
	"github.com/matzehuels/bmpedit/pkg/cache"
	"github.com/matzehuels/bmpedit/pkg/config"
	"github.com/matzehuels/bmpedit/pkg/observability"
	"github.com/matzehuels/bmpedit/pkg/pipeline"
)

const appName = "bmpedit"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	configPath string
	verbose    bool
}

// New creates a CLI logging to w at level, with the default configuration
// until a command loads the real one.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// SetVerbose forces debug logging regardless of the configured level.
func (c *CLI) SetVerbose(v bool) {
	c.verbose = v
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "bmpedit edits 24-bit BMP images",
		Long:         `bmpedit decodes uncompressed 24-bit BMP files, applies pixel transforms such as grayscale, mirror and rotate, and writes the result back as BMP.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/bmpedit/config.toml)")

	root.AddCommand(c.editCommand())
	root.AddCommand(c.applyCommand())
	root.AddCommand(c.infoCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the configuration, settles the log level and puts the logger
// on the command context.
func (c *CLI) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg

	level := LogDebug
	if !c.verbose {
		level = parseLevel(cfg.Log.Level)
	}
	c.SetLogLevel(level)
	if level == LogDebug {
		hooks := observability.NewLogHooks(c.Logger)
		observability.SetPipelineHooks(hooks)
		observability.SetCacheHooks(hooks)
		observability.SetHTTPHooks(hooks)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, c.Logger))
	return nil
}

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool, keyer cache.Keyer) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	r := pipeline.NewRunner(store, keyer, c.Logger)
	r.TTL = c.Config.Cache.TTL.Duration
	r.MaxPixels = c.Config.Transform.MaxPixels
	return r, nil
}

// newCache opens the configured backend. A file cache that cannot be
// created degrades to no caching.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch c.Config.Cache.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     c.Config.Cache.RedisAddr,
			Password: c.Config.Cache.RedisPassword,
			DB:       c.Config.Cache.RedisDB,
		})
		if err != nil {
			return nil, err
		}
		return rc, nil
	}
	dir, err := c.Config.CacheDir()
	if err != nil {
		c.Logger.Warn("cache disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("cache disabled", "dir", dir, "error", err)
		return cache.NewNullCache(), nil
	}
	return fc, nil
}
