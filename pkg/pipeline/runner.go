package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bmpedit/pkg/bitmap"
	"github.com/matzehuels/bmpedit/pkg/bmp"
	"github.com/matzehuels/bmpedit/pkg/cache"
	"github.com/matzehuels/bmpedit/pkg/fileio"
	"github.com/matzehuels/bmpedit/pkg/observability"
)

const keyTypeResult = "result"

// DefaultMaxPixels bounds the size of any grid an op may produce: 1 GiB of
// packed pixels.
const DefaultMaxPixels = 1 << 28

// Runner executes edits with result caching.
//
// A Runner holds no per-run state, so the CLI and every HTTP request can
// share one.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL is how long results stay cached, default cache.TTLResult.
	TTL time.Duration

	// MaxPixels caps width*height of every intermediate and final grid,
	// default DefaultMaxPixels. Zero disables the cap.
	MaxPixels int64
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// selects the default keyer and a nil logger selects log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:     c,
		Keyer:     keyer,
		Logger:    logger,
		TTL:       cache.TTLResult,
		MaxPixels: DefaultMaxPixels,
	}
}

// Execute decodes the input, applies opts.Ops, encodes the result and
// writes it to opts.Output when set.
//
// The encoded result is cached under the input's content hash and the op
// chain. Cache errors are logged and never fail the run.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = r.Logger
	}

	res := &Result{}
	var g *bitmap.Grid
	decode := func(source string, buf []byte) error {
		res.InputHash = cache.Hash(buf)
		res.CacheInfo.Key = r.Keyer.ResultKey(res.InputHash, opts.ResultKeyOpts())
		if data, ok := r.lookup(ctx, res.CacheInfo.Key, opts); ok {
			res.Bytes = data
			res.CacheInfo.Hit = true
			return nil
		}
		start := time.Now()
		var err error
		g, err = r.decode(ctx, source, buf)
		res.Stats.DecodeTime = time.Since(start)
		return err
	}

	var err error
	if opts.InputData != nil {
		err = decode("request", opts.InputData)
	} else {
		err = fileio.WithReadable(opts.Input, func(buf []byte) error {
			return decode(opts.Input, buf)
		})
	}
	if err != nil {
		return nil, err
	}

	if res.CacheInfo.Hit {
		hdr, err := bmp.ReadHeader(res.Bytes)
		if err != nil {
			return nil, fmt.Errorf("cached result: %w", err)
		}
		res.Stats.OutWidth, res.Stats.OutHeight = int(hdr.Width), int(hdr.Height)
		logger.Info("using cached result", "ops", opts.Ops, "width", hdr.Width, "height", hdr.Height)
		if opts.Output != "" {
			if err := writeBytes(opts.Output, res.Bytes); err != nil {
				return nil, err
			}
		}
		return res, nil
	}

	res.Stats.InWidth, res.Stats.InHeight = g.Width, g.Height
	logger.Info("decoded bitmap", "width", g.Width, "height", g.Height, "duration", res.Stats.DecodeTime)

	start := time.Now()
	g, err = r.Apply(ctx, g, opts.Ops, opts.TransformOptions())
	if err != nil {
		return nil, err
	}
	res.Stats.TransformTime = time.Since(start)
	res.Grid = g
	res.Stats.OutWidth, res.Stats.OutHeight = g.Width, g.Height
	if len(opts.Ops) > 0 {
		logger.Info("applied transforms", "ops", opts.Ops, "width", g.Width, "height", g.Height,
			"duration", res.Stats.TransformTime)
	}

	start = time.Now()
	if opts.Output != "" {
		res.Bytes, err = r.save(ctx, opts.Output, g, true)
	} else {
		res.Bytes, err = r.encode(ctx, g)
	}
	if err != nil {
		return nil, err
	}
	res.Stats.EncodeTime = time.Since(start)

	r.store(ctx, res.CacheInfo.Key, res.Bytes, opts)
	return res, nil
}

func (r *Runner) lookup(ctx context.Context, key string, opts Options) ([]byte, bool) {
	if opts.NoCache || opts.Refresh {
		return nil, false
	}
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "error", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, keyTypeResult)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyTypeResult)
	return data, true
}

func (r *Runner) store(ctx context.Context, key string, data []byte, opts Options) {
	if opts.NoCache {
		return
	}
	if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		r.Logger.Warn("cache write failed", "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyTypeResult, len(data))
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
