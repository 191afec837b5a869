// Package pipeline runs bitmap edits end to end: load → transform chain →
// save, with result caching and observability hooks.
//
// The CLI and the HTTP server share this package so both apply the same
// validation, caching and logging.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	res, err := runner.Execute(ctx, pipeline.Options{
//	    Input:  "in.bmp",
//	    Output: "out.bmp",
//	    Ops:    []string{"mirror", "grayscale"},
//	})
//
// The interactive editor drives the stages one at a time instead:
//
//	g, err := runner.Load(ctx, "in.bmp")
//	g, err = runner.Apply(ctx, g, []string{"rotate"}, transform.Options{})
//	err = runner.Save(ctx, "out.bmp", g)
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bmpedit/pkg/bitmap"
	"github.com/matzehuels/bmpedit/pkg/bitmap/transform"
	"github.com/matzehuels/bmpedit/pkg/cache"
	"github.com/matzehuels/bmpedit/pkg/errors"
)

// Options configures one Execute run.
type Options struct {
	// Input is the BMP file to read. InputData takes precedence when set.
	Input     string `json:"input,omitempty"`
	InputData []byte `json:"-"`

	// Output is the file to write. Empty keeps the result in memory only.
	Output string `json:"output,omitempty"`

	// Ops are transform names or menu keys, applied in order. Validation
	// replaces them with canonical names.
	Ops []string `json:"ops"`

	Compat  bool `json:"compat,omitempty"`
	Refresh bool `json:"refresh,omitempty"` // recompute and overwrite the cached result
	NoCache bool `json:"no_cache,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a run.
type Result struct {
	// Grid is the transformed image. It is nil when Bytes came from the
	// cache.
	Grid *bitmap.Grid

	// Bytes is the encoded BMP.
	Bytes []byte

	// InputHash is the SHA-256 of the input file.
	InputHash string

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains run statistics.
type Stats struct {
	InWidth, InHeight   int
	OutWidth, OutHeight int

	DecodeTime    time.Duration
	TransformTime time.Duration
	EncodeTime    time.Duration
}

// CacheInfo reports how the cache was used.
type CacheInfo struct {
	Key string
	Hit bool
}

// ValidateAndSetDefaults checks required fields, resolves op names and sets
// a discarding logger. Calling it again is a no-op.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.InputData == nil && strings.TrimSpace(o.Input) == "" {
		return errors.New(errors.ErrCodeInvalidInput, "input is required")
	}
	if o.Output != "" {
		if err := errors.ValidateOutputPath(o.Output); err != nil {
			return err
		}
	}
	resolved, err := transform.Resolve(o.Ops)
	if err != nil {
		return err
	}
	names := make([]string, len(resolved))
	for i, op := range resolved {
		names[i] = op.Name
	}
	o.Ops = names

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// TransformOptions returns the options passed to each op.
func (o *Options) TransformOptions() transform.Options {
	return transform.Options{Compat: o.Compat}
}

// ResultKeyOpts returns the cache key options for this run.
func (o *Options) ResultKeyOpts() cache.ResultKeyOpts {
	return cache.ResultKeyOpts{Ops: o.Ops, Compat: o.Compat}
}
