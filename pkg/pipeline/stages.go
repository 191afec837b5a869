package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/bmpedit/pkg/bitmap"
	"github.com/matzehuels/bmpedit/pkg/bitmap/transform"
	"github.com/matzehuels/bmpedit/pkg/bmp"
	"github.com/matzehuels/bmpedit/pkg/errors"
	"github.com/matzehuels/bmpedit/pkg/fileio"
	"github.com/matzehuels/bmpedit/pkg/observability"
)

// Load maps path read-only and decodes it. The mapping is released before
// Load returns; the grid owns its pixels.
func (r *Runner) Load(ctx context.Context, path string) (*bitmap.Grid, error) {
	var g *bitmap.Grid
	err := fileio.WithReadable(path, func(buf []byte) error {
		var err error
		g, err = r.decode(ctx, path, buf)
		return err
	})
	return g, err
}

// Decode decodes an in-memory BMP, reporting it to the pipeline hooks.
func (r *Runner) Decode(ctx context.Context, source string, buf []byte) (*bitmap.Grid, error) {
	return r.decode(ctx, source, buf)
}

func (r *Runner) decode(ctx context.Context, source string, buf []byte) (*bitmap.Grid, error) {
	hooks := observability.Pipeline()
	hooks.OnDecodeStart(ctx, source)
	start := time.Now()
	g, err := bmp.Decode(buf)
	if err != nil {
		hooks.OnDecodeComplete(ctx, source, 0, 0, time.Since(start), err)
		return nil, err
	}
	hooks.OnDecodeComplete(ctx, source, g.Width, g.Height, time.Since(start), nil)
	return g, nil
}

// Apply runs the named ops on g in order and returns the final grid.
// Ops whose parity requirement g does not meet still run; they drop the
// trailing column or row and a warning is logged.
//
// An op that would produce more than r.MaxPixels pixels fails with
// INVALID_INPUT before it allocates anything.
func (r *Runner) Apply(ctx context.Context, g *bitmap.Grid, names []string, opts transform.Options) (*bitmap.Grid, error) {
	ops, err := transform.Resolve(names)
	if err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	for _, op := range ops {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if w, h := op.OutputSize(g.Width, g.Height); r.MaxPixels > 0 && int64(w)*int64(h) > r.MaxPixels {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"%s would produce a %dx%d bitmap, more than the %d pixel limit", op.Name, w, h, r.MaxPixels)
		}
		if !op.Fits(g) {
			r.Logger.Warn("odd dimensions, trailing pixels dropped",
				"op", op.Name, "width", g.Width, "height", g.Height)
		}
		start := time.Now()
		g = op.Apply(g, opts)
		hooks.OnTransform(ctx, op.Name, g.Width, g.Height, time.Since(start))
	}
	return g, nil
}

// Save encodes g straight into a writable mapping of path, sized to the
// exact file length.
func (r *Runner) Save(ctx context.Context, path string, g *bitmap.Grid) error {
	_, err := r.save(ctx, path, g, false)
	return err
}

// save writes g to path. With keep set it also returns a copy of the
// encoded bytes.
func (r *Runner) save(ctx context.Context, path string, g *bitmap.Grid, keep bool) ([]byte, error) {
	if err := errors.ValidateOutputPath(path); err != nil {
		return nil, err
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	size := bmp.FileSize(g)
	start := time.Now()
	var kept []byte
	err := fileio.WithWritable(path, size, func(buf []byte) error {
		if err := bmp.EncodeTo(buf, g); err != nil {
			return err
		}
		if keep {
			kept = append([]byte(nil), buf...)
		}
		return nil
	})
	observability.Pipeline().OnEncodeComplete(ctx, path, size, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return kept, nil
}

// encode encodes g in memory.
func (r *Runner) encode(ctx context.Context, g *bitmap.Grid) ([]byte, error) {
	start := time.Now()
	data, err := bmp.Encode(g)
	observability.Pipeline().OnEncodeComplete(ctx, "", len(data), time.Since(start), err)
	return data, err
}

// writeBytes stores already encoded bytes at path through a writable mapping.
func writeBytes(path string, data []byte) error {
	if err := errors.ValidateOutputPath(path); err != nil {
		return err
	}
	return fileio.WithWritable(path, len(data), func(buf []byte) error {
		copy(buf, data)
		return nil
	})
}
