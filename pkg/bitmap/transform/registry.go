package transform

import (
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/bmpedit/pkg/bitmap"
	"github.com/matzehuels/bmpedit/pkg/errors"
)

// Options tunes how registry ops run.
type Options struct {
	// Compat selects the legacy variants of Reflect and Posterize.
	Compat bool
}

// Op is a named transform as offered by the editor menu.
type Op struct {
	Name        string
	Key         rune // menu key, lower case
	Description string
	Label       string // status word shown once the op is picked

	// NeedsEvenWidth and NeedsEvenHeight flag ops whose result drops data
	// when the dimension is odd.
	NeedsEvenWidth  bool
	NeedsEvenHeight bool

	apply func(*bitmap.Grid, Options) *bitmap.Grid
	size  func(w, h int) (int, int) // nil keeps the dimensions
}

// Apply runs the op on g with opts.
func (o Op) Apply(g *bitmap.Grid, opts Options) *bitmap.Grid {
	return o.apply(g, opts)
}

// OutputSize returns the dimensions the op produces from a w by h grid,
// without running it.
func (o Op) OutputSize(w, h int) (int, int) {
	if o.size == nil {
		return w, h
	}
	return o.size(w, h)
}

// Fits reports whether g satisfies the op's parity requirements.
func (o Op) Fits(g *bitmap.Grid) bool {
	if o.NeedsEvenWidth && g.Width%2 != 0 {
		return false
	}
	if o.NeedsEvenHeight && g.Height%2 != 0 {
		return false
	}
	return true
}

func halfWidth(w, h int) (int, int)   { return w / 2, h }
func doubleWidth(w, h int) (int, int) { return 2 * w, h }
func transpose(w, h int) (int, int)   { return h, w }
func halve(w, h int) (int, int)       { return w / 2, h / 2 }

func plain(f func(*bitmap.Grid) *bitmap.Grid) func(*bitmap.Grid, Options) *bitmap.Grid {
	return func(g *bitmap.Grid, _ Options) *bitmap.Grid { return f(g) }
}

func withCompat(f, compat func(*bitmap.Grid) *bitmap.Grid) func(*bitmap.Grid, Options) *bitmap.Grid {
	return func(g *bitmap.Grid, opts Options) *bitmap.Grid {
		if opts.Compat {
			return compat(g)
		}
		return f(g)
	}
}

// ops is kept in menu order.
var ops = []Op{
	{Name: "grayscale", Key: 'g', Description: "Make grayscale", Label: "Grayscale", apply: plain(Grayscale)},
	{Name: "posterize", Key: 'p', Description: "Posterize", Label: "Posterized", apply: withCompat(Posterize, PosterizeCompat)},
	{Name: "squash", Key: 'u', Description: "Squash", Label: "Squash", NeedsEvenWidth: true, apply: plain(Squash), size: halfWidth},
	{Name: "mirror", Key: 'm', Description: "Mirror", Label: "Mirror", apply: plain(Mirror), size: doubleWidth},
	{Name: "reflect", Key: 'r', Description: "Reflect", Label: "Reflect", apply: withCompat(Reflect, ReflectCompat)},
	{Name: "rotate", Key: 'o', Description: "Rotate", Label: "Rotate", apply: plain(Rotate), size: transpose},
	{Name: "skew", Key: 'k', Description: "Skew", Label: "Skew", apply: plain(Skew)},
	{Name: "shrink", Key: 'h', Description: "Shrink", Label: "Shrink", NeedsEvenWidth: true, NeedsEvenHeight: true, apply: plain(Shrink), size: halve},
}

// All returns every op in menu order.
func All() []Op {
	out := make([]Op, len(ops))
	copy(out, ops)
	return out
}

// Names returns the op names in menu order.
func Names() []string {
	names := make([]string, len(ops))
	for i, o := range ops {
		names[i] = o.Name
	}
	return names
}

// Lookup finds an op by name or by its one-letter menu key. Matching is case
// insensitive. Unknown names fail with UNKNOWN_TRANSFORM.
func Lookup(name string) (Op, error) {
	s := strings.ToLower(strings.TrimSpace(name))
	if err := errors.ValidateOpName(s); err != nil {
		return Op{}, err
	}
	single := utf8.RuneCountInString(s) == 1
	for _, o := range ops {
		if o.Name == s {
			return o, nil
		}
		if single {
			if r, _ := utf8.DecodeRuneInString(s); r == o.Key {
				return o, nil
			}
		}
	}
	return Op{}, errors.New(errors.ErrCodeUnknownTransform, "unknown transform %q (valid: %s)", name, strings.Join(Names(), ", "))
}

// LookupKey finds an op by menu key.
func LookupKey(key rune) (Op, bool) {
	for _, o := range ops {
		if o.Key == key {
			return o, true
		}
	}
	return Op{}, false
}

// Resolve looks up every name, failing on the first unknown one.
func Resolve(names []string) ([]Op, error) {
	resolved := make([]Op, 0, len(names))
	for _, n := range names {
		o, err := Lookup(n)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, o)
	}
	return resolved, nil
}

// Chain applies the named ops to g in order. All names are resolved before
// any op runs, so an unknown name leaves nothing half applied.
func Chain(g *bitmap.Grid, names []string, opts Options) (*bitmap.Grid, error) {
	resolved, err := Resolve(names)
	if err != nil {
		return nil, err
	}
	for _, o := range resolved {
		g = o.Apply(g, opts)
	}
	return g, nil
}
