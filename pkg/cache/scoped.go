package cache

// ScopedKeyer wraps a Keyer with a prefix so that several callers can share
// one backend without colliding, for example the CLI and the HTTP server
// pointing at the same Redis instance.
//
//	apiKeyer := NewScopedKeyer(NewDefaultKeyer(), "api:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ResultKey generates a prefixed result key.
func (k *ScopedKeyer) ResultKey(inputHash string, opts ResultKeyOpts) string {
	return k.prefix + k.inner.ResultKey(inputHash, opts)
}
