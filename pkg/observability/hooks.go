// Package observability lets callers instrument bitmap editing without the
// core packages depending on a metrics or tracing backend.
//
// Hook interfaces cover three event groups: the edit pipeline (decode,
// transform, encode), result cache lookups, and inbound HTTP requests of
// the API server. Every group has a no-op default. The binary installs real
// implementations once at startup:
//
//	observability.SetPipelineHooks(observability.NewLogHooks(logger))
//
// and library code emits events through the registry:
//
//	observability.Pipeline().OnTransform(ctx, "mirror", g.Width, g.Height, elapsed)
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives events from the load, transform and save stages.
type PipelineHooks interface {
	OnDecodeStart(ctx context.Context, source string)
	OnDecodeComplete(ctx context.Context, source string, width, height int, duration time.Duration, err error)

	// OnTransform fires after each op with the dimensions it produced.
	OnTransform(ctx context.Context, op string, width, height int, duration time.Duration)

	OnEncodeComplete(ctx context.Context, dest string, size int, duration time.Duration, err error)
}

// CacheHooks receives events from result cache operations.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives events from the API server.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, path string)
	OnResponse(ctx context.Context, method, path string, status int, duration time.Duration)
}

// NoopPipelineHooks ignores all pipeline events.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnDecodeStart(context.Context, string)                                    {}
func (NoopPipelineHooks) OnDecodeComplete(context.Context, string, int, int, time.Duration, error) {}
func (NoopPipelineHooks) OnTransform(context.Context, string, int, int, time.Duration)             {}
func (NoopPipelineHooks) OnEncodeComplete(context.Context, string, int, time.Duration, error)      {}

// NoopCacheHooks ignores all cache events.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks ignores all HTTP events.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	httpHooks     HTTPHooks     = NoopHTTPHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers pipeline hooks. Nil is ignored.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetCacheHooks registers cache hooks. Nil is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers HTTP hooks. Nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores the no-op defaults. Used by tests.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
