package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a logger at debug level. Failed decodes
// and encodes are logged as warnings.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks logging to l. A nil logger uses log.Default().
func NewLogHooks(l *log.Logger) *LogHooks {
	if l == nil {
		l = log.Default()
	}
	return &LogHooks{Logger: l}
}

func (h *LogHooks) OnDecodeStart(_ context.Context, source string) {
	h.Logger.Debug("decode", "source", source)
}

func (h *LogHooks) OnDecodeComplete(_ context.Context, source string, width, height int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Warn("decode failed", "source", source, "error", err)
		return
	}
	h.Logger.Debug("decoded", "source", source, "width", width, "height", height, "took", d)
}

func (h *LogHooks) OnTransform(_ context.Context, op string, width, height int, d time.Duration) {
	h.Logger.Debug("transform", "op", op, "width", width, "height", height, "took", d)
}

func (h *LogHooks) OnEncodeComplete(_ context.Context, dest string, size int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Warn("encode failed", "dest", dest, "error", err)
		return
	}
	h.Logger.Debug("encoded", "dest", dest, "bytes", size, "took", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.Logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.Logger.Info("response", "method", method, "path", path, "status", status, "took", d)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
