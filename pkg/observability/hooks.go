// Package observability provides hooks for metrics, tracing and logging.
//
// Libraries emit events through the registered hooks; the defaults do
// nothing. Binaries register their own implementations once at startup:
//
//	observability.SetLayoutHooks(observability.NewLogHooks(logger))
//	observability.SetCacheHooks(observability.NewLogHooks(logger))
//
// and libraries call them around their work:
//
//	observability.Layout().OnLayoutStart(ctx, root, persons)
//	// ... compute ...
//	observability.Layout().OnLayoutComplete(ctx, root, time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// =============================================================================
// Hook Interfaces
// =============================================================================

// LayoutHooks receives events from the load, layout and render stages.
type LayoutHooks interface {
	OnLoadComplete(ctx context.Context, source string, persons int, duration time.Duration, err error)

	OnLayoutStart(ctx context.Context, root string, persons int)
	OnLayoutComplete(ctx context.Context, root string, duration time.Duration, err error)

	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives events from cache lookups. keyType is "layout" or
// "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// RequestHooks receives one event per served HTTP request.
type RequestHooks interface {
	OnRequest(ctx context.Context, method, route string, status int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopLayoutHooks ignores every event.
type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnLoadComplete(context.Context, string, int, time.Duration, error) {}
func (NoopLayoutHooks) OnLayoutStart(context.Context, string, int)                        {}
func (NoopLayoutHooks) OnLayoutComplete(context.Context, string, time.Duration, error)    {}
func (NoopLayoutHooks) OnRenderStart(context.Context, []string)                           {}
func (NoopLayoutHooks) OnRenderComplete(context.Context, []string, time.Duration, error)  {}

// NoopCacheHooks ignores every event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopRequestHooks ignores every event.
type NoopRequestHooks struct{}

func (NoopRequestHooks) OnRequest(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Logging Implementation
// =============================================================================

// LogHooks writes every event to a logger at debug level, failures at warn
// level. It implements all three hook interfaces.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger}
}

func (h *LogHooks) done(msg string, duration time.Duration, err error, kv ...any) {
	kv = append(kv, "duration", duration)
	if err != nil {
		h.logger.Warn(msg, append(kv, "err", err)...)
		return
	}
	h.logger.Debug(msg, kv...)
}

func (h *LogHooks) OnLoadComplete(_ context.Context, source string, persons int, d time.Duration, err error) {
	h.done("loaded people", d, err, "source", source, "persons", persons)
}

func (h *LogHooks) OnLayoutStart(_ context.Context, root string, persons int) {
	h.logger.Debug("layout started", "root", root, "persons", persons)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, root string, d time.Duration, err error) {
	h.done("layout finished", d, err, "root", root)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render started", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.done("render finished", d, err, "formats", formats)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, route string, status int, d time.Duration) {
	h.logger.Info("request", "method", method, "route", route, "status", status, "duration", d)
}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	hooksMu      sync.RWMutex
	layoutHooks  LayoutHooks  = NoopLayoutHooks{}
	cacheHooks   CacheHooks   = NoopCacheHooks{}
	requestHooks RequestHooks = NoopRequestHooks{}
)

// SetLayoutHooks registers h. A nil h is ignored.
func SetLayoutHooks(h LayoutHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		layoutHooks = h
	}
}

// SetCacheHooks registers h. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetRequestHooks registers h. A nil h is ignored.
func SetRequestHooks(h RequestHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		requestHooks = h
	}
}

// Layout returns the registered layout hooks.
func Layout() LayoutHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return layoutHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Request returns the registered request hooks.
func Request() RequestHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return requestHooks
}

// Reset restores the no-op defaults.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	layoutHooks = NoopLayoutHooks{}
	cacheHooks = NoopCacheHooks{}
	requestHooks = NoopRequestHooks{}
}
