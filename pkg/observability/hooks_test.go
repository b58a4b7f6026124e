package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	l := NoopLayoutHooks{}
	l.OnLoadComplete(ctx, "family.toml", 12, time.Second, nil)
	l.OnLayoutStart(ctx, "anna", 12)
	l.OnLayoutComplete(ctx, "anna", time.Second, nil)
	l.OnRenderStart(ctx, []string{"svg"})
	l.OnRenderComplete(ctx, []string{"svg"}, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "layout")
	c.OnCacheMiss(ctx, "layout")
	c.OnCacheSet(ctx, "artifact", 1024)

	NoopRequestHooks{}.OnRequest(ctx, "GET", "/healthz", 200, time.Millisecond)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	defer Reset()

	if _, ok := Layout().(NoopLayoutHooks); !ok {
		t.Error("Layout() should default to NoopLayoutHooks")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should default to NoopCacheHooks")
	}
	if _, ok := Request().(NoopRequestHooks); !ok {
		t.Error("Request() should default to NoopRequestHooks")
	}

	h := NewLogHooks(log.New(&bytes.Buffer{}))
	SetLayoutHooks(h)
	SetCacheHooks(h)
	SetRequestHooks(h)
	if Layout() != LayoutHooks(h) || Cache() != CacheHooks(h) || Request() != RequestHooks(h) {
		t.Error("custom hooks not registered")
	}

	Reset()
	if _, ok := Layout().(NoopLayoutHooks); !ok {
		t.Error("Reset() should restore NoopLayoutHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &countingCache{}
	SetCacheHooks(custom)
	SetCacheHooks(nil)
	if Cache() != CacheHooks(custom) {
		t.Error("SetCacheHooks(nil) should be ignored")
	}
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	h := NewLogHooks(logger)
	ctx := context.Background()

	h.OnLayoutComplete(ctx, "anna", time.Millisecond, nil)
	h.OnLayoutComplete(ctx, "karl", time.Millisecond, errors.New("root not found"))
	h.OnCacheSet(ctx, "layout", 512)

	out := buf.String()
	for _, want := range []string{"layout finished", "root=anna", "WARN", "root not found", "bytes=512"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

type countingCache struct {
	NoopCacheHooks
	hits int
}

func (c *countingCache) OnCacheHit(context.Context, string) { c.hits++ }
