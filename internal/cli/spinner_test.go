package cli

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"
)

// syncBuffer is a bytes.Buffer safe for the spinner goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Len()
}

func quietSpinner(ctx context.Context, msg string) (*Spinner, *syncBuffer) {
	s := newSpinnerWithContext(ctx, msg)
	out := &syncBuffer{}
	s.out = out
	s.animate = true
	return s, out
}

func TestSpinnerDraws(t *testing.T) {
	s, out := quietSpinner(context.Background(), "Computing layout...")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	if out.Len() == 0 {
		t.Error("spinner wrote nothing")
	}
	if s.Cancelled() {
		t.Error("Stop must not count as cancellation")
	}
}

func TestSpinnerCancelledByContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s, _ := quietSpinner(ctx, "Computing layout...")
	s.Start()
	cancel()
	s.Stop()

	if !s.Cancelled() {
		t.Error("spinner should report cancellation of its context")
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s, _ := quietSpinner(context.Background(), "x")
	s.Start()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopWithoutStart(t *testing.T) {
	s, _ := quietSpinner(context.Background(), "x")
	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop blocked on a spinner that never started")
	}
}

func TestSpinnerSilentWithoutTerminal(t *testing.T) {
	s, out := quietSpinner(context.Background(), "x")
	s.animate = false
	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.Stop()
	if out.Len() != 0 {
		t.Errorf("spinner drew %d bytes without a terminal", out.Len())
	}
}

func TestSpinnerStopWithMessages(t *testing.T) {
	var buf bytes.Buffer
	old := stdout
	stdout = &buf
	defer func() { stdout = old }()

	s, _ := quietSpinner(context.Background(), "x")
	s.Start()
	s.StopWithSuccess("Layout complete")
	s2, _ := quietSpinner(context.Background(), "y")
	s2.StopWithError("Layout failed")

	for _, want := range []string{"Layout complete", "Layout failed"} {
		if !bytes.Contains(buf.Bytes(), []byte(want)) {
			t.Errorf("output %q does not contain %q", buf.String(), want)
		}
	}
}
