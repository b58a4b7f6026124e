package httputil

import (
	"context"
	"errors"
	stdlog "log"
	"net"
	"net/http"
	"time"
)

// MaxBodyBytes limits request bodies.
const MaxBodyBytes = 4 << 20

// NewServer wraps h with a body limit and conservative timeouts. errLog
// receives the server's internal errors and may be nil.
func NewServer(errLog *stdlog.Logger, h http.Handler) *http.Server {
	return &http.Server{
		MaxHeaderBytes:    1 << 18,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       time.Minute,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       5 * time.Minute,
		ErrorLog:          errLog,
		Handler:           http.MaxBytesHandler(h, MaxBodyBytes),
	}
}

// Serve runs s on l until ctx is done, then shuts it down, waiting at most
// shutdownTimeout for open requests.
func Serve(ctx context.Context, shutdownTimeout time.Duration, s *http.Server, l net.Listener) error {
	s.BaseContext = func(net.Listener) context.Context { return ctx }

	done := make(chan error, 1)
	go func() { done <- s.Serve(l) }()

	select {
	case err := <-done:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		return s.Shutdown(sctx)
	}
}
