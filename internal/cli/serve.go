package cli

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/kinship/pkg/api"
	"github.com/matzehuels/kinship/pkg/httputil"
	"github.com/matzehuels/kinship/pkg/observability"
	"github.com/matzehuels/kinship/pkg/store"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the layout HTTP API",
		Long: `Run the layout HTTP API.

Layouts posted to /v1/layouts are stored in MongoDB when --mongo (or
server.mongo.uri) is set, and in memory otherwise. The layout cache is
shared with the CLI unless --no-cache is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), noCache)
		},
	}

	cmd.Flags().String("addr", "", "listen address (default 127.0.0.1:8080)")
	cmd.Flags().String("mongo", "", "MongoDB connection URI for stored layouts")
	cmd.Flags().String("log-file", "", "also write logs to this file, rotated by size")
	cmd.Flags().String("cache-dir", "", "layout cache directory")
	cmd.Flags().String("redis", "", "redis address for the layout cache (host:port)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, noCache bool) error {
	cfg := c.cfg().Server

	logger := c.Logger
	if cfg.LogFile != "" {
		w := newRotatingWriter(cfg.LogFile, cfg.LogRotation)
		defer w.Close()
		logger = newLogger(io.MultiWriter(os.Stderr, w), c.Logger.GetLevel())
	}

	hooks := observability.NewLogHooks(logger)
	observability.SetLayoutHooks(hooks)
	observability.SetCacheHooks(hooks)
	observability.SetRequestHooks(hooks)
	defer observability.Reset()

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	runner.Logger = logger

	st, backend, err := newStore(ctx, cfg.Mongo, logger)
	if err != nil {
		return err
	}
	defer st.Close(context.WithoutCancel(ctx))

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.Addr, err)
	}

	srv := &api.Server{Runner: runner, Store: st, Logger: logger}
	errLog := logger.StandardLog(log.StandardLogOptions{ForceLevel: log.ErrorLevel})

	printSuccess("Serving on http://%s", ln.Addr())
	printKeyValue("store", backend)
	if cfg.LogFile != "" {
		printKeyValue("log file", cfg.LogFile)
	}
	return httputil.Serve(ctx, cfg.ShutdownTimeout, httputil.NewServer(errLog, srv.Handler()), ln)
}

// newStore opens MongoDB when a URI is configured and falls back to memory
// otherwise. It also returns a short description of the backend.
func newStore(ctx context.Context, cfg store.MongoConfig, logger *log.Logger) (store.Store, string, error) {
	if cfg.URI == "" {
		logger.Warn("no MongoDB configured, layouts are kept in memory")
		return store.NewMemoryStore(), "memory", nil
	}
	st, err := store.NewMongoStore(ctx, cfg)
	if err != nil {
		return nil, "", fmt.Errorf("open layout store: %w", err)
	}
	return st, "mongodb " + cfg.Database + "." + cfg.Collection, nil
}
