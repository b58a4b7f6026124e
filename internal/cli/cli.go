package cli

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/matzehuels/kinship/internal/config"
	"github.com/matzehuels/kinship/pkg/buildinfo"
	"github.com/matzehuels/kinship/pkg/cache"
	"github.com/matzehuels/kinship/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "kinship"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	viper  *viper.Viper
	config *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		viper:  config.NewViper(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
// Configuration is loaded before any subcommand runs.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Kinship lays out family trees around a chosen person",
		Long: `Kinship computes deterministic family tree layouts. It reads a people file,
places every person relative to a root, labels each with their relationship
to the root and renders the result as SVG, DOT, JSON or text.`,
		Version:      buildinfo.Get().Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig(cmd)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().String("config", "", "config file (default: ~/.config/kinship/config.toml and ./.kinship.toml)")
	root.PersistentFlags().String("language", "", "language for relationship labels (BCP 47, e.g. en, de, fr)")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.replayCommand())
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig binds the flags that were set on cmd and loads the layered
// configuration. Flags are bound under their config key, with dashes
// replaced by dots for nested sections (--cache-dir sets cache.dir).
func (c *CLI) loadConfig(cmd *cobra.Command) error {
	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		key, ok := configKeys[f.Name]
		if !ok {
			return
		}
		if err := c.viper.BindPFlag(key, f); err != nil {
			bindErr = errors.Join(bindErr, err)
		}
	})
	if bindErr != nil {
		return bindErr
	}
	cfg, err := config.Load(c.viper)
	if err != nil {
		return err
	}
	c.config = cfg
	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// configKeys maps flag names to configuration keys.
var configKeys = map[string]string{
	"config":           "config",
	"language":         "language",
	"base-spacing":     "layout.base_spacing",
	"spouse-spacing":   "layout.spouse_spacing",
	"vertical-spacing": "layout.vertical_spacing",
	"min-spacing":      "layout.min_spacing",
	"cache-dir":        "cache.dir",
	"redis":            "cache.redis.addr",
	"addr":             "server.addr",
	"mongo":            "server.mongo.uri",
	"log-file":         "server.log_file",
}

// cfg returns the loaded configuration, or the defaults when a command runs
// without the root's pre-run (as in tests).
func (c *CLI) cfg() *config.Config {
	if c.config == nil {
		c.config = config.Default()
	}
	return c.config
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if prefix := c.cfg().Cache.Prefix; prefix != "" {
		keyer = cache.NewScopedKeyer(nil, prefix)
	}
	r := pipeline.NewRunner(ch, keyer, c.Logger)
	r.LayoutTTL = c.cfg().Cache.TTL
	return r, nil
}

// newCache selects the cache backend: Redis when an address is configured,
// otherwise the file cache. An unreachable Redis falls back to the file
// cache with a warning.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	cfg := c.cfg().Cache
	if noCache || cfg.Disabled {
		return cache.NewNullCache(), nil
	}
	if cfg.Redis.Addr != "" {
		rc, err := cache.NewRedisCache(ctx, cfg.Redis)
		if err == nil {
			c.Logger.Debug("using redis cache", "addr", cfg.Redis.Addr)
			return rc, nil
		}
		if !errors.Is(err, cache.ErrUnavailable) {
			return nil, err
		}
		c.Logger.Warn("redis cache unavailable, using file cache", "addr", cfg.Redis.Addr, "err", err)
	}
	if cfg.Dir == "" {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(cfg.Dir)
}

// =============================================================================
// Options Helpers
// =============================================================================

// pipelineOptions builds layout options from the loaded configuration.
func (c *CLI) pipelineOptions() pipeline.Options {
	cfg := c.cfg()
	return pipeline.Options{
		Language:  cfg.Language,
		Config:    cfg.Layout,
		Relations: cfg.Relations.PipelineRelations(),
		Logger:    c.Logger,
	}
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(strings.ToLower(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}
