package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/kinship/pkg/graph"
	"github.com/matzehuels/kinship/pkg/pipeline"
)

const layoutSuffix = ".layout.json"

// layoutFlags are shared by every command that computes a layout.
type layoutFlags struct {
	root      string
	noCache   bool
	refresh   bool
	snapshots bool
}

// addLayoutFlags registers the layout flags on cmd. The spacing flags are
// bound to the [layout] config section when set.
func addLayoutFlags(cmd *cobra.Command, f *layoutFlags) {
	cmd.Flags().StringVarP(&f.root, "root", "r", "", "root person id (default: root named in the file)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompute even if a cached layout exists")
	cmd.Flags().Float64("base-spacing", 0, "distance between sibling units")
	cmd.Flags().Float64("spouse-spacing", 0, "distance between spouses")
	cmd.Flags().Float64("vertical-spacing", 0, "distance between generations")
	cmd.Flags().Float64("min-spacing", 0, "minimum distance between two persons of a generation")
	cmd.Flags().String("cache-dir", "", "layout cache directory")
	cmd.Flags().String("redis", "", "redis address for the layout cache (host:port)")
}

// options combines the configuration with the command's flags.
func (c *CLI) options(f layoutFlags) pipeline.Options {
	opts := c.pipelineOptions()
	opts.Root = f.root
	opts.Refresh = f.refresh
	opts.Snapshots = f.snapshots
	return opts
}

// layoutCommand creates the layout command.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags  layoutFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "layout [people-file]",
		Short: "Compute a family tree layout",
		Long: `Compute a family tree layout from a people file (.toml, .yaml or .json).

The result is written as <input>.layout.json and can be rendered later with
'kinship render' or replayed with 'kinship replay'. Layouts are cached, so
repeated runs on an unchanged file are instant.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], output, flags)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&flags.snapshots, "snapshots", false, "keep the step-by-step growth sequence")
	addLayoutFlags(cmd, &flags)

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, input, output string, flags layoutFlags) error {
	logger := loggerFromContext(ctx)
	opts := c.options(flags)
	if err := opts.ValidateForLayout(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(logger)
	in, err := runner.Load(ctx, input, opts)
	if err != nil {
		return fmt.Errorf("load %s: %w", input, err)
	}
	prog.done(fmt.Sprintf("Loaded %d persons", len(in.People)))

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()
	l, hit, err := runner.LayoutWithCacheInfo(ctx, in, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()
	if ctx.Err() != nil {
		return ctx.Err()
	}

	path := output
	if path == "" {
		path = trimPeopleExt(input) + layoutSuffix
	}
	if err := graph.WriteLayoutFile(l, path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	printSuccess("Layout complete around %s", l.Root)
	printFile(path)
	printStats(len(l.Nodes), in.VirtualCount(), len(l.Generations()), hit)
	printNewline()
	printNextStep("Render", appName+" render "+path)
	return nil
}

// trimPeopleExt strips the extension of a people or layout file.
func trimPeopleExt(path string) string {
	if strings.HasSuffix(path, layoutSuffix) {
		return strings.TrimSuffix(path, layoutSuffix)
	}
	return strings.TrimSuffix(path, filepath.Ext(path))
}

// isLayoutFile reports whether path holds a computed layout rather than
// people.
func isLayoutFile(path string) bool {
	return strings.HasSuffix(path, layoutSuffix)
}
