package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/kinship/pkg/graph"
	"github.com/matzehuels/kinship/pkg/pipeline"
)

// renderFlags holds the render command's own flags.
type renderFlags struct {
	layoutFlags
	output  string
	formats string
	labels  bool
	frame   int
	watch   bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render [people-file | layout.json]",
		Short: "Render a family tree as SVG, DOT, JSON or text",
		Long: `Render a family tree. The input is either a people file, which is laid out
first, or a layout written by 'kinship layout' (*.layout.json).

With --frame N the N-th step of the growth sequence is drawn instead of the
final tree. With --watch the input is rendered again every time it is saved,
until interrupted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "output format(s): svg (default), dot, json, txt (comma-separated)")
	cmd.Flags().BoolVar(&flags.labels, "labels", false, "show relationship labels under names")
	cmd.Flags().IntVar(&flags.frame, "frame", 0, "draw growth step N (1-based) instead of the final tree")
	cmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "render again whenever the input changes")
	addLayoutFlags(cmd, &flags.layoutFlags)

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, flags renderFlags) error {
	flags.snapshots = flags.frame > 0
	opts := c.options(flags.layoutFlags)
	opts.Formats = parseFormats(flags.formats)
	opts.Labels = flags.labels
	opts.Frame = flags.frame
	if err := opts.ValidateForRender(); err != nil {
		return err
	}

	if !isLayoutFile(input) {
		if err := opts.ValidateForLayout(); err != nil {
			return err
		}
	}

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	if !flags.watch {
		return c.renderOnce(ctx, runner, input, flags, opts)
	}

	w, err := newFileWatcher(input, loggerFromContext(ctx))
	if err != nil {
		return err
	}
	if err := c.renderOnce(ctx, runner, input, flags, opts); err != nil {
		printError("%v", err)
	}
	printInfo("Watching %s for changes (Ctrl+C to stop)", input)
	return w.Run(ctx, watchDebounce, func() {
		printNewline()
		if err := c.renderOnce(ctx, runner, input, flags, opts); err != nil {
			printError("%v", err)
		}
	})
}

// renderOnce renders input and writes one file per format.
func (c *CLI) renderOnce(ctx context.Context, runner *pipeline.Runner, input string, flags renderFlags, opts pipeline.Options) error {
	var artifacts map[string][]byte
	if isLayoutFile(input) {
		l, err := graph.ReadLayoutFile(input)
		if err != nil {
			return fmt.Errorf("load %s: %w", input, err)
		}
		if artifacts, err = runner.Render(ctx, l, opts); err != nil {
			return fmt.Errorf("render: %w", err)
		}
		printSuccess("Rendered layout around %s", l.Root)
	} else {
		spinner := newSpinnerWithContext(ctx, "Laying out and rendering...")
		spinner.Start()
		res, err := runner.Execute(ctx, input, opts)
		if err != nil {
			spinner.StopWithError("Render failed")
			return err
		}
		spinner.Stop()
		artifacts = res.Artifacts
		printSuccess("Rendered %s", input)
		printStats(res.Stats.Persons, res.Stats.Virtual, res.Stats.Generations, res.CacheInfo.LayoutHit)
	}

	paths := outputPaths(input, flags.output, opts.Formats)
	for _, f := range opts.Formats {
		if err := os.WriteFile(paths[f], artifacts[f], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", paths[f], err)
		}
		printFile(paths[f])
	}
	return nil
}

// outputPaths maps each format to its output file. A single format with an
// explicit output uses it verbatim; otherwise files are named
// <base>.<format> (<base>.layout.json for JSON), where base is the output
// without a known format extension, or the input without its extension.
func outputPaths(input, output string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}

	base := trimPeopleExt(input)
	if output != "" {
		base = output
		if ext := strings.TrimPrefix(filepath.Ext(output), "."); slices.Contains(pipeline.ValidFormats, ext) {
			base = strings.TrimSuffix(output, "."+ext)
		}
	}
	for _, f := range formats {
		if f == pipeline.FormatJSON {
			paths[f] = base + layoutSuffix
		} else {
			paths[f] = base + "." + f
		}
	}
	return paths
}
