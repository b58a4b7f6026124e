package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	kerrors "github.com/matzehuels/kinship/pkg/errors"
	"github.com/matzehuels/kinship/pkg/graph"
	"github.com/matzehuels/kinship/pkg/render"
)

const defaultReplayInterval = 600 * time.Millisecond

// replayCommand creates the replay command.
func (c *CLI) replayCommand() *cobra.Command {
	var (
		flags    layoutFlags
		interval time.Duration
		autoplay bool
	)

	cmd := &cobra.Command{
		Use:   "replay [people-file | layout.json]",
		Short: "Step through the growth of a layout in the terminal",
		Long: `Show how a layout grows around its root, one person at a time.

Keys: ←/→ step, space play/pause, g/G first/last, q quit.

When stdout or stdin is not a terminal the steps are printed one per line,
followed by the final layout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.snapshots = true
			l, err := c.loadForReplay(cmd.Context(), args[0], flags)
			if err != nil {
				return err
			}
			m, err := newReplayModel(l, interval, autoplay)
			if err != nil {
				return err
			}
			if !isTerminal(os.Stdout) || !isTerminal(os.Stdin) {
				m.print(stdout)
				return nil
			}
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", defaultReplayInterval, "delay between steps while playing")
	cmd.Flags().BoolVar(&autoplay, "play", false, "start playing immediately")
	addLayoutFlags(cmd, &flags)

	return cmd
}

// loadForReplay reads a saved layout or computes one with snapshots.
func (c *CLI) loadForReplay(ctx context.Context, input string, flags layoutFlags) (graph.Layout, error) {
	if isLayoutFile(input) {
		return graph.ReadLayoutFile(input)
	}
	opts := c.options(flags)
	if err := opts.ValidateForLayout(); err != nil {
		return graph.Layout{}, err
	}
	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return graph.Layout{}, err
	}
	defer runner.Close()

	in, err := runner.Load(ctx, input, opts)
	if err != nil {
		return graph.Layout{}, err
	}
	return runner.Layout(ctx, in, opts)
}

// =============================================================================
// replayModel - Snapshot player
// =============================================================================

type tickMsg struct{}

// replayModel is the bubbletea model that plays back a layout's snapshots.
type replayModel struct {
	layout   graph.Layout
	added    []string // person placed at each step
	origin   float64
	step     int
	playing  bool
	interval time.Duration
}

func newReplayModel(l graph.Layout, interval time.Duration, play bool) (replayModel, error) {
	if len(l.Snapshots) == 0 {
		return replayModel{}, kerrors.New(kerrors.ErrCodeInvalidInput, "layout has no snapshots; recompute it with --snapshots")
	}
	if interval <= 0 {
		interval = defaultReplayInterval
	}
	return replayModel{
		layout:   l,
		added:    addedPerStep(l.Snapshots),
		origin:   render.Origin(l),
		playing:  play,
		interval: interval,
	}, nil
}

// addedPerStep returns, for each frame, the first person that frame adds.
// The opening frame may hold the root and its spouse; it reports the root.
func addedPerStep(frames []graph.Frame) []string {
	added := make([]string, len(frames))
	seen := make(map[string]bool)
	for i, f := range frames {
		for _, p := range f.Placements {
			if !seen[p.ID] {
				seen[p.ID] = true
				if added[i] == "" {
					added[i] = p.ID
				}
			}
		}
	}
	return added
}

func (m replayModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg { return tickMsg{} })
}

func (m replayModel) last() int { return len(m.layout.Snapshots) - 1 }

func (m replayModel) Init() tea.Cmd {
	if m.playing {
		return m.tick()
	}
	return nil
}

func (m replayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "right", "l", "n":
			m.playing = false
			m.step = min(m.step+1, m.last())
		case "left", "h", "p":
			m.playing = false
			m.step = max(m.step-1, 0)
		case "g", "home":
			m.playing = false
			m.step = 0
		case "G", "end":
			m.playing = false
			m.step = m.last()
		case " ":
			m.playing = !m.playing
			if m.playing {
				if m.step == m.last() {
					m.step = 0
				}
				return m, m.tick()
			}
		}
	case tickMsg:
		if !m.playing {
			return m, nil
		}
		if m.step >= m.last() {
			m.playing = false
			return m, nil
		}
		m.step++
		return m, m.tick()
	}
	return m, nil
}

func (m replayModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Family of " + m.rootName()))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("step %d/%d", m.step+1, m.last()+1)))
	if id := m.added[m.step]; id != "" {
		if n, ok := m.layout.Node(id); ok {
			b.WriteString(StyleDim.Render(" · "))
			b.WriteString(relationStyle(n).Render(n.DisplayName()))
			if n.Label != "" {
				b.WriteString(StyleDim.Render(" (" + n.Label + ")"))
			}
			if n.Strategy != "" {
				b.WriteString(StyleDim.Render(" via " + n.Strategy))
			}
		}
	}
	b.WriteString("\n\n")

	b.WriteString(render.Text(m.layout, m.layout.Snapshots[m.step], render.TextOptions{
		Origin:    m.origin,
		Highlight: m.added[m.step],
	}))

	b.WriteString("\n")
	state := "paused"
	if m.playing {
		state = "playing"
	}
	b.WriteString(StyleDim.Render("←/→ step  space " + state + "  g/G first/last  q quit"))
	return b.String()
}

// print writes every step as one line and then the final frame, for
// output that is not a terminal.
func (m replayModel) print(w io.Writer) {
	fmt.Fprintf(w, "Family of %s\n", m.rootName())
	for i, id := range m.added {
		line := fmt.Sprintf("%3d  ", i+1)
		if n, ok := m.layout.Node(id); ok {
			line += n.DisplayName()
			if n.Label != "" {
				line += " (" + n.Label + ")"
			}
			if n.Strategy != "" {
				line += " via " + n.Strategy
			}
		}
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
	fmt.Fprintln(w)
	fmt.Fprint(w, render.Text(m.layout, m.layout.Snapshots[m.last()], render.TextOptions{Origin: m.origin}))
}

func (m replayModel) rootName() string {
	if n, ok := m.layout.Node(m.layout.Root); ok {
		return n.DisplayName()
	}
	return m.layout.Root
}

// relationStyle colours a person by how they relate to the root.
func relationStyle(n graph.Node) lipgloss.Style {
	switch n.Side {
	case "marriage":
		return styleMarriage
	case "blood":
		return styleBlood
	}
	return StyleTitle
}
