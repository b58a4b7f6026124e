package render

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/matzehuels/kinship/pkg/graph"
)

// DefaultCellWidth is the number of columns reserved per person.
const DefaultCellWidth = 12

// TextOptions configures [Text].
type TextOptions struct {
	// CellWidth is the number of columns one MinSpacing maps to. Names
	// longer than CellWidth-1 are truncated.
	CellWidth int

	// Origin is the layout x that maps to the first column. Use
	// [Origin] to keep it fixed across the frames of a replay.
	Origin float64

	// Highlight is drawn in brackets.
	Highlight string
}

// Origin returns the smallest x over every frame of l and its nodes.
func Origin(l graph.Layout) float64 {
	o := l.Bounds.MinX
	for _, f := range l.Snapshots {
		for _, p := range f.Placements {
			o = min(o, p.X)
		}
	}
	return o
}

// Text draws frame f of l as text, one line per generation, eldest first.
// Each line starts with the signed generation number.
func Text(l graph.Layout, f graph.Frame, opts TextOptions) string {
	if opts.CellWidth <= 0 {
		opts.CellWidth = DefaultCellWidth
	}
	unit := l.Config.MinSpacing
	if unit <= 0 {
		unit = 1
	}
	scale := float64(opts.CellWidth) / unit

	names := make(map[string]string, len(l.Nodes))
	for _, n := range l.Nodes {
		names[n.ID] = n.DisplayName()
	}

	rows := make(map[int][]graph.Placement)
	for _, p := range f.Placements {
		rows[p.Generation] = append(rows[p.Generation], p)
	}
	gens := make([]int, 0, len(rows))
	for g := range rows {
		gens = append(gens, g)
	}
	slices.Sort(gens)
	slices.Reverse(gens)

	var b strings.Builder
	for i, g := range gens {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%+3d │ ", g)
		b.WriteString(strings.TrimRight(textRow(rows[g], names, scale, opts), " "))
		b.WriteString("\n")
	}
	return b.String()
}

func textRow(row []graph.Placement, names map[string]string, scale float64, opts TextOptions) string {
	var line []rune
	for _, p := range row {
		name := names[p.ID]
		if name == "" {
			name = p.ID
		}
		if p.ID == opts.Highlight {
			name = "[" + truncate(name, opts.CellWidth-3) + "]"
		} else {
			name = truncate(name, opts.CellWidth-1)
		}
		label := []rune(name)

		center := int(math.Round((p.X-opts.Origin)*scale)) + opts.CellWidth/2
		start := max(0, center-len(label)/2)
		if need := start + len(label); need > len(line) {
			line = append(line, []rune(strings.Repeat(" ", need-len(line)))...)
		}
		copy(line[start:], label)
	}
	return string(line)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return string(r[:1])
	}
	return string(r[:n-1]) + "…"
}
