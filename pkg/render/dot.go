package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/kinship/pkg/graph"
)

// Options configures DOT output.
type Options struct {
	// Labels adds the relationship label below each name.
	Labels bool

	// Frame selects a step of the growth sequence. Negative values and
	// layouts without snapshots draw the final layout.
	Frame int
}

// Fill colours by relation to the root.
const (
	fillRoot     = "#fde68a"
	fillBlood    = "#e0f2fe"
	fillMarriage = "#f3e8ff"
	fillOther    = "#f4f4f5"
)

// ToDOT converts a layout to Graphviz DOT. Node positions are pinned with
// pos="x,y!" in points, so neato keeps the computed coordinates. Only
// persons present in the selected frame are drawn.
func ToDOT(l graph.Layout, opts Options) string {
	frame := selectFrame(l, opts.Frame)
	nodes := make(map[string]graph.Node, len(l.Nodes))
	for _, n := range l.Nodes {
		nodes[n.ID] = n
	}
	present := make(map[string]bool, len(frame.Placements))

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  splines=line;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontname=\"Helvetica\", fontsize=12, margin=\"0.15,0.08\"];\n")
	buf.WriteString("  edge [arrowsize=0.6, color=\"#52525b\"];\n")
	buf.WriteString("\n")

	for _, p := range frame.Placements {
		present[p.ID] = true
		n, ok := nodes[p.ID]
		if !ok {
			n = graph.Node{ID: p.ID}
		}
		attrs := nodeAttrs(n, l.Root, opts.Labels)
		attrs = append(attrs, fmt.Sprintf("pos=\"%s,%s!\"", fmtFloat(p.X), fmtFloat(p.Y)))
		fmt.Fprintf(&buf, "  %q [%s];\n", p.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range l.Edges {
		if !present[e.From] || !present[e.To] {
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q", e.From, e.To)
		switch e.Type {
		case graph.EdgeSpouse:
			buf.WriteString(" [dir=none, penwidth=2]")
		case graph.EdgeSibling:
			buf.WriteString(" [dir=none, style=dashed]")
		}
		buf.WriteString(";\n")
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n graph.Node, root string, labels bool) []string {
	label := n.DisplayName()
	if labels && n.Label != "" && n.ID != root {
		label += "\n" + n.Label
	}
	attrs := []string{fmt.Sprintf("label=%q", label)}

	switch {
	case n.ID == root:
		attrs = append(attrs, "fillcolor=\""+fillRoot+"\"", "penwidth=2")
	case n.Side == "marriage":
		attrs = append(attrs, "fillcolor=\""+shade(fillMarriage, n.Degree)+"\"")
	case n.Side == "blood":
		attrs = append(attrs, "fillcolor=\""+shade(fillBlood, n.Degree)+"\"")
	default:
		attrs = append(attrs, "fillcolor=\""+fillOther+"\"")
	}
	if n.Virtual {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"")
	}
	return attrs
}

// shade fades base towards white for distant relatives: 12% per degree
// beyond the first, at most five steps.
func shade(base string, degree int) string {
	if degree <= 1 {
		return base
	}
	c, err := colorful.Hex(base)
	if err != nil {
		return base
	}
	white := colorful.Color{R: 1, G: 1, B: 1}
	return c.BlendLab(white, 0.12*float64(min(degree-1, 5))).Clamped().Hex()
}

// selectFrame returns frame i of l, or the final frame.
func selectFrame(l graph.Layout, i int) graph.Frame {
	if i >= 0 && i < len(l.Snapshots) {
		return l.Snapshots[i]
	}
	return l.Final()
}

func fmtFloat(f float64) string {
	s := fmt.Sprintf("%.2f", f)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	if s == "-0" {
		return "0"
	}
	return s
}
