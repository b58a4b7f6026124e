package render

import (
	"context"
	"strings"
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/kinship/pkg/graph"
	"github.com/matzehuels/kinship/pkg/layout"
)

func sampleLayout() graph.Layout {
	return graph.Layout{
		Root:   "anna",
		Config: layout.DefaultConfig(),
		Nodes: []graph.Node{
			{ID: "anna", Name: "Anna", X: 0, Y: 0, Generation: 0, Kind: "self", Label: "self"},
			{ID: "karl", Name: "Karl", X: 100, Y: 0, Generation: 0, Kind: "spouse", Label: "husband", Side: "marriage"},
			{ID: "lena", Name: "Lena", X: 50, Y: -200, Generation: -1, Kind: "child", Label: "daughter", Side: "blood"},
			{ID: "v1", Name: "Uncle Bob", X: 300, Y: 0, Generation: 0, Virtual: true},
		},
		Edges: []graph.Edge{
			{From: "anna", To: "lena", Type: graph.EdgeParent},
			{From: "karl", To: "lena", Type: graph.EdgeParent},
			{From: "anna", To: "karl", Type: graph.EdgeSpouse},
		},
	}
}

func withSnapshots() graph.Layout {
	l := sampleLayout()
	l.Snapshots = []graph.Frame{
		{Step: 0, Placements: []graph.Placement{{ID: "anna"}, {ID: "karl", X: 100}}},
		{Step: 1, Placements: []graph.Placement{{ID: "anna", X: -20}, {ID: "karl", X: 80}, {ID: "lena", X: 30, Y: -200, Generation: -1}}},
	}
	return l
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(sampleLayout(), Options{Frame: -1})

	for _, want := range []string{
		"digraph G {",
		"layout=neato;",
		`"anna" [label="Anna", fillcolor="#fde68a", penwidth=2, pos="0,0!"];`,
		`"lena" [label="Lena", fillcolor="#e0f2fe", pos="50,-200!"];`,
		`"v1" [label="Uncle Bob", fillcolor="#f4f4f5", style="rounded,filled,dashed", pos="300,0!"];`,
		`"anna" -> "lena";`,
		`"anna" -> "karl" [dir=none, penwidth=2];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %s\n%s", want, dot)
		}
	}
}

func TestToDOTFrame(t *testing.T) {
	l := withSnapshots()

	first := ToDOT(l, Options{Frame: 0})
	if strings.Contains(first, `"lena"`) {
		t.Error("frame 0 should not contain lena")
	}
	if strings.Contains(first, `"anna" -> "lena"`) {
		t.Error("frame 0 should have no parent edges")
	}

	second := ToDOT(l, Options{Frame: 1})
	if !strings.Contains(second, `pos="-20,0!"`) {
		t.Errorf("frame 1 should use snapshot positions:\n%s", second)
	}

	// Out of range falls back to the final frame.
	if got := ToDOT(l, Options{Frame: 99}); got != ToDOT(l, Options{Frame: 1}) {
		t.Error("out of range frame should draw the last snapshot")
	}
}

func TestToDOTLabels(t *testing.T) {
	dot := ToDOT(sampleLayout(), Options{Labels: true, Frame: -1})
	if !strings.Contains(dot, `label="Karl\nhusband"`) {
		t.Errorf("expected relationship label:\n%s", dot)
	}
	if strings.Contains(dot, `Anna\nself`) {
		t.Error("root should not carry a label")
	}
}

func TestShade(t *testing.T) {
	for _, d := range []int{-1, 0, 1} {
		if got := shade(fillBlood, d); got != fillBlood {
			t.Errorf("shade(degree %d) = %s, want base", d, got)
		}
	}
	if got := shade("not a colour", 4); got != "not a colour" {
		t.Errorf("invalid base changed to %s", got)
	}

	lightness := func(hex string) float64 {
		c, err := colorful.Hex(hex)
		if err != nil {
			t.Fatal(err)
		}
		l, _, _ := c.Lab()
		return l
	}
	const base = "#3366cc"
	prev := lightness(base)
	for d := 2; d <= 6; d++ {
		l := lightness(shade(base, d))
		if l <= prev {
			t.Errorf("degree %d lightness %.3f not above %.3f", d, l, prev)
		}
		prev = l
	}
	if shade(base, 6) != shade(base, 9) {
		t.Error("shading should stop after five steps")
	}
}

func TestFmtFloat(t *testing.T) {
	tests := map[float64]string{0: "0", 1.5: "1.5", -0.001: "0", 100: "100", 33.333: "33.33"}
	for in, want := range tests {
		if got := fmtFloat(in); got != want {
			t.Errorf("fmtFloat(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestText(t *testing.T) {
	l := sampleLayout()
	l.Nodes = l.Nodes[:3]
	got := Text(l, l.Final(), TextOptions{})

	want := " +0 │ " + strings.Repeat(" ", 4) + "Anna" + strings.Repeat(" ", 9) + "Karl\n" +
		"\n" +
		" -1 │ " + strings.Repeat(" ", 11) + "Lena\n"
	if got != want {
		t.Errorf("Text =\n%q\nwant\n%q", got, want)
	}
}

func TestTextHighlightAndTruncate(t *testing.T) {
	l := sampleLayout()
	got := Text(l, graph.Frame{Placements: []graph.Placement{{ID: "v1"}}}, TextOptions{CellWidth: 6, Highlight: "v1"})
	if !strings.Contains(got, "[Un…]") {
		t.Errorf("Text = %q", got)
	}
}

func TestOrigin(t *testing.T) {
	l := withSnapshots()
	l.Bounds = graph.Bounds{MinX: 0, MaxX: 300}
	if got := Origin(l); got != -20 {
		t.Errorf("Origin = %v, want -20", got)
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(sampleLayout(), Options{Frame: -1}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	s := string(svg)
	if !strings.Contains(s, "<svg") || !strings.Contains(s, "Anna") {
		t.Errorf("unexpected SVG output: %.200s", s)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="x"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0.00 0.00 100.00 50.00" width="100" height="50"`) {
		t.Errorf("normalizeViewBox = %s", out)
	}
	if string(normalizeViewBox([]byte("<svg/>"))) != "<svg/>" {
		t.Error("svg without viewBox should be unchanged")
	}
}
