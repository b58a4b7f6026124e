package graph

import (
	"cmp"
	"slices"

	"github.com/matzehuels/kinship/pkg/family"
	"github.com/matzehuels/kinship/pkg/layout"
)

// =============================================================================
// Constants
// =============================================================================

// Edge types. They match the names of [family.RelationType].
const (
	EdgeParent  = "parent"
	EdgeSpouse  = "spouse"
	EdgeSibling = "sibling"
)

// dateLayout is the format of Node.Birth.
const dateLayout = "2006-01-02"

// =============================================================================
// Node - Placed Person
// =============================================================================

// Node is one placed person in a serialized layout.
type Node struct {
	ID         string  `json:"id" bson:"id"`
	Name       string  `json:"name,omitempty" bson:"name,omitempty"`
	Virtual    bool    `json:"virtual,omitempty" bson:"virtual,omitempty"`
	Birth      string  `json:"birth,omitempty" bson:"birth,omitempty"`
	X          float64 `json:"x" bson:"x"`
	Y          float64 `json:"y" bson:"y"`
	Generation int     `json:"generation" bson:"generation"`

	// Degree is the number of edges between the person and the root, or -1
	// if the person is not connected to it.
	Degree int `json:"degree" bson:"degree"`

	Kind     string   `json:"kind" bson:"kind"`
	Label    string   `json:"label" bson:"label"`
	Distance int      `json:"distance,omitempty" bson:"distance,omitempty"`
	InLaw    bool     `json:"in_law,omitempty" bson:"in_law,omitempty"`
	Side     string   `json:"side,omitempty" bson:"side,omitempty"`
	Via      string   `json:"via,omitempty" bson:"via,omitempty"`
	Path     []string `json:"path,omitempty" bson:"path,omitempty"`
	Strategy string   `json:"strategy,omitempty" bson:"strategy,omitempty"`
}

// DisplayName returns the name if set, otherwise the ID.
func (n *Node) DisplayName() string {
	if n.Name != "" {
		return n.Name
	}
	return n.ID
}

func nodeFrom(p layout.NodePosition, degrees *layout.DegreeMap) Node {
	rel := p.Relationship
	n := Node{
		ID:         p.Person.ID,
		Name:       p.Person.Name,
		Virtual:    p.Person.Virtual,
		X:          p.X,
		Y:          p.Y,
		Generation: p.Generation,
		Degree:     -1,
		Kind:       string(rel.Kind),
		Label:      rel.Label,
		Distance:   rel.Distance,
		InLaw:      rel.InLaw,
		Side:       string(rel.Side),
		Via:        rel.Via,
		Path:       slices.Clone(rel.Path),
		Strategy:   p.Strategy,
	}
	if p.Person.HasBirth() {
		n.Birth = p.Person.Birth.Format(dateLayout)
	}
	if degrees != nil && degrees.Reachable(n.ID) {
		n.Degree = degrees.Of(n.ID)
	}
	return n
}

// =============================================================================
// Edge - Structural Link
// =============================================================================

// Edge links two placed persons. Parent edges point from parent to child;
// spouse and sibling edges are undirected and stored with From < To.
type Edge struct {
	From string `json:"from" bson:"from"`
	To   string `json:"to" bson:"to"`
	Type string `json:"type" bson:"type"`
}

// edgesOf returns the drawable edges of people: every parent link, every
// couple, and sibling links between persons who share no parent.
func edgesOf(idx *family.Index) []Edge {
	var edges []Edge
	for _, id := range idx.IDs() {
		for _, c := range idx.Children(id) {
			edges = append(edges, Edge{From: id, To: c, Type: EdgeParent})
		}
		for _, sp := range idx.Spouses(id) {
			if id < sp {
				edges = append(edges, Edge{From: id, To: sp, Type: EdgeSpouse})
			}
		}
		for _, sib := range idx.Siblings(id) {
			if id < sib && !shareParent(idx, id, sib) {
				edges = append(edges, Edge{From: id, To: sib, Type: EdgeSibling})
			}
		}
	}
	slices.SortFunc(edges, compareEdges)
	return edges
}

func shareParent(idx *family.Index, a, b string) bool {
	for _, p := range idx.Parents(a) {
		if _, ok := slices.BinarySearch(idx.Parents(b), p); ok {
			return true
		}
	}
	return false
}

func compareEdges(a, b Edge) int {
	return cmp.Or(
		cmp.Compare(a.Type, b.Type),
		cmp.Compare(a.From, b.From),
		cmp.Compare(a.To, b.To),
	)
}

// =============================================================================
// Frame - Growth Snapshot
// =============================================================================

// Frame is one step of the growth sequence.
type Frame struct {
	Step       int         `json:"step" bson:"step"`
	Placements []Placement `json:"placements" bson:"placements"`
}

// Placement is the position of one person within a [Frame].
type Placement struct {
	ID         string  `json:"id" bson:"id"`
	X          float64 `json:"x" bson:"x"`
	Y          float64 `json:"y" bson:"y"`
	Generation int     `json:"generation" bson:"generation"`
}

func framesOf(snapshots [][]layout.NodePosition) []Frame {
	frames := make([]Frame, len(snapshots))
	for i, snap := range snapshots {
		ps := make([]Placement, len(snap))
		for j, p := range snap {
			ps[j] = Placement{ID: p.ID(), X: p.X, Y: p.Y, Generation: p.Generation}
		}
		frames[i] = Frame{Step: i, Placements: ps}
	}
	return frames
}

// Bounds is the bounding box of a set of placements in layout units.
type Bounds struct {
	MinX float64 `json:"min_x" bson:"min_x"`
	MaxX float64 `json:"max_x" bson:"max_x"`
	MinY float64 `json:"min_y" bson:"min_y"`
	MaxY float64 `json:"max_y" bson:"max_y"`
}

// Width returns the horizontal extent.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height returns the vertical extent.
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

func boundsOf(nodes []Node) Bounds {
	if len(nodes) == 0 {
		return Bounds{}
	}
	b := Bounds{MinX: nodes[0].X, MaxX: nodes[0].X, MinY: nodes[0].Y, MaxY: nodes[0].Y}
	for _, n := range nodes[1:] {
		b.MinX, b.MaxX = min(b.MinX, n.X), max(b.MaxX, n.X)
		b.MinY, b.MaxY = min(b.MinY, n.Y), max(b.MaxY, n.Y)
	}
	return b
}
