package graph

import (
	"cmp"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"os"
	"slices"
	"time"

	"golang.org/x/text/language"

	kerrors "github.com/matzehuels/kinship/pkg/errors"
	"github.com/matzehuels/kinship/pkg/family"
	"github.com/matzehuels/kinship/pkg/layout"
)

// =============================================================================
// Layout - Canonical Serialization
// =============================================================================

// Layout is the canonical serialization of a computed family layout.
// It is what the CLI writes to disk, what the API returns, and what the
// cache and store hold.
type Layout struct {
	// ID is assigned by a store. Empty for layouts that were never saved.
	ID string `json:"id,omitempty" bson:"_id,omitempty"`

	Root     string        `json:"root" bson:"root"`
	Language string        `json:"language,omitempty" bson:"language,omitempty"`
	Config   layout.Config `json:"config" bson:"config"`
	Bounds   Bounds        `json:"bounds" bson:"bounds"`

	// Nodes are in placement order, so Nodes[0] is the root.
	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges,omitempty" bson:"edges,omitempty"`

	// Snapshots is the growth sequence. It is omitted when the caller asked
	// for the final layout only.
	Snapshots []Frame `json:"snapshots,omitempty" bson:"snapshots,omitempty"`

	// InputHash identifies the people file the layout was computed from.
	InputHash string    `json:"input_hash,omitempty" bson:"input_hash,omitempty"`
	CreatedAt time.Time `json:"created_at,omitzero" bson:"created_at,omitempty"`
}

// FromResult converts a computed layout into its serialized form.
func FromResult(res *layout.Result, lang language.Tag, withSnapshots bool) (Layout, error) {
	if res == nil || len(res.Positions) == 0 {
		return Layout{}, kerrors.New(kerrors.ErrCodeInvalidInput, "layout result is empty")
	}

	people := make([]*family.Person, len(res.Positions))
	nodes := make([]Node, len(res.Positions))
	for i, p := range res.Positions {
		people[i] = p.Person
		nodes[i] = nodeFrom(p, res.Degrees)
	}
	idx, err := family.NewIndex(people)
	if err != nil {
		return Layout{}, err
	}

	l := Layout{
		Root:     res.Root,
		Language: lang.String(),
		Config:   res.Config,
		Bounds:   boundsOf(nodes),
		Nodes:    nodes,
		Edges:    edgesOf(idx),
	}
	if withSnapshots {
		l.Snapshots = framesOf(res.Snapshots)
	}
	return l, nil
}

// Node returns the node with the given id.
func (l *Layout) Node(id string) (Node, bool) {
	for _, n := range l.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Generations returns the generations present in the layout, eldest first.
func (l *Layout) Generations() []int {
	var gens []int
	for _, n := range l.Nodes {
		if !slices.Contains(gens, n.Generation) {
			gens = append(gens, n.Generation)
		}
	}
	slices.Sort(gens)
	slices.Reverse(gens)
	return gens
}

// Row returns the nodes of generation g ordered left to right.
func (l *Layout) Row(g int) []Node {
	var row []Node
	for _, n := range l.Nodes {
		if n.Generation == g {
			row = append(row, n)
		}
	}
	slices.SortFunc(row, func(a, b Node) int {
		return cmp.Or(cmp.Compare(a.X, b.X), cmp.Compare(a.ID, b.ID))
	})
	return row
}

// Final returns the last frame of the growth sequence, or a frame built from
// the nodes when the layout carries no snapshots.
func (l *Layout) Final() Frame {
	if n := len(l.Snapshots); n > 0 {
		return l.Snapshots[n-1]
	}
	ps := make([]Placement, len(l.Nodes))
	for i, n := range l.Nodes {
		ps[i] = Placement{ID: n.ID, X: n.X, Y: n.Y, Generation: n.Generation}
	}
	return Frame{Placements: ps}
}

func (l *Layout) validate() error {
	if len(l.Nodes) == 0 {
		return kerrors.New(kerrors.ErrCodeInvalidFormat, "layout contains no nodes")
	}
	if l.Root == "" {
		return kerrors.New(kerrors.ErrCodeInvalidFormat, "layout has no root")
	}
	if _, ok := l.Node(l.Root); !ok {
		return kerrors.New(kerrors.ErrCodeInvalidFormat, "layout root %q has no node", l.Root)
	}
	return nil
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout and checks that the
// root is among its nodes.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, kerrors.Wrap(kerrors.ErrCodeInvalidFormat, err, "unmarshal layout")
	}
	if err := l.validate(); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// WriteLayout writes l as JSON to w.
func WriteLayout(l Layout, w io.Writer) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// ReadLayout reads a JSON layout from r.
func ReadLayout(r io.Reader) (Layout, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Layout{}, err
	}
	return UnmarshalLayout(data)
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Layout{}, kerrors.Wrap(kerrors.ErrCodeFileNotFound, err, "read %s", path)
	}
	if err != nil {
		return Layout{}, kerrors.Wrap(kerrors.ErrCodeInternal, err, "read %s", path)
	}
	return UnmarshalLayout(data)
}
