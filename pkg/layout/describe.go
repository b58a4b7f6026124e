package layout

import (
	"github.com/matzehuels/kinship/pkg/family"
	"github.com/matzehuels/kinship/pkg/labels"
)

// Side tells whether a person is related to the root by blood or by
// marriage.
type Side string

const (
	SideNone     Side = ""
	SideBlood    Side = "blood"
	SideMarriage Side = "marriage"
)

// Relationship describes a person relative to the root. It is used for
// labelling only and never affects coordinates.
type Relationship struct {
	Kind     labels.Kind `json:"kind"`
	Distance int         `json:"distance,omitempty"`
	InLaw    bool        `json:"in_law,omitempty"`
	Side     Side        `json:"side,omitempty"`
	// Via is the root's parent through whom an ancestral line runs.
	Via string `json:"via,omitempty"`
	// Path lists the ids from the root to the person, both included.
	Path  []string `json:"path,omitempty"`
	Label string   `json:"label"`
}

// Term returns the label term for r.
func (r Relationship) Term() labels.Term {
	return labels.Term{Kind: r.Kind, Distance: r.Distance, InLaw: r.InLaw}
}

// Describe classifies the discovery path of id and labels it with l.
func Describe(m *DegreeMap, id string, l *labels.Labeler) Relationship {
	r := classifyPath(m, id)
	r.Label = l.Label(r.Term())
	return r
}

func classifyPath(m *DegreeMap, id string) Relationship {
	if id == m.Root {
		return Relationship{Kind: labels.Self, Path: []string{id}}
	}
	steps, ok := m.Path[id]
	if !ok {
		return Relationship{Kind: labels.Unrelated}
	}

	r := Relationship{Path: make([]string, 0, len(steps)+1)}
	r.Path = append(r.Path, m.Root)
	for _, st := range steps {
		r.Path = append(r.Path, st.ID)
	}
	if steps[0].Type == family.Parent {
		r.Via = steps[0].ID
	}

	// Reduce the path to a climb of up generations followed by a descent of
	// down generations, with at most one marriage at either end.
	up, down, spouses := 0, 0, 0
	descending := false
	for i, st := range steps {
		switch st.Type {
		case family.Parent:
			if descending {
				return relative(r)
			}
			up++
		case family.Child:
			descending = true
			down++
		case family.Sibling:
			if descending {
				return relative(r)
			}
			up++
			down++
			descending = true
		case family.Spouse:
			if i != 0 && i != len(steps)-1 {
				return relative(r)
			}
			spouses++
		default:
			return relative(r)
		}
	}
	if spouses > 1 {
		return relative(r)
	}

	r.Side = SideBlood
	if spouses == 1 {
		r.Side = SideMarriage
		r.InLaw = up+down > 0
	}

	switch {
	case up == 0 && down == 0:
		r.Kind = labels.Spouse
	case down == 0 && up == 1:
		r.Kind = labels.Parent
	case down == 0:
		r.Kind, r.Distance = labels.Ancestor, up
	case up == 0 && down == 1:
		r.Kind = labels.Child
	case up == 0:
		r.Kind, r.Distance = labels.Descendant, down
	case up == 1 && down == 1:
		r.Kind = labels.Sibling
	case down == 1:
		r.Kind, r.Distance = labels.AuntUncle, up-1
	case up == 1:
		r.Kind, r.Distance = labels.NieceNephew, down-1
	default:
		r.Kind, r.Distance = labels.Cousin, min(up, down)-1
	}
	return r
}

func relative(r Relationship) Relationship {
	r.Kind, r.Side, r.Distance, r.InLaw = labels.Relative, SideNone, 0, false
	return r
}
