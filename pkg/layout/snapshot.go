package layout

import "github.com/matzehuels/kinship/pkg/family"

// NodePosition is the placement of one person. Y is Generation times the
// vertical spacing, so ancestors have larger Y than descendants.
type NodePosition struct {
	Person       *family.Person
	X            float64
	Y            float64
	Generation   int
	Relationship Relationship

	// Strategy names the rule that chose the person's first position.
	Strategy string
}

// ID returns the id of the placed person.
func (n NodePosition) ID() string { return n.Person.ID }

// positions returns every placed person in placement order, translated so
// the root sits at x=0.
func (s *session) positions() []NodePosition {
	dx := -s.x(s.root)
	out := make([]NodePosition, len(s.order))
	for i, id := range s.order {
		sl := s.slots[id]
		x, y := sl.x+dx, float64(sl.gen)*s.cfg.VerticalSpacing
		if x == 0 {
			x = 0 // no negative zero
		}
		if y == 0 {
			y = 0
		}
		out[i] = NodePosition{
			Person:       s.idx.Person(id),
			X:            x,
			Y:            y,
			Generation:   sl.gen,
			Relationship: s.relationships[id],
			Strategy:     sl.strategy.String(),
		}
	}
	return out
}

// record appends the current state to the snapshot sequence.
func (s *session) record() {
	s.snapshots = append(s.snapshots, s.positions())
}

// recordFinal appends the final layout unless it equals the last snapshot.
func (s *session) recordFinal(final []NodePosition) {
	if n := len(s.snapshots); n > 0 && samePositions(s.snapshots[n-1], final) {
		return
	}
	s.snapshots = append(s.snapshots, final)
}

func samePositions(a, b []NodePosition) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Person != b[i].Person || a[i].Generation != b[i].Generation || a[i].X != b[i].X {
			return false
		}
	}
	return true
}
