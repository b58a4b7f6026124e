package layout

import (
	"math"
	"testing"
	"time"

	"github.com/matzehuels/kinship/pkg/family"
)

// tree is a small fixture builder for family graphs.
type tree struct {
	byID  map[string]*family.Person
	order []string
}

func newTree(ids ...string) *tree {
	tr := &tree{byID: make(map[string]*family.Person)}
	for _, id := range ids {
		tr.add(id)
	}
	return tr
}

func (tr *tree) add(id string) *family.Person {
	if p, ok := tr.byID[id]; ok {
		return p
	}
	p := &family.Person{ID: id, Name: id}
	tr.byID[id] = p
	tr.order = append(tr.order, id)
	return p
}

// rel declares a relation on from, classified from label.
func (tr *tree) rel(from, label, to string) *tree {
	src, dst := tr.add(from), tr.add(to)
	src.Relations = append(src.Relations, family.NewRelation(label, dst, nil))
	return tr
}

func (tr *tree) born(id string, year int) *tree {
	tr.add(id).Birth = time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return tr
}

func (tr *tree) married(id string, year int) *tree {
	tr.add(id).Married = time.Date(year, time.June, 1, 0, 0, 0, 0, time.UTC)
	return tr
}

func (tr *tree) people() []*family.Person {
	out := make([]*family.Person, len(tr.order))
	for i, id := range tr.order {
		out[i] = tr.byID[id]
	}
	return out
}

func mustCompute(t *testing.T, people []*family.Person, root string) *Result {
	t.Helper()
	res, err := Compute(people, root, Options{})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	return res
}

func positionOf(t *testing.T, res *Result, id string) NodePosition {
	t.Helper()
	p, ok := res.Position(id)
	if !ok {
		t.Fatalf("no position for %q", id)
	}
	return p
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

// checkInvariants verifies the properties every layout must have.
func checkInvariants(t *testing.T, people []*family.Person, res *Result) {
	t.Helper()
	cfg := res.Config

	if len(res.Positions) != len(people) {
		t.Fatalf("got %d positions for %d persons", len(res.Positions), len(people))
	}
	seen := make(map[string]NodePosition, len(people))
	for _, p := range res.Positions {
		if _, dup := seen[p.Person.ID]; dup {
			t.Fatalf("%q placed twice", p.Person.ID)
		}
		seen[p.Person.ID] = p
		if !approx(p.Y, float64(p.Generation)*cfg.VerticalSpacing) {
			t.Errorf("%q: y=%g does not match generation %d", p.Person.ID, p.Y, p.Generation)
		}
	}

	root := seen[res.Root]
	if root.X != 0 || root.Y != 0 || root.Generation != 0 {
		t.Errorf("root at (%g, %g) gen %d, want origin", root.X, root.Y, root.Generation)
	}

	for i, a := range res.Positions {
		for _, b := range res.Positions[i+1:] {
			if a.Generation == b.Generation && math.Abs(a.X-b.X) < cfg.MinSpacing-1e-6 {
				t.Errorf("%q and %q are %g apart in generation %d", a.Person.ID, b.Person.ID, math.Abs(a.X-b.X), a.Generation)
			}
		}
	}

	idx, err := family.NewIndex(people)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range people {
		me := seen[p.ID]
		for _, sp := range idx.Spouses(p.ID) {
			if seen[sp].Generation != me.Generation {
				t.Errorf("spouses %q and %q in generations %d and %d", p.ID, sp, me.Generation, seen[sp].Generation)
			}
		}
		for _, par := range idx.Parents(p.ID) {
			if seen[par].Generation != me.Generation+1 {
				t.Errorf("child %q in generation %d, parent %q in %d", p.ID, me.Generation, par, seen[par].Generation)
			}
		}
	}

	// Children of one parent in one generation run oldest to youngest, with
	// the undated ones after every dated one.
	for _, par := range idx.IDs() {
		kids := idx.Children(par)
		for _, a := range kids {
			for _, b := range kids {
				pa, pb := seen[a], seen[b]
				if pa.Generation != pb.Generation || family.CompareBirth(pa.Person, pb.Person) >= 0 {
					continue
				}
				if pa.X >= pb.X {
					t.Errorf("children of %q: %q (x=%g) should be left of younger %q (x=%g)", par, a, pa.X, b, pb.X)
				}
			}
		}
	}
}

func samePlacement(a, b *Result) bool {
	if len(a.Positions) != len(b.Positions) {
		return false
	}
	for _, p := range a.Positions {
		q, ok := b.Position(p.Person.ID)
		if !ok || p.X != q.X || p.Y != q.Y || p.Generation != q.Generation {
			return false
		}
	}
	return true
}
