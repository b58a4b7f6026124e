package layout

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/matzehuels/kinship/pkg/family"
)

// familyGen grows a consistent random family around a root couple.
type familyGen struct {
	rng  *rand.Rand
	tr   *tree
	next int
}

func (g *familyGen) person(year int) string {
	g.next++
	id := fmt.Sprintf("p%03d", g.next)
	g.tr.add(id)
	if g.rng.IntN(5) > 0 {
		g.tr.born(id, year+g.rng.IntN(4))
	}
	return id
}

// parentChild declares the edge on the parent, the child or both.
func (g *familyGen) parentChild(parent, child string) {
	switch g.rng.IntN(3) {
	case 0:
		g.tr.rel(parent, "child", child)
	case 1:
		g.tr.rel(child, "parent", parent)
	default:
		g.tr.rel(parent, "child", child).rel(child, "parent", parent)
	}
}

func (g *familyGen) couple(a, b string) {
	if g.rng.IntN(2) == 0 {
		g.tr.rel(a, "spouse", b)
	} else {
		g.tr.rel(b, "spouse", a)
	}
}

func (g *familyGen) ancestors(id string, year, depth int) {
	if depth == 0 || g.rng.IntN(4) == 0 {
		return
	}
	dad, mom := g.person(year-30), g.person(year-28)
	g.couple(dad, mom)
	g.parentChild(dad, id)
	g.parentChild(mom, id)
	g.ancestors(dad, year-30, depth-1)
	if g.rng.IntN(2) == 0 {
		g.ancestors(mom, year-28, depth-1)
	}
	// Occasionally an aunt or uncle.
	if g.rng.IntN(3) == 0 {
		sib := g.person(year + 2)
		g.parentChild(dad, sib)
		g.parentChild(mom, sib)
		if g.rng.IntN(2) == 0 {
			g.tr.rel(id, "sibling", sib)
		}
	}
}

func (g *familyGen) descendants(a, b string, year, depth int) {
	if depth == 0 {
		return
	}
	kids := g.rng.IntN(4)
	for range kids {
		kid := g.person(year + 25)
		g.parentChild(a, kid)
		g.parentChild(b, kid)
		if g.rng.IntN(2) == 0 {
			partner := g.person(year + 25)
			g.couple(kid, partner)
			g.descendants(kid, partner, year+25, depth-1)
		}
	}
}

func generateFamily(seed uint64) (*tree, string) {
	return generateFamilyDepth(seed, 2, 2)
}

// generateFamilyDepth grows up to up generations of ancestors above the
// root and down generations of descendants below it.
func generateFamilyDepth(seed uint64, up, down int) (*tree, string) {
	g := &familyGen{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), tr: newTree()}
	root := g.person(1960)
	spouse := g.person(1961)
	g.couple(root, spouse)
	g.ancestors(root, 1960, up)
	g.ancestors(spouse, 1961, up-1)
	g.descendants(root, spouse, 1960, down)
	return g.tr, root
}

func shuffled(rng *rand.Rand, people []*family.Person) []*family.Person {
	out := make([]*family.Person, len(people))
	copy(out, people)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

func TestLayoutInvariantsOnGeneratedFamilies(t *testing.T) {
	for seed := uint64(1); seed <= 40; seed++ {
		t.Run(fmt.Sprintf("seed=%d", seed), func(t *testing.T) {
			tr, root := generateFamily(seed)
			people := tr.people()
			res := mustCompute(t, people, root)
			checkInvariants(t, people, res)

			for i, snap := range res.Snapshots {
				if snap[0].Person.ID != root || snap[0].X != 0 {
					t.Errorf("snapshot %d does not start with the root at x=0", i)
				}
				if i > 0 && len(snap) < len(res.Snapshots[i-1]) {
					t.Errorf("snapshot %d shrank", i)
				}
			}
		})
	}
}

// Deep families marry into other sibling blocks often enough that moving
// one block drags spouses past their own brothers and sisters.
func TestLayoutInvariantsOnDeepFamilies(t *testing.T) {
	for seed := uint64(1); seed <= 400; seed++ {
		tr, root := generateFamilyDepth(seed, 3, 3)
		people := tr.people()
		res, err := Compute(people, root, Options{})
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		checkInvariants(t, people, res)
		if t.Failed() {
			t.Fatalf("seed %d failed", seed)
		}
	}
}

func TestLayoutIsPermutationInvariant(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for seed := uint64(1); seed <= 20; seed++ {
		tr, root := generateFamily(seed)
		people := tr.people()
		want := mustCompute(t, people, root)

		for round := range 3 {
			got := mustCompute(t, shuffled(rng, people), root)
			if !samePlacement(want, got) {
				t.Fatalf("seed %d, round %d: layout depends on input order", seed, round)
			}
			if len(got.Snapshots) != len(want.Snapshots) {
				t.Fatalf("seed %d, round %d: %d snapshots, want %d", seed, round, len(got.Snapshots), len(want.Snapshots))
			}
		}
	}
}

func TestSiblingsSortedByAge(t *testing.T) {
	tr := newTree("root", "dad", "mom", "old", "young", "undated1", "undated2")
	tr.rel("root", "father", "dad").rel("root", "mother", "mom").rel("dad", "wife", "mom")
	for _, kid := range []string{"old", "young", "undated1", "undated2"} {
		tr.rel("dad", "child", kid).rel("mom", "child", kid)
	}
	tr.rel("dad", "child", "root").rel("mom", "child", "root")
	tr.born("root", 1985).born("old", 1980).born("young", 1990)

	res := mustCompute(t, tr.people(), "root")
	checkInvariants(t, tr.people(), res)

	want := []string{"old", "root", "young"}
	for i := 1; i < len(want); i++ {
		if positionOf(t, res, want[i-1]).X >= positionOf(t, res, want[i]).X {
			t.Errorf("%s should be left of %s", want[i-1], want[i])
		}
	}
	lastDated := positionOf(t, res, "young").X
	for _, id := range []string{"undated1", "undated2"} {
		if positionOf(t, res, id).X <= lastDated {
			t.Errorf("%s should be right of every dated sibling", id)
		}
	}
	if positionOf(t, res, "undated1").X >= positionOf(t, res, "undated2").X {
		t.Error("undated siblings should keep their placement order")
	}
}
