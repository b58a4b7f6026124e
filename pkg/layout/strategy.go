package layout

import (
	"cmp"
	"math"
	"slices"

	"github.com/matzehuels/kinship/pkg/family"
)

// strategy identifies how a person's preferred position was derived.
type strategy int

const (
	strategyRoot strategy = iota
	strategyRootSpouse
	strategySpouse
	strategyChild
	strategyParent
	strategySibling
	strategyFallback
)

var strategyNames = [...]string{
	strategyRoot:       "root",
	strategyRootSpouse: "root-spouse",
	strategySpouse:     "spouse-adjacent",
	strategyChild:      "child-below-parents",
	strategyParent:     "parent-above-children",
	strategySibling:    "sibling-adjacent",
	strategyFallback:   "fallback",
}

func (st strategy) String() string {
	if st >= 0 && int(st) < len(strategyNames) {
		return strategyNames[st]
	}
	return "unknown"
}

// target is a preferred position before collision resolution.
type target struct {
	gen      int
	x        float64
	strategy strategy
}

// resolve picks the first matching strategy for id.
func (s *session) resolve(id string) target {
	if t, ok := s.spouseAdjacent(id); ok {
		return t
	}
	if t, ok := s.childBelowParents(id); ok {
		return t
	}
	if t, ok := s.parentAboveChildren(id); ok {
		return t
	}
	if t, ok := s.siblingAdjacent(id); ok {
		return t
	}
	return s.fallback(id)
}

// spouseAdjacent places id next to its earliest married placed spouse,
// on the right if that side is free and on the left otherwise.
func (s *session) spouseAdjacent(id string) (target, bool) {
	spouses := s.placedOf(s.idx.Spouses(id))
	if len(spouses) == 0 {
		return target{}, false
	}
	slices.SortFunc(spouses, s.compareMarriage)
	sp := spouses[0]
	g, x := s.gen(sp), s.x(sp)

	t := target{gen: g, x: x + s.cfg.SpouseSpacing, strategy: strategySpouse}
	if !s.free(g, t.x, nil) && s.free(g, x-s.cfg.SpouseSpacing, nil) {
		t.x = x - s.cfg.SpouseSpacing
	}
	return t, true
}

// childBelowParents centres id one generation below its placed parents.
func (s *session) childBelowParents(id string) (target, bool) {
	parents := s.placedOf(s.idx.Parents(id))
	if len(parents) == 0 {
		return target{}, false
	}
	g := math.MaxInt
	for _, p := range parents {
		g = min(g, s.gen(p))
	}
	return target{gen: g - 1, x: s.centroid(parents), strategy: strategyChild}, true
}

// parentAboveChildren centres id one generation above its placed children.
// A person with a spouse is offset so the couple straddles the centroid once
// the spouse arrives.
func (s *session) parentAboveChildren(id string) (target, bool) {
	children := s.placedOf(s.idx.Children(id))
	if len(children) == 0 {
		return target{}, false
	}
	g := math.MinInt
	for _, c := range children {
		g = max(g, s.gen(c))
	}
	x := s.centroid(children)
	if len(s.idx.Spouses(id)) > 0 {
		x -= s.cfg.SpouseSpacing / 2
	}
	return target{gen: g + 1, x: x, strategy: strategyParent}, true
}

// siblingAdjacent inserts id into the age ordered block of its placed
// siblings.
func (s *session) siblingAdjacent(id string) (target, bool) {
	sibs := s.placedOf(s.idx.Siblings(id))
	if len(sibs) == 0 {
		return target{}, false
	}
	anchor := s.closest(sibs)
	g := s.gen(anchor)
	block := s.inGen(sibs, g)
	slices.SortFunc(block, s.compareAge)

	// id is unplaced, so among equals it sorts after every placed sibling.
	me := s.idx.Person(id)
	k := len(block)
	for i, b := range block {
		if family.CompareBirth(me, s.idx.Person(b)) < 0 {
			k = i
			break
		}
	}

	var x float64
	switch {
	case k == 0:
		x = s.minX(block) - s.cfg.BaseSpacing
	case k == len(block):
		x = s.maxX(block) + s.cfg.BaseSpacing
	default:
		x = (s.x(block[k-1]) + s.x(block[k])) / 2
	}
	return target{gen: g, x: x, strategy: strategySibling}, true
}

// fallback attaches id next to its closest placed relative. Without one it
// opens a new slot to the right of the root's generation.
func (s *session) fallback(id string) target {
	if rels := s.placedOf(s.idx.Adjacent(id)); len(rels) > 0 {
		rel := s.closest(rels)
		return target{gen: s.gen(rel), x: s.x(rel) + s.cfg.BaseSpacing, strategy: strategyFallback}
	}
	g := s.gen(s.root)
	return target{gen: g, x: s.maxX(s.rows[g]) + s.cfg.BaseSpacing, strategy: strategyFallback}
}

// closest returns the id with the smallest degree, ties broken by id.
func (s *session) closest(ids []string) string {
	return slices.MinFunc(ids, func(a, b string) int {
		if c := cmp.Compare(s.degrees.Of(a), s.degrees.Of(b)); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
}

func (s *session) compareMarriage(a, b string) int {
	return family.CompareMarriage(s.idx.Person(a), s.idx.Person(b))
}

func (s *session) minX(ids []string) float64 {
	m := math.Inf(1)
	for _, id := range ids {
		m = min(m, s.x(id))
	}
	return m
}

func (s *session) maxX(ids []string) float64 {
	m := math.Inf(-1)
	for _, id := range ids {
		m = max(m, s.x(id))
	}
	return m
}
