package family

import (
	"cmp"
	"slices"

	kerrors "github.com/matzehuels/kinship/pkg/errors"
)

// Index is a symmetric, read-only view over a set of persons.
//
// Every declared edge A→B of type T is visible from A as T and from B as the
// inverse of T. Other edges only appear in [Index.Adjacent]. Neighbour lists
// are sorted by ID, so two indexes built from the same persons in different
// orders are indistinguishable.
type Index struct {
	people   []*Person
	byID     map[string]*Person
	typed    map[string]map[RelationType][]string
	adjacent map[string][]string
	dropped  int
}

// NewIndex builds the index for people. It returns an INVALID_INPUT error if
// a person is nil, has a malformed ID, or shares its ID with another person.
//
// Edges pointing at persons outside the set and self references are ignored
// and counted in [Index.Dropped].
func NewIndex(people []*Person) (*Index, error) {
	idx := &Index{
		people:   make([]*Person, 0, len(people)),
		byID:     make(map[string]*Person, len(people)),
		typed:    make(map[string]map[RelationType][]string, len(people)),
		adjacent: make(map[string][]string, len(people)),
	}

	for i, p := range people {
		if p == nil {
			return nil, kerrors.New(kerrors.ErrCodeInvalidInput, "person at position %d is nil", i)
		}
		if err := kerrors.ValidatePersonID(p.ID); err != nil {
			return nil, err
		}
		if _, dup := idx.byID[p.ID]; dup {
			return nil, kerrors.New(kerrors.ErrCodeInvalidInput, "duplicate person id %q", p.ID)
		}
		idx.byID[p.ID] = p
		idx.people = append(idx.people, p)
	}
	slices.SortFunc(idx.people, func(a, b *Person) int { return cmp.Compare(a.ID, b.ID) })

	for _, p := range idx.people {
		for _, rel := range p.Relations {
			if rel.Target == nil || rel.Target.ID == p.ID {
				idx.dropped++
				continue
			}
			if _, ok := idx.byID[rel.Target.ID]; !ok {
				idx.dropped++
				continue
			}
			idx.link(p.ID, rel.Target.ID, rel.Type)
		}
	}

	for id, byType := range idx.typed {
		for t, ids := range byType {
			byType[t] = sortedUnique(ids)
		}
		idx.typed[id] = byType
	}
	for id, ids := range idx.adjacent {
		idx.adjacent[id] = sortedUnique(ids)
	}
	return idx, nil
}

func (idx *Index) link(from, to string, t RelationType) {
	idx.adjacent[from] = append(idx.adjacent[from], to)
	idx.adjacent[to] = append(idx.adjacent[to], from)

	if t == Other {
		return
	}
	idx.addTyped(from, t, to)
	if inv, ok := t.Inverse(); ok {
		idx.addTyped(to, inv, from)
	}
}

func (idx *Index) addTyped(from string, t RelationType, to string) {
	m := idx.typed[from]
	if m == nil {
		m = make(map[RelationType][]string, 4)
		idx.typed[from] = m
	}
	m[t] = append(m[t], to)
}

func sortedUnique(ids []string) []string {
	slices.Sort(ids)
	return slices.Compact(ids)
}

// Len returns the number of indexed persons.
func (idx *Index) Len() int { return len(idx.people) }

// People returns the indexed persons sorted by ID. The slice must not be
// modified.
func (idx *Index) People() []*Person { return idx.people }

// IDs returns all person IDs in ascending order.
func (idx *Index) IDs() []string {
	ids := make([]string, len(idx.people))
	for i, p := range idx.people {
		ids[i] = p.ID
	}
	return ids
}

// Person returns the person with the given ID, or nil.
func (idx *Index) Person(id string) *Person { return idx.byID[id] }

// Has reports whether id is part of the index.
func (idx *Index) Has(id string) bool {
	_, ok := idx.byID[id]
	return ok
}

// Neighbors returns the IDs related to id by type t, sorted. The returned
// slice must not be modified.
func (idx *Index) Neighbors(id string, t RelationType) []string {
	if t == Other {
		return nil
	}
	return idx.typed[id][t]
}

// Parents returns the parents of id, declared or inferred.
func (idx *Index) Parents(id string) []string { return idx.Neighbors(id, Parent) }

// Children returns the children of id, declared or inferred.
func (idx *Index) Children(id string) []string { return idx.Neighbors(id, Child) }

// Spouses returns the spouses of id, declared or inferred.
func (idx *Index) Spouses(id string) []string { return idx.Neighbors(id, Spouse) }

// Siblings returns the declared or inferred siblings of id. Persons that
// merely share a parent are not included.
func (idx *Index) Siblings(id string) []string { return idx.Neighbors(id, Sibling) }

// Adjacent returns every person connected to id by any edge, including
// unclassified ones.
func (idx *Index) Adjacent(id string) []string { return idx.adjacent[id] }

// RelationBetween returns the structural role of b relative to a. When
// several roles apply, spouse wins over parent, child and sibling. The
// boolean is false if a and b share no structural edge.
func (idx *Index) RelationBetween(a, b string) (RelationType, bool) {
	for _, t := range classifyOrder {
		if _, found := slices.BinarySearch(idx.typed[a][t], b); found {
			return t, true
		}
	}
	return Other, false
}

// Dropped returns how many declared edges were ignored because their target
// was missing from the set or pointed back at the source.
func (idx *Index) Dropped() int { return idx.dropped }
