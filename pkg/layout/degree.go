package layout

import (
	"math"
	"slices"

	"github.com/matzehuels/kinship/pkg/family"
)

// Unreachable is the degree of a person with no path to the root.
const Unreachable = math.MaxInt

// Step is one edge on the discovery path from the root. Type is the role of
// ID relative to the previous person on the path.
type Step struct {
	ID   string              `json:"id"`
	Type family.RelationType `json:"type"`
}

// DegreeMap holds the result of a breadth-first traversal from Root.
//
// Only reachable persons have entries. Generation follows the layout sign
// convention: +1 per parent step, -1 per child step.
type DegreeMap struct {
	Root       string
	Degree     map[string]int
	Generation map[string]int
	Path       map[string][]Step
}

// Of returns the degree of id, or [Unreachable].
func (m *DegreeMap) Of(id string) int {
	if d, ok := m.Degree[id]; ok {
		return d
	}
	return Unreachable
}

// Reachable reports whether id is connected to the root.
func (m *DegreeMap) Reachable(id string) bool {
	_, ok := m.Degree[id]
	return ok
}

// ComputeDegrees runs a breadth-first traversal over every edge type of idx,
// starting at root. Neighbours are visited in ID order, so the discovery
// paths are deterministic.
//
// A person is enqueued at most once. If the traversal still dequeues more
// persons than the index holds, an INFINITE_LOOP error is returned.
func ComputeDegrees(idx *family.Index, root string) (*DegreeMap, error) {
	m := &DegreeMap{
		Root:       root,
		Degree:     map[string]int{root: 0},
		Generation: map[string]int{root: 0},
		Path:       map[string][]Step{root: nil},
	}

	queue := []string{root}
	dequeued := 0
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		dequeued++
		if dequeued > idx.Len() {
			return nil, infiniteLoop("degree traversal from %q visited %d persons out of %d", root, dequeued, idx.Len())
		}

		for _, next := range idx.Adjacent(cur) {
			if _, seen := m.Degree[next]; seen {
				continue
			}
			t, _ := idx.RelationBetween(cur, next)
			m.Degree[next] = m.Degree[cur] + 1
			m.Generation[next] = m.Generation[cur] + generationStep(t)
			path := slices.Clone(m.Path[cur])
			m.Path[next] = append(path, Step{ID: next, Type: t})
			queue = append(queue, next)
		}
	}
	return m, nil
}

func generationStep(t family.RelationType) int {
	switch t {
	case family.Parent:
		return 1
	case family.Child:
		return -1
	}
	return 0
}

// DegreeCache memoises degree maps per root across layout runs over the
// same graph. Call [DegreeCache.Invalidate] or [DegreeCache.Reset] when the
// graph changes.
//
// DegreeCache is not safe for concurrent use.
type DegreeCache struct {
	maps map[string]*DegreeMap
	hits int
}

// NewDegreeCache creates an empty cache.
func NewDegreeCache() *DegreeCache {
	return &DegreeCache{maps: make(map[string]*DegreeMap)}
}

// Get returns the cached map for root.
func (c *DegreeCache) Get(root string) (*DegreeMap, bool) {
	m, ok := c.maps[root]
	return m, ok
}

// Put stores m under its root.
func (c *DegreeCache) Put(m *DegreeMap) {
	c.maps[m.Root] = m
}

// Invalidate drops the map for root.
func (c *DegreeCache) Invalidate(root string) {
	delete(c.maps, root)
}

// Reset drops every cached map.
func (c *DegreeCache) Reset() {
	clear(c.maps)
	c.hits = 0
}

// Len returns the number of cached roots.
func (c *DegreeCache) Len() int { return len(c.maps) }

// Hits returns how many lookups were served from the cache since the last
// reset.
func (c *DegreeCache) Hits() int { return c.hits }

// lookup returns the cached map for root or computes and stores it. A nil
// cache always computes.
func (c *DegreeCache) lookup(idx *family.Index, root string) (*DegreeMap, error) {
	if c == nil {
		return ComputeDegrees(idx, root)
	}
	if m, ok := c.maps[root]; ok {
		c.hits++
		return m, nil
	}
	m, err := ComputeDegrees(idx, root)
	if err != nil {
		return nil, err
	}
	c.Put(m)
	return m, nil
}
