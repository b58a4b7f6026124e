package layout

import (
	"math"
	"slices"
)

// moveTolerance is the movement below which a realignment pass counts as
// settled.
const moveTolerance = 1e-6

// cluster is a group of parents in one generation that must move together:
// persons sharing a child, linked by marriage, or both.
type cluster struct {
	anchors  []string // members with children one generation below
	members  []string // anchors plus their spouses in the same generation
	children []string
}

// realignGlobal centres every parent cluster over its children, one
// generation at a time from the lowest parent generation upwards. A
// generation is processed until no cluster moves; more than
// MaxRealignPasses plus the number of clusters passes is reported as an
// INFINITE_LOOP error.
func (s *session) realignGlobal() error {
	for _, g := range s.generations() {
		if _, ok := s.rows[g-1]; !ok {
			continue
		}
		clusters := s.clusters(g)
		if len(clusters) == 0 {
			continue
		}

		limit := s.cfg.MaxRealignPasses + len(clusters)
		settled := false
		for pass := 0; pass < limit; pass++ {
			moved := 0.0
			for _, c := range clusters {
				d := s.centroid(c.children) - s.centroid(c.anchors)
				moved = max(moved, math.Abs(s.shiftGroup(g, c.members, d)))
			}
			if moved < moveTolerance {
				settled = true
				break
			}
		}
		if !settled {
			return infiniteLoop("global realignment of generation %d did not settle after %d passes", g, limit)
		}
	}
	return nil
}

// clusters partitions the parents in generation g. Clusters are returned in
// left to right order of their leftmost member.
func (s *session) clusters(g int) []cluster {
	row := s.row(g)
	parent := make(unionFind, len(row))
	find, union := parent.find, parent.union

	children := make(map[string][]string)
	for _, id := range row {
		if kids := s.inGen(s.idx.Children(id), g-1); len(kids) > 0 {
			children[id] = kids
			parent[id] = id
		}
	}
	if len(children) == 0 {
		return nil
	}

	// Spouses join even when they have no children of their own.
	for _, id := range row {
		if _, ok := parent[id]; ok {
			for _, sp := range s.spousesInGen(id) {
				if _, ok := parent[sp]; !ok {
					parent[sp] = sp
				}
				union(id, sp)
			}
		}
	}
	byChild := make(map[string]string)
	for _, id := range row {
		for _, c := range children[id] {
			if other, ok := byChild[c]; ok {
				union(id, other)
			} else {
				byChild[c] = id
			}
		}
	}

	groups := make(map[string]*cluster)
	var order []string
	for _, id := range row {
		if _, ok := parent[id]; !ok {
			continue
		}
		r := find(id)
		c, ok := groups[r]
		if !ok {
			c = &cluster{}
			groups[r] = c
			order = append(order, r)
		}
		c.members = append(c.members, id)
		if kids, ok := children[id]; ok {
			c.anchors = append(c.anchors, id)
			for _, k := range kids {
				if !slices.Contains(c.children, k) {
					c.children = append(c.children, k)
				}
			}
		}
	}

	out := make([]cluster, 0, len(order))
	for _, r := range order {
		out = append(out, *groups[r])
	}
	return out
}

// unionFind is a disjoint set forest over person ids. Every id must be
// added as its own parent before use. The smaller id becomes the
// representative of a merged set.
type unionFind map[string]string

func (u unionFind) find(id string) string {
	if u[id] != id {
		u[id] = u.find(u[id])
	}
	return u[id]
}

func (u unionFind) union(a, b string) {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return
	}
	if rb < ra {
		ra, rb = rb, ra
	}
	u[rb] = ra
}
