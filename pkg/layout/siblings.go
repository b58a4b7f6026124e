package layout

import "slices"

// orderSiblings puts every sibling group into age order. Members of a group
// trade positions among themselves, so each generation keeps exactly the
// positions it had and spacing is unaffected.
//
// A group joins everybody in one generation who shares a parent or a
// declared sibling edge, so half siblings on both sides end up ordered too.
func (s *session) orderSiblings() {
	for _, g := range s.generations() {
		for _, group := range s.siblingGroups(g) {
			xs := make([]float64, len(group))
			for i, id := range group {
				xs[i] = s.x(id)
			}
			slices.Sort(xs)
			slices.SortFunc(group, s.compareAge)

			swapped := 0
			for i, id := range group {
				if s.slots[id].x != xs[i] {
					s.slots[id].x = xs[i]
					swapped++
				}
			}
			if swapped > 0 {
				s.logger.Debug("reordered siblings", "generation", g, "group", group, "moved", swapped)
			}
		}
	}
}

// siblingGroups partitions the persons of generation g that have at least
// one sibling there. Groups come in left to right order of their leftmost
// member, each sorted left to right.
func (s *session) siblingGroups(g int) [][]string {
	row := s.row(g)
	sets := make(unionFind, len(row))
	for _, id := range row {
		sets[id] = id
	}
	for _, id := range row {
		for _, sib := range s.inGen(s.idx.Siblings(id), g) {
			sets.union(id, sib)
		}
		for _, p := range s.idx.Parents(id) {
			for _, c := range s.inGen(s.idx.Children(p), g) {
				sets.union(id, c)
			}
		}
	}

	byRoot := make(map[string][]string)
	var order []string
	for _, id := range row {
		r := sets.find(id)
		if _, ok := byRoot[r]; !ok {
			order = append(order, r)
		}
		byRoot[r] = append(byRoot[r], id)
	}

	var groups [][]string
	for _, r := range order {
		if len(byRoot[r]) > 1 {
			groups = append(groups, byRoot[r])
		}
	}
	return groups
}
