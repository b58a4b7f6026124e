package layout

import (
	"slices"
)

// realignLocal tidies the family unit around a freshly placed person. It
// only moves the person's siblings (with their spouses), its parents (with
// theirs) and, for a new parent, the parent's own couple.
func (s *session) realignLocal(id string) {
	s.redistributeSiblings(id)
	s.recenterParents(id)
	s.recenterNewParent(id)
}

// siblingBlock collects the placed siblings of id in its generation: declared
// siblings plus every child of its placed parents, including id itself.
func (s *session) siblingBlock(id string) []string {
	g := s.gen(id)
	set := map[string]bool{id: true}
	for _, sib := range s.inGen(s.idx.Siblings(id), g) {
		set[sib] = true
	}
	for _, p := range s.placedOf(s.idx.Parents(id)) {
		for _, c := range s.inGen(s.idx.Children(p), g) {
			set[c] = true
		}
	}
	block := make([]string, 0, len(set))
	for sib := range set {
		block = append(block, sib)
	}
	slices.SortFunc(block, s.compareAge)
	return block
}

// redistributeSiblings lays the sibling block of id out in age order. Each
// sibling forms a unit with its placed spouses; units are BaseSpacing apart
// and centred under the placed parents. Nothing moves unless the new
// arrangement collides with no other person and leaves every moved spouse
// in its place among its own siblings.
func (s *session) redistributeSiblings(id string) {
	g := s.gen(id)
	parents := s.inGen(s.idx.Parents(id), g+1)
	block := s.siblingBlock(id)
	if len(block) < 2 && len(parents) == 0 {
		return
	}

	inBlock := make(map[string]bool, len(block))
	for _, b := range block {
		inBlock[b] = true
	}

	// Build units: the sibling plus spouses not claimed by another unit,
	// kept in their current left to right order.
	claimed := make(map[string]bool)
	units := make([][]string, 0, len(block))
	for _, b := range block {
		unit := []string{b}
		for _, sp := range s.spousesInGen(b) {
			if !inBlock[sp] && !claimed[sp] {
				claimed[sp] = true
				unit = append(unit, sp)
			}
		}
		slices.SortFunc(unit, s.compareX)
		units = append(units, unit)
	}

	spouseGap := max(s.cfg.SpouseSpacing, s.cfg.MinSpacing)
	unitGap := max(s.cfg.BaseSpacing, s.cfg.MinSpacing)

	next := make(map[string]float64)
	var members []string
	cursor := 0.0
	for i, unit := range units {
		if i > 0 {
			cursor += unitGap
		}
		for j, m := range unit {
			if j > 0 {
				cursor += spouseGap
			}
			next[m] = cursor
			members = append(members, m)
		}
	}

	// Centre the siblings themselves, not their spouses.
	var want float64
	if len(parents) > 0 {
		want = s.centroid(parents)
	} else {
		want = s.centroid(block)
	}
	sum := 0.0
	for _, b := range block {
		sum += next[b]
	}
	offset := want - sum/float64(len(block))

	skip := make(map[string]bool, len(members))
	for _, m := range members {
		skip[m] = true
	}
	// A spouse travels with the unit but must stay on the same side of each
	// of its own siblings.
	kin := make(map[string][]string)
	for _, m := range members {
		if inBlock[m] {
			continue
		}
		for _, o := range s.siblingBlock(m) {
			if !skip[o] {
				kin[m] = append(kin[m], o)
			}
		}
	}
	fits := func(off float64) bool {
		for _, m := range members {
			x := next[m] + off
			if !s.free(g, x, skip) {
				return false
			}
			for _, o := range kin[m] {
				if (s.x(o) < s.x(m)) != (s.x(o) < x) {
					return false
				}
			}
		}
		return true
	}

	if !fits(offset) {
		step := s.cfg.MinSpacing / 4
		limit := 16 * (len(s.rows[g]) + 2)
		found := false
		for i := 1; i <= limit && !found; i++ {
			d := float64(i) * step
			switch {
			case fits(offset + d):
				offset, found = offset+d, true
			case fits(offset - d):
				offset, found = offset-d, true
			}
		}
		if !found {
			s.logger.Debug("sibling block kept", "id", id, "size", len(block))
			return
		}
	}

	for _, m := range members {
		s.slots[m].x = next[m] + offset
	}
}

// recenterParents shifts the placed parents of id, with their spouses, over
// the centroid of all their placed children in id's generation.
func (s *session) recenterParents(id string) {
	g := s.gen(id)
	parents := s.inGen(s.idx.Parents(id), g+1)
	if len(parents) == 0 {
		return
	}
	var children []string
	seen := make(map[string]bool)
	for _, p := range parents {
		for _, c := range s.inGen(s.idx.Children(p), g) {
			if !seen[c] {
				seen[c] = true
				children = append(children, c)
			}
		}
	}
	s.centerCouple(g+1, parents, children)
}

// recenterNewParent shifts a freshly placed parent, with its spouses, over
// its placed children one generation below.
func (s *session) recenterNewParent(id string) {
	g := s.gen(id)
	children := s.inGen(s.idx.Children(id), g-1)
	if len(children) == 0 {
		return
	}
	spouses := s.spousesInGen(id)
	if len(spouses) == 0 && len(s.idx.Spouses(id)) > 0 {
		// Already offset for the spouse that has yet to arrive.
		return
	}
	anchors := []string{id}
	for _, sp := range spouses {
		if len(s.inGen(s.idx.Children(sp), g-1)) > 0 {
			anchors = append(anchors, sp)
		}
	}
	slices.Sort(anchors)
	s.centerCouple(g, anchors, children)
}

// centerCouple moves anchors and their same generation spouses so that the
// anchors' centroid sits over the children's centroid.
func (s *session) centerCouple(g int, anchors, children []string) float64 {
	if len(anchors) == 0 || len(children) == 0 {
		return 0
	}
	members := slices.Clone(anchors)
	for _, a := range anchors {
		for _, sp := range s.spousesInGen(a) {
			if !slices.Contains(members, sp) {
				members = append(members, sp)
			}
		}
	}
	d := s.centroid(children) - s.centroid(anchors)
	return s.shiftGroup(g, members, d)
}
