package layout

import (
	"cmp"
	"slices"

	"github.com/matzehuels/kinship/pkg/family"
)

// Priority is a queue entry. Lower degrees are placed first; within a
// degree, a higher Bonus wins; ID breaks the remaining ties.
type Priority struct {
	ID     string
	Degree int
	Bonus  int
}

// Direct relation bonuses relative to the root.
const (
	bonusNone    = 0
	bonusOther   = 1
	bonusSibling = 2
	bonusLineal  = 3 // parent or child
	bonusSpouse  = 4
)

// ComparePriority orders two queue entries.
func ComparePriority(a, b Priority) int {
	if c := cmp.Compare(a.Degree, b.Degree); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Bonus, a.Bonus); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// directBonus scores how id relates to root.
func directBonus(idx *family.Index, root, id string) int {
	if t, ok := idx.RelationBetween(root, id); ok {
		switch t {
		case family.Spouse:
			return bonusSpouse
		case family.Parent, family.Child:
			return bonusLineal
		case family.Sibling:
			return bonusSibling
		}
	}
	if _, found := slices.BinarySearch(idx.Adjacent(root), id); found {
		return bonusOther
	}
	return bonusNone
}

// PlacementOrder returns every person except the root, sorted by
// [ComparePriority]. The order is fixed for the whole run.
func PlacementOrder(idx *family.Index, degrees *DegreeMap) []Priority {
	root := degrees.Root
	queue := make([]Priority, 0, idx.Len())
	for _, id := range idx.IDs() {
		if id == root {
			continue
		}
		queue = append(queue, Priority{
			ID:     id,
			Degree: degrees.Of(id),
			Bonus:  directBonus(idx, root, id),
		})
	}
	slices.SortFunc(queue, ComparePriority)
	return queue
}
