// Package layout computes deterministic family tree coordinates.
//
// # Overview
//
// [Compute] takes a set of [family.Person] values and the id of a root
// person and returns a [Result]: one [NodePosition] per person plus the
// sequence of partial layouts ("snapshots") that shows the tree growing.
//
//	res, err := layout.Compute(people, "anna", layout.Options{})
//	if err != nil {
//	    return err
//	}
//	for _, n := range res.Positions {
//	    fmt.Println(n.Person.ID, n.X, n.Generation)
//	}
//
// # Coordinates
//
// The root is always at (0, 0) in generation 0. Ancestors have positive
// generations and descendants negative ones; Y equals the generation times
// [Config.VerticalSpacing]. Two persons in the same generation are never
// closer than [Config.MinSpacing]. Units are abstract; renderers scale them
// and flip Y if their axis points down.
//
// # Algorithm
//
// A run indexes the graph symmetrically ([family.NewIndex]), computes
// degrees of separation from the root ([ComputeDegrees]) and fixes a
// placement order ([PlacementOrder]): closer relatives first, then spouses,
// lineal relatives, siblings and other contacts, then by id.
//
// The root and its earliest married spouse are placed first. Every other
// person gets a preferred position from the first matching rule:
//
//  1. next to a placed spouse
//  2. centred below placed parents
//  3. centred above placed children
//  4. inside the age ordered block of placed siblings
//  5. next to the closest placed relative
//
// A symmetric outward search then moves the position to the nearest free
// slot, and a local pass re-sorts the sibling block by age and recentres
// the parents. After the queue is drained, parents are recentred over their
// children one generation at a time from the bottom up. Siblings then swap
// positions where needed so that each group reads oldest to youngest, and
// any generation still tighter than MinSpacing is expanded about its
// centroid.
//
// # Determinism
//
// Every ordering decision falls back to person ids, so permuting the input
// slice never changes the result.
//
// # Concurrency
//
// Compute is synchronous and keeps all state in a per-call session. Separate
// calls may run in parallel as long as they do not share a [DegreeCache].
package layout
