package layout

import (
	"cmp"
	"math"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/kinship/pkg/family"
)

// eps absorbs floating point noise in spacing comparisons.
const eps = 1e-9

// slot is the mutable placement state of one person.
type slot struct {
	x        float64
	gen      int
	strategy strategy
}

// session owns all mutable state of a single layout run. Nothing in it
// outlives [Compute].
type session struct {
	cfg     Config
	idx     *family.Index
	degrees *DegreeMap
	root    string
	logger  *log.Logger

	slots map[string]*slot
	order []string         // placement order
	rows  map[int][]string // generation -> placed ids

	relationships map[string]Relationship
	snapshots     [][]NodePosition
}

func newSession(cfg Config, idx *family.Index, degrees *DegreeMap, logger *log.Logger) *session {
	return &session{
		cfg:     cfg,
		idx:     idx,
		degrees: degrees,
		root:    degrees.Root,
		logger:  logger,
		slots:   make(map[string]*slot, idx.Len()),
		order:   make([]string, 0, idx.Len()),
		rows:    make(map[int][]string),
	}
}

func (s *session) placed(id string) bool {
	_, ok := s.slots[id]
	return ok
}

func (s *session) place(id string, gen int, x float64, st strategy) {
	s.slots[id] = &slot{x: x, gen: gen, strategy: st}
	s.order = append(s.order, id)
	s.rows[gen] = append(s.rows[gen], id)
}

func (s *session) x(id string) float64 { return s.slots[id].x }

func (s *session) gen(id string) int { return s.slots[id].gen }

// placedOf filters ids down to placed persons.
func (s *session) placedOf(ids []string) []string {
	var out []string
	for _, id := range ids {
		if s.placed(id) {
			out = append(out, id)
		}
	}
	return out
}

// inGen filters ids down to persons placed in generation g.
func (s *session) inGen(ids []string, g int) []string {
	var out []string
	for _, id := range ids {
		if sl, ok := s.slots[id]; ok && sl.gen == g {
			out = append(out, id)
		}
	}
	return out
}

// row returns the ids placed in generation g sorted left to right.
func (s *session) row(g int) []string {
	ids := slices.Clone(s.rows[g])
	slices.SortFunc(ids, s.compareX)
	return ids
}

// generations returns all occupied generations, lowest first.
func (s *session) generations() []int {
	gens := make([]int, 0, len(s.rows))
	for g := range s.rows {
		gens = append(gens, g)
	}
	slices.Sort(gens)
	return gens
}

func (s *session) compareX(a, b string) int {
	if c := cmp.Compare(s.x(a), s.x(b)); c != 0 {
		return c
	}
	return cmp.Compare(a, b)
}

func (s *session) centroid(ids []string) float64 {
	sum := 0.0
	for _, id := range ids {
		sum += s.x(id)
	}
	return sum / float64(len(ids))
}

// free reports whether x in generation g keeps MinSpacing to every placed
// person not in skip.
func (s *session) free(g int, x float64, skip map[string]bool) bool {
	for _, other := range s.rows[g] {
		if skip[other] {
			continue
		}
		if math.Abs(s.x(other)-x) < s.cfg.MinSpacing-eps {
			return false
		}
	}
	return true
}

// compareAge orders siblings: dated before undated, dated by birth date,
// then by current x, then by id.
func (s *session) compareAge(a, b string) int {
	pa, pb := s.idx.Person(a), s.idx.Person(b)
	if c := family.CompareBirth(pa, pb); c != 0 {
		return c
	}
	return s.compareX(a, b)
}

// spousesInGen returns the placed spouses of id that share its generation.
func (s *session) spousesInGen(id string) []string {
	return s.inGen(s.idx.Spouses(id), s.gen(id))
}

// shiftGroup moves members by d, clamped so that no member comes within
// MinSpacing of, or passes, a non-member in generation g. It returns the
// distance actually moved.
func (s *session) shiftGroup(g int, members []string, d float64) float64 {
	if len(members) == 0 || d == 0 {
		return 0
	}
	in := make(map[string]bool, len(members))
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, id := range members {
		in[id] = true
		lo = min(lo, s.x(id))
		hi = max(hi, s.x(id))
	}

	minD, maxD := math.Inf(-1), math.Inf(1)
	for _, other := range s.rows[g] {
		if in[other] {
			continue
		}
		ox := s.x(other)
		switch {
		case ox < lo:
			minD = max(minD, ox+s.cfg.MinSpacing-lo)
		case ox > hi:
			maxD = min(maxD, ox-s.cfg.MinSpacing-hi)
		default:
			// interleaved with the group: any shift would reorder the row
			return 0
		}
	}
	if minD > maxD {
		return 0
	}
	d = max(minD, min(maxD, d))
	if math.Abs(d) < eps {
		return 0
	}
	for _, id := range members {
		s.slots[id].x += d
	}
	return d
}
