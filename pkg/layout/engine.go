package layout

import (
	"io"
	"slices"

	"github.com/charmbracelet/log"
	"golang.org/x/text/language"

	kerrors "github.com/matzehuels/kinship/pkg/errors"
	"github.com/matzehuels/kinship/pkg/family"
	"github.com/matzehuels/kinship/pkg/labels"
)

// Options configures [Compute].
type Options struct {
	// Config holds spacing values. Zero fields use their defaults.
	Config Config

	// Language selects the relationship labels. The zero value is English.
	Language language.Tag

	// Degrees, if set, memoises degree maps per root across runs. The caller
	// must invalidate it when the graph changes.
	Degrees *DegreeCache

	// Logger receives debug output. Nil discards it.
	Logger *log.Logger
}

// Result is a complete layout.
type Result struct {
	Root string

	// Positions holds one entry per input person in placement order.
	Positions []NodePosition

	// Snapshots is the growth sequence: the root with its first spouse, one
	// entry per further placement, and the final layout unless it equals
	// the last entry.
	Snapshots [][]NodePosition

	Degrees *DegreeMap
	Config  Config
}

// Position returns the final position of id.
func (r *Result) Position(id string) (NodePosition, bool) {
	for _, p := range r.Positions {
		if p.Person.ID == id {
			return p, true
		}
	}
	return NodePosition{}, false
}

var discardLogger = log.New(io.Discard)

// Compute lays out people around the person with id rootID.
//
// The result depends only on the set of persons, not on their order in the
// slice. Persons are never modified. Compute returns one of the following
// coded errors instead of a layout:
//
//   - EMPTY_MEMBER_LIST if people is empty
//   - ROOT_NOT_FOUND if rootID is not among people
//   - PLACEMENT_FAILED (wrapping a [PlacementError]) if a person cannot be
//     given a free slot
//   - INFINITE_LOOP (wrapping a [LoopError]) if a traversal or realignment
//     exceeds its bound
//
// Malformed input (nil persons, duplicate ids) and unusable configuration
// values are reported as INVALID_INPUT and INVALID_CONFIG.
func Compute(people []*family.Person, rootID string, opts Options) (*Result, error) {
	if len(people) == 0 {
		return nil, kerrors.New(kerrors.ErrCodeEmptyMemberList, "no persons to lay out")
	}
	idx, err := family.NewIndex(people)
	if err != nil {
		return nil, err
	}
	if !idx.Has(rootID) {
		return nil, kerrors.New(kerrors.ErrCodeRootNotFound, "root %q is not among the %d persons", rootID, idx.Len())
	}

	cfg := opts.Config.WithDefaults()
	if err := cfg.check(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = discardLogger
	}

	degrees, err := opts.Degrees.lookup(idx, rootID)
	if err != nil {
		return nil, err
	}

	s := newSession(cfg, idx, degrees, logger)
	s.describeAll(labels.New(opts.Language))

	queued := s.placeRoot()
	s.record()

	for _, p := range PlacementOrder(idx, degrees) {
		if s.placed(p.ID) {
			continue
		}
		t := s.resolve(p.ID)
		x, err := s.resolveCollision(p.ID, t.gen, t.x)
		if err != nil {
			return nil, err
		}
		s.place(p.ID, t.gen, x, t.strategy)
		s.realignLocal(p.ID)
		s.record()
		logger.Debug("placed person", "id", p.ID, "strategy", t.strategy, "generation", t.gen, "x", x, "degree", p.Degree)
	}

	if err := s.realignGlobal(); err != nil {
		return nil, err
	}
	s.orderSiblings()
	if err := s.expandCrowded(); err != nil {
		return nil, err
	}

	final := s.positions()
	s.recordFinal(final)

	logger.Debug("layout complete",
		"root", rootID,
		"persons", len(final),
		"snapshots", len(s.snapshots),
		"generations", len(s.rows),
		"root_spouse", queued,
		"dropped_edges", idx.Dropped())

	return &Result{
		Root:      rootID,
		Positions: final,
		Snapshots: s.snapshots,
		Degrees:   degrees,
		Config:    cfg,
	}, nil
}

// placeRoot puts the root at the origin and its earliest married spouse
// right next to it. It returns the id of that spouse, or "".
func (s *session) placeRoot() string {
	s.place(s.root, 0, 0, strategyRoot)

	spouses := slices.Clone(s.idx.Spouses(s.root))
	if len(spouses) == 0 {
		return ""
	}
	slices.SortFunc(spouses, s.compareMarriage)
	sp := spouses[0]
	s.place(sp, 0, s.cfg.SpouseSpacing, strategyRootSpouse)
	return sp
}

func (s *session) describeAll(l *labels.Labeler) {
	s.relationships = make(map[string]Relationship, s.idx.Len())
	for _, id := range s.idx.IDs() {
		s.relationships[id] = Describe(s.degrees, id, l)
	}
}
