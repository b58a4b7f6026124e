package labels

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"

	kerrors "github.com/matzehuels/kinship/pkg/errors"
)

// Kind is the structural relationship of a person to the root.
type Kind string

const (
	Self        Kind = "self"
	Spouse      Kind = "spouse"
	Parent      Kind = "parent"
	Child       Kind = "child"
	Sibling     Kind = "sibling"
	Ancestor    Kind = "ancestor"     // grandparent and beyond
	Descendant  Kind = "descendant"   // grandchild and beyond
	AuntUncle   Kind = "aunt-uncle"   // sibling of an ancestor
	NieceNephew Kind = "niece-nephew" // descendant of a sibling
	Cousin      Kind = "cousin"
	Relative    Kind = "relative" // connected, but not by a recognised pattern
	Unrelated   Kind = "unrelated"
)

// Term is a relationship ready to be labelled.
//
// Distance is the number of generations for Ancestor and Descendant (2 is a
// grandparent or grandchild), the number of generations above the root's
// parents for AuntUncle and below the sibling's children for NieceNephew
// (1 is a plain aunt or niece), and the cousin degree for Cousin. Other kinds
// ignore it.
type Term struct {
	Kind     Kind
	Distance int
	InLaw    bool
}

// Supported lists the languages with built-in tables. English is first and
// acts as the fallback.
var Supported = []language.Tag{
	language.English,
	language.German,
	language.French,
	language.Spanish,
	language.Dutch,
}

var matcher = language.NewMatcher(Supported)

// Parse parses a BCP 47 tag. An empty string yields English.
func Parse(s string) (language.Tag, error) {
	if strings.TrimSpace(s) == "" {
		return language.English, nil
	}
	tag, err := language.Parse(s)
	if err != nil {
		return language.Und, kerrors.Wrap(kerrors.ErrCodeInvalidInput, err, "invalid language tag %q", s)
	}
	return tag, nil
}

// Labeler renders terms in a single language. It is immutable and safe for
// concurrent use.
type Labeler struct {
	tag   language.Tag
	table *table
}

// New returns a labeler for the supported language closest to tag.
func New(tag language.Tag) *Labeler {
	_, i, _ := matcher.Match(tag)
	return &Labeler{tag: Supported[i], table: tables[i]}
}

// Tag returns the language actually used.
func (l *Labeler) Tag() language.Tag { return l.tag }

// Label renders t.
func (l *Labeler) Label(t Term) string {
	tb := l.table
	var s string
	switch t.Kind {
	case Ancestor:
		s = tb.up(max(t.Distance, 2)-2, tb.grandparent)
	case Descendant:
		s = tb.down(max(t.Distance, 2)-2, tb.grandchild)
	case AuntUncle, NieceNephew:
		s = tb.lateral(t.Kind, t.Distance)
	case Cousin:
		s = tb.words[Cousin]
		if t.Distance > 1 {
			s = fmt.Sprintf(tb.cousinDegree, t.Distance, s)
		}
	default:
		var ok bool
		if s, ok = tb.words[t.Kind]; !ok {
			s = tb.words[Relative]
		}
	}
	if t.InLaw && t.Kind != Relative && t.Kind != Unrelated {
		s = fmt.Sprintf(tb.inLaw, s)
	}
	return s
}

// table holds the vocabulary for one language.
type table struct {
	words map[Kind]string

	grandparent string
	grandchild  string
	grandAunt   string
	grandNiece  string

	// Prefixes applied once per generation beyond the grand level.
	ancestorPrefix   string
	descendantPrefix string

	// Optional overrides for languages whose prefixes do not simply repeat.
	ancestorFunc   func(extra int, base string) string
	descendantFunc func(extra int, base string) string
	lateralFunc    func(kind Kind, extra int) string

	inLaw        string // fmt pattern taking the plain term
	cousinDegree string // fmt pattern taking the degree and the plain term
}

func (tb *table) up(extra int, base string) string {
	if tb.ancestorFunc != nil {
		return tb.ancestorFunc(extra, base)
	}
	return repeat(tb.ancestorPrefix, extra, base)
}

func (tb *table) down(extra int, base string) string {
	if tb.descendantFunc != nil {
		return tb.descendantFunc(extra, base)
	}
	return repeat(tb.descendantPrefix, extra, base)
}

// lateral renders aunts, uncles, nieces and nephews. Distance 1 is the plain
// word, 2 the grand form, and every further step adds a generation prefix.
func (tb *table) lateral(kind Kind, distance int) string {
	if distance <= 1 {
		return tb.words[kind]
	}
	if tb.lateralFunc != nil {
		return tb.lateralFunc(kind, distance-2)
	}
	if kind == AuntUncle {
		return tb.up(distance-2, tb.grandAunt)
	}
	return tb.down(distance-2, tb.grandNiece)
}

func repeat(prefix string, n int, base string) string {
	if n <= 0 {
		return base
	}
	return strings.Repeat(prefix, n) + base
}
