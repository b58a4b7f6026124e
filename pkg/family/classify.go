package family

import (
	"slices"
	"strings"
	"unicode"
)

// Keywords is the configuration table that drives label classification.
//
// Labels are lowercased and split into word tokens. If any token appears in
// Exclude the label is classified as [Other]; otherwise the first type (in
// the order spouse, parent, child, sibling) with a matching token wins.
// Matching is per whole token, so "grandfather" does not match "father".
type Keywords struct {
	Types   map[RelationType][]string
	Exclude []string
}

// KeywordsFromNames builds a table from type names as they appear in
// configuration files ("parent", "child", ...). Unknown names are ignored.
func KeywordsFromNames(types map[string][]string, exclude []string) Keywords {
	k := Keywords{Types: make(map[RelationType][]string, len(types)), Exclude: slices.Clone(exclude)}
	for name, words := range types {
		t := ParseRelationType(strings.ToLower(name))
		if t == Other {
			continue
		}
		k.Types[t] = append(k.Types[t], words...)
	}
	return k
}

// classifyOrder is the precedence used when a label contains tokens for
// more than one type ("husband and father" is a spouse).
var classifyOrder = []RelationType{Spouse, Parent, Child, Sibling}

// DefaultKeywords returns the built-in table covering English, German,
// French, Spanish and Dutch labels. The returned value is a fresh copy.
func DefaultKeywords() Keywords {
	return Keywords{
		Types: map[RelationType][]string{
			Parent: {
				"parent", "father", "mother", "dad", "daddy", "mom", "mommy", "mum", "mama", "papa",
				"stepfather", "stepmother", "stepparent",
				"vater", "mutter", "elternteil",
				"père", "mère",
				"padre", "madre",
				"vader", "moeder", "ouder",
			},
			Child: {
				"child", "son", "daughter", "kid", "stepson", "stepdaughter", "stepchild",
				"kind", "sohn", "tochter",
				"enfant", "fils", "fille",
				"hijo", "hija",
				"zoon", "dochter",
			},
			Spouse: {
				"spouse", "husband", "wife", "partner", "married",
				"ehemann", "ehefrau", "ehepartner", "gatte", "gattin",
				"époux", "épouse", "mari",
				"esposo", "esposa", "marido",
				"echtgenoot", "echtgenote",
			},
			Sibling: {
				"sibling", "brother", "sister",
				"bruder", "schwester", "geschwister",
				"frère", "sœur", "soeur",
				"hermano", "hermana",
				"broer", "zus", "zuster",
			},
		},
		Exclude: []string{"law", "grand", "great", "god", "beau", "belle", "petit", "petite", "arrière"},
	}
}

// Merge returns a table containing the keywords of k followed by those of
// extra. Duplicates are dropped.
func (k Keywords) Merge(extra Keywords) Keywords {
	out := Keywords{Types: make(map[RelationType][]string, len(k.Types))}
	for _, t := range Types {
		words := append(slices.Clone(k.Types[t]), extra.Types[t]...)
		if len(words) > 0 {
			out.Types[t] = dedupe(words)
		}
	}
	out.Exclude = dedupe(append(slices.Clone(k.Exclude), extra.Exclude...))
	return out
}

// Classifier maps free-text relation labels to relation types.
// A Classifier is immutable after construction and safe for concurrent use.
type Classifier struct {
	types   map[string]RelationType
	exclude map[string]bool
}

var defaultClassifier = NewClassifier(DefaultKeywords())

// DefaultClassifier returns the classifier built from [DefaultKeywords].
func DefaultClassifier() *Classifier { return defaultClassifier }

// NewClassifier builds a classifier from a keyword table.
// When a keyword is listed under several types, the earliest type in
// precedence order keeps it.
func NewClassifier(k Keywords) *Classifier {
	c := &Classifier{
		types:   make(map[string]RelationType),
		exclude: make(map[string]bool, len(k.Exclude)),
	}
	for _, t := range classifyOrder {
		for _, w := range k.Types[t] {
			w = strings.ToLower(w)
			if _, taken := c.types[w]; !taken {
				c.types[w] = t
			}
		}
	}
	for _, w := range k.Exclude {
		c.exclude[strings.ToLower(w)] = true
	}
	return c
}

// Classify returns the relation type for label.
func (c *Classifier) Classify(label string) RelationType {
	tokens := tokenize(label)
	for _, tok := range tokens {
		if c.exclude[tok] {
			return Other
		}
	}

	best, found := Other, false
	for _, tok := range tokens {
		t, ok := c.types[tok]
		if !ok {
			continue
		}
		if !found || precedence(t) < precedence(best) {
			best, found = t, true
		}
	}
	return best
}

func precedence(t RelationType) int {
	if i := slices.Index(classifyOrder, t); i >= 0 {
		return i
	}
	return len(classifyOrder)
}

// tokenize lowercases s and splits it on everything that is not a letter or
// digit. vCard style labels such as "_$!<Mother>!$_" yield ["mother"].
func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func dedupe(words []string) []string {
	seen := make(map[string]bool, len(words))
	out := words[:0]
	for _, w := range words {
		w = strings.ToLower(w)
		if !seen[w] {
			seen[w] = true
			out = append(out, w)
		}
	}
	return out
}
