package family

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	c := DefaultClassifier()

	tests := []struct {
		label string
		want  RelationType
	}{
		{"Mother", Parent},
		{"father", Parent},
		{"_$!<Mother>!$_", Parent},
		{"Son", Child},
		{"Tochter", Child},
		{"fille", Child},
		{"Wife", Spouse},
		{"Ehemann", Spouse},
		{"époux", Spouse},
		{"Brother", Sibling},
		{"Schwester", Sibling},
		{"hermana", Sibling},
		{"Father-in-law", Other},
		{"grand mother", Other},
		{"Grandfather", Other},
		{"great aunt", Other},
		{"beau-père", Other},
		{"Friend", Other},
		{"", Other},
		{"husband and father", Spouse},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.label))
		})
	}
}

func TestClassifierCustomKeywords(t *testing.T) {
	extra := KeywordsFromNames(map[string][]string{
		"parent":  {"Mormor"},
		"sibling": {"syster"},
		"bogus":   {"ignored"},
	}, []string{"step"})

	c := NewClassifier(DefaultKeywords().Merge(extra))

	assert.Equal(t, Parent, c.Classify("mormor"))
	assert.Equal(t, Sibling, c.Classify("Syster"))
	assert.Equal(t, Other, c.Classify("ignored"))
	assert.Equal(t, Other, c.Classify("step mother"))
	assert.Equal(t, Parent, c.Classify("stepmother"))
}

func TestKeywordsMergeDedupes(t *testing.T) {
	base := Keywords{Types: map[RelationType][]string{Parent: {"mother"}}}
	merged := base.Merge(Keywords{Types: map[RelationType][]string{Parent: {"Mother", "papa"}}})

	assert.Equal(t, []string{"mother", "papa"}, merged.Types[Parent])
	assert.Equal(t, []string{"mother"}, base.Types[Parent])
}

func TestRelationTypeInverse(t *testing.T) {
	tests := []struct {
		in   RelationType
		want RelationType
		ok   bool
	}{
		{Parent, Child, true},
		{Child, Parent, true},
		{Spouse, Spouse, true},
		{Sibling, Sibling, true},
		{Other, Other, false},
	}
	for _, tt := range tests {
		got, ok := tt.in.Inverse()
		assert.Equal(t, tt.ok, ok, tt.in.String())
		assert.Equal(t, tt.want, got, tt.in.String())
	}
}

func TestParseRelationType(t *testing.T) {
	for _, rt := range Types {
		assert.Equal(t, rt, ParseRelationType(rt.String()))
	}
	assert.Equal(t, Other, ParseRelationType("cousin"))
}
