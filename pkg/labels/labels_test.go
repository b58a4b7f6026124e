package labels

import (
	"testing"

	"golang.org/x/text/language"
)

func TestLabel(t *testing.T) {
	tests := []struct {
		tag  language.Tag
		term Term
		want string
	}{
		{language.English, Term{Kind: Parent}, "parent"},
		{language.English, Term{Kind: Ancestor, Distance: 2}, "grandparent"},
		{language.English, Term{Kind: Ancestor, Distance: 4}, "great-great-grandparent"},
		{language.English, Term{Kind: Descendant, Distance: 3}, "great-grandchild"},
		{language.English, Term{Kind: AuntUncle, Distance: 1}, "aunt/uncle"},
		{language.English, Term{Kind: AuntUncle, Distance: 2}, "great-aunt/uncle"},
		{language.English, Term{Kind: Cousin, Distance: 1}, "cousin"},
		{language.English, Term{Kind: Cousin, Distance: 2}, "cousin (degree 2)"},
		{language.English, Term{Kind: Parent, InLaw: true}, "parent-in-law"},
		{language.English, Term{Kind: Relative, InLaw: true}, "relative"},
		{language.German, Term{Kind: Ancestor, Distance: 3}, "Urgroßelternteil"},
		{language.German, Term{Kind: Descendant, Distance: 3}, "Urenkelkind"},
		{language.German, Term{Kind: AuntUncle, Distance: 3}, "Urgroßtante/-onkel"},
		{language.German, Term{Kind: Cousin, Distance: 2}, "Cousin 2. Grades"},
		{language.French, Term{Kind: Ancestor, Distance: 3}, "arrière-grand-parent"},
		{language.French, Term{Kind: Child, InLaw: true}, "enfant par alliance"},
		{language.Spanish, Term{Kind: Ancestor, Distance: 3}, "bisabuelo/a"},
		{language.Spanish, Term{Kind: Ancestor, Distance: 4}, "tatarabuelo/a"},
		{language.Spanish, Term{Kind: AuntUncle, Distance: 2}, "tío/a abuelo/a"},
		{language.Dutch, Term{Kind: Ancestor, Distance: 4}, "betovergrootouder"},
		{language.Dutch, Term{Kind: Descendant, Distance: 3}, "achterkleinkind"},
	}

	for _, tt := range tests {
		got := New(tt.tag).Label(tt.term)
		if got != tt.want {
			t.Errorf("Label(%s, %+v) = %q, want %q", tt.tag, tt.term, got, tt.want)
		}
	}
}

func TestNewFallsBack(t *testing.T) {
	tests := []struct {
		tag  language.Tag
		want language.Tag
	}{
		{language.MustParse("de-CH"), language.German},
		{language.BritishEnglish, language.English},
		{language.Japanese, language.English},
		{language.Und, language.English},
	}
	for _, tt := range tests {
		if got := New(tt.tag).Tag(); got != tt.want {
			t.Errorf("New(%s).Tag() = %s, want %s", tt.tag, got, tt.want)
		}
	}
}

func TestEveryTableCoversEveryKind(t *testing.T) {
	kinds := []Kind{Self, Spouse, Parent, Child, Sibling, AuntUncle, NieceNephew, Cousin, Relative, Unrelated}
	for i, tb := range tables {
		for _, k := range kinds {
			if tb.words[k] == "" {
				t.Errorf("%s: missing word for %s", Supported[i], k)
			}
		}
		if tb.grandparent == "" || tb.grandchild == "" {
			t.Errorf("%s: missing grand terms", Supported[i])
		}
	}
}

func TestParse(t *testing.T) {
	tag, err := Parse("")
	if err != nil || tag != language.English {
		t.Fatalf("Parse(\"\") = %s, %v", tag, err)
	}
	tag, err = Parse("fr-CA")
	if err != nil {
		t.Fatalf("Parse(fr-CA): %v", err)
	}
	if New(tag).Tag() != language.French {
		t.Errorf("fr-CA resolved to %s", New(tag).Tag())
	}
	if _, err := Parse("not a tag!"); err == nil {
		t.Error("expected error for malformed tag")
	}
}
