package labels

import "strings"

// tables is indexed like Supported.
var tables = []*table{english, german, french, spanish, dutch}

var english = &table{
	words: map[Kind]string{
		Self:        "self",
		Spouse:      "spouse",
		Parent:      "parent",
		Child:       "child",
		Sibling:     "sibling",
		AuntUncle:   "aunt/uncle",
		NieceNephew: "niece/nephew",
		Cousin:      "cousin",
		Relative:    "relative",
		Unrelated:   "unrelated",
	},
	grandparent:      "grandparent",
	grandchild:       "grandchild",
	grandAunt:        "great-aunt/uncle",
	grandNiece:       "great-niece/nephew",
	ancestorPrefix:   "great-",
	descendantPrefix: "great-",
	inLaw:            "%s-in-law",
	cousinDegree:     "%[2]s (degree %[1]d)",
}

var german = &table{
	words: map[Kind]string{
		Self:        "selbst",
		Spouse:      "Ehepartner",
		Parent:      "Elternteil",
		Child:       "Kind",
		Sibling:     "Geschwister",
		AuntUncle:   "Tante/Onkel",
		NieceNephew: "Nichte/Neffe",
		Cousin:      "Cousin",
		Relative:    "Verwandte(r)",
		Unrelated:   "nicht verwandt",
	},
	grandparent:      "Großelternteil",
	grandchild:       "Enkelkind",
	grandAunt:        "Großtante/-onkel",
	grandNiece:       "Großnichte/-neffe",
	ancestorPrefix:   "Ur",
	descendantPrefix: "Ur",
	inLaw:            "%s (angeheiratet)",
	cousinDegree:     "%[2]s %[1]d. Grades",
	// German prefixes lowercase the word they attach to ("Urgroßelternteil").
	ancestorFunc:   lowerAfterPrefix("Ur"),
	descendantFunc: lowerAfterPrefix("Ur"),
}

var french = &table{
	words: map[Kind]string{
		Self:        "soi",
		Spouse:      "conjoint",
		Parent:      "parent",
		Child:       "enfant",
		Sibling:     "frère/sœur",
		AuntUncle:   "oncle/tante",
		NieceNephew: "neveu/nièce",
		Cousin:      "cousin",
		Relative:    "parent éloigné",
		Unrelated:   "sans lien",
	},
	grandparent:      "grand-parent",
	grandchild:       "petit-enfant",
	grandAunt:        "grand-oncle/grand-tante",
	grandNiece:       "petit-neveu/petite-nièce",
	ancestorPrefix:   "arrière-",
	descendantPrefix: "arrière-",
	inLaw:            "%s par alliance",
	cousinDegree:     "%[2]s au %[1]de degré",
}

var spanish = &table{
	words: map[Kind]string{
		Self:        "uno mismo",
		Spouse:      "cónyuge",
		Parent:      "progenitor",
		Child:       "hijo/a",
		Sibling:     "hermano/a",
		AuntUncle:   "tío/a",
		NieceNephew: "sobrino/a",
		Cousin:      "primo/a",
		Relative:    "pariente",
		Unrelated:   "sin parentesco",
	},
	grandparent: "abuelo/a",
	grandchild:  "nieto/a",
	// bisabuelo, tatarabuelo, trastatarabuelo
	ancestorFunc:   spanishGenerations,
	descendantFunc: spanishGenerations,
	lateralFunc:    spanishLateral,
	inLaw:          "%s político/a",
	cousinDegree:   "%[2]s en %[1]d.º grado",
}

var dutch = &table{
	words: map[Kind]string{
		Self:        "zelf",
		Spouse:      "echtgenoot",
		Parent:      "ouder",
		Child:       "kind",
		Sibling:     "broer/zus",
		AuntUncle:   "oom/tante",
		NieceNephew: "neef/nicht",
		Cousin:      "neef/nicht",
		Relative:    "familielid",
		Unrelated:   "niet verwant",
	},
	grandparent:      "grootouder",
	grandchild:       "kleinkind",
	grandAunt:        "oudoom/oudtante",
	grandNiece:       "achterneef/achternicht",
	ancestorPrefix:   "over",
	descendantPrefix: "achter",
	ancestorFunc:     dutchAncestor,
	inLaw:            "aangetrouwde %s",
	cousinDegree:     "%[2]s in de %[1]de graad",
}

func lowerAfterPrefix(prefix string) func(int, string) string {
	return func(extra int, base string) string {
		if extra <= 0 {
			return base
		}
		return strings.Repeat(prefix, extra) + strings.ToLower(base[:1]) + base[1:]
	}
}

func spanishGenerations(extra int, base string) string {
	switch {
	case extra <= 0:
		return base
	case extra == 1:
		return "bis" + base
	case extra == 2:
		return "tatara" + base
	}
	return strings.Repeat("tras", extra-2) + "tatara" + base
}

// tío/a abuelo/a, tío/a bisabuelo/a, sobrino/a nieto/a
func spanishLateral(kind Kind, extra int) string {
	if kind == AuntUncle {
		return "tío/a " + spanishGenerations(extra, "abuelo/a")
	}
	return "sobrino/a " + spanishGenerations(extra, "nieto/a")
}

// overgrootouder, betovergrootouder, oudovergrootouder
func dutchAncestor(extra int, base string) string {
	switch {
	case extra <= 0:
		return base
	case extra == 1:
		return "over" + base
	case extra == 2:
		return "betover" + base
	}
	return strings.Repeat("oud", extra-2) + "over" + base
}
