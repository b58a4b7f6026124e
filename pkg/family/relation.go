package family

// RelationType is the classified role of a relation target relative to the
// source person.
type RelationType int

const (
	// Other covers every label that is not one of the four structural types
	// (friends, in-laws, godparents, unrecognised text).
	Other RelationType = iota
	// Parent means the target is a parent of the source.
	Parent
	// Child means the target is a child of the source.
	Child
	// Spouse means the target is married or partnered to the source.
	Spouse
	// Sibling means the target shares parents with the source.
	Sibling
)

// Types lists the relation types in a fixed order.
var Types = []RelationType{Parent, Child, Spouse, Sibling, Other}

var typeNames = map[RelationType]string{
	Parent:  "parent",
	Child:   "child",
	Spouse:  "spouse",
	Sibling: "sibling",
	Other:   "other",
}

// String returns the lowercase name of the type.
func (t RelationType) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return "other"
}

// ParseRelationType converts a type name back into a RelationType.
// Unknown names map to Other.
func ParseRelationType(s string) RelationType {
	for t, name := range typeNames {
		if name == s {
			return t
		}
	}
	return Other
}

// Inverse returns the complementary type used for synthesized reverse edges.
// Other has no structural inverse and reports false.
func (t RelationType) Inverse() (RelationType, bool) {
	switch t {
	case Parent:
		return Child, true
	case Child:
		return Parent, true
	case Spouse:
		return Spouse, true
	case Sibling:
		return Sibling, true
	}
	return Other, false
}

// Relation is a directional edge from the person that declares it to Target.
type Relation struct {
	Label  string       // Free-text label as imported ("Mother", "Sohn")
	Target *Person      // Never nil in a well-formed graph
	Type   RelationType // Derived from Label by a Classifier
}

// NewRelation builds a relation and classifies its label with c.
// A nil classifier uses the default keyword table.
func NewRelation(label string, target *Person, c *Classifier) Relation {
	if c == nil {
		c = defaultClassifier
	}
	return Relation{Label: label, Target: target, Type: c.Classify(label)}
}
