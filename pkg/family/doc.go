// Package family provides the person and relation model consumed by the
// layout engine.
//
// # Overview
//
// A family graph is a set of [Person] values, each carrying an ordered list of
// outgoing [Relation] edges. A relation is directional: it lives on its source
// person and describes the role of its target ("mother", "son", "wife"). The
// inverse edge is not required to exist; imported contact data frequently
// declares a child on the parent's card and nothing on the child's card.
//
// # Classification
//
// Relation labels are free text. A [Classifier] maps them to the closed set of
// [RelationType] values using a keyword table. The table is data: extend
// [DefaultKeywords] or build a [Classifier] from a custom [Keywords] value to
// support more languages without touching placement logic.
//
//	c := family.NewClassifier(family.DefaultKeywords())
//	c.Classify("Mother")          // family.Parent
//	c.Classify("father-in-law")   // family.Other
//
// # Normalization
//
// [NewIndex] builds a symmetric view of the graph once per layout run. Every
// forward edge is indexed together with a synthesized reverse edge of the
// complementary type (parent↔child, spouse↔spouse, sibling↔sibling). Edges of
// type [Other] only contribute to adjacency. Input persons are never mutated.
//
// # Virtual Persons
//
// A relation target without a full record is represented by an ordinary
// [Person] with Virtual set. [Builder] creates such placeholders with
// deterministic identifiers so repeated imports produce identical graphs.
//
// # Concurrency
//
// Persons and a built [Index] are read-only and safe for concurrent reads.
// [Builder] is not safe for concurrent use.
package family
