package family

import (
	"cmp"
	"time"
)

// Person is a member of a family graph.
//
// A Person is owned by the caller and treated as immutable for the duration
// of a layout run. The zero value is not usable: ID must be non-empty.
type Person struct {
	ID      string    // Stable identifier, unique within a graph
	Name    string    // Display name
	Birth   time.Time // Birth date, zero if unknown
	Married time.Time // Marriage date, zero if unknown

	// Relations are the outgoing edges declared on this person, in the
	// order the importer produced them.
	Relations []Relation

	// Virtual marks a placeholder standing in for a relation target that
	// has no full record.
	Virtual bool
}

// HasBirth reports whether the birth date is known.
func (p *Person) HasBirth() bool { return !p.Birth.IsZero() }

// HasMarriage reports whether the marriage date is known.
func (p *Person) HasMarriage() bool { return !p.Married.IsZero() }

// DisplayName returns the name if set, otherwise the ID.
func (p *Person) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.ID
}

// CompareBirth orders two persons oldest first. Persons with a known birth
// date sort before persons without one; two undated persons compare equal so
// callers can fall back to their own tie-break.
func CompareBirth(a, b *Person) int {
	switch {
	case a.HasBirth() && b.HasBirth():
		return a.Birth.Compare(b.Birth)
	case a.HasBirth():
		return -1
	case b.HasBirth():
		return 1
	}
	return 0
}

// CompareMarriage orders two persons by marriage date, earliest first, with
// undated persons last and ties broken by ID.
func CompareMarriage(a, b *Person) int {
	switch {
	case a.HasMarriage() && b.HasMarriage():
		if c := a.Married.Compare(b.Married); c != 0 {
			return c
		}
	case a.HasMarriage():
		return -1
	case b.HasMarriage():
		return 1
	}
	return cmp.Compare(a.ID, b.ID)
}
