package family

import (
	"strings"
	"time"

	"github.com/google/uuid"

	kerrors "github.com/matzehuels/kinship/pkg/errors"
)

// VirtualNamespace is the UUID namespace used to derive identifiers for
// virtual persons. The same target text always yields the same identifier.
var VirtualNamespace = uuid.MustParse("0b7f8f52-3b8e-5a4c-9d0e-6c1a2f4b9e17")

// Record is the flat, importer-facing description of a person. Relations
// reference their targets by ID or, failing that, by display name.
type Record struct {
	ID        string
	Name      string
	Birth     time.Time
	Married   time.Time
	Relations []RecordRelation
}

// RecordRelation is a relation whose target has not been resolved yet.
type RecordRelation struct {
	Label  string
	Target string
}

// Builder resolves records into a linked person graph.
//
// Targets are resolved by ID first, then by a unique case-insensitive name
// match. Anything else becomes a virtual person. Builder is not safe for
// concurrent use.
type Builder struct {
	classifier *Classifier
	records    []Record
	ids        map[string]bool
}

// NewBuilder creates a builder that classifies labels with c.
// A nil classifier uses the default keyword table.
func NewBuilder(c *Classifier) *Builder {
	if c == nil {
		c = defaultClassifier
	}
	return &Builder{classifier: c, ids: make(map[string]bool)}
}

// Add queues a record. It returns an INVALID_INPUT error for malformed or
// duplicate IDs.
func (b *Builder) Add(r Record) error {
	if err := kerrors.ValidatePersonID(r.ID); err != nil {
		return err
	}
	if b.ids[r.ID] {
		return kerrors.New(kerrors.ErrCodeInvalidInput, "duplicate person id %q", r.ID)
	}
	b.ids[r.ID] = true
	b.records = append(b.records, r)
	return nil
}

// Len returns the number of queued records.
func (b *Builder) Len() int { return len(b.records) }

// Build links all queued records. Persons are returned in record order,
// followed by virtual persons in order of first reference.
func (b *Builder) Build() []*Person {
	people := make([]*Person, len(b.records))
	byID := make(map[string]*Person, len(b.records))
	byName := make(map[string][]*Person)

	for i, r := range b.records {
		p := &Person{ID: r.ID, Name: r.Name, Birth: r.Birth, Married: r.Married}
		people[i] = p
		byID[p.ID] = p
		if r.Name != "" {
			key := strings.ToLower(strings.TrimSpace(r.Name))
			byName[key] = append(byName[key], p)
		}
	}

	virtual := make(map[string]*Person)
	var virtualOrder []*Person

	resolve := func(target string) *Person {
		if p, ok := byID[target]; ok {
			return p
		}
		key := strings.ToLower(strings.TrimSpace(target))
		if matches := byName[key]; len(matches) == 1 {
			return matches[0]
		}
		if p, ok := virtual[key]; ok {
			return p
		}
		p := &Person{
			ID:      VirtualID(target),
			Name:    strings.TrimSpace(target),
			Virtual: true,
		}
		virtual[key] = p
		virtualOrder = append(virtualOrder, p)
		return p
	}

	for i, r := range b.records {
		p := people[i]
		for _, rel := range r.Relations {
			if strings.TrimSpace(rel.Target) == "" {
				continue
			}
			target := resolve(rel.Target)
			if target == p {
				continue
			}
			p.Relations = append(p.Relations, NewRelation(rel.Label, target, b.classifier))
		}
	}

	return append(people, virtualOrder...)
}

// VirtualID returns the deterministic identifier for a placeholder that
// stands in for target.
func VirtualID(target string) string {
	key := strings.ToLower(strings.TrimSpace(target))
	return uuid.NewSHA1(VirtualNamespace, []byte(key)).String()
}
