package io

import (
	"strings"
	"time"

	kerrors "github.com/matzehuels/kinship/pkg/errors"
	"github.com/matzehuels/kinship/pkg/family"
)

// Document is the on-disk representation of a family graph.
type Document struct {
	Root   string         `json:"root,omitempty" toml:"root,omitempty" yaml:"root,omitempty"`
	People []PersonRecord `json:"people" toml:"people" yaml:"people"`
}

// PersonRecord is one person in a [Document].
type PersonRecord struct {
	ID        string           `json:"id" toml:"id" yaml:"id"`
	Name      string           `json:"name,omitempty" toml:"name,omitempty" yaml:"name,omitempty"`
	Birth     string           `json:"birth,omitempty" toml:"birth,omitempty" yaml:"birth,omitempty"`
	Married   string           `json:"married,omitempty" toml:"married,omitempty" yaml:"married,omitempty"`
	Relations []RelationRecord `json:"relations,omitempty" toml:"relations,omitempty" yaml:"relations,omitempty"`
}

// RelationRecord is a relation declared by a person.
type RelationRecord struct {
	Label  string `json:"label" toml:"label" yaml:"label"`
	Target string `json:"target" toml:"target" yaml:"target"`
}

// dateLayouts are tried in order when parsing dates.
var dateLayouts = []string{"2006-01-02", "2006-01", "2006"}

// ParseDate parses a date in one of the accepted layouts. The empty string
// yields the zero time.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, kerrors.New(kerrors.ErrCodeInvalidFormat, "invalid date %q (want YYYY-MM-DD, YYYY-MM or YYYY)", s)
}

// FormatDate renders t in the shortest layout that loses nothing: full
// dates, but only the year for January 1st.
func FormatDate(t time.Time) string {
	switch {
	case t.IsZero():
		return ""
	case t.Month() == time.January && t.Day() == 1:
		return t.Format("2006")
	}
	return t.Format("2006-01-02")
}

// Build resolves the document into linked persons. Labels are classified
// with c; nil selects the default keyword table.
func (d *Document) Build(c *family.Classifier) ([]*family.Person, error) {
	if len(d.People) == 0 {
		return nil, kerrors.New(kerrors.ErrCodeEmptyMemberList, "document lists no people")
	}
	b := family.NewBuilder(c)
	for i, p := range d.People {
		rec, err := p.record()
		if err != nil {
			return nil, kerrors.Wrap(kerrors.GetCode(err), err, "person %d (%s)", i+1, p.ID)
		}
		if err := b.Add(rec); err != nil {
			return nil, err
		}
	}
	return b.Build(), nil
}

func (p PersonRecord) record() (family.Record, error) {
	birth, err := ParseDate(p.Birth)
	if err != nil {
		return family.Record{}, err
	}
	married, err := ParseDate(p.Married)
	if err != nil {
		return family.Record{}, err
	}
	rec := family.Record{ID: p.ID, Name: p.Name, Birth: birth, Married: married}
	for _, r := range p.Relations {
		rec.Relations = append(rec.Relations, family.RecordRelation{Label: r.Label, Target: r.Target})
	}
	return rec, nil
}

// FromPeople converts a person graph into a document. Virtual persons are
// skipped; relations pointing at them use the placeholder name.
func FromPeople(people []*family.Person, root string) *Document {
	doc := &Document{Root: root}
	for _, p := range people {
		if p.Virtual {
			continue
		}
		rec := PersonRecord{
			ID:      p.ID,
			Name:    p.Name,
			Birth:   FormatDate(p.Birth),
			Married: FormatDate(p.Married),
		}
		for _, r := range p.Relations {
			if r.Target == nil {
				continue
			}
			target := r.Target.ID
			if r.Target.Virtual {
				target = r.Target.DisplayName()
			}
			rec.Relations = append(rec.Relations, RelationRecord{Label: r.Label, Target: target})
		}
		doc.People = append(doc.People, rec)
	}
	return doc
}
