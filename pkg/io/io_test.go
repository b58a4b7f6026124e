package io

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	kerrors "github.com/matzehuels/kinship/pkg/errors"
	"github.com/matzehuels/kinship/pkg/family"
)

const tomlDoc = `
root = "anna"

[[people]]
id = "anna"
name = "Anna Berg"
birth = "1960-04-02"

  [[people.relations]]
  label = "Husband"
  target = "karl"

  [[people.relations]]
  label = "Mother"
  target = "Greta Lind"

[[people]]
id = "karl"
name = "Karl Berg"
married = "1985"
`

const yamlDoc = `
root: anna
people:
  - id: anna
    name: Anna Berg
    birth: "1960-04-02"
    relations:
      - label: Husband
        target: karl
      - label: Mother
        target: Greta Lind
  - id: karl
    name: Karl Berg
    married: "1985"
`

const jsonDoc = `{
  "root": "anna",
  "people": [
    {"id": "anna", "name": "Anna Berg", "birth": "1960-04-02",
     "relations": [{"label": "Husband", "target": "karl"}, {"label": "Mother", "target": "Greta Lind"}]},
    {"id": "karl", "name": "Karl Berg", "married": "1985"}
  ]
}`

func TestReadPeople(t *testing.T) {
	inputs := map[Format]string{FormatTOML: tomlDoc, FormatYAML: yamlDoc, FormatJSON: jsonDoc}
	for f, src := range inputs {
		t.Run(string(f), func(t *testing.T) {
			doc, err := ReadPeople(strings.NewReader(src), f)
			if err != nil {
				t.Fatalf("ReadPeople: %v", err)
			}
			if doc.Root != "anna" || len(doc.People) != 2 {
				t.Fatalf("got root %q with %d people", doc.Root, len(doc.People))
			}

			people, err := doc.Build(nil)
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			if len(people) != 3 {
				t.Fatalf("got %d people, want 3 (one virtual)", len(people))
			}
			anna := people[0]
			if !anna.Birth.Equal(time.Date(1960, 4, 2, 0, 0, 0, 0, time.UTC)) {
				t.Errorf("birth = %v", anna.Birth)
			}
			if anna.Relations[0].Type != family.Spouse || anna.Relations[0].Target != people[1] {
				t.Errorf("first relation = %+v", anna.Relations[0])
			}
			if greta := anna.Relations[1].Target; !greta.Virtual || greta.Name != "Greta Lind" {
				t.Errorf("second relation target = %+v", greta)
			}
			if people[1].Married.Year() != 1985 {
				t.Errorf("married = %v", people[1].Married)
			}
		})
	}
}

func TestReadPeopleErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		f    Format
		code kerrors.Code
	}{
		{"malformed toml", "[[people]\nid=", FormatTOML, kerrors.ErrCodeInvalidFormat},
		{"malformed json", "{", FormatJSON, kerrors.ErrCodeInvalidFormat},
		{"unknown json field", `{"persons": []}`, FormatJSON, kerrors.ErrCodeInvalidFormat},
		{"empty yaml", "", FormatYAML, kerrors.ErrCodeEmptyMemberList},
		{"unknown format", "", Format("xml"), kerrors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadPeople(strings.NewReader(tt.src), tt.f)
			if !kerrors.Is(err, tt.code) {
				t.Errorf("got %v, want %s", err, tt.code)
			}
		})
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
		code kerrors.Code
	}{
		{"no people", Document{}, kerrors.ErrCodeEmptyMemberList},
		{"bad date", Document{People: []PersonRecord{{ID: "a", Birth: "april"}}}, kerrors.ErrCodeInvalidFormat},
		{"duplicate", Document{People: []PersonRecord{{ID: "a"}, {ID: "a"}}}, kerrors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.doc.Build(nil)
			if !kerrors.Is(err, tt.code) {
				t.Errorf("got %v, want %s", err, tt.code)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"", time.Time{}},
		{"1999", time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"1999-07", time.Date(1999, 7, 1, 0, 0, 0, 0, time.UTC)},
		{" 1999-07-14 ", time.Date(1999, 7, 14, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := ParseDate(tt.in)
		if err != nil || !got.Equal(tt.want) {
			t.Errorf("ParseDate(%q) = %v, %v", tt.in, got, err)
		}
	}
	if _, err := ParseDate("14.07.1999"); err == nil {
		t.Error("expected error for dotted date")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	doc, err := ReadPeople(strings.NewReader(tomlDoc), FormatTOML)
	if err != nil {
		t.Fatal(err)
	}
	people, err := doc.Build(nil)
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	for _, name := range []string{"out.toml", "out.yaml", "out.json"} {
		path := filepath.Join(dir, name)
		if err := ExportPeople(FromPeople(people, "anna"), path); err != nil {
			t.Fatalf("export %s: %v", name, err)
		}
		back, err := ImportPeople(path)
		if err != nil {
			t.Fatalf("import %s: %v", name, err)
		}
		again, err := back.Build(nil)
		if err != nil {
			t.Fatalf("build %s: %v", name, err)
		}
		if len(again) != len(people) {
			t.Errorf("%s: %d people after round trip, want %d", name, len(again), len(people))
		}
		if again[2].ID != people[2].ID {
			t.Errorf("%s: virtual id changed from %s to %s", name, people[2].ID, again[2].ID)
		}
	}
}

func TestImportPeopleMissingFile(t *testing.T) {
	_, err := ImportPeople(filepath.Join(t.TempDir(), "nope.toml"))
	if !kerrors.Is(err, kerrors.ErrCodeFileNotFound) {
		t.Errorf("got %v, want FILE_NOT_FOUND", err)
	}
	_, err = ImportPeople("family.csv")
	if !kerrors.Is(err, kerrors.ErrCodeInvalidFormat) {
		t.Errorf("got %v, want INVALID_FORMAT", err)
	}
}

func TestWritePeopleYAML(t *testing.T) {
	var buf bytes.Buffer
	doc := &Document{Root: "a", People: []PersonRecord{{ID: "a", Birth: "2001"}}}
	if err := WritePeople(&buf, doc, FormatYAML); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "root: a") || !strings.Contains(buf.String(), `birth: "2001"`) {
		t.Errorf("unexpected yaml:\n%s", buf.String())
	}
}
