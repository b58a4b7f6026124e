// Package io reads and writes people files, the plain text input of the
// layout engine.
//
// # Overview
//
// A people file lists persons and the relations they declare, plus an
// optional default root. The same document can be written as TOML, YAML or
// JSON; the format is picked from the file extension.
//
//	root = "anna"
//
//	[[people]]
//	id = "anna"
//	name = "Anna Berg"
//	birth = "1960-04-02"
//
//	  [[people.relations]]
//	  label = "Husband"
//	  target = "karl"
//
//	[[people]]
//	id = "karl"
//	name = "Karl Berg"
//	married = "1985-06"
//
// # Fields
//
// Required:
//   - id: unique identifier of the person
//
// Optional:
//   - name: display name
//   - birth, married: dates as YYYY-MM-DD, YYYY-MM or YYYY
//   - relations: list of {label, target}; target is an id or a name
//
// Relation labels are free text and classified by a [family.Classifier].
// Targets that match no person become virtual persons (see
// [family.Builder]).
//
// # Import
//
// Use [ImportPeople] to read a file, or [ReadPeople] to decode any
// io.Reader, then [Document.Build] to obtain the person graph:
//
//	doc, err := io.ImportPeople("family.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	people, err := doc.Build(nil)
//
// # Export
//
// [FromPeople] turns a person graph back into a document, and
// [ExportPeople] or [WritePeople] encode it. Virtual persons are not
// written; relations to them keep the placeholder's name as target, so a
// round trip recreates the same placeholders.
package io
