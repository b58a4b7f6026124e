package pipeline

import (
	"encoding/json"

	"github.com/matzehuels/kinship/pkg/cache"
	kerrors "github.com/matzehuels/kinship/pkg/errors"
	"github.com/matzehuels/kinship/pkg/family"
	kio "github.com/matzehuels/kinship/pkg/io"
)

// Input is a people document resolved into linked persons.
type Input struct {
	// Source names where the document came from: a path or "request".
	Source   string
	Document *kio.Document
	People   []*family.Person

	// Hash identifies the document together with the relation keywords it
	// was read with. Equal hashes mean equal person graphs.
	Hash string
}

// LoadFile reads and resolves the people file at path.
func LoadFile(path string, rel Relations) (*Input, error) {
	doc, err := kio.ImportPeople(path)
	if err != nil {
		return nil, err
	}
	return LoadDocument(doc, path, rel)
}

// LoadDocument resolves doc. Relation labels are classified with the
// default keywords extended by rel.
func LoadDocument(doc *kio.Document, source string, rel Relations) (*Input, error) {
	if doc == nil {
		return nil, kerrors.New(kerrors.ErrCodeEmptyMemberList, "no document")
	}
	people, err := doc.Build(rel.Classifier())
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, kerrors.Wrap(kerrors.ErrCodeInternal, err, "encode document")
	}
	if h := relationsHash(rel); h != "" {
		data = append(data, h...)
	}
	return &Input{
		Source:   source,
		Document: doc,
		People:   people,
		Hash:     cache.Hash(data),
	}, nil
}

// Root returns override if set, otherwise the document's root. It fails
// with INVALID_INPUT when neither names a root.
func (in *Input) Root(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	if in.Document != nil && in.Document.Root != "" {
		return in.Document.Root, nil
	}
	return "", kerrors.New(kerrors.ErrCodeInvalidInput, "no root person: set root in %s or pass one explicitly", in.Source)
}

// VirtualCount returns how many persons are placeholders.
func (in *Input) VirtualCount() int {
	n := 0
	for _, p := range in.People {
		if p.Virtual {
			n++
		}
	}
	return n
}
