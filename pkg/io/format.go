package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	kerrors "github.com/matzehuels/kinship/pkg/errors"
)

// Format is a people file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Formats lists the supported encodings.
var Formats = []Format{FormatTOML, FormatYAML, FormatJSON}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", kerrors.New(kerrors.ErrCodeInvalidFormat, "unsupported file extension %q (want .toml, .yaml, .yml or .json)", filepath.Ext(path))
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "yml" {
		f = FormatYAML
	}
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", kerrors.New(kerrors.ErrCodeInvalidFormat, "unsupported format %q", s)
}

// ReadPeople decodes a document from r. ReadPeople does not close r.
func ReadPeople(r io.Reader, f Format) (*Document, error) {
	var doc Document
	var err error
	switch f {
	case FormatTOML:
		_, err = toml.NewDecoder(r).Decode(&doc)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&doc)
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		err = dec.Decode(&doc)
	default:
		return nil, kerrors.New(kerrors.ErrCodeInvalidFormat, "unsupported format %q", f)
	}
	if err != nil {
		if err == io.EOF {
			return nil, kerrors.New(kerrors.ErrCodeEmptyMemberList, "empty %s document", f)
		}
		return nil, kerrors.Wrap(kerrors.ErrCodeInvalidFormat, err, "decode %s", f)
	}
	return &doc, nil
}

// ImportPeople reads the people file at path.
func ImportPeople(path string) (*Document, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, kerrors.Wrap(kerrors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()
	return ReadPeople(file, f)
}

// WritePeople encodes doc to w.
func WritePeople(w io.Writer, doc *Document, f Format) error {
	switch f {
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(doc); err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
	default:
		return kerrors.New(kerrors.ErrCodeInvalidFormat, "unsupported format %q", f)
	}
	return nil
}

// ExportPeople writes doc to path in the format implied by its extension.
func ExportPeople(doc *Document, path string) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()
	return WritePeople(file, doc, f)
}
