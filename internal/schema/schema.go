// Package schema holds the table description consumed by the generators and
// loads it from YAML or JSON schema documents.
package schema

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/koustreak/dbscaffold/internal/errs"
)

// Document is the on-disk form of a set of tables.
type Document struct {
	Tables []Table `yaml:"tables" json:"tables"`
}

// Parse decodes a YAML document. JSON input is accepted since it is valid YAML.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errs.Wrap(errs.ErrKindInvalidInput, "decode schema document", err)
	}
	if len(doc.Tables) == 0 {
		return nil, errs.InvalidArgument("schema document has no tables")
	}
	for i := range doc.Tables {
		if err := doc.Tables[i].Validate(); err != nil {
			return nil, fmt.Errorf("table %d: %w", i, err)
		}
	}
	return &doc, nil
}

// LoadFile reads and parses the document at path.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(errs.ErrKindNotFound, "schema file "+path, err)
		}
		return nil, errs.Wrap(errs.ErrKindUnknown, "read schema file "+path, err)
	}
	return Parse(data)
}

// Find returns the table with the given name, or nil.
func (d *Document) Find(name string) *Table {
	for i := range d.Tables {
		if d.Tables[i].TableName == name {
			return &d.Tables[i]
		}
	}
	return nil
}
