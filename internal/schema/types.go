package schema

import (
	"fmt"
	"strings"

	"github.com/koustreak/dbscaffold/internal/errs"
)

// DefaultNamespace is used when Options.Namespace is blank.
const DefaultNamespace = "SystemManagement.Entity"

// Column describes a single column in a table
type Column struct {
	ColumnName        string  `yaml:"name" json:"name"`
	ColumnDescription string  `yaml:"description,omitempty" json:"description,omitempty"`
	DataType          string  `yaml:"type" json:"type"`                           // VARCHAR, INT, DATETIME or a provider token
	Size              uint32  `yaml:"size,omitempty" json:"size,omitempty"`       // 0 means provider default
	IsNullable        bool    `yaml:"nullable,omitempty" json:"nullable,omitempty"`
	IsPrimaryKey      bool    `yaml:"primary_key,omitempty" json:"primary_key,omitempty"`
	DefaultValue      *string `yaml:"default,omitempty" json:"default,omitempty"` // nil if no default
}

// Table describes a table and its ordered columns
type Table struct {
	TableName        string   `yaml:"name" json:"name"`
	TableDescription string   `yaml:"description,omitempty" json:"description,omitempty"`
	Columns          []Column `yaml:"columns" json:"columns"`
}

// Validate rejects tables the generators cannot name.
func (t *Table) Validate() error {
	if t == nil {
		return errs.InvalidArgument("table is nil")
	}
	if strings.TrimSpace(t.TableName) == "" {
		return errs.InvalidArgument("table name is empty")
	}
	for i, c := range t.Columns {
		if strings.TrimSpace(c.ColumnName) == "" {
			return errs.InvalidArgument(fmt.Sprintf("table %s: column %d has no name", t.TableName, i))
		}
	}
	return nil
}

// Clone returns a deep copy so callers can adjust sizes without touching the input.
func (t *Table) Clone() *Table {
	out := *t
	out.Columns = make([]Column, len(t.Columns))
	for i, c := range t.Columns {
		if c.DefaultValue != nil {
			v := *c.DefaultValue
			c.DefaultValue = &v
		}
		out.Columns[i] = c
	}
	return &out
}

// Options controls how a model is generated. It is read-only for the
// duration of a generation call.
type Options struct {
	Namespace              string `yaml:"namespace" json:"namespace"`
	Prefix                 string `yaml:"prefix" json:"prefix"`
	Suffix                 string `yaml:"suffix" json:"suffix"`
	GenerateDataAnnotation bool   `yaml:"data_annotations" json:"data_annotations"`
	GeneratePrivateFields  bool   `yaml:"private_fields" json:"private_fields"`
	ApplyNameConverter     bool   `yaml:"name_converter" json:"name_converter"`
	GenerateDbDescription  bool   `yaml:"db_description" json:"db_description"`
}

// NamespaceOrDefault returns the namespace with the default applied.
func (o *Options) NamespaceOrDefault() string {
	if strings.TrimSpace(o.Namespace) == "" {
		return DefaultNamespace
	}
	return o.Namespace
}
