package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koustreak/dbscaffold/internal/errs"
)

const userDoc = `
tables:
  - name: user
    description: Registered users
    columns:
      - name: id
        type: BIGINT
        primary_key: true
      - name: user_name
        type: VARCHAR
        size: 50
      - name: is_active
        type: TINYINT
        nullable: true
        default: "1"
`

func TestParse_YAML(t *testing.T) {
	doc, err := Parse([]byte(userDoc))
	require.NoError(t, err)
	require.Len(t, doc.Tables, 1)

	tbl := doc.Tables[0]
	assert.Equal(t, "user", tbl.TableName)
	assert.Equal(t, "Registered users", tbl.TableDescription)
	require.Len(t, tbl.Columns, 3)

	assert.Equal(t, "id", tbl.Columns[0].ColumnName)
	assert.True(t, tbl.Columns[0].IsPrimaryKey)
	assert.Nil(t, tbl.Columns[0].DefaultValue)

	assert.Equal(t, uint32(50), tbl.Columns[1].Size)

	require.NotNil(t, tbl.Columns[2].DefaultValue)
	assert.Equal(t, "1", *tbl.Columns[2].DefaultValue)
	assert.True(t, tbl.Columns[2].IsNullable)
}

func TestParse_JSON(t *testing.T) {
	doc, err := Parse([]byte(`{"tables":[{"name":"order","columns":[{"name":"total","type":"DECIMAL"}]}]}`))
	require.NoError(t, err)
	assert.Equal(t, "DECIMAL", doc.Tables[0].Columns[0].DataType)
	assert.NotNil(t, doc.Find("order"))
	assert.Nil(t, doc.Find("missing"))
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty document", "tables: []"},
		{"malformed", "tables: [name: {"},
		{"blank table name", "tables:\n  - name: ' '\n"},
		{"blank column name", "tables:\n  - name: user\n    columns:\n      - type: INT\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.Error(t, err)
			assert.True(t, errs.IsInvalidInput(err))
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.yaml")
	require.NoError(t, os.WriteFile(path, []byte(userDoc), 0o644))

	doc, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, doc.Tables, 1)

	_, err = LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.True(t, errs.IsNotFound(err))
}

func TestTable_Clone(t *testing.T) {
	def := "0"
	src := &Table{TableName: "t", Columns: []Column{{ColumnName: "a", DefaultValue: &def}}}
	cp := src.Clone()
	cp.Columns[0].Size = 10
	*cp.Columns[0].DefaultValue = "1"

	assert.Equal(t, uint32(0), src.Columns[0].Size)
	assert.Equal(t, "0", *src.Columns[0].DefaultValue)
}

func TestOptions_NamespaceOrDefault(t *testing.T) {
	assert.Equal(t, DefaultNamespace, (&Options{}).NamespaceOrDefault())
	assert.Equal(t, DefaultNamespace, (&Options{Namespace: "  "}).NamespaceOrDefault())
	assert.Equal(t, "Shop.Entity", (&Options{Namespace: "Shop.Entity"}).NamespaceOrDefault())
}

func TestTable_ValidateNil(t *testing.T) {
	var tbl *Table
	assert.True(t, errs.IsInvalidInput(tbl.Validate()))
}
