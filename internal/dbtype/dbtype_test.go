package dbtype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koustreak/dbscaffold/internal/errs"
	"github.com/koustreak/dbscaffold/internal/schema"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"VARCHAR", "VARCHAR"},
		{"varchar(50)", "VARCHAR"},
		{" decimal(18, 2) ", "DECIMAL"},
		{"int unsigned", "INT"},
		{"int(10) unsigned zerofill", "INT"},
		{"int(10) zerofill unsigned", "INT"},
		{"bigint signed", "BIGINT"},
		{"timestamp(3) with time zone", "TIMESTAMP WITH TIME ZONE"},
		{"character   varying", "CHARACTER VARYING"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestClrType(t *testing.T) {
	tests := []struct {
		provider Provider
		dataType string
		nullable bool
		want     string
	}{
		{MySQL(), "VARCHAR", false, "string"},
		{MySQL(), "VARCHAR", true, "string"},
		{MySQL(), "BIGINT", false, "long"},
		{MySQL(), "INT", true, "int?"},
		{MySQL(), "TINYINT", false, "byte"},
		{MySQL(), "TINYINT", true, "byte?"},
		{MySQL(), "decimal(10,2)", false, "decimal"},
		{MySQL(), "int(10) unsigned zerofill", false, "int"},
		{MySQL(), "bigint(20) unsigned", true, "long?"},
		{MySQL(), "DATETIME", true, "DateTime?"},
		{MySQL(), "LONGBLOB", true, "byte[]"},
		{SQLServer(), "NVARCHAR", false, "string"},
		{SQLServer(), "UNIQUEIDENTIFIER", true, "Guid?"},
		{SQLServer(), "DATETIMEOFFSET", false, "DateTimeOffset"},
		{SQLServer(), "BIT", false, "bool"},
		{SQLServer(), "FLOAT", false, "double"},
		{PostgreSQL(), "uuid", false, "Guid"},
		{PostgreSQL(), "timestamptz", true, "DateTimeOffset?"},
		{PostgreSQL(), "double precision", false, "double"},
		{PostgreSQL(), "int4", false, "int"},
		{PostgreSQL(), "bytea", true, "byte[]"},
	}

	for _, tt := range tests {
		t.Run(tt.provider.Name()+"/"+tt.dataType, func(t *testing.T) {
			got, err := tt.provider.ClrType(tt.dataType, tt.nullable)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClrType_Unmapped(t *testing.T) {
	_, err := MySQL().ClrType("GEOMETRY", false)
	require.Error(t, err)
	assert.True(t, errs.IsUnmappedType(err))

	_, err = PostgreSQL().ClrType("TINYINT", false)
	assert.True(t, errs.IsUnmappedType(err))
}

func TestBoolOverride(t *testing.T) {
	got, err := BoolOverride(MySQL(), "TINYINT", false)
	require.NoError(t, err)
	assert.Equal(t, "bool", got)

	got, err = BoolOverride(MySQL(), "TINYINT", true)
	require.NoError(t, err)
	assert.Equal(t, "bool?", got)

	// Literal comparison: lowercase tokens fall through to the provider.
	got, err = BoolOverride(MySQL(), "tinyint", false)
	require.NoError(t, err)
	assert.Equal(t, "byte", got)

	got, err = BoolOverride(MySQL(), "INT", true)
	require.NoError(t, err)
	assert.Equal(t, "int?", got)
}

func TestRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.Equal(t, []string{"MySql", "PostgreSql", "SqlServer"}, r.Names())

	for _, id := range []string{"MySql", "mysql", " MYSQL "} {
		p, err := r.Provider(id)
		require.NoError(t, err, id)
		assert.Equal(t, "MySql", p.Name())
	}

	_, err := r.Provider("Oracle")
	require.Error(t, err)
	assert.True(t, errs.IsInvalidInput(err))
}

func TestFillDefaultSizes(t *testing.T) {
	in := &schema.Table{
		TableName: "user",
		Columns: []schema.Column{
			{ColumnName: "name", DataType: "VARCHAR"},
			{ColumnName: "code", DataType: "VARCHAR", Size: 20},
			{ColumnName: "bio", DataType: "TEXT"},
			{ColumnName: "shape", DataType: "GEOMETRY"},
		},
	}

	out := FillDefaultSizes(MySQL(), in)
	assert.Equal(t, uint32(255), out.Columns[0].Size)
	assert.Equal(t, uint32(20), out.Columns[1].Size)
	assert.Equal(t, UnboundedSize, out.Columns[2].Size)
	assert.Equal(t, uint32(0), out.Columns[3].Size)

	assert.Equal(t, uint32(0), in.Columns[0].Size, "input must not be mutated")
}
