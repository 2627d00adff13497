package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/koustreak/dbscaffold/internal/schema"
)

func TestPrivateFieldName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ID", "id"},
		{"UserName", "userName"},
		{"userName", "_userName"},
		{"", ""},
		{"   ", ""},
		{"URL2", "url2"},
		{"user_name", "_user_name"},
		{"Ärger", "ärger"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, PrivateFieldName(tt.in))
		})
	}
}

func TestFieldSet(t *testing.T) {
	s := DefaultCommonFields()
	assert.Equal(t, 10, s.Len())

	for _, n := range []string{"id", "ID", "CreateTime", "modifyBy", "Note2"} {
		assert.True(t, s.Contains(n), n)
	}
	for _, n := range []string{"user_name", "create_time", "ids", ""} {
		assert.False(t, s.Contains(n), n)
	}

	var empty FieldSet
	assert.False(t, empty.Contains("id"))

	custom := NewFieldSet(" Tenant ", "", "tenant")
	assert.Equal(t, []string{"tenant"}, custom.Names())
}

func TestInflectionConverter(t *testing.T) {
	conv := InflectionConverter{TrimPrefixes: []string{"tb_", "t_"}}

	tests := []struct {
		in   string
		want string
	}{
		{"users", "User"},
		{"user", "User"},
		{"tb_user_roles", "UserRole"},
		{"TB_ORDER_ITEMS", "OrderItem"},
		{"OrderItems", "OrderItem"},
		{"HTTPLogs", "HTTPLog"},
		{"sys-categories", "SysCategory"},
		{"t_", "T"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, conv.TableToModel(tt.in))
		})
	}
}

func TestModelName(t *testing.T) {
	table := &schema.Table{TableName: "tb_users"}
	conv := InflectionConverter{TrimPrefixes: []string{"tb_"}}

	assert.Equal(t, "tb_users", ModelName(conv, table, &schema.Options{}))
	assert.Equal(t, "User", ModelName(conv, table, &schema.Options{ApplyNameConverter: true}))
	assert.Equal(t, "tb_users", ModelName(nil, table, &schema.Options{ApplyNameConverter: true}))

	upper := ConverterFunc(func(s string) string { return "X" + s })
	assert.Equal(t, "Xtb_users", ModelName(upper, table, &schema.Options{ApplyNameConverter: true}))
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "User Name", Label("user_name"))
	assert.Equal(t, "Id", Label("id"))
	assert.Equal(t, "CreateTime", Label("CreateTime"))
	assert.Equal(t, "A  B", Label("a__b"))
}

func TestLowerFirst(t *testing.T) {
	assert.Equal(t, "userRole", LowerFirst("UserRole"))
	assert.Equal(t, "", LowerFirst(""))
	assert.Equal(t, "uRL", LowerFirst("URL"))
}
