package mcp

import (
	"context"
	"encoding/json"
	"testing"

	goMCP "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koustreak/dbscaffold/internal/codegen"
	"github.com/koustreak/dbscaffold/internal/logger"
	"github.com/koustreak/dbscaffold/internal/naming"
	"github.com/koustreak/dbscaffold/internal/scaffold"
)

const userSchema = `
tables:
  - name: sys_users
    description: Users
    columns:
      - name: id
        type: INT
        primary_key: true
      - name: user_name
        type: VARCHAR
        size: 50
`

func testDeps() Deps {
	d := Deps{
		Generator: codegen.New(codegen.Config{Converter: naming.InflectionConverter{TrimPrefixes: []string{"sys_"}}}),
		Logger:    logger.Nop(),
	}
	d.defaults()
	return d
}

func call(t *testing.T, h toolHandler, args map[string]any) *goMCP.CallToolResult {
	t.Helper()
	var req goMCP.CallToolRequest
	req.Params.Arguments = args
	res, err := h(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func text(t *testing.T, res *goMCP.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(goMCP.TextContent)
	require.True(t, ok)
	return tc.Text
}

func TestGenerateHandler(t *testing.T) {
	deps := testDeps()
	deps.Options.ApplyNameConverter = true

	res := call(t, GenerateHandler(deps), map[string]any{
		"schema":    userSchema,
		"artifacts": "model, dto",
		"namespace": "Acme.Entity",
	})
	require.False(t, res.IsError, text(t, res))

	var out generateResult
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &out))
	assert.NotEmpty(t, out.RunID)
	require.Len(t, out.Results, 1)
	tr := out.Results[0]
	assert.Equal(t, "sys_users", tr.Table)
	require.Len(t, tr.Artifacts, 2)
	assert.Equal(t, "User.cs", tr.Artifacts[0].FileName)
	assert.Contains(t, tr.Artifacts[0].Content, "namespace Acme.Entity")
	assert.Contains(t, tr.Artifacts[0].Content, "public class User\n")
	assert.Equal(t, "UserDto.cs", tr.Artifacts[1].FileName)
	assert.Empty(t, tr.Errors)
}

func TestGenerateHandler_Errors(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
	}{
		{name: "missing schema", args: map[string]any{}},
		{name: "invalid schema", args: map[string]any{"schema": "tables: ["}},
		{name: "empty schema", args: map[string]any{"schema": "tables: []"}},
		{name: "unknown database type", args: map[string]any{"schema": userSchema, "database_type": "Oracle"}},
		{name: "unknown artifact", args: map[string]any{"schema": userSchema, "artifacts": "model,widget"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := call(t, GenerateHandler(testDeps()), tt.args)
			assert.True(t, res.IsError)
		})
	}
}

func TestGenerateHandler_ArtifactFailureIsReported(t *testing.T) {
	deps := testDeps()
	deps.Generator = codegen.New(codegen.Config{Engine: scaffold.NewEngine(scaffold.MapSource{}, nil)})

	res := call(t, GenerateHandler(deps), map[string]any{"schema": userSchema, "artifacts": "model,controller"})
	require.False(t, res.IsError)

	var out generateResult
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &out))
	require.Len(t, out.Results, 1)
	assert.Len(t, out.Results[0].Artifacts, 1)
	require.Len(t, out.Results[0].Errors, 1)
	assert.Contains(t, out.Results[0].Errors[0], "controller")
}

func TestDatabaseTypesHandler(t *testing.T) {
	res := call(t, DatabaseTypesHandler(testDeps()), nil)
	require.False(t, res.IsError)

	var names []string
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &names))
	assert.Equal(t, []string{"MySql", "PostgreSql", "SqlServer"}, names)
}

func TestTemplateHandler(t *testing.T) {
	deps := testDeps()

	res := call(t, TemplateHandler(deps), map[string]any{"kind": "Controller"})
	require.False(t, res.IsError)
	assert.Contains(t, text(t, res), "{ControllerName}")

	res = call(t, TemplateHandler(deps), map[string]any{"kind": "Widget"})
	assert.True(t, res.IsError)

	deps.Templates = scaffold.MapSource{}
	res = call(t, TemplateHandler(deps), map[string]any{"kind": "Controller"})
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "not found")
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"model", "dto"}, splitList(" model, ,dto "))
	assert.Nil(t, splitList(""))
}

func TestNewServer(t *testing.T) {
	assert.NotNil(t, NewServer("test", testDeps()))
}
