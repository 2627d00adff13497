// Package mcp exposes generation as Model Context Protocol tools over stdio.
package mcp

import (
	goMCP "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/koustreak/dbscaffold/internal/codegen"
	"github.com/koustreak/dbscaffold/internal/dbtype"
	"github.com/koustreak/dbscaffold/internal/logger"
	"github.com/koustreak/dbscaffold/internal/scaffold"
	"github.com/koustreak/dbscaffold/internal/schema"
)

// Deps carries what the tool handlers need.
type Deps struct {
	Generator codegen.Generator
	Registry  *dbtype.Registry
	Templates scaffold.Source

	// Defaults for arguments the caller leaves out.
	Options      *schema.Options
	DatabaseType string
	Artifacts    []codegen.ArtifactKind
	Concurrency  int

	Logger *logger.Logger
}

func (d *Deps) defaults() {
	if d.Registry == nil {
		d.Registry = dbtype.DefaultRegistry()
	}
	if d.Templates == nil {
		d.Templates = scaffold.EmbeddedSource()
	}
	if d.Options == nil {
		d.Options = &schema.Options{}
	}
	if d.DatabaseType == "" {
		d.DatabaseType = "MySql"
	}
	if d.Concurrency < 1 {
		d.Concurrency = 1
	}
	if d.Logger == nil {
		d.Logger = logger.L()
	}
}

// RegisterTools adds the generation tools to s.
func RegisterTools(s *server.MCPServer, deps Deps) {
	deps.defaults()

	generateTool := goMCP.NewTool("generate_artifacts",
		goMCP.WithDescription("Generate C# entity, DTO, repository, service and controller sources plus a Vue dialog for each table of a schema document"),
		goMCP.WithString("schema",
			goMCP.Required(),
			goMCP.Description("Schema document as YAML or JSON with a top-level tables list"),
		),
		goMCP.WithString("database_type",
			goMCP.Description("Database type used to map column types: MySql, SqlServer or PostgreSql"),
		),
		goMCP.WithString("artifacts",
			goMCP.Description("Comma separated artifact kinds to produce (default: all)"),
		),
		goMCP.WithString("namespace",
			goMCP.Description("C# namespace for generated entities"),
		),
	)

	typesTool := goMCP.NewTool("list_database_types",
		goMCP.WithDescription("List the database types whose column types can be mapped"),
	)

	templateTool := goMCP.NewTool("get_template",
		goMCP.WithDescription("Return the raw scaffold template for a kind"),
		goMCP.WithString("kind",
			goMCP.Required(),
			goMCP.Description("Template kind: DTO, IRepository, Repository, IService, Service or Controller"),
		),
	)

	s.AddTool(generateTool, GenerateHandler(deps))
	s.AddTool(typesTool, DatabaseTypesHandler(deps))
	s.AddTool(templateTool, TemplateHandler(deps))
}

// NewServer builds an MCP server with every tool registered.
func NewServer(version string, deps Deps) *server.MCPServer {
	s := server.NewMCPServer(
		"dbscaffold",
		version,
		server.WithToolCapabilities(false),
		server.WithLogging(),
	)
	RegisterTools(s, deps)
	return s
}

// Serve runs the tools on stdin/stdout until the client disconnects.
func Serve(version string, deps Deps) error {
	return server.ServeStdio(NewServer(version, deps))
}
