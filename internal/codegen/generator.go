// Package codegen builds the C# entity, DTO, repository, service and
// controller sources and the Vue dialog for a table description.
//
// Usage:
//
//	gen := codegen.New(codegen.Config{
//	    Engine: scaffold.NewEngine(scaffold.EmbeddedSource(), log),
//	})
//	model, err := gen.GenerateModel(table, &schema.Options{GenerateDataAnnotation: true}, "MySql")
//
//	// every artifact for one table, failures isolated per artifact
//	res, err := codegen.GenerateAll(ctx, gen, table, opts, "MySql", nil)
package codegen

import (
	"context"
	"strings"

	"github.com/koustreak/dbscaffold/internal/dbtype"
	"github.com/koustreak/dbscaffold/internal/errs"
	"github.com/koustreak/dbscaffold/internal/logger"
	"github.com/koustreak/dbscaffold/internal/naming"
	"github.com/koustreak/dbscaffold/internal/scaffold"
	"github.com/koustreak/dbscaffold/internal/schema"
)

// DefaultPrimaryKeyDescription is emitted for key columns with no description.
const DefaultPrimaryKeyDescription = "Primary key"

// Generator declares every artifact a table can produce.
type Generator interface {
	// ModelName is the class name every artifact of table is built around.
	ModelName(table *schema.Table, opts *schema.Options) string
	GenerateModel(table *schema.Table, opts *schema.Options, databaseType string) (string, error)
	GenerateDialog(table *schema.Table, opts *schema.Options, databaseType string) (string, error)
	GenerateDTO(ctx context.Context, table *schema.Table, opts *schema.Options, modelName, dtoName, databaseType string) (string, error)
	GenerateIRepository(ctx context.Context, ifName, modelName string) (string, error)
	GenerateRepository(ctx context.Context, ifName, clsName, modelName string) (string, error)
	GenerateIService(ctx context.Context, iServiceName, dtoName string) (string, error)
	GenerateService(ctx context.Context, serviceName, iServiceName, iRepositoryName, dtoName, modelName string) (string, error)
	GenerateController(ctx context.Context, controllerName, iServiceName, dtoName, modelName string) (string, error)
}

// Config wires the collaborators of a DefaultGenerator. Zero fields get
// defaults: the built-in type registry, no name conversion, embedded
// templates and the default common fields.
type Config struct {
	Registry  *dbtype.Registry
	Converter naming.Converter
	Engine    *scaffold.Engine

	// CommonFields are skipped in entity and DTO members. Nil means
	// naming.DefaultCommonFields; an empty set disables filtering.
	CommonFields *naming.FieldSet

	PrimaryKeyDescription string
	Logger                *logger.Logger
}

// DefaultGenerator implements Generator. It holds only read-only
// collaborators and is safe for concurrent use.
type DefaultGenerator struct {
	registry  *dbtype.Registry
	converter naming.Converter
	engine    *scaffold.Engine
	common    naming.FieldSet
	pkDesc    string
	log       *logger.Logger
}

// New builds a DefaultGenerator from cfg.
func New(cfg Config) *DefaultGenerator {
	g := &DefaultGenerator{
		registry:  cfg.Registry,
		converter: cfg.Converter,
		engine:    cfg.Engine,
		pkDesc:    cfg.PrimaryKeyDescription,
		log:       cfg.Logger,
	}
	if g.registry == nil {
		g.registry = dbtype.DefaultRegistry()
	}
	if g.log == nil {
		g.log = logger.Nop()
	}
	if g.engine == nil {
		g.engine = scaffold.NewEngine(scaffold.EmbeddedSource(), g.log)
	}
	if cfg.CommonFields != nil {
		g.common = *cfg.CommonFields
	} else {
		g.common = naming.DefaultCommonFields()
	}
	if g.pkDesc == "" {
		g.pkDesc = DefaultPrimaryKeyDescription
	}
	return g
}

// Registry exposes the type registry the generator resolves providers from.
func (g *DefaultGenerator) Registry() *dbtype.Registry { return g.registry }

// ModelName applies the generator's converter when opts.ApplyNameConverter
// is set and falls back to the table name otherwise.
func (g *DefaultGenerator) ModelName(table *schema.Table, opts *schema.Options) string {
	return naming.ModelName(g.converter, table, opts)
}

func checkArgs(table *schema.Table, opts *schema.Options) error {
	if table == nil {
		return errs.InvalidArgument("table is nil")
	}
	if opts == nil {
		return errs.InvalidArgument("options are nil")
	}
	return nil
}

var newlines = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// oneLine flattens a description for use in a comment or attribute.
func oneLine(s string) string {
	return newlines.Replace(s)
}

var csQuote = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// csString escapes s for a C# regular string literal.
func csString(s string) string {
	return csQuote.Replace(oneLine(s))
}

var _ Generator = (*DefaultGenerator)(nil)
