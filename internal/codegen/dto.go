package codegen

import (
	"context"
	"fmt"
	"strings"

	"github.com/koustreak/dbscaffold/internal/dbtype"
	"github.com/koustreak/dbscaffold/internal/scaffold"
	"github.com/koustreak/dbscaffold/internal/schema"
)

// GenerateDTO builds the data transfer object for table by wrapping its
// member list in the DTO template, followed by mapping hints.
func (g *DefaultGenerator) GenerateDTO(ctx context.Context, table *schema.Table, opts *schema.Options, modelName, dtoName, databaseType string) (string, error) {
	if err := checkArgs(table, opts); err != nil {
		return "", err
	}
	p, err := g.registry.Provider(databaseType)
	if err != nil {
		return "", err
	}

	var members []string
	for _, c := range table.Columns {
		if g.common.Contains(c.ColumnName) {
			continue
		}
		typ, err := dbtype.BoolOverride(p, c.DataType, c.IsNullable)
		if err != nil {
			return "", fmt.Errorf("table %s column %s: %w", table.TableName, c.ColumnName, err)
		}

		var m strings.Builder
		if opts.GenerateDbDescription && c.ColumnDescription != "" {
			fmt.Fprintf(&m, "\t\t/// <summary>\n\t\t/// %s\n\t\t/// </summary>\n", oneLine(c.ColumnDescription))
		}
		fmt.Fprintf(&m, "\t\tpublic %s %s { get; set; }", typ, c.ColumnName)
		members = append(members, m.String())
	}

	out, err := g.engine.Render(ctx, scaffold.KindDTO, scaffold.Tokens{
		"NAMESPACE":  opts.NamespaceOrDefault(),
		"DTO_NAME":   dtoName,
		"MODEL_NAME": modelName,
		"PROPERTIES": strings.Join(members, "\n\n"),
	})
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(out)
	if !strings.HasSuffix(out, "\n") {
		b.WriteString("\n")
	}
	b.WriteString("\n// Mapping profile:\n")
	fmt.Fprintf(&b, "// CreateMap<%s, %s>();\n", modelName, dtoName)
	fmt.Fprintf(&b, "// CreateMap<%s, %s>();\n", dtoName, modelName)

	g.log.With().Str("table", table.TableName).Int("members", len(members)).Logger().Debug("dto generated")
	return b.String(), nil
}
