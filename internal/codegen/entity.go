package codegen

import (
	"fmt"
	"strings"

	"github.com/koustreak/dbscaffold/internal/dbtype"
	"github.com/koustreak/dbscaffold/internal/naming"
	"github.com/koustreak/dbscaffold/internal/schema"
)

// GenerateModel builds the entity class for table.
func (g *DefaultGenerator) GenerateModel(table *schema.Table, opts *schema.Options, databaseType string) (string, error) {
	if err := checkArgs(table, opts); err != nil {
		return "", err
	}
	p, err := g.registry.Provider(databaseType)
	if err != nil {
		return "", err
	}
	t := dbtype.FillDefaultSizes(p, table)
	modelName := g.ModelName(table, opts)

	var b strings.Builder
	b.WriteString("using System;\n")
	if opts.GenerateDataAnnotation {
		b.WriteString("using System.ComponentModel;\n")
		b.WriteString("using System.ComponentModel.DataAnnotations;\n")
		b.WriteString("using System.ComponentModel.DataAnnotations.Schema;\n")
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "namespace %s\n{\n", opts.NamespaceOrDefault())
	if opts.GenerateDataAnnotation && t.TableDescription != "" {
		fmt.Fprintf(&b, "\t/// <summary>\n\t/// %s\n\t/// </summary>\n", oneLine(t.TableDescription))
		fmt.Fprintf(&b, "\t[Table(\"%s\")]\n", t.TableName)
		fmt.Fprintf(&b, "\t[Description(\"%s\")]\n", csString(t.TableDescription))
	}
	fmt.Fprintf(&b, "\tpublic class %s%s%s\n\t{\n", opts.Prefix, modelName, opts.Suffix)

	members := 0
	for _, c := range t.Columns {
		if g.common.Contains(c.ColumnName) {
			continue
		}
		if members > 0 {
			b.WriteString("\n")
		}
		if opts.GeneratePrivateFields {
			err = g.writeFieldMember(&b, p, c, opts)
		} else {
			err = g.writeAutoMember(&b, p, c, opts)
		}
		if err != nil {
			return "", fmt.Errorf("table %s column %s: %w", t.TableName, c.ColumnName, err)
		}
		members++
	}

	b.WriteString("\t}\n}\n")

	g.log.With().Str("table", t.TableName).Int("members", members).Logger().Debug("model generated")
	return b.String(), nil
}

// writeAutoMember emits an auto-implemented property. TINYINT maps to bool here.
func (g *DefaultGenerator) writeAutoMember(b *strings.Builder, p dbtype.Provider, c schema.Column, opts *schema.Options) error {
	typ, err := dbtype.BoolOverride(p, c.DataType, c.IsNullable)
	if err != nil {
		return err
	}
	if opts.GenerateDataAnnotation {
		g.writeAnnotations(b, c, typ)
	}
	fmt.Fprintf(b, "\t\tpublic %s %s { get; set; }\n", typ, c.ColumnName)
	return nil
}

// writeFieldMember emits a private backing field and a property forwarding
// to it. The provider mapping is used as is, TINYINT included.
func (g *DefaultGenerator) writeFieldMember(b *strings.Builder, p dbtype.Provider, c schema.Column, opts *schema.Options) error {
	typ, err := p.ClrType(c.DataType, c.IsNullable)
	if err != nil {
		return err
	}
	field := naming.PrivateFieldName(c.ColumnName)

	fmt.Fprintf(b, "\t\tprivate %s %s;\n", typ, field)
	if opts.GenerateDataAnnotation {
		g.writeAnnotations(b, c, typ)
	}
	fmt.Fprintf(b, "\t\tpublic %s %s\n", typ, c.ColumnName)
	b.WriteString("\t\t{\n")
	fmt.Fprintf(b, "\t\t\tget { return %s; }\n", field)
	fmt.Fprintf(b, "\t\t\tset { %s = value; }\n", field)
	b.WriteString("\t\t}\n")
	return nil
}

func (g *DefaultGenerator) writeAnnotations(b *strings.Builder, c schema.Column, typ string) {
	switch {
	case c.ColumnDescription != "":
		fmt.Fprintf(b, "\t\t/// <summary>\n\t\t/// %s\n\t\t/// </summary>\n", oneLine(c.ColumnDescription))
		fmt.Fprintf(b, "\t\t[Description(\"%s\")]\n", csString(c.ColumnDescription))
	case c.IsPrimaryKey:
		fmt.Fprintf(b, "\t\t[Description(\"%s\")]\n", csString(g.pkDesc))
	}
	if c.IsPrimaryKey {
		b.WriteString("\t\t[Key]\n")
	}
	if typ == "string" && c.Size > 0 && c.Size < dbtype.UnboundedSize {
		fmt.Fprintf(b, "\t\t[StringLength(%d)]\n", c.Size)
	}
	fmt.Fprintf(b, "\t\t[Column(\"%s\")]\n", c.ColumnName)
}
