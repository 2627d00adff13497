package codegen

import (
	"fmt"
	"strings"

	"github.com/koustreak/dbscaffold/internal/dbtype"
	"github.com/koustreak/dbscaffold/internal/naming"
	"github.com/koustreak/dbscaffold/internal/schema"
)

// GenerateDialog builds an Element UI edit dialog with one form item per
// column. Common fields are not filtered. Controls are chosen by an exact,
// case-sensitive match on DataType; other types get a label-only item.
func (g *DefaultGenerator) GenerateDialog(table *schema.Table, opts *schema.Options, databaseType string) (string, error) {
	if err := checkArgs(table, opts); err != nil {
		return "", err
	}
	p, err := g.registry.Provider(databaseType)
	if err != nil {
		return "", err
	}
	t := dbtype.FillDefaultSizes(p, table)

	var b strings.Builder
	b.WriteString("<el-dialog :title=\"textMap[dialogStatus]\" :visible.sync=\"dialogFormVisible\" width=\"70%\">\n")
	b.WriteString("<el-form ref=\"dataForm\" :rules = \"rules\" :model = \"temp\" label-position = \"left\" label-width = \"150px\">\n")
	b.WriteString("<el-row>\n")

	for i, c := range t.Columns {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("<el-col :span=\"12\">\n")
		fmt.Fprintf(&b, "<el-form-item label=\"%s\" prop=\"%s\">\n", naming.Label(c.ColumnName), c.ColumnName)
		if control := formControl(c); control != "" {
			b.WriteString(control)
			b.WriteString("\n")
		}
		b.WriteString("</el-form-item>\n")
		b.WriteString("</el-col>\n")
	}

	b.WriteString("</el-row>\n")
	b.WriteString("</el-form>\n")
	b.WriteString("<div slot=\"footer\" class=\"dialog-footer\">\n")
	b.WriteString("<el-button @click=\"dialogFormVisible = false\">Cancel</el-button>\n")
	b.WriteString("<el-button type=\"primary\" @click=\"dialogStatus==='create'?createData():updateData()\">Confirm</el-button>\n")
	b.WriteString("</div>\n")
	b.WriteString("</el-dialog>\n")

	g.log.With().Str("table", t.TableName).Int("fields", len(t.Columns)).Logger().Debug("dialog generated")
	return b.String(), nil
}

func formControl(c schema.Column) string {
	switch c.DataType {
	case "VARCHAR":
		return fmt.Sprintf("<el-input v-model=\"temp.%s\"  maxlength=\"%d\"/>", c.ColumnName, c.Size)
	case "INT", "BIGINT", "DECIMAL":
		precision := ""
		if c.DataType == "DECIMAL" {
			precision = ":precision = \"2\""
		}
		return fmt.Sprintf("<el-input-number v-model=\"temp.%s\"  :step=\"1\" :min=\"0\" %s />", c.ColumnName, precision)
	case "TINYINT":
		return fmt.Sprintf("<el-switch v-model=\"temp.%s\" />", c.ColumnName)
	case "DATETIME":
		return fmt.Sprintf("<el-date-picker v-model=\"temp.%s\" format=\"MM/dd/yyyy\" value-format=\"MM/dd/yyyy\" clearable />", c.ColumnName)
	default:
		return ""
	}
}
