// Package dbtype maps database column type tokens to C# type names.
//
// Each supported database has a Provider backed by a fixed mapping table.
// A Registry resolves a database-type identifier (MySql, SqlServer,
// PostgreSql) to its Provider.
package dbtype

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/koustreak/dbscaffold/internal/errs"
	"github.com/koustreak/dbscaffold/internal/schema"
)

// UnboundedSize marks types with no practical length limit (TEXT, BLOB).
// Entity generation emits no length constraint for it.
const UnboundedSize uint32 = math.MaxInt32

// Provider maps the type tokens of one database.
type Provider interface {
	// Name is the canonical database-type identifier, e.g. "MySql".
	Name() string

	// ClrType returns the C# type for dataType. Value types get a "?" suffix
	// when nullable. Unknown tokens fail with errs.ErrKindUnmappedType.
	ClrType(dataType string, nullable bool) (string, error)

	// DefaultSize is the size assumed when a column declares none.
	DefaultSize(dataType string) uint32
}

type clrType struct {
	name      string
	valueType bool
}

var (
	str     = clrType{"string", false}
	bytes   = clrType{"byte[]", false}
	boolean = clrType{"bool", true}
	u8      = clrType{"byte", true}
	i16     = clrType{"short", true}
	i32     = clrType{"int", true}
	i64     = clrType{"long", true}
	f32     = clrType{"float", true}
	f64     = clrType{"double", true}
	dec     = clrType{"decimal", true}
	date    = clrType{"DateTime", true}
	dateTZ  = clrType{"DateTimeOffset", true}
	span    = clrType{"TimeSpan", true}
	guid    = clrType{"Guid", true}
)

// tableProvider is a Provider driven by static lookup tables.
type tableProvider struct {
	name  string
	types map[string]clrType
	sizes map[string]uint32
}

func (p *tableProvider) Name() string { return p.name }

func (p *tableProvider) ClrType(dataType string, nullable bool) (string, error) {
	t, ok := p.types[Normalize(dataType)]
	if !ok {
		return "", errs.New(errs.ErrKindUnmappedType,
			fmt.Sprintf("%s: no target type for %q", p.name, dataType))
	}
	if nullable && t.valueType {
		return t.name + "?", nil
	}
	return t.name, nil
}

func (p *tableProvider) DefaultSize(dataType string) uint32 {
	return p.sizes[Normalize(dataType)]
}

var (
	argsRe  = regexp.MustCompile(`\([^)]*\)`)
	spaceRe = regexp.MustCompile(`\s+`)
)

// Normalize reduces a declared column type to its lookup token:
// "varchar(50)" becomes "VARCHAR", "int unsigned" becomes "INT".
func Normalize(dataType string) string {
	t := argsRe.ReplaceAllString(dataType, " ")
	t = strings.ToUpper(strings.TrimSpace(spaceRe.ReplaceAllString(t, " ")))
	for {
		trimmed := t
		for _, mod := range typeModifiers {
			trimmed = strings.TrimSuffix(trimmed, " "+mod)
		}
		if trimmed == t {
			return t
		}
		t = trimmed
	}
}

// MySQL column modifiers that do not change the target type, in any order.
var typeModifiers = []string{"UNSIGNED", "ZEROFILL", "SIGNED"}

// BoolOverride maps TINYINT to bool, and everything else through p.
// It is applied to auto-property members and DTO members only; private-field
// members keep the provider mapping.
func BoolOverride(p Provider, dataType string, nullable bool) (string, error) {
	if dataType == "TINYINT" {
		if nullable {
			return "bool?", nil
		}
		return "bool", nil
	}
	return p.ClrType(dataType, nullable)
}

// FillDefaultSizes returns a copy of t with every zero Size replaced by the
// provider default for the column type.
func FillDefaultSizes(p Provider, t *schema.Table) *schema.Table {
	out := t.Clone()
	for i := range out.Columns {
		if out.Columns[i].Size == 0 {
			out.Columns[i].Size = p.DefaultSize(out.Columns[i].DataType)
		}
	}
	return out
}
