// Package naming derives C# identifiers and labels from table and column names.
package naming

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jinzhu/inflection"

	"github.com/koustreak/dbscaffold/internal/schema"
)

// Converter turns a table name into a model class name.
type Converter interface {
	TableToModel(tableName string) string
}

// ConverterFunc adapts a plain function to Converter.
type ConverterFunc func(string) string

func (f ConverterFunc) TableToModel(tableName string) string { return f(tableName) }

// InflectionConverter strips a known prefix, splits the name into words,
// singularises the last word and joins the words in PascalCase:
// "tb_user_roles" -> "UserRole", "OrderItems" -> "OrderItem".
type InflectionConverter struct {
	TrimPrefixes []string
}

func (c InflectionConverter) TableToModel(tableName string) string {
	name := strings.TrimSpace(tableName)
	for _, p := range c.TrimPrefixes {
		if p != "" && len(name) > len(p) && strings.HasPrefix(strings.ToLower(name), strings.ToLower(p)) {
			name = name[len(p):]
			break
		}
	}

	words := splitWords(name)
	if len(words) == 0 {
		return tableName
	}
	last := len(words) - 1
	words[last] = inflection.Singular(words[last])

	var b strings.Builder
	for _, w := range words {
		b.WriteString(UpperFirst(w))
	}
	return b.String()
}

// ModelName applies conv when opts.ApplyNameConverter is set; otherwise the
// raw table name is the model name.
func ModelName(conv Converter, table *schema.Table, opts *schema.Options) string {
	if conv == nil || !opts.ApplyNameConverter {
		return table.TableName
	}
	return conv.TableToModel(table.TableName)
}

// splitWords breaks on '_', '-', spaces and camel-case humps. All-uppercase
// words are lowered so "USER_INFO" reads as "user", "info".
func splitWords(s string) []string {
	var words []string
	for _, part := range strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-' || unicode.IsSpace(r)
	}) {
		if part == strings.ToUpper(part) {
			words = append(words, strings.ToLower(part))
			continue
		}
		words = append(words, splitHumps(part)...)
	}
	return words
}

func splitHumps(s string) []string {
	runes := []rune(s)
	var words []string
	start := 0
	for i := 1; i < len(runes); i++ {
		prev, cur := runes[i-1], runes[i]
		lowerToUpper := unicode.IsLower(prev) && unicode.IsUpper(cur)
		acronymEnd := unicode.IsUpper(prev) && unicode.IsUpper(cur) &&
			i+1 < len(runes) && unicode.IsLower(runes[i+1])
		if lowerToUpper || acronymEnd {
			words = append(words, string(runes[start:i]))
			start = i
		}
	}
	return append(words, string(runes[start:]))
}

// UpperFirst uppercases the first rune only.
func UpperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// LowerFirst lowercases the first rune only: "UserRole" -> "userRole".
func LowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// Label turns a column name into form label text: "user_name" -> "User Name".
func Label(columnName string) string {
	words := strings.Split(strings.ReplaceAll(columnName, "_", " "), " ")
	for i, w := range words {
		words[i] = UpperFirst(w)
	}
	return strings.Join(words, " ")
}
