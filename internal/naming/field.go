package naming

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// PrivateFieldName derives the backing field for a property name.
// First match wins:
//
//	""/blank      -> ""
//	all uppercase -> lowercase        ("ID" -> "id")
//	leading upper -> lower first rune ("UserName" -> "userName")
//	otherwise     -> "_" + name       ("userName" -> "_userName")
func PrivateFieldName(member string) string {
	if strings.TrimSpace(member) == "" {
		return ""
	}
	if member == strings.ToUpper(member) {
		return strings.ToLower(member)
	}
	if r, _ := utf8.DecodeRuneInString(member); unicode.IsUpper(r) {
		return LowerFirst(member)
	}
	return "_" + member
}

// FieldSet is a case-insensitive set of column names. The zero value is empty.
type FieldSet struct {
	names map[string]struct{}
}

// NewFieldSet builds a set from names.
func NewFieldSet(names ...string) FieldSet {
	s := FieldSet{names: make(map[string]struct{}, len(names))}
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			s.names[strings.ToLower(n)] = struct{}{}
		}
	}
	return s
}

// DefaultCommonFields are the audit/base columns supplied by a shared base
// entity and left out of generated entity and DTO members.
func DefaultCommonFields() FieldSet {
	return NewFieldSet("id", "field1", "field2", "field3", "note1", "note2",
		"modifyby", "modifytime", "createby", "createtime")
}

// Contains reports whether columnName is in the set, ignoring case.
func (s FieldSet) Contains(columnName string) bool {
	_, ok := s.names[strings.ToLower(columnName)]
	return ok
}

// Names returns the lowercased members in sorted order.
func (s FieldSet) Names() []string {
	out := make([]string, 0, len(s.names))
	for n := range s.names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Len is the number of members.
func (s FieldSet) Len() int { return len(s.names) }
