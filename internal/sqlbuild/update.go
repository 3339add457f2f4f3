// Package sqlbuild renders the dynamic parts of SQL statements: the SET list
// of a partial update and the WHERE predicates of a filtered search.
//
// Values are never written into the SQL text. Each builder returns a clause
// with $n placeholders and the values to bind, in placeholder order.
package sqlbuild

import (
	"strconv"
	"strings"

	"github.com/justsurfingit/jobly/internal/apperrors"
)

// AliasTable maps domain field names to column names.
type AliasTable map[string]string

// MapColumn returns the column for field, or field itself when it has no alias.
func MapColumn(field string, aliases AliasTable) string {
	if col, ok := aliases[field]; ok {
		return col
	}
	return field
}

// Field is one entry of a FieldMap.
type Field struct {
	Name  string
	Value any
}

// FieldMap is the sparse set of fields a caller wants to change, in the
// order they were supplied.
type FieldMap []Field

// Set returns a copy of m with the field appended. m itself is not modified.
func (m FieldMap) Set(name string, value any) FieldMap {
	return append(m[:len(m):len(m)], Field{Name: name, Value: value})
}

// SetClause is the rendered SET list of an UPDATE statement.
type SetClause struct {
	Clause string
	Values []any
}

// Next is the placeholder index following the SET values, where the caller
// binds the row identifier.
func (s SetClause) Next() int { return len(s.Values) + 1 }

// Placeholder renders the $n placeholder for position n.
func Placeholder(n int) string { return "$" + strconv.Itoa(n) }

// QuoteIdent wraps a column name in double quotes.
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// BuildSetClause renders fields as `"col"=$1, "col2"=$2, ...`.
//
// For {firstName: "Aliya", age: 32} with alias {firstName: "first_name"} it
// returns `"first_name"=$1, "age"=$2` and ["Aliya", 32].
func BuildSetClause(fields FieldMap, aliases AliasTable) (SetClause, error) {
	if len(fields) == 0 {
		return SetClause{}, &apperrors.EmptyUpdateError{}
	}
	cols := make([]string, len(fields))
	values := make([]any, len(fields))
	for i, f := range fields {
		cols[i] = QuoteIdent(MapColumn(f.Name, aliases)) + "=" + Placeholder(i+1)
		values[i] = f.Value
	}
	return SetClause{Clause: strings.Join(cols, ", "), Values: values}, nil
}
