package sqlbuild

import (
	"fmt"
	"strings"

	"github.com/justsurfingit/jobly/internal/filters"
)

// WhereRule binds a filter key to the predicate it produces.
type WhereRule struct {
	Key      string
	Column   string
	Operator string
	Kind     filters.Kind
	// Cast is the SQL type the bound value is cast to, if any. Integer
	// columns compare against numeric so a fractional bound keeps its fraction.
	Cast string
}

func (r WhereRule) param(n int) string {
	if r.Cast == "" {
		return Placeholder(n)
	}
	return Placeholder(n) + "::" + r.Cast
}

// WhereClause is the rendered predicate list of a search. Clause excludes
// the WHERE keyword and is empty when no filter applies.
type WhereClause struct {
	Clause string
	Values []any
}

// Empty reports whether the clause has no predicates.
func (w WhereClause) Empty() bool { return w.Clause == "" }

// SQL returns the clause prefixed with WHERE, or "" when empty.
func (w WhereClause) SQL() string {
	if w.Empty() {
		return ""
	}
	return "WHERE " + w.Clause
}

// BuildWhereClause renders the predicates for set, numbering placeholders from $1.
func BuildWhereClause(set filters.Set, rules []WhereRule) WhereClause {
	return BuildWhereClauseFrom(set, rules, 1)
}

// BuildWhereClauseFrom renders the predicates for set in rule order with
// placeholders starting at $first. Flag rules compare against a literal 0 and
// bind nothing; a false flag adds no predicate.
func BuildWhereClauseFrom(set filters.Set, rules []WhereRule, first int) WhereClause {
	var (
		preds  []string
		values []any
	)
	for _, r := range rules {
		v, ok := set[r.Key]
		if !ok {
			continue
		}
		switch r.Kind {
		case filters.Flag:
			if on, _ := v.(bool); on {
				preds = append(preds, r.Column+" "+r.Operator+" 0")
			}
		case filters.Substring:
			values = append(values, "%"+fmt.Sprint(v)+"%")
			preds = append(preds, r.Column+" "+r.Operator+" "+r.param(first+len(values)-1))
		default:
			values = append(values, v)
			preds = append(preds, r.Column+" "+r.Operator+" "+r.param(first+len(values)-1))
		}
	}
	return WhereClause{Clause: strings.Join(preds, " AND "), Values: values}
}
