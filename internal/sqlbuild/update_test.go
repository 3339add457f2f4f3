package sqlbuild

import (
	"fmt"
	"regexp"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justsurfingit/jobly/internal/apperrors"
)

func TestMapColumn(t *testing.T) {
	aliases := AliasTable{"numEmployees": "num_employees"}
	assert.Equal(t, "num_employees", MapColumn("numEmployees", aliases))
	assert.Equal(t, "name", MapColumn("name", aliases))
	assert.Equal(t, "name", MapColumn("name", nil))
}

func TestBuildSetClause(t *testing.T) {
	fields := FieldMap{}.Set("firstName", "Aliya").Set("age", 32)

	set, err := BuildSetClause(fields, AliasTable{"firstName": "first_name"})
	require.NoError(t, err)
	assert.Equal(t, `"first_name"=$1, "age"=$2`, set.Clause)
	assert.Equal(t, []any{"Aliya", 32}, set.Values)
	assert.Equal(t, 3, set.Next())
}

func TestBuildSetClauseWithoutAliases(t *testing.T) {
	set, err := BuildSetClause(FieldMap{{"firstName", "Aliya"}, {"age", 32}}, AliasTable{})
	require.NoError(t, err)
	assert.Equal(t, `"firstName"=$1, "age"=$2`, set.Clause)
}

func TestBuildSetClauseEmpty(t *testing.T) {
	for _, fields := range []FieldMap{nil, {}} {
		_, err := BuildSetClause(fields, AliasTable{"a": "b"})
		var empty *apperrors.EmptyUpdateError
		require.ErrorAs(t, err, &empty)
		assert.Equal(t, "No data", err.Error())
	}
}

func TestBuildSetClauseValuesAreNotInterpolated(t *testing.T) {
	evil := `x"; DROP TABLE companies; --`
	set, err := BuildSetClause(FieldMap{{"name", evil}, {"logoUrl", nil}}, AliasTable{"logoUrl": "logo_url"})
	require.NoError(t, err)
	assert.Equal(t, `"name"=$1, "logo_url"=$2`, set.Clause)
	assert.Equal(t, []any{evil, nil}, set.Values)
}

func TestBuildSetClausePlaceholdersAreDense(t *testing.T) {
	placeholder := regexp.MustCompile(`\$(\d+)`)
	for n := 1; n <= 12; n++ {
		var fields FieldMap
		for i := 0; i < n; i++ {
			fields = fields.Set(fmt.Sprintf("f%d", i), i)
		}
		set, err := BuildSetClause(fields, nil)
		require.NoError(t, err)
		require.Len(t, set.Values, n)

		matches := placeholder.FindAllStringSubmatch(set.Clause, -1)
		require.Len(t, matches, n)
		for i, m := range matches {
			assert.Equal(t, strconv.Itoa(i+1), m[1])
		}
	}
}

func TestBuildSetClauseIdempotent(t *testing.T) {
	fields := FieldMap{{"title", "Dev"}, {"salary", 10}, {"equity", 0.5}}
	a, errA := BuildSetClause(fields, nil)
	b, errB := BuildSetClause(fields, nil)
	require.NoError(t, errA)
	require.NoError(t, errB)
	assert.Equal(t, a, b)
}

func TestQuoteIdent(t *testing.T) {
	assert.Equal(t, `"name"`, QuoteIdent("name"))
	assert.Equal(t, `"a""b"`, QuoteIdent(`a"b`))
}

func TestFieldMapSetDoesNotShareBackingArray(t *testing.T) {
	base := make(FieldMap, 0, 4).Set("name", "base")
	left := base.Set("description", "left")
	right := base.Set("description", "right")

	assert.Equal(t, FieldMap{{Name: "name", Value: "base"}}, base)
	assert.Equal(t, "left", left[1].Value)
	assert.Equal(t, "right", right[1].Value)
}
